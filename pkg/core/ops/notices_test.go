package ops

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/harbourline/venue-cli/pkg/core/model"
)

type fakeWarningsGateway struct {
	warnings   []model.Warning
	fetchCalls int
	issued     []int64
	acked      []int64
	issueErr   error
}

func (f *fakeWarningsGateway) FetchWarnings(ctx context.Context) ([]model.Warning, error) {
	f.fetchCalls++
	return f.warnings, nil
}

func (f *fakeWarningsGateway) IssueWarning(ctx context.Context, staffID int64, reason string) error {
	f.issued = append(f.issued, staffID)
	return f.issueErr
}

func (f *fakeWarningsGateway) AcknowledgeWarning(ctx context.Context, warningID int64) error {
	f.acked = append(f.acked, warningID)
	return nil
}

func TestWarnings_IssueRequiresReason(t *testing.T) {
	gw := &fakeWarningsGateway{}
	vm := NewWarnings(gw, zap.NewNop())

	assert.Error(t, vm.Issue(context.Background(), 3, ""))
	assert.Empty(t, gw.issued)

	require.NoError(t, vm.Issue(context.Background(), 3, "late twice"))
	assert.Equal(t, []int64{3}, gw.issued)
	assert.Equal(t, 1, gw.fetchCalls)
}

func TestWarnings_AcknowledgeRefetches(t *testing.T) {
	gw := &fakeWarningsGateway{warnings: []model.Warning{{ID: 7}}}
	vm := NewWarnings(gw, zap.NewNop())

	require.NoError(t, vm.Acknowledge(context.Background(), 7))
	assert.Equal(t, []int64{7}, gw.acked)
	assert.Len(t, vm.Warnings(), 1)
}

func TestWarnings_IssueFailureRecorded(t *testing.T) {
	gw := &fakeWarningsGateway{issueErr: errors.New("boom")}
	vm := NewWarnings(gw, zap.NewNop())

	require.Error(t, vm.Issue(context.Background(), 3, "late"))
	assert.NotEmpty(t, vm.LastError())
	assert.Zero(t, gw.fetchCalls)
}

type fakeAnnouncementsGateway struct {
	announcements []model.Announcement
	fetchCalls    int
	posted        []string
	read          []int64
}

func (f *fakeAnnouncementsGateway) FetchAnnouncements(ctx context.Context) ([]model.Announcement, error) {
	f.fetchCalls++
	return f.announcements, nil
}

func (f *fakeAnnouncementsGateway) PostAnnouncement(ctx context.Context, title, body string) error {
	f.posted = append(f.posted, title)
	return nil
}

func (f *fakeAnnouncementsGateway) MarkAnnouncementRead(ctx context.Context, announcementID int64) error {
	f.read = append(f.read, announcementID)
	return nil
}

func TestAnnouncements_PostRequiresTitle(t *testing.T) {
	gw := &fakeAnnouncementsGateway{}
	vm := NewAnnouncements(gw, zap.NewNop())

	assert.Error(t, vm.Post(context.Background(), "", "body"))
	assert.Empty(t, gw.posted)

	require.NoError(t, vm.Post(context.Background(), "Deep clean Sunday", "kitchen closed"))
	assert.Equal(t, []string{"Deep clean Sunday"}, gw.posted)
	assert.Equal(t, 1, gw.fetchCalls)
}

func TestAnnouncements_MarkReadRefetches(t *testing.T) {
	gw := &fakeAnnouncementsGateway{announcements: []model.Announcement{{ID: 2, ReadByMe: true}}}
	vm := NewAnnouncements(gw, zap.NewNop())

	require.NoError(t, vm.MarkRead(context.Background(), 2))
	assert.Equal(t, []int64{2}, gw.read)
	require.Len(t, vm.Announcements(), 1)
	assert.True(t, vm.Announcements()[0].ReadByMe)
}
