package ops

// View-models for HR warnings and announcements. Both are list-plus-ack
// surfaces with the standard refresh-after-mutation pattern.

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/harbourline/venue-cli/pkg/core/model"
)

// WarningsGateway is what the warnings view-model needs from the transport
// layer.
type WarningsGateway interface {
	FetchWarnings(ctx context.Context) ([]model.Warning, error)
	IssueWarning(ctx context.Context, staffID int64, reason string) error
	AcknowledgeWarning(ctx context.Context, warningID int64) error
}

// WarningsViewModel caches the HR warnings visible to the caller.
type WarningsViewModel struct {
	recorder
	gateway WarningsGateway
	logger  *zap.Logger

	mu       sync.Mutex
	warnings []model.Warning
}

// NewWarnings builds a warnings view-model.
func NewWarnings(gateway WarningsGateway, logger *zap.Logger) *WarningsViewModel {
	return &WarningsViewModel{gateway: gateway, logger: logger}
}

// Fetch loads the warnings list, replacing the cache.
func (vm *WarningsViewModel) Fetch(ctx context.Context) ([]model.Warning, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.fetchLocked(ctx)
}

func (vm *WarningsViewModel) fetchLocked(ctx context.Context) ([]model.Warning, error) {
	warnings, err := vm.gateway.FetchWarnings(ctx)
	if err != nil {
		return nil, vm.record(err)
	}
	vm.warnings = warnings
	vm.record(nil)
	return warnings, nil
}

// Warnings returns the cached list.
func (vm *WarningsViewModel) Warnings() []model.Warning {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.warnings
}

// Issue records a new warning (manager action), then re-fetches.
func (vm *WarningsViewModel) Issue(ctx context.Context, staffID int64, reason string) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if reason == "" {
		return vm.record(fmt.Errorf("a warning needs a reason"))
	}
	if err := vm.gateway.IssueWarning(ctx, staffID, reason); err != nil {
		return vm.record(err)
	}
	vm.logger.Info("warning issued", zap.Int64("staff_id", staffID))

	if _, err := vm.fetchLocked(ctx); err != nil {
		return err
	}
	return vm.record(nil)
}

// Acknowledge marks a warning as seen, then re-fetches.
func (vm *WarningsViewModel) Acknowledge(ctx context.Context, warningID int64) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if err := vm.gateway.AcknowledgeWarning(ctx, warningID); err != nil {
		return vm.record(err)
	}
	if _, err := vm.fetchLocked(ctx); err != nil {
		return err
	}
	return vm.record(nil)
}

// AnnouncementsGateway is what the announcements view-model needs from the
// transport layer.
type AnnouncementsGateway interface {
	FetchAnnouncements(ctx context.Context) ([]model.Announcement, error)
	PostAnnouncement(ctx context.Context, title, body string) error
	MarkAnnouncementRead(ctx context.Context, announcementID int64) error
}

// AnnouncementsViewModel caches the venue announcements.
type AnnouncementsViewModel struct {
	recorder
	gateway AnnouncementsGateway
	logger  *zap.Logger

	mu            sync.Mutex
	announcements []model.Announcement
}

// NewAnnouncements builds an announcements view-model.
func NewAnnouncements(gateway AnnouncementsGateway, logger *zap.Logger) *AnnouncementsViewModel {
	return &AnnouncementsViewModel{gateway: gateway, logger: logger}
}

// Fetch loads the announcements, replacing the cache.
func (vm *AnnouncementsViewModel) Fetch(ctx context.Context) ([]model.Announcement, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.fetchLocked(ctx)
}

func (vm *AnnouncementsViewModel) fetchLocked(ctx context.Context) ([]model.Announcement, error) {
	announcements, err := vm.gateway.FetchAnnouncements(ctx)
	if err != nil {
		return nil, vm.record(err)
	}
	vm.announcements = announcements
	vm.record(nil)
	return announcements, nil
}

// Announcements returns the cached list.
func (vm *AnnouncementsViewModel) Announcements() []model.Announcement {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.announcements
}

// Post publishes a new announcement (manager action), then re-fetches.
func (vm *AnnouncementsViewModel) Post(ctx context.Context, title, body string) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if title == "" {
		return vm.record(fmt.Errorf("an announcement needs a title"))
	}
	if err := vm.gateway.PostAnnouncement(ctx, title, body); err != nil {
		return vm.record(err)
	}
	if _, err := vm.fetchLocked(ctx); err != nil {
		return err
	}
	return vm.record(nil)
}

// MarkRead marks an announcement read for the caller, then re-fetches.
func (vm *AnnouncementsViewModel) MarkRead(ctx context.Context, announcementID int64) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if err := vm.gateway.MarkAnnouncementRead(ctx, announcementID); err != nil {
		return vm.record(err)
	}
	if _, err := vm.fetchLocked(ctx); err != nil {
		return err
	}
	return vm.record(nil)
}
