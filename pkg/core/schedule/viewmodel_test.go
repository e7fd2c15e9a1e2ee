package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/harbourline/venue-cli/internal/config"
	"github.com/harbourline/venue-cli/pkg/api"
	"github.com/harbourline/venue-cli/pkg/core/model"
)

type swapSubmission struct {
	scheduleID int64
	cover      *int64
	part       model.SwapPart
}

type swapDecision struct {
	swapID    int64
	action    string
	covererID *int64
}

type volunteerDecision struct {
	shiftID     int64
	action      string
	volunteerID *int64
}

// fakeGateway implements Gateway with canned responses and call recording.
type fakeGateway struct {
	defs      *model.ShiftDefinitions
	defsErr   error
	defsCalls int

	assigned      *api.AssignedWeek
	assignedErr   error
	assignedCalls []int

	swapErr     error
	submissions []swapSubmission

	relinquishErr    error
	relinquishCalls  []int64
	relinquishReason string

	swaps         *api.ManageSwaps
	swapsErr      error
	swapsCalls    []int
	decideSwapErr error
	swapDecisions []swapDecision

	volunteered        *api.ManageVolunteered
	volunteeredErr     error
	volunteeredCalls   []int
	decideVolErr       error
	volunteerDecisions []volunteerDecision

	required          *api.RequiredStaff
	requiredErr       error
	requiredCalls     []string
	updateRequiredErr error
	updatedItems      []model.RequiredStaffItem

	consolidated    *api.Consolidated
	consolidatedErr error
}

func (f *fakeGateway) FetchShiftDefinitions(ctx context.Context) (*model.ShiftDefinitions, error) {
	f.defsCalls++
	if f.defsErr != nil {
		return nil, f.defsErr
	}
	return f.defs, nil
}

func (f *fakeGateway) FetchAssignedShifts(ctx context.Context, weekOffset int) (*api.AssignedWeek, error) {
	f.assignedCalls = append(f.assignedCalls, weekOffset)
	if f.assignedErr != nil {
		return nil, f.assignedErr
	}
	return f.assigned, nil
}

func (f *fakeGateway) SubmitSwapRequest(ctx context.Context, scheduleID int64, desiredCoverID *int64, part model.SwapPart) error {
	f.submissions = append(f.submissions, swapSubmission{scheduleID, desiredCoverID, part})
	return f.swapErr
}

func (f *fakeGateway) RelinquishShift(ctx context.Context, scheduleID int64, reason string) error {
	f.relinquishCalls = append(f.relinquishCalls, scheduleID)
	f.relinquishReason = reason
	return f.relinquishErr
}

func (f *fakeGateway) FetchManageSwaps(ctx context.Context, weekOffset int) (*api.ManageSwaps, error) {
	f.swapsCalls = append(f.swapsCalls, weekOffset)
	if f.swapsErr != nil {
		return nil, f.swapsErr
	}
	return f.swaps, nil
}

func (f *fakeGateway) UpdateSwapStatus(ctx context.Context, swapID int64, action string, covererID *int64) error {
	f.swapDecisions = append(f.swapDecisions, swapDecision{swapID, action, covererID})
	return f.decideSwapErr
}

func (f *fakeGateway) FetchManageVolunteered(ctx context.Context, weekOffset int) (*api.ManageVolunteered, error) {
	f.volunteeredCalls = append(f.volunteeredCalls, weekOffset)
	if f.volunteeredErr != nil {
		return nil, f.volunteeredErr
	}
	return f.volunteered, nil
}

func (f *fakeGateway) UpdateVolunteeredStatus(ctx context.Context, shiftID int64, action string, approvedVolunteerID *int64) error {
	f.volunteerDecisions = append(f.volunteerDecisions, volunteerDecision{shiftID, action, approvedVolunteerID})
	return f.decideVolErr
}

func (f *fakeGateway) FetchRequiredStaff(ctx context.Context, role string, weekOffset int) (*api.RequiredStaff, error) {
	f.requiredCalls = append(f.requiredCalls, role)
	if f.requiredErr != nil {
		return nil, f.requiredErr
	}
	return f.required, nil
}

func (f *fakeGateway) UpdateRequiredStaff(ctx context.Context, role string, weekOffset int, items []model.RequiredStaffItem) error {
	f.updatedItems = items
	return f.updateRequiredErr
}

func (f *fakeGateway) FetchConsolidated(ctx context.Context, viewType string, weekOffset int) (*api.Consolidated, error) {
	if f.consolidatedErr != nil {
		return nil, f.consolidatedErr
	}
	return f.consolidated, nil
}

var testWeekDates = []string{
	"2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05",
	"2026-03-06", "2026-03-07", "2026-03-08",
}

func testWeek(shifts ...model.ScheduleItem) *api.AssignedWeek {
	week := &api.AssignedWeek{
		WeekDates:   testWeekDates,
		ShiftsByDay: make(map[string][]model.ScheduleItem),
	}
	for _, s := range shifts {
		week.ShiftsByDay[s.Date] = append(week.ShiftsByDay[s.Date], s)
	}
	return week
}

func newTestVM(t *testing.T, gw *fakeGateway) *ViewModel {
	t.Helper()
	vm, err := New(gw, zap.NewNop(), nil)
	require.NoError(t, err)
	return vm
}

func TestNew_InvalidClosureRule(t *testing.T) {
	_, err := New(&fakeGateway{}, zap.NewNop(), []config.ClosureRule{{RRule: "FREQ=SOMETIMES"}})
	assert.Error(t, err)
}

func TestFetchAssignedShifts_CachesWeek(t *testing.T) {
	gw := &fakeGateway{assigned: testWeek(
		model.ScheduleItem{ID: 11, Date: "2026-03-03", Type: model.ShiftDay, Status: model.StatusAssigned},
	)}
	vm := newTestVM(t, gw)

	view, err := vm.FetchAssignedShifts(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Offset)
	assert.Len(t, view.ShiftsForDate("2026-03-03"), 1)
	assert.Same(t, view, vm.AssignedWeek())
	assert.Empty(t, vm.LastError())
}

func TestFetchAssignedShifts_FailureRetainsPreviousWeek(t *testing.T) {
	gw := &fakeGateway{assigned: testWeek()}
	vm := newTestVM(t, gw)

	first, err := vm.FetchAssignedShifts(context.Background(), 0)
	require.NoError(t, err)

	gw.assignedErr = &api.TransportError{Err: errors.New("dial tcp: refused")}
	_, err = vm.FetchAssignedShifts(context.Background(), 1)
	require.Error(t, err)

	// Stale cache and its offset survive; navigation stays relative to it.
	assert.Same(t, first, vm.AssignedWeek())
	assert.Equal(t, 0, vm.AssignedWeek().Offset)
	assert.Equal(t, "Could not reach the server. Check your connection.", vm.LastError())

	gw.assignedErr = nil
	_, err = vm.NextWeek(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 1}, gw.assignedCalls)
}

func TestWeekNavigation(t *testing.T) {
	gw := &fakeGateway{assigned: testWeek()}
	vm := newTestVM(t, gw)
	ctx := context.Background()

	// Before any fetch, navigation steps from the current week.
	_, err := vm.NextWeek(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, vm.AssignedWeek().Offset)

	_, err = vm.NextWeek(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, vm.AssignedWeek().Offset)

	_, err = vm.PreviousWeek(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, vm.AssignedWeek().Offset)

	assert.Equal(t, []int{1, 2, 1}, gw.assignedCalls)
}

func TestClosedDatesAnnotation(t *testing.T) {
	gw := &fakeGateway{assigned: testWeek()}
	vm, err := New(gw, zap.NewNop(), []config.ClosureRule{
		{RRule: "FREQ=WEEKLY;BYDAY=MO;DTSTART=20200106T000000Z", Label: "closed Mondays"},
	})
	require.NoError(t, err)

	view, err := vm.FetchAssignedShifts(context.Background(), 0)
	require.NoError(t, err)

	// 2026-03-02 is the Monday of the fetched week.
	assert.Equal(t, "closed Mondays", view.ClosedDates["2026-03-02"])
	assert.Len(t, view.ClosedDates, 1)
}

func TestDefinitions_FetchedOnce(t *testing.T) {
	gw := &fakeGateway{defs: &model.ShiftDefinitions{}}
	vm := newTestVM(t, gw)
	ctx := context.Background()

	first, err := vm.Definitions(ctx)
	require.NoError(t, err)
	second, err := vm.Definitions(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, gw.defsCalls)
}

func TestDefinitions_FailureNotCached(t *testing.T) {
	gw := &fakeGateway{defs: &model.ShiftDefinitions{}, defsErr: errors.New("boom")}
	vm := newTestVM(t, gw)
	ctx := context.Background()

	_, err := vm.Definitions(ctx)
	require.Error(t, err)

	gw.defsErr = nil
	defs, err := vm.Definitions(ctx)
	require.NoError(t, err)
	assert.NotNil(t, defs)
	assert.Equal(t, 2, gw.defsCalls)
}

func TestRequestSwap_SubmitsAndRefetches(t *testing.T) {
	gw := &fakeGateway{assigned: testWeek(
		model.ScheduleItem{ID: 11, Date: "2026-03-03", Type: model.ShiftDouble, Status: model.StatusAssigned},
	)}
	vm := newTestVM(t, gw)
	ctx := context.Background()

	_, err := vm.FetchAssignedShifts(ctx, 0)
	require.NoError(t, err)

	cover := int64(9)
	require.NoError(t, vm.RequestSwap(ctx, 11, &cover, model.SwapNight))

	require.Len(t, gw.submissions, 1)
	assert.Equal(t, int64(11), gw.submissions[0].scheduleID)
	assert.Equal(t, model.SwapNight, gw.submissions[0].part)
	require.NotNil(t, gw.submissions[0].cover)
	assert.Equal(t, int64(9), *gw.submissions[0].cover)

	// Refetched at the same offset after the mutation.
	assert.Equal(t, []int{0, 0}, gw.assignedCalls)
	assert.Empty(t, vm.LastError())
}

func TestRequestSwap_PartCoercedToFullOnNonDouble(t *testing.T) {
	gw := &fakeGateway{assigned: testWeek(
		model.ScheduleItem{ID: 11, Date: "2026-03-03", Type: model.ShiftDay, Status: model.StatusAssigned},
	)}
	vm := newTestVM(t, gw)
	ctx := context.Background()

	_, err := vm.FetchAssignedShifts(ctx, 0)
	require.NoError(t, err)

	require.NoError(t, vm.RequestSwap(ctx, 11, nil, model.SwapDay))
	require.Len(t, gw.submissions, 1)
	assert.Equal(t, model.SwapFull, gw.submissions[0].part)
}

func TestRequestSwap_Guards(t *testing.T) {
	gw := &fakeGateway{assigned: testWeek(
		model.ScheduleItem{ID: 11, Date: "2026-03-03", Type: model.ShiftDay, Status: model.StatusAssigned},
		model.ScheduleItem{ID: 12, Date: "2026-03-04", Type: model.ShiftDay, Status: model.StatusPending},
	)}
	vm := newTestVM(t, gw)
	ctx := context.Background()

	// No week fetched yet.
	assert.ErrorIs(t, vm.RequestSwap(ctx, 11, nil, model.SwapFull), ErrWeekNotFetched)

	_, err := vm.FetchAssignedShifts(ctx, 0)
	require.NoError(t, err)

	assert.ErrorIs(t, vm.RequestSwap(ctx, 99, nil, model.SwapFull), ErrUnknownScheduleItem)
	assert.ErrorIs(t, vm.RequestSwap(ctx, 12, nil, model.SwapFull), ErrShiftNotAssigned)
	assert.ErrorIs(t, vm.RequestSwap(ctx, 11, nil, model.SwapPart("half")), ErrInvalidSwapPart)

	// Every rejection happened before the network.
	assert.Empty(t, gw.submissions)
	assert.NotEmpty(t, vm.LastError())
}

func TestRequestSwap_RefetchFailureSurfaced(t *testing.T) {
	gw := &fakeGateway{assigned: testWeek(
		model.ScheduleItem{ID: 11, Date: "2026-03-03", Type: model.ShiftDay, Status: model.StatusAssigned},
	)}
	vm := newTestVM(t, gw)
	ctx := context.Background()

	before, err := vm.FetchAssignedShifts(ctx, 0)
	require.NoError(t, err)

	gw.assignedErr = errors.New("boom")
	err = vm.RequestSwap(ctx, 11, nil, model.SwapFull)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "swap submitted")

	// The mutation went out; the stale week stays cached.
	assert.Len(t, gw.submissions, 1)
	assert.Same(t, before, vm.AssignedWeek())
}

func TestRelinquishShift(t *testing.T) {
	gw := &fakeGateway{assigned: testWeek(
		model.ScheduleItem{ID: 11, Date: "2026-03-03", Type: model.ShiftDay, Status: model.StatusAssigned},
		model.ScheduleItem{ID: 12, Date: "2026-03-04", Type: model.ShiftDay, Status: model.StatusOpen},
	)}
	vm := newTestVM(t, gw)
	ctx := context.Background()

	assert.ErrorIs(t, vm.RelinquishShift(ctx, 11, ""), ErrWeekNotFetched)

	_, err := vm.FetchAssignedShifts(ctx, 0)
	require.NoError(t, err)

	assert.ErrorIs(t, vm.RelinquishShift(ctx, 12, ""), ErrShiftNotAssigned)
	assert.Empty(t, gw.relinquishCalls)

	require.NoError(t, vm.RelinquishShift(ctx, 11, "family event"))
	assert.Equal(t, []int64{11}, gw.relinquishCalls)
	assert.Equal(t, "family event", gw.relinquishReason)
	assert.Equal(t, []int{0, 0}, gw.assignedCalls)
}

func TestDecideSwap(t *testing.T) {
	pinned := int64(9)
	gw := &fakeGateway{swaps: &api.ManageSwaps{
		Pending: []model.SwapRecord{
			{ID: 5, Date: "2026-03-06", Status: model.SwapPending, DesiredCoverID: &pinned},
			{ID: 6, Date: "2026-03-07", Status: model.SwapPending},
		},
	}}
	vm := newTestVM(t, gw)
	ctx := context.Background()

	assert.ErrorIs(t, vm.DecideSwap(ctx, 5, SwapApprove, nil), ErrWeekNotFetched)

	_, err := vm.FetchManageSwaps(ctx, 0)
	require.NoError(t, err)

	assert.ErrorIs(t, vm.DecideSwap(ctx, 99, SwapApprove, nil), ErrUnknownSwap)

	// Approving without a pinned cover demands an explicit coverer.
	assert.ErrorIs(t, vm.DecideSwap(ctx, 6, SwapApprove, nil), ErrCovererRequired)
	assert.Empty(t, gw.swapDecisions)

	// Pinned cover approves without one.
	require.NoError(t, vm.DecideSwap(ctx, 5, SwapApprove, nil))
	require.Len(t, gw.swapDecisions, 1)
	assert.Equal(t, "Approve", gw.swapDecisions[0].action)

	// Deny never needs a coverer.
	require.NoError(t, vm.DecideSwap(ctx, 6, SwapDeny, nil))
	assert.Equal(t, "Deny", gw.swapDecisions[1].action)

	// One initial fetch plus one refetch per successful decision.
	assert.Equal(t, []int{0, 0, 0}, gw.swapsCalls)
}

func TestDecideSwap_UnpinnedApproveWithCoverer(t *testing.T) {
	gw := &fakeGateway{swaps: &api.ManageSwaps{
		Pending: []model.SwapRecord{{ID: 6, Status: model.SwapPending}},
	}}
	vm := newTestVM(t, gw)
	ctx := context.Background()

	_, err := vm.FetchManageSwaps(ctx, 0)
	require.NoError(t, err)

	coverer := int64(4)
	require.NoError(t, vm.DecideSwap(ctx, 6, SwapApprove, &coverer))
	require.Len(t, gw.swapDecisions, 1)
	require.NotNil(t, gw.swapDecisions[0].covererID)
	assert.Equal(t, int64(4), *gw.swapDecisions[0].covererID)
}

func TestDecideVolunteered(t *testing.T) {
	gw := &fakeGateway{volunteered: &api.ManageVolunteered{
		Actionable: []model.VolunteeredShift{
			{
				ID:     8,
				Status: model.VolunteeredOpen,
				Volunteers: []model.StaffMember{
					{ID: 1, FullName: "Alice Ash"},
					{ID: 2, FullName: "Bob Birch"},
				},
				EligibleVolunteers: []model.StaffMember{{ID: 2, FullName: "Bob Birch"}},
			},
			{ID: 9, Status: model.VolunteeredOpen},
		},
	}}
	vm := newTestVM(t, gw)
	ctx := context.Background()

	assert.ErrorIs(t, vm.DecideVolunteered(ctx, 8, VolunteerAssign, nil), ErrWeekNotFetched)

	_, err := vm.FetchManageVolunteered(ctx, 0)
	require.NoError(t, err)

	assert.ErrorIs(t, vm.DecideVolunteered(ctx, 99, VolunteerAssign, nil), ErrUnknownVolunteeredShift)

	// Shift 9 has no eligible volunteers: Assign is off the table entirely.
	two := int64(2)
	assert.ErrorIs(t, vm.DecideVolunteered(ctx, 9, VolunteerAssign, &two), ErrNoEligibleVolunteers)

	// Shift 8: a volunteer must be picked, and from the eligible set.
	assert.ErrorIs(t, vm.DecideVolunteered(ctx, 8, VolunteerAssign, nil), ErrVolunteerRequired)
	one := int64(1)
	assert.ErrorIs(t, vm.DecideVolunteered(ctx, 8, VolunteerAssign, &one), ErrVolunteerNotEligible)
	assert.Empty(t, gw.volunteerDecisions)

	require.NoError(t, vm.DecideVolunteered(ctx, 8, VolunteerAssign, &two))
	require.Len(t, gw.volunteerDecisions, 1)
	assert.Equal(t, "Assign", gw.volunteerDecisions[0].action)

	// Cancel needs no volunteer, even with an empty eligible set.
	require.NoError(t, vm.DecideVolunteered(ctx, 9, VolunteerCancel, nil))
	assert.Equal(t, "Cancel", gw.volunteerDecisions[1].action)
}

func TestSubmitRequiredStaff(t *testing.T) {
	gw := &fakeGateway{required: &api.RequiredStaff{
		DisplayDates: []string{"2026-03-03", "2026-03-04"},
		Existing:     map[string]model.RequiredStaffItem{},
	}}
	vm := newTestVM(t, gw)
	ctx := context.Background()

	assert.ErrorIs(t, vm.SubmitRequiredStaff(ctx, nil), ErrWeekNotFetched)

	_, err := vm.FetchRequiredStaff(ctx, "Bartender", 0)
	require.NoError(t, err)

	// Partial, duplicated, and off-week sets are all rejected locally.
	partial := []model.RequiredStaffItem{{Date: "2026-03-03", Min: 1, Max: 2}}
	assert.ErrorIs(t, vm.SubmitRequiredStaff(ctx, partial), ErrRequirementDatesMismatch)

	duplicated := []model.RequiredStaffItem{
		{Date: "2026-03-03", Min: 1, Max: 2},
		{Date: "2026-03-03", Min: 1, Max: 2},
	}
	assert.ErrorIs(t, vm.SubmitRequiredStaff(ctx, duplicated), ErrRequirementDatesMismatch)

	offWeek := []model.RequiredStaffItem{
		{Date: "2026-03-03", Min: 1, Max: 2},
		{Date: "2026-03-10", Min: 1, Max: 2},
	}
	assert.ErrorIs(t, vm.SubmitRequiredStaff(ctx, offWeek), ErrRequirementDatesMismatch)
	assert.Nil(t, gw.updatedItems)

	full := []model.RequiredStaffItem{
		{Date: "2026-03-03", Min: 1, Max: 2},
		{Date: "2026-03-04", Min: 2, Max: 3},
	}
	require.NoError(t, vm.SubmitRequiredStaff(ctx, full))
	assert.Equal(t, full, gw.updatedItems)

	// One initial fetch plus the refetch after saving.
	assert.Equal(t, []string{"Bartender", "Bartender"}, gw.requiredCalls)
}

func TestFetchConsolidated(t *testing.T) {
	gw := &fakeGateway{consolidated: &api.Consolidated{
		Users: []model.StaffMember{{ID: 1, FullName: "Alice Ash"}},
		ByUserDate: map[int64]map[string][]model.ScheduleItem{
			1: {"2026-03-03": {{ID: 11, Date: "2026-03-03", Type: model.ShiftDay, Status: model.StatusAssigned}}},
		},
	}}
	vm := newTestVM(t, gw)

	view, err := vm.FetchConsolidated(context.Background(), "foh", 0)
	require.NoError(t, err)
	assert.Equal(t, "foh", view.ViewType)
	assert.Len(t, view.ShiftsFor(1, "2026-03-03"), 1)
	assert.Same(t, view, vm.Consolidated())
}

func TestLastError_ClearedBySuccess(t *testing.T) {
	gw := &fakeGateway{assigned: testWeek()}
	vm := newTestVM(t, gw)
	ctx := context.Background()

	gw.assignedErr = errors.New("boom")
	_, err := vm.FetchAssignedShifts(ctx, 0)
	require.Error(t, err)
	assert.NotEmpty(t, vm.LastError())

	gw.assignedErr = nil
	_, err = vm.FetchAssignedShifts(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, vm.LastError())
}
