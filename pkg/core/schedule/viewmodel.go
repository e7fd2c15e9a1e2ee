// Package schedule owns the client-side state for the shift-swap and
// relinquish-and-volunteer coordination workflow. The view-model caches
// whatever week each sub-view last fetched, guards mutating calls with
// client-side eligibility checks, and re-synchronizes from the server after
// every successful mutation. Status transitions are server-authoritative
// throughout: nothing here ever advances a shift's status locally.
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/harbourline/venue-cli/internal/config"
	"github.com/harbourline/venue-cli/pkg/api"
	"github.com/harbourline/venue-cli/pkg/core/model"
)

// Gateway is what the view-model needs from the transport layer. The
// api.Client satisfies it; tests substitute a fake.
type Gateway interface {
	FetchShiftDefinitions(ctx context.Context) (*model.ShiftDefinitions, error)
	FetchAssignedShifts(ctx context.Context, weekOffset int) (*api.AssignedWeek, error)
	SubmitSwapRequest(ctx context.Context, scheduleID int64, desiredCoverID *int64, part model.SwapPart) error
	RelinquishShift(ctx context.Context, scheduleID int64, reason string) error
	FetchManageSwaps(ctx context.Context, weekOffset int) (*api.ManageSwaps, error)
	UpdateSwapStatus(ctx context.Context, swapID int64, action string, covererID *int64) error
	FetchManageVolunteered(ctx context.Context, weekOffset int) (*api.ManageVolunteered, error)
	UpdateVolunteeredStatus(ctx context.Context, shiftID int64, action string, approvedVolunteerID *int64) error
	FetchRequiredStaff(ctx context.Context, role string, weekOffset int) (*api.RequiredStaff, error)
	UpdateRequiredStaff(ctx context.Context, role string, weekOffset int, items []model.RequiredStaffItem) error
	FetchConsolidated(ctx context.Context, viewType string, weekOffset int) (*api.Consolidated, error)
}

// SwapAction is a manager's decision on a pending swap.
type SwapAction string

const (
	SwapApprove SwapAction = "Approve"
	SwapDeny    SwapAction = "Deny"
)

// VolunteerAction is a manager's decision on a volunteered shift.
type VolunteerAction string

const (
	VolunteerAssign VolunteerAction = "Assign"
	VolunteerCancel VolunteerAction = "Cancel"
)

type closure struct {
	rule  *rrule.RRule
	label string
}

// ViewModel caches schedule state scoped to the last fetched week per
// sub-view. All operations are serialized behind one mutex so that a rapid
// double-submission resolves as two ordered calls rather than a race; the
// transport additionally tags each mutation with an idempotency key.
type ViewModel struct {
	gateway  Gateway
	logger   *zap.Logger
	closures []closure

	mu        sync.Mutex
	lastError string

	defs         *model.ShiftDefinitions
	myWeek       *AssignedWeekView
	swaps        *ManageSwapsView
	volunteered  *ManageVolunteeredView
	required     *RequiredStaffView
	consolidated *ConsolidatedView
}

// New builds a view-model. Closure rules come validated from config; a
// rule that fails to parse here is still rejected.
func New(gateway Gateway, logger *zap.Logger, closures []config.ClosureRule) (*ViewModel, error) {
	vm := &ViewModel{gateway: gateway, logger: logger}
	for i, c := range closures {
		rule, err := rrule.StrToRRule(c.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid closure rule %d: %w", i, err)
		}
		label := c.Label
		if label == "" {
			label = "closed"
		}
		vm.closures = append(vm.closures, closure{rule: rule, label: label})
	}
	return vm, nil
}

// LastError returns the human-readable message of the most recent failed
// operation, empty after a success. Presentation reads this instead of
// handling errors structurally.
func (vm *ViewModel) LastError() string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.lastError
}

// AssignedWeek returns the cached staff week view, nil before the first
// successful fetch.
func (vm *ViewModel) AssignedWeek() *AssignedWeekView {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.myWeek
}

// ManageSwaps returns the cached manager swaps view.
func (vm *ViewModel) ManageSwaps() *ManageSwapsView {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.swaps
}

// ManageVolunteered returns the cached manager volunteered-shifts view.
func (vm *ViewModel) ManageVolunteered() *ManageVolunteeredView {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.volunteered
}

// RequiredStaff returns the cached required-staff view.
func (vm *ViewModel) RequiredStaff() *RequiredStaffView {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.required
}

// Consolidated returns the cached consolidated view.
func (vm *ViewModel) Consolidated() *ConsolidatedView {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.consolidated
}

// record stores the outcome of an operation for the presentation layer and
// passes the error through.
func (vm *ViewModel) record(op string, err error) error {
	if err == nil {
		vm.lastError = ""
		return nil
	}
	vm.lastError = api.UserMessage(err)
	vm.logger.Warn("operation failed", zap.String("op", op), zap.Error(err))
	return err
}

// Definitions returns the global shift-time table, fetching it on first
// use and never again: definitions are static reference data for the
// session lifetime.
func (vm *ViewModel) Definitions(ctx context.Context) (*model.ShiftDefinitions, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.defs != nil {
		return vm.defs, nil
	}
	defs, err := vm.gateway.FetchShiftDefinitions(ctx)
	if err != nil {
		return nil, vm.record("definitions", err)
	}
	vm.defs = defs
	vm.record("definitions", nil)
	return defs, nil
}

// FetchAssignedShifts loads the caller's shifts for the week at the given
// offset, replacing the cached week wholesale. On failure the previous
// week's cache is retained so the UI keeps showing stale-but-valid data,
// and the view's current offset is unchanged: navigation stays relative to
// the last week that actually loaded.
func (vm *ViewModel) FetchAssignedShifts(ctx context.Context, weekOffset int) (*AssignedWeekView, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.fetchAssignedLocked(ctx, weekOffset)
}

func (vm *ViewModel) fetchAssignedLocked(ctx context.Context, weekOffset int) (*AssignedWeekView, error) {
	vm.logger.Debug("fetching assigned shifts", zap.Int("week_offset", weekOffset))
	week, err := vm.gateway.FetchAssignedShifts(ctx, weekOffset)
	if err != nil {
		return nil, vm.record("fetch assigned shifts", err)
	}

	view := &AssignedWeekView{
		Offset:      weekOffset,
		WeekDates:   week.WeekDates,
		ShiftsByDay: week.ShiftsByDay,
		ClosedDates: vm.closedDates(week.WeekDates),
	}
	vm.myWeek = view
	vm.record("fetch assigned shifts", nil)
	vm.logger.Info("assigned shifts loaded",
		zap.Int("week_offset", weekOffset),
		zap.Int("days_with_shifts", len(week.ShiftsByDay)))
	return view, nil
}

// NextWeek and PreviousWeek navigate relative to the last successfully
// fetched week.
func (vm *ViewModel) NextWeek(ctx context.Context) (*AssignedWeekView, error) {
	return vm.stepWeek(ctx, 1)
}

func (vm *ViewModel) PreviousWeek(ctx context.Context) (*AssignedWeekView, error) {
	return vm.stepWeek(ctx, -1)
}

func (vm *ViewModel) stepWeek(ctx context.Context, delta int) (*AssignedWeekView, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	offset := delta
	if vm.myWeek != nil {
		offset = vm.myWeek.Offset + delta
	}
	return vm.fetchAssignedLocked(ctx, offset)
}

// closedDates expands the configured closure rules over the fetched week.
func (vm *ViewModel) closedDates(weekDates []string) map[string]string {
	closed := make(map[string]string)
	if len(vm.closures) == 0 || len(weekDates) == 0 {
		return closed
	}

	inWeek := make(map[string]bool, len(weekDates))
	var first, last time.Time
	for i, d := range weekDates {
		parsed, err := time.Parse(dateLayout, d)
		if err != nil {
			continue
		}
		inWeek[d] = true
		if i == 0 || parsed.Before(first) {
			first = parsed
		}
		if parsed.After(last) {
			last = parsed
		}
	}
	if first.IsZero() {
		return closed
	}

	for _, c := range vm.closures {
		for _, occ := range c.rule.Between(first, last.Add(24*time.Hour), true) {
			date := occ.Format(dateLayout)
			if inWeek[date] {
				closed[date] = c.label
			}
		}
	}
	return closed
}

// RequestSwap submits a swap request against one of the caller's cached
// shifts. Guards: the shift must currently be Assigned, and a day/night
// part is only meaningful on a Double shift; any other type goes out as
// full. desiredCoverID nil leaves the request open to anyone. On success
// the assigned-shifts view is re-fetched so the shift surfaces as Pending.
func (vm *ViewModel) RequestSwap(ctx context.Context, scheduleID int64, desiredCoverID *int64, part model.SwapPart) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.myWeek == nil {
		return vm.record("request swap", ErrWeekNotFetched)
	}
	item, ok := vm.myWeek.ItemByID(scheduleID)
	if !ok {
		return vm.record("request swap", ErrUnknownScheduleItem)
	}
	if !item.Status.CanRequestChange() {
		return vm.record("request swap", ErrShiftNotAssigned)
	}
	switch part {
	case model.SwapFull, model.SwapDay, model.SwapNight:
	default:
		return vm.record("request swap", ErrInvalidSwapPart)
	}
	if !item.Type.IsDouble() {
		part = model.SwapFull
	}

	vm.logger.Info("submitting swap request",
		zap.Int64("schedule_id", scheduleID),
		zap.String("part", string(part)))
	if err := vm.gateway.SubmitSwapRequest(ctx, scheduleID, desiredCoverID, part); err != nil {
		return vm.record("request swap", err)
	}

	if _, err := vm.fetchAssignedLocked(ctx, vm.myWeek.Offset); err != nil {
		return fmt.Errorf("swap submitted but week refresh failed: %w", err)
	}
	return vm.record("request swap", nil)
}

// RelinquishShift releases one of the caller's cached shifts into the
// volunteer pool. Same Assigned-status guard and refresh-on-success as
// RequestSwap.
func (vm *ViewModel) RelinquishShift(ctx context.Context, scheduleID int64, reason string) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.myWeek == nil {
		return vm.record("relinquish shift", ErrWeekNotFetched)
	}
	item, ok := vm.myWeek.ItemByID(scheduleID)
	if !ok {
		return vm.record("relinquish shift", ErrUnknownScheduleItem)
	}
	if !item.Status.CanRequestChange() {
		return vm.record("relinquish shift", ErrShiftNotAssigned)
	}

	vm.logger.Info("relinquishing shift", zap.Int64("schedule_id", scheduleID))
	if err := vm.gateway.RelinquishShift(ctx, scheduleID, reason); err != nil {
		return vm.record("relinquish shift", err)
	}

	if _, err := vm.fetchAssignedLocked(ctx, vm.myWeek.Offset); err != nil {
		return fmt.Errorf("shift relinquished but week refresh failed: %w", err)
	}
	return vm.record("relinquish shift", nil)
}

// FetchManageSwaps loads the manager swaps view for a week. Failure keeps
// the previously cached view.
func (vm *ViewModel) FetchManageSwaps(ctx context.Context, weekOffset int) (*ManageSwapsView, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.fetchManageSwapsLocked(ctx, weekOffset)
}

func (vm *ViewModel) fetchManageSwapsLocked(ctx context.Context, weekOffset int) (*ManageSwapsView, error) {
	data, err := vm.gateway.FetchManageSwaps(ctx, weekOffset)
	if err != nil {
		return nil, vm.record("fetch manage swaps", err)
	}
	view := &ManageSwapsView{Offset: weekOffset, Pending: data.Pending, History: data.History}
	vm.swaps = view
	vm.record("fetch manage swaps", nil)
	vm.logger.Info("manage swaps loaded",
		zap.Int("week_offset", weekOffset),
		zap.Int("pending", len(data.Pending)),
		zap.Int("history", len(data.History)))
	return view, nil
}

// DecideSwap approves or denies a pending swap. Approve on a swap whose
// requester did not pin a coverer requires covererID. The cached lists are
// never speculatively mutated; on success the view is re-fetched at the
// same week offset.
func (vm *ViewModel) DecideSwap(ctx context.Context, swapID int64, action SwapAction, covererID *int64) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.swaps == nil {
		return vm.record("decide swap", ErrWeekNotFetched)
	}
	swap, ok := vm.swaps.PendingByID(swapID)
	if !ok {
		return vm.record("decide swap", ErrUnknownSwap)
	}
	if action == SwapApprove && !swap.HasPinnedCover() && covererID == nil {
		return vm.record("decide swap", ErrCovererRequired)
	}

	vm.logger.Info("deciding swap",
		zap.Int64("swap_id", swapID),
		zap.String("action", string(action)))
	if err := vm.gateway.UpdateSwapStatus(ctx, swapID, string(action), covererID); err != nil {
		return vm.record("decide swap", err)
	}

	if _, err := vm.fetchManageSwapsLocked(ctx, vm.swaps.Offset); err != nil {
		return fmt.Errorf("swap decided but view refresh failed: %w", err)
	}
	return vm.record("decide swap", nil)
}

// FetchManageVolunteered loads the manager volunteered-shifts view for a
// week.
func (vm *ViewModel) FetchManageVolunteered(ctx context.Context, weekOffset int) (*ManageVolunteeredView, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.fetchManageVolunteeredLocked(ctx, weekOffset)
}

func (vm *ViewModel) fetchManageVolunteeredLocked(ctx context.Context, weekOffset int) (*ManageVolunteeredView, error) {
	data, err := vm.gateway.FetchManageVolunteered(ctx, weekOffset)
	if err != nil {
		return nil, vm.record("fetch manage volunteered", err)
	}
	view := &ManageVolunteeredView{Offset: weekOffset, Actionable: data.Actionable, History: data.History}
	vm.volunteered = view
	vm.record("fetch manage volunteered", nil)
	vm.logger.Info("manage volunteered loaded",
		zap.Int("week_offset", weekOffset),
		zap.Int("actionable", len(data.Actionable)),
		zap.Int("history", len(data.History)))
	return view, nil
}

// DecideVolunteered assigns a volunteered shift to one volunteer or
// cancels the whole cycle. Assign is gated on the eligible set computed at
// fetch time: empty set means only Cancel, non-empty set means a selection
// from it is mandatory. The set is advisory; the server may still reject a
// stale selection, which surfaces as a normal mutation failure.
func (vm *ViewModel) DecideVolunteered(ctx context.Context, shiftID int64, action VolunteerAction, volunteerID *int64) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.volunteered == nil {
		return vm.record("decide volunteered", ErrWeekNotFetched)
	}
	shift, ok := vm.volunteered.ActionableByID(shiftID)
	if !ok {
		return vm.record("decide volunteered", ErrUnknownVolunteeredShift)
	}
	if action == VolunteerAssign {
		if !shift.CanAssign() {
			return vm.record("decide volunteered", ErrNoEligibleVolunteers)
		}
		if volunteerID == nil {
			return vm.record("decide volunteered", ErrVolunteerRequired)
		}
		if !shift.IsEligible(*volunteerID) {
			return vm.record("decide volunteered", ErrVolunteerNotEligible)
		}
	}

	vm.logger.Info("deciding volunteered shift",
		zap.Int64("shift_id", shiftID),
		zap.String("action", string(action)))
	if err := vm.gateway.UpdateVolunteeredStatus(ctx, shiftID, string(action), volunteerID); err != nil {
		return vm.record("decide volunteered", err)
	}

	if _, err := vm.fetchManageVolunteeredLocked(ctx, vm.volunteered.Offset); err != nil {
		return fmt.Errorf("shift decided but view refresh failed: %w", err)
	}
	return vm.record("decide volunteered", nil)
}

// FetchRequiredStaff loads the per-date staffing requirements for one role
// and week.
func (vm *ViewModel) FetchRequiredStaff(ctx context.Context, role string, weekOffset int) (*RequiredStaffView, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	data, err := vm.gateway.FetchRequiredStaff(ctx, role, weekOffset)
	if err != nil {
		return nil, vm.record("fetch required staff", err)
	}
	view := &RequiredStaffView{
		Role:         role,
		Offset:       weekOffset,
		DisplayDates: data.DisplayDates,
		Existing:     data.Existing,
	}
	vm.required = view
	vm.record("fetch required staff", nil)
	return view, nil
}

// SubmitRequiredStaff saves a full requirement set for the role and week
// of the last fetch. The items must cover exactly the fetched display-date
// set; the server exposes no partial-submission contract.
func (vm *ViewModel) SubmitRequiredStaff(ctx context.Context, items []model.RequiredStaffItem) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.required == nil {
		return vm.record("submit required staff", ErrWeekNotFetched)
	}
	if !coversExactly(items, vm.required.DisplayDates) {
		return vm.record("submit required staff", ErrRequirementDatesMismatch)
	}

	if err := vm.gateway.UpdateRequiredStaff(ctx, vm.required.Role, vm.required.Offset, items); err != nil {
		return vm.record("submit required staff", err)
	}

	data, err := vm.gateway.FetchRequiredStaff(ctx, vm.required.Role, vm.required.Offset)
	if err != nil {
		return fmt.Errorf("requirements saved but view refresh failed: %w", err)
	}
	vm.required = &RequiredStaffView{
		Role:         vm.required.Role,
		Offset:       vm.required.Offset,
		DisplayDates: data.DisplayDates,
		Existing:     data.Existing,
	}
	return vm.record("submit required staff", nil)
}

func coversExactly(items []model.RequiredStaffItem, dates []string) bool {
	if len(items) != len(dates) {
		return false
	}
	want := make(map[string]bool, len(dates))
	for _, d := range dates {
		want[d] = true
	}
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if !want[item.Date] || seen[item.Date] {
			return false
		}
		seen[item.Date] = true
	}
	return true
}

// FetchConsolidated loads the read-only aggregate schedule for one staff
// category ("boh", "foh", "managers") and week.
func (vm *ViewModel) FetchConsolidated(ctx context.Context, viewType string, weekOffset int) (*ConsolidatedView, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	data, err := vm.gateway.FetchConsolidated(ctx, viewType, weekOffset)
	if err != nil {
		return nil, vm.record("fetch consolidated", err)
	}
	view := &ConsolidatedView{
		ViewType:   viewType,
		Offset:     weekOffset,
		Users:      data.Users,
		byUserDate: data.ByUserDate,
	}
	vm.consolidated = view
	vm.record("fetch consolidated", nil)
	return view, nil
}
