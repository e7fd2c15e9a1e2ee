package schedule

import (
	"sort"
	"time"

	"github.com/harbourline/venue-cli/pkg/core/model"
)

const dateLayout = "2006-01-02"

// AssignedWeekView is the cached staff-facing week: the server's 7 ordered
// dates, the caller's shifts keyed by date, and any venue closure
// annotations derived from config.
type AssignedWeekView struct {
	Offset      int
	WeekDates   []string
	ShiftsByDay map[string][]model.ScheduleItem
	ClosedDates map[string]string // date -> closure label
}

// ShiftsForDate returns the shifts on a date. An absent date is an empty
// day, not an error.
func (v *AssignedWeekView) ShiftsForDate(date string) []model.ScheduleItem {
	if v == nil || v.ShiftsByDay == nil {
		return []model.ScheduleItem{}
	}
	if shifts, ok := v.ShiftsByDay[date]; ok {
		return shifts
	}
	return []model.ScheduleItem{}
}

// DisplayDates returns the week's dates minus Monday: the operative
// business week runs Tuesday to Sunday in staff-facing views. Mutations
// always address the full 7-day set.
func (v *AssignedWeekView) DisplayDates() []string {
	if v == nil {
		return nil
	}
	dates := make([]string, 0, len(v.WeekDates))
	for _, d := range v.WeekDates {
		parsed, err := time.Parse(dateLayout, d)
		if err == nil && parsed.Weekday() == time.Monday {
			continue
		}
		dates = append(dates, d)
	}
	return dates
}

// ItemByID finds a schedule item anywhere in the cached week.
func (v *AssignedWeekView) ItemByID(scheduleID int64) (model.ScheduleItem, bool) {
	if v == nil {
		return model.ScheduleItem{}, false
	}
	for _, shifts := range v.ShiftsByDay {
		for _, item := range shifts {
			if item.ID == scheduleID {
				return item, true
			}
		}
	}
	return model.ScheduleItem{}, false
}

// ManageSwapsView is the cached manager swaps view for one week.
type ManageSwapsView struct {
	Offset  int
	Pending []model.SwapRecord
	History []model.SwapRecord
}

// PendingByID finds a swap in the actionable list.
func (v *ManageSwapsView) PendingByID(swapID int64) (model.SwapRecord, bool) {
	if v == nil {
		return model.SwapRecord{}, false
	}
	for _, s := range v.Pending {
		if s.ID == swapID {
			return s, true
		}
	}
	return model.SwapRecord{}, false
}

// ManageVolunteeredView is the cached manager volunteered-shifts view for
// one week.
type ManageVolunteeredView struct {
	Offset     int
	Actionable []model.VolunteeredShift
	History    []model.VolunteeredShift
}

// ActionableByID finds a volunteered shift in the actionable list.
func (v *ManageVolunteeredView) ActionableByID(shiftID int64) (model.VolunteeredShift, bool) {
	if v == nil {
		return model.VolunteeredShift{}, false
	}
	for _, s := range v.Actionable {
		if s.ID == shiftID {
			return s, true
		}
	}
	return model.VolunteeredShift{}, false
}

// RequiredStaffView is the cached required-staff view for one role and
// week.
type RequiredStaffView struct {
	Role         string
	Offset       int
	DisplayDates []string
	Existing     map[string]model.RequiredStaffItem
}

// ConsolidatedView is the cached read-only aggregate schedule for one
// staff category and week.
type ConsolidatedView struct {
	ViewType   string
	Offset     int
	Users      []model.StaffMember
	byUserDate map[int64]map[string][]model.ScheduleItem
}

// Dates returns the sorted union of dates that carry any shift in the
// view, for iteration by presentation code.
func (v *ConsolidatedView) Dates() []string {
	if v == nil {
		return nil
	}
	seen := make(map[string]bool)
	for _, byDate := range v.byUserDate {
		for date := range byDate {
			seen[date] = true
		}
	}
	dates := make([]string, 0, len(seen))
	for date := range seen {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// ShiftsFor returns a user's shifts on a date. A user missing from the
// category and a date missing within a present user both mean "no shifts";
// the two cases are indistinguishable to the caller.
func (v *ConsolidatedView) ShiftsFor(userID int64, date string) []model.ScheduleItem {
	if v == nil {
		return []model.ScheduleItem{}
	}
	byDate, ok := v.byUserDate[userID]
	if !ok {
		return []model.ScheduleItem{}
	}
	if shifts, ok := byDate[date]; ok {
		return shifts
	}
	return []model.ScheduleItem{}
}
