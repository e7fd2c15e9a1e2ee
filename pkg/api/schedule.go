package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/harbourline/venue-cli/pkg/core/model"
)

// AssignedWeek is the decoded payload of the my-assigned-shifts endpoint:
// the week's 7 ordered dates plus the caller's shifts keyed by date.
type AssignedWeek struct {
	WeekDates   []string
	ShiftsByDay map[string][]model.ScheduleItem
}

// ManageSwaps is the decoded manager swaps payload: actionable pending
// requests plus the full in-window history, independently ordered by the
// server.
type ManageSwaps struct {
	Pending []model.SwapRecord
	History []model.SwapRecord
}

// ManageVolunteered is the decoded manager volunteered-shifts payload.
type ManageVolunteered struct {
	Actionable []model.VolunteeredShift
	History    []model.VolunteeredShift
}

// RequiredStaff is the decoded required-staff payload for one role and
// week: the dates to display and any previously saved requirements keyed by
// date.
type RequiredStaff struct {
	DisplayDates []string
	Existing     map[string]model.RequiredStaffItem
}

// Consolidated is the decoded consolidated-schedule payload for one staff
// category: the category's members plus each member's shifts keyed by user
// id then date.
type Consolidated struct {
	Users      []model.StaffMember
	ByUserDate map[int64]map[string][]model.ScheduleItem
}

func weekQuery(weekOffset int) url.Values {
	return url.Values{"week_offset": []string{strconv.Itoa(weekOffset)}}
}

// FetchShiftDefinitions retrieves the global shift-times reference table.
func (c *Client) FetchShiftDefinitions(ctx context.Context) (*model.ShiftDefinitions, error) {
	var raw map[string]map[string]map[string]wireShiftWindow
	err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/schedules/shift_definitions"}, &raw)
	if err != nil {
		return nil, err
	}
	return decodeShiftDefinitions(raw), nil
}

// FetchAssignedShifts retrieves the caller's shifts for the week at the
// given offset from the current week.
func (c *Client) FetchAssignedShifts(ctx context.Context, weekOffset int) (*AssignedWeek, error) {
	var raw struct {
		WeekDates     []string                      `json:"week_dates"`
		ScheduleByDay map[string][]wireScheduleItem `json:"schedule_by_day"`
	}
	err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/schedules/my_assigned_shifts",
		Query:  weekQuery(weekOffset),
	}, &raw)
	if err != nil {
		return nil, err
	}
	if raw.WeekDates == nil {
		return nil, missingField("assigned shifts", "week_dates")
	}

	week := &AssignedWeek{
		WeekDates:   raw.WeekDates,
		ShiftsByDay: make(map[string][]model.ScheduleItem, len(raw.ScheduleByDay)),
	}
	for date, items := range raw.ScheduleByDay {
		decoded := make([]model.ScheduleItem, 0, len(items))
		for _, w := range items {
			item, err := decodeScheduleItem(w, date)
			if err != nil {
				return nil, err
			}
			decoded = append(decoded, item)
		}
		week.ShiftsByDay[date] = decoded
	}
	return week, nil
}

// SubmitSwapRequest asks the server to put the given schedule item into the
// Pending swap state. desiredCoverID is nil for an open request.
func (c *Client) SubmitSwapRequest(ctx context.Context, scheduleID int64, desiredCoverID *int64, part model.SwapPart) error {
	body := map[string]any{
		"requester_schedule_id": scheduleID,
		"swap_part":             string(part),
	}
	if desiredCoverID != nil {
		body["desired_cover_id"] = *desiredCoverID
	}
	return c.Do(ctx, Request{Method: http.MethodPost, Path: "/submit-new-swap-request", Body: body}, nil)
}

// RelinquishShift releases the given schedule item into the volunteer
// pool. reason may be empty.
func (c *Client) RelinquishShift(ctx context.Context, scheduleID int64, reason string) error {
	body := map[string]any{"schedule_id": scheduleID}
	if reason != "" {
		body["relinquish_reason"] = reason
	}
	return c.Do(ctx, Request{Method: http.MethodPost, Path: "/relinquish_shift", Body: body}, nil)
}

// FetchManageSwaps retrieves the manager swap lists for a week.
func (c *Client) FetchManageSwaps(ctx context.Context, weekOffset int) (*ManageSwaps, error) {
	var raw struct {
		PendingSwaps   []wireSwapRecord `json:"pending_swaps"`
		AllSwapHistory []wireSwapRecord `json:"all_swaps_history"`
	}
	err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/schedules/manage_swaps_data",
		Query:  weekQuery(weekOffset),
	}, &raw)
	if err != nil {
		return nil, err
	}

	pending, err := decodeSwapRecords(raw.PendingSwaps)
	if err != nil {
		return nil, err
	}
	history, err := decodeSwapRecords(raw.AllSwapHistory)
	if err != nil {
		return nil, err
	}
	return &ManageSwaps{Pending: pending, History: history}, nil
}

// UpdateSwapStatus transitions a pending swap to a terminal state. action
// is "Approve" or "Deny"; covererID records who covers when the original
// request did not pin anyone.
func (c *Client) UpdateSwapStatus(ctx context.Context, swapID int64, action string, covererID *int64) error {
	body := map[string]any{"action": action}
	if covererID != nil {
		body["coverer_id"] = *covererID
	}
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/schedules/update_swap_status/" + strconv.FormatInt(swapID, 10),
		Body:   body,
	}, nil)
}

// FetchManageVolunteered retrieves the manager volunteered-shift lists for
// a week.
func (c *Client) FetchManageVolunteered(ctx context.Context, weekOffset int) (*ManageVolunteered, error) {
	var raw struct {
		Actionable []wireVolunteeredShift `json:"actionable"`
		History    []wireVolunteeredShift `json:"history"`
	}
	err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/schedules/manage_volunteered_shifts_data",
		Query:  weekQuery(weekOffset),
	}, &raw)
	if err != nil {
		return nil, err
	}

	actionable, err := decodeVolunteeredShifts(raw.Actionable)
	if err != nil {
		return nil, err
	}
	history, err := decodeVolunteeredShifts(raw.History)
	if err != nil {
		return nil, err
	}
	return &ManageVolunteered{Actionable: actionable, History: history}, nil
}

// UpdateVolunteeredStatus assigns a volunteered shift to one volunteer or
// cancels the whole cycle. action is "Assign" or "Cancel".
func (c *Client) UpdateVolunteeredStatus(ctx context.Context, shiftID int64, action string, approvedVolunteerID *int64) error {
	body := map[string]any{"action": action}
	if approvedVolunteerID != nil {
		body["approved_volunteer_id"] = *approvedVolunteerID
	}
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/schedules/update_volunteered_shift_status/" + strconv.FormatInt(shiftID, 10),
		Body:   body,
	}, nil)
}

// FetchRequiredStaff retrieves the per-date staffing requirements for one
// role and week.
func (c *Client) FetchRequiredStaff(ctx context.Context, role string, weekOffset int) (*RequiredStaff, error) {
	var raw struct {
		DisplayDates []string `json:"display_dates"`
		Existing     map[string]struct {
			Min *int `json:"min"`
			Max *int `json:"max"`
		} `json:"existing_minimums"`
	}
	err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/schedules/manage_required_staff_data/" + url.PathEscape(role),
		Query:  weekQuery(weekOffset),
	}, &raw)
	if err != nil {
		return nil, err
	}
	if raw.DisplayDates == nil {
		return nil, missingField("required staff", "display_dates")
	}

	result := &RequiredStaff{
		DisplayDates: raw.DisplayDates,
		Existing:     make(map[string]model.RequiredStaffItem, len(raw.Existing)),
	}
	for date, entry := range raw.Existing {
		item := model.RequiredStaffItem{Date: date}
		if entry.Min != nil {
			item.Min = *entry.Min
		}
		if entry.Max != nil {
			item.Max = *entry.Max
		}
		result.Existing[date] = item
	}
	return result, nil
}

// UpdateRequiredStaff saves the full requirement set for one role and week.
func (c *Client) UpdateRequiredStaff(ctx context.Context, role string, weekOffset int, items []model.RequiredStaffItem) error {
	requirements := make([]map[string]any, 0, len(items))
	for _, item := range items {
		requirements = append(requirements, map[string]any{
			"date": item.Date,
			"min":  item.Min,
			"max":  item.Max,
		})
	}
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/schedules/update_required_staff",
		Body: map[string]any{
			"role_name":    role,
			"week_offset":  weekOffset,
			"requirements": requirements,
		},
	}, nil)
}

// FetchConsolidated retrieves the read-only cross-staff schedule for one
// category ("boh", "foh", "managers") and week.
func (c *Client) FetchConsolidated(ctx context.Context, viewType string, weekOffset int) (*Consolidated, error) {
	var raw struct {
		UsersInCategory []wireStaffMember                        `json:"users_in_category"`
		ScheduleByUser  map[string]map[string][]wireScheduleItem `json:"schedule_by_user"`
	}
	err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/schedules/consolidated_schedule/" + url.PathEscape(viewType),
		Query:  weekQuery(weekOffset),
	}, &raw)
	if err != nil {
		return nil, err
	}

	users, err := decodeStaffMembers(raw.UsersInCategory)
	if err != nil {
		return nil, err
	}

	view := &Consolidated{
		Users:      users,
		ByUserDate: make(map[int64]map[string][]model.ScheduleItem, len(raw.ScheduleByUser)),
	}
	for userKey, byDate := range raw.ScheduleByUser {
		userID, err := strconv.ParseInt(userKey, 10, 64)
		if err != nil {
			return nil, &DecodeError{Entity: "consolidated schedule", Err: err}
		}
		dates := make(map[string][]model.ScheduleItem, len(byDate))
		for date, items := range byDate {
			decoded := make([]model.ScheduleItem, 0, len(items))
			for _, w := range items {
				item, err := decodeScheduleItem(w, date)
				if err != nil {
					return nil, err
				}
				decoded = append(decoded, item)
			}
			dates[date] = decoded
		}
		view.ByUserDate[userID] = dates
	}
	return view, nil
}
