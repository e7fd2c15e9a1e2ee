package api

// Wire records and their decoders. Every optional field is a pointer so
// that a JSON null and an absent key land identically; decoding defaults
// absent optionals and rejects absent required fields with a DecodeError.

import (
	"github.com/harbourline/venue-cli/pkg/core/model"
)

type wireScheduleItem struct {
	ID        *int64  `json:"id"`
	Date      *string `json:"date"`
	ShiftType *string `json:"shift_type"`
	Status    *string `json:"status"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

// decodeScheduleItem maps one wire shift record. fallbackDate fills in when
// the record itself omits the date (the assigned-shifts payload keys shifts
// by date and may not repeat it per item).
func decodeScheduleItem(w wireScheduleItem, fallbackDate string) (model.ScheduleItem, error) {
	if w.ID == nil {
		return model.ScheduleItem{}, missingField("schedule item", "id")
	}
	if w.ShiftType == nil {
		return model.ScheduleItem{}, missingField("schedule item", "shift_type")
	}
	if w.Status == nil {
		return model.ScheduleItem{}, missingField("schedule item", "status")
	}
	status, ok := model.ParseShiftStatus(*w.Status)
	if !ok {
		return model.ScheduleItem{}, missingField("schedule item", "status")
	}

	date := fallbackDate
	if w.Date != nil {
		date = *w.Date
	}
	if date == "" {
		return model.ScheduleItem{}, missingField("schedule item", "date")
	}

	return model.ScheduleItem{
		ID:        *w.ID,
		Date:      date,
		Type:      model.ParseShiftType(*w.ShiftType),
		Status:    status,
		StartTime: strOrEmpty(w.StartTime),
		EndTime:   strOrEmpty(w.EndTime),
	}, nil
}

type wireStaffMember struct {
	ID       *int64  `json:"id"`
	FullName *string `json:"full_name"`
}

func decodeStaffMember(w wireStaffMember) (model.StaffMember, error) {
	if w.ID == nil {
		return model.StaffMember{}, missingField("staff member", "id")
	}
	return model.StaffMember{ID: *w.ID, FullName: strOrEmpty(w.FullName)}, nil
}

func decodeStaffMembers(ws []wireStaffMember) ([]model.StaffMember, error) {
	members := make([]model.StaffMember, 0, len(ws))
	for _, w := range ws {
		m, err := decodeStaffMember(w)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, nil
}

type wireSwapRecord struct {
	ID                  *int64  `json:"id"`
	RequesterScheduleID *int64  `json:"requester_schedule_id"`
	RequesterID         *int64  `json:"requester_id"`
	RequesterName       *string `json:"requester_name"`
	Date                *string `json:"date"`
	ShiftType           *string `json:"shift_type"`
	SwapPart            *string `json:"swap_part"`
	DesiredCoverID      *int64  `json:"desired_cover_id"`
	DesiredCoverName    *string `json:"desired_cover_name"`
	CovererID           *int64  `json:"coverer_id"`
	CovererName         *string `json:"coverer_name"`
	Status              *string `json:"status"`
}

func decodeSwapRecord(w wireSwapRecord) (model.SwapRecord, error) {
	if w.ID == nil {
		return model.SwapRecord{}, missingField("swap record", "id")
	}
	if w.Date == nil {
		return model.SwapRecord{}, missingField("swap record", "date")
	}
	if w.Status == nil {
		return model.SwapRecord{}, missingField("swap record", "status")
	}

	record := model.SwapRecord{
		ID:               *w.ID,
		Date:             *w.Date,
		Status:           model.SwapStatus(*w.Status),
		Part:             model.SwapFull,
		DesiredCoverID:   w.DesiredCoverID,
		DesiredCoverName: strOrEmpty(w.DesiredCoverName),
		CovererID:        w.CovererID,
		CovererName:      strOrEmpty(w.CovererName),
	}
	if w.RequesterScheduleID != nil {
		record.RequesterScheduleID = *w.RequesterScheduleID
	}
	if w.RequesterID != nil {
		record.Requester.ID = *w.RequesterID
	}
	record.Requester.FullName = strOrEmpty(w.RequesterName)
	if w.ShiftType != nil {
		record.Shift = model.ParseShiftType(*w.ShiftType)
	} else {
		record.Shift = model.ShiftUnknown
	}
	if w.SwapPart != nil {
		record.Part = model.SwapPart(*w.SwapPart)
	}
	return record, nil
}

func decodeSwapRecords(ws []wireSwapRecord) ([]model.SwapRecord, error) {
	records := make([]model.SwapRecord, 0, len(ws))
	for _, w := range ws {
		r, err := decodeSwapRecord(w)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

type wireVolunteeredShift struct {
	ID                 *int64            `json:"id"`
	ScheduleID         *int64            `json:"schedule_id"`
	Date               *string           `json:"date"`
	ShiftType          *string           `json:"shift_type"`
	RequesterID        *int64            `json:"requester_id"`
	RequesterName      *string           `json:"requester_name"`
	Reason             *string           `json:"relinquish_reason"`
	Status             *string           `json:"status"`
	Volunteers         []wireStaffMember `json:"volunteers"`
	EligibleVolunteers []wireStaffMember `json:"eligible_volunteers"`
}

func decodeVolunteeredShift(w wireVolunteeredShift) (model.VolunteeredShift, error) {
	if w.ID == nil {
		return model.VolunteeredShift{}, missingField("volunteered shift", "id")
	}
	if w.Date == nil {
		return model.VolunteeredShift{}, missingField("volunteered shift", "date")
	}
	if w.Status == nil {
		return model.VolunteeredShift{}, missingField("volunteered shift", "status")
	}

	volunteers, err := decodeStaffMembers(w.Volunteers)
	if err != nil {
		return model.VolunteeredShift{}, err
	}
	eligible, err := decodeStaffMembers(w.EligibleVolunteers)
	if err != nil {
		return model.VolunteeredShift{}, err
	}

	shift := model.VolunteeredShift{
		ID:                 *w.ID,
		Date:               *w.Date,
		Reason:             strOrEmpty(w.Reason),
		Status:             model.VolunteeredStatus(*w.Status),
		Volunteers:         volunteers,
		EligibleVolunteers: eligible,
	}
	if w.ScheduleID != nil {
		shift.ScheduleID = *w.ScheduleID
	}
	if w.RequesterID != nil {
		shift.Requester.ID = *w.RequesterID
	}
	shift.Requester.FullName = strOrEmpty(w.RequesterName)
	if w.ShiftType != nil {
		shift.Shift = model.ParseShiftType(*w.ShiftType)
	} else {
		shift.Shift = model.ShiftUnknown
	}
	return shift, nil
}

func decodeVolunteeredShifts(ws []wireVolunteeredShift) ([]model.VolunteeredShift, error) {
	shifts := make([]model.VolunteeredShift, 0, len(ws))
	for _, w := range ws {
		s, err := decodeVolunteeredShift(w)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}
	return shifts, nil
}

type wireShiftWindow struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// decodeShiftDefinitions maps the role→day→type→times table. Entries with
// unknown shift-type keys are kept under ShiftUnknown's normalized form
// only if parseable; otherwise skipped, since the table is display-only
// reference data.
func decodeShiftDefinitions(raw map[string]map[string]map[string]wireShiftWindow) *model.ShiftDefinitions {
	defs := &model.ShiftDefinitions{Roles: make(map[string]map[string]map[model.ShiftType]model.ShiftWindow)}
	for role, days := range raw {
		defs.Roles[role] = make(map[string]map[model.ShiftType]model.ShiftWindow, len(days))
		for day, byType := range days {
			typed := make(map[model.ShiftType]model.ShiftWindow, len(byType))
			for typeName, w := range byType {
				t := model.ParseShiftType(typeName)
				if t == model.ShiftUnknown {
					continue
				}
				typed[t.Normalized()] = model.ShiftWindow{
					Start: strOrEmpty(w.Start),
					End:   strOrEmpty(w.End),
				}
			}
			defs.Roles[role][day] = typed
		}
	}
	return defs
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
