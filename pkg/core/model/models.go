package model

import "strings"

// ShiftType identifies the kind of work period a schedule item covers.
type ShiftType string

const (
	ShiftDay    ShiftType = "Day"
	ShiftNight  ShiftType = "Night"
	ShiftDouble ShiftType = "Double"

	// Legacy wire values still emitted for records created before the
	// Day/Night rename. They normalize to the current types.
	ShiftMorning ShiftType = "Morning"
	ShiftEvening ShiftType = "Evening"

	ShiftUnknown ShiftType = "Unknown"
)

// ParseShiftType maps a raw wire value to a ShiftType. Unrecognized values
// come back as ShiftUnknown rather than an error so a single odd record
// cannot sink a whole week fetch.
func ParseShiftType(raw string) ShiftType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "day":
		return ShiftDay
	case "night":
		return ShiftNight
	case "double":
		return ShiftDouble
	case "morning":
		return ShiftMorning
	case "evening":
		return ShiftEvening
	default:
		return ShiftUnknown
	}
}

// Normalized collapses legacy variants onto their current equivalents.
func (t ShiftType) Normalized() ShiftType {
	switch t {
	case ShiftMorning:
		return ShiftDay
	case ShiftEvening:
		return ShiftNight
	default:
		return t
	}
}

// IsDouble reports whether the shift spans both the day and night halves.
func (t ShiftType) IsDouble() bool {
	return t.Normalized() == ShiftDouble
}

// ShiftStatus is the server-owned lifecycle state of a schedule item.
// The client never advances a status locally; it only re-reads it.
type ShiftStatus string

const (
	StatusAssigned        ShiftStatus = "Assigned"
	StatusPending         ShiftStatus = "Pending"
	StatusOpen            ShiftStatus = "Open"
	StatusPendingApproval ShiftStatus = "PendingApproval"
)

// ParseShiftStatus maps a raw wire value to a ShiftStatus.
func ParseShiftStatus(raw string) (ShiftStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "assigned":
		return StatusAssigned, true
	case "pending":
		return StatusPending, true
	case "open":
		return StatusOpen, true
	case "pendingapproval", "pending_approval":
		return StatusPendingApproval, true
	default:
		return "", false
	}
}

// CanRequestChange reports whether a swap or relinquish may be requested
// against a shift in this status. Only plain assigned shifts qualify; a
// shift already in flight must resolve first.
func (s ShiftStatus) CanRequestChange() bool {
	return s == StatusAssigned
}

// SwapPart selects which half of a shift a swap request covers. The
// day/night split only applies to Double shifts; everything else is full.
type SwapPart string

const (
	SwapFull  SwapPart = "full"
	SwapDay   SwapPart = "day"
	SwapNight SwapPart = "night"
)

// ValidFor reports whether the part is a legal selection for the given
// shift type.
func (p SwapPart) ValidFor(t ShiftType) bool {
	switch p {
	case SwapFull:
		return true
	case SwapDay, SwapNight:
		return t.IsDouble()
	default:
		return false
	}
}

// ScheduleItem is one assigned shift instance for one staff member on one
// date. StartTime/EndTime are only set when the record overrides the
// canonical times from the shift definitions.
type ScheduleItem struct {
	ID        int64
	Date      string // ISO yyyy-mm-dd
	Type      ShiftType
	Status    ShiftStatus
	StartTime string
	EndTime   string
}

// StaffMember is the minimal identity the scheduling views deal in.
type StaffMember struct {
	ID       int64
	FullName string
}

// Tone is the three-way display classification of a terminal-capable
// lifecycle status. The exact colors are a presentation concern; the
// classification itself is part of the data contract.
type Tone int

const (
	ToneNeutral Tone = iota
	TonePositive
	ToneNegative
)

// SwapStatus is the server-owned lifecycle state of a swap request.
type SwapStatus string

const (
	SwapPending   SwapStatus = "Pending"
	SwapApproved  SwapStatus = "Approved"
	SwapDenied    SwapStatus = "Denied"
	SwapCancelled SwapStatus = "Cancelled"
)

// Tone classifies the status for display.
func (s SwapStatus) Tone() Tone {
	switch s {
	case SwapApproved:
		return TonePositive
	case SwapDenied, SwapCancelled:
		return ToneNegative
	default:
		return ToneNeutral
	}
}

// SwapRecord is one swap request, pending or historical. DesiredCoverID is
// nil when the requester left the request open to anyone; CovererID is nil
// until a decision records who actually covers.
type SwapRecord struct {
	ID                  int64
	RequesterScheduleID int64
	Requester           StaffMember
	Date                string
	Shift               ShiftType
	Part                SwapPart
	DesiredCoverID      *int64
	DesiredCoverName    string
	CovererID           *int64
	CovererName         string
	Status              SwapStatus
}

// HasPinnedCover reports whether the requester nominated a specific
// coverer. When false, approving the swap requires the manager to supply
// one.
func (r SwapRecord) HasPinnedCover() bool {
	return r.DesiredCoverID != nil
}

// VolunteeredStatus is the server-owned lifecycle state of a relinquished
// shift moving through its volunteer cycle.
type VolunteeredStatus string

const (
	VolunteeredOpen            VolunteeredStatus = "Open"
	VolunteeredPendingApproval VolunteeredStatus = "PendingApproval"
	VolunteeredAssigned        VolunteeredStatus = "Assigned"
	VolunteeredCancelled       VolunteeredStatus = "Cancelled"
)

// Tone classifies the status for display.
func (s VolunteeredStatus) Tone() Tone {
	switch s {
	case VolunteeredAssigned:
		return TonePositive
	case VolunteeredCancelled:
		return ToneNegative
	default:
		return ToneNeutral
	}
}

// VolunteeredShift is a relinquished shift open for volunteering.
// EligibleVolunteers is the server-computed subset of Volunteers who may
// actually take the shift (not the requester, not already scheduled that
// date); it is advisory at decision time but gates the Assign action
// client-side.
type VolunteeredShift struct {
	ID                 int64
	ScheduleID         int64
	Date               string
	Shift              ShiftType
	Requester          StaffMember
	Reason             string
	Status             VolunteeredStatus
	Volunteers         []StaffMember
	EligibleVolunteers []StaffMember
}

// CanAssign reports whether the Assign action is available at all: there
// must be at least one eligible volunteer. With an empty eligible set only
// Cancel remains.
func (v VolunteeredShift) CanAssign() bool {
	return len(v.EligibleVolunteers) > 0
}

// IsEligible reports whether the given staff id is in the eligible set.
func (v VolunteeredShift) IsEligible(staffID int64) bool {
	for _, e := range v.EligibleVolunteers {
		if e.ID == staffID {
			return true
		}
	}
	return false
}

// RequiredStaffItem is the per-date minimum/maximum headcount requirement
// for one role.
type RequiredStaffItem struct {
	Date string
	Min  int
	Max  int
}

// Profile is the cached identity of the signed-in user.
type Profile struct {
	ID       int64
	FullName string
	Roles    []string
}

// HasRole reports whether the profile carries the named role
// (case-insensitive).
func (p Profile) HasRole(role string) bool {
	for _, r := range p.Roles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}
