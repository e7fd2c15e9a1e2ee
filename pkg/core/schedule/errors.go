package schedule

import "errors"

// Guard errors: local precondition violations caught before any network
// call is issued. They save a round-trip, nothing more; the server
// re-validates everything independently.
var (
	// ErrWeekNotFetched means an operation needs a week view that has not
	// been successfully fetched yet.
	ErrWeekNotFetched = errors.New("week not fetched yet")

	// ErrUnknownScheduleItem means the schedule id is not in the cached
	// week.
	ErrUnknownScheduleItem = errors.New("schedule item not found in fetched week")

	// ErrShiftNotAssigned means the target shift is already Pending, Open,
	// or PendingApproval; a change request needs a plain Assigned shift.
	ErrShiftNotAssigned = errors.New("shift is not in the Assigned state")

	// ErrInvalidSwapPart means the requested part is not a recognized
	// value.
	ErrInvalidSwapPart = errors.New("invalid swap part")

	// ErrUnknownSwap means the swap id is not in the cached pending list.
	ErrUnknownSwap = errors.New("swap not found in pending list")

	// ErrCovererRequired means Approve was attempted on a swap with no
	// pinned coverer and no coverer supplied.
	ErrCovererRequired = errors.New("a coverer is required to approve this swap")

	// ErrUnknownVolunteeredShift means the volunteered-shift id is not in
	// the cached actionable list.
	ErrUnknownVolunteeredShift = errors.New("volunteered shift not found in actionable list")

	// ErrNoEligibleVolunteers means Assign was attempted while the
	// eligible set is empty; only Cancel is available.
	ErrNoEligibleVolunteers = errors.New("no eligible volunteers; only cancel is available")

	// ErrVolunteerRequired means Assign was attempted without selecting a
	// volunteer while the eligible set is non-empty.
	ErrVolunteerRequired = errors.New("a volunteer must be selected to assign this shift")

	// ErrVolunteerNotEligible means the selected volunteer is not in the
	// server-computed eligible set from the last fetch.
	ErrVolunteerNotEligible = errors.New("selected volunteer is not eligible")

	// ErrRequirementDatesMismatch means a required-staff submission does
	// not cover exactly the display-date set of the last fetch.
	ErrRequirementDatesMismatch = errors.New("requirements must cover exactly the fetched display dates")
)
