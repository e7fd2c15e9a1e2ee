package model

// Records for the non-scheduling venue surfaces: inventory, sales and
// delivery logs, bookings, leave, HR warnings, announcements, user admin.
// These are plain request/response records with no coordination semantics.

// Product is one counted inventory line at a location.
type Product struct {
	ID       int64
	Name     string
	Unit     string
	Price    float64
	LastQty  float64
	Location string
}

// CountEntry is a pencil-entered count/price for a product, held locally
// until submitted. This is the only locally-edited record in the client.
type CountEntry struct {
	ProductID int64
	Quantity  float64
	Price     *float64 // nil keeps the existing price
}

// LogKind distinguishes sales entries from delivery entries.
type LogKind string

const (
	LogSale     LogKind = "sale"
	LogDelivery LogKind = "delivery"
)

// LogEntry is one sales or delivery record.
type LogEntry struct {
	ID        int64
	Kind      LogKind
	Date      string
	ProductID int64
	Product   string
	Quantity  float64
	Amount    float64
	Note      string
}

// Booking is one table/venue booking.
type Booking struct {
	ID        int64
	Date      string
	Time      string
	Name      string
	PartySize int
	Phone     string
	Notes     string
	Cancelled bool
}

// LeaveStatus is the server-owned state of a leave request.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "Pending"
	LeaveApproved LeaveStatus = "Approved"
	LeaveDenied   LeaveStatus = "Denied"
)

// LeaveRequest is one leave request, optionally backed by an uploaded
// supporting document.
type LeaveRequest struct {
	ID           int64
	StaffID      int64
	StaffName    string
	StartDate    string
	EndDate      string
	Reason       string
	Status       LeaveStatus
	DocumentName string
}

// Warning is one HR warning issued to a staff member.
type Warning struct {
	ID           int64
	StaffID      int64
	StaffName    string
	IssuedBy     string
	Date         string
	Reason       string
	Acknowledged bool
}

// Announcement is one venue-wide notice.
type Announcement struct {
	ID       int64
	Date     string
	Author   string
	Title    string
	Body     string
	ReadByMe bool
}

// User is a staff account as seen by the admin views.
type User struct {
	ID       int64
	FullName string
	Email    string
	Roles    []string
	Active   bool
}
