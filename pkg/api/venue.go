package api

// Endpoint wrappers for the plain request/response surfaces: inventory,
// sales/delivery logs, bookings, leave, warnings, announcements, user
// admin. No coordination semantics here; each call is fetch or mutate.

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/harbourline/venue-cli/pkg/core/model"
)

type wireProduct struct {
	ID       *int64   `json:"id"`
	Name     *string  `json:"name"`
	Unit     *string  `json:"unit"`
	Price    *float64 `json:"price"`
	LastQty  *float64 `json:"last_qty"`
	Location *string  `json:"location"`
}

// FetchInventory lists the counted products at a location.
func (c *Client) FetchInventory(ctx context.Context, locationID int64) ([]model.Product, error) {
	var raw []wireProduct
	err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/inventory/" + strconv.FormatInt(locationID, 10),
	}, &raw)
	if err != nil {
		return nil, err
	}

	products := make([]model.Product, 0, len(raw))
	for _, w := range raw {
		if w.ID == nil {
			return nil, missingField("product", "id")
		}
		if w.Name == nil {
			return nil, missingField("product", "name")
		}
		p := model.Product{
			ID:       *w.ID,
			Name:     *w.Name,
			Unit:     strOrEmpty(w.Unit),
			Location: strOrEmpty(w.Location),
		}
		if w.Price != nil {
			p.Price = *w.Price
		}
		if w.LastQty != nil {
			p.LastQty = *w.LastQty
		}
		products = append(products, p)
	}
	return products, nil
}

// SubmitCounts uploads pencil-entered counts for a location in one batch.
func (c *Client) SubmitCounts(ctx context.Context, locationID int64, entries []model.CountEntry) error {
	counts := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		count := map[string]any{
			"product_id": e.ProductID,
			"quantity":   e.Quantity,
		}
		if e.Price != nil {
			count["price"] = *e.Price
		}
		counts = append(counts, count)
	}
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/inventory/submit_counts",
		Body:   map[string]any{"location_id": locationID, "counts": counts},
	}, nil)
}

type wireLogEntry struct {
	ID        *int64   `json:"id"`
	Kind      *string  `json:"kind"`
	Date      *string  `json:"date"`
	ProductID *int64   `json:"product_id"`
	Product   *string  `json:"product"`
	Quantity  *float64 `json:"quantity"`
	Amount    *float64 `json:"amount"`
	Note      *string  `json:"note"`
}

// FetchLogs lists sales/delivery entries for a date.
func (c *Client) FetchLogs(ctx context.Context, date string) ([]model.LogEntry, error) {
	var raw []wireLogEntry
	err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/logs",
		Query:  url.Values{"date": []string{date}},
	}, &raw)
	if err != nil {
		return nil, err
	}

	entries := make([]model.LogEntry, 0, len(raw))
	for _, w := range raw {
		if w.ID == nil {
			return nil, missingField("log entry", "id")
		}
		if w.Kind == nil {
			return nil, missingField("log entry", "kind")
		}
		entry := model.LogEntry{
			ID:      *w.ID,
			Kind:    model.LogKind(*w.Kind),
			Date:    strOrEmpty(w.Date),
			Product: strOrEmpty(w.Product),
			Note:    strOrEmpty(w.Note),
		}
		if w.ProductID != nil {
			entry.ProductID = *w.ProductID
		}
		if w.Quantity != nil {
			entry.Quantity = *w.Quantity
		}
		if w.Amount != nil {
			entry.Amount = *w.Amount
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// SubmitLog records one sale or delivery entry.
func (c *Client) SubmitLog(ctx context.Context, entry model.LogEntry) error {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/logs",
		Body: map[string]any{
			"kind":       string(entry.Kind),
			"date":       entry.Date,
			"product_id": entry.ProductID,
			"quantity":   entry.Quantity,
			"amount":     entry.Amount,
			"note":       entry.Note,
		},
	}, nil)
}

type wireBooking struct {
	ID        *int64  `json:"id"`
	Date      *string `json:"date"`
	Time      *string `json:"time"`
	Name      *string `json:"name"`
	PartySize *int    `json:"party_size"`
	Phone     *string `json:"phone"`
	Notes     *string `json:"notes"`
	Cancelled *bool   `json:"cancelled"`
}

// FetchBookings lists bookings for a date.
func (c *Client) FetchBookings(ctx context.Context, date string) ([]model.Booking, error) {
	var raw []wireBooking
	err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/bookings",
		Query:  url.Values{"date": []string{date}},
	}, &raw)
	if err != nil {
		return nil, err
	}

	bookings := make([]model.Booking, 0, len(raw))
	for _, w := range raw {
		if w.ID == nil {
			return nil, missingField("booking", "id")
		}
		if w.Name == nil {
			return nil, missingField("booking", "name")
		}
		b := model.Booking{
			ID:    *w.ID,
			Date:  strOrEmpty(w.Date),
			Time:  strOrEmpty(w.Time),
			Name:  *w.Name,
			Phone: strOrEmpty(w.Phone),
			Notes: strOrEmpty(w.Notes),
		}
		if w.PartySize != nil {
			b.PartySize = *w.PartySize
		}
		if w.Cancelled != nil {
			b.Cancelled = *w.Cancelled
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// CreateBooking records a new booking.
func (c *Client) CreateBooking(ctx context.Context, b model.Booking) error {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/bookings",
		Body: map[string]any{
			"date":       b.Date,
			"time":       b.Time,
			"name":       b.Name,
			"party_size": b.PartySize,
			"phone":      b.Phone,
			"notes":      b.Notes,
		},
	}, nil)
}

// CancelBooking cancels an existing booking.
func (c *Client) CancelBooking(ctx context.Context, bookingID int64) error {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/bookings/" + strconv.FormatInt(bookingID, 10) + "/cancel",
	}, nil)
}

type wireLeaveRequest struct {
	ID           *int64  `json:"id"`
	StaffID      *int64  `json:"staff_id"`
	StaffName    *string `json:"staff_name"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
	Reason       *string `json:"reason"`
	Status       *string `json:"status"`
	DocumentName *string `json:"document_name"`
}

func decodeLeaveRequest(w wireLeaveRequest) (model.LeaveRequest, error) {
	if w.ID == nil {
		return model.LeaveRequest{}, missingField("leave request", "id")
	}
	if w.StartDate == nil {
		return model.LeaveRequest{}, missingField("leave request", "start_date")
	}
	if w.EndDate == nil {
		return model.LeaveRequest{}, missingField("leave request", "end_date")
	}
	lr := model.LeaveRequest{
		ID:           *w.ID,
		StaffName:    strOrEmpty(w.StaffName),
		StartDate:    *w.StartDate,
		EndDate:      *w.EndDate,
		Reason:       strOrEmpty(w.Reason),
		Status:       model.LeavePending,
		DocumentName: strOrEmpty(w.DocumentName),
	}
	if w.StaffID != nil {
		lr.StaffID = *w.StaffID
	}
	if w.Status != nil {
		lr.Status = model.LeaveStatus(*w.Status)
	}
	return lr, nil
}

// FetchLeaveRequests lists the caller's own leave requests.
func (c *Client) FetchLeaveRequests(ctx context.Context) ([]model.LeaveRequest, error) {
	var raw []wireLeaveRequest
	err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/leave_requests"}, &raw)
	if err != nil {
		return nil, err
	}
	requests := make([]model.LeaveRequest, 0, len(raw))
	for _, w := range raw {
		lr, err := decodeLeaveRequest(w)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, nil
}

// SubmitLeaveRequest files a leave request, optionally with a supporting
// document streamed as a multipart attachment.
func (c *Client) SubmitLeaveRequest(ctx context.Context, startDate, endDate, reason string, doc *Attachment) error {
	fields := map[string]string{
		"start_date": startDate,
		"end_date":   endDate,
		"reason":     reason,
	}
	return c.DoMultipart(ctx, "/leave_requests", fields, doc, nil)
}

type wireWarning struct {
	ID           *int64  `json:"id"`
	StaffID      *int64  `json:"staff_id"`
	StaffName    *string `json:"staff_name"`
	IssuedBy     *string `json:"issued_by"`
	Date         *string `json:"date"`
	Reason       *string `json:"reason"`
	Acknowledged *bool   `json:"acknowledged"`
}

// FetchWarnings lists HR warnings visible to the caller.
func (c *Client) FetchWarnings(ctx context.Context) ([]model.Warning, error) {
	var raw []wireWarning
	err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/warnings"}, &raw)
	if err != nil {
		return nil, err
	}
	warnings := make([]model.Warning, 0, len(raw))
	for _, w := range raw {
		if w.ID == nil {
			return nil, missingField("warning", "id")
		}
		if w.Reason == nil {
			return nil, missingField("warning", "reason")
		}
		warning := model.Warning{
			ID:        *w.ID,
			StaffName: strOrEmpty(w.StaffName),
			IssuedBy:  strOrEmpty(w.IssuedBy),
			Date:      strOrEmpty(w.Date),
			Reason:    *w.Reason,
		}
		if w.StaffID != nil {
			warning.StaffID = *w.StaffID
		}
		if w.Acknowledged != nil {
			warning.Acknowledged = *w.Acknowledged
		}
		warnings = append(warnings, warning)
	}
	return warnings, nil
}

// IssueWarning records a new HR warning against a staff member.
func (c *Client) IssueWarning(ctx context.Context, staffID int64, reason string) error {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/warnings",
		Body:   map[string]any{"staff_id": staffID, "reason": reason},
	}, nil)
}

// AcknowledgeWarning marks a warning as seen by its recipient.
func (c *Client) AcknowledgeWarning(ctx context.Context, warningID int64) error {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/warnings/" + strconv.FormatInt(warningID, 10) + "/acknowledge",
	}, nil)
}

type wireAnnouncement struct {
	ID       *int64  `json:"id"`
	Date     *string `json:"date"`
	Author   *string `json:"author"`
	Title    *string `json:"title"`
	Body     *string `json:"body"`
	ReadByMe *bool   `json:"read_by_me"`
}

// FetchAnnouncements lists venue announcements.
func (c *Client) FetchAnnouncements(ctx context.Context) ([]model.Announcement, error) {
	var raw []wireAnnouncement
	err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/announcements"}, &raw)
	if err != nil {
		return nil, err
	}
	announcements := make([]model.Announcement, 0, len(raw))
	for _, w := range raw {
		if w.ID == nil {
			return nil, missingField("announcement", "id")
		}
		if w.Title == nil {
			return nil, missingField("announcement", "title")
		}
		a := model.Announcement{
			ID:     *w.ID,
			Date:   strOrEmpty(w.Date),
			Author: strOrEmpty(w.Author),
			Title:  *w.Title,
			Body:   strOrEmpty(w.Body),
		}
		if w.ReadByMe != nil {
			a.ReadByMe = *w.ReadByMe
		}
		announcements = append(announcements, a)
	}
	return announcements, nil
}

// PostAnnouncement publishes a new announcement.
func (c *Client) PostAnnouncement(ctx context.Context, title, body string) error {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/announcements",
		Body:   map[string]string{"title": title, "body": body},
	}, nil)
}

// MarkAnnouncementRead marks an announcement read for the caller.
func (c *Client) MarkAnnouncementRead(ctx context.Context, announcementID int64) error {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/announcements/" + strconv.FormatInt(announcementID, 10) + "/read",
	}, nil)
}

type wireUser struct {
	ID       *int64   `json:"id"`
	FullName *string  `json:"full_name"`
	Email    *string  `json:"email"`
	Roles    []string `json:"roles"`
	Active   *bool    `json:"active"`
}

// FetchUsers lists staff accounts (admin view).
func (c *Client) FetchUsers(ctx context.Context) ([]model.User, error) {
	var raw []wireUser
	err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/users"}, &raw)
	if err != nil {
		return nil, err
	}
	users := make([]model.User, 0, len(raw))
	for _, w := range raw {
		if w.ID == nil {
			return nil, missingField("user", "id")
		}
		if w.FullName == nil {
			return nil, missingField("user", "full_name")
		}
		u := model.User{
			ID:       *w.ID,
			FullName: *w.FullName,
			Email:    strOrEmpty(w.Email),
			Roles:    w.Roles,
			Active:   true,
		}
		if w.Active != nil {
			u.Active = *w.Active
		}
		users = append(users, u)
	}
	return users, nil
}

// CreateUser creates a staff account.
func (c *Client) CreateUser(ctx context.Context, fullName, email string, roles []string) error {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/users",
		Body:   map[string]any{"full_name": fullName, "email": email, "roles": roles},
	}, nil)
}

// SetUserRoles replaces a user's role set.
func (c *Client) SetUserRoles(ctx context.Context, userID int64, roles []string) error {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/users/" + strconv.FormatInt(userID, 10) + "/roles",
		Body:   map[string]any{"roles": roles},
	}, nil)
}

// ForceLogout invalidates another user's sessions server-side. The target
// discovers it on their next request as a session expiry.
func (c *Client) ForceLogout(ctx context.Context, userID int64) error {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/users/" + strconv.FormatInt(userID, 10) + "/force_logout",
	}, nil)
}
