package ops

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/harbourline/venue-cli/pkg/core/model"
)

// BookingsGateway is what the bookings view-model needs from the transport
// layer.
type BookingsGateway interface {
	FetchBookings(ctx context.Context, date string) ([]model.Booking, error)
	CreateBooking(ctx context.Context, b model.Booking) error
	CancelBooking(ctx context.Context, bookingID int64) error
}

// NewBookingInput is a create request, validated before the call goes out.
type NewBookingInput struct {
	Date      string `validate:"required,datetime=2006-01-02"`
	Time      string `validate:"required"`
	Name      string `validate:"required"`
	PartySize int    `validate:"required,min=1"`
	Phone     string
	Notes     string
}

// BookingsViewModel caches one date's bookings.
type BookingsViewModel struct {
	recorder
	gateway BookingsGateway
	logger  *zap.Logger

	mu       sync.Mutex
	date     string
	bookings []model.Booking
}

// NewBookings builds a bookings view-model.
func NewBookings(gateway BookingsGateway, logger *zap.Logger) *BookingsViewModel {
	return &BookingsViewModel{gateway: gateway, logger: logger}
}

// Fetch loads the bookings for a date, replacing the cache.
func (vm *BookingsViewModel) Fetch(ctx context.Context, date string) ([]model.Booking, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.fetchLocked(ctx, date)
}

func (vm *BookingsViewModel) fetchLocked(ctx context.Context, date string) ([]model.Booking, error) {
	bookings, err := vm.gateway.FetchBookings(ctx, date)
	if err != nil {
		return nil, vm.record(err)
	}
	vm.date = date
	vm.bookings = bookings
	vm.record(nil)
	return bookings, nil
}

// Bookings returns the cached list.
func (vm *BookingsViewModel) Bookings() []model.Booking {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.bookings
}

// Create records a new booking, then re-fetches its date.
func (vm *BookingsViewModel) Create(ctx context.Context, input NewBookingInput) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if err := validate.Struct(input); err != nil {
		return vm.record(fmt.Errorf("invalid booking: %w", err))
	}

	booking := model.Booking{
		Date:      input.Date,
		Time:      input.Time,
		Name:      input.Name,
		PartySize: input.PartySize,
		Phone:     input.Phone,
		Notes:     input.Notes,
	}
	if err := vm.gateway.CreateBooking(ctx, booking); err != nil {
		return vm.record(err)
	}
	vm.logger.Info("booking created", zap.String("date", input.Date), zap.String("name", input.Name))

	if _, err := vm.fetchLocked(ctx, input.Date); err != nil {
		return err
	}
	return vm.record(nil)
}

// Cancel cancels a booking, then re-fetches the cached date.
func (vm *BookingsViewModel) Cancel(ctx context.Context, bookingID int64) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if err := vm.gateway.CancelBooking(ctx, bookingID); err != nil {
		return vm.record(err)
	}
	if vm.date != "" {
		if _, err := vm.fetchLocked(ctx, vm.date); err != nil {
			return err
		}
	}
	return vm.record(nil)
}
