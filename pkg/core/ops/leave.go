package ops

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/harbourline/venue-cli/pkg/api"
	"github.com/harbourline/venue-cli/pkg/core/model"
)

// LeaveGateway is what the leave view-model needs from the transport
// layer.
type LeaveGateway interface {
	FetchLeaveRequests(ctx context.Context) ([]model.LeaveRequest, error)
	SubmitLeaveRequest(ctx context.Context, startDate, endDate, reason string, doc *api.Attachment) error
}

// LeaveInput is a leave submission, validated before the call goes out.
type LeaveInput struct {
	StartDate string `validate:"required,datetime=2006-01-02"`
	EndDate   string `validate:"required,datetime=2006-01-02"`
	Reason    string `validate:"required"`
}

// LeaveDocument is an optional supporting document streamed with the
// submission.
type LeaveDocument struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

// LeaveViewModel caches the caller's leave requests.
type LeaveViewModel struct {
	recorder
	gateway LeaveGateway
	logger  *zap.Logger

	mu       sync.Mutex
	requests []model.LeaveRequest
}

// NewLeave builds a leave view-model.
func NewLeave(gateway LeaveGateway, logger *zap.Logger) *LeaveViewModel {
	return &LeaveViewModel{gateway: gateway, logger: logger}
}

// Fetch loads the caller's leave requests, replacing the cache.
func (vm *LeaveViewModel) Fetch(ctx context.Context) ([]model.LeaveRequest, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.fetchLocked(ctx)
}

func (vm *LeaveViewModel) fetchLocked(ctx context.Context) ([]model.LeaveRequest, error) {
	requests, err := vm.gateway.FetchLeaveRequests(ctx)
	if err != nil {
		return nil, vm.record(err)
	}
	vm.requests = requests
	vm.record(nil)
	return requests, nil
}

// Requests returns the cached list.
func (vm *LeaveViewModel) Requests() []model.LeaveRequest {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.requests
}

// Submit files a leave request, optionally with a supporting document,
// then re-fetches the list.
func (vm *LeaveViewModel) Submit(ctx context.Context, input LeaveInput, doc *LeaveDocument) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if err := validate.Struct(input); err != nil {
		return vm.record(fmt.Errorf("invalid leave request: %w", err))
	}

	var att *api.Attachment
	if doc != nil {
		att = &api.Attachment{
			FieldName:   "document",
			Filename:    doc.Filename,
			ContentType: doc.ContentType,
			Reader:      doc.Reader,
		}
	}
	if err := vm.gateway.SubmitLeaveRequest(ctx, input.StartDate, input.EndDate, input.Reason, att); err != nil {
		return vm.record(err)
	}
	vm.logger.Info("leave request submitted",
		zap.String("start", input.StartDate),
		zap.String("end", input.EndDate),
		zap.Bool("has_document", doc != nil))

	if _, err := vm.fetchLocked(ctx); err != nil {
		return err
	}
	return vm.record(nil)
}
