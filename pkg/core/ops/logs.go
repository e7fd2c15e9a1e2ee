package ops

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/harbourline/venue-cli/pkg/core/model"
)

// LogsGateway is what the sales/delivery log view-model needs from the
// transport layer.
type LogsGateway interface {
	FetchLogs(ctx context.Context, date string) ([]model.LogEntry, error)
	SubmitLog(ctx context.Context, entry model.LogEntry) error
}

// LogInput is a new sales or delivery entry, validated before the call
// goes out.
type LogInput struct {
	Kind      model.LogKind `validate:"required,oneof=sale delivery"`
	Date      string        `validate:"required,datetime=2006-01-02"`
	ProductID int64         `validate:"required,min=1"`
	Quantity  float64       `validate:"required,gt=0"`
	Amount    float64       `validate:"omitempty,gte=0"`
	Note      string
}

// LogsViewModel caches one date's sales/delivery entries.
type LogsViewModel struct {
	recorder
	gateway LogsGateway
	logger  *zap.Logger

	mu      sync.Mutex
	date    string
	entries []model.LogEntry
}

// NewLogs builds a sales/delivery log view-model.
func NewLogs(gateway LogsGateway, logger *zap.Logger) *LogsViewModel {
	return &LogsViewModel{gateway: gateway, logger: logger}
}

// Fetch loads the entries for a date, replacing the cache.
func (vm *LogsViewModel) Fetch(ctx context.Context, date string) ([]model.LogEntry, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.fetchLocked(ctx, date)
}

func (vm *LogsViewModel) fetchLocked(ctx context.Context, date string) ([]model.LogEntry, error) {
	entries, err := vm.gateway.FetchLogs(ctx, date)
	if err != nil {
		return nil, vm.record(err)
	}
	vm.date = date
	vm.entries = entries
	vm.record(nil)
	return entries, nil
}

// Entries returns the cached list.
func (vm *LogsViewModel) Entries() []model.LogEntry {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.entries
}

// Submit records a new entry, then re-fetches its date.
func (vm *LogsViewModel) Submit(ctx context.Context, input LogInput) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if err := validate.Struct(input); err != nil {
		return vm.record(fmt.Errorf("invalid log entry: %w", err))
	}

	entry := model.LogEntry{
		Kind:      input.Kind,
		Date:      input.Date,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		Amount:    input.Amount,
		Note:      input.Note,
	}
	if err := vm.gateway.SubmitLog(ctx, entry); err != nil {
		return vm.record(err)
	}
	vm.logger.Info("log entry submitted",
		zap.String("kind", string(input.Kind)),
		zap.String("date", input.Date))

	if _, err := vm.fetchLocked(ctx, input.Date); err != nil {
		return err
	}
	return vm.record(nil)
}
