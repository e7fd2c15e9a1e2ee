package ops

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/harbourline/venue-cli/pkg/core/model"
)

// ErrNothingToSubmit means a count submission was attempted with no
// pencil-entered counts.
var ErrNothingToSubmit = errors.New("no counts entered")

// InventoryGateway is what the inventory view-model needs from the
// transport layer.
type InventoryGateway interface {
	FetchInventory(ctx context.Context, locationID int64) ([]model.Product, error)
	SubmitCounts(ctx context.Context, locationID int64, entries []model.CountEntry) error
}

// InventoryViewModel caches one location's product list and holds
// pencil-entered counts until they are submitted in a batch. The pencil
// entries are the only locally-edited state in the whole client.
type InventoryViewModel struct {
	recorder
	gateway InventoryGateway
	logger  *zap.Logger

	mu       sync.Mutex
	location int64
	products []model.Product
	pencil   map[int64]model.CountEntry
}

// NewInventory builds an inventory view-model.
func NewInventory(gateway InventoryGateway, logger *zap.Logger) *InventoryViewModel {
	return &InventoryViewModel{
		gateway: gateway,
		logger:  logger,
		pencil:  make(map[int64]model.CountEntry),
	}
}

// Fetch loads a location's products, replacing the cache. Switching
// location discards any pencil entries for the old one.
func (vm *InventoryViewModel) Fetch(ctx context.Context, locationID int64) ([]model.Product, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	products, err := vm.gateway.FetchInventory(ctx, locationID)
	if err != nil {
		return nil, vm.record(err)
	}
	if locationID != vm.location {
		vm.pencil = make(map[int64]model.CountEntry)
	}
	vm.location = locationID
	vm.products = products
	vm.record(nil)
	vm.logger.Info("inventory loaded",
		zap.Int64("location_id", locationID),
		zap.Int("products", len(products)))
	return products, nil
}

// Products returns the cached product list.
func (vm *InventoryViewModel) Products() []model.Product {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.products
}

// PencilCount records a count (and optionally a new price) for a product
// locally. Nothing reaches the server until Submit.
func (vm *InventoryViewModel) PencilCount(productID int64, quantity float64, price *float64) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.pencil[productID] = model.CountEntry{ProductID: productID, Quantity: quantity, Price: price}
}

// PendingEntries returns the pencil-entered counts awaiting submission.
func (vm *InventoryViewModel) PendingEntries() []model.CountEntry {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	entries := make([]model.CountEntry, 0, len(vm.pencil))
	for _, e := range vm.pencil {
		entries = append(entries, e)
	}
	return entries
}

// Submit uploads all pencil entries in one batch, then re-fetches the
// location and clears the pencil state.
func (vm *InventoryViewModel) Submit(ctx context.Context) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if len(vm.pencil) == 0 {
		return vm.record(ErrNothingToSubmit)
	}

	entries := make([]model.CountEntry, 0, len(vm.pencil))
	for _, e := range vm.pencil {
		entries = append(entries, e)
	}
	if err := vm.gateway.SubmitCounts(ctx, vm.location, entries); err != nil {
		return vm.record(err)
	}

	vm.pencil = make(map[int64]model.CountEntry)
	products, err := vm.gateway.FetchInventory(ctx, vm.location)
	if err != nil {
		return vm.record(err)
	}
	vm.products = products
	return vm.record(nil)
}
