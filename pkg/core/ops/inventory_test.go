package ops

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/harbourline/venue-cli/pkg/core/model"
)

type fakeInventoryGateway struct {
	products   []model.Product
	fetchErr   error
	fetchCalls []int64

	submitErr     error
	submitted     []model.CountEntry
	submittedLoc  int64
	submitCallCnt int
}

func (f *fakeInventoryGateway) FetchInventory(ctx context.Context, locationID int64) ([]model.Product, error) {
	f.fetchCalls = append(f.fetchCalls, locationID)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.products, nil
}

func (f *fakeInventoryGateway) SubmitCounts(ctx context.Context, locationID int64, entries []model.CountEntry) error {
	f.submitCallCnt++
	f.submittedLoc = locationID
	f.submitted = entries
	return f.submitErr
}

func TestInventory_FetchCachesProducts(t *testing.T) {
	gw := &fakeInventoryGateway{products: []model.Product{{ID: 1, Name: "House Lager"}}}
	vm := NewInventory(gw, zap.NewNop())

	products, err := vm.Fetch(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, products, vm.Products())
	assert.Equal(t, []int64{3}, gw.fetchCalls)
}

func TestInventory_FetchFailureKeepsCache(t *testing.T) {
	gw := &fakeInventoryGateway{products: []model.Product{{ID: 1}}}
	vm := NewInventory(gw, zap.NewNop())

	_, err := vm.Fetch(context.Background(), 3)
	require.NoError(t, err)

	gw.fetchErr = errors.New("boom")
	_, err = vm.Fetch(context.Background(), 3)
	require.Error(t, err)
	assert.Len(t, vm.Products(), 1)
	assert.NotEmpty(t, vm.LastError())
}

func TestInventory_SubmitBatchesPencilEntries(t *testing.T) {
	gw := &fakeInventoryGateway{products: []model.Product{{ID: 1}, {ID: 2}}}
	vm := NewInventory(gw, zap.NewNop())
	ctx := context.Background()

	_, err := vm.Fetch(ctx, 3)
	require.NoError(t, err)

	price := 4.50
	vm.PencilCount(1, 12, nil)
	vm.PencilCount(2, 3, &price)
	// Re-penciling the same product replaces the entry, not appends.
	vm.PencilCount(1, 14, nil)
	assert.Len(t, vm.PendingEntries(), 2)

	require.NoError(t, vm.Submit(ctx))
	assert.Equal(t, int64(3), gw.submittedLoc)
	assert.Len(t, gw.submitted, 2)
	assert.Empty(t, vm.PendingEntries())

	// Initial fetch plus post-submit refresh.
	assert.Equal(t, []int64{3, 3}, gw.fetchCalls)
}

func TestInventory_SubmitWithNothingPenciled(t *testing.T) {
	gw := &fakeInventoryGateway{}
	vm := NewInventory(gw, zap.NewNop())

	err := vm.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNothingToSubmit)
	assert.Zero(t, gw.submitCallCnt)
}

func TestInventory_SubmitFailureKeepsPencil(t *testing.T) {
	gw := &fakeInventoryGateway{submitErr: errors.New("boom")}
	vm := NewInventory(gw, zap.NewNop())
	ctx := context.Background()

	_, err := vm.Fetch(ctx, 3)
	require.NoError(t, err)
	vm.PencilCount(1, 12, nil)

	require.Error(t, vm.Submit(ctx))
	// A failed submission keeps the counts for retry.
	assert.Len(t, vm.PendingEntries(), 1)
}

func TestInventory_SwitchingLocationDropsPencil(t *testing.T) {
	gw := &fakeInventoryGateway{}
	vm := NewInventory(gw, zap.NewNop())
	ctx := context.Background()

	_, err := vm.Fetch(ctx, 3)
	require.NoError(t, err)
	vm.PencilCount(1, 12, nil)

	_, err = vm.Fetch(ctx, 4)
	require.NoError(t, err)
	assert.Empty(t, vm.PendingEntries())
}
