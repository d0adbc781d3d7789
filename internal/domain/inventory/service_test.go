package inventory_test

import (
	"context"
	"testing"

	mem "equine-clinic/internal/adapters/storage/memory"
	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/domain/calendar"
	"equine-clinic/internal/domain/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsume_FloorsAtZero(t *testing.T) {
	svc := inventory.NewService(mem.NewInventoryRepo())
	ctx := context.Background()

	it, err := svc.Create(ctx, "c1", inventory.CreateInput{Name: "Jeringa 10ml", Stock: 4, Minimum: 10, Unit: "und"})
	require.NoError(t, err)

	after, err := svc.Consume(ctx, "c1", it.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 1.0, after.Stock)

	after, err = svc.Consume(ctx, "c1", it.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, after.Stock)

	_, err = svc.Consume(ctx, "c1", it.ID, -1)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Consume(ctx, "c2", it.ID, 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestLowStockListAndRestock(t *testing.T) {
	svc := inventory.NewService(mem.NewInventoryRepo())
	ctx := context.Background()

	low, err := svc.Create(ctx, "c1", inventory.CreateInput{Name: "Fenilbutazona", Category: "Medicamentos", Stock: 3, Minimum: 5})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "c1", inventory.CreateInput{Name: "Gasas", Category: "Material", Stock: 5, Minimum: 5, Supplier: "Droguería Central"})
	require.NoError(t, err)

	list, err := svc.LowStock(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, low.ID, list[0].ID)

	bySupplier, err := svc.Search(ctx, "c1", "central")
	require.NoError(t, err)
	require.Len(t, bySupplier, 1)
	assert.Equal(t, "Gasas", bySupplier[0].Name)

	day := calendar.NewDate(2024, 3, 14)
	restocked, err := svc.Restock(ctx, "c1", low.ID, inventory.RestockInput{Quantity: 10, Date: day})
	require.NoError(t, err)
	assert.Equal(t, 13.0, restocked.Stock)
	assert.Equal(t, day, restocked.LastPurchase)
	assert.False(t, restocked.LowStock())

	_, err = svc.Restock(ctx, "c1", low.ID, inventory.RestockInput{Quantity: 0})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
