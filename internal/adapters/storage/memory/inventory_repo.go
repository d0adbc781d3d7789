package memory

import (
	"context"

	"equine-clinic/internal/domain/inventory"
)

type inventoryRepo struct {
	t *table[inventory.Item]
}

func NewInventoryRepo() inventory.Repository {
	return &inventoryRepo{t: newTable("inventory item", func(it inventory.Item) string { return it.ID })}
}

func (r *inventoryRepo) Create(_ context.Context, it inventory.Item) error { return r.t.insert(it) }
func (r *inventoryRepo) Update(_ context.Context, it inventory.Item) error { return r.t.update(it) }
func (r *inventoryRepo) GetByID(_ context.Context, id string) (inventory.Item, error) {
	return r.t.get(id)
}
func (r *inventoryRepo) Delete(_ context.Context, id string) error { return r.t.remove(id) }

func (r *inventoryRepo) List(_ context.Context, clinicID string) ([]inventory.Item, error) {
	return r.t.filter(func(it inventory.Item) bool { return it.ClinicID == clinicID }), nil
}

func (r *inventoryRepo) AdjustStock(_ context.Context, id string, delta float64) (inventory.Item, error) {
	return r.t.mutate(id, func(it *inventory.Item) error {
		it.Stock = max(it.Stock+delta, 0)
		return nil
	})
}
