package memory

import (
	"context"

	"equine-clinic/internal/domain/catalog"
)

type catalogRepo struct {
	t *table[catalog.Item]
}

func NewCatalogRepo() catalog.Repository {
	return &catalogRepo{t: newTable("service", func(it catalog.Item) string { return it.ID })}
}

func (r *catalogRepo) Create(_ context.Context, it catalog.Item) error { return r.t.insert(it) }
func (r *catalogRepo) Update(_ context.Context, it catalog.Item) error { return r.t.update(it) }
func (r *catalogRepo) GetByID(_ context.Context, id string) (catalog.Item, error) {
	return r.t.get(id)
}
func (r *catalogRepo) Delete(_ context.Context, id string) error { return r.t.remove(id) }

func (r *catalogRepo) List(_ context.Context, clinicID string) ([]catalog.Item, error) {
	return r.t.filter(func(it catalog.Item) bool { return it.ClinicID == clinicID }), nil
}
