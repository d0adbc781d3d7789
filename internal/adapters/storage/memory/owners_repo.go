package memory

import (
	"context"

	"equine-clinic/internal/domain/owners"
)

type ownerRepo struct {
	t *table[owners.Owner]
}

func NewOwnerRepo() owners.Repository {
	return &ownerRepo{t: newTable("owner", func(o owners.Owner) string { return o.ID })}
}

func (r *ownerRepo) Create(_ context.Context, o owners.Owner) error { return r.t.insert(o) }
func (r *ownerRepo) Update(_ context.Context, o owners.Owner) error { return r.t.update(o) }
func (r *ownerRepo) GetByID(_ context.Context, id string) (owners.Owner, error) {
	return r.t.get(id)
}
func (r *ownerRepo) Delete(_ context.Context, id string) error { return r.t.remove(id) }

func (r *ownerRepo) List(_ context.Context, clinicID string) ([]owners.Owner, error) {
	return r.t.filter(func(o owners.Owner) bool { return o.ClinicID == clinicID }), nil
}
