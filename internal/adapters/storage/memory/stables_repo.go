package memory

import (
	"context"

	"equine-clinic/internal/domain/stables"
)

type stableRepo struct {
	t *table[stables.Stable]
}

func NewStableRepo() stables.Repository {
	return &stableRepo{t: newTable("stable", func(s stables.Stable) string { return s.ID })}
}

func (r *stableRepo) Create(_ context.Context, s stables.Stable) error { return r.t.insert(s) }
func (r *stableRepo) Update(_ context.Context, s stables.Stable) error { return r.t.update(s) }
func (r *stableRepo) GetByID(_ context.Context, id string) (stables.Stable, error) {
	return r.t.get(id)
}
func (r *stableRepo) Delete(_ context.Context, id string) error { return r.t.remove(id) }

func (r *stableRepo) List(_ context.Context, clinicID string) ([]stables.Stable, error) {
	return r.t.filter(func(s stables.Stable) bool { return s.ClinicID == clinicID }), nil
}
