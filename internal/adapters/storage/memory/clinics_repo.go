package memory

import (
	"context"

	"equine-clinic/internal/domain/clinics"
)

type clinicRepo struct {
	t *table[clinics.Clinic]
}

func NewClinicRepo() clinics.Repository {
	return &clinicRepo{t: newTable("clinic", func(c clinics.Clinic) string { return c.ID })}
}

func (r *clinicRepo) Create(_ context.Context, c clinics.Clinic) error { return r.t.insert(c) }
func (r *clinicRepo) Update(_ context.Context, c clinics.Clinic) error { return r.t.update(c) }

func (r *clinicRepo) GetByID(_ context.Context, id string) (clinics.Clinic, error) {
	return r.t.get(id)
}
