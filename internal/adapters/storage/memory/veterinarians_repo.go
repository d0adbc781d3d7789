package memory

import (
	"context"

	"equine-clinic/internal/domain/veterinarians"
)

type veterinarianRepo struct {
	t *table[veterinarians.Veterinarian]
}

func NewVeterinarianRepo() veterinarians.Repository {
	return &veterinarianRepo{t: newTable("veterinarian", func(v veterinarians.Veterinarian) string { return v.ID })}
}

func (r *veterinarianRepo) Create(_ context.Context, v veterinarians.Veterinarian) error {
	return r.t.insert(v)
}

func (r *veterinarianRepo) Update(_ context.Context, v veterinarians.Veterinarian) error {
	return r.t.update(v)
}

func (r *veterinarianRepo) GetByID(_ context.Context, id string) (veterinarians.Veterinarian, error) {
	return r.t.get(id)
}

func (r *veterinarianRepo) Delete(_ context.Context, id string) error { return r.t.remove(id) }

func (r *veterinarianRepo) List(_ context.Context, clinicID string) ([]veterinarians.Veterinarian, error) {
	return r.t.filter(func(v veterinarians.Veterinarian) bool { return v.ClinicID == clinicID }), nil
}
