package memory

import (
	"context"

	"equine-clinic/internal/domain/users"
)

type userRepo struct {
	t *table[users.User]
}

func NewUserRepo() users.Repository {
	return &userRepo{t: newTable("user", func(u users.User) string { return u.ID })}
}

func (r *userRepo) Create(_ context.Context, u users.User) error { return r.t.insert(u) }
func (r *userRepo) Update(_ context.Context, u users.User) error { return r.t.update(u) }

func (r *userRepo) GetByID(_ context.Context, id string) (users.User, error) {
	return r.t.get(id)
}

func (r *userRepo) Delete(_ context.Context, id string) error { return r.t.remove(id) }

func (r *userRepo) List(_ context.Context, clinicID string) ([]users.User, error) {
	return r.t.filter(func(u users.User) bool { return u.ClinicID == clinicID }), nil
}

func (r *userRepo) ListAll(_ context.Context) ([]users.User, error) {
	return r.t.filter(nil), nil
}

func (r *userRepo) ListByEmail(_ context.Context, email string) ([]users.User, error) {
	return r.t.filter(func(u users.User) bool { return u.Email == email }), nil
}
