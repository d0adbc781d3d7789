package postgres

import (
	"context"
	"database/sql"

	"equine-clinic/internal/domain/users"

	sq "github.com/Masterminds/squirrel"
)

type UsersRepo struct{ c crud[users.User] }

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{c: crud[users.User]{
		db: db, table: "users", entity: "user",
		idOf: func(u users.User) string { return u.ID },
		values: func(u users.User) map[string]any {
			return map[string]any{
				"clinic_id":     u.ClinicID,
				"name":          u.Name,
				"email":         u.Email,
				"role":          string(u.Role),
				"active":        u.Active,
				"phone":         u.Phone,
				"specialty":     u.Specialty,
				"password_hash": u.PasswordHash,
				"created_at":    u.CreatedAt,
				"updated_at":    u.UpdatedAt,
			}
		},
	}}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error { return r.c.create(ctx, u) }
func (r *UsersRepo) Update(ctx context.Context, u users.User) error { return r.c.update(ctx, u) }
func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return r.c.get(ctx, id)
}
func (r *UsersRepo) Delete(ctx context.Context, id string) error { return r.c.remove(ctx, id) }

func (r *UsersRepo) List(ctx context.Context, clinicID string) ([]users.User, error) {
	return r.c.list(ctx, sq.Eq{"clinic_id": clinicID})
}

func (r *UsersRepo) ListAll(ctx context.Context) ([]users.User, error) {
	return r.c.list(ctx, nil)
}

func (r *UsersRepo) ListByEmail(ctx context.Context, email string) ([]users.User, error) {
	return r.c.list(ctx, sq.Eq{"email": email})
}
