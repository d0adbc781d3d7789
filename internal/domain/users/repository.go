package users

import "context"

type Repository interface {
	Create(ctx context.Context, u User) error
	Update(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, clinicID string) ([]User, error)

	// ListAll recorre todas las clínicas (reconciliación de duplicados).
	ListAll(ctx context.Context) ([]User, error)
	// ListByEmail compara el email exacto.
	ListByEmail(ctx context.Context, email string) ([]User, error)
}
