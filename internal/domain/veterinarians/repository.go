package veterinarians

import "context"

type Repository interface {
	Create(ctx context.Context, v Veterinarian) error
	Update(ctx context.Context, v Veterinarian) error
	GetByID(ctx context.Context, id string) (Veterinarian, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, clinicID string) ([]Veterinarian, error)
}
