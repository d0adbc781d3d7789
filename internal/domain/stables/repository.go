package stables

import "context"

type Repository interface {
	Create(ctx context.Context, s Stable) error
	Update(ctx context.Context, s Stable) error
	GetByID(ctx context.Context, id string) (Stable, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, clinicID string) ([]Stable, error)
}
