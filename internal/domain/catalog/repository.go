package catalog

import "context"

type Repository interface {
	Create(ctx context.Context, it Item) error
	Update(ctx context.Context, it Item) error
	GetByID(ctx context.Context, id string) (Item, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, clinicID string) ([]Item, error)
}
