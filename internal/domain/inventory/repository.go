package inventory

import "context"

type Repository interface {
	Create(ctx context.Context, it Item) error
	Update(ctx context.Context, it Item) error
	GetByID(ctx context.Context, id string) (Item, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, clinicID string) ([]Item, error)

	// AdjustStock suma delta al stock de forma atómica, sin bajar de cero.
	AdjustStock(ctx context.Context, id string, delta float64) (Item, error)
}
