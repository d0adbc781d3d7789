package clinics

import "context"

type Repository interface {
	Create(ctx context.Context, c Clinic) error
	Update(ctx context.Context, c Clinic) error
	GetByID(ctx context.Context, id string) (Clinic, error)
}
