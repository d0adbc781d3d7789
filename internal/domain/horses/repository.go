package horses

import (
	"context"

	"equine-clinic/internal/domain/calendar"
)

type Repository interface {
	Create(ctx context.Context, h Horse) error
	Update(ctx context.Context, h Horse) error
	GetByID(ctx context.Context, id string) (Horse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, clinicID string) ([]Horse, error)

	SetLastCheckup(ctx context.Context, id string, d calendar.Date) error
}
