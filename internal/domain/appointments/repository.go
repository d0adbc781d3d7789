package appointments

import (
	"context"

	"equine-clinic/internal/domain/calendar"
)

type Repository interface {
	Create(ctx context.Context, a Appointment) error
	Update(ctx context.Context, a Appointment) error
	GetByID(ctx context.Context, id string) (Appointment, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, clinicID string) ([]Appointment, error)

	ListByHorse(ctx context.Context, horseID string) ([]Appointment, error)
	ListByEvent(ctx context.Context, eventID string) ([]Appointment, error)
	// ListBetween filtra por rango de fechas inclusivo.
	ListBetween(ctx context.Context, clinicID string, from, to calendar.Date) ([]Appointment, error)

	SetCompleted(ctx context.Context, id string, completed bool) (Appointment, error)
	DeleteByHorse(ctx context.Context, horseID string) error
	DetachEvent(ctx context.Context, eventID string) error
}
