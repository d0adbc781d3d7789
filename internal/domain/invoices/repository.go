package invoices

import "context"

type Repository interface {
	Create(ctx context.Context, inv Invoice) error
	GetByID(ctx context.Context, id string) (Invoice, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, clinicID string) ([]Invoice, error)

	ListByHorse(ctx context.Context, horseID string) ([]Invoice, error)
	ListByEvent(ctx context.Context, eventID string) ([]Invoice, error)

	SetStatus(ctx context.Context, id string, status Status) (Invoice, error)
	DeleteByHorse(ctx context.Context, horseID string) error
	DetachEvent(ctx context.Context, eventID string) error
}

// Sequencer entrega números monótonos por clínica y año, empezando en 1.
type Sequencer interface {
	Next(ctx context.Context, clinicID string, year int) (int64, error)
}

// Locker serializa la emisión por historia. unlock es siempre no-nil cuando err == nil.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
