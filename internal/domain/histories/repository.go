package histories

import "context"

type Repository interface {
	Create(ctx context.Context, h History) error
	Update(ctx context.Context, h History) error
	GetByID(ctx context.Context, id string) (History, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, clinicID string) ([]History, error)

	ListByHorse(ctx context.Context, horseID string) ([]History, error)
	ListByEvent(ctx context.Context, eventID string) ([]History, error)

	// MarkInvoiced enlaza la factura solo si la historia no tiene una.
	// Si ya está facturada devuelve apperr.ErrConflict.
	MarkInvoiced(ctx context.Context, id, invoiceID string) error
	// ClearInvoice quita el enlace si apunta a invoiceID; si no, no hace nada.
	ClearInvoice(ctx context.Context, id, invoiceID string) error

	DeleteByHorse(ctx context.Context, horseID string) error
	DetachEvent(ctx context.Context, eventID string) error
}
