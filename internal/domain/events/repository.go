package events

import (
	"context"

	"equine-clinic/internal/domain/calendar"
)

type Repository interface {
	Create(ctx context.Context, e Event) error
	Update(ctx context.Context, e Event) error
	GetByID(ctx context.Context, id string) (Event, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, clinicID string, filter ListFilter) ([]Event, error)

	// ApplyHistory suma revenue, incrementa AnimalsServed y agrega los
	// servicios que falten, en una sola operación.
	ApplyHistory(ctx context.Context, id string, revenue float64, services []string) error
	SetCounters(ctx context.Context, id string, animals int, revenue float64, services []string) error
	AddImage(ctx context.Context, id, key string) error
}

// ListFilter filtra por igualdad y rango de fechas, lo que soporta el row store.
// La búsqueda por texto se resuelve en el servicio.
type ListFilter struct {
	Types    []Type
	Statuses []Status
	From     *calendar.Date // StartDate >= From
	To       *calendar.Date // StartDate <= To

	// Limit lo aplica el servicio después de ordenar; los repos lo ignoran.
	Limit int
}

// Match aplica el filtro a un evento (lo usa el adapter in-memory).
func (f ListFilter) Match(e Event) bool {
	if len(f.Types) > 0 && !contains(f.Types, e.Type) {
		return false
	}
	if len(f.Statuses) > 0 && !contains(f.Statuses, e.Status) {
		return false
	}
	if f.From != nil && e.StartDate.Before(*f.From) {
		return false
	}
	if f.To != nil && e.StartDate.After(*f.To) {
		return false
	}
	return true
}

func contains[T comparable](xs []T, v T) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
