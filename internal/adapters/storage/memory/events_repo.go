package memory

import (
	"context"
	"slices"

	"equine-clinic/internal/domain/events"
)

type eventRepo struct {
	t *table[events.Event]
}

func NewEventRepo() events.Repository {
	return &eventRepo{t: newTable("event", func(e events.Event) string { return e.ID })}
}

func (r *eventRepo) Create(_ context.Context, e events.Event) error {
	return r.t.insert(cloneEvent(e))
}

func (r *eventRepo) Update(_ context.Context, e events.Event) error {
	// Contadores e imágenes sólo cambian por sus métodos dedicados.
	_, err := r.t.mutate(e.ID, func(cur *events.Event) error {
		e.AnimalsServed, e.Revenue = cur.AnimalsServed, cur.Revenue
		e.Services, e.Images = cur.Services, cur.Images
		*cur = e
		return nil
	})
	return err
}

func (r *eventRepo) GetByID(_ context.Context, id string) (events.Event, error) {
	e, err := r.t.get(id)
	return cloneEvent(e), err
}

func (r *eventRepo) Delete(_ context.Context, id string) error { return r.t.remove(id) }

func (r *eventRepo) List(_ context.Context, clinicID string, filter events.ListFilter) ([]events.Event, error) {
	items := r.t.filter(func(e events.Event) bool {
		return e.ClinicID == clinicID && filter.Match(e)
	})
	for i := range items {
		items[i] = cloneEvent(items[i])
	}
	return items, nil
}

func (r *eventRepo) ApplyHistory(_ context.Context, id string, revenue float64, services []string) error {
	_, err := r.t.mutate(id, func(e *events.Event) error {
		e.Revenue += revenue
		e.AnimalsServed++
		e.Services = slices.Clone(e.Services)
		for _, s := range services {
			if !slices.Contains(e.Services, s) {
				e.Services = append(e.Services, s)
			}
		}
		return nil
	})
	return err
}

func (r *eventRepo) SetCounters(_ context.Context, id string, animals int, revenue float64, services []string) error {
	_, err := r.t.mutate(id, func(e *events.Event) error {
		e.AnimalsServed = animals
		e.Revenue = revenue
		e.Services = slices.Clone(services)
		return nil
	})
	return err
}

func (r *eventRepo) AddImage(_ context.Context, id, key string) error {
	_, err := r.t.mutate(id, func(e *events.Event) error {
		e.Images = append(slices.Clone(e.Images), key)
		return nil
	})
	return err
}

func cloneEvent(e events.Event) events.Event {
	e.Services = slices.Clone(e.Services)
	e.Images = slices.Clone(e.Images)
	return e
}
