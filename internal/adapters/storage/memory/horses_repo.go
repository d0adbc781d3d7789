package memory

import (
	"context"
	"slices"

	"equine-clinic/internal/domain/calendar"
	"equine-clinic/internal/domain/horses"
)

type horseRepo struct {
	t *table[horses.Horse]
}

func NewHorseRepo() horses.Repository {
	return &horseRepo{t: newTable("horse", func(h horses.Horse) string { return h.ID })}
}

func (r *horseRepo) Create(_ context.Context, h horses.Horse) error {
	return r.t.insert(cloneHorse(h))
}

func (r *horseRepo) Update(_ context.Context, h horses.Horse) error {
	return r.t.update(cloneHorse(h))
}

func (r *horseRepo) GetByID(_ context.Context, id string) (horses.Horse, error) {
	h, err := r.t.get(id)
	return cloneHorse(h), err
}

func (r *horseRepo) Delete(_ context.Context, id string) error { return r.t.remove(id) }

func (r *horseRepo) List(_ context.Context, clinicID string) ([]horses.Horse, error) {
	items := r.t.filter(func(h horses.Horse) bool { return h.ClinicID == clinicID })
	for i := range items {
		items[i] = cloneHorse(items[i])
	}
	return items, nil
}

func (r *horseRepo) SetLastCheckup(_ context.Context, id string, d calendar.Date) error {
	_, err := r.t.mutate(id, func(h *horses.Horse) error {
		h.LastCheckup = d
		return nil
	})
	return err
}

// cloneHorse evita compartir el slice de medicaciones con el llamador.
func cloneHorse(h horses.Horse) horses.Horse {
	h.Medications = slices.Clone(h.Medications)
	return h
}
