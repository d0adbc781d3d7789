package events

import (
	"context"
	"sort"

	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/domain/billing"
)

// LinkedHistory es lo que Stats necesita de una historia clínica vinculada.
type LinkedHistory struct {
	HorseID string
	Total   float64 // total con IVA
	Items   []billing.LineItem
}

// HistorySource entrega las historias vinculadas a un evento.
type HistorySource interface {
	LinkedHistories(ctx context.Context, eventID string) ([]LinkedHistory, error)
}

type ServiceCount struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
}

type Stats struct {
	TotalAnimals       int            `json:"total_animals"`
	TotalServices      float64        `json:"total_services"`
	TotalRevenue       float64        `json:"total_revenue"`
	MostCommonServices []ServiceCount `json:"most_common_services"`
}

// ComputeStats recalcula todo desde las historias:
// animales = una por historia (igual que el contador guardado), servicios = suma de cantidades,
// ingresos = suma de totales con IVA. El ranking agrupa por descripción
// y ordena por cantidad descendente; los empates quedan en orden de aparición.
func ComputeStats(histories []LinkedHistory) Stats {
	index := make(map[string]int)
	ranking := make([]ServiceCount, 0)

	var st Stats
	for _, h := range histories {
		st.TotalRevenue += h.Total
		for _, it := range h.Items {
			st.TotalServices += it.Quantity
			i, ok := index[it.Description]
			if !ok {
				i = len(ranking)
				index[it.Description] = i
				ranking = append(ranking, ServiceCount{Description: it.Description})
			}
			ranking[i].Quantity += it.Quantity
		}
	}
	sort.SliceStable(ranking, func(i, j int) bool { return ranking[i].Quantity > ranking[j].Quantity })

	st.TotalAnimals = len(histories)
	st.MostCommonServices = ranking
	return st
}

func (s *Service) linked(ctx context.Context, clinicID, id string) ([]LinkedHistory, error) {
	if _, err := s.Get(ctx, clinicID, id); err != nil {
		return nil, err
	}
	if s.histories == nil {
		return nil, nil
	}
	hs, err := s.histories.LinkedHistories(ctx, id)
	if err != nil {
		return nil, apperr.Collaborator("events.linked_histories", err)
	}
	return hs, nil
}

func (s *Service) Stats(ctx context.Context, clinicID, id string) (Stats, error) {
	hs, err := s.linked(ctx, clinicID, id)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(hs), nil
}

// Resync reescribe los contadores guardados con los valores recalculados.
// Corrige la deriva cuando se borran historias vinculadas.
func (s *Service) Resync(ctx context.Context, clinicID, id string) (Event, error) {
	hs, err := s.linked(ctx, clinicID, id)
	if err != nil {
		return Event{}, err
	}
	st := ComputeStats(hs)

	services := make([]string, 0, len(st.MostCommonServices))
	for _, sc := range st.MostCommonServices {
		services = append(services, sc.Description)
	}
	if err := s.repo.SetCounters(ctx, id, st.TotalAnimals, st.TotalRevenue, services); err != nil {
		return Event{}, apperr.Collaborator("events.resync", err)
	}
	return s.Get(ctx, clinicID, id)
}
