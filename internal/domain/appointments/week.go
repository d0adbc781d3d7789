package appointments

import (
	"context"

	"equine-clinic/internal/domain/calendar"
)

// Week es la agenda semanal: la grilla posicionada más las citas de la ventana.
type Week struct {
	Reference    calendar.Date
	View         calendar.WeekView
	Appointments []Appointment
}

// Week arma la semana (lunes a domingo) que contiene ref, después de
// navegar con nav (prev, next, current o vacío).
func (s *Service) Week(ctx context.Context, clinicID string, ref calendar.Date, nav string, slotHeight float64) (Week, error) {
	if ref.IsZero() {
		ref = calendar.Today(s.now())
	}
	ref = calendar.Navigate(ref, nav, s.now())
	days := calendar.WeekOf(ref)

	items, err := s.ListBetween(ctx, clinicID, days[0], days[len(days)-1])
	if err != nil {
		return Week{}, err
	}
	entries := make([]calendar.Entry, 0, len(items))
	for _, a := range items {
		entries = append(entries, a.entry())
	}
	return Week{
		Reference:    ref,
		View:         calendar.Layout(days, entries, slotHeight),
		Appointments: items,
	}, nil
}
