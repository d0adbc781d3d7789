package dashboard

import (
	"net/http"

	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/domain/appointments"
	"equine-clinic/internal/domain/calendar"
	"equine-clinic/internal/domain/events"
	"equine-clinic/internal/domain/inventory"
	"equine-clinic/internal/middleware"
	"equine-clinic/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/dashboard", summaryHandler(svc))
	r.Get("/analytics", analyticsHandler(svc))
}

type appointmentItem struct {
	ID          string        `json:"id"`
	HorseID     string        `json:"horse_id"`
	Date        calendar.Date `json:"date"`
	DateDisplay string        `json:"date_display"`
	Time        string        `json:"time"`
	Type        string        `json:"type"`
	Location    string        `json:"location"`
}

type stockItem struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Stock   float64 `json:"stock"`
	Minimum float64 `json:"minimum"`
	Unit    string  `json:"unit"`
}

type eventItem struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Status    events.Status `json:"status"`
	StartDate calendar.Date `json:"start_date"`
	Location  string        `json:"location"`
}

type summaryResponse struct {
	Today             calendar.Date     `json:"today"`
	AppointmentsToday []appointmentItem `json:"appointments_today"`
	Upcoming          []appointmentItem `json:"upcoming"`
	LowStock          []stockItem       `json:"low_stock"`
	UpcomingEvents    []eventItem       `json:"upcoming_events"`
	Counts            Counts            `json:"counts"`
}

func toAppointmentItems(items []appointments.Appointment) []appointmentItem {
	out := make([]appointmentItem, 0, len(items))
	for _, a := range items {
		out = append(out, appointmentItem{
			ID:          a.ID,
			HorseID:     a.HorseID,
			Date:        a.Date,
			DateDisplay: calendar.FormatDisplay(a.Date),
			Time:        a.Time,
			Type:        a.Type,
			Location:    a.Location,
		})
	}
	return out
}

func toSummaryResponse(s Summary) summaryResponse {
	low := make([]stockItem, 0, len(s.LowStock))
	for _, it := range s.LowStock {
		low = append(low, toStockItem(it))
	}
	evs := make([]eventItem, 0, len(s.UpcomingEvents))
	for _, e := range s.UpcomingEvents {
		evs = append(evs, eventItem{ID: e.ID, Name: e.Name, Status: e.Status, StartDate: e.StartDate, Location: e.Location})
	}
	return summaryResponse{
		Today:             s.Today,
		AppointmentsToday: toAppointmentItems(s.AppointmentsToday),
		Upcoming:          toAppointmentItems(s.Upcoming),
		LowStock:          low,
		UpcomingEvents:    evs,
		Counts:            s.Counts,
	}
}

func toStockItem(it inventory.Item) stockItem {
	return stockItem{ID: it.ID, Name: it.Name, Stock: it.Stock, Minimum: it.Minimum, Unit: it.Unit}
}

// summaryHandler godoc
// @Summary Resumen de inicio
// @Tags dashboard
// @Produce json
// @Param date query string false "Fecha de referencia (por defecto hoy)"
// @Success 200 {object} summaryResponse
// @Router /dashboard [get]
func summaryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		var today calendar.Date
		if v := r.URL.Query().Get("date"); v != "" {
			d, err := calendar.ParseAny(v)
			if err != nil {
				httpx.WriteError(w, apperr.Invalid("date", "invalid date"))
				return
			}
			today = d
		}
		out, err := svc.Summary(r.Context(), claims.ClinicID, today)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toSummaryResponse(out))
	}
}

func analyticsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		out, err := svc.Analytics(r.Context(), claims.ClinicID, svc.now())
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}
