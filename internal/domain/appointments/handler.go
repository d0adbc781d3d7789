package appointments

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/domain/calendar"
	"equine-clinic/internal/middleware"
	"equine-clinic/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Post("/", createAppointmentHandler(svc))
		ar.Get("/", listAppointmentsHandler(svc))
		ar.Get("/{appointmentID}", getAppointmentHandler(svc))
		ar.Patch("/{appointmentID}", updateAppointmentHandler(svc))
		ar.Delete("/{appointmentID}", deleteAppointmentHandler(svc))
		ar.Post("/{appointmentID}/complete", completeAppointmentHandler(svc))
	})

	r.Get("/calendar/week", weekHandler(svc))
}

// appointmentRequest acepta la fecha como "2024-03-14" o "14 mar 2024".
type appointmentRequest struct {
	HorseID  string `json:"horse_id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Type     string `json:"type"`
	Location string `json:"location"`
	Notes    string `json:"notes"`
	EventID  string `json:"event_id"`
}

type updateAppointmentRequest struct {
	HorseID  *string `json:"horse_id"`
	Date     *string `json:"date"`
	Time     *string `json:"time"`
	Type     *string `json:"type"`
	Location *string `json:"location"`
	Notes    *string `json:"notes"`
	EventID  *string `json:"event_id"`
}

type appointmentResponse struct {
	ID          string        `json:"id"`
	HorseID     string        `json:"horse_id"`
	Date        calendar.Date `json:"date"`
	DateDisplay string        `json:"date_display"`
	Time        string        `json:"time"`
	Type        string        `json:"type"`
	Location    string        `json:"location"`
	Notes       string        `json:"notes"`
	Completed   bool          `json:"completed"`
	EventID     string        `json:"event_id,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

type weekResponse struct {
	Reference    calendar.Date         `json:"reference"`
	Days         []calendar.DayColumn  `json:"days"`
	Unslotted    []calendar.Entry      `json:"unslotted"`
	Slots        []string              `json:"slots"`
	Appointments []appointmentResponse `json:"appointments"`
}

func toResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:          a.ID,
		HorseID:     a.HorseID,
		Date:        a.Date,
		DateDisplay: calendar.FormatDisplay(a.Date),
		Time:        a.Time,
		Type:        a.Type,
		Location:    a.Location,
		Notes:       a.Notes,
		Completed:   a.Completed,
		EventID:     a.EventID,
		CreatedAt:   a.CreatedAt,
	}
}

func toResponses(items []Appointment) []appointmentResponse {
	out := make([]appointmentResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toResponse(a))
	}
	return out
}

func parseDate(field, v string) (calendar.Date, error) {
	if strings.TrimSpace(v) == "" {
		return calendar.Date{}, nil
	}
	d, err := calendar.ParseAny(v)
	if err != nil {
		return calendar.Date{}, apperr.Invalid(field, "must be YYYY-MM-DD or DD mon YYYY")
	}
	return d, nil
}

// createAppointmentHandler godoc
// @Summary Agendar cita
// @Description La fecha acepta ISO (2024-03-14) o formato agenda (14 mar 2024). Las horas fuera de 08:00-17:00 se aceptan y aparecen como "unslotted" en la agenda.
// @Tags appointments
// @Accept json
// @Produce json
// @Param payload body appointmentRequest true "Cita"
// @Success 201 {object} appointmentResponse
// @Failure 400 {object} map[string]any "validation error"
// @Router /appointments [post]
func createAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}

		var req appointmentRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		date, err := parseDate("date", req.Date)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		a, err := svc.Create(r.Context(), claims.ClinicID, CreateInput{
			HorseID:  req.HorseID,
			Date:     date,
			Time:     req.Time,
			Type:     req.Type,
			Location: req.Location,
			Notes:    req.Notes,
			EventID:  req.EventID,
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toResponse(a))
	}
}

// listAppointmentsHandler godoc
// @Summary Listar citas
// @Description Sin filtros busca con q. horse_id, event_id y from/to son excluyentes entre sí y tienen prioridad sobre q.
// @Tags appointments
// @Produce json
// @Param q query string false "Busca por caballo, tipo, fecha o lugar"
// @Param horse_id query string false "Citas del caballo"
// @Param event_id query string false "Citas del evento"
// @Param from query string false "Desde (inclusive)"
// @Param to query string false "Hasta (inclusive)"
// @Success 200 {array} appointmentResponse
// @Router /appointments [get]
func listAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		q := r.URL.Query()
		ctx := r.Context()

		var (
			items []Appointment
			err   error
		)
		switch {
		case q.Get("horse_id") != "":
			items, err = svc.ListByHorse(ctx, claims.ClinicID, q.Get("horse_id"))
		case q.Get("event_id") != "":
			items, err = svc.ListByEvent(ctx, claims.ClinicID, q.Get("event_id"))
		case q.Get("from") != "" || q.Get("to") != "":
			var from, to calendar.Date
			if from, err = parseDate("from", q.Get("from")); err != nil {
				break
			}
			if to, err = parseDate("to", q.Get("to")); err != nil {
				break
			}
			if from.IsZero() || to.IsZero() {
				err = apperr.Invalid("from", "from and to go together")
				break
			}
			items, err = svc.ListBetween(ctx, claims.ClinicID, from, to)
		default:
			items, err = svc.Search(ctx, claims.ClinicID, q.Get("q"))
		}
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toResponses(items))
	}
}

func getAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		a, err := svc.Get(r.Context(), claims.ClinicID, chi.URLParam(r, "appointmentID"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toResponse(a))
	}
}

func updateAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}

		var req updateAppointmentRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		in := UpdateInput{
			HorseID:  req.HorseID,
			Time:     req.Time,
			Type:     req.Type,
			Location: req.Location,
			Notes:    req.Notes,
			EventID:  req.EventID,
		}
		if req.Date != nil {
			d, err := parseDate("date", *req.Date)
			if err != nil {
				httpx.WriteError(w, err)
				return
			}
			in.Date = &d
		}

		a, err := svc.Update(r.Context(), claims.ClinicID, chi.URLParam(r, "appointmentID"), in)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toResponse(a))
	}
}

func deleteAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), claims.ClinicID, chi.URLParam(r, "appointmentID")); err != nil {
			httpx.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func completeAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		a, err := svc.Complete(r.Context(), claims.ClinicID, chi.URLParam(r, "appointmentID"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toResponse(a))
	}
}

// weekHandler godoc
// @Summary Agenda semanal
// @Description Devuelve la semana lunes-domingo que contiene date (hoy si falta), con las citas ubicadas en la grilla 08:00-17:00.
// @Tags calendar
// @Produce json
// @Param date query string false "Fecha de referencia (ISO o 14 mar 2024)"
// @Param nav query string false "prev, next o current"
// @Param slot_height query number false "Alto de cada hora en px (60 por defecto)"
// @Success 200 {object} weekResponse
// @Router /calendar/week [get]
func weekHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		q := r.URL.Query()

		ref, err := parseDate("date", q.Get("date"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		slot := float64(calendar.DefaultSlotHeight)
		if v := q.Get("slot_height"); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil || f <= 0 {
				httpx.WriteError(w, apperr.Invalid("slot_height", "must be a positive number"))
				return
			}
			slot = f
		}

		week, err := svc.Week(r.Context(), claims.ClinicID, ref, q.Get("nav"), slot)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, weekResponse{
			Reference:    week.Reference,
			Days:         week.View.Days,
			Unslotted:    week.View.Unslotted,
			Slots:        calendar.Slots,
			Appointments: toResponses(week.Appointments),
		})
	}
}
