package events

import (
	"io"
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

func RegisterRoutes(r chi.Router, svc *Service, maxUpload int64) {
	r.Route("/events", func(er chi.Router) {
		er.Post("/", createEventHandler(svc))
		er.Get("/", listEventsHandler(svc))

		er.Route("/{eventID}", func(ir chi.Router) {
			ir.Get("/", getEventHandler(svc))
			ir.Patch("/", updateEventHandler(svc))
			ir.Delete("/", deleteEventHandler(svc))

			ir.Get("/stats", statsHandler(svc))
			ir.Post("/resync", resyncHandler(svc))

			ir.Post("/images", uploadImageHandler(svc, maxUpload))
			ir.Get("/images/{n}", getImageHandler(svc))
		})
	})
}

// eventResponse representa un evento devuelto por la API.
type eventResponse struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Type             Type          `json:"type"`
	Status           Status        `json:"status"`
	StartDate        calendar.Date `json:"start_date"`
	StartDateDisplay string        `json:"start_date_display"`
	EndDate          calendar.Date `json:"end_date"`
	Location         string        `json:"location"`
	Organizer        string        `json:"organizer"`
	Contact          string        `json:"contact"`
	Description      string        `json:"description"`
	AnimalsServed    int           `json:"animals_served"`
	Revenue          float64       `json:"revenue"`
	Expenses         float64       `json:"expenses"`
	Services         []string      `json:"services"`
	Images           int           `json:"images"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

func toEventResponse(e Event) eventResponse {
	services := e.Services
	if services == nil {
		services = []string{}
	}
	return eventResponse{
		ID:               e.ID,
		Name:             e.Name,
		Type:             e.Type,
		Status:           e.Status,
		StartDate:        e.StartDate,
		StartDateDisplay: calendar.FormatDisplay(e.StartDate),
		EndDate:          e.EndDate,
		Location:         e.Location,
		Organizer:        e.Organizer,
		Contact:          e.Contact,
		Description:      e.Description,
		AnimalsServed:    e.AnimalsServed,
		Revenue:          e.Revenue,
		Expenses:         e.Expenses,
		Services:         services,
		Images:           len(e.Images),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

// createEventHandler godoc
// @Summary Crear evento
// @Description Crea una competencia, exposición o clínica. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>`.
// @Tags events
// @Accept json
// @Produce json
// @Param payload body CreateInput true "Datos del evento; fechas YYYY-MM-DD"
// @Success 201 {object} eventResponse
// @Failure 400 {object} map[string]any "validation error"
// @Failure 401 {object} map[string]any "unauthorized"
// @Router /events [post]
func createEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}

		var req CreateInput
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}

		e, err := svc.Create(r.Context(), claims.ClinicID, req)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toEventResponse(e))
	}
}

// listEventsHandler godoc
// @Summary Listar eventos
// @Description Lista los eventos de la clínica. Permite filtrar por tipos, estados, rango de fechas y texto.
// @Tags events
// @Produce json
// @Param limit query int false "Máximo de eventos a devolver (1-200). Por defecto 50"
// @Param types query string false "Lista CSV de tipos (ej: competencia,clinica)"
// @Param status query string false "Lista CSV de estados (ej: programado,en_curso)"
// @Param from query string false "Fecha mínima de inicio (YYYY-MM-DD)"
// @Param to query string false "Fecha máxima de inicio (YYYY-MM-DD)"
// @Param q query string false "Busca en nombre, lugar, fecha, tipo o estado"
// @Success 200 {array} eventResponse
// @Failure 400 {object} map[string]any "invalid filter"
// @Router /events [get]
func listEventsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		items, err := svc.Search(r.Context(), claims.ClinicID, r.URL.Query().Get("q"), filter)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		out := make([]eventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEventResponse(e))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		e, err := svc.Get(r.Context(), claims.ClinicID, chi.URLParam(r, "eventID"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toEventResponse(e))
	}
}

func updateEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		var req UpdateInput
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		e, err := svc.Update(r.Context(), claims.ClinicID, chi.URLParam(r, "eventID"), req)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toEventResponse(e))
	}
}

// deleteEventHandler godoc
// @Summary Eliminar evento
// @Description Las historias, citas y facturas vinculadas quedan sin evento; no se borran.
// @Tags events
// @Param eventID path string true "ID del evento"
// @Success 204
// @Failure 404 {object} map[string]any "event not found"
// @Router /events/{eventID} [delete]
func deleteEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), claims.ClinicID, chi.URLParam(r, "eventID")); err != nil {
			httpx.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// statsHandler godoc
// @Summary Estadísticas del evento
// @Description Se recalculan siempre desde las historias clínicas vinculadas.
// @Tags events
// @Produce json
// @Param eventID path string true "ID del evento"
// @Success 200 {object} Stats
// @Router /events/{eventID}/stats [get]
func statsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		st, err := svc.Stats(r.Context(), claims.ClinicID, chi.URLParam(r, "eventID"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, st)
	}
}

func resyncHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		e, err := svc.Resync(r.Context(), claims.ClinicID, chi.URLParam(r, "eventID"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toEventResponse(e))
	}
}

// uploadImageHandler godoc
// @Summary Subir imagen del evento
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Param eventID path string true "ID del evento"
// @Param file formData file true "Imagen (jpeg, png, webp, gif)"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]any "invalid file"
// @Router /events/{eventID}/images [post]
func uploadImageHandler(svc *Service, maxUpload int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}

		if maxUpload > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			httpx.WriteError(w, apperr.Invalid("file", "multipart field 'file' required (max size exceeded?)"))
			return
		}
		defer file.Close()

		key, err := svc.AddImage(r.Context(), claims.ClinicID, chi.URLParam(r, "eventID"),
			header.Filename, header.Header.Get("Content-Type"), file)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, map[string]string{"key": key})
	}
}

func getImageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		n, err := strconv.Atoi(chi.URLParam(r, "n"))
		if err != nil {
			httpx.WriteError(w, apperr.Invalid("n", "must be an integer"))
			return
		}

		img, err := svc.Image(r.Context(), claims.ClinicID, chi.URLParam(r, "eventID"), n)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		if img.URL != "" {
			http.Redirect(w, r, img.URL, http.StatusFound)
			return
		}
		defer img.Body.Close()

		if img.Info.ContentType != "" {
			w.Header().Set("Content-Type", img.Info.ContentType)
		}
		if img.Info.Size > 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(img.Info.Size, 10))
		}
		w.WriteHeader(http.StatusOK)
		_, _ = io.Copy(w, img.Body)
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	filter := ListFilter{Limit: httpx.QueryInt(r, "limit", 50, 200)}

	// types=competencia,clinica
	for _, p := range splitCSV(r.URL.Query().Get("types")) {
		t := Type(p)
		if !t.Valid() {
			return ListFilter{}, apperr.Invalid("types", "unknown event type "+p)
		}
		filter.Types = append(filter.Types, t)
	}
	for _, p := range splitCSV(r.URL.Query().Get("status")) {
		st := Status(p)
		if !st.Valid() {
			return ListFilter{}, apperr.Invalid("status", "unknown event status "+p)
		}
		filter.Statuses = append(filter.Statuses, st)
	}

	// from/to en formato ISO o "14 mar 2024"
	if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
		d, err := calendar.ParseAny(v)
		if err != nil {
			return ListFilter{}, apperr.Invalid("from", err.Error())
		}
		filter.From = &d
	}
	if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
		d, err := calendar.ParseAny(v)
		if err != nil {
			return ListFilter{}, apperr.Invalid("to", err.Error())
		}
		filter.To = &d
	}
	return filter, nil
}

func splitCSV(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
