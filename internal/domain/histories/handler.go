package histories

import (
	"net/http"
	"time"

	"equine-clinic/internal/domain/billing"
	"equine-clinic/internal/domain/calendar"
	"equine-clinic/internal/domain/inventory"
	"equine-clinic/internal/middleware"
	"equine-clinic/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/histories", func(hr chi.Router) {
		hr.Post("/", recordHistoryHandler(svc))
		hr.Get("/", listHistoriesHandler(svc))
		hr.Get("/{historyID}", getHistoryHandler(svc))
		hr.Patch("/{historyID}", updateHistoryHandler(svc))
		hr.Delete("/{historyID}", deleteHistoryHandler(svc))
	})
}

type historyResponse struct {
	ID               string                  `json:"id"`
	HorseID          string                  `json:"horse_id"`
	VeterinarianID   string                  `json:"veterinarian_id"`
	Date             calendar.Date           `json:"date"`
	DateDisplay      string                  `json:"date_display"`
	Type             string                  `json:"type"`
	Observations     string                  `json:"observations"`
	Items            []billing.LineItem      `json:"items"`
	TaxRate          float64                 `json:"tax_rate"`
	NetTotal         float64                 `json:"net_total"`
	Tax              float64                 `json:"tax"`
	TotalWithTax     float64                 `json:"total_with_tax"`
	Display          billing.DisplayedTotals `json:"display"`
	InvoiceGenerated bool                    `json:"invoice_generated"`
	InvoiceID        string                  `json:"invoice_id,omitempty"`
	EventID          string                  `json:"event_id,omitempty"`
	Consumed         []inventory.Usage       `json:"consumed"`
	CreatedAt        time.Time               `json:"created_at"`
}

type updateHistoryRequest struct {
	VeterinarianID *string             `json:"veterinarian_id"`
	Date           *calendar.Date      `json:"date"`
	Type           *string             `json:"type"`
	Observations   *string             `json:"observations"`
	Items          *[]billing.LineItem `json:"items"`
	TaxRate        *float64            `json:"tax_rate"`
}

func toHistoryResponse(h History) historyResponse {
	items := h.Items
	if items == nil {
		items = []billing.LineItem{}
	}
	consumed := h.Consumed
	if consumed == nil {
		consumed = []inventory.Usage{}
	}
	return historyResponse{
		ID:               h.ID,
		HorseID:          h.HorseID,
		VeterinarianID:   h.VeterinarianID,
		Date:             h.Date,
		DateDisplay:      calendar.FormatDisplay(h.Date),
		Type:             h.Type,
		Observations:     h.Observations,
		Items:            items,
		TaxRate:          h.TaxRate,
		NetTotal:         h.NetTotal,
		Tax:              h.Tax,
		TotalWithTax:     h.TotalWithTax,
		Display:          h.Totals().Display(),
		InvoiceGenerated: h.InvoiceGenerated,
		InvoiceID:        h.InvoiceID,
		EventID:          h.EventID,
		Consumed:         consumed,
		CreatedAt:        h.CreatedAt,
	}
}

// recordHistoryHandler godoc
// @Summary Registrar historia clínica
// @Description Calcula totales con IVA, actualiza la última revisión del caballo, los contadores del evento y el stock consumido.
// @Tags histories
// @Accept json
// @Produce json
// @Param payload body RecordInput true "Historia"
// @Success 201 {object} historyResponse
// @Failure 400 {object} map[string]any "validation error"
// @Router /histories [post]
func recordHistoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}

		var in RecordInput
		if err := httpx.DecodeJSON(r, &in); err != nil {
			httpx.WriteError(w, err)
			return
		}
		h, err := svc.Record(r.Context(), claims.ClinicID, in)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toHistoryResponse(h))
	}
}

// listHistoriesHandler godoc
// @Summary Listar historias clínicas
// @Tags histories
// @Produce json
// @Param q query string false "Busca por caballo, tipo, fecha o veterinario"
// @Param horse_id query string false "Historias del caballo"
// @Param event_id query string false "Historias del evento"
// @Success 200 {array} historyResponse
// @Router /histories [get]
func listHistoriesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		q := r.URL.Query()

		var (
			items []History
			err   error
		)
		switch {
		case q.Get("horse_id") != "":
			items, err = svc.ListByHorse(r.Context(), claims.ClinicID, q.Get("horse_id"))
		case q.Get("event_id") != "":
			items, err = svc.ListByEvent(r.Context(), claims.ClinicID, q.Get("event_id"))
		default:
			items, err = svc.Search(r.Context(), claims.ClinicID, q.Get("q"))
		}
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		out := make([]historyResponse, 0, len(items))
		for _, h := range items {
			out = append(out, toHistoryResponse(h))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getHistoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		h, err := svc.Get(r.Context(), claims.ClinicID, chi.URLParam(r, "historyID"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toHistoryResponse(h))
	}
}

func updateHistoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}

		var req updateHistoryRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		h, err := svc.Update(r.Context(), claims.ClinicID, chi.URLParam(r, "historyID"), UpdateInput(req))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toHistoryResponse(h))
	}
}

// deleteHistoryHandler godoc
// @Summary Borrar historia clínica
// @Description Si la historia tiene factura, la factura se borra primero.
// @Tags histories
// @Param historyID path string true "History ID"
// @Success 204
// @Router /histories/{historyID} [delete]
func deleteHistoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), claims.ClinicID, chi.URLParam(r, "historyID")); err != nil {
			httpx.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
