package invoices

import (
	"bytes"
	"net/http"
	"time"

	"equine-clinic/internal/domain/billing"
	"equine-clinic/internal/domain/calendar"
	"equine-clinic/internal/middleware"
	"equine-clinic/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/invoices", func(ir chi.Router) {
		ir.Post("/", issueInvoiceHandler(svc))
		ir.Get("/", listInvoicesHandler(svc))
		ir.Get("/export.xlsx", exportInvoicesHandler(svc))
		ir.Get("/{invoiceID}", getInvoiceHandler(svc))
		ir.Delete("/{invoiceID}", deleteInvoiceHandler(svc))
		ir.Patch("/{invoiceID}/status", setStatusHandler(svc))
	})
}

type issueRequest struct {
	HistoryID string `json:"history_id"`
}

type statusRequest struct {
	Status Status `json:"status"`
}

type invoiceResponse struct {
	ID           string                  `json:"id"`
	Number       string                  `json:"number"`
	Date         calendar.Date           `json:"date"`
	DateDisplay  string                  `json:"date_display"`
	HistoryID    string                  `json:"history_id"`
	HorseID      string                  `json:"horse_id"`
	OwnerID      string                  `json:"owner_id"`
	EventID      string                  `json:"event_id,omitempty"`
	Items        []billing.LineItem      `json:"items"`
	TaxRate      float64                 `json:"tax_rate"`
	NetTotal     float64                 `json:"net_total"`
	Tax          float64                 `json:"tax"`
	TotalWithTax float64                 `json:"total_with_tax"`
	Display      billing.DisplayedTotals `json:"display"`
	Observations string                  `json:"observations"`
	Status       Status                  `json:"status"`
	CreatedAt    time.Time               `json:"created_at"`
}

func toInvoiceResponse(inv Invoice) invoiceResponse {
	items := inv.Items
	if items == nil {
		items = []billing.LineItem{}
	}
	return invoiceResponse{
		ID:           inv.ID,
		Number:       inv.Number,
		Date:         inv.Date,
		DateDisplay:  calendar.FormatDisplay(inv.Date),
		HistoryID:    inv.HistoryID,
		HorseID:      inv.HorseID,
		OwnerID:      inv.OwnerID,
		EventID:      inv.EventID,
		Items:        items,
		TaxRate:      inv.TaxRate,
		NetTotal:     inv.NetTotal,
		Tax:          inv.Tax,
		TotalWithTax: inv.TotalWithTax,
		Display:      inv.Totals().Display(),
		Observations: inv.Observations,
		Status:       inv.Status,
		CreatedAt:    inv.CreatedAt,
	}
}

// issueInvoiceHandler godoc
// @Summary Emitir factura
// @Description Emite la factura de una historia clínica. Número F-<año>-NNNN correlativo por clínica y año.
// @Tags invoices
// @Accept json
// @Produce json
// @Param payload body issueRequest true "Historia a facturar"
// @Success 201 {object} invoiceResponse
// @Failure 400 {object} map[string]any "validation error (ej. ya facturada)"
// @Failure 404 {object} map[string]any "history not found"
// @Router /invoices [post]
func issueInvoiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}

		var req issueRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		inv, err := svc.Issue(r.Context(), claims.ClinicID, req.HistoryID)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toInvoiceResponse(inv))
	}
}

func listInvoicesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		q := r.URL.Query()

		var (
			items []Invoice
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

		out := make([]invoiceResponse, 0, len(items))
		for _, inv := range items {
			out = append(out, toInvoiceResponse(inv))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// exportInvoicesHandler godoc
// @Summary Exportar facturas
// @Tags invoices
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /invoices/export.xlsx [get]
func exportInvoicesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}

		// Se arma en memoria para poder responder con error si algo falla.
		var buf bytes.Buffer
		if err := svc.ExportXLSX(r.Context(), claims.ClinicID, &buf); err != nil {
			httpx.WriteError(w, err)
			return
		}
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="facturas.xlsx"`)
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}

func getInvoiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		inv, err := svc.Get(r.Context(), claims.ClinicID, chi.URLParam(r, "invoiceID"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toInvoiceResponse(inv))
	}
}

func deleteInvoiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), claims.ClinicID, chi.URLParam(r, "invoiceID")); err != nil {
			httpx.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func setStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}

		var req statusRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		inv, err := svc.SetStatus(r.Context(), claims.ClinicID, chi.URLParam(r, "invoiceID"), req.Status)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toInvoiceResponse(inv))
	}
}
