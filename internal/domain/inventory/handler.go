package inventory

import (
	"net/http"

	"equine-clinic/internal/domain/calendar"
	"equine-clinic/internal/middleware"
	"equine-clinic/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/inventory", func(ir chi.Router) {
		ir.Post("/", createItemHandler(svc))
		ir.Get("/", listItemsHandler(svc))
		ir.Get("/low-stock", lowStockHandler(svc))
		ir.Get("/{itemID}", getItemHandler(svc))
		ir.Patch("/{itemID}", updateItemHandler(svc))
		ir.Delete("/{itemID}", deleteItemHandler(svc))
		ir.Post("/{itemID}/restock", restockHandler(svc))
	})
}

type itemResponse struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Category     string        `json:"category"`
	Stock        float64       `json:"stock"`
	Minimum      float64       `json:"minimum"`
	Unit         string        `json:"unit"`
	UnitPrice    float64       `json:"unit_price"`
	Supplier     string        `json:"supplier"`
	LastPurchase calendar.Date `json:"last_purchase"`
	LowStock     bool          `json:"low_stock"`
}

func toItemResponse(it Item) itemResponse {
	return itemResponse{
		ID:           it.ID,
		Name:         it.Name,
		Category:     it.Category,
		Stock:        it.Stock,
		Minimum:      it.Minimum,
		Unit:         it.Unit,
		UnitPrice:    it.UnitPrice,
		Supplier:     it.Supplier,
		LastPurchase: it.LastPurchase,
		LowStock:     it.LowStock(),
	}
}

func toItemResponses(items []Item) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	return out
}

// createItemHandler godoc
// @Summary Registrar ítem de inventario
// @Tags inventory
// @Accept json
// @Produce json
// @Param payload body CreateInput true "Ítem"
// @Success 201 {object} itemResponse
// @Failure 400 {object} map[string]any "validation error"
// @Router /inventory [post]
func createItemHandler(svc *Service) http.HandlerFunc {
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
		it, err := svc.Create(r.Context(), claims.ClinicID, req)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toItemResponse(it))
	}
}

func listItemsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		items, err := svc.Search(r.Context(), claims.ClinicID, r.URL.Query().Get("q"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toItemResponses(items))
	}
}

// lowStockHandler godoc
// @Summary Ítems con stock por debajo del mínimo
// @Tags inventory
// @Produce json
// @Success 200 {array} itemResponse
// @Router /inventory/low-stock [get]
func lowStockHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		items, err := svc.LowStock(r.Context(), claims.ClinicID)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toItemResponses(items))
	}
}

func getItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		it, err := svc.Get(r.Context(), claims.ClinicID, chi.URLParam(r, "itemID"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toItemResponse(it))
	}
}

func updateItemHandler(svc *Service) http.HandlerFunc {
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
		it, err := svc.Update(r.Context(), claims.ClinicID, chi.URLParam(r, "itemID"), req)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toItemResponse(it))
	}
}

func deleteItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), claims.ClinicID, chi.URLParam(r, "itemID")); err != nil {
			httpx.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func restockHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		var req RestockInput
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		it, err := svc.Restock(r.Context(), claims.ClinicID, chi.URLParam(r, "itemID"), req)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toItemResponse(it))
	}
}
