package catalog

import (
	"net/http"

	"equine-clinic/internal/middleware"
	"equine-clinic/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/services", func(sr chi.Router) {
		sr.Post("/", createItemHandler(svc))
		sr.Get("/", listItemsHandler(svc))
		sr.Get("/{serviceID}", getItemHandler(svc))
		sr.Patch("/{serviceID}", updateItemHandler(svc))
		sr.Delete("/{serviceID}", deleteItemHandler(svc))
	})
}

type itemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

func toItemResponse(it Item) itemResponse {
	return itemResponse{ID: it.ID, Name: it.Name, Description: it.Description, Price: it.Price, Category: it.Category}
}

// createItemHandler godoc
// @Summary Crear servicio del catálogo
// @Tags services
// @Accept json
// @Produce json
// @Param payload body CreateInput true "Servicio"
// @Success 201 {object} itemResponse
// @Failure 400 {object} map[string]any "validation error"
// @Router /services [post]
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
		out := make([]itemResponse, 0, len(items))
		for _, it := range items {
			out = append(out, toItemResponse(it))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		it, err := svc.Get(r.Context(), claims.ClinicID, chi.URLParam(r, "serviceID"))
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
		it, err := svc.Update(r.Context(), claims.ClinicID, chi.URLParam(r, "serviceID"), req)
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
		if err := svc.Delete(r.Context(), claims.ClinicID, chi.URLParam(r, "serviceID")); err != nil {
			httpx.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
