package stables

import (
	"net/http"

	"equine-clinic/internal/middleware"
	"equine-clinic/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/stables", func(sr chi.Router) {
		sr.Post("/", createStableHandler(svc))
		sr.Get("/", listStablesHandler(svc))
		sr.Get("/{stableID}", getStableHandler(svc))
		sr.Patch("/{stableID}", updateStableHandler(svc))
		sr.Delete("/{stableID}", deleteStableHandler(svc))
	})
}

type stableResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Contact string `json:"contact"`
}

func toStableResponse(s Stable) stableResponse {
	return stableResponse{ID: s.ID, Name: s.Name, Address: s.Address, Phone: s.Phone, Contact: s.Contact}
}

// createStableHandler godoc
// @Summary Registrar caballeriza
// @Tags stables
// @Accept json
// @Produce json
// @Param payload body Input true "Datos de la caballeriza"
// @Success 201 {object} stableResponse
// @Failure 400 {object} map[string]any "validation error"
// @Router /stables [post]
func createStableHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		var req Input
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		st, err := svc.Create(r.Context(), claims.ClinicID, req)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toStableResponse(st))
	}
}

func listStablesHandler(svc *Service) http.HandlerFunc {
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
		out := make([]stableResponse, 0, len(items))
		for _, st := range items {
			out = append(out, toStableResponse(st))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getStableHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		st, err := svc.Get(r.Context(), claims.ClinicID, chi.URLParam(r, "stableID"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toStableResponse(st))
	}
}

func updateStableHandler(svc *Service) http.HandlerFunc {
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
		st, err := svc.Update(r.Context(), claims.ClinicID, chi.URLParam(r, "stableID"), req)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toStableResponse(st))
	}
}

func deleteStableHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), claims.ClinicID, chi.URLParam(r, "stableID")); err != nil {
			httpx.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
