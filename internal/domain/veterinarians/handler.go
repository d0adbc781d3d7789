package veterinarians

import (
	"net/http"

	"equine-clinic/internal/middleware"
	"equine-clinic/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/veterinarians", func(vr chi.Router) {
		vr.Post("/", createVeterinarianHandler(svc))
		vr.Get("/", listVeterinariansHandler(svc))
		vr.Get("/{vetID}", getVeterinarianHandler(svc))
		vr.Patch("/{vetID}", updateVeterinarianHandler(svc))
		vr.Delete("/{vetID}", deleteVeterinarianHandler(svc))
	})
}

type veterinarianResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

func toResponse(v Veterinarian) veterinarianResponse {
	return veterinarianResponse{ID: v.ID, Name: v.Name, Specialty: v.Specialty, Phone: v.Phone, Email: v.Email}
}

// createVeterinarianHandler godoc
// @Summary Registrar veterinario
// @Tags veterinarians
// @Accept json
// @Produce json
// @Param payload body CreateInput true "Datos del veterinario"
// @Success 201 {object} veterinarianResponse
// @Failure 400 {object} map[string]any "validation error"
// @Router /veterinarians [post]
func createVeterinarianHandler(svc *Service) http.HandlerFunc {
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
		v, err := svc.Create(r.Context(), claims.ClinicID, req)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toResponse(v))
	}
}

// listVeterinariansHandler godoc
// @Summary Listar / buscar veterinarios
// @Tags veterinarians
// @Produce json
// @Param q query string false "Busca en nombre, especialidad o email"
// @Success 200 {array} veterinarianResponse
// @Router /veterinarians [get]
func listVeterinariansHandler(svc *Service) http.HandlerFunc {
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
		out := make([]veterinarianResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toResponse(v))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getVeterinarianHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		v, err := svc.Get(r.Context(), claims.ClinicID, chi.URLParam(r, "vetID"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toResponse(v))
	}
}

func updateVeterinarianHandler(svc *Service) http.HandlerFunc {
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
		v, err := svc.Update(r.Context(), claims.ClinicID, chi.URLParam(r, "vetID"), req)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toResponse(v))
	}
}

func deleteVeterinarianHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), claims.ClinicID, chi.URLParam(r, "vetID")); err != nil {
			httpx.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
