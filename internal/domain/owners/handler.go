package owners

import (
	"net/http"
	"time"

	"equine-clinic/internal/middleware"
	"equine-clinic/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/owners", func(or chi.Router) {
		or.Post("/", createOwnerHandler(svc))
		or.Get("/", listOwnersHandler(svc))
		or.Get("/{ownerID}", getOwnerHandler(svc))
		or.Patch("/{ownerID}", updateOwnerHandler(svc))
		or.Delete("/{ownerID}", deleteOwnerHandler(svc))
	})
}

type ownerResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	Address    string    `json:"address"`
	NationalID string    `json:"national_id"`
	TaxID      string    `json:"tax_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toOwnerResponse(o Owner) ownerResponse {
	return ownerResponse{
		ID:         o.ID,
		Name:       o.Name,
		Phone:      o.Phone,
		Email:      o.Email,
		Address:    o.Address,
		NationalID: o.NationalID,
		TaxID:      o.TaxID,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

// createOwnerHandler godoc
// @Summary Registrar propietario
// @Description El teléfono se valida con la región configurada (PHONE_REGION) salvo que venga con prefijo internacional.
// @Tags owners
// @Accept json
// @Produce json
// @Param payload body CreateInput true "Datos del propietario"
// @Success 201 {object} ownerResponse
// @Failure 400 {object} map[string]any "validation error"
// @Failure 401 {object} map[string]any "unauthorized"
// @Router /owners [post]
func createOwnerHandler(svc *Service) http.HandlerFunc {
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

		o, err := svc.Create(r.Context(), claims.ClinicID, req)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toOwnerResponse(o))
	}
}

// listOwnersHandler godoc
// @Summary Listar / buscar propietarios
// @Tags owners
// @Produce json
// @Param q query string false "Texto a buscar en nombre, teléfono o email"
// @Success 200 {array} ownerResponse
// @Router /owners [get]
func listOwnersHandler(svc *Service) http.HandlerFunc {
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

		out := make([]ownerResponse, 0, len(items))
		for _, o := range items {
			out = append(out, toOwnerResponse(o))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}

		o, err := svc.Get(r.Context(), claims.ClinicID, chi.URLParam(r, "ownerID"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toOwnerResponse(o))
	}
}

func updateOwnerHandler(svc *Service) http.HandlerFunc {
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

		o, err := svc.Update(r.Context(), claims.ClinicID, chi.URLParam(r, "ownerID"), req)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toOwnerResponse(o))
	}
}

func deleteOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), claims.ClinicID, chi.URLParam(r, "ownerID")); err != nil {
			httpx.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
