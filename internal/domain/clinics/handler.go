package clinics

import (
	"net/http"

	"equine-clinic/internal/middleware"
	"equine-clinic/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/clinic", getClinicHandler(svc))
	r.Patch("/clinic", updateClinicHandler(svc))
}

type clinicResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Logo      string `json:"logo"`
	Instagram string `json:"instagram"`
	TaxID     string `json:"tax_id"`
}

func toClinicResponse(c Clinic) clinicResponse {
	return clinicResponse{
		ID:        c.ID,
		Name:      c.Name,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		Logo:      c.Logo,
		Instagram: c.Instagram,
		TaxID:     c.TaxID,
	}
}

func getClinicHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		c, err := svc.Get(r.Context(), claims.ClinicID)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toClinicResponse(c))
	}
}

func updateClinicHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireAdmin(w, r)
		if !ok {
			return
		}
		var in UpdateInput
		if err := httpx.DecodeJSON(r, &in); err != nil {
			httpx.WriteError(w, err)
			return
		}
		c, err := svc.Update(r.Context(), claims.ClinicID, in)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toClinicResponse(c))
	}
}
