package horses

import (
	"encoding/json"
	"net/http"
	"time"

	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/domain/calendar"
	"equine-clinic/internal/middleware"
	"equine-clinic/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/horses", func(hr chi.Router) {
		hr.Post("/", createHorseHandler(svc))
		hr.Get("/", listHorsesHandler(svc))
		hr.Get("/{horseID}", getHorseHandler(svc))
		hr.Patch("/{horseID}", updateHorseHandler(svc))
		hr.Delete("/{horseID}", deleteHorseHandler(svc))
	})
}

type horseResponse struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Breed       string        `json:"breed"`
	Age         int           `json:"age"`
	Sex         Sex           `json:"sex"`
	Color       string        `json:"color"`
	ChipNumber  string        `json:"chip_number"`
	OwnerID     string        `json:"owner_id"`
	StableID    string        `json:"stable_id,omitempty"`
	LastCheckup calendar.Date `json:"last_checkup"`
	Medications []Medication  `json:"medications"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type updateHorseRequest struct {
	Name        *string       `json:"name"`
	Breed       *string       `json:"breed"`
	Age         *int          `json:"age"`
	Sex         *Sex          `json:"sex"`
	Color       *string       `json:"color"`
	ChipNumber  *string       `json:"chip_number"`
	OwnerID     *string       `json:"owner_id"`
	Medications *[]Medication `json:"medications"`
}

func toHorseResponse(h Horse) horseResponse {
	meds := h.Medications
	if meds == nil {
		meds = []Medication{}
	}
	return horseResponse{
		ID:          h.ID,
		Name:        h.Name,
		Breed:       h.Breed,
		Age:         h.Age,
		Sex:         h.Sex,
		Color:       h.Color,
		ChipNumber:  h.ChipNumber,
		OwnerID:     h.OwnerID,
		StableID:    h.StableID,
		LastCheckup: h.LastCheckup,
		Medications: meds,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}

func toHorseResponses(items []Horse) []horseResponse {
	out := make([]horseResponse, 0, len(items))
	for _, h := range items {
		out = append(out, toHorseResponse(h))
	}
	return out
}

// createHorseHandler godoc
// @Summary Registrar caballo
// @Description El propietario es obligatorio y debe existir en la clínica.
// @Tags horses
// @Accept json
// @Produce json
// @Param payload body CreateInput true "Datos del caballo"
// @Success 201 {object} horseResponse
// @Failure 400 {object} map[string]any "validation error"
// @Failure 401 {object} map[string]any "unauthorized"
// @Router /horses [post]
func createHorseHandler(svc *Service) http.HandlerFunc {
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

		h, err := svc.Create(r.Context(), claims.ClinicID, req)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toHorseResponse(h))
	}
}

// listHorsesHandler godoc
// @Summary Listar / buscar caballos
// @Tags horses
// @Produce json
// @Param q query string false "Busca en nombre, raza o color"
// @Param owner_id query string false "Sólo los caballos de este propietario"
// @Success 200 {array} horseResponse
// @Router /horses [get]
func listHorsesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}

		var (
			items []Horse
			err   error
		)
		if ownerID := r.URL.Query().Get("owner_id"); ownerID != "" {
			items, err = svc.ListByOwner(r.Context(), claims.ClinicID, ownerID)
		} else {
			items, err = svc.Search(r.Context(), claims.ClinicID, r.URL.Query().Get("q"))
		}
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toHorseResponses(items))
	}
}

func getHorseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		h, err := svc.Get(r.Context(), claims.ClinicID, chi.URLParam(r, "horseID"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toHorseResponse(h))
	}
}

// updateHorseHandler aplica un PATCH. "stable_id": null quita la caballeriza,
// por eso se detecta la presencia del campo sobre el JSON crudo.
func updateHorseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}

		var raw map[string]json.RawMessage
		if err := httpx.DecodeJSON(r, &raw); err != nil {
			httpx.WriteError(w, err)
			return
		}

		var req updateHorseRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				httpx.WriteError(w, apperr.Invalid("body", "invalid json"))
				return
			}
		}

		var stable PatchRef
		if v, exists := raw["stable_id"]; exists {
			stable.Present = true
			if string(v) != "null" {
				if err := json.Unmarshal(v, &stable.Value); err != nil {
					httpx.WriteError(w, apperr.Invalid("stable_id", "must be a string or null"))
					return
				}
			}
		}

		h, err := svc.Update(r.Context(), claims.ClinicID, chi.URLParam(r, "horseID"), UpdateInput{
			Name:        req.Name,
			Breed:       req.Breed,
			Age:         req.Age,
			Sex:         req.Sex,
			Color:       req.Color,
			ChipNumber:  req.ChipNumber,
			OwnerID:     req.OwnerID,
			StableID:    stable,
			Medications: req.Medications,
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toHorseResponse(h))
	}
}

// deleteHorseHandler godoc
// @Summary Eliminar caballo
// @Description Borra en cascada historias clínicas, citas y facturas del caballo.
// @Tags horses
// @Param horseID path string true "ID del caballo"
// @Success 204
// @Failure 404 {object} map[string]any "not found"
// @Failure 502 {object} map[string]any "cascade failed"
// @Router /horses/{horseID} [delete]
func deleteHorseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), claims.ClinicID, chi.URLParam(r, "horseID")); err != nil {
			httpx.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
