package users

import (
	"net/http"
	"time"

	"equine-clinic/internal/middleware"
	"equine-clinic/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/users", func(ur chi.Router) {
		ur.Post("/", createUserHandler(svc))
		ur.Get("/", listUsersHandler(svc))
		ur.Get("/{userID}", getUserHandler(svc))
		ur.Patch("/{userID}", updateUserHandler(svc))
		ur.Delete("/{userID}", deleteUserHandler(svc))
	})
	r.Post("/admin/users/reconcile", reconcileHandler(svc))
}

// userResponse nunca incluye el hash del password.
type userResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	Active    bool       `json:"active"`
	Phone     string     `json:"phone"`
	Specialty string     `json:"specialty"`
	CreatedAt *time.Time `json:"created_at"`
}

type updateUserRequest struct {
	Name      *string `json:"name"`
	Role      *Role   `json:"role"`
	Active    *bool   `json:"active"`
	Phone     *string `json:"phone"`
	Specialty *string `json:"specialty"`
	Password  *string `json:"password"`
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Active:    u.Active,
		Phone:     u.Phone,
		Specialty: u.Specialty,
		CreatedAt: u.CreatedAt,
	}
}

func createUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireAdmin(w, r)
		if !ok {
			return
		}

		var in CreateInput
		if err := httpx.DecodeJSON(r, &in); err != nil {
			httpx.WriteError(w, err)
			return
		}
		u, err := svc.Create(r.Context(), claims.ClinicID, in)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toUserResponse(u))
	}
}

func listUsersHandler(svc *Service) http.HandlerFunc {
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
		out := make([]userResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toUserResponse(u))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		u, err := svc.Get(r.Context(), claims.ClinicID, chi.URLParam(r, "userID"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func updateUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireAdmin(w, r)
		if !ok {
			return
		}

		var req updateUserRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		u, err := svc.Update(r.Context(), claims.ClinicID, chi.URLParam(r, "userID"), UpdateInput(req))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func deleteUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireAdmin(w, r)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), claims.ClinicID, chi.URLParam(r, "userID")); err != nil {
			httpx.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// reconcileHandler godoc
// @Summary Reconciliar usuarios duplicados
// @Description Agrupa por email exacto, conserva el registro más reciente y borra el resto. Idempotente.
// @Tags admin
// @Produce json
// @Success 200 {array} DuplicateReport
// @Failure 403 {object} map[string]any "requires admin"
// @Router /admin/users/reconcile [post]
func reconcileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.RequireAdmin(w, r); !ok {
			return
		}
		reports, err := svc.ReconcileDuplicates(r.Context())
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, reports)
	}
}
