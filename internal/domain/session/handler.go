package session

import (
	"net/http"
	"time"

	"equine-clinic/internal/middleware"
	"equine-clinic/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/auth/login", loginHandler(svc))
	r.Get("/auth/me", meHandler())
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	ClinicID string `json:"clinic_id"`
}

type loginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      sessionUser `json:"user"`
}

// loginHandler godoc
// @Summary Iniciar sesión
// @Description Autentica con el proveedor de identidad y devuelve un token Bearer. Identidades sin usuario activo reciben 403.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} loginResponse
// @Failure 401 {object} map[string]any "credenciales inválidas"
// @Failure 403 {object} map[string]any "sin usuario activo"
// @Router /auth/login [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		sess, u, err := svc.SignIn(r.Context(), req.Email, req.Password)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, loginResponse{
			Token:     sess.Token,
			ExpiresAt: sess.ExpiresAt,
			User: sessionUser{
				ID:       u.ID,
				Name:     u.Name,
				Email:    u.Email,
				Role:     string(u.Role),
				ClinicID: u.ClinicID,
			},
		})
	}
}

func meHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.RequireClaims(w, r)
		if !ok {
			return
		}
		httpx.WriteJSON(w, http.StatusOK, sessionUser{
			ID:       claims.UserID,
			Email:    claims.Email,
			Role:     claims.Role,
			ClinicID: claims.ClinicID,
		})
	}
}
