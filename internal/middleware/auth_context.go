package middleware

import (
	"context"
	"net/http"
	"strings"

	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/platform/httpx"
	"equine-clinic/internal/ports/auth"
)

type ctxKey string

const (
	claimsKey    ctxKey = "claims"
	requestIDKey ctxKey = "request_id"
)

const (
	HeaderDebugUserID   = "X-Debug-User-ID"
	HeaderDebugClinicID = "X-Debug-Clinic-ID"
	HeaderDebugRole     = "X-Debug-Role"
)

// AuthContext:
// - Si verifier != nil y viene Bearer token => Verify() y setea claims.
// - Si verifier == nil => modo dev: X-Debug-User-ID (+ X-Debug-Clinic-ID / X-Debug-Role opcionales).
// - Sin claims el request sigue igual; los handlers deciden si exigen auth.
func AuthContext(verifier auth.AuthVerifier, defaultClinicID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				uid := strings.TrimSpace(r.Header.Get(HeaderDebugUserID))
				if uid == "" {
					next.ServeHTTP(w, r)
					return
				}
				clinic := strings.TrimSpace(r.Header.Get(HeaderDebugClinicID))
				if clinic == "" {
					clinic = defaultClinicID
				}
				role := strings.TrimSpace(r.Header.Get(HeaderDebugRole))
				if role == "" {
					role = "admin"
				}
				claims := auth.Claims{UserID: uid, ClinicID: clinic, Role: role}
				next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				// No cortamos aquí. El handler decide 401/403.
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

// RequireClaims escribe 401 si no hay sesión con usuario y clínica.
func RequireClaims(w http.ResponseWriter, r *http.Request) (auth.Claims, bool) {
	c, ok := GetClaims(r.Context())
	if !ok || strings.TrimSpace(c.UserID) == "" || strings.TrimSpace(c.ClinicID) == "" {
		httpx.WriteError(w, apperr.ErrUnauthorized)
		return auth.Claims{}, false
	}
	return c, true
}

// RequireAdmin es RequireClaims + rol admin (403 si no).
func RequireAdmin(w http.ResponseWriter, r *http.Request) (auth.Claims, bool) {
	c, ok := RequireClaims(w, r)
	if !ok {
		return c, false
	}
	if !c.IsAdmin() {
		httpx.WriteError(w, apperr.ErrForbidden)
		return auth.Claims{}, false
	}
	return c, true
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
