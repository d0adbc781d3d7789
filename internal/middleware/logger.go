package middleware

import (
	"net/http"
	"time"

	"equine-clinic/internal/platform/logger"
)

// statusWriter captura el status de la respuesta.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Unwrap permite que http.ResponseController llegue al writer original.
func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// RequestLogger loguea cada request: método, path, status, duración, request_id y user_id.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			fields := map[string]any{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      sw.status,
				"duration_ms": time.Since(start).Milliseconds(),
				"request_id":  RequestIDFromCtx(r.Context()),
			}
			if c, ok := GetClaims(r.Context()); ok {
				fields["user_id"] = c.UserID
				fields["clinic_id"] = c.ClinicID
			}

			if sw.status >= 500 {
				log.Error("http.request", fields)
				return
			}
			log.Info("http.request", fields)
		})
	}
}
