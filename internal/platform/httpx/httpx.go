// Package httpx agrupa los helpers HTTP que antes estaban duplicados en cada handler
// (writeJSON por módulo). Con más de diez módulos ya conviene tenerlos en un solo lugar.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"equine-clinic/internal/domain/apperr"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error  string              `json:"error"`
	Fields []apperr.FieldError `json:"fields,omitempty"`
}

// StatusOf traduce la taxonomía de apperr a status HTTP.
func StatusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict), errors.Is(err, apperr.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrCollaborator):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WriteError responde {"error": ..., "fields": [...]}.
// Los 5xx no exponen el detalle interno.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusOf(err)

	resp := errorResponse{Error: err.Error()}
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		resp.Fields = ve.Errors
	}
	if status == http.StatusInternalServerError {
		resp.Error = "internal error"
	}
	if status == http.StatusBadGateway {
		resp.Error = "upstream error"
	}

	WriteJSON(w, status, resp)
}

// DecodeJSON decodifica el body; un JSON inválido es un ValidationError.
func DecodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Invalid("body", "invalid json")
	}
	return nil
}

// QueryInt lee un entero opcional de la query, con default y máximo.
func QueryInt(r *http.Request, key string, def, max int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	if max > 0 && n > max {
		return max
	}
	return n
}
