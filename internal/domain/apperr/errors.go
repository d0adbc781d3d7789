// Package apperr reúne los errores de dominio compartidos por todos los módulos.
// Los handlers los traducen a status HTTP en platform/httpx.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation error")
	ErrCollaborator  = errors.New("collaborator error")
	ErrAlreadyExists = errors.New("already exists")
	ErrConflict      = errors.New("conflict")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
)

// FieldError describe un campo inválido.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError: faltan campos requeridos o vienen mal formados.
// La operación no se intenta.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field)
	}
	return fmt.Sprintf("validation: %d errors (%s)", len(e.Errors), strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func Invalid(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

func InvalidFields(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// CollaboratorError envuelve fallas del row store, del proveedor de auth o del blob store.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	if e.Err == nil {
		return e.Op + ": collaborator error"
	}
	return e.Op + ": " + e.Err.Error()
}

// Unwrap expone tanto ErrCollaborator como la causa original.
func (e *CollaboratorError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCollaborator}
	}
	return []error{ErrCollaborator, e.Err}
}

// Collaborator envuelve err salvo que ya sea un error de dominio conocido.
func Collaborator(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsDomain(err) {
		return err
	}
	return &CollaboratorError{Op: op, Err: err}
}

func NotFound(entity, id string) error {
	return fmt.Errorf("%s %q: %w", entity, id, ErrNotFound)
}

// IsDomain indica si err ya pertenece a la taxonomía (no hace falta envolverlo).
func IsDomain(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrValidation, ErrCollaborator, ErrAlreadyExists,
		ErrConflict, ErrUnauthorized, ErrForbidden,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
