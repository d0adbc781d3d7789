package postgres

import (
	"context"
	"errors"
	"fmt"

	"equine-clinic/internal/domain/apperr"

	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/jackc/pgx/v5/pgconn"
)

// mapError traduce errores de pgx/scany a errores de dominio.
// Los errores de contexto pasan tal cual.
func mapError(err error, entity, id string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if sqlscan.NotFound(err) {
		return apperr.NotFound(entity, id)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, apperr.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, apperr.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, apperr.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
