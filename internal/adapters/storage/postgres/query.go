package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/domain/calendar"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// getOne ejecuta b y escanea una fila en T.
func getOne[T any](ctx context.Context, q querier, b sq.Sqlizer, entity, id string) (T, error) {
	var out T
	query, args, err := b.ToSql()
	if err != nil {
		return out, err
	}
	if err := sqlscan.Get(ctx, q, &out, query, args...); err != nil {
		return out, mapError(err, entity, id)
	}
	return out, nil
}

// selectAll devuelve siempre un slice no-nil.
func selectAll[T any](ctx context.Context, q querier, b sq.Sqlizer) ([]T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0)
	if err := sqlscan.Select(ctx, q, &out, query, args...); err != nil {
		return nil, err
	}
	return out, nil
}

// exec ejecuta b y devuelve las filas afectadas.
func exec(ctx context.Context, q querier, b sq.Sqlizer, entity, id string) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapError(err, entity, id)
	}
	return res.RowsAffected()
}

func requireRow(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound(entity, id)
	}
	return nil
}

// execOne es exec exigiendo que exista la fila.
func execOne(ctx context.Context, q querier, b sq.Sqlizer, entity, id string) error {
	n, err := exec(ctx, q, b, entity, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound(entity, id)
	}
	return nil
}

func exists(ctx context.Context, q querier, table, id string) (bool, error) {
	query, args, err := psql.Select("1").From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return false, err
	}
	var one int
	err = q.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func mapSlice[R, T any](rows []R, fn func(R) (T, error)) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		v, err := fn(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Columnas opcionales: "" y fecha cero se guardan como NULL.

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullDate(d calendar.Date) sql.NullTime {
	if d.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: d.Time(), Valid: true}
}

func dateOf(t sql.NullTime) calendar.Date {
	if !t.Valid {
		return calendar.Date{}
	}
	return calendar.FromTime(t.Time.UTC())
}

func dateArg(d calendar.Date) time.Time { return d.Time() }

// jsonArg serializa slices a JSONB. nil se guarda como [].
func jsonArg[T any](v []T) (string, error) {
	if v == nil {
		v = []T{}
	}
	b, err := json.Marshal(v)
	return string(b), err
}

func jsonOf[T any](raw []byte) ([]T, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}
