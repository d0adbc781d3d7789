package postgres

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
)

// crud cubre las tablas cuyas filas se escanean directo en el tipo de dominio
// (sin columnas NULL ni JSONB).
type crud[T any] struct {
	db     *sql.DB
	table  string
	entity string
	idOf   func(T) string
	values func(T) map[string]any
}

func (c crud[T]) create(ctx context.Context, v T) error {
	vals := c.values(v)
	vals["id"] = c.idOf(v)
	_, err := exec(ctx, conn(ctx, c.db), psql.Insert(c.table).SetMap(vals), c.entity, c.idOf(v))
	return err
}

// update no toca id ni created_at.
func (c crud[T]) update(ctx context.Context, v T) error {
	vals := c.values(v)
	delete(vals, "created_at")
	b := psql.Update(c.table).SetMap(vals).Where(sq.Eq{"id": c.idOf(v)})
	return execOne(ctx, conn(ctx, c.db), b, c.entity, c.idOf(v))
}

func (c crud[T]) get(ctx context.Context, id string) (T, error) {
	b := psql.Select("*").From(c.table).Where(sq.Eq{"id": id})
	return getOne[T](ctx, conn(ctx, c.db), b, c.entity, id)
}

func (c crud[T]) remove(ctx context.Context, id string) error {
	return execOne(ctx, conn(ctx, c.db), psql.Delete(c.table).Where(sq.Eq{"id": id}), c.entity, id)
}

func (c crud[T]) list(ctx context.Context, where sq.Sqlizer) ([]T, error) {
	b := psql.Select("*").From(c.table).OrderBy("created_at", "id")
	if where != nil {
		b = b.Where(where)
	}
	return selectAll[T](ctx, conn(ctx, c.db), b)
}
