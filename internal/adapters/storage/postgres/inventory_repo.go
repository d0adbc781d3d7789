package postgres

import (
	"context"
	"database/sql"
	"time"

	"equine-clinic/internal/domain/inventory"

	sq "github.com/Masterminds/squirrel"
)

type inventoryRow struct {
	ID           string       `db:"id"`
	ClinicID     string       `db:"clinic_id"`
	Name         string       `db:"name"`
	Category     string       `db:"category"`
	Stock        float64      `db:"stock"`
	Minimum      float64      `db:"minimum"`
	Unit         string       `db:"unit"`
	UnitPrice    float64      `db:"unit_price"`
	Supplier     string       `db:"supplier"`
	LastPurchase sql.NullTime `db:"last_purchase"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
}

func (r inventoryRow) item() (inventory.Item, error) {
	return inventory.Item{
		ID:           r.ID,
		ClinicID:     r.ClinicID,
		Name:         r.Name,
		Category:     r.Category,
		Stock:        r.Stock,
		Minimum:      r.Minimum,
		Unit:         r.Unit,
		UnitPrice:    r.UnitPrice,
		Supplier:     r.Supplier,
		LastPurchase: dateOf(r.LastPurchase),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}, nil
}

type InventoryRepo struct {
	db *sql.DB
}

func NewInventoryRepo(db *sql.DB) *InventoryRepo {
	return &InventoryRepo{db: db}
}

func inventoryValues(it inventory.Item) map[string]any {
	return map[string]any{
		"clinic_id":     it.ClinicID,
		"name":          it.Name,
		"category":      it.Category,
		"stock":         it.Stock,
		"minimum":       it.Minimum,
		"unit":          it.Unit,
		"unit_price":    it.UnitPrice,
		"supplier":      it.Supplier,
		"last_purchase": nullDate(it.LastPurchase),
		"updated_at":    it.UpdatedAt,
	}
}

func (r *InventoryRepo) Create(ctx context.Context, it inventory.Item) error {
	vals := inventoryValues(it)
	vals["id"], vals["created_at"] = it.ID, it.CreatedAt
	_, err := exec(ctx, conn(ctx, r.db), psql.Insert("inventory_items").SetMap(vals), "inventory item", it.ID)
	return err
}

func (r *InventoryRepo) Update(ctx context.Context, it inventory.Item) error {
	b := psql.Update("inventory_items").SetMap(inventoryValues(it)).Where(sq.Eq{"id": it.ID})
	return execOne(ctx, conn(ctx, r.db), b, "inventory item", it.ID)
}

func (r *InventoryRepo) GetByID(ctx context.Context, id string) (inventory.Item, error) {
	row, err := getOne[inventoryRow](ctx, conn(ctx, r.db),
		psql.Select("*").From("inventory_items").Where(sq.Eq{"id": id}), "inventory item", id)
	if err != nil {
		return inventory.Item{}, err
	}
	return row.item()
}

func (r *InventoryRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, conn(ctx, r.db), psql.Delete("inventory_items").Where(sq.Eq{"id": id}), "inventory item", id)
}

func (r *InventoryRepo) List(ctx context.Context, clinicID string) ([]inventory.Item, error) {
	rows, err := selectAll[inventoryRow](ctx, conn(ctx, r.db),
		psql.Select("*").From("inventory_items").Where(sq.Eq{"clinic_id": clinicID}).OrderBy("created_at", "id"))
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, inventoryRow.item)
}

// AdjustStock aplica delta en una sola sentencia; GREATEST mantiene el piso en 0.
func (r *InventoryRepo) AdjustStock(ctx context.Context, id string, delta float64) (inventory.Item, error) {
	b := psql.Update("inventory_items").
		Set("stock", sq.Expr("GREATEST(stock + ?, 0)", delta)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING *")
	row, err := getOne[inventoryRow](ctx, conn(ctx, r.db), b, "inventory item", id)
	if err != nil {
		return inventory.Item{}, err
	}
	return row.item()
}
