package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/domain/billing"
	"equine-clinic/internal/domain/calendar"
	"equine-clinic/internal/domain/histories"
	"equine-clinic/internal/domain/inventory"

	sq "github.com/Masterminds/squirrel"
)

type historyRow struct {
	ID               string         `db:"id"`
	ClinicID         string         `db:"clinic_id"`
	HorseID          string         `db:"horse_id"`
	VeterinarianID   string         `db:"veterinarian_id"`
	Date             time.Time      `db:"date"`
	Type             string         `db:"type"`
	Observations     string         `db:"observations"`
	Items            []byte         `db:"items"`
	TaxRate          float64        `db:"tax_rate"`
	NetTotal         float64        `db:"net_total"`
	Tax              float64        `db:"tax"`
	TotalWithTax     float64        `db:"total_with_tax"`
	InvoiceGenerated bool           `db:"invoice_generated"`
	InvoiceID        sql.NullString `db:"invoice_id"`
	EventID          sql.NullString `db:"event_id"`
	Consumed         []byte         `db:"consumed"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

func (r historyRow) history() (histories.History, error) {
	items, err := jsonOf[billing.LineItem](r.Items)
	if err != nil {
		return histories.History{}, err
	}
	consumed, err := jsonOf[inventory.Usage](r.Consumed)
	if err != nil {
		return histories.History{}, err
	}
	return histories.History{
		ID:               r.ID,
		ClinicID:         r.ClinicID,
		HorseID:          r.HorseID,
		VeterinarianID:   r.VeterinarianID,
		Date:             calendar.FromTime(r.Date.UTC()),
		Type:             r.Type,
		Observations:     r.Observations,
		Items:            items,
		TaxRate:          r.TaxRate,
		NetTotal:         r.NetTotal,
		Tax:              r.Tax,
		TotalWithTax:     r.TotalWithTax,
		InvoiceGenerated: r.InvoiceGenerated,
		InvoiceID:        r.InvoiceID.String,
		EventID:          r.EventID.String,
		Consumed:         consumed,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}, nil
}

type HistoriesRepo struct {
	db *sql.DB
}

func NewHistoriesRepo(db *sql.DB) *HistoriesRepo {
	return &HistoriesRepo{db: db}
}

// historyValues no incluye el enlace a factura: sólo cambia por MarkInvoiced/ClearInvoice.
func historyValues(h histories.History) (map[string]any, error) {
	items, err := jsonArg(h.Items)
	if err != nil {
		return nil, err
	}
	consumed, err := jsonArg(h.Consumed)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"clinic_id":       h.ClinicID,
		"horse_id":        h.HorseID,
		"veterinarian_id": h.VeterinarianID,
		"date":            dateArg(h.Date),
		"type":            h.Type,
		"observations":    h.Observations,
		"items":           items,
		"tax_rate":        h.TaxRate,
		"net_total":       h.NetTotal,
		"tax":             h.Tax,
		"total_with_tax":  h.TotalWithTax,
		"event_id":        nullString(h.EventID),
		"consumed":        consumed,
		"updated_at":      h.UpdatedAt,
	}, nil
}

func (r *HistoriesRepo) Create(ctx context.Context, h histories.History) error {
	vals, err := historyValues(h)
	if err != nil {
		return err
	}
	vals["id"], vals["created_at"] = h.ID, h.CreatedAt
	vals["invoice_generated"], vals["invoice_id"] = h.InvoiceGenerated, nullString(h.InvoiceID)
	_, err = exec(ctx, conn(ctx, r.db), psql.Insert("histories").SetMap(vals), "history", h.ID)
	return err
}

func (r *HistoriesRepo) Update(ctx context.Context, h histories.History) error {
	vals, err := historyValues(h)
	if err != nil {
		return err
	}
	return execOne(ctx, conn(ctx, r.db), psql.Update("histories").SetMap(vals).Where(sq.Eq{"id": h.ID}), "history", h.ID)
}

func (r *HistoriesRepo) GetByID(ctx context.Context, id string) (histories.History, error) {
	row, err := getOne[historyRow](ctx, conn(ctx, r.db), psql.Select("*").From("histories").Where(sq.Eq{"id": id}), "history", id)
	if err != nil {
		return histories.History{}, err
	}
	return row.history()
}

func (r *HistoriesRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, conn(ctx, r.db), psql.Delete("histories").Where(sq.Eq{"id": id}), "history", id)
}

func (r *HistoriesRepo) list(ctx context.Context, where sq.Sqlizer) ([]histories.History, error) {
	rows, err := selectAll[historyRow](ctx, conn(ctx, r.db),
		psql.Select("*").From("histories").Where(where).OrderBy("created_at", "id"))
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, historyRow.history)
}

func (r *HistoriesRepo) List(ctx context.Context, clinicID string) ([]histories.History, error) {
	return r.list(ctx, sq.Eq{"clinic_id": clinicID})
}

func (r *HistoriesRepo) ListByHorse(ctx context.Context, horseID string) ([]histories.History, error) {
	return r.list(ctx, sq.Eq{"horse_id": horseID})
}

func (r *HistoriesRepo) ListByEvent(ctx context.Context, eventID string) ([]histories.History, error) {
	return r.list(ctx, sq.Eq{"event_id": eventID})
}

// MarkInvoiced es un compare-and-set sobre invoice_generated.
func (r *HistoriesRepo) MarkInvoiced(ctx context.Context, id, invoiceID string) error {
	q := conn(ctx, r.db)
	b := psql.Update("histories").
		Set("invoice_generated", true).
		Set("invoice_id", invoiceID).
		Where(sq.Eq{"id": id, "invoice_generated": false})
	n, err := exec(ctx, q, b, "history", id)
	if err != nil || n > 0 {
		return err
	}
	ok, err := exists(ctx, q, "histories", id)
	if err != nil {
		return mapError(err, "history", id)
	}
	if !ok {
		return apperr.NotFound("history", id)
	}
	return fmt.Errorf("history %s already invoiced: %w", id, apperr.ErrConflict)
}

func (r *HistoriesRepo) ClearInvoice(ctx context.Context, id, invoiceID string) error {
	q := conn(ctx, r.db)
	b := psql.Update("histories").
		Set("invoice_generated", false).
		Set("invoice_id", nil).
		Where(sq.Eq{"id": id, "invoice_id": invoiceID})
	n, err := exec(ctx, q, b, "history", id)
	if err != nil || n > 0 {
		return err
	}
	ok, err := exists(ctx, q, "histories", id)
	if err != nil {
		return mapError(err, "history", id)
	}
	if !ok {
		return apperr.NotFound("history", id)
	}
	return nil
}

func (r *HistoriesRepo) DeleteByHorse(ctx context.Context, horseID string) error {
	_, err := exec(ctx, conn(ctx, r.db), psql.Delete("histories").Where(sq.Eq{"horse_id": horseID}), "history", horseID)
	return err
}

func (r *HistoriesRepo) DetachEvent(ctx context.Context, eventID string) error {
	b := psql.Update("histories").Set("event_id", nil).Where(sq.Eq{"event_id": eventID})
	_, err := exec(ctx, conn(ctx, r.db), b, "history", eventID)
	return err
}
