package postgres

import (
	"context"
	"database/sql"
	"time"

	"equine-clinic/internal/domain/billing"
	"equine-clinic/internal/domain/calendar"
	"equine-clinic/internal/domain/invoices"

	sq "github.com/Masterminds/squirrel"
)

type invoiceRow struct {
	ID           string         `db:"id"`
	ClinicID     string         `db:"clinic_id"`
	Number       string         `db:"number"`
	Date         time.Time      `db:"date"`
	HistoryID    string         `db:"history_id"`
	HorseID      string         `db:"horse_id"`
	OwnerID      string         `db:"owner_id"`
	EventID      sql.NullString `db:"event_id"`
	Items        []byte         `db:"items"`
	TaxRate      float64        `db:"tax_rate"`
	NetTotal     float64        `db:"net_total"`
	Tax          float64        `db:"tax"`
	TotalWithTax float64        `db:"total_with_tax"`
	Observations string         `db:"observations"`
	Status       string         `db:"status"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (r invoiceRow) invoice() (invoices.Invoice, error) {
	items, err := jsonOf[billing.LineItem](r.Items)
	if err != nil {
		return invoices.Invoice{}, err
	}
	return invoices.Invoice{
		ID:           r.ID,
		ClinicID:     r.ClinicID,
		Number:       r.Number,
		Date:         calendar.FromTime(r.Date.UTC()),
		HistoryID:    r.HistoryID,
		HorseID:      r.HorseID,
		OwnerID:      r.OwnerID,
		EventID:      r.EventID.String,
		Items:        items,
		TaxRate:      r.TaxRate,
		NetTotal:     r.NetTotal,
		Tax:          r.Tax,
		TotalWithTax: r.TotalWithTax,
		Observations: r.Observations,
		Status:       invoices.Status(r.Status),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}, nil
}

type InvoicesRepo struct {
	db *sql.DB
}

func NewInvoicesRepo(db *sql.DB) *InvoicesRepo {
	return &InvoicesRepo{db: db}
}

func (r *InvoicesRepo) Create(ctx context.Context, inv invoices.Invoice) error {
	items, err := jsonArg(inv.Items)
	if err != nil {
		return err
	}
	b := psql.Insert("invoices").SetMap(map[string]any{
		"id":             inv.ID,
		"clinic_id":      inv.ClinicID,
		"number":         inv.Number,
		"date":           dateArg(inv.Date),
		"history_id":     inv.HistoryID,
		"horse_id":       inv.HorseID,
		"owner_id":       inv.OwnerID,
		"event_id":       nullString(inv.EventID),
		"items":          items,
		"tax_rate":       inv.TaxRate,
		"net_total":      inv.NetTotal,
		"tax":            inv.Tax,
		"total_with_tax": inv.TotalWithTax,
		"observations":   inv.Observations,
		"status":         string(inv.Status),
		"created_at":     inv.CreatedAt,
		"updated_at":     inv.UpdatedAt,
	})
	_, err = exec(ctx, conn(ctx, r.db), b, "invoice", inv.ID)
	return err
}

func (r *InvoicesRepo) GetByID(ctx context.Context, id string) (invoices.Invoice, error) {
	row, err := getOne[invoiceRow](ctx, conn(ctx, r.db), psql.Select("*").From("invoices").Where(sq.Eq{"id": id}), "invoice", id)
	if err != nil {
		return invoices.Invoice{}, err
	}
	return row.invoice()
}

func (r *InvoicesRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, conn(ctx, r.db), psql.Delete("invoices").Where(sq.Eq{"id": id}), "invoice", id)
}

func (r *InvoicesRepo) list(ctx context.Context, where sq.Sqlizer) ([]invoices.Invoice, error) {
	rows, err := selectAll[invoiceRow](ctx, conn(ctx, r.db),
		psql.Select("*").From("invoices").Where(where).OrderBy("created_at", "id"))
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, invoiceRow.invoice)
}

func (r *InvoicesRepo) List(ctx context.Context, clinicID string) ([]invoices.Invoice, error) {
	return r.list(ctx, sq.Eq{"clinic_id": clinicID})
}

func (r *InvoicesRepo) ListByHorse(ctx context.Context, horseID string) ([]invoices.Invoice, error) {
	return r.list(ctx, sq.Eq{"horse_id": horseID})
}

func (r *InvoicesRepo) ListByEvent(ctx context.Context, eventID string) ([]invoices.Invoice, error) {
	return r.list(ctx, sq.Eq{"event_id": eventID})
}

func (r *InvoicesRepo) SetStatus(ctx context.Context, id string, status invoices.Status) (invoices.Invoice, error) {
	b := psql.Update("invoices").
		Set("status", string(status)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING *")
	row, err := getOne[invoiceRow](ctx, conn(ctx, r.db), b, "invoice", id)
	if err != nil {
		return invoices.Invoice{}, err
	}
	return row.invoice()
}

func (r *InvoicesRepo) DeleteByHorse(ctx context.Context, horseID string) error {
	_, err := exec(ctx, conn(ctx, r.db), psql.Delete("invoices").Where(sq.Eq{"horse_id": horseID}), "invoice", horseID)
	return err
}

func (r *InvoicesRepo) DetachEvent(ctx context.Context, eventID string) error {
	b := psql.Update("invoices").Set("event_id", nil).Where(sq.Eq{"event_id": eventID})
	_, err := exec(ctx, conn(ctx, r.db), b, "invoice", eventID)
	return err
}

// Sequencer numera facturas con un upsert sobre invoice_sequences.
type Sequencer struct {
	db *sql.DB
}

func NewSequencer(db *sql.DB) *Sequencer {
	return &Sequencer{db: db}
}

func (s *Sequencer) Next(ctx context.Context, clinicID string, year int) (int64, error) {
	b := psql.Insert("invoice_sequences").
		Columns("clinic_id", "year", "value").
		Values(clinicID, year, 1).
		Suffix("ON CONFLICT (clinic_id, year) DO UPDATE SET value = invoice_sequences.value + 1 RETURNING value")
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	var next int64
	if err := conn(ctx, s.db).QueryRowContext(ctx, query, args...).Scan(&next); err != nil {
		return 0, mapError(err, "invoice sequence", clinicID)
	}
	return next, nil
}
