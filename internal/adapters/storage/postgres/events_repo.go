package postgres

import (
	"context"
	"database/sql"
	"time"

	"equine-clinic/internal/domain/events"

	sq "github.com/Masterminds/squirrel"
)

type eventRow struct {
	ID            string       `db:"id"`
	ClinicID      string       `db:"clinic_id"`
	Name          string       `db:"name"`
	Type          string       `db:"type"`
	Status        string       `db:"status"`
	StartDate     time.Time    `db:"start_date"`
	EndDate       sql.NullTime `db:"end_date"`
	Location      string       `db:"location"`
	Organizer     string       `db:"organizer"`
	Contact       string       `db:"contact"`
	Description   string       `db:"description"`
	AnimalsServed int          `db:"animals_served"`
	Revenue       float64      `db:"revenue"`
	Expenses      float64      `db:"expenses"`
	Services      []byte       `db:"services"`
	Images        []byte       `db:"images"`
	CreatedAt     time.Time    `db:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at"`
}

func (r eventRow) event() (events.Event, error) {
	services, err := jsonOf[string](r.Services)
	if err != nil {
		return events.Event{}, err
	}
	images, err := jsonOf[string](r.Images)
	if err != nil {
		return events.Event{}, err
	}
	return events.Event{
		ID:            r.ID,
		ClinicID:      r.ClinicID,
		Name:          r.Name,
		Type:          events.Type(r.Type),
		Status:        events.Status(r.Status),
		StartDate:     dateOf(sql.NullTime{Time: r.StartDate, Valid: true}),
		EndDate:       dateOf(r.EndDate),
		Location:      r.Location,
		Organizer:     r.Organizer,
		Contact:       r.Contact,
		Description:   r.Description,
		AnimalsServed: r.AnimalsServed,
		Revenue:       r.Revenue,
		Expenses:      r.Expenses,
		Services:      services,
		Images:        images,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}, nil
}

type EventsRepo struct {
	db *sql.DB
}

func NewEventsRepo(db *sql.DB) *EventsRepo {
	return &EventsRepo{db: db}
}

// eventValues deja fuera contadores e imágenes: sólo cambian por sus métodos.
func eventValues(e events.Event) map[string]any {
	return map[string]any{
		"clinic_id":   e.ClinicID,
		"name":        e.Name,
		"type":        string(e.Type),
		"status":      string(e.Status),
		"start_date":  dateArg(e.StartDate),
		"end_date":    nullDate(e.EndDate),
		"location":    e.Location,
		"organizer":   e.Organizer,
		"contact":     e.Contact,
		"description": e.Description,
		"expenses":    e.Expenses,
		"updated_at":  e.UpdatedAt,
	}
}

func (r *EventsRepo) Create(ctx context.Context, e events.Event) error {
	services, err := jsonArg(e.Services)
	if err != nil {
		return err
	}
	images, err := jsonArg(e.Images)
	if err != nil {
		return err
	}
	vals := eventValues(e)
	vals["id"], vals["created_at"] = e.ID, e.CreatedAt
	vals["animals_served"], vals["revenue"] = e.AnimalsServed, e.Revenue
	vals["services"], vals["images"] = services, images
	_, err = exec(ctx, conn(ctx, r.db), psql.Insert("events").SetMap(vals), "event", e.ID)
	return err
}

func (r *EventsRepo) Update(ctx context.Context, e events.Event) error {
	b := psql.Update("events").SetMap(eventValues(e)).Where(sq.Eq{"id": e.ID})
	return execOne(ctx, conn(ctx, r.db), b, "event", e.ID)
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (events.Event, error) {
	row, err := getOne[eventRow](ctx, conn(ctx, r.db), psql.Select("*").From("events").Where(sq.Eq{"id": id}), "event", id)
	if err != nil {
		return events.Event{}, err
	}
	return row.event()
}

func (r *EventsRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, conn(ctx, r.db), psql.Delete("events").Where(sq.Eq{"id": id}), "event", id)
}

func (r *EventsRepo) List(ctx context.Context, clinicID string, filter events.ListFilter) ([]events.Event, error) {
	b := psql.Select("*").From("events").Where(sq.Eq{"clinic_id": clinicID})
	if len(filter.Types) > 0 {
		b = b.Where(sq.Eq{"type": stringsOf(filter.Types)})
	}
	if len(filter.Statuses) > 0 {
		b = b.Where(sq.Eq{"status": stringsOf(filter.Statuses)})
	}
	if filter.From != nil {
		b = b.Where(sq.GtOrEq{"start_date": dateArg(*filter.From)})
	}
	if filter.To != nil {
		b = b.Where(sq.LtOrEq{"start_date": dateArg(*filter.To)})
	}
	rows, err := selectAll[eventRow](ctx, conn(ctx, r.db), b.OrderBy("created_at", "id"))
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, eventRow.event)
}

// applyHistorySQL agrega los servicios nuevos en orden, sin repetir.
const applyHistorySQL = `
UPDATE events SET
    revenue = revenue + $1,
    animals_served = animals_served + 1,
    services = services || COALESCE((
        SELECT jsonb_agg(s ORDER BY ord)
        FROM (
            SELECT DISTINCT ON (s) s, ord
            FROM jsonb_array_elements_text($2::jsonb) WITH ORDINALITY AS t(s, ord)
            WHERE NOT jsonb_exists(events.services, s)
            ORDER BY s, ord
        ) fresh
    ), '[]'::jsonb)
WHERE id = $3`

func (r *EventsRepo) ApplyHistory(ctx context.Context, id string, revenue float64, services []string) error {
	arg, err := jsonArg(services)
	if err != nil {
		return err
	}
	res, err := conn(ctx, r.db).ExecContext(ctx, applyHistorySQL, revenue, arg, id)
	if err != nil {
		return mapError(err, "event", id)
	}
	return requireRow(res, "event", id)
}

func (r *EventsRepo) SetCounters(ctx context.Context, id string, animals int, revenue float64, services []string) error {
	arg, err := jsonArg(services)
	if err != nil {
		return err
	}
	b := psql.Update("events").
		Set("animals_served", animals).
		Set("revenue", revenue).
		Set("services", arg).
		Where(sq.Eq{"id": id})
	return execOne(ctx, conn(ctx, r.db), b, "event", id)
}

func (r *EventsRepo) AddImage(ctx context.Context, id, key string) error {
	arg, err := jsonArg([]string{key})
	if err != nil {
		return err
	}
	b := psql.Update("events").
		Set("images", sq.Expr("images || ?::jsonb", arg)).
		Where(sq.Eq{"id": id})
	return execOne(ctx, conn(ctx, r.db), b, "event", id)
}

func stringsOf[T ~string](xs []T) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = string(x)
	}
	return out
}
