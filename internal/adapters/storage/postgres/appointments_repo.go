package postgres

import (
	"context"
	"database/sql"
	"time"

	"equine-clinic/internal/domain/appointments"
	"equine-clinic/internal/domain/calendar"

	sq "github.com/Masterminds/squirrel"
)

type appointmentRow struct {
	ID        string         `db:"id"`
	ClinicID  string         `db:"clinic_id"`
	HorseID   string         `db:"horse_id"`
	Date      time.Time      `db:"date"`
	Time      string         `db:"time"`
	Type      string         `db:"type"`
	Location  string         `db:"location"`
	Notes     string         `db:"notes"`
	Completed bool           `db:"completed"`
	EventID   sql.NullString `db:"event_id"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (r appointmentRow) appointment() (appointments.Appointment, error) {
	return appointments.Appointment{
		ID:        r.ID,
		ClinicID:  r.ClinicID,
		HorseID:   r.HorseID,
		Date:      calendar.FromTime(r.Date.UTC()),
		Time:      r.Time,
		Type:      r.Type,
		Location:  r.Location,
		Notes:     r.Notes,
		Completed: r.Completed,
		EventID:   r.EventID.String,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

func appointmentValues(a appointments.Appointment) map[string]any {
	return map[string]any{
		"clinic_id":  a.ClinicID,
		"horse_id":   a.HorseID,
		"date":       dateArg(a.Date),
		"time":       a.Time,
		"type":       a.Type,
		"location":   a.Location,
		"notes":      a.Notes,
		"completed":  a.Completed,
		"event_id":   nullString(a.EventID),
		"updated_at": a.UpdatedAt,
	}
}

func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	vals := appointmentValues(a)
	vals["id"], vals["created_at"] = a.ID, a.CreatedAt
	_, err := exec(ctx, conn(ctx, r.db), psql.Insert("appointments").SetMap(vals), "appointment", a.ID)
	return err
}

func (r *AppointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	b := psql.Update("appointments").SetMap(appointmentValues(a)).Where(sq.Eq{"id": a.ID})
	return execOne(ctx, conn(ctx, r.db), b, "appointment", a.ID)
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	row, err := getOne[appointmentRow](ctx, conn(ctx, r.db),
		psql.Select("*").From("appointments").Where(sq.Eq{"id": id}), "appointment", id)
	if err != nil {
		return appointments.Appointment{}, err
	}
	return row.appointment()
}

func (r *AppointmentsRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, conn(ctx, r.db), psql.Delete("appointments").Where(sq.Eq{"id": id}), "appointment", id)
}

func (r *AppointmentsRepo) list(ctx context.Context, where sq.Sqlizer) ([]appointments.Appointment, error) {
	rows, err := selectAll[appointmentRow](ctx, conn(ctx, r.db),
		psql.Select("*").From("appointments").Where(where).OrderBy("created_at", "id"))
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, appointmentRow.appointment)
}

func (r *AppointmentsRepo) List(ctx context.Context, clinicID string) ([]appointments.Appointment, error) {
	return r.list(ctx, sq.Eq{"clinic_id": clinicID})
}

func (r *AppointmentsRepo) ListByHorse(ctx context.Context, horseID string) ([]appointments.Appointment, error) {
	return r.list(ctx, sq.Eq{"horse_id": horseID})
}

func (r *AppointmentsRepo) ListByEvent(ctx context.Context, eventID string) ([]appointments.Appointment, error) {
	return r.list(ctx, sq.Eq{"event_id": eventID})
}

func (r *AppointmentsRepo) ListBetween(ctx context.Context, clinicID string, from, to calendar.Date) ([]appointments.Appointment, error) {
	return r.list(ctx, sq.And{
		sq.Eq{"clinic_id": clinicID},
		sq.GtOrEq{"date": dateArg(from)},
		sq.LtOrEq{"date": dateArg(to)},
	})
}

func (r *AppointmentsRepo) SetCompleted(ctx context.Context, id string, completed bool) (appointments.Appointment, error) {
	b := psql.Update("appointments").
		Set("completed", completed).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING *")
	row, err := getOne[appointmentRow](ctx, conn(ctx, r.db), b, "appointment", id)
	if err != nil {
		return appointments.Appointment{}, err
	}
	return row.appointment()
}

func (r *AppointmentsRepo) DeleteByHorse(ctx context.Context, horseID string) error {
	_, err := exec(ctx, conn(ctx, r.db), psql.Delete("appointments").Where(sq.Eq{"horse_id": horseID}), "appointment", horseID)
	return err
}

func (r *AppointmentsRepo) DetachEvent(ctx context.Context, eventID string) error {
	b := psql.Update("appointments").Set("event_id", nil).Where(sq.Eq{"event_id": eventID})
	_, err := exec(ctx, conn(ctx, r.db), b, "appointment", eventID)
	return err
}
