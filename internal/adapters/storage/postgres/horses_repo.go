package postgres

import (
	"context"
	"database/sql"
	"time"

	"equine-clinic/internal/domain/calendar"
	"equine-clinic/internal/domain/horses"

	sq "github.com/Masterminds/squirrel"
)

type horseRow struct {
	ID          string         `db:"id"`
	ClinicID    string         `db:"clinic_id"`
	Name        string         `db:"name"`
	Breed       string         `db:"breed"`
	Age         int            `db:"age"`
	Sex         string         `db:"sex"`
	Color       string         `db:"color"`
	ChipNumber  string         `db:"chip_number"`
	OwnerID     string         `db:"owner_id"`
	StableID    sql.NullString `db:"stable_id"`
	LastCheckup sql.NullTime   `db:"last_checkup"`
	Medications []byte         `db:"medications"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r horseRow) horse() (horses.Horse, error) {
	meds, err := jsonOf[horses.Medication](r.Medications)
	if err != nil {
		return horses.Horse{}, err
	}
	return horses.Horse{
		ID:          r.ID,
		ClinicID:    r.ClinicID,
		Name:        r.Name,
		Breed:       r.Breed,
		Age:         r.Age,
		Sex:         horses.Sex(r.Sex),
		Color:       r.Color,
		ChipNumber:  r.ChipNumber,
		OwnerID:     r.OwnerID,
		StableID:    r.StableID.String,
		LastCheckup: dateOf(r.LastCheckup),
		Medications: meds,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

type HorsesRepo struct {
	db *sql.DB
}

func NewHorsesRepo(db *sql.DB) *HorsesRepo {
	return &HorsesRepo{db: db}
}

func horseValues(h horses.Horse) (map[string]any, error) {
	meds, err := jsonArg(h.Medications)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"clinic_id":    h.ClinicID,
		"name":         h.Name,
		"breed":        h.Breed,
		"age":          h.Age,
		"sex":          string(h.Sex),
		"color":        h.Color,
		"chip_number":  h.ChipNumber,
		"owner_id":     h.OwnerID,
		"stable_id":    nullString(h.StableID),
		"last_checkup": nullDate(h.LastCheckup),
		"medications":  meds,
		"updated_at":   h.UpdatedAt,
	}, nil
}

func (r *HorsesRepo) Create(ctx context.Context, h horses.Horse) error {
	vals, err := horseValues(h)
	if err != nil {
		return err
	}
	vals["id"], vals["created_at"] = h.ID, h.CreatedAt
	_, err = exec(ctx, conn(ctx, r.db), psql.Insert("horses").SetMap(vals), "horse", h.ID)
	return err
}

func (r *HorsesRepo) Update(ctx context.Context, h horses.Horse) error {
	vals, err := horseValues(h)
	if err != nil {
		return err
	}
	return execOne(ctx, conn(ctx, r.db), psql.Update("horses").SetMap(vals).Where(sq.Eq{"id": h.ID}), "horse", h.ID)
}

func (r *HorsesRepo) GetByID(ctx context.Context, id string) (horses.Horse, error) {
	row, err := getOne[horseRow](ctx, conn(ctx, r.db), psql.Select("*").From("horses").Where(sq.Eq{"id": id}), "horse", id)
	if err != nil {
		return horses.Horse{}, err
	}
	return row.horse()
}

func (r *HorsesRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, conn(ctx, r.db), psql.Delete("horses").Where(sq.Eq{"id": id}), "horse", id)
}

func (r *HorsesRepo) List(ctx context.Context, clinicID string) ([]horses.Horse, error) {
	rows, err := selectAll[horseRow](ctx, conn(ctx, r.db),
		psql.Select("*").From("horses").Where(sq.Eq{"clinic_id": clinicID}).OrderBy("created_at", "id"))
	if err != nil {
		return nil, err
	}
	return mapSlice(rows, horseRow.horse)
}

func (r *HorsesRepo) SetLastCheckup(ctx context.Context, id string, d calendar.Date) error {
	b := psql.Update("horses").Set("last_checkup", nullDate(d)).Where(sq.Eq{"id": id})
	return execOne(ctx, conn(ctx, r.db), b, "horse", id)
}
