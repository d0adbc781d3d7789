package postgres

import (
	"context"
	"database/sql"

	"equine-clinic/internal/domain/catalog"
	"equine-clinic/internal/domain/clinics"
	"equine-clinic/internal/domain/owners"
	"equine-clinic/internal/domain/stables"
	"equine-clinic/internal/domain/veterinarians"

	sq "github.com/Masterminds/squirrel"
)

// OwnersRepo, StablesRepo, VeterinariansRepo, CatalogRepo y ClinicsRepo
// son tablas planas sobre crud.

type OwnersRepo struct{ c crud[owners.Owner] }

func NewOwnersRepo(db *sql.DB) *OwnersRepo {
	return &OwnersRepo{c: crud[owners.Owner]{
		db: db, table: "owners", entity: "owner",
		idOf: func(o owners.Owner) string { return o.ID },
		values: func(o owners.Owner) map[string]any {
			return map[string]any{
				"clinic_id":   o.ClinicID,
				"name":        o.Name,
				"phone":       o.Phone,
				"email":       o.Email,
				"address":     o.Address,
				"national_id": o.NationalID,
				"tax_id":      o.TaxID,
				"created_at":  o.CreatedAt,
				"updated_at":  o.UpdatedAt,
			}
		},
	}}
}

func (r *OwnersRepo) Create(ctx context.Context, o owners.Owner) error { return r.c.create(ctx, o) }
func (r *OwnersRepo) Update(ctx context.Context, o owners.Owner) error { return r.c.update(ctx, o) }
func (r *OwnersRepo) GetByID(ctx context.Context, id string) (owners.Owner, error) {
	return r.c.get(ctx, id)
}
func (r *OwnersRepo) Delete(ctx context.Context, id string) error { return r.c.remove(ctx, id) }
func (r *OwnersRepo) List(ctx context.Context, clinicID string) ([]owners.Owner, error) {
	return r.c.list(ctx, sq.Eq{"clinic_id": clinicID})
}

type StablesRepo struct{ c crud[stables.Stable] }

func NewStablesRepo(db *sql.DB) *StablesRepo {
	return &StablesRepo{c: crud[stables.Stable]{
		db: db, table: "stables", entity: "stable",
		idOf: func(s stables.Stable) string { return s.ID },
		values: func(s stables.Stable) map[string]any {
			return map[string]any{
				"clinic_id":  s.ClinicID,
				"name":       s.Name,
				"address":    s.Address,
				"phone":      s.Phone,
				"contact":    s.Contact,
				"created_at": s.CreatedAt,
				"updated_at": s.UpdatedAt,
			}
		},
	}}
}

func (r *StablesRepo) Create(ctx context.Context, s stables.Stable) error { return r.c.create(ctx, s) }
func (r *StablesRepo) Update(ctx context.Context, s stables.Stable) error { return r.c.update(ctx, s) }
func (r *StablesRepo) GetByID(ctx context.Context, id string) (stables.Stable, error) {
	return r.c.get(ctx, id)
}
func (r *StablesRepo) Delete(ctx context.Context, id string) error { return r.c.remove(ctx, id) }
func (r *StablesRepo) List(ctx context.Context, clinicID string) ([]stables.Stable, error) {
	return r.c.list(ctx, sq.Eq{"clinic_id": clinicID})
}

type VeterinariansRepo struct{ c crud[veterinarians.Veterinarian] }

func NewVeterinariansRepo(db *sql.DB) *VeterinariansRepo {
	return &VeterinariansRepo{c: crud[veterinarians.Veterinarian]{
		db: db, table: "veterinarians", entity: "veterinarian",
		idOf: func(v veterinarians.Veterinarian) string { return v.ID },
		values: func(v veterinarians.Veterinarian) map[string]any {
			return map[string]any{
				"clinic_id":  v.ClinicID,
				"name":       v.Name,
				"specialty":  v.Specialty,
				"phone":      v.Phone,
				"email":      v.Email,
				"created_at": v.CreatedAt,
				"updated_at": v.UpdatedAt,
			}
		},
	}}
}

func (r *VeterinariansRepo) Create(ctx context.Context, v veterinarians.Veterinarian) error {
	return r.c.create(ctx, v)
}
func (r *VeterinariansRepo) Update(ctx context.Context, v veterinarians.Veterinarian) error {
	return r.c.update(ctx, v)
}
func (r *VeterinariansRepo) GetByID(ctx context.Context, id string) (veterinarians.Veterinarian, error) {
	return r.c.get(ctx, id)
}
func (r *VeterinariansRepo) Delete(ctx context.Context, id string) error { return r.c.remove(ctx, id) }
func (r *VeterinariansRepo) List(ctx context.Context, clinicID string) ([]veterinarians.Veterinarian, error) {
	return r.c.list(ctx, sq.Eq{"clinic_id": clinicID})
}

type CatalogRepo struct{ c crud[catalog.Item] }

func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{c: crud[catalog.Item]{
		db: db, table: "catalog_items", entity: "catalog item",
		idOf: func(it catalog.Item) string { return it.ID },
		values: func(it catalog.Item) map[string]any {
			return map[string]any{
				"clinic_id":   it.ClinicID,
				"name":        it.Name,
				"description": it.Description,
				"price":       it.Price,
				"category":    it.Category,
				"created_at":  it.CreatedAt,
				"updated_at":  it.UpdatedAt,
			}
		},
	}}
}

func (r *CatalogRepo) Create(ctx context.Context, it catalog.Item) error { return r.c.create(ctx, it) }
func (r *CatalogRepo) Update(ctx context.Context, it catalog.Item) error { return r.c.update(ctx, it) }
func (r *CatalogRepo) GetByID(ctx context.Context, id string) (catalog.Item, error) {
	return r.c.get(ctx, id)
}
func (r *CatalogRepo) Delete(ctx context.Context, id string) error { return r.c.remove(ctx, id) }
func (r *CatalogRepo) List(ctx context.Context, clinicID string) ([]catalog.Item, error) {
	return r.c.list(ctx, sq.Eq{"clinic_id": clinicID})
}

type ClinicsRepo struct{ c crud[clinics.Clinic] }

func NewClinicsRepo(db *sql.DB) *ClinicsRepo {
	return &ClinicsRepo{c: crud[clinics.Clinic]{
		db: db, table: "clinics", entity: "clinic",
		idOf: func(c clinics.Clinic) string { return c.ID },
		values: func(c clinics.Clinic) map[string]any {
			return map[string]any{
				"name":       c.Name,
				"address":    c.Address,
				"phone":      c.Phone,
				"email":      c.Email,
				"logo":       c.Logo,
				"instagram":  c.Instagram,
				"tax_id":     c.TaxID,
				"created_at": c.CreatedAt,
				"updated_at": c.UpdatedAt,
			}
		},
	}}
}

func (r *ClinicsRepo) Create(ctx context.Context, c clinics.Clinic) error { return r.c.create(ctx, c) }
func (r *ClinicsRepo) Update(ctx context.Context, c clinics.Clinic) error { return r.c.update(ctx, c) }
func (r *ClinicsRepo) GetByID(ctx context.Context, id string) (clinics.Clinic, error) {
	return r.c.get(ctx, id)
}
