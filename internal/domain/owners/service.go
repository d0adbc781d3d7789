package owners

import (
	"context"
	"sort"
	"strings"
	"time"

	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/domain/search"
	"equine-clinic/internal/platform/validation"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone"`
	Email      string `json:"email" validate:"omitempty,email"`
	Address    string `json:"address"`
	NationalID string `json:"national_id"`
	TaxID      string `json:"tax_id"`
}

func (s *Service) Create(ctx context.Context, clinicID string, in CreateInput) (Owner, error) {
	in = trimInput(in)
	if err := validation.Join(validation.Struct(in), validation.Phone("phone", in.Phone)); err != nil {
		return Owner{}, err
	}
	if strings.TrimSpace(clinicID) == "" {
		return Owner{}, apperr.Invalid("clinic_id", "required")
	}

	now := s.now()
	o := Owner{
		ID:         uuid.NewString(),
		ClinicID:   clinicID,
		Name:       in.Name,
		Phone:      in.Phone,
		Email:      in.Email,
		Address:    in.Address,
		NationalID: in.NationalID,
		TaxID:      in.TaxID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return Owner{}, apperr.Collaborator("owners.create", err)
	}
	return o, nil
}

func trimInput(in CreateInput) CreateInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.Address = strings.TrimSpace(in.Address)
	in.NationalID = strings.TrimSpace(in.NationalID)
	in.TaxID = strings.TrimSpace(in.TaxID)
	return in
}

// UpdateInput: punteros para PATCH real, nil = no tocar.
type UpdateInput struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
	Address    *string `json:"address"`
	NationalID *string `json:"national_id"`
	TaxID      *string `json:"tax_id"`
}

func (s *Service) Update(ctx context.Context, clinicID, id string, in UpdateInput) (Owner, error) {
	o, err := s.Get(ctx, clinicID, id)
	if err != nil {
		return Owner{}, err
	}

	merged := CreateInput{
		Name: o.Name, Phone: o.Phone, Email: o.Email,
		Address: o.Address, NationalID: o.NationalID, TaxID: o.TaxID,
	}
	apply(&merged.Name, in.Name)
	apply(&merged.Phone, in.Phone)
	apply(&merged.Email, in.Email)
	apply(&merged.Address, in.Address)
	apply(&merged.NationalID, in.NationalID)
	apply(&merged.TaxID, in.TaxID)
	merged = trimInput(merged)

	if err := validation.Join(validation.Struct(merged), validation.Phone("phone", merged.Phone)); err != nil {
		return Owner{}, err
	}

	o.Name, o.Phone, o.Email = merged.Name, merged.Phone, merged.Email
	o.Address, o.NationalID, o.TaxID = merged.Address, merged.NationalID, merged.TaxID
	o.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, o); err != nil {
		return Owner{}, apperr.Collaborator("owners.update", err)
	}
	return o, nil
}

func apply(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (Owner, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Owner{}, apperr.Invalid("owner_id", "required")
	}
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Owner{}, apperr.Collaborator("owners.get", err)
	}
	return o, nil
}

// Get es GetByID acotado a la clínica del llamador: otra clínica => not found.
func (s *Service) Get(ctx context.Context, clinicID, id string) (Owner, error) {
	o, err := s.GetByID(ctx, id)
	if err != nil {
		return Owner{}, err
	}
	if o.ClinicID != clinicID {
		return Owner{}, apperr.NotFound("owner", id)
	}
	return o, nil
}

// Exists se usa desde horses para validar la referencia al propietario.
func (s *Service) Exists(ctx context.Context, clinicID, id string) error {
	_, err := s.Get(ctx, clinicID, id)
	return err
}

func (s *Service) Delete(ctx context.Context, clinicID, id string) error {
	if _, err := s.Get(ctx, clinicID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Collaborator("owners.delete", err)
	}
	return nil
}

// Search busca por nombre, teléfono o email. q vacío lista todo (orden por nombre).
func (s *Service) Search(ctx context.Context, clinicID, q string) ([]Owner, error) {
	items, err := s.repo.List(ctx, clinicID)
	if err != nil {
		return nil, apperr.Collaborator("owners.list", err)
	}
	out := search.Filter(items, q, func(o Owner) []string {
		return []string{o.Name, o.Phone, o.Email}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Names devuelve id => nombre para las búsquedas que cruzan entidades (facturas).
func (s *Service) Names(ctx context.Context, clinicID string) (map[string]string, error) {
	items, err := s.repo.List(ctx, clinicID)
	if err != nil {
		return nil, apperr.Collaborator("owners.list", err)
	}
	out := make(map[string]string, len(items))
	for _, o := range items {
		out[o.ID] = o.Name
	}
	return out, nil
}
