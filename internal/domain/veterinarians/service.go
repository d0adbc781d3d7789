package veterinarians

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
	return &Service{repo: repo, now: time.Now}
}

type CreateInput struct {
	Name      string `json:"name" validate:"required"`
	Specialty string `json:"specialty"`
	Phone     string `json:"phone"`
	Email     string `json:"email" validate:"omitempty,email"`
}

func (in *CreateInput) trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.Specialty = strings.TrimSpace(in.Specialty)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
}

func (in CreateInput) validate() error {
	return validation.Join(validation.Struct(in), validation.Phone("phone", in.Phone))
}

func (s *Service) Create(ctx context.Context, clinicID string, in CreateInput) (Veterinarian, error) {
	in.trim()
	if err := in.validate(); err != nil {
		return Veterinarian{}, err
	}

	now := s.now()
	v := Veterinarian{
		ID:        uuid.NewString(),
		ClinicID:  clinicID,
		Name:      in.Name,
		Specialty: in.Specialty,
		Phone:     in.Phone,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return Veterinarian{}, apperr.Collaborator("veterinarians.create", err)
	}
	return v, nil
}

type UpdateInput struct {
	Name      *string `json:"name"`
	Specialty *string `json:"specialty"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
}

func (s *Service) Update(ctx context.Context, clinicID, id string, in UpdateInput) (Veterinarian, error) {
	v, err := s.Get(ctx, clinicID, id)
	if err != nil {
		return Veterinarian{}, err
	}

	merged := CreateInput{Name: v.Name, Specialty: v.Specialty, Phone: v.Phone, Email: v.Email}
	for dst, src := range map[*string]*string{
		&merged.Name:      in.Name,
		&merged.Specialty: in.Specialty,
		&merged.Phone:     in.Phone,
		&merged.Email:     in.Email,
	} {
		if src != nil {
			*dst = *src
		}
	}
	merged.trim()
	if err := merged.validate(); err != nil {
		return Veterinarian{}, err
	}

	v.Name, v.Specialty, v.Phone, v.Email = merged.Name, merged.Specialty, merged.Phone, merged.Email
	v.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, v); err != nil {
		return Veterinarian{}, apperr.Collaborator("veterinarians.update", err)
	}
	return v, nil
}

func (s *Service) Get(ctx context.Context, clinicID, id string) (Veterinarian, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Veterinarian{}, apperr.Invalid("veterinarian_id", "required")
	}
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Veterinarian{}, apperr.Collaborator("veterinarians.get", err)
	}
	if v.ClinicID != clinicID {
		return Veterinarian{}, apperr.NotFound("veterinarian", id)
	}
	return v, nil
}

// Exists lo usa histories antes de registrar una consulta.
func (s *Service) Exists(ctx context.Context, clinicID, id string) error {
	_, err := s.Get(ctx, clinicID, id)
	return err
}

func (s *Service) Delete(ctx context.Context, clinicID, id string) error {
	if _, err := s.Get(ctx, clinicID, id); err != nil {
		return err
	}
	return apperr.Collaborator("veterinarians.delete", s.repo.Delete(ctx, id))
}

func (s *Service) Search(ctx context.Context, clinicID, q string) ([]Veterinarian, error) {
	items, err := s.repo.List(ctx, clinicID)
	if err != nil {
		return nil, apperr.Collaborator("veterinarians.list", err)
	}
	out := search.Filter(items, q, func(v Veterinarian) []string {
		return []string{v.Name, v.Specialty, v.Email}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Names: id => nombre, para buscar historias por veterinario.
func (s *Service) Names(ctx context.Context, clinicID string) (map[string]string, error) {
	items, err := s.repo.List(ctx, clinicID)
	if err != nil {
		return nil, apperr.Collaborator("veterinarians.list", err)
	}
	out := make(map[string]string, len(items))
	for _, v := range items {
		out[v.ID] = v.Name
	}
	return out, nil
}
