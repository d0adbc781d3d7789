package stables

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

type Input struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Contact string `json:"contact"`
}

func (in Input) normalized() Input {
	return Input{
		Name:    strings.TrimSpace(in.Name),
		Address: strings.TrimSpace(in.Address),
		Phone:   strings.TrimSpace(in.Phone),
		Contact: strings.TrimSpace(in.Contact),
	}
}

func (in Input) validate() error {
	return validation.Join(validation.Struct(in), validation.Phone("phone", in.Phone))
}

func (s *Service) Create(ctx context.Context, clinicID string, in Input) (Stable, error) {
	in = in.normalized()
	if err := in.validate(); err != nil {
		return Stable{}, err
	}

	now := s.now()
	st := Stable{
		ID:        uuid.NewString(),
		ClinicID:  clinicID,
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		Contact:   in.Contact,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return Stable{}, apperr.Collaborator("stables.create", err)
	}
	return st, nil
}

type UpdateInput struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Contact *string `json:"contact"`
}

func (s *Service) Update(ctx context.Context, clinicID, id string, in UpdateInput) (Stable, error) {
	st, err := s.Get(ctx, clinicID, id)
	if err != nil {
		return Stable{}, err
	}

	merged := Input{Name: st.Name, Address: st.Address, Phone: st.Phone, Contact: st.Contact}
	if in.Name != nil {
		merged.Name = *in.Name
	}
	if in.Address != nil {
		merged.Address = *in.Address
	}
	if in.Phone != nil {
		merged.Phone = *in.Phone
	}
	if in.Contact != nil {
		merged.Contact = *in.Contact
	}
	merged = merged.normalized()
	if err := merged.validate(); err != nil {
		return Stable{}, err
	}

	st.Name, st.Address, st.Phone, st.Contact = merged.Name, merged.Address, merged.Phone, merged.Contact
	st.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, st); err != nil {
		return Stable{}, apperr.Collaborator("stables.update", err)
	}
	return st, nil
}

func (s *Service) Get(ctx context.Context, clinicID, id string) (Stable, error) {
	st, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Stable{}, apperr.Collaborator("stables.get", err)
	}
	if st.ClinicID != clinicID {
		return Stable{}, apperr.NotFound("stable", id)
	}
	return st, nil
}

func (s *Service) Exists(ctx context.Context, clinicID, id string) error {
	_, err := s.Get(ctx, clinicID, id)
	return err
}

func (s *Service) Delete(ctx context.Context, clinicID, id string) error {
	if _, err := s.Get(ctx, clinicID, id); err != nil {
		return err
	}
	return apperr.Collaborator("stables.delete", s.repo.Delete(ctx, id))
}

func (s *Service) Search(ctx context.Context, clinicID, q string) ([]Stable, error) {
	items, err := s.repo.List(ctx, clinicID)
	if err != nil {
		return nil, apperr.Collaborator("stables.list", err)
	}
	out := search.Filter(items, q, func(st Stable) []string {
		return []string{st.Name, st.Address, st.Phone}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
