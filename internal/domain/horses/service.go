package horses

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/domain/calendar"
	"equine-clinic/internal/domain/search"
	"equine-clinic/internal/platform/validation"

	"github.com/google/uuid"
)

// refChecker valida que una referencia exista dentro de la clínica.
type refChecker interface {
	Exists(ctx context.Context, clinicID, id string) error
}

type Service struct {
	repo    Repository
	owners  refChecker
	stables refChecker
	now     func() time.Time

	dependents []namedDependent
}

func NewService(repo Repository, owners, stables refChecker) *Service {
	return &Service{
		repo:    repo,
		owners:  owners,
		stables: stables,
		now:     time.Now,
	}
}

type CreateInput struct {
	Name        string       `json:"name" validate:"required"`
	Breed       string       `json:"breed"`
	Age         int          `json:"age" validate:"gte=0,lte=60"`
	Sex         Sex          `json:"sex"`
	Color       string       `json:"color"`
	ChipNumber  string       `json:"chip_number"`
	OwnerID     string       `json:"owner_id" validate:"required"`
	StableID    string       `json:"stable_id"`
	Medications []Medication `json:"medications" validate:"dive"`
}

func (in *CreateInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Breed = strings.TrimSpace(in.Breed)
	in.Color = strings.TrimSpace(in.Color)
	in.ChipNumber = strings.TrimSpace(in.ChipNumber)
	in.OwnerID = strings.TrimSpace(in.OwnerID)
	in.StableID = strings.TrimSpace(in.StableID)
	if in.Sex == "" {
		in.Sex = SexUnknown
	}
}

func (s *Service) validate(ctx context.Context, clinicID string, in CreateInput) error {
	err := validation.Struct(in)
	if !in.Sex.Valid() {
		err = validation.Join(err, apperr.Invalid("sex", "must be one of male female gelding unknown"))
	}
	if err != nil {
		return err
	}

	if err := s.owners.Exists(ctx, clinicID, in.OwnerID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.Invalid("owner_id", "owner not found")
		}
		return err
	}
	if in.StableID != "" {
		if err := s.stables.Exists(ctx, clinicID, in.StableID); err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return apperr.Invalid("stable_id", "stable not found")
			}
			return err
		}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, clinicID string, in CreateInput) (Horse, error) {
	in.normalize()
	if err := s.validate(ctx, clinicID, in); err != nil {
		return Horse{}, err
	}

	now := s.now()
	h := Horse{
		ID:          uuid.NewString(),
		ClinicID:    clinicID,
		Name:        in.Name,
		Breed:       in.Breed,
		Age:         in.Age,
		Sex:         in.Sex,
		Color:       in.Color,
		ChipNumber:  in.ChipNumber,
		OwnerID:     in.OwnerID,
		StableID:    in.StableID,
		Medications: in.Medications,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, h); err != nil {
		return Horse{}, apperr.Collaborator("horses.create", err)
	}
	return h, nil
}

// UpdateInput: nil = no tocar. StableID admite limpiar la caballeriza
// (Present con Value vacío).
type UpdateInput struct {
	Name        *string
	Breed       *string
	Age         *int
	Sex         *Sex
	Color       *string
	ChipNumber  *string
	OwnerID     *string
	StableID    PatchRef
	Medications *[]Medication
}

type PatchRef struct {
	Present bool
	Value   string
}

func (s *Service) Update(ctx context.Context, clinicID, id string, in UpdateInput) (Horse, error) {
	h, err := s.Get(ctx, clinicID, id)
	if err != nil {
		return Horse{}, err
	}

	m := CreateInput{
		Name: h.Name, Breed: h.Breed, Age: h.Age, Sex: h.Sex, Color: h.Color,
		ChipNumber: h.ChipNumber, OwnerID: h.OwnerID, StableID: h.StableID, Medications: h.Medications,
	}
	if in.Name != nil {
		m.Name = *in.Name
	}
	if in.Breed != nil {
		m.Breed = *in.Breed
	}
	if in.Age != nil {
		m.Age = *in.Age
	}
	if in.Sex != nil {
		m.Sex = *in.Sex
	}
	if in.Color != nil {
		m.Color = *in.Color
	}
	if in.ChipNumber != nil {
		m.ChipNumber = *in.ChipNumber
	}
	if in.OwnerID != nil {
		m.OwnerID = *in.OwnerID
	}
	if in.StableID.Present {
		m.StableID = in.StableID.Value
	}
	if in.Medications != nil {
		m.Medications = *in.Medications
	}
	m.normalize()
	if err := s.validate(ctx, clinicID, m); err != nil {
		return Horse{}, err
	}

	h.Name, h.Breed, h.Age, h.Sex, h.Color = m.Name, m.Breed, m.Age, m.Sex, m.Color
	h.ChipNumber, h.OwnerID, h.StableID, h.Medications = m.ChipNumber, m.OwnerID, m.StableID, m.Medications
	h.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, h); err != nil {
		return Horse{}, apperr.Collaborator("horses.update", err)
	}
	return h, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Horse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Horse{}, apperr.Invalid("horse_id", "required")
	}
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Horse{}, apperr.Collaborator("horses.get", err)
	}
	return h, nil
}

func (s *Service) Get(ctx context.Context, clinicID, id string) (Horse, error) {
	h, err := s.GetByID(ctx, id)
	if err != nil {
		return Horse{}, err
	}
	if h.ClinicID != clinicID {
		return Horse{}, apperr.NotFound("horse", id)
	}
	return h, nil
}

func (s *Service) Exists(ctx context.Context, clinicID, id string) error {
	_, err := s.Get(ctx, clinicID, id)
	return err
}

// TouchLastCheckup fija la última revisión al día de la historia registrada.
func (s *Service) TouchLastCheckup(ctx context.Context, id string, d calendar.Date) error {
	return apperr.Collaborator("horses.touch_last_checkup", s.repo.SetLastCheckup(ctx, id, d))
}

// Delete borra el caballo y en cascada sus historias, citas y facturas.
// La cascada es best-effort: un fallo en una colección no frena las demás,
// y los errores se devuelven juntos al final.
func (s *Service) Delete(ctx context.Context, clinicID, id string) error {
	if _, err := s.Get(ctx, clinicID, id); err != nil {
		return err
	}

	var errs []error
	for _, dep := range s.dependents {
		if err := dep.d.DeleteByHorse(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", dep.name, err))
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		errs = append(errs, err)
	}
	return apperr.Collaborator("horses.delete", errors.Join(errs...))
}

func (s *Service) List(ctx context.Context, clinicID string) ([]Horse, error) {
	items, err := s.repo.List(ctx, clinicID)
	if err != nil {
		return nil, apperr.Collaborator("horses.list", err)
	}
	return items, nil
}

func (s *Service) Search(ctx context.Context, clinicID, q string) ([]Horse, error) {
	items, err := s.List(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	out := search.Filter(items, q, func(h Horse) []string {
		return []string{h.Name, h.Breed, h.Color}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Service) ListByOwner(ctx context.Context, clinicID, ownerID string) ([]Horse, error) {
	items, err := s.List(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	out := make([]Horse, 0)
	for _, h := range items {
		if h.OwnerID == ownerID {
			out = append(out, h)
		}
	}
	return out, nil
}

// Names: id => nombre del caballo, para las búsquedas de citas, historias y facturas.
func (s *Service) Names(ctx context.Context, clinicID string) (map[string]string, error) {
	items, err := s.List(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(items))
	for _, h := range items {
		out[h.ID] = h.Name
	}
	return out, nil
}
