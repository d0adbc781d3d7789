package catalog

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
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category"`
}

func (s *Service) Create(ctx context.Context, clinicID string, in CreateInput) (Item, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	if err := validation.Struct(in); err != nil {
		return Item{}, err
	}

	now := s.now()
	it := Item{
		ID:          uuid.NewString(),
		ClinicID:    clinicID,
		Name:        in.Name,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Category:    in.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return Item{}, apperr.Collaborator("catalog.create", err)
	}
	return it, nil
}

type UpdateInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
}

func (s *Service) Update(ctx context.Context, clinicID, id string, in UpdateInput) (Item, error) {
	it, err := s.Get(ctx, clinicID, id)
	if err != nil {
		return Item{}, err
	}

	merged := CreateInput{Name: it.Name, Description: it.Description, Price: it.Price, Category: it.Category}
	if in.Name != nil {
		merged.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		merged.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		merged.Price = *in.Price
	}
	if in.Category != nil {
		merged.Category = strings.TrimSpace(*in.Category)
	}
	if err := validation.Struct(merged); err != nil {
		return Item{}, err
	}

	it.Name, it.Description, it.Price, it.Category = merged.Name, merged.Description, merged.Price, merged.Category
	it.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, it); err != nil {
		return Item{}, apperr.Collaborator("catalog.update", err)
	}
	return it, nil
}

func (s *Service) Get(ctx context.Context, clinicID, id string) (Item, error) {
	it, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Item{}, apperr.Collaborator("catalog.get", err)
	}
	if it.ClinicID != clinicID {
		return Item{}, apperr.NotFound("service", id)
	}
	return it, nil
}

func (s *Service) Delete(ctx context.Context, clinicID, id string) error {
	if _, err := s.Get(ctx, clinicID, id); err != nil {
		return err
	}
	return apperr.Collaborator("catalog.delete", s.repo.Delete(ctx, id))
}

// Search ordena por categoría y luego nombre, como se muestra el catálogo.
func (s *Service) Search(ctx context.Context, clinicID, q string) ([]Item, error) {
	items, err := s.repo.List(ctx, clinicID)
	if err != nil {
		return nil, apperr.Collaborator("catalog.list", err)
	}
	out := search.Filter(items, q, func(it Item) []string {
		return []string{it.Name, it.Description, it.Category}
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}
