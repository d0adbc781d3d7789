package inventory

import (
	"context"
	"sort"
	"strings"
	"time"

	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/domain/calendar"
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
	Name         string        `json:"name" validate:"required"`
	Category     string        `json:"category"`
	Stock        float64       `json:"stock" validate:"gte=0"`
	Minimum      float64       `json:"minimum" validate:"gte=0"`
	Unit         string        `json:"unit"`
	UnitPrice    float64       `json:"unit_price" validate:"gte=0"`
	Supplier     string        `json:"supplier"`
	LastPurchase calendar.Date `json:"last_purchase"`
}

func (s *Service) Create(ctx context.Context, clinicID string, in CreateInput) (Item, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return Item{}, err
	}

	now := s.now()
	it := Item{
		ID:           uuid.NewString(),
		ClinicID:     clinicID,
		Name:         in.Name,
		Category:     strings.TrimSpace(in.Category),
		Stock:        in.Stock,
		Minimum:      in.Minimum,
		Unit:         strings.TrimSpace(in.Unit),
		UnitPrice:    in.UnitPrice,
		Supplier:     strings.TrimSpace(in.Supplier),
		LastPurchase: in.LastPurchase,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return Item{}, apperr.Collaborator("inventory.create", err)
	}
	return it, nil
}

type UpdateInput struct {
	Name         *string        `json:"name"`
	Category     *string        `json:"category"`
	Stock        *float64       `json:"stock"`
	Minimum      *float64       `json:"minimum"`
	Unit         *string        `json:"unit"`
	UnitPrice    *float64       `json:"unit_price"`
	Supplier     *string        `json:"supplier"`
	LastPurchase *calendar.Date `json:"last_purchase"`
}

func (s *Service) Update(ctx context.Context, clinicID, id string, in UpdateInput) (Item, error) {
	it, err := s.Get(ctx, clinicID, id)
	if err != nil {
		return Item{}, err
	}

	m := CreateInput{
		Name: it.Name, Category: it.Category, Stock: it.Stock, Minimum: it.Minimum,
		Unit: it.Unit, UnitPrice: it.UnitPrice, Supplier: it.Supplier, LastPurchase: it.LastPurchase,
	}
	setString(&m.Name, in.Name)
	setString(&m.Category, in.Category)
	setString(&m.Unit, in.Unit)
	setString(&m.Supplier, in.Supplier)
	if in.Stock != nil {
		m.Stock = *in.Stock
	}
	if in.Minimum != nil {
		m.Minimum = *in.Minimum
	}
	if in.UnitPrice != nil {
		m.UnitPrice = *in.UnitPrice
	}
	if in.LastPurchase != nil {
		m.LastPurchase = *in.LastPurchase
	}
	if err := validation.Struct(m); err != nil {
		return Item{}, err
	}

	it.Name, it.Category, it.Unit, it.Supplier = m.Name, m.Category, m.Unit, m.Supplier
	it.Stock, it.Minimum, it.UnitPrice, it.LastPurchase = m.Stock, m.Minimum, m.UnitPrice, m.LastPurchase
	it.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, it); err != nil {
		return Item{}, apperr.Collaborator("inventory.update", err)
	}
	return it, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func (s *Service) Get(ctx context.Context, clinicID, id string) (Item, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Item{}, apperr.Invalid("item_id", "required")
	}
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Item{}, apperr.Collaborator("inventory.get", err)
	}
	if it.ClinicID != clinicID {
		return Item{}, apperr.NotFound("inventory item", id)
	}
	return it, nil
}

func (s *Service) Exists(ctx context.Context, clinicID, id string) error {
	_, err := s.Get(ctx, clinicID, id)
	return err
}

func (s *Service) Delete(ctx context.Context, clinicID, id string) error {
	if _, err := s.Get(ctx, clinicID, id); err != nil {
		return err
	}
	return apperr.Collaborator("inventory.delete", s.repo.Delete(ctx, id))
}

func (s *Service) Search(ctx context.Context, clinicID, q string) ([]Item, error) {
	items, err := s.repo.List(ctx, clinicID)
	if err != nil {
		return nil, apperr.Collaborator("inventory.list", err)
	}
	out := search.Filter(items, q, func(it Item) []string {
		return []string{it.Name, it.Category, it.Supplier}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// LowStock lista los ítems con stock < mínimo.
func (s *Service) LowStock(ctx context.Context, clinicID string) ([]Item, error) {
	items, err := s.repo.List(ctx, clinicID)
	if err != nil {
		return nil, apperr.Collaborator("inventory.list", err)
	}
	out := make([]Item, 0)
	for _, it := range items {
		if it.LowStock() {
			out = append(out, it)
		}
	}
	return out, nil
}

// Consume descuenta qty del stock con piso en cero.
func (s *Service) Consume(ctx context.Context, clinicID, id string, qty float64) (Item, error) {
	if qty < 0 {
		return Item{}, apperr.Invalid("quantity", "must be >= 0")
	}
	if _, err := s.Get(ctx, clinicID, id); err != nil {
		return Item{}, err
	}
	it, err := s.repo.AdjustStock(ctx, id, -qty)
	if err != nil {
		return Item{}, apperr.Collaborator("inventory.consume", err)
	}
	return it, nil
}

type RestockInput struct {
	Quantity float64       `json:"quantity" validate:"gt=0"`
	Date     calendar.Date `json:"date"`
}

// Restock registra una compra: suma stock y actualiza la fecha de última compra.
func (s *Service) Restock(ctx context.Context, clinicID, id string, in RestockInput) (Item, error) {
	if err := validation.Struct(in); err != nil {
		return Item{}, err
	}
	if _, err := s.Get(ctx, clinicID, id); err != nil {
		return Item{}, err
	}
	it, err := s.repo.AdjustStock(ctx, id, in.Quantity)
	if err != nil {
		return Item{}, apperr.Collaborator("inventory.restock", err)
	}

	it.LastPurchase = in.Date
	if it.LastPurchase.IsZero() {
		it.LastPurchase = calendar.Today(s.now())
	}
	it.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, it); err != nil {
		return Item{}, apperr.Collaborator("inventory.restock", err)
	}
	return it, nil
}
