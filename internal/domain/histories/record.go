package histories

import (
	"context"
	"fmt"
	"strings"

	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/domain/billing"
	"equine-clinic/internal/domain/calendar"
	"equine-clinic/internal/domain/inventory"
	"equine-clinic/internal/platform/validation"
	"equine-clinic/internal/ports/tx"

	"github.com/google/uuid"
)

type RecordInput struct {
	HorseID        string             `json:"horse_id" validate:"required"`
	VeterinarianID string             `json:"veterinarian_id" validate:"required"`
	Date           calendar.Date      `json:"date"` // vacío = hoy
	Type           string             `json:"type" validate:"required"`
	Observations   string             `json:"observations"`
	Items          []billing.LineItem `json:"items"`
	TaxRate        *float64           `json:"tax_rate"`
	EventID        string             `json:"event_id"`
	Consumed       []inventory.Usage  `json:"consumed"`
}

func (in *RecordInput) normalize() {
	in.HorseID = strings.TrimSpace(in.HorseID)
	in.VeterinarianID = strings.TrimSpace(in.VeterinarianID)
	in.Type = strings.TrimSpace(in.Type)
	in.Observations = strings.TrimSpace(in.Observations)
	in.EventID = strings.TrimSpace(in.EventID)
	for i := range in.Items {
		in.Items[i].Description = strings.TrimSpace(in.Items[i].Description)
	}
	for i := range in.Consumed {
		in.Consumed[i].ItemID = strings.TrimSpace(in.Consumed[i].ItemID)
	}
}

// Record registra una historia clínica con todos sus efectos:
//
//  1. valida y calcula totales
//  2. exige caballo, veterinario y evento (si viene)
//  3. exige cada ítem de inventario consumido
//  4. guarda la historia
//  5. fija la última revisión del caballo
//  6. suma la historia a los contadores del evento
//  7. descuenta stock (piso en cero)
//
// Toda lectura y validación ocurre antes de la primera escritura.
// Los pasos 4 a 7 corren dentro de una transacción cuando el store la soporta.
func (s *Service) Record(ctx context.Context, clinicID string, in RecordInput) (History, error) {
	in.normalize()

	errs := []error{validation.Struct(in)}
	if strings.TrimSpace(clinicID) == "" {
		errs = append(errs, apperr.Invalid("clinic_id", "required"))
	}
	for i, it := range in.Items {
		if it.Description == "" {
			errs = append(errs, apperr.Invalid(fmt.Sprintf("items[%d].description", i), "required"))
		}
	}
	for i, u := range in.Consumed {
		if u.ItemID == "" {
			errs = append(errs, apperr.Invalid(fmt.Sprintf("consumed[%d].item_id", i), "required"))
		}
		if u.Quantity < 0 {
			errs = append(errs, apperr.Invalid(fmt.Sprintf("consumed[%d].quantity", i), "must be >= 0"))
		}
	}
	if err := validation.Join(errs...); err != nil {
		return History{}, err
	}

	rate := s.taxRate
	if in.TaxRate != nil {
		rate = *in.TaxRate
	}
	totals, err := billing.Compute(in.Items, rate)
	if err != nil {
		return History{}, err
	}

	if err := s.horses.Exists(ctx, clinicID, in.HorseID); err != nil {
		return History{}, refError("horse_id", err)
	}
	if err := s.vets.Exists(ctx, clinicID, in.VeterinarianID); err != nil {
		return History{}, refError("veterinarian_id", err)
	}
	if in.EventID != "" {
		if err := s.events.Exists(ctx, clinicID, in.EventID); err != nil {
			return History{}, refError("event_id", err)
		}
	}
	for i, u := range in.Consumed {
		if err := s.stock.Exists(ctx, clinicID, u.ItemID); err != nil {
			return History{}, refError(fmt.Sprintf("consumed[%d].item_id", i), err)
		}
	}

	now := s.now()
	h := History{
		ID:             uuid.NewString(),
		ClinicID:       clinicID,
		HorseID:        in.HorseID,
		VeterinarianID: in.VeterinarianID,
		Date:           in.Date,
		Type:           in.Type,
		Observations:   in.Observations,
		Items:          in.Items,
		TaxRate:        rate,
		NetTotal:       totals.NetTotal,
		Tax:            totals.Tax,
		TotalWithTax:   totals.Total,
		EventID:        in.EventID,
		Consumed:       in.Consumed,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if h.Date.IsZero() {
		h.Date = calendar.Today(now)
	}

	stored := false
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, h); err != nil {
			return apperr.Collaborator("histories.create", err)
		}
		stored = true
		if err := s.horses.TouchLastCheckup(ctx, h.HorseID, h.Date); err != nil {
			return err
		}
		if h.EventID != "" {
			if err := s.events.ApplyHistory(ctx, h.EventID, h.TotalWithTax, h.Descriptions()); err != nil {
				return err
			}
		}
		for _, u := range h.Consumed {
			if _, err := s.stock.Consume(ctx, clinicID, u.ItemID, u.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if stored && !tx.Atomic(s.tx) {
			if derr := s.repo.Delete(ctx, h.ID); derr != nil {
				s.log.Error("record history rollback failed", map[string]any{"history_id": h.ID, "error": derr})
			}
		}
		s.log.Error("record history failed", map[string]any{"clinic_id": clinicID, "horse_id": h.HorseID, "error": err})
		return History{}, err
	}

	s.recorded.Inc()
	s.log.Info("history recorded", map[string]any{
		"history_id": h.ID,
		"horse_id":   h.HorseID,
		"event_id":   h.EventID,
		"total":      billing.Display(h.TotalWithTax),
	})
	return h, nil
}
