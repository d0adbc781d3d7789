package histories

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/domain/billing"
	"equine-clinic/internal/domain/calendar"
	"equine-clinic/internal/domain/events"
	"equine-clinic/internal/domain/inventory"
	"equine-clinic/internal/domain/search"
	"equine-clinic/internal/platform/logger"
	"equine-clinic/internal/ports/tx"
)

// DefaultTaxRate es el IVA que se aplica cuando ni la request ni la config lo fijan.
const DefaultTaxRate = 16

type horseRef interface {
	Exists(ctx context.Context, clinicID, id string) error
	Names(ctx context.Context, clinicID string) (map[string]string, error)
	TouchLastCheckup(ctx context.Context, id string, d calendar.Date) error
}

type vetRef interface {
	Exists(ctx context.Context, clinicID, id string) error
	Names(ctx context.Context, clinicID string) (map[string]string, error)
}

type eventRef interface {
	Exists(ctx context.Context, clinicID, id string) error
	ApplyHistory(ctx context.Context, eventID string, total float64, services []string) error
}

type stockRef interface {
	Exists(ctx context.Context, clinicID, id string) error
	Consume(ctx context.Context, clinicID, id string, qty float64) (inventory.Item, error)
}

// InvoiceRemover borra la factura enlazada cuando se borra la historia.
type InvoiceRemover interface {
	Delete(ctx context.Context, clinicID, invoiceID string) error
}

type counter interface{ Inc() }

type nopCounter struct{}

func (nopCounter) Inc() {}

// Deps agrupa los colaboradores del servicio. Tx, Log, Recorded y TaxRate son opcionales.
// TaxRate nil usa DefaultTaxRate; 0 es una tasa válida.
type Deps struct {
	Horses        horseRef
	Veterinarians vetRef
	Events        eventRef
	Inventory     stockRef

	Tx       tx.Runner
	Log      logger.Logger
	Recorded counter
	TaxRate  *float64
}

type Service struct {
	repo     Repository
	horses   horseRef
	vets     vetRef
	events   eventRef
	stock    stockRef
	invoices InvoiceRemover

	tx       tx.Runner
	log      logger.Logger
	recorded counter
	taxRate  float64
	now      func() time.Time
}

func NewService(repo Repository, deps Deps) *Service {
	s := &Service{
		repo:     repo,
		horses:   deps.Horses,
		vets:     deps.Veterinarians,
		events:   deps.Events,
		stock:    deps.Inventory,
		tx:       deps.Tx,
		log:      deps.Log,
		recorded: deps.Recorded,
		taxRate:  DefaultTaxRate,
		now:      time.Now,
	}
	if s.tx == nil {
		s.tx = tx.Direct
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.recorded == nil {
		s.recorded = nopCounter{}
	}
	if deps.TaxRate != nil {
		s.taxRate = *deps.TaxRate
	}
	return s
}

// SetInvoiceRemover conecta el borrado de facturas. invoices depende de
// histories, así que el enlace inverso se arma en el router.
func (s *Service) SetInvoiceRemover(r InvoiceRemover) { s.invoices = r }

func refError(field string, err error) error {
	if errors.Is(err, apperr.ErrNotFound) {
		return apperr.Invalid(field, "not found")
	}
	return err
}

type UpdateInput struct {
	VeterinarianID *string
	Date           *calendar.Date
	Type           *string
	Observations   *string
	Items          *[]billing.LineItem
	TaxRate        *float64
}

// Update corrige una historia. Ítems y tasa solo se cambian si no hay factura emitida;
// los contadores del evento no se tocan (ver events Resync).
func (s *Service) Update(ctx context.Context, clinicID, id string, in UpdateInput) (History, error) {
	h, err := s.Get(ctx, clinicID, id)
	if err != nil {
		return History{}, err
	}

	if in.VeterinarianID != nil {
		v := strings.TrimSpace(*in.VeterinarianID)
		if err := s.vets.Exists(ctx, clinicID, v); err != nil {
			return History{}, refError("veterinarian_id", err)
		}
		h.VeterinarianID = v
	}
	if in.Date != nil {
		if in.Date.IsZero() {
			return History{}, apperr.Invalid("date", "required")
		}
		h.Date = *in.Date
	}
	if in.Type != nil {
		t := strings.TrimSpace(*in.Type)
		if t == "" {
			return History{}, apperr.Invalid("type", "required")
		}
		h.Type = t
	}
	if in.Observations != nil {
		h.Observations = strings.TrimSpace(*in.Observations)
	}

	if in.Items != nil || in.TaxRate != nil {
		if h.InvoiceGenerated {
			return History{}, fmt.Errorf("history %s already invoiced: %w", id, apperr.ErrConflict)
		}
		items, rate := h.Items, h.TaxRate
		if in.Items != nil {
			items = *in.Items
		}
		if in.TaxRate != nil {
			rate = *in.TaxRate
		}
		totals, err := billing.Compute(items, rate)
		if err != nil {
			return History{}, err
		}
		h.Items, h.TaxRate = items, rate
		h.NetTotal, h.Tax, h.TotalWithTax = totals.NetTotal, totals.Tax, totals.Total
	}

	h.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, h); err != nil {
		return History{}, apperr.Collaborator("histories.update", err)
	}
	return h, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (History, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return History{}, apperr.Invalid("history_id", "required")
	}
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return History{}, apperr.Collaborator("histories.get", err)
	}
	return h, nil
}

func (s *Service) Get(ctx context.Context, clinicID, id string) (History, error) {
	h, err := s.GetByID(ctx, id)
	if err != nil {
		return History{}, err
	}
	if h.ClinicID != clinicID {
		return History{}, apperr.NotFound("history", id)
	}
	return h, nil
}

// Delete borra primero la factura enlazada y después la historia.
func (s *Service) Delete(ctx context.Context, clinicID, id string) error {
	h, err := s.Get(ctx, clinicID, id)
	if err != nil {
		return err
	}
	if h.InvoiceID != "" && s.invoices != nil {
		err := s.invoices.Delete(ctx, clinicID, h.InvoiceID)
		if err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return err
		}
	}
	return apperr.Collaborator("histories.delete", s.repo.Delete(ctx, id))
}

// Search busca por nombre del caballo, tipo, fecha y veterinario.
func (s *Service) Search(ctx context.Context, clinicID, q string) ([]History, error) {
	items, err := s.repo.List(ctx, clinicID)
	if err != nil {
		return nil, apperr.Collaborator("histories.list", err)
	}

	horses, vets := map[string]string{}, map[string]string{}
	if strings.TrimSpace(q) != "" {
		if horses, err = s.horses.Names(ctx, clinicID); err != nil {
			return nil, err
		}
		if vets, err = s.vets.Names(ctx, clinicID); err != nil {
			return nil, err
		}
	}
	out := search.Filter(items, q, func(h History) []string {
		return []string{horses[h.HorseID], h.Type, h.Date.String(), calendar.FormatDisplay(h.Date), vets[h.VeterinarianID]}
	})
	sortNewestFirst(out)
	return out, nil
}

func (s *Service) ListByHorse(ctx context.Context, clinicID, horseID string) ([]History, error) {
	if err := s.horses.Exists(ctx, clinicID, horseID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByHorse(ctx, horseID)
	if err != nil {
		return nil, apperr.Collaborator("histories.list_by_horse", err)
	}
	sortNewestFirst(items)
	return items, nil
}

func (s *Service) ListByEvent(ctx context.Context, clinicID, eventID string) ([]History, error) {
	if err := s.events.Exists(ctx, clinicID, eventID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, apperr.Collaborator("histories.list_by_event", err)
	}
	sortNewestFirst(items)
	return items, nil
}

// Count es el total de historias de la clínica (dashboard).
func (s *Service) Count(ctx context.Context, clinicID string) (int, error) {
	items, err := s.repo.List(ctx, clinicID)
	if err != nil {
		return 0, apperr.Collaborator("histories.list", err)
	}
	return len(items), nil
}

// LinkedHistories alimenta las estadísticas de eventos.
func (s *Service) LinkedHistories(ctx context.Context, eventID string) ([]events.LinkedHistory, error) {
	items, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, apperr.Collaborator("histories.list_by_event", err)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })

	out := make([]events.LinkedHistory, 0, len(items))
	for _, h := range items {
		out = append(out, events.LinkedHistory{HorseID: h.HorseID, Total: h.TotalWithTax, Items: h.Items})
	}
	return out, nil
}

// MarkInvoiced y ClearInvoice son el lado historia de la emisión de facturas.
func (s *Service) MarkInvoiced(ctx context.Context, id, invoiceID string) error {
	return apperr.Collaborator("histories.mark_invoiced", s.repo.MarkInvoiced(ctx, id, invoiceID))
}

func (s *Service) ClearInvoice(ctx context.Context, id, invoiceID string) error {
	return apperr.Collaborator("histories.clear_invoice", s.repo.ClearInvoice(ctx, id, invoiceID))
}

func (s *Service) DeleteByHorse(ctx context.Context, horseID string) error {
	return s.repo.DeleteByHorse(ctx, horseID)
}

func (s *Service) DetachEvent(ctx context.Context, eventID string) error {
	return s.repo.DetachEvent(ctx, eventID)
}

func sortNewestFirst(items []History) {
	sort.SliceStable(items, func(i, j int) bool {
		if c := items[i].Date.Compare(items[j].Date); c != 0 {
			return c > 0
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
