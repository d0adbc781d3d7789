package invoices

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/domain/calendar"
	"equine-clinic/internal/domain/histories"
	"equine-clinic/internal/domain/search"
	"equine-clinic/internal/platform/logger"

	"github.com/google/uuid"
)

type historyLink interface {
	Get(ctx context.Context, clinicID, id string) (histories.History, error)
	MarkInvoiced(ctx context.Context, id, invoiceID string) error
	ClearInvoice(ctx context.Context, id, invoiceID string) error
}

type horseLookup interface {
	OwnerOf(ctx context.Context, clinicID, horseID string) (string, error)
	Names(ctx context.Context, clinicID string) (map[string]string, error)
}

type ownerNames interface {
	Names(ctx context.Context, clinicID string) (map[string]string, error)
}

type counter interface{ Inc() }

type nopCounter struct{}

func (nopCounter) Inc() {}

// Deps agrupa los colaboradores. Log e Issued son opcionales.
type Deps struct {
	Histories historyLink
	Horses    horseLookup
	Owners    ownerNames
	Sequencer Sequencer
	Locker    Locker

	Log    logger.Logger
	Issued counter
}

type Service struct {
	repo      Repository
	histories historyLink
	horses    horseLookup
	owners    ownerNames
	seq       Sequencer
	locker    Locker

	log    logger.Logger
	issued counter
	now    func() time.Time
}

func NewService(repo Repository, deps Deps) *Service {
	s := &Service{
		repo:      repo,
		histories: deps.Histories,
		horses:    deps.Horses,
		owners:    deps.Owners,
		seq:       deps.Sequencer,
		locker:    deps.Locker,
		log:       deps.Log,
		issued:    deps.Issued,
		now:       time.Now,
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.issued == nil {
		s.issued = nopCounter{}
	}
	return s
}

func alreadyInvoiced() error {
	return apperr.Invalid("history_id", "already invoiced")
}

// Issue emite la factura de una historia clínica.
//
// La emisión se serializa por historia con el Locker; el enlace final es un
// compare-and-swap sobre la historia, así que dos emisiones concurrentes nunca
// dejan dos facturas vinculadas. Si el CAS falla la factura recién creada se borra.
func (s *Service) Issue(ctx context.Context, clinicID, historyID string) (Invoice, error) {
	h, err := s.histories.Get(ctx, clinicID, historyID)
	if err != nil {
		return Invoice{}, err
	}
	if h.InvoiceGenerated {
		return Invoice{}, alreadyInvoiced()
	}

	unlock, err := s.locker.Lock(ctx, "history:"+h.ID)
	if err != nil {
		return Invoice{}, err
	}
	defer unlock()

	// Releer con el lock tomado.
	if h, err = s.histories.Get(ctx, clinicID, historyID); err != nil {
		return Invoice{}, err
	}
	if h.InvoiceGenerated {
		return Invoice{}, alreadyInvoiced()
	}

	ownerID, err := s.horses.OwnerOf(ctx, clinicID, h.HorseID)
	if err != nil {
		return Invoice{}, err
	}

	now := s.now()
	year := now.Year()
	n, err := s.seq.Next(ctx, clinicID, year)
	if err != nil {
		return Invoice{}, apperr.Collaborator("invoices.sequence", err)
	}

	inv := Invoice{
		ID:           uuid.NewString(),
		ClinicID:     clinicID,
		Number:       FormatNumber(year, n),
		Date:         calendar.Today(now),
		HistoryID:    h.ID,
		HorseID:      h.HorseID,
		OwnerID:      ownerID,
		EventID:      h.EventID,
		Items:        h.Items,
		TaxRate:      h.TaxRate,
		NetTotal:     h.NetTotal,
		Tax:          h.Tax,
		TotalWithTax: h.TotalWithTax,
		Observations: h.Observations,
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		return Invoice{}, apperr.Collaborator("invoices.create", err)
	}

	if err := s.histories.MarkInvoiced(ctx, h.ID, inv.ID); err != nil {
		if derr := s.repo.Delete(ctx, inv.ID); derr != nil {
			s.log.Error("orphan invoice left after failed link", map[string]any{"invoice_id": inv.ID, "error": derr})
		}
		if errors.Is(err, apperr.ErrConflict) {
			return Invoice{}, alreadyInvoiced()
		}
		return Invoice{}, err
	}

	s.issued.Inc()
	s.log.Info("invoice issued", map[string]any{
		"invoice_id": inv.ID,
		"number":     inv.Number,
		"history_id": h.ID,
	})
	return inv, nil
}

func (s *Service) Get(ctx context.Context, clinicID, id string) (Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Invoice{}, apperr.Invalid("invoice_id", "required")
	}
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Invoice{}, apperr.Collaborator("invoices.get", err)
	}
	if inv.ClinicID != clinicID {
		return Invoice{}, apperr.NotFound("invoice", id)
	}
	return inv, nil
}

// Delete libera la historia (InvoiceGenerated=false) y borra la factura.
func (s *Service) Delete(ctx context.Context, clinicID, id string) error {
	inv, err := s.Get(ctx, clinicID, id)
	if err != nil {
		return err
	}
	if err := s.histories.ClearInvoice(ctx, inv.HistoryID, inv.ID); err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return err
	}
	return apperr.Collaborator("invoices.delete", s.repo.Delete(ctx, id))
}

func (s *Service) SetStatus(ctx context.Context, clinicID, id string, status Status) (Invoice, error) {
	if !status.Valid() {
		return Invoice{}, apperr.Invalid("status", "must be pending, paid or void")
	}
	if _, err := s.Get(ctx, clinicID, id); err != nil {
		return Invoice{}, err
	}
	inv, err := s.repo.SetStatus(ctx, id, status)
	if err != nil {
		return Invoice{}, apperr.Collaborator("invoices.set_status", err)
	}
	return inv, nil
}

func (s *Service) List(ctx context.Context, clinicID string) ([]Invoice, error) {
	items, err := s.repo.List(ctx, clinicID)
	if err != nil {
		return nil, apperr.Collaborator("invoices.list", err)
	}
	sortNewestFirst(items)
	return items, nil
}

// Search busca por caballo, propietario, número y fecha.
func (s *Service) Search(ctx context.Context, clinicID, q string) ([]Invoice, error) {
	items, err := s.List(ctx, clinicID)
	if err != nil || strings.TrimSpace(q) == "" {
		return items, err
	}
	horses, err := s.horses.Names(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	owners, err := s.owners.Names(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	return search.Filter(items, q, func(inv Invoice) []string {
		return []string{horses[inv.HorseID], owners[inv.OwnerID], inv.Number, inv.Date.String(), calendar.FormatDisplay(inv.Date)}
	}), nil
}

func (s *Service) ListByHorse(ctx context.Context, clinicID, horseID string) ([]Invoice, error) {
	items, err := s.repo.ListByHorse(ctx, horseID)
	if err != nil {
		return nil, apperr.Collaborator("invoices.list_by_horse", err)
	}
	return scoped(items, clinicID), nil
}

func (s *Service) ListByEvent(ctx context.Context, clinicID, eventID string) ([]Invoice, error) {
	items, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, apperr.Collaborator("invoices.list_by_event", err)
	}
	return scoped(items, clinicID), nil
}

func (s *Service) DeleteByHorse(ctx context.Context, horseID string) error {
	return s.repo.DeleteByHorse(ctx, horseID)
}

func (s *Service) DetachEvent(ctx context.Context, eventID string) error {
	return s.repo.DetachEvent(ctx, eventID)
}

func scoped(items []Invoice, clinicID string) []Invoice {
	out := make([]Invoice, 0, len(items))
	for _, inv := range items {
		if inv.ClinicID == clinicID {
			out = append(out, inv)
		}
	}
	sortNewestFirst(out)
	return out
}

func sortNewestFirst(items []Invoice) {
	sort.SliceStable(items, func(i, j int) bool {
		if c := items[i].Date.Compare(items[j].Date); c != 0 {
			return c > 0
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
