package memory

import (
	"context"
	"fmt"
	"slices"

	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/domain/histories"
)

type historyRepo struct {
	t *table[histories.History]
}

func NewHistoryRepo() histories.Repository {
	return &historyRepo{t: newTable("history", func(h histories.History) string { return h.ID })}
}

func cloneHistory(h histories.History) histories.History {
	h.Items = slices.Clone(h.Items)
	h.Consumed = slices.Clone(h.Consumed)
	return h
}

func cloneHistories(in []histories.History) []histories.History {
	for i := range in {
		in[i] = cloneHistory(in[i])
	}
	return in
}

func (r *historyRepo) Create(_ context.Context, h histories.History) error {
	return r.t.insert(cloneHistory(h))
}

func (r *historyRepo) Update(_ context.Context, h histories.History) error {
	// El enlace a factura sólo cambia por MarkInvoiced/ClearInvoice.
	_, err := r.t.mutate(h.ID, func(cur *histories.History) error {
		h.InvoiceGenerated, h.InvoiceID = cur.InvoiceGenerated, cur.InvoiceID
		*cur = cloneHistory(h)
		return nil
	})
	return err
}

func (r *historyRepo) GetByID(_ context.Context, id string) (histories.History, error) {
	h, err := r.t.get(id)
	return cloneHistory(h), err
}

func (r *historyRepo) Delete(_ context.Context, id string) error { return r.t.remove(id) }

func (r *historyRepo) List(_ context.Context, clinicID string) ([]histories.History, error) {
	return cloneHistories(r.t.filter(func(h histories.History) bool { return h.ClinicID == clinicID })), nil
}

func (r *historyRepo) ListByHorse(_ context.Context, horseID string) ([]histories.History, error) {
	return cloneHistories(r.t.filter(func(h histories.History) bool { return h.HorseID == horseID })), nil
}

func (r *historyRepo) ListByEvent(_ context.Context, eventID string) ([]histories.History, error) {
	return cloneHistories(r.t.filter(func(h histories.History) bool { return h.EventID == eventID })), nil
}

func (r *historyRepo) MarkInvoiced(_ context.Context, id, invoiceID string) error {
	_, err := r.t.mutate(id, func(h *histories.History) error {
		if h.InvoiceGenerated {
			return fmt.Errorf("history %s already invoiced by %s: %w", id, h.InvoiceID, apperr.ErrConflict)
		}
		h.InvoiceGenerated, h.InvoiceID = true, invoiceID
		return nil
	})
	return err
}

func (r *historyRepo) ClearInvoice(_ context.Context, id, invoiceID string) error {
	_, err := r.t.mutate(id, func(h *histories.History) error {
		if h.InvoiceID == invoiceID {
			h.InvoiceGenerated, h.InvoiceID = false, ""
		}
		return nil
	})
	return err
}

func (r *historyRepo) DeleteByHorse(_ context.Context, horseID string) error {
	r.t.removeWhere(func(h histories.History) bool { return h.HorseID == horseID })
	return nil
}

func (r *historyRepo) DetachEvent(_ context.Context, eventID string) error {
	r.t.mutateWhere(
		func(h histories.History) bool { return h.EventID == eventID },
		func(h *histories.History) { h.EventID = "" },
	)
	return nil
}
