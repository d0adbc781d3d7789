package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"equine-clinic/internal/domain/invoices"
)

type invoiceRepo struct {
	t *table[invoices.Invoice]
}

func NewInvoiceRepo() invoices.Repository {
	return &invoiceRepo{t: newTable("invoice", func(inv invoices.Invoice) string { return inv.ID })}
}

func cloneInvoice(inv invoices.Invoice) invoices.Invoice {
	inv.Items = slices.Clone(inv.Items)
	return inv
}

func cloneInvoices(in []invoices.Invoice) []invoices.Invoice {
	for i := range in {
		in[i] = cloneInvoice(in[i])
	}
	return in
}

func (r *invoiceRepo) Create(_ context.Context, inv invoices.Invoice) error {
	return r.t.insert(cloneInvoice(inv))
}

func (r *invoiceRepo) GetByID(_ context.Context, id string) (invoices.Invoice, error) {
	inv, err := r.t.get(id)
	return cloneInvoice(inv), err
}

func (r *invoiceRepo) Delete(_ context.Context, id string) error { return r.t.remove(id) }

func (r *invoiceRepo) List(_ context.Context, clinicID string) ([]invoices.Invoice, error) {
	return cloneInvoices(r.t.filter(func(inv invoices.Invoice) bool { return inv.ClinicID == clinicID })), nil
}

func (r *invoiceRepo) ListByHorse(_ context.Context, horseID string) ([]invoices.Invoice, error) {
	return cloneInvoices(r.t.filter(func(inv invoices.Invoice) bool { return inv.HorseID == horseID })), nil
}

func (r *invoiceRepo) ListByEvent(_ context.Context, eventID string) ([]invoices.Invoice, error) {
	return cloneInvoices(r.t.filter(func(inv invoices.Invoice) bool { return inv.EventID == eventID })), nil
}

func (r *invoiceRepo) SetStatus(_ context.Context, id string, status invoices.Status) (invoices.Invoice, error) {
	inv, err := r.t.mutate(id, func(inv *invoices.Invoice) error {
		inv.Status = status
		return nil
	})
	return cloneInvoice(inv), err
}

func (r *invoiceRepo) DeleteByHorse(_ context.Context, horseID string) error {
	r.t.removeWhere(func(inv invoices.Invoice) bool { return inv.HorseID == horseID })
	return nil
}

func (r *invoiceRepo) DetachEvent(_ context.Context, eventID string) error {
	r.t.mutateWhere(
		func(inv invoices.Invoice) bool { return inv.EventID == eventID },
		func(inv *invoices.Invoice) { inv.EventID = "" },
	)
	return nil
}

// Sequencer es un contador por clínica y año.
type Sequencer struct {
	mu   sync.Mutex
	next map[string]int64
}

func NewSequencer() *Sequencer {
	return &Sequencer{next: make(map[string]int64)}
}

func (s *Sequencer) Next(_ context.Context, clinicID string, year int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := fmt.Sprintf("%s:%d", clinicID, year)
	s.next[key]++
	return s.next[key], nil
}

// Locker es un mutex por clave. Las entradas se liberan cuando nadie las usa.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func NewLocker() *Locker {
	return &Locker{locks: make(map[string]*keyLock)}
}

func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	kl, ok := l.locks[key]
	if !ok {
		kl = &keyLock{}
		l.locks[key] = kl
	}
	kl.refs++
	l.mu.Unlock()

	kl.mu.Lock()
	if err := ctx.Err(); err != nil {
		l.release(key, kl)
		return nil, err
	}

	var once sync.Once
	return func() { once.Do(func() { l.release(key, kl) }) }, nil
}

func (l *Locker) release(key string, kl *keyLock) {
	kl.mu.Unlock()

	l.mu.Lock()
	defer l.mu.Unlock()
	kl.refs--
	if kl.refs == 0 {
		delete(l.locks, key)
	}
}
