package histories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	blobmem "equine-clinic/internal/adapters/blobstore/memory"
	mem "equine-clinic/internal/adapters/storage/memory"
	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/domain/billing"
	"equine-clinic/internal/domain/calendar"
	"equine-clinic/internal/domain/events"
	"equine-clinic/internal/domain/histories"
	"equine-clinic/internal/domain/horses"
	"equine-clinic/internal/domain/inventory"
	"equine-clinic/internal/domain/owners"
	"equine-clinic/internal/domain/stables"
	"equine-clinic/internal/domain/veterinarians"
	"equine-clinic/internal/ports/tx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCounter struct{ n int }

// brokenCheckup acepta el caballo pero falla al fijar la última revisión.
type brokenCheckup struct{ *horses.Service }

func (brokenCheckup) TouchLastCheckup(context.Context, string, calendar.Date) error {
	return apperr.Collaborator("horses.touch", errors.New("store down"))
}

func (c *countingCounter) Inc() { c.n++ }

type fixture struct {
	svc       *histories.Service
	horses    *horses.Service
	events    *events.Service
	inventory *inventory.Service
	recorded  *countingCounter
	txCalls   *int

	horseID string
	vetID   string
	eventID string
	itemID  string
}

func setup(t *testing.T, opts ...func(*histories.Deps)) fixture {
	t.Helper()
	ctx := context.Background()

	ownersSvc := owners.NewService(mem.NewOwnerRepo())
	horsesSvc := horses.NewService(mem.NewHorseRepo(), ownersSvc, stables.NewService(mem.NewStableRepo()))
	vetsSvc := veterinarians.NewService(mem.NewVeterinarianRepo())
	eventsSvc := events.NewService(mem.NewEventRepo(), blobmem.New(), time.Minute)
	invSvc := inventory.NewService(mem.NewInventoryRepo())

	o, err := ownersSvc.Create(ctx, "c1", owners.CreateInput{Name: "Carlos Rivas"})
	require.NoError(t, err)
	h, err := horsesSvc.Create(ctx, "c1", horses.CreateInput{Name: "Relámpago", OwnerID: o.ID})
	require.NoError(t, err)
	v, err := vetsSvc.Create(ctx, "c1", veterinarians.CreateInput{Name: "Dra. Salas"})
	require.NoError(t, err)
	e, err := eventsSvc.Create(ctx, "c1", events.CreateInput{Name: "Copa Caracas", StartDate: calendar.NewDate(2024, time.March, 10)})
	require.NoError(t, err)
	it, err := invSvc.Create(ctx, "c1", inventory.CreateInput{Name: "Vacuna influenza", Stock: 3, Minimum: 5})
	require.NoError(t, err)

	calls := 0
	recorded := &countingCounter{}
	deps := histories.Deps{
		Horses:        horsesSvc,
		Veterinarians: vetsSvc,
		Events:        eventsSvc,
		Inventory:     invSvc,
		Tx: tx.RunnerFunc(func(ctx context.Context, fn func(context.Context) error) error {
			calls++
			return fn(ctx)
		}),
		Recorded: recorded,
	}
	for _, opt := range opts {
		opt(&deps)
	}
	svc := histories.NewService(mem.NewHistoryRepo(), deps)
	eventsSvc.SetHistorySource(svc)

	return fixture{
		svc: svc, horses: horsesSvc, events: eventsSvc, inventory: invSvc,
		recorded: recorded, txCalls: &calls,
		horseID: h.ID, vetID: v.ID, eventID: e.ID, itemID: it.ID,
	}
}

func (f fixture) input() histories.RecordInput {
	return histories.RecordInput{
		HorseID:        f.horseID,
		VeterinarianID: f.vetID,
		Date:           calendar.NewDate(2024, time.March, 14),
		Type:           "Consulta",
		Items: []billing.LineItem{
			{Description: "Consulta general", Quantity: 1, UnitPrice: 60},
			{Description: "Vacuna", Quantity: 1, UnitPrice: 25},
		},
	}
}

func TestRecord_AppliesAllEffects(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	in := f.input()
	in.EventID = f.eventID
	in.Consumed = []inventory.Usage{{ItemID: f.itemID, Quantity: 5}}

	h, err := f.svc.Record(ctx, "c1", in)
	require.NoError(t, err)

	assert.InDelta(t, 85.0, h.NetTotal, 1e-9)
	assert.InDelta(t, 13.6, h.Tax, 1e-9)
	assert.InDelta(t, 98.6, h.TotalWithTax, 1e-9)
	assert.Equal(t, float64(histories.DefaultTaxRate), h.TaxRate)
	assert.Equal(t, "98.60", h.Totals().Display().Total)
	assert.Equal(t, 1, *f.txCalls)
	assert.Equal(t, 1, f.recorded.n)

	horse, err := f.horses.Get(ctx, "c1", f.horseID)
	require.NoError(t, err)
	assert.Equal(t, calendar.NewDate(2024, time.March, 14), horse.LastCheckup)

	ev, err := f.events.Get(ctx, "c1", f.eventID)
	require.NoError(t, err)
	assert.Equal(t, 1, ev.AnimalsServed)
	assert.InDelta(t, 98.6, ev.Revenue, 1e-9)
	assert.ElementsMatch(t, []string{"Consulta general", "Vacuna"}, ev.Services)

	item, err := f.inventory.Get(ctx, "c1", f.itemID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, item.Stock, "el stock no baja de cero")

	stats, err := f.events.Stats(ctx, "c1", f.eventID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalAnimals)
	assert.Equal(t, 2.0, stats.TotalServices)
}

func TestRecord_ValidatesBeforeWriting(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	in := f.input()
	in.Consumed = []inventory.Usage{{ItemID: "no-existe", Quantity: 1}}
	_, err := f.svc.Record(ctx, "c1", in)
	var vErr *apperr.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "consumed[0].item_id", vErr.Errors[0].Field)

	in = f.input()
	in.Items = append(in.Items, billing.LineItem{Description: "Descuento", Quantity: -1, UnitPrice: 10})
	_, err = f.svc.Record(ctx, "c1", in)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	in = f.input()
	in.VeterinarianID = "otro"
	_, err = f.svc.Record(ctx, "c1", in)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = f.svc.Record(ctx, "c2", f.input())
	assert.ErrorIs(t, err, apperr.ErrValidation, "el caballo es de otra clínica")

	assert.Zero(t, *f.txCalls)
	assert.Zero(t, f.recorded.n)
	all, err := f.svc.Search(ctx, "c1", "")
	require.NoError(t, err)
	assert.Empty(t, all)

	horse, err := f.horses.Get(ctx, "c1", f.horseID)
	require.NoError(t, err)
	assert.True(t, horse.LastCheckup.IsZero())
}

func TestRecord_CustomTaxRateAndDefaultDate(t *testing.T) {
	f := setup(t)
	in := f.input()
	in.Date = calendar.Date{}
	zero := 0.0
	in.TaxRate = &zero

	h, err := f.svc.Record(context.Background(), "c1", in)
	require.NoError(t, err)
	assert.Equal(t, 0.0, h.Tax)
	assert.Equal(t, h.NetTotal, h.TotalWithTax)
	assert.False(t, h.Date.IsZero())
}

func TestRecord_ZeroTaxRateFromConfig(t *testing.T) {
	zero := 0.0
	f := setup(t, func(d *histories.Deps) { d.TaxRate = &zero })

	h, err := f.svc.Record(context.Background(), "c1", f.input())
	require.NoError(t, err)
	assert.Equal(t, 0.0, h.TaxRate)
	assert.Equal(t, 0.0, h.Tax)
	assert.InDelta(t, 85.0, h.TotalWithTax, 1e-9)
}

func TestRecord_NoPartialWriteWithoutTransaction(t *testing.T) {
	f := setup(t, func(d *histories.Deps) {
		d.Tx = tx.Direct
		d.Horses = brokenCheckup{d.Horses.(*horses.Service)}
	})
	ctx := context.Background()

	in := f.input()
	in.EventID = f.eventID
	_, err := f.svc.Record(ctx, "c1", in)
	require.ErrorIs(t, err, apperr.ErrCollaborator)

	items, err := f.svc.ListByHorse(ctx, "c1", f.horseID)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, f.recorded.n)

	ev, err := f.events.Get(ctx, "c1", f.eventID)
	require.NoError(t, err)
	assert.Zero(t, ev.AnimalsServed)
}

func TestUpdate_ItemsLockedOnceInvoiced(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	h, err := f.svc.Record(ctx, "c1", f.input())
	require.NoError(t, err)

	items := []billing.LineItem{{Description: "Consulta general", Quantity: 2, UnitPrice: 60}}
	updated, err := f.svc.Update(ctx, "c1", h.ID, histories.UpdateInput{Items: &items})
	require.NoError(t, err)
	assert.InDelta(t, 139.2, updated.TotalWithTax, 1e-9)

	require.NoError(t, f.svc.MarkInvoiced(ctx, h.ID, "inv-1"))
	assert.ErrorIs(t, f.svc.MarkInvoiced(ctx, h.ID, "inv-2"), apperr.ErrConflict)

	_, err = f.svc.Update(ctx, "c1", h.ID, histories.UpdateInput{Items: &items})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	notes := "Control en 15 días"
	updated, err = f.svc.Update(ctx, "c1", h.ID, histories.UpdateInput{Observations: &notes})
	require.NoError(t, err)
	assert.True(t, updated.InvoiceGenerated)
	assert.Equal(t, "inv-1", updated.InvoiceID)

	require.NoError(t, f.svc.ClearInvoice(ctx, h.ID, "otra"))
	got, _ := f.svc.Get(ctx, "c1", h.ID)
	assert.True(t, got.InvoiceGenerated)

	require.NoError(t, f.svc.ClearInvoice(ctx, h.ID, "inv-1"))
	got, _ = f.svc.Get(ctx, "c1", h.ID)
	assert.False(t, got.InvoiceGenerated)
	assert.Empty(t, got.InvoiceID)
}

type recordingRemover struct{ deleted []string }

func (r *recordingRemover) Delete(_ context.Context, _ string, invoiceID string) error {
	r.deleted = append(r.deleted, invoiceID)
	return nil
}

func TestDelete_RemovesLinkedInvoiceFirst(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	remover := &recordingRemover{}
	f.svc.SetInvoiceRemover(remover)

	h, err := f.svc.Record(ctx, "c1", f.input())
	require.NoError(t, err)
	require.NoError(t, f.svc.MarkInvoiced(ctx, h.ID, "inv-9"))

	require.NoError(t, f.svc.Delete(ctx, "c1", h.ID))
	assert.Equal(t, []string{"inv-9"}, remover.deleted)
	_, err = f.svc.Get(ctx, "c1", h.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSearchAndLists(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first, err := f.svc.Record(ctx, "c1", f.input())
	require.NoError(t, err)
	in := f.input()
	in.Type = "Herraje"
	in.Date = calendar.NewDate(2024, time.April, 2)
	in.EventID = f.eventID
	second, err := f.svc.Record(ctx, "c1", in)
	require.NoError(t, err)

	all, err := f.svc.Search(ctx, "c1", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "más reciente primero")

	byVet, err := f.svc.Search(ctx, "c1", "salas")
	require.NoError(t, err)
	assert.Len(t, byVet, 2)

	byDate, err := f.svc.Search(ctx, "c1", "14 mar")
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, first.ID, byDate[0].ID)

	byEvent, err := f.svc.ListByEvent(ctx, "c1", f.eventID)
	require.NoError(t, err)
	require.Len(t, byEvent, 1)

	require.NoError(t, f.svc.DetachEvent(ctx, f.eventID))
	byEvent, err = f.svc.ListByEvent(ctx, "c1", f.eventID)
	require.NoError(t, err)
	assert.Empty(t, byEvent)

	require.NoError(t, f.svc.DeleteByHorse(ctx, f.horseID))
	byHorse, err := f.svc.ListByHorse(ctx, "c1", f.horseID)
	require.NoError(t, err)
	assert.Empty(t, byHorse)
}
