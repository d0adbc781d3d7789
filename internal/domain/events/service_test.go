package events_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	blobmem "equine-clinic/internal/adapters/blobstore/memory"
	mem "equine-clinic/internal/adapters/storage/memory"
	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/domain/billing"
	"equine-clinic/internal/domain/calendar"
	"equine-clinic/internal/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticHistories map[string][]events.LinkedHistory

func (s staticHistories) LinkedHistories(_ context.Context, eventID string) ([]events.LinkedHistory, error) {
	return s[eventID], nil
}

type detachRecorder struct {
	ids []string
	err error
}

func (d *detachRecorder) DetachEvent(_ context.Context, eventID string) error {
	d.ids = append(d.ids, eventID)
	return d.err
}

func newService() *events.Service {
	return events.NewService(mem.NewEventRepo(), blobmem.New(), time.Minute)
}

func validInput() events.CreateInput {
	return events.CreateInput{
		Name:      "Copa Carabobo",
		Type:      events.TypeCompetition,
		StartDate: calendar.NewDate(2024, 3, 14),
		EndDate:   calendar.NewDate(2024, 3, 17),
		Location:  "Valencia",
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	in := validInput()
	in.EndDate = calendar.NewDate(2024, 3, 1)
	_, err := svc.Create(ctx, "c1", in)
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "end_date", ve.Errors[0].Field)

	in = validInput()
	in.Type = "carrera"
	_, err = svc.Create(ctx, "c1", in)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	in = validInput()
	in.StartDate = calendar.Date{}
	in.EndDate = calendar.Date{}
	_, err = svc.Create(ctx, "c1", in)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	e, err := svc.Create(ctx, "c1", validInput())
	require.NoError(t, err)
	assert.Equal(t, events.StatusScheduled, e.Status)
}

func TestApplyHistoryAndResync(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	e, err := svc.Create(ctx, "c1", validInput())
	require.NoError(t, err)

	require.NoError(t, svc.ApplyHistory(ctx, e.ID, 98.6, []string{"Consulta", "Vacuna"}))
	require.NoError(t, svc.ApplyHistory(ctx, e.ID, 58, []string{"Consulta"}))

	got, err := svc.Get(ctx, "c1", e.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.AnimalsServed)
	assert.InDelta(t, 156.6, got.Revenue, 1e-9)
	assert.Equal(t, []string{"Consulta", "Vacuna"}, got.Services)

	// La historia de 58 se borró: sólo queda una vinculada.
	svc.SetHistorySource(staticHistories{e.ID: {
		{HorseID: "h1", Total: 98.6, Items: []billing.LineItem{
			{Description: "Vacuna", Quantity: 2, UnitPrice: 17.5},
			{Description: "Consulta", Quantity: 1, UnitPrice: 50},
		}},
	}})

	st, err := svc.Stats(ctx, "c1", e.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, st.TotalAnimals)
	assert.InDelta(t, 98.6, st.TotalRevenue, 1e-9)

	resynced, err := svc.Resync(ctx, "c1", e.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, resynced.AnimalsServed)
	assert.InDelta(t, 98.6, resynced.Revenue, 1e-9)
	assert.Equal(t, []string{"Vacuna", "Consulta"}, resynced.Services)
}

func TestStats_MatchStoredCounterForRepeatedHorse(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	e, err := svc.Create(ctx, "c1", validInput())
	require.NoError(t, err)

	// el mismo caballo atendido dos veces en el evento
	linked := []events.LinkedHistory{
		{HorseID: "h1", Total: 58, Items: []billing.LineItem{{Description: "Consulta", Quantity: 1, UnitPrice: 50}}},
		{HorseID: "h1", Total: 11.6, Items: []billing.LineItem{{Description: "Herraje", Quantity: 2, UnitPrice: 5}}},
	}
	for _, h := range linked {
		require.NoError(t, svc.ApplyHistory(ctx, e.ID, h.Total, []string{h.Items[0].Description}))
	}
	svc.SetHistorySource(staticHistories{e.ID: linked})

	stored, err := svc.Get(ctx, "c1", e.ID)
	require.NoError(t, err)
	st, err := svc.Stats(ctx, "c1", e.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.AnimalsServed, st.TotalAnimals)
	assert.Equal(t, 2, st.TotalAnimals)

	resynced, err := svc.Resync(ctx, "c1", e.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, resynced.AnimalsServed)
	assert.InDelta(t, stored.Revenue, resynced.Revenue, 1e-9)
}

func TestUpdate_KeepsCounters(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	e, err := svc.Create(ctx, "c1", validInput())
	require.NoError(t, err)
	require.NoError(t, svc.ApplyHistory(ctx, e.ID, 10, nil))

	st := events.StatusInProgress
	updated, err := svc.Update(ctx, "c1", e.ID, events.UpdateInput{Status: &st})
	require.NoError(t, err)
	assert.Equal(t, events.StatusInProgress, updated.Status)

	got, err := svc.Get(ctx, "c1", e.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.AnimalsServed)
}

func TestDelete_DetachesAndContinuesOnFailure(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	e, err := svc.Create(ctx, "c1", validInput())
	require.NoError(t, err)

	histories := &detachRecorder{}
	appointments := &detachRecorder{err: errors.New("store down")}
	invoices := &detachRecorder{}
	svc.RegisterDetacher("histories", histories)
	svc.RegisterDetacher("appointments", appointments)
	svc.RegisterDetacher("invoices", invoices)

	err = svc.Delete(ctx, "c1", e.ID)
	require.ErrorIs(t, err, apperr.ErrCollaborator)
	assert.Equal(t, []string{e.ID}, histories.ids)
	assert.Equal(t, []string{e.ID}, invoices.ids)

	assert.ErrorIs(t, svc.Exists(ctx, "c1", e.ID), apperr.ErrNotFound)
}

func TestSearchAndUpcoming(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	copa, err := svc.Create(ctx, "c1", validInput())
	require.NoError(t, err)

	expo := validInput()
	expo.Name = "Expo Criollo"
	expo.Type = events.TypeExhibition
	expo.StartDate = calendar.NewDate(2024, 5, 2)
	expo.EndDate = calendar.Date{}
	expo.Location = "Barquisimeto"
	_, err = svc.Create(ctx, "c1", expo)
	require.NoError(t, err)

	done := validInput()
	done.Name = "Clínica de cascos"
	done.Type = events.TypeClinic
	done.Status = events.StatusFinished
	done.StartDate = calendar.NewDate(2024, 1, 10)
	done.EndDate = calendar.Date{}
	_, err = svc.Create(ctx, "c1", done)
	require.NoError(t, err)

	byDate, err := svc.Search(ctx, "c1", "14 mar", events.ListFilter{})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, copa.ID, byDate[0].ID)

	byType, err := svc.Search(ctx, "c1", "", events.ListFilter{Types: []events.Type{events.TypeExhibition}})
	require.NoError(t, err)
	require.Len(t, byType, 1)

	all, err := svc.Search(ctx, "c1", "", events.ListFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Expo Criollo", all[0].Name)

	upcoming, err := svc.Upcoming(ctx, "c1", 3)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, copa.ID, upcoming[0].ID)
}

func TestImages(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	e, err := svc.Create(ctx, "c1", validInput())
	require.NoError(t, err)

	_, err = svc.AddImage(ctx, "c1", e.ID, "notes.txt", "text/plain", bytes.NewBufferString("x"))
	require.ErrorIs(t, err, apperr.ErrValidation)

	key, err := svc.AddImage(ctx, "c1", e.ID, "podio.PNG", "image/png", bytes.NewBufferString("png-bytes"))
	require.NoError(t, err)
	assert.Contains(t, key, "events/"+e.ID+"/")
	assert.True(t, len(key) > len(".png") && key[len(key)-4:] == ".png")

	img, err := svc.Image(ctx, "c1", e.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, img.URL, "memory driver streams the content")
	defer img.Body.Close()
	b, err := io.ReadAll(img.Body)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(b))
	assert.Equal(t, "image/png", img.Info.ContentType)

	_, err = svc.Image(ctx, "c1", e.ID, 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
