package appointments_test

import (
	"context"
	"testing"
	"time"

	mem "equine-clinic/internal/adapters/storage/memory"
	"equine-clinic/internal/domain/appointments"
	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/domain/calendar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHorses map[string]string

func (f fakeHorses) Exists(_ context.Context, _ string, id string) error {
	if _, ok := f[id]; !ok {
		return apperr.NotFound("horse", id)
	}
	return nil
}

func (f fakeHorses) Names(context.Context, string) (map[string]string, error) {
	return f, nil
}

type fakeEvents map[string]bool

func (f fakeEvents) Exists(_ context.Context, _ string, id string) error {
	if !f[id] {
		return apperr.NotFound("event", id)
	}
	return nil
}

func newService() *appointments.Service {
	return appointments.NewService(
		mem.NewAppointmentRepo(),
		fakeHorses{"h1": "Relámpago", "h2": "Canela"},
		fakeEvents{"e1": true},
	)
}

func day(d int) calendar.Date { return calendar.NewDate(2024, time.March, d) }

func TestCreate_Validates(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "c1", appointments.CreateInput{HorseID: "h1", Type: "Vacuna", Time: "09:00"})
	assert.ErrorIs(t, err, apperr.ErrValidation, "falta fecha")

	_, err = svc.Create(ctx, "c1", appointments.CreateInput{HorseID: "h1", Type: "Vacuna", Date: day(14), Time: "9h"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Create(ctx, "c1", appointments.CreateInput{HorseID: "zz", Type: "Vacuna", Date: day(14), Time: "09:00"})
	var vErr *apperr.ValidationError
	require.ErrorAs(t, err, &vErr)

	_, err = svc.Create(ctx, "c1", appointments.CreateInput{HorseID: "h1", Type: "Vacuna", Date: day(14), Time: "09:00", EventID: "nope"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	a, err := svc.Create(ctx, "c1", appointments.CreateInput{HorseID: "h1", Type: " Vacuna ", Date: day(14), Time: "09:00", EventID: "e1"})
	require.NoError(t, err)
	assert.Equal(t, "Vacuna", a.Type)
	assert.False(t, a.Completed)
}

func TestUpdateCompleteDelete(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	a, err := svc.Create(ctx, "c1", appointments.CreateInput{HorseID: "h1", Type: "Herraje", Date: day(14), Time: "10:00"})
	require.NoError(t, err)

	newDate := day(15)
	updated, err := svc.Update(ctx, "c1", a.ID, appointments.UpdateInput{Date: &newDate})
	require.NoError(t, err)
	assert.Equal(t, day(15), updated.Date)
	assert.Equal(t, "10:00", updated.Time)

	_, err = svc.Complete(ctx, "c2", a.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	done, err := svc.Complete(ctx, "c1", a.ID)
	require.NoError(t, err)
	assert.True(t, done.Completed)

	require.NoError(t, svc.Delete(ctx, "c1", a.ID))
	_, err = svc.Get(ctx, "c1", a.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSearchAndPending(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	late, _ := svc.Create(ctx, "c1", appointments.CreateInput{HorseID: "h1", Type: "Vacuna", Date: day(20), Time: "08:00"})
	early, _ := svc.Create(ctx, "c1", appointments.CreateInput{HorseID: "h2", Type: "Consulta", Date: day(14), Time: "11:00", Location: "Haras El Sol"})
	old, _ := svc.Create(ctx, "c1", appointments.CreateInput{HorseID: "h2", Type: "Consulta", Date: day(1), Time: "11:00"})
	_, _ = svc.Create(ctx, "c2", appointments.CreateInput{HorseID: "h1", Type: "Vacuna", Date: day(14), Time: "08:00"})

	byHorse, err := svc.Search(ctx, "c1", "canela")
	require.NoError(t, err)
	require.Len(t, byHorse, 2)
	assert.Equal(t, old.ID, byHorse[0].ID)

	byDisplay, err := svc.Search(ctx, "c1", "14 mar 2024")
	require.NoError(t, err)
	require.Len(t, byDisplay, 1)
	assert.Equal(t, early.ID, byDisplay[0].ID)

	byLocation, err := svc.Search(ctx, "c1", "el sol")
	require.NoError(t, err)
	assert.Len(t, byLocation, 1)

	_, err = svc.Complete(ctx, "c1", early.ID)
	require.NoError(t, err)

	pending, err := svc.Pending(ctx, "c1", day(10))
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, late.ID, pending[0].ID)
}

func TestListBetween_RejectsInvertedRange(t *testing.T) {
	_, err := newService().ListBetween(context.Background(), "c1", day(20), day(10))
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCascadeHooks(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	a1, _ := svc.Create(ctx, "c1", appointments.CreateInput{HorseID: "h1", Type: "Vacuna", Date: day(14), Time: "08:00", EventID: "e1"})
	a2, _ := svc.Create(ctx, "c1", appointments.CreateInput{HorseID: "h2", Type: "Vacuna", Date: day(14), Time: "09:00", EventID: "e1"})

	byEvent, err := svc.ListByEvent(ctx, "c1", "e1")
	require.NoError(t, err)
	assert.Len(t, byEvent, 2)

	require.NoError(t, svc.DetachEvent(ctx, "e1"))
	got, err := svc.Get(ctx, "c1", a2.ID)
	require.NoError(t, err)
	assert.Empty(t, got.EventID)

	require.NoError(t, svc.DeleteByHorse(ctx, "h1"))
	_, err = svc.Get(ctx, "c1", a1.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = svc.Get(ctx, "c1", a2.ID)
	assert.NoError(t, err)
}

func TestWeek_PlacesAppointments(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	// 14 mar 2024 es jueves: la semana va del 11 al 17.
	in := []appointments.CreateInput{
		{HorseID: "h1", Type: "Consulta", Date: day(11), Time: "16:30"},
		{HorseID: "h1", Type: "Consulta", Date: day(11), Time: "08:00"},
		{HorseID: "h2", Type: "Herraje", Date: day(17), Time: "18:00"},
		{HorseID: "h2", Type: "Herraje", Date: day(18), Time: "09:00"},
	}
	for _, ci := range in {
		_, err := svc.Create(ctx, "c1", ci)
		require.NoError(t, err)
	}

	week, err := svc.Week(ctx, "c1", day(14), "", calendar.DefaultSlotHeight)
	require.NoError(t, err)
	require.Len(t, week.View.Days, 7)
	assert.Equal(t, day(11), week.View.Days[0].Date)
	assert.Len(t, week.Appointments, 3)

	monday := week.View.Days[0].Entries
	require.Len(t, monday, 2)
	assert.Equal(t, 0.0, monday[0].Top)
	assert.Equal(t, 510.0, monday[1].Top)
	require.Len(t, week.View.Unslotted, 1)
	assert.Equal(t, "18:00", week.View.Unslotted[0].Time)

	next, err := svc.Week(ctx, "c1", day(14), "next", 40)
	require.NoError(t, err)
	assert.Equal(t, day(21), next.Reference)
	require.Len(t, next.Appointments, 1)
	assert.Equal(t, 40.0, next.View.Days[0].Entries[0].Top)
}
