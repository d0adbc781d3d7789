package stables_test

import (
	"context"
	"testing"

	mem "equine-clinic/internal/adapters/storage/memory"
	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/domain/stables"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStables_CRUDAndSearch(t *testing.T) {
	svc := stables.NewService(mem.NewStableRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, "c1", stables.Input{Address: "Km 3"})
	require.ErrorIs(t, err, apperr.ErrValidation)

	a, err := svc.Create(ctx, "c1", stables.Input{Name: "Haras El Trébol", Address: "Valencia, Carabobo", Contact: "Luis"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "c1", stables.Input{Name: "Caballeriza Norte", Address: "Maracay"})
	require.NoError(t, err)

	found, err := svc.Search(ctx, "c1", "carabobo")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, a.ID, found[0].ID)

	none, err := svc.Search(ctx, "c2", "")
	require.NoError(t, err)
	assert.Empty(t, none)

	phone := "+58 241 555 1234"
	updated, err := svc.Update(ctx, "c1", a.ID, stables.UpdateInput{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, "Luis", updated.Contact)

	require.NoError(t, svc.Delete(ctx, "c1", a.ID))
	assert.ErrorIs(t, svc.Exists(ctx, "c1", a.ID), apperr.ErrNotFound)
}
