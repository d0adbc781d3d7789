package owners_test

import (
	"context"
	"testing"
	"time"

	mem "equine-clinic/internal/adapters/storage/memory"
	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/domain/owners"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_ValidatesInput(t *testing.T) {
	svc := owners.NewService(mem.NewOwnerRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, "c1", owners.CreateInput{Email: "x@y.com"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Create(ctx, "c1", owners.CreateInput{Name: "Ana", Phone: "123"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Create(ctx, "", owners.CreateInput{Name: "Ana"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	o, err := svc.Create(ctx, "c1", owners.CreateInput{Name: "  Ana Pérez ", Phone: "0412 556 7053", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ana Pérez", o.Name)
	assert.NotEmpty(t, o.ID)
}

func TestSearch_ScopedToClinic(t *testing.T) {
	svc := owners.NewService(mem.NewOwnerRepo())
	ctx := context.Background()

	_, _ = svc.Create(ctx, "c1", owners.CreateInput{Name: "Carlos Rivas", Email: "carlos@haras.ve"})
	_, _ = svc.Create(ctx, "c1", owners.CreateInput{Name: "Beatriz Mora", Phone: "+58 412 041 1715"})
	_, _ = svc.Create(ctx, "c2", owners.CreateInput{Name: "Carla Otra Clínica"})

	all, err := svc.Search(ctx, "c1", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Beatriz Mora", all[0].Name)

	byEmail, err := svc.Search(ctx, "c1", "HARAS")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, "Carlos Rivas", byEmail[0].Name)

	byPhone, err := svc.Search(ctx, "c1", "041 1715")
	require.NoError(t, err)
	assert.Len(t, byPhone, 1)
}

func TestUpdateAndDelete(t *testing.T) {
	svc := owners.NewService(mem.NewOwnerRepo())
	ctx := context.Background()

	o, err := svc.Create(ctx, "c1", owners.CreateInput{Name: "Ana"})
	require.NoError(t, err)

	later := o.CreatedAt.Add(time.Hour)
	newName := "Ana María"
	bad := "no-es-email"

	_, err = svc.Update(ctx, "c1", o.ID, owners.UpdateInput{Email: &bad})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	updated, err := svc.Update(ctx, "c1", o.ID, owners.UpdateInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", updated.Name)
	assert.False(t, updated.UpdatedAt.After(later))

	_, err = svc.Get(ctx, "c2", o.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, "c1", o.ID))
	assert.ErrorIs(t, svc.Delete(ctx, "c1", o.ID), apperr.ErrNotFound)
}
