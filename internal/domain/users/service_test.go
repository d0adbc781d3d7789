package users_test

import (
	"context"
	"testing"

	mem "equine-clinic/internal/adapters/storage/memory"
	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCreate_HashesPasswordAndRejectsDuplicates(t *testing.T) {
	svc := users.NewService(mem.NewUserRepo(), nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "c1", users.CreateInput{Name: "Ana", Email: "ana@x.com", Role: "jefa"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Create(ctx, "c1", users.CreateInput{Name: "Ana", Email: "ana@x.com", Role: users.RoleAdmin, Password: "corta"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	u, err := svc.Create(ctx, "c1", users.CreateInput{Name: "Ana", Email: " Ana@X.com ", Role: users.RoleVeterinarian, Password: "caballo123"})
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", u.Email)
	assert.True(t, u.Active)
	require.NotNil(t, u.CreatedAt)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("caballo123")))

	_, err = svc.Create(ctx, "c2", users.CreateInput{Name: "Otra Ana", Email: "ana@x.com", Role: users.RoleAssistant})
	assert.ErrorIs(t, err, apperr.ErrAlreadyExists)
}

func TestFindActiveByEmail(t *testing.T) {
	svc := users.NewService(mem.NewUserRepo(), nil, nil)
	ctx := context.Background()

	u, err := svc.Create(ctx, "c1", users.CreateInput{Name: "Luis", Email: "luis@x.com", Role: users.RoleReceptionist, Password: "caballo123"})
	require.NoError(t, err)

	got, err := svc.FindActiveByEmail(ctx, "LUIS@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	id, hash, err := svc.Credentials(ctx, "luis@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
	assert.NotEmpty(t, hash)

	inactive := false
	_, err = svc.Update(ctx, "c1", u.ID, users.UpdateInput{Active: &inactive})
	require.NoError(t, err)
	_, err = svc.FindActiveByEmail(ctx, "luis@x.com")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateSearchDelete(t *testing.T) {
	svc := users.NewService(mem.NewUserRepo(), nil, nil)
	ctx := context.Background()

	u, err := svc.Create(ctx, "c1", users.CreateInput{Name: "Marta", Email: "marta@x.com", Role: users.RoleAssistant})
	require.NoError(t, err)
	_, _ = svc.Create(ctx, "c1", users.CreateInput{Name: "Beto", Email: "beto@x.com", Role: users.RoleVeterinarian})

	bad := users.Role("root")
	_, err = svc.Update(ctx, "c1", u.ID, users.UpdateInput{Role: &bad})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	admin := users.RoleAdmin
	updated, err := svc.Update(ctx, "c1", u.ID, users.UpdateInput{Role: &admin})
	require.NoError(t, err)
	assert.Equal(t, users.RoleAdmin, updated.Role)

	vets, err := svc.Search(ctx, "c1", "veterinario")
	require.NoError(t, err)
	require.Len(t, vets, 1)
	assert.Equal(t, "Beto", vets[0].Name)

	_, err = svc.Get(ctx, "c2", u.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, "c1", u.ID))
}
