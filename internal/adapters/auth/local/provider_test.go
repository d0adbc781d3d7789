package local_test

import (
	"context"
	"testing"

	"equine-clinic/internal/adapters/auth/local"
	mem "equine-clinic/internal/adapters/storage/memory"
	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignIn(t *testing.T) {
	ctx := context.Background()
	usersSvc := users.NewService(mem.NewUserRepo(), nil, nil)
	u, err := usersSvc.Create(ctx, "c1", users.CreateInput{Name: "Ana", Email: "ana@x.com", Role: users.RoleAdmin, Password: "caballo123"})
	require.NoError(t, err)
	_, err = usersSvc.Create(ctx, "c1", users.CreateInput{Name: "Sin clave", Email: "hosted@x.com", Role: users.RoleAssistant})
	require.NoError(t, err)

	p := local.NewProvider(usersSvc)

	id, err := p.SignIn(ctx, "ana@x.com", "caballo123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, id.Subject)

	_, err = p.SignIn(ctx, "ana@x.com", "otra-clave")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	_, err = p.SignIn(ctx, "nadie@x.com", "caballo123")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	_, err = p.SignIn(ctx, "hosted@x.com", "cualquiera")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}
