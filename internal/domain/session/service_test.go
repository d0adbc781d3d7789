package session_test

import (
	"context"
	"testing"
	"time"

	authjwt "equine-clinic/internal/adapters/auth/jwt"
	"equine-clinic/internal/adapters/auth/local"
	mem "equine-clinic/internal/adapters/storage/memory"
	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/domain/session"
	"equine-clinic/internal/domain/users"
	"equine-clinic/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// alwaysOK simula un proveedor hospedado que acepta cualquier identidad.
type alwaysOK struct{}

func (alwaysOK) SignIn(_ context.Context, email, _ string) (auth.Identity, error) {
	return auth.Identity{Subject: "ext-1", Email: email}, nil
}

func TestSignIn_IssuesTokenForActiveUser(t *testing.T) {
	ctx := context.Background()
	usersSvc := users.NewService(mem.NewUserRepo(), nil, nil)
	u, err := usersSvc.Create(ctx, "default", users.CreateInput{Name: "Ana", Email: "ana@x.com", Role: users.RoleVeterinarian, Password: "caballo123"})
	require.NoError(t, err)

	jm, err := authjwt.NewManager("0123456789abcdef0123456789abcdef", "equine-clinic", time.Hour)
	require.NoError(t, err)
	svc := session.NewService(local.NewProvider(usersSvc), usersSvc, jm, nil)

	sess, got, err := svc.SignIn(ctx, "ana@x.com", "caballo123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	claims, err := jm.Verify(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.Claims{UserID: u.ID, Email: "ana@x.com", ClinicID: "default", Role: "veterinario"}, claims)

	_, _, err = svc.SignIn(ctx, "ana@x.com", "mala")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestSignIn_UnknownIdentityIsForbidden(t *testing.T) {
	usersSvc := users.NewService(mem.NewUserRepo(), nil, nil)
	jm, err := authjwt.NewManager("0123456789abcdef0123456789abcdef", "equine-clinic", time.Hour)
	require.NoError(t, err)
	svc := session.NewService(alwaysOK{}, usersSvc, jm, nil)

	_, _, err = svc.SignIn(context.Background(), "nuevo@x.com", "lo-que-sea")
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	all, err := usersSvc.Search(context.Background(), "default", "")
	require.NoError(t, err)
	assert.Empty(t, all, "no se crean usuarios al vuelo")
}
