package jwt

import (
	"context"
	"testing"
	"time"

	"equine-clinic/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestIssueAndVerify(t *testing.T) {
	m, err := NewManager(secret, "equine-clinic", time.Hour)
	require.NoError(t, err)

	in := auth.Claims{UserID: "u-1", Email: "ana@x.com", ClinicID: "default", Role: "admin"}
	s, err := m.Issue(in)
	require.NoError(t, err)
	assert.NotEmpty(t, s.Token)

	got, err := m.Verify(context.Background(), s.Token)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestVerify_RejectsBadTokens(t *testing.T) {
	m, err := NewManager(secret, "equine-clinic", time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = m.Verify(ctx, "")
	assert.ErrorIs(t, err, ErrTokenEmpty)

	other, err := NewManager(secret, "otro-emisor", time.Hour)
	require.NoError(t, err)
	s, err := other.Issue(auth.Claims{UserID: "u-1", ClinicID: "c1"})
	require.NoError(t, err)
	_, err = m.Verify(ctx, s.Token)
	assert.Error(t, err, "emisor distinto")

	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := m.Issue(auth.Claims{UserID: "u-1", ClinicID: "c1"})
	require.NoError(t, err)
	m.now = time.Now
	_, err = m.Verify(ctx, old.Token)
	assert.Error(t, err, "vencido")
}

func TestNewManager_ShortSecret(t *testing.T) {
	_, err := NewManager("corto", "x", time.Hour)
	assert.Error(t, err)
}
