package jwt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"equine-clinic/internal/ports/auth"

	gojwt "github.com/golang-jwt/jwt/v5"
)

var ErrTokenEmpty = errors.New("token is empty")

// Manager firma y verifica los tokens de sesión (HS256).
// Implementa auth.AuthVerifier y auth.TokenIssuer.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret, issuer string, ttl time.Duration) (*Manager, error) {
	if len(secret) < 32 {
		return nil, errors.New("jwt secret must be at least 32 characters")
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Manager{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}, nil
}

type sessionClaims struct {
	gojwt.RegisteredClaims
	Email    string `json:"email,omitempty"`
	ClinicID string `json:"clinic_id"`
	Role     string `json:"role,omitempty"`
}

func (m *Manager) Issue(c auth.Claims) (auth.Session, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	claims := sessionClaims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   c.UserID,
			Issuer:    m.issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(exp),
		},
		Email:    c.Email,
		ClinicID: c.ClinicID,
		Role:     c.Role,
	}

	signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return auth.Session{}, fmt.Errorf("sign token: %w", err)
	}
	return auth.Session{Token: signed, ExpiresAt: exp, Claims: c}, nil
}

func (m *Manager) Verify(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	parsed, err := gojwt.ParseWithClaims(token, &sessionClaims{}, func(t *gojwt.Token) (any, error) {
		if _, ok := t.Method.(*gojwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		gojwt.WithIssuer(m.issuer),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("parse token: %w", err)
	}

	sc, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return auth.Claims{}, errors.New("invalid token claims")
	}
	if strings.TrimSpace(sc.Subject) == "" || strings.TrimSpace(sc.ClinicID) == "" {
		return auth.Claims{}, errors.New("token missing subject or clinic")
	}
	return auth.Claims{UserID: sc.Subject, Email: sc.Email, ClinicID: sc.ClinicID, Role: sc.Role}, nil
}
