package local

import (
	"context"
	"errors"
	"strings"

	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/ports/auth"

	"golang.org/x/crypto/bcrypt"
)

type credentialStore interface {
	Credentials(ctx context.Context, email string) (id, passwordHash string, err error)
}

// Provider valida email + password contra los hashes bcrypt de la tabla de usuarios.
// Se usa cuando no hay proveedor hospedado configurado.
type Provider struct {
	store credentialStore
}

func NewProvider(store credentialStore) *Provider {
	return &Provider{store: store}
}

func (p *Provider) SignIn(ctx context.Context, email, password string) (auth.Identity, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return auth.Identity{}, apperr.ErrUnauthorized
	}

	id, hash, err := p.store.Credentials(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrCollaborator) {
			return auth.Identity{}, err
		}
		return auth.Identity{}, apperr.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return auth.Identity{}, apperr.ErrUnauthorized
	}
	return auth.Identity{Subject: id, Email: email}, nil
}
