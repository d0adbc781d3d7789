package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/domain/users"
	"equine-clinic/internal/platform/logger"
	"equine-clinic/internal/ports/auth"
)

type directory interface {
	FindActiveByEmail(ctx context.Context, email string) (users.User, error)
}

type Service struct {
	provider auth.IdentityProvider
	users    directory
	issuer   auth.TokenIssuer
	log      logger.Logger
}

func NewService(provider auth.IdentityProvider, users directory, issuer auth.TokenIssuer, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{provider: provider, users: users, issuer: issuer, log: log}
}

// SignIn autentica contra el proveedor, exige un usuario activo con ese email
// y emite el token de sesión con su clínica y rol.
// Una identidad válida sin usuario en la clínica se rechaza; no se crean admins al vuelo.
func (s *Service) SignIn(ctx context.Context, email, password string) (auth.Session, users.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return auth.Session{}, users.User{}, apperr.Invalid("email", "email and password required")
	}
	if s.issuer == nil {
		return auth.Session{}, users.User{}, fmt.Errorf("sign in disabled without jwt secret: %w", apperr.ErrForbidden)
	}

	identity, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, apperr.ErrCollaborator) {
			return auth.Session{}, users.User{}, err
		}
		s.log.Warn("sign in rejected", map[string]any{"email": email, "error": err})
		return auth.Session{}, users.User{}, apperr.ErrUnauthorized
	}
	if identity.Email != "" {
		email = identity.Email
	}

	u, err := s.users.FindActiveByEmail(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		s.log.Warn("sign in without active user", map[string]any{"email": email})
		return auth.Session{}, users.User{}, fmt.Errorf("no active user for %s: %w", email, apperr.ErrForbidden)
	}
	if err != nil {
		return auth.Session{}, users.User{}, err
	}

	sess, err := s.issuer.Issue(auth.Claims{
		UserID:   u.ID,
		Email:    u.Email,
		ClinicID: u.ClinicID,
		Role:     string(u.Role),
	})
	if err != nil {
		return auth.Session{}, users.User{}, apperr.Collaborator("session.issue", err)
	}
	return sess, u, nil
}
