package auth

import "context"

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// IdentityProvider autentica email + password contra el proveedor de identidad.
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (Identity, error)
}

// TokenIssuer emite tokens de sesión firmados para unos claims.
type TokenIssuer interface {
	Issue(claims Claims) (Session, error)
}
