package auth

import "time"

// Claims representa la identidad de la sesión.
// ClinicID acota todos los listados y búsquedas.
type Claims struct {
	UserID   string
	Email    string
	ClinicID string
	Role     string
}

func (c Claims) IsAdmin() bool { return c.Role == "admin" }

// Identity es lo que devuelve el proveedor tras un sign-in exitoso.
type Identity struct {
	Subject string
	Email   string
}

// Session es la sesión emitida por este servicio.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Claims    Claims    `json:"-"`
}
