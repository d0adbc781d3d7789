package users

import "time"

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleVeterinarian Role = "veterinario"
	RoleAssistant    Role = "asistente"
	RoleReceptionist Role = "recepcionista"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleVeterinarian, RoleAssistant, RoleReceptionist:
		return true
	}
	return false
}

// User es un usuario del personal de la clínica.
// CreatedAt puede faltar en registros importados; la reconciliación lo trata como epoch 0.
type User struct {
	ID       string
	ClinicID string

	Name      string
	Email     string
	Role      Role
	Active    bool
	Phone     string
	Specialty string

	PasswordHash string

	CreatedAt *time.Time
	UpdatedAt time.Time
}

// createdUnix devuelve CreatedAt en nanosegundos, 0 si falta.
func (u User) createdUnix() int64 {
	if u.CreatedAt == nil {
		return 0
	}
	return u.CreatedAt.UnixNano()
}
