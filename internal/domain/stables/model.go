package stables

import "time"

// Stable es una caballeriza. Los caballos la referencian y también sirve
// como ubicación seleccionable al agendar citas.
type Stable struct {
	ID       string
	ClinicID string

	Name    string
	Address string
	Phone   string
	Contact string // persona de contacto

	CreatedAt time.Time
	UpdatedAt time.Time
}
