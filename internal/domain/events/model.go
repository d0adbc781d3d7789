package events

import (
	"time"

	"equine-clinic/internal/domain/calendar"
)

// Event es una jornada de varios días (competencia, exposición, clínica)
// que agrupa historias, citas y facturas.
type Event struct {
	ID       string
	ClinicID string

	Name   string
	Type   Type
	Status Status

	StartDate calendar.Date
	EndDate   calendar.Date // opcional

	Location    string
	Organizer   string
	Contact     string
	Description string

	// Contadores mantenidos al registrar historias. Stats no los lee:
	// se recalculan desde las historias vinculadas.
	AnimalsServed int
	Revenue       float64
	Expenses      float64
	Services      []string

	Images []string // claves en el blob store

	CreatedAt time.Time
	UpdatedAt time.Time
}
