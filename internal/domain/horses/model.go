package horses

import (
	"time"

	"equine-clinic/internal/domain/calendar"
)

// Sex define el sexo del caballo.
// @Enum male, female, gelding, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexGelding Sex = "gelding" // castrado
	SexUnknown Sex = "unknown"
)

func (s Sex) Valid() bool {
	switch s {
	case SexMale, SexFemale, SexGelding, SexUnknown:
		return true
	}
	return false
}

// Medication es un tratamiento activo del caballo.
type Medication struct {
	Name      string        `json:"name" validate:"required"`
	Dose      string        `json:"dose"`
	Frequency string        `json:"frequency"`
	Start     calendar.Date `json:"start"`
	End       calendar.Date `json:"end"`
}

// Horse es el paciente. LastCheckup se deriva de las historias clínicas:
// no se edita desde el formulario.
type Horse struct {
	ID       string
	ClinicID string

	Name       string
	Breed      string
	Age        int // años
	Sex        Sex
	Color      string
	ChipNumber string

	OwnerID  string
	StableID string // opcional

	LastCheckup calendar.Date
	Medications []Medication

	CreatedAt time.Time
	UpdatedAt time.Time
}
