package owners

import "time"

// Owner es el propietario de uno o más caballos. Se referencia desde horses e invoices.
type Owner struct {
	ID       string
	ClinicID string

	Name       string
	Phone      string
	Email      string
	Address    string
	NationalID string // cédula
	TaxID      string // RIF

	CreatedAt time.Time
	UpdatedAt time.Time
}
