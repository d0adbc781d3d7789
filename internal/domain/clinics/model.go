package clinics

import "time"

// Clinic es el tenant: todos los registros llevan su ID.
type Clinic struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Email     string
	Logo      string
	Instagram string
	TaxID     string // RIF

	CreatedAt time.Time
	UpdatedAt time.Time
}
