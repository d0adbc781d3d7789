package invoices

import (
	"fmt"
	"time"

	"equine-clinic/internal/domain/billing"
	"equine-clinic/internal/domain/calendar"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusVoid    Status = "void"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusVoid:
		return true
	}
	return false
}

// Invoice copia ítems y totales de la historia al momento de emitirla.
type Invoice struct {
	ID       string
	ClinicID string
	Number   string

	Date      calendar.Date
	HistoryID string
	HorseID   string
	OwnerID   string
	EventID   string

	Items        []billing.LineItem
	TaxRate      float64
	NetTotal     float64
	Tax          float64
	TotalWithTax float64
	Observations string

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (inv Invoice) Totals() billing.Totals {
	return billing.Totals{NetTotal: inv.NetTotal, Tax: inv.Tax, Total: inv.TotalWithTax}
}

// FormatNumber arma "F-2024-0001". Pasado 9999 el sufijo simplemente se ensancha.
func FormatNumber(year int, seq int64) string {
	return fmt.Sprintf("F-%d-%04d", year, seq)
}
