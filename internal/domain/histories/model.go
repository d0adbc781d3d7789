package histories

import (
	"time"

	"equine-clinic/internal/domain/billing"
	"equine-clinic/internal/domain/calendar"
	"equine-clinic/internal/domain/inventory"
)

// History es una historia clínica. Los totales se guardan sin redondear.
type History struct {
	ID             string
	ClinicID       string
	HorseID        string
	VeterinarianID string

	Date         calendar.Date
	Type         string
	Observations string

	Items        []billing.LineItem
	TaxRate      float64
	NetTotal     float64
	Tax          float64
	TotalWithTax float64

	InvoiceGenerated bool
	InvoiceID        string
	EventID          string

	Consumed []inventory.Usage

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (h History) Totals() billing.Totals {
	return billing.Totals{NetTotal: h.NetTotal, Tax: h.Tax, Total: h.TotalWithTax}
}

// Descriptions son las descripciones de los ítems, en orden.
func (h History) Descriptions() []string {
	out := make([]string, 0, len(h.Items))
	for _, it := range h.Items {
		out = append(out, it.Description)
	}
	return out
}
