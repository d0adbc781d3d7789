package inventory

import (
	"time"

	"equine-clinic/internal/domain/calendar"
)

type Item struct {
	ID           string
	ClinicID     string
	Name         string
	Category     string
	Stock        float64
	Minimum      float64
	Unit         string
	UnitPrice    float64
	Supplier     string
	LastPurchase calendar.Date
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LowStock es estricto: stock igual al mínimo no es bajo.
func (i Item) LowStock() bool { return i.Stock < i.Minimum }

// Usage es el consumo de un ítem al registrar una historia clínica.
type Usage struct {
	ItemID   string  `json:"item_id"`
	Quantity float64 `json:"quantity"`
}
