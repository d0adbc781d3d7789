// Package catalog es el catálogo de servicios de la clínica. Sus ítems
// sirven de plantilla para las líneas de una historia clínica.
package catalog

import (
	"time"

	"equine-clinic/internal/domain/billing"
)

type Item struct {
	ID          string
	ClinicID    string
	Name        string
	Description string
	Price       float64
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LineItem arma una línea de factura a partir del ítem del catálogo.
func (i Item) LineItem(qty float64) billing.LineItem {
	return billing.LineItem{Description: i.Name, Quantity: qty, UnitPrice: i.Price}
}
