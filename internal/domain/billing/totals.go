// Package billing calcula los totales de historias clínicas y facturas.
// Los valores se guardan con precisión completa; el redondeo a 2 decimales
// ocurre solo al presentar (ver Display).
package billing

import (
	"fmt"

	"equine-clinic/internal/domain/apperr"
)

// DefaultTaxRate es el IVA por defecto (porcentaje).
const DefaultTaxRate = 16.0

type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

func (li LineItem) Subtotal() float64 {
	return li.Quantity * li.UnitPrice
}

type Totals struct {
	NetTotal float64 `json:"net_total"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Compute:
//
//	net   = Σ quantity × unitPrice
//	tax   = net × rate/100
//	total = net + tax
//
// Lista vacía => todo en cero. Cantidades, precios o tasa negativos => ValidationError.
func Compute(items []LineItem, rate float64) (Totals, error) {
	if rate < 0 {
		return Totals{}, apperr.Invalid("tax_rate", "must be >= 0")
	}

	var fields []apperr.FieldError
	net := 0.0
	for i, it := range items {
		if it.Quantity < 0 {
			fields = append(fields, apperr.FieldError{Field: fmt.Sprintf("items[%d].quantity", i), Message: "must be >= 0"})
		}
		if it.UnitPrice < 0 {
			fields = append(fields, apperr.FieldError{Field: fmt.Sprintf("items[%d].unit_price", i), Message: "must be >= 0"})
		}
		net += it.Subtotal()
	}
	if len(fields) > 0 {
		return Totals{}, apperr.InvalidFields(fields)
	}

	tax := net * (rate / 100)
	return Totals{
		NetTotal: net,
		Tax:      tax,
		Total:    net + tax,
	}, nil
}
