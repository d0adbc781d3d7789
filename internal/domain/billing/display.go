package billing

import "github.com/shopspring/decimal"

// Display redondea a 2 decimales para presentación ("98.60").
func Display(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

type DisplayedTotals struct {
	NetTotal string `json:"net_total"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

func (t Totals) Display() DisplayedTotals {
	return DisplayedTotals{
		NetTotal: Display(t.NetTotal),
		Tax:      Display(t.Tax),
		Total:    Display(t.Total),
	}
}

// Sum suma montos sin perder precisión en la agregación (reportes, analytics).
func Sum(values ...float64) float64 {
	acc := decimal.Zero
	for _, v := range values {
		acc = acc.Add(decimal.NewFromFloat(v))
	}
	f, _ := acc.Float64()
	return f
}

// Round2 redondea a 2 decimales para salidas numéricas (planillas).
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
