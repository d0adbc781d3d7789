package billing

import (
	"math"
	"testing"

	"equine-clinic/internal/domain/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_ConsultaYVacuna(t *testing.T) {
	items := []LineItem{
		{Description: "Consulta", Quantity: 1, UnitPrice: 50},
		{Description: "Vacuna", Quantity: 2, UnitPrice: 17.5},
	}

	got, err := Compute(items, 16)
	require.NoError(t, err)

	assert.InDelta(t, 85.0, got.NetTotal, 1e-9)
	assert.InDelta(t, 13.6, got.Tax, 1e-9)
	assert.InDelta(t, 98.6, got.Total, 1e-9)

	d := got.Display()
	assert.Equal(t, "85.00", d.NetTotal)
	assert.Equal(t, "13.60", d.Tax)
	assert.Equal(t, "98.60", d.Total)
}

func TestCompute_EmptyIsZero(t *testing.T) {
	got, err := Compute(nil, DefaultTaxRate)
	require.NoError(t, err)
	assert.Equal(t, Totals{}, got)
}

func TestCompute_Property(t *testing.T) {
	cases := []struct {
		items []LineItem
		rate  float64
	}{
		{[]LineItem{{Quantity: 3, UnitPrice: 0.1}}, 0},
		{[]LineItem{{Quantity: 0.5, UnitPrice: 33.33}, {Quantity: 7, UnitPrice: 1.01}}, 12.5},
		{[]LineItem{{Quantity: 1000, UnitPrice: 999.99}}, 16},
		{[]LineItem{{Quantity: 0, UnitPrice: 10}}, 100},
	}

	for _, tc := range cases {
		got, err := Compute(tc.items, tc.rate)
		require.NoError(t, err)

		net := 0.0
		for _, it := range tc.items {
			net += it.Quantity * it.UnitPrice
		}
		assert.InDelta(t, net, got.NetTotal, 1e-9)
		assert.True(t, math.Abs(got.Total-(got.NetTotal+got.NetTotal*tc.rate/100)) <= 1e-9)
	}
}

func TestCompute_RejectsNegatives(t *testing.T) {
	_, err := Compute([]LineItem{{Quantity: -1, UnitPrice: 5}, {Quantity: 1, UnitPrice: -5}}, 16)
	require.ErrorIs(t, err, apperr.ErrValidation)

	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Errors, 2)

	_, err = Compute(nil, -1)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestDisplayAndSum(t *testing.T) {
	assert.Equal(t, "0.00", Display(0))
	assert.Equal(t, "10.13", Display(10.125))
	assert.InDelta(t, 0.3, Sum(0.1, 0.2), 1e-12)
	assert.Equal(t, 98.6, Round2(85*1.16))
}
