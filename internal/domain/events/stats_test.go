package events

import (
	"testing"

	"equine-clinic/internal/domain/billing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStats(t *testing.T) {
	hs := []LinkedHistory{
		{HorseID: "h1", Total: 98.6, Items: []billing.LineItem{
			{Description: "Consulta", Quantity: 1, UnitPrice: 50},
			{Description: "Vacuna", Quantity: 2, UnitPrice: 17.5},
		}},
		{HorseID: "h2", Total: 116, Items: []billing.LineItem{
			{Description: "Consulta", Quantity: 2, UnitPrice: 50},
		}},
		// mismo caballo atendido dos veces: cuenta como dos atenciones
		{HorseID: "h1", Total: 11.6, Items: []billing.LineItem{
			{Description: "Herraje", Quantity: 2, UnitPrice: 5},
		}},
	}

	st := ComputeStats(hs)
	assert.Equal(t, 3, st.TotalAnimals)
	assert.InDelta(t, 7.0, st.TotalServices, 1e-9)
	assert.InDelta(t, 226.2, st.TotalRevenue, 1e-9)

	// Vacuna y Herraje empatan en 2: queda primero el que apareció antes.
	assert.Equal(t, []ServiceCount{
		{Description: "Consulta", Quantity: 3},
		{Description: "Vacuna", Quantity: 2},
		{Description: "Herraje", Quantity: 2},
	}, st.MostCommonServices)
}

func TestComputeStats_Empty(t *testing.T) {
	st := ComputeStats(nil)
	assert.Zero(t, st.TotalAnimals)
	assert.Empty(t, st.MostCommonServices)
}

func TestListFilter_Match(t *testing.T) {
	e := Event{Type: TypeCompetition, Status: StatusScheduled}
	assert.True(t, ListFilter{}.Match(e))
	assert.True(t, ListFilter{Types: []Type{TypeClinic, TypeCompetition}}.Match(e))
	assert.False(t, ListFilter{Statuses: []Status{StatusFinished}}.Match(e))
}
