package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	assert.True(t, Matches("", "anything"))
	assert.True(t, Matches("ARAB", "Pura Sangre", "Árabe", "árabe Arabian"))
	assert.False(t, Matches("cuarto", "Pura Sangre", "Tordillo"))
}

func TestFilter(t *testing.T) {
	type horse struct{ name, breed string }
	items := []horse{{"Relámpago", "Árabe"}, {"Tormenta", "Criollo"}, {"Luna", "criollo colombiano"}}

	got := Filter(items, "criollo", func(h horse) []string { return []string{h.name, h.breed} })
	assert.Len(t, got, 2)
	assert.Len(t, Filter(items, " ", func(h horse) []string { return nil }), 3)
}
