package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLowStock_IsStrict(t *testing.T) {
	assert.True(t, Item{Stock: 3, Minimum: 5}.LowStock())
	assert.False(t, Item{Stock: 5, Minimum: 5}.LowStock())
	assert.False(t, Item{Stock: 0, Minimum: 0}.LowStock())
}
