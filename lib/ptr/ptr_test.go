package ptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTo(t *testing.T) {
	value := 5
	p := To(value)
	assert.Equal(t, 5, *p)

	// Copies the value.
	*p = 6
	assert.Equal(t, 5, value)

	assert.False(t, *To(false))
}
