package jitter

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJitter(t *testing.T) {
	// maxMs <= 0 returns time.Duration(0)
	assert.Equal(t, time.Duration(0), Jitter(10, 0, 0))
	assert.Equal(t, time.Duration(0), Jitter(10, 0, 100))
	assert.Equal(t, time.Duration(0), Jitter(10, -1, 0))
	assert.Equal(t, time.Duration(0), Jitter(10, -1, 100))

	{
		// The first attempt is capped by the base.
		for range 100 {
			assert.Less(t, Jitter(10, 1000, 0), 10*time.Millisecond)
		}
	}
	{
		// The cap doubles per attempt until it reaches maxMs.
		for range 100 {
			assert.Less(t, Jitter(10, 1000, 2), 40*time.Millisecond)
		}
	}
	{
		// A large number of attempts does not panic.
		value := Jitter(10, 100, 200)
		assert.Less(t, value, 100*time.Millisecond)
	}
	{
		// A very large number of attempts does not panic.
		value := Jitter(10, 100, math.MaxInt)
		assert.Less(t, value, 100*time.Millisecond)
	}
	{
		// Negative attempts do not panic.
		value := Jitter(10, 100, -3)
		assert.Less(t, value, 10*time.Millisecond)
	}
}
