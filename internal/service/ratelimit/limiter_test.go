package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowConsumesCapacity(t *testing.T) {
	l := New(3, 0.0001)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
}

func TestClientsHaveIndependentBuckets(t *testing.T) {
	l := New(1, 0.0001)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"))
}

func TestZeroConfigFallsBackToSaneDefaults(t *testing.T) {
	l := New(0, 0)
	assert.True(t, l.Allow("10.0.0.1"))
}
