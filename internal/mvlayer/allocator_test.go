package mvlayer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocator_Unlimited(t *testing.T) {
	a := NewAllocator(0)
	assert.NoError(t, a.Reserve(1<<20))
	assert.Equal(t, int64(1<<20), a.Usage())
	assert.Equal(t, int64(0), a.Limit())
}

func TestAllocator_Exhaustion(t *testing.T) {
	a := NewAllocator(128)
	assert.NoError(t, a.Reserve(128))
	err := a.Reserve(1)
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestAllocator_ReleaseFreesBudget(t *testing.T) {
	a := NewAllocator(128)
	assert.NoError(t, a.Reserve(128))
	a.Release(64)
	assert.NoError(t, a.Reserve(64))
	assert.Equal(t, int64(128), a.Usage())
}
