package mvlayer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlot_LoadStore(t *testing.T) {
	s := NewSlot[int](nil)
	assert.Nil(t, s.Load())

	v := 42
	s.Store(&v)
	assert.Equal(t, &v, s.Load())
}

func TestSlot_TryLockExclusion(t *testing.T) {
	s := NewSlot[int](nil)

	assert.True(t, s.TryLock())
	assert.False(t, s.TryLock(), "a second TryLock must fail while the first is held")

	s.Unlock()
	assert.True(t, s.TryLock(), "TryLock must succeed again after Unlock")
	s.Unlock()
}
