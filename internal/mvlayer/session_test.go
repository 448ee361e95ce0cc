package mvlayer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_TryLockTracksAndReleases(t *testing.T) {
	thread := Register()
	defer thread.Deregister()

	slot := NewSlot[int](nil)
	s := Begin[int](thread)

	assert.True(t, s.TryLock(slot))

	other := Begin[int](thread)
	assert.False(t, other.TryLock(slot), "slot is already locked by s")

	s.End()

	assert.True(t, other.TryLock(slot), "slot must be free after s.End()")
	other.End()
}

func TestSession_DerefAndAssignPtr(t *testing.T) {
	thread := Register()
	defer thread.Deregister()

	slot := NewSlot[int](nil)
	s := Begin[int](thread)
	defer s.End()

	assert.Nil(t, s.Deref(slot))

	require := assert.New(t)
	require.True(s.TryLock(slot))

	v := 7
	s.AssignPtr(slot, &v)
	require.Equal(&v, s.Deref(slot))
}

func TestSession_AbortReleasesWithoutPublishing(t *testing.T) {
	thread := Register()
	defer thread.Deregister()

	slot := NewSlot[int](nil)
	s := Begin[int](thread)

	assert.True(t, s.TryLock(slot))
	s.Abort()

	assert.Nil(t, slot.Load(), "Abort must not publish anything")

	other := Begin[int](thread)
	assert.True(t, other.TryLock(slot))
	other.End()
}
