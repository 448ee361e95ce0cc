package mvlayer

import (
	"errors"
	"fmt"

	"github.com/hupe1980/mvbtree/internal/resource"
)

// ErrExhausted is returned by Allocator.Reserve when the node-memory budget
// would be exceeded. Exhaustion is fatal to the calling operation: callers
// propagate it to the caller rather than retrying, unlike a failed TryLock
// which simply means "back off and restart".
var ErrExhausted = errors.New("mvlayer: allocator exhausted")

// Allocator enforces the node-memory budget backing new node creation.
// A zero-value-limit Allocator (the default from NewAllocator(0)) tracks
// usage but never refuses an allocation.
type Allocator struct {
	budget *resource.Controller
}

// NewAllocator creates an Allocator with the given byte budget. A limit of
// 0 means unlimited (tracking only).
func NewAllocator(limitBytes int64) *Allocator {
	return &Allocator{budget: resource.NewController(resource.Config{MemoryLimitBytes: limitBytes})}
}

// Reserve charges bytes against the budget before a new node is allocated.
// Returns ErrExhausted if the budget would be exceeded.
func (a *Allocator) Reserve(bytes int64) error {
	if err := a.budget.AcquireMemory(bytes); err != nil {
		return fmt.Errorf("%w: %w", ErrExhausted, err)
	}
	return nil
}

// Release returns bytes to the budget. The tree calls it only to undo a
// reservation for a node that is never published (a root promotion whose
// second Reserve fails). Nodes that become unreachable are not released:
// reclamation timing (when no reader session can still observe the old
// version) is not tracked here.
func (a *Allocator) Release(bytes int64) {
	a.budget.ReleaseMemory(bytes)
}

// Usage returns the currently reserved bytes.
func (a *Allocator) Usage() int64 {
	return a.budget.MemoryUsage()
}

// Limit returns the configured budget in bytes (0 if unlimited).
func (a *Allocator) Limit() int64 {
	return a.budget.MemoryLimit()
}
