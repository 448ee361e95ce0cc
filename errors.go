package mvbtree

import (
	"errors"

	"github.com/hupe1980/mvbtree/internal/mvlayer"
)

var (
	// ErrClosed is returned by Insert, Lookup and Scan when called after Close.
	ErrClosed = errors.New("mvbtree: tree is closed")

	// ErrInvalidCount is returned by Scan when n is not positive.
	ErrInvalidCount = errors.New("mvbtree: n must be positive")

	// ErrExhausted is returned when the allocator's memory budget would be
	// exceeded by a node allocation. Unlike a try-lock conflict, this is
	// fatal and is surfaced to the caller rather than retried internally.
	ErrExhausted = mvlayer.ErrExhausted
)
