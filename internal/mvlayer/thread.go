package mvlayer

import "sync/atomic"

var threadSeq atomic.Uint64

// Thread is a registered execution context. Every goroutine that calls into
// the tree registers a Thread before its first operation and deregisters it
// when done, mirroring the register/deregister contract a real MV-layer
// implementation enforces around thread-local version bookkeeping.
type Thread struct {
	id uint64
}

// Register creates and registers a new Thread handle.
func Register() *Thread {
	return &Thread{id: threadSeq.Add(1)}
}

// Deregister releases the thread handle. Idempotent, safe to call even if
// the thread never started a session.
func (t *Thread) Deregister() {}

// ID returns the thread's registration sequence number, useful for logging.
func (t *Thread) ID() uint64 {
	return t.id
}
