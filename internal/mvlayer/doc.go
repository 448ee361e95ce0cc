// Package mvlayer implements the multi-version concurrency primitives the
// tree's descent protocol is written against: registered threads, read/write
// sessions, slots (the atomically-published pointer locations a session
// dereferences or replaces), a non-blocking try-lock, and a budget-aware
// allocator.
//
// A Slot is the unit of publication. Every child reference inside an inner
// node, and the tree's own root reference, is a Slot: a mutex paired with an
// atomic pointer. Dereferencing a slot never blocks. Mutating what a slot
// points to requires winning its mutex first (TryLock), then replacing the
// pointer (AssignPtr); a thread that cannot win the mutex backs off and
// retries the whole operation rather than waiting.
//
// This package does not know anything about B-trees — it is generic over the
// pointee type of a slot — which keeps it reusable and testable independent
// of the tree's node layout.
package mvlayer
