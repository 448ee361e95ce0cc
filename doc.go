// Package mvbtree provides a concurrent, in-memory, multi-version B-tree.
//
// It maps ordered keys to arbitrary values with point insert, point
// lookup, and single-leaf range scan, all safe for concurrent use by many
// goroutines without the tree itself ever holding a lock: readers walk a
// snapshot-consistent view of the tree, and writers acquire non-blocking
// writer intent on individual nodes, retrying on conflict.
//
// # Quick start
//
//	t := mvbtree.New[int, string]()
//	_ = t.Insert(ctx, 1, "one")
//	v, ok, _ := t.Lookup(ctx, 1)
//
// # Concurrency model
//
// Every node a goroutine can reach is published through an internal slot:
// a mutex paired with an atomic pointer. Reads always go through the
// atomic pointer and never block. A write clones the node it needs to
// change, mutates the clone, and publishes it through the slot's pointer
// only after winning the slot's mutex with a non-blocking try-lock; a
// losing writer backs off and restarts its entire operation rather than
// waiting. Splits are eager: a full inner node is split on the way down
// during descent, before being followed further, which bounds every
// operation to holding at most two node locks at a time.
//
// # Memory budget
//
// WithMemoryLimit caps the bytes the tree's node allocator may reserve for
// new nodes. Once exhausted, Insert returns ErrExhausted rather than
// growing the tree further; this is treated as fatal and is never retried
// internally, unlike an ordinary try-lock conflict.
package mvbtree
