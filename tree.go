package mvbtree

import (
	"cmp"
	"context"
	"sync/atomic"
	"time"

	"github.com/hupe1980/mvbtree/internal/mvlayer"
	"github.com/hupe1980/mvbtree/internal/node"
	"github.com/hupe1980/mvbtree/internal/page"
)

// newNodeBytes is the budget charged against the allocator for each newly
// created node, regardless of the concrete K/V types. It mirrors the
// source design's fixed page size rather than the actual (larger, due to
// Go slice headers) heap footprint of a node value, since the allocator's
// job here is to model the MV layer's page budget, not Go's GC.
const newNodeBytes = int64(page.Size)

// Tree is a concurrent, in-memory, multi-version B-tree mapping keys of
// type K to values of type V.
//
// The zero value is not usable; construct with New. A *Tree is safe for
// concurrent use by multiple goroutines.
type Tree[K cmp.Ordered, V any] struct {
	masterRoot *node.Inner[K, V]
	alloc      *mvlayer.Allocator

	backoffThreshold int
	logger           *Logger
	metrics          MetricsCollector

	closed atomic.Bool
}

// New creates an empty Tree: a permanent master-root inner node whose sole
// child slot points at a freshly allocated, empty leaf.
//
// Bootstrap allocation is not charged against the memory budget configured
// via WithMemoryLimit — New is error-free by design, matching the tree's
// public API (new() → Tree, no failure mode in the source design).
func New[K cmp.Ordered, V any](opts ...Option) *Tree[K, V] {
	o := applyOptions(opts)

	t := &Tree[K, V]{
		masterRoot:       node.NewInner[K, V](),
		alloc:            mvlayer.NewAllocator(o.memoryLimitBytes),
		backoffThreshold: o.backoffThreshold,
		logger:           o.logger,
		metrics:          o.metricsCollector,
	}

	root := node.WrapLeaf(node.NewLeaf[K, V]())
	t.masterRoot.Children = append(t.masterRoot.Children, mvlayer.Slot[node.Node[K, V]]{})
	t.masterRoot.SetChild(0, root)

	return t
}

// rootSlot returns the master root's sole publication slot: the single
// point through which the logical root of the tree is ever replaced.
func (t *Tree[K, V]) rootSlot() *mvlayer.Slot[node.Node[K, V]] {
	return t.masterRoot.ChildSlot(0)
}

// Insert upserts (k, v): a subsequent Lookup(k) observes v, overwriting any
// previous value for k. Insert retries internally on try-lock conflicts and
// on its own deliberate eager-split restarts; it only returns an error for
// ErrClosed or ErrExhausted.
func (t *Tree[K, V]) Insert(ctx context.Context, k K, v V) error {
	if t.closed.Load() {
		return ErrClosed
	}

	start := time.Now()
	thread := mvlayer.Register()
	defer thread.Deregister()

	backoff := mvlayer.NewBackoff(t.backoffThreshold)
	restarts := 0

	for {
		done, err := t.insertAttempt(ctx, thread, k, v)
		if err != nil {
			t.logger.LogInsert(ctx, restarts, err)
			t.metrics.RecordInsert(time.Since(start), restarts, err)
			return err
		}
		if done {
			t.logger.LogInsert(ctx, restarts, nil)
			t.metrics.RecordInsert(time.Since(start), restarts, nil)
			return nil
		}
		restarts++
		backoff.Wait()
	}
}

// insertAttempt runs one descent-and-commit attempt. done reports whether
// the attempt actually performed the insert (true) or only restructured
// the tree and must be retried (false, err == nil) — the eager-split and
// leaf-split paths never perform the insert themselves, per the source
// design's goto-restart behavior. A non-nil err is always fatal.
func (t *Tree[K, V]) insertAttempt(ctx context.Context, thread *mvlayer.Thread, k K, v V) (bool, error) {
	session := mvlayer.Begin[node.Node[K, V]](thread)
	defer session.End()

	var parentSlot *mvlayer.Slot[node.Node[K, V]]
	var parent *node.Inner[K, V]

	curSlot := t.rootSlot()
	cur := session.Deref(curSlot)

	for !cur.IsLeaf() {
		in := cur.Inner
		if in.IsFull() {
			// Whether the split actually went through here or a concurrent
			// writer won the race first, the right move is the same:
			// restart and re-descend.
			if _, err := t.eagerSplitInner(ctx, session, parentSlot, parent, curSlot, in); err != nil {
				return false, err
			}
			return false, nil
		}

		idx := in.LowerBound(k)
		childSlot := in.ChildSlot(idx)

		parentSlot, parent = curSlot, in
		curSlot = childSlot
		cur = session.Deref(childSlot)
	}

	leaf := cur.Leaf
	if !leaf.IsFull() {
		if !session.TryLock(curSlot) {
			return false, nil
		}
		clone := leaf.Clone()
		clone.Insert(k, v)
		session.AssignPtr(curSlot, node.WrapLeaf(clone))
		return true, nil
	}

	_, err := t.splitLeaf(ctx, session, parentSlot, parent, curSlot, leaf)
	if err != nil {
		return false, err
	}
	return false, nil
}

// acquireSplitLocks wins writer intent on the node(s) a split needs.
//
// When parentSlot is nil, curSlot is the master root's own slot: the node
// being split is the top-level root, so a single try_lock on curSlot
// covers both the "lock parent" and "lock the node itself" roles the
// source design calls for. Trying to lock it twice would deadlock on the
// same non-reentrant mutex.
func (t *Tree[K, V]) acquireSplitLocks(session *mvlayer.Session[node.Node[K, V]], parentSlot, curSlot *mvlayer.Slot[node.Node[K, V]]) bool {
	if parentSlot == nil {
		return session.TryLock(curSlot)
	}
	if !session.TryLock(parentSlot) {
		return false
	}
	return session.TryLock(curSlot)
}

// publishNewRoot grows the tree by one level. Caller must already hold
// curSlot's lock (curSlot is always the master root's own slot here).
func (t *Tree[K, V]) publishNewRoot(session *mvlayer.Session[node.Node[K, V]], curSlot *mvlayer.Slot[node.Node[K, V]], sep K, left, right *node.Node[K, V]) {
	newRoot := node.NewInner[K, V]()
	newRoot.Keys = append(newRoot.Keys, sep)
	newRoot.Children = append(newRoot.Children, mvlayer.Slot[node.Node[K, V]]{}, mvlayer.Slot[node.Node[K, V]]{})
	newRoot.SetChild(0, left)
	newRoot.SetChild(1, right)

	session.AssignPtr(curSlot, node.WrapInner(newRoot))
}

// splitLeaf restructures a full leaf into two leaves, installing the new
// sibling either into parent (if any) or by promoting a new root. It never
// performs the (k, v) insert that triggered it — the caller restarts and
// re-descends into the correct half on the next attempt.
func (t *Tree[K, V]) splitLeaf(ctx context.Context, session *mvlayer.Session[node.Node[K, V]], parentSlot *mvlayer.Slot[node.Node[K, V]], parent *node.Inner[K, V], curSlot *mvlayer.Slot[node.Node[K, V]], leaf *node.Leaf[K, V]) (bool, error) {
	if !t.acquireSplitLocks(session, parentSlot, curSlot) {
		return false, nil
	}

	if err := t.alloc.Reserve(newNodeBytes); err != nil {
		return false, err
	}

	clone := leaf.Clone()
	right, sep := clone.Split()
	rightNode := node.WrapLeaf(right)
	leftNode := node.WrapLeaf(clone)

	if parent == nil {
		if err := t.alloc.Reserve(newNodeBytes); err != nil {
			t.alloc.Release(newNodeBytes)
			return false, err
		}
		t.publishNewRoot(session, curSlot, sep, leftNode, rightNode)
		t.logger.LogRootPromotion(ctx)
		t.metrics.RecordRootPromotion()
	} else {
		session.AssignPtr(curSlot, leftNode)
		parentClone := parent.Clone()
		parentClone.Insert(sep, rightNode)
		session.AssignPtr(parentSlot, node.WrapInner(parentClone))
	}

	t.logger.LogSplit(ctx, "leaf")
	t.metrics.RecordSplit("leaf")
	return true, nil
}

// eagerSplitInner restructures a full inner node encountered mid-descent,
// before following it further. Same locking and root-promotion shape as
// splitLeaf, generalized to inner nodes.
func (t *Tree[K, V]) eagerSplitInner(ctx context.Context, session *mvlayer.Session[node.Node[K, V]], parentSlot *mvlayer.Slot[node.Node[K, V]], parent *node.Inner[K, V], curSlot *mvlayer.Slot[node.Node[K, V]], in *node.Inner[K, V]) (bool, error) {
	if !t.acquireSplitLocks(session, parentSlot, curSlot) {
		return false, nil
	}

	if err := t.alloc.Reserve(newNodeBytes); err != nil {
		return false, err
	}

	clone := in.Clone()
	right, sep := clone.Split()
	rightNode := node.WrapInner(right)
	leftNode := node.WrapInner(clone)

	if parent == nil {
		if err := t.alloc.Reserve(newNodeBytes); err != nil {
			t.alloc.Release(newNodeBytes)
			return false, err
		}
		t.publishNewRoot(session, curSlot, sep, leftNode, rightNode)
		t.logger.LogRootPromotion(ctx)
		t.metrics.RecordRootPromotion()
	} else {
		session.AssignPtr(curSlot, leftNode)
		parentClone := parent.Clone()
		parentClone.Insert(sep, rightNode)
		session.AssignPtr(parentSlot, node.WrapInner(parentClone))
	}

	t.logger.LogSplit(ctx, "inner")
	t.metrics.RecordSplit("inner")
	return true, nil
}

// Lookup returns the current value for k, and whether it was found.
// Lookup never restarts on its own: the MV layer's snapshot guarantee
// means one descent is always enough.
func (t *Tree[K, V]) Lookup(ctx context.Context, k K) (V, bool, error) {
	var zero V
	if t.closed.Load() {
		return zero, false, ErrClosed
	}

	start := time.Now()
	thread := mvlayer.Register()
	defer thread.Deregister()

	session := mvlayer.Begin[node.Node[K, V]](thread)
	defer session.End()

	leaf := t.descendToLeaf(session, k)
	v, ok := leaf.Get(k)

	t.logger.LogLookup(ctx, ok, nil)
	t.metrics.RecordLookup(time.Since(start), ok, nil)
	return v, ok, nil
}

// Scan returns up to n payloads for keys >= k, starting at the lowest such
// key. Per the source design, this is a single-leaf prefix scan: it does
// not traverse across leaf boundaries even if fewer than n matches are
// found in the first leaf.
func (t *Tree[K, V]) Scan(ctx context.Context, k K, n int) ([]V, error) {
	if t.closed.Load() {
		return nil, ErrClosed
	}
	if n <= 0 {
		return nil, ErrInvalidCount
	}

	start := time.Now()
	thread := mvlayer.Register()
	defer thread.Deregister()

	session := mvlayer.Begin[node.Node[K, V]](thread)
	defer session.End()

	leaf := t.descendToLeaf(session, k)
	pos := leaf.LowerBound(k)

	end := pos + n
	if end > leaf.Count() {
		end = leaf.Count()
	}

	out := append([]V(nil), leaf.Payloads[pos:end]...)

	t.logger.LogScan(ctx, n, len(out), nil)
	t.metrics.RecordScan(time.Since(start), len(out), nil)
	return out, nil
}

// descendToLeaf performs the read-only descent shared by Lookup and Scan:
// no locks, no splits, just snapshot-consistent derefs down to a leaf.
func (t *Tree[K, V]) descendToLeaf(session *mvlayer.Session[node.Node[K, V]], k K) *node.Leaf[K, V] {
	cur := session.Deref(t.rootSlot())
	for !cur.IsLeaf() {
		in := cur.Inner
		idx := in.LowerBound(k)
		cur = session.Deref(in.ChildSlot(idx))
	}
	return cur.Leaf
}

// Height reports the current number of levels in the tree (1 for a tree
// whose root is a single leaf). It is a diagnostic snapshot, not part of
// the descent protocol: it takes no locks and may observe a height that a
// concurrent split has already changed by the time it returns.
func (t *Tree[K, V]) Height() int {
	thread := mvlayer.Register()
	defer thread.Deregister()
	session := mvlayer.Begin[node.Node[K, V]](thread)
	defer session.End()

	height := 1
	cur := session.Deref(t.rootSlot())
	for !cur.IsLeaf() {
		height++
		cur = session.Deref(cur.Inner.ChildSlot(0))
	}
	return height
}
