package node

import (
	"cmp"

	"github.com/hupe1980/mvbtree/internal/conv"
	"github.com/hupe1980/mvbtree/internal/mvlayer"
	"github.com/hupe1980/mvbtree/internal/page"
)

// Inner holds count separator keys and count+1 child slots. Child i covers
// keys <= Keys[i] for i < count, and the last child covers everything
// greater than Keys[count-1].
//
// Children are mvlayer.Slot values, not plain pointers: once an Inner is
// reachable from a published slot, a simple (non-splitting) insert into one
// of its children publishes the child's new version directly into the
// matching Children entry, without cloning the Inner itself. That requires
// every Children entry to already be a safely-publishable slot from the
// moment the Inner is constructed.
type Inner[K cmp.Ordered, V any] struct {
	Keys     []K
	Children []mvlayer.Slot[Node[K, V]]
}

// NewInner allocates an empty inner node. Capacity is page.MaxInnerEntries-1
// keys (one slack slot is kept so a full check never needs a +1) and one
// more child slot than that.
func NewInner[K cmp.Ordered, V any]() *Inner[K, V] {
	capacity := page.MaxInnerEntries[K]() - 1
	if capacity < 1 {
		capacity = 1
	}
	return &Inner[K, V]{
		Keys:     make([]K, 0, capacity),
		Children: make([]mvlayer.Slot[Node[K, V]], 0, capacity+1),
	}
}

// Count returns the number of live separator keys.
func (n *Inner[K, V]) Count() int {
	return len(n.Keys)
}

// HeaderCount returns Count() narrowed to the page header's u16 field,
// failing if the live separator count has somehow grown past what the
// header can represent.
func (n *Inner[K, V]) HeaderCount() (uint16, error) {
	return conv.IntToUint16(n.Count())
}

// IsFull reports whether the inner node has no room for another insert.
func (n *Inner[K, V]) IsFull() bool {
	return len(n.Keys) == cap(n.Keys)
}

// LowerBound returns the index of the first key >= k, or Count() if none.
// This is also the index of the child to descend into for key k.
func (n *Inner[K, V]) LowerBound(k K) int {
	lower, upper := 0, len(n.Keys)
	for lower < upper {
		mid := lower + (upper-lower)/2
		if n.Keys[mid] < k {
			lower = mid + 1
		} else {
			upper = mid
		}
	}
	return lower
}

// ChildSlot returns the slot for child i, for i in [0, Count()].
func (n *Inner[K, V]) ChildSlot(i int) *mvlayer.Slot[Node[K, V]] {
	return &n.Children[i]
}

// Insert inserts a new separator key k and child pointer. child becomes the
// occupant of slot pos+1 (covering keys > k); the pre-existing occupant of
// pos is left untouched there, since it still covers keys <= k.
//
// The shift loop below must finish moving every slot past pos up by one
// before child is stored into pos+1 — that shift is what vacates pos+1
// without disturbing pos's pre-existing occupant.
func (n *Inner[K, V]) Insert(k K, child *Node[K, V]) {
	if len(n.Keys) >= cap(n.Keys) {
		panic("node: inner insert called on a full inner node")
	}
	pos := n.LowerBound(k)

	var zeroK K
	n.Keys = append(n.Keys, zeroK)
	copy(n.Keys[pos+1:], n.Keys[pos:len(n.Keys)-1])
	n.Keys[pos] = k

	n.Children = append(n.Children, mvlayer.Slot[Node[K, V]]{})
	for i := len(n.Children) - 1; i > pos+1; i-- {
		n.Children[i].Store(n.Children[i-1].Load())
	}

	n.Children[pos+1].Store(child)
}

// Split moves the right portion of the inner node's keys and children into
// a freshly allocated inner node, returning it along with the median
// separator key. The median key is dropped — it is not copied into either
// half, matching the invariant that an inner node with c keys has c+1
// children.
func (n *Inner[K, V]) Split() (*Inner[K, V], K) {
	count := len(n.Keys)
	m := count - count/2
	leftCount := count - m - 1
	sep := n.Keys[leftCount]

	right := NewInner[K, V]()
	right.Keys = append(right.Keys, n.Keys[leftCount+1:leftCount+1+m]...)
	for i := leftCount + 1; i < leftCount+1+m+1; i++ {
		var s mvlayer.Slot[Node[K, V]]
		s.Store(n.Children[i].Load())
		right.Children = append(right.Children, s)
	}

	n.Keys = n.Keys[:leftCount]
	n.Children = n.Children[:leftCount+1]

	return right, sep
}

// Clone returns a deep copy suitable for copy-on-write mutation: a fresh set
// of keys and fresh child slots, each loaded from (not aliasing) the
// original's current child pointers.
func (n *Inner[K, V]) Clone() *Inner[K, V] {
	c := NewInner[K, V]()
	c.Keys = append(c.Keys, n.Keys...)
	for i := range n.Children {
		var s mvlayer.Slot[Node[K, V]]
		s.Store(n.Children[i].Load())
		c.Children = append(c.Children, s)
	}
	return c
}

// SetChild directly sets child i's slot value. Only safe on a node not yet
// reachable from a published slot (e.g. while constructing a Clone or a
// fresh root), since it bypasses the slot's lock.
func (n *Inner[K, V]) SetChild(i int, v *Node[K, V]) {
	n.Children[i].Store(v)
}
