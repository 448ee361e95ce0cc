package node

import (
	"cmp"

	"github.com/hupe1980/mvbtree/internal/conv"
	"github.com/hupe1980/mvbtree/internal/page"
)

// Leaf holds count (key, payload) pairs in parallel, key-sorted arrays.
type Leaf[K cmp.Ordered, V any] struct {
	Keys     []K
	Payloads []V
}

// NewLeaf allocates an empty leaf sized to page.MaxLeafEntries for K, V.
func NewLeaf[K cmp.Ordered, V any]() *Leaf[K, V] {
	max := page.MaxLeafEntries[K, V]()
	return &Leaf[K, V]{
		Keys:     make([]K, 0, max),
		Payloads: make([]V, 0, max),
	}
}

// Count returns the number of live entries.
func (l *Leaf[K, V]) Count() int {
	return len(l.Keys)
}

// IsFull reports whether the leaf has no room for another insert.
func (l *Leaf[K, V]) IsFull() bool {
	return len(l.Keys) == cap(l.Keys)
}

// HeaderCount returns Count() narrowed to the page header's u16 field,
// failing if the live entry count has somehow grown past what the header
// can represent.
func (l *Leaf[K, V]) HeaderCount() (uint16, error) {
	return conv.IntToUint16(l.Count())
}

// LowerBound returns the index of the first key >= k, or Count() if none.
func (l *Leaf[K, V]) LowerBound(k K) int {
	lower, upper := 0, len(l.Keys)
	for lower < upper {
		mid := lower + (upper-lower)/2
		if l.Keys[mid] < k {
			lower = mid + 1
		} else {
			upper = mid
		}
	}
	return lower
}

// Get returns the payload for k and whether it was found.
func (l *Leaf[K, V]) Get(k K) (V, bool) {
	pos := l.LowerBound(k)
	if pos < len(l.Keys) && l.Keys[pos] == k {
		return l.Payloads[pos], true
	}
	var zero V
	return zero, false
}

// Insert upserts (k, v): overwrites the payload if k is already present,
// otherwise shifts entries right to make room. Precondition: if k is not
// already present, Count() < cap(Keys) (callers split full leaves first).
func (l *Leaf[K, V]) Insert(k K, v V) {
	pos := l.LowerBound(k)
	if pos < len(l.Keys) && l.Keys[pos] == k {
		l.Payloads[pos] = v
		return
	}
	if len(l.Keys) >= cap(l.Keys) {
		panic("node: leaf insert called on a full leaf")
	}

	var zeroK K
	l.Keys = append(l.Keys, zeroK)
	copy(l.Keys[pos+1:], l.Keys[pos:len(l.Keys)-1])
	l.Keys[pos] = k

	var zeroV V
	l.Payloads = append(l.Payloads, zeroV)
	copy(l.Payloads[pos+1:], l.Payloads[pos:len(l.Payloads)-1])
	l.Payloads[pos] = v
}

// Split moves the right half of the leaf's entries into a freshly allocated
// leaf, returning it along with the separator key — the largest key that
// remains in the left (receiver) half.
func (l *Leaf[K, V]) Split() (*Leaf[K, V], K) {
	count := len(l.Keys)
	m := count - count/2
	keep := count - m

	right := NewLeaf[K, V]()
	right.Keys = append(right.Keys, l.Keys[keep:]...)
	right.Payloads = append(right.Payloads, l.Payloads[keep:]...)

	l.Keys = l.Keys[:keep]
	l.Payloads = l.Payloads[:keep]

	sep := l.Keys[keep-1]
	return right, sep
}

// Clone returns a deep copy suitable for copy-on-write mutation.
func (l *Leaf[K, V]) Clone() *Leaf[K, V] {
	c := NewLeaf[K, V]()
	c.Keys = append(c.Keys, l.Keys...)
	c.Payloads = append(c.Payloads, l.Payloads...)
	return c
}
