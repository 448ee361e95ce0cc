package node

import (
	"testing"

	"github.com/hupe1980/mvbtree/internal/mvlayer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func markerLeaf(tag int) *Node[int, int] {
	l := NewLeaf[int, int]()
	l.Insert(tag, tag)
	return WrapLeaf(l)
}

func markerTag(n *Node[int, int]) int {
	return n.Leaf.Keys[0]
}

func newSlot(v *Node[int, int]) mvlayer.Slot[Node[int, int]] {
	var s mvlayer.Slot[Node[int, int]]
	s.Store(v)
	return s
}

func TestInner_LowerBound(t *testing.T) {
	in := NewInner[int, int]()
	in.Keys = append(in.Keys, 10, 20, 30)
	assert.Equal(t, 0, in.LowerBound(5))
	assert.Equal(t, 0, in.LowerBound(10))
	assert.Equal(t, 1, in.LowerBound(15))
	assert.Equal(t, 3, in.LowerBound(31))
}

func TestInner_InsertFirstSeparator(t *testing.T) {
	in := NewInner[int, int]()
	left := markerLeaf(1)
	in.Children = append(in.Children, newSlot(left))

	right := markerLeaf(2)
	in.Insert(100, right)

	require.Equal(t, 1, in.Count())
	assert.Equal(t, 100, in.Keys[0])
	assert.Equal(t, left, in.Children[0].Load())
	assert.Equal(t, right, in.Children[1].Load())
}

func TestInner_InsertMiddlePreservesNeighbors(t *testing.T) {
	in := NewInner[int, int]()
	c0 := markerLeaf(0)
	c1 := markerLeaf(1)
	c2 := markerLeaf(2)
	in.Children = append(in.Children, newSlot(c0), newSlot(c1), newSlot(c2))
	in.Keys = append(in.Keys, 10, 20)

	newChild := markerLeaf(99)
	in.Insert(15, newChild)

	require.Equal(t, 3, in.Count())
	assert.Equal(t, []int{10, 15, 20}, in.Keys)
	assert.Equal(t, c0, in.Children[0].Load())
	assert.Equal(t, c1, in.Children[1].Load())
	assert.Equal(t, newChild, in.Children[2].Load())
	assert.Equal(t, c2, in.Children[3].Load())
}

func TestInner_SplitAccountsForAllKeysAndChildren(t *testing.T) {
	in := NewInner[int, int]()
	max := cap(in.Keys)
	in.Children = append(in.Children, newSlot(markerLeaf(-1)))
	for i := 0; i < max; i++ {
		in.Insert((i+1)*10, markerLeaf(i))
	}
	require.True(t, in.IsFull())

	oldCount := in.Count()
	oldChildren := oldCount + 1

	right, sep := in.Split()

	assert.Equal(t, oldCount, in.Count()+right.Count()+1, "one key (sep) is dropped")
	assert.Equal(t, oldChildren, len(in.Children)+len(right.Children))
	for _, k := range in.Keys {
		assert.Less(t, k, sep)
	}
	for _, k := range right.Keys {
		assert.Greater(t, k, sep)
	}
}

func TestInner_Clone(t *testing.T) {
	in := NewInner[int, int]()
	in.Children = append(in.Children, newSlot(markerLeaf(1)))
	in.Insert(10, markerLeaf(2))

	c := in.Clone()
	c.Insert(20, markerLeaf(3))

	assert.Equal(t, 1, in.Count(), "mutating the clone must not affect the original")
	assert.Equal(t, 2, c.Count())
	assert.Equal(t, 1, markerTag(in.Children[0].Load()))
}
