package node

import (
	"cmp"

	"github.com/hupe1980/mvbtree/internal/page"
)

// Node is the tagged union every slot in the tree points to: either a Leaf
// or an Inner, discriminated by Kind.
type Node[K cmp.Ordered, V any] struct {
	Kind  page.Kind
	Leaf  *Leaf[K, V]
	Inner *Inner[K, V]
}

// WrapLeaf boxes a Leaf as a Node.
func WrapLeaf[K cmp.Ordered, V any](l *Leaf[K, V]) *Node[K, V] {
	return &Node[K, V]{Kind: page.KindLeaf, Leaf: l}
}

// WrapInner boxes an Inner as a Node.
func WrapInner[K cmp.Ordered, V any](in *Inner[K, V]) *Node[K, V] {
	return &Node[K, V]{Kind: page.KindInner, Inner: in}
}

// IsLeaf reports whether the node is a leaf.
func (n *Node[K, V]) IsLeaf() bool {
	return n.Kind == page.KindLeaf
}
