// Package node implements the B-tree's two node kinds, expressed as a
// tagged variant (Node) with two arms discriminated by the header's kind
// field, following the page layout defined in internal/page.
//
// Leaf and Inner are plain values: all mutation happens on a private,
// not-yet-published clone (see Leaf.Clone / Inner.Clone). Once a node is
// reachable from a published mvlayer.Slot, callers must treat it as
// immutable — the only field inside Inner that tolerates further mutation
// after publication is a child Slot itself, which is designed for exactly
// that.
package node
