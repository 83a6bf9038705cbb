// Package tree provides an ordered n-ary tree whose traversals fail fast
// when the tree is structurally modified underneath them.
package tree

import (
	"slices"

	"github.com/chriserin/jsxgen/internal/errors"
)

// Node holds a value and its ordered children. Nodes are created by Tree
// methods only; a node removed from its tree can no longer be used as a parent.
type Node[T comparable] struct {
	Value    T
	children []*Node[T]
	tree     *Tree[T]
}

// Children returns a copy of the node's child list.
func (n *Node[T]) Children() []*Node[T] {
	return slices.Clone(n.children)
}

// ChildCount returns the number of direct children.
func (n *Node[T]) ChildCount() int {
	return len(n.children)
}

// Child returns the i-th child or nil when i is out of range.
func (n *Node[T]) Child(i int) *Node[T] {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

func (n *Node[T]) IsLeaf() bool {
	return len(n.children) == 0
}

// Tree is an ordered n-ary tree. The zero value is not usable; call New.
type Tree[T comparable] struct {
	root    *Node[T]
	count   int
	version uint64
}

func New[T comparable]() *Tree[T] {
	return &Tree[T]{}
}

// Root returns the root node, or nil for an empty tree.
func (t *Tree[T]) Root() *Node[T] {
	return t.root
}

// Version returns the structural version. It changes on every insert, remove and clear.
func (t *Tree[T]) Version() uint64 {
	return t.version
}

func isZero[T comparable](v T) bool {
	var zero T
	return v == zero
}

func (t *Tree[T]) newNode(v T) *Node[T] {
	return &Node[T]{Value: v, tree: t}
}

// Add creates the root when the tree is empty, otherwise appends v as the
// last child of the root.
func (t *Tree[T]) Add(v T) (*Node[T], error) {
	if isZero(v) {
		return nil, errors.New(errors.ErrInvalidArgument, "cannot add an absent value")
	}
	if t.root == nil {
		t.root = t.newNode(v)
		t.count = 1
		t.version++
		return t.root, nil
	}
	return t.insert(v, t.root, len(t.root.children))
}

func (t *Tree[T]) AddAsFirstChild(v T, parent *Node[T]) (*Node[T], error) {
	if err := t.checkInsert(v, parent); err != nil {
		return nil, err
	}
	return t.insert(v, parent, 0)
}

func (t *Tree[T]) AddAsLastChild(v T, parent *Node[T]) (*Node[T], error) {
	if err := t.checkInsert(v, parent); err != nil {
		return nil, err
	}
	return t.insert(v, parent, len(parent.children))
}

// AddAtPosition inserts v at the 0-indexed position within parent's children.
// Valid positions are 0 through parent.ChildCount() inclusive.
func (t *Tree[T]) AddAtPosition(v T, parent *Node[T], position int) (*Node[T], error) {
	if err := t.checkInsert(v, parent); err != nil {
		return nil, err
	}
	return t.insert(v, parent, position)
}

func (t *Tree[T]) checkInsert(v T, parent *Node[T]) error {
	if isZero(v) {
		return errors.New(errors.ErrInvalidArgument, "cannot add an absent value")
	}
	if parent == nil || parent.tree != t {
		return errors.New(errors.ErrInvalidArgument, "parent is not a node of this tree")
	}
	return nil
}

func (t *Tree[T]) insert(v T, parent *Node[T], position int) (*Node[T], error) {
	if position < 0 || position > len(parent.children) {
		return nil, errors.Newf(errors.ErrRange, "position %d outside [0, %d]", position, len(parent.children))
	}
	n := t.newNode(v)
	parent.children = slices.Insert(parent.children, position, n)
	t.count++
	t.version++
	return n, nil
}

// Clear discards every node.
func (t *Tree[T]) Clear() {
	if t.root != nil {
		detach(t.root)
	}
	t.root = nil
	t.count = 0
	t.version++
}

func detach[T comparable](n *Node[T]) {
	for _, c := range n.children {
		detach(c)
	}
	n.tree = nil
}

// Contains reports whether v is stored under from (or anywhere when from is nil).
func (t *Tree[T]) Contains(v T, from *Node[T]) (bool, error) {
	n, err := t.GetNode(v, from)
	return n != nil, err
}

// Get returns the first stored value equal to v in level order.
func (t *Tree[T]) Get(v T, from *Node[T]) (T, bool, error) {
	n, err := t.GetNode(v, from)
	if n == nil {
		var zero T
		return zero, false, err
	}
	return n.Value, true, nil
}

// GetNode returns the first node holding v in level order, or nil.
func (t *Tree[T]) GetNode(v T, from *Node[T]) (*Node[T], error) {
	if isZero(v) {
		return nil, errors.New(errors.ErrInvalidArgument, "cannot search for an absent value")
	}
	return t.GetNodeBy(func(candidate T) bool { return candidate == v }, from)
}

// GetBy returns the first value in level order for which match returns true.
func (t *Tree[T]) GetBy(match func(T) bool, from *Node[T]) (T, bool, error) {
	n, err := t.GetNodeBy(match, from)
	if n == nil {
		var zero T
		return zero, false, err
	}
	return n.Value, true, nil
}

// GetNodeBy returns the first node in level order whose value satisfies match, or nil.
func (t *Tree[T]) GetNodeBy(match func(T) bool, from *Node[T]) (*Node[T], error) {
	if match == nil {
		return nil, errors.New(errors.ErrInvalidArgument, "cannot search without a predicate")
	}
	start, err := t.start(from)
	if err != nil || start == nil {
		return nil, err
	}
	queue := []*Node[T]{start}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if match(n.Value) {
			return n, nil
		}
		queue = append(queue, n.children...)
	}
	return nil, nil
}

func (t *Tree[T]) start(from *Node[T]) (*Node[T], error) {
	if from == nil {
		return t.root, nil
	}
	if from.tree != t {
		return nil, errors.New(errors.ErrInvalidArgument, "search root is not a node of this tree")
	}
	return from, nil
}

// parentOf returns target's parent and target's index in the parent's child list.
func (t *Tree[T]) parentOf(target *Node[T]) (*Node[T], int) {
	if t.root == nil {
		return nil, -1
	}
	queue := []*Node[T]{t.root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for i, c := range n.children {
			if c == target {
				return n, i
			}
		}
		queue = append(queue, n.children...)
	}
	return nil, -1
}

// RemoveRoot removes the root and promotes its first child. The old root's
// other children are appended after the promoted node's own children.
// A childless root leaves the tree empty.
func (t *Tree[T]) RemoveRoot() error {
	if t.root == nil {
		return errors.New(errors.ErrReference, "cannot remove the root of an empty tree")
	}
	old := t.root
	if len(old.children) == 0 {
		t.Clear()
		return nil
	}
	promoted := old.children[0]
	promoted.children = append(promoted.children, old.children[1:]...)
	t.root = promoted
	old.children = nil
	old.tree = nil
	t.count--
	t.version++
	return nil
}

// Remove removes the first node holding v, searching from from (or the root).
// See RemoveNode.
func (t *Tree[T]) Remove(v T, from *Node[T]) error {
	n, err := t.GetNode(v, from)
	if err != nil {
		return err
	}
	if n == nil {
		return errors.Newf(errors.ErrReference, "value %v not found", v)
	}
	return t.RemoveNode(n)
}

// RemoveNode removes n only. Its children take its place in its parent's
// child list, in order. Removing the root behaves like RemoveRoot.
func (t *Tree[T]) RemoveNode(n *Node[T]) error {
	if n == nil || n.tree != t {
		return errors.New(errors.ErrReference, "node not found in tree")
	}
	if n == t.root {
		return t.RemoveRoot()
	}
	parent, idx := t.parentOf(n)
	if parent == nil {
		return errors.New(errors.ErrReference, "node not found in tree")
	}
	parent.children = slices.Replace(parent.children, idx, idx+1, n.children...)
	n.children = nil
	n.tree = nil
	t.count--
	t.version++
	return nil
}

// RemoveSubtree removes the first node holding v together with all of its descendants.
func (t *Tree[T]) RemoveSubtree(v T, from *Node[T]) error {
	n, err := t.GetNode(v, from)
	if err != nil {
		return err
	}
	if n == nil {
		return errors.Newf(errors.ErrReference, "value %v not found", v)
	}
	return t.RemoveSubtreeNode(n)
}

// RemoveSubtreeNode removes n and all of its descendants. Removing the root clears the tree.
func (t *Tree[T]) RemoveSubtreeNode(n *Node[T]) error {
	if n == nil || n.tree != t {
		return errors.New(errors.ErrReference, "node not found in tree")
	}
	if n == t.root {
		t.Clear()
		return nil
	}
	parent, idx := t.parentOf(n)
	if parent == nil {
		return errors.New(errors.ErrReference, "node not found in tree")
	}
	removed := size(n)
	parent.children = slices.Delete(parent.children, idx, idx+1)
	detach(n)
	t.count -= removed
	t.version++
	return nil
}

// Size returns the number of nodes in the tree, or in the subtree rooted at n.
func (t *Tree[T]) Size(n *Node[T]) int {
	if n == nil {
		return t.count
	}
	if n.tree != t {
		return 0
	}
	return size(n)
}

func size[T comparable](n *Node[T]) int {
	total := 1
	for _, c := range n.children {
		total += size(c)
	}
	return total
}

// Height returns the number of nodes on the longest root-to-leaf path of
// the tree, or of the subtree rooted at n. An empty tree has height 0 and a
// leaf has height 1.
func (t *Tree[T]) Height(n *Node[T]) int {
	if n == nil {
		n = t.root
	}
	if n == nil || n.tree != t {
		return 0
	}
	return height(n)
}

func height[T comparable](n *Node[T]) int {
	deepest := 0
	for _, c := range n.children {
		deepest = max(deepest, height(c))
	}
	return deepest + 1
}

// Values returns every value in level order.
func (t *Tree[T]) Values() []T {
	var out []T
	it := t.LevelOrder(nil)
	for it.Next() {
		out = append(out, it.Node().Value)
	}
	return out
}
