package tree

import (
	"iter"

	"github.com/chriserin/jsxgen/internal/errors"
)

type order int

const (
	levelOrder order = iota
	preOrder
)

// Iterator is a one-shot traversal. It records the tree version when it is
// created and stops with a REFERENCE error on the first pull after the tree
// has been structurally modified.
//
//	it := t.LevelOrder(nil)
//	for it.Next() {
//		n := it.Node()
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
type Iterator[T comparable] struct {
	tree    *Tree[T]
	version uint64
	order   order
	pending []*Node[T]
	current *Node[T]
	err     error
}

// LevelOrder returns a breadth-first iterator over the tree, or over the
// subtree rooted at from.
func (t *Tree[T]) LevelOrder(from *Node[T]) *Iterator[T] {
	return t.iterator(from, levelOrder)
}

// PreOrder returns a depth-first iterator visiting parents before children.
func (t *Tree[T]) PreOrder(from *Node[T]) *Iterator[T] {
	return t.iterator(from, preOrder)
}

func (t *Tree[T]) iterator(from *Node[T], o order) *Iterator[T] {
	it := &Iterator[T]{tree: t, version: t.version, order: o}
	start, err := t.start(from)
	if err != nil {
		it.err = err
		return it
	}
	if start != nil {
		it.pending = []*Node[T]{start}
	}
	return it
}

// Next advances to the next node. It returns false when the traversal is
// exhausted or has failed; check Err afterwards.
func (it *Iterator[T]) Next() bool {
	if it.err != nil {
		it.current = nil
		return false
	}
	if it.tree.version != it.version {
		it.err = errors.Newf(errors.ErrReference,
			"tree modified during traversal (version %d, now %d)", it.version, it.tree.version)
		it.current = nil
		it.pending = nil
		return false
	}
	if len(it.pending) == 0 {
		it.current = nil
		return false
	}

	var n *Node[T]
	switch it.order {
	case levelOrder:
		n = it.pending[0]
		it.pending = append(it.pending[1:], n.children...)
	case preOrder:
		last := len(it.pending) - 1
		n = it.pending[last]
		it.pending = it.pending[:last]
		for i := len(n.children) - 1; i >= 0; i-- {
			it.pending = append(it.pending, n.children[i])
		}
	}
	it.current = n
	return true
}

// Node returns the node produced by the last successful call to Next.
func (it *Iterator[T]) Node() *Node[T] {
	return it.current
}

func (it *Iterator[T]) Err() error {
	return it.err
}

// All adapts the iterator to a range-over-func sequence. A failure is
// yielded once as a nil node with a non-nil error.
func (it *Iterator[T]) All() iter.Seq2[*Node[T], error] {
	return func(yield func(*Node[T], error) bool) {
		for it.Next() {
			if !yield(it.current, nil) {
				return
			}
		}
		if it.err != nil {
			yield(nil, it.err)
		}
	}
}
