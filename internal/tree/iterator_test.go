package tree

import (
	"testing"

	"github.com/chriserin/jsxgen/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(it *Iterator[string]) ([]string, error) {
	var out []string
	for it.Next() {
		out = append(out, it.Node().Value)
	}
	return out, it.Err()
}

func TestLevelOrder(t *testing.T) {
	tr := sample(t)
	got, err := collect(tr.LevelOrder(nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, got)
}

func TestLevelOrder_FromSubtree(t *testing.T) {
	tr := sample(t)
	b, _ := tr.GetNode("b", nil)
	got, err := collect(tr.LevelOrder(b))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "e", "f"}, got)
}

func TestPreOrder(t *testing.T) {
	tr := sample(t)
	got, err := collect(tr.PreOrder(nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "e", "f", "c", "d"}, got)
}

func TestPreOrder_DeepTreeNoFalseStaleness(t *testing.T) {
	tr := New[string]()
	parent, err := tr.Add("n0")
	require.NoError(t, err)
	for _, v := range []string{"n1", "n2", "n3", "n4", "n5"} {
		parent, err = tr.AddAsLastChild(v, parent)
		require.NoError(t, err)
	}

	got, err := collect(tr.PreOrder(nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"n0", "n1", "n2", "n3", "n4", "n5"}, got)
}

func TestIterator_EmptyTree(t *testing.T) {
	tr := New[string]()
	got, err := collect(tr.LevelOrder(nil))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestIterator_ForeignStartNode(t *testing.T) {
	tr := sample(t)
	other := New[string]()
	foreign, _ := other.Add("x")

	_, err := collect(tr.LevelOrder(foreign))
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidArgument))
}

func TestLevelOrder_MutationDuringTraversalFails(t *testing.T) {
	mutations := map[string]func(tr *Tree[string]){
		"add":            func(tr *Tree[string]) { _, _ = tr.Add("z") },
		"add first":      func(tr *Tree[string]) { _, _ = tr.AddAsFirstChild("z", tr.Root()) },
		"remove":         func(tr *Tree[string]) { _ = tr.Remove("d", nil) },
		"remove subtree": func(tr *Tree[string]) { _ = tr.RemoveSubtree("b", nil) },
		"remove root":    func(tr *Tree[string]) { _ = tr.RemoveRoot() },
		"clear":          func(tr *Tree[string]) { tr.Clear() },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			tr := sample(t)
			it := tr.LevelOrder(nil)
			require.True(t, it.Next())

			mutate(tr)

			assert.False(t, it.Next())
			assert.Nil(t, it.Node())
			assert.True(t, errors.IsErrorCode(it.Err(), errors.ErrReference))
			assert.False(t, it.Next(), "a failed iterator stays failed")
		})
	}
}

func TestPreOrder_MutationDuringTraversalFails(t *testing.T) {
	tr := sample(t)
	it := tr.PreOrder(nil)
	require.True(t, it.Next())
	require.True(t, it.Next())

	_, err := tr.AddAsLastChild("z", it.Node())
	require.NoError(t, err)

	assert.False(t, it.Next())
	assert.True(t, errors.IsErrorCode(it.Err(), errors.ErrReference))
}

func TestIterator_FailedMutationDoesNotInvalidate(t *testing.T) {
	tr := sample(t)
	it := tr.LevelOrder(nil)
	require.True(t, it.Next())

	_, err := tr.AddAtPosition("z", tr.Root(), 99)
	require.Error(t, err)

	got, err := collect(it)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "d", "e", "f"}, got)
}

func TestAll_RangeOverFunc(t *testing.T) {
	tr := sample(t)
	var got []string
	for n, err := range tr.LevelOrder(nil).All() {
		require.NoError(t, err)
		got = append(got, n.Value)
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, got)
}

func TestAll_YieldsStaleError(t *testing.T) {
	tr := sample(t)
	var sawErr error
	for n, err := range tr.LevelOrder(nil).All() {
		if err != nil {
			sawErr = err
			break
		}
		if n.Value == "b" {
			_, _ = tr.Add("z")
		}
	}
	assert.True(t, errors.IsErrorCode(sawErr, errors.ErrReference))
}
