package parser

import (
	"github.com/chriserin/jsxgen/internal/tree"
)

// Outline is the serializable view of a parsed tree.
type Outline struct {
	Root  *OutlineNode `yaml:"root"`
	Size  int          `yaml:"size"`
	Depth int          `yaml:"depth"`
}

// OutlineNode mirrors one tree node.
type OutlineNode struct {
	Name       string            `yaml:"name"`
	Kind       Kind              `yaml:"kind"`
	Line       int               `yaml:"line,omitempty"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
	Children   []*OutlineNode    `yaml:"children,omitempty"`
}

// Transform converts a parsed tree into an Outline.
func Transform(t *tree.Tree[*Element]) (*Outline, error) {
	out := &Outline{Size: t.Size(nil), Depth: t.Height(nil)}
	mirrors := map[*tree.Node[*Element]]*OutlineNode{}

	it := t.LevelOrder(nil)
	for it.Next() {
		n := it.Node()
		on, ok := mirrors[n]
		if !ok {
			on = outlineNode(n.Value)
			out.Root = on
		}
		for _, c := range n.Children() {
			child := outlineNode(c.Value)
			mirrors[c] = child
			on.Children = append(on.Children, child)
		}
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func outlineNode(el *Element) *OutlineNode {
	on := &OutlineNode{
		Name: el.Name,
		Kind: el.Kind(),
		Line: el.Line,
	}
	if el.Attributes.Len() > 0 {
		on.Attributes = el.Attributes.Map()
	}
	return on
}
