package parser

import (
	"github.com/chriserin/jsxgen/internal/tree"
)

// Parse lexes src, resolves each tag into an element and builds the
// component tree. Each call returns a fresh tree; nothing is returned on error.
func Parse(src string) (*tree.Tree[*Element], error) {
	elements, err := ParseElements(src)
	if err != nil {
		return nil, err
	}
	return Build(elements)
}

// ParseElements returns the resolved elements of src in document order.
func ParseElements(src string) ([]*Element, error) {
	tags, err := Lex(src)
	if err != nil {
		return nil, err
	}
	elements := make([]*Element, 0, len(tags))
	for _, tag := range tags {
		el, err := Resolve(tag)
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
	}
	return elements, nil
}
