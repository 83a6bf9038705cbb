package parser

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/chriserin/jsxgen/internal/errors"
	"github.com/chriserin/jsxgen/internal/tree"
)

// builder holds the state of one Build call.
type builder struct {
	elements []*Element
	tree     *tree.Tree[*Element]
	app      *Element
	appNode  *tree.Node[*Element]
	stack    []*tree.Node[*Element]
}

// Build wires lexed elements into a tree rooted at the config element:
//
//  1. the first <Config> tag (or a synthesized one) becomes the root
//  2. the single <App> tag becomes the root's first child
//  3. every open component tag must have a closing tag
//  4. the remaining tags are nested by walking the list with a stack
//
// Closers are checked before nesting so a missing closer is reported once
// instead of as a mismatch further down. No tree is returned on failure.
func Build(elements []*Element) (*tree.Tree[*Element], error) {
	b := &builder{elements: elements, tree: tree.New[*Element]()}
	steps := []func() error{b.installRoot, b.installApp, b.validateClosers, b.nest}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return b.tree, nil
}

func (b *builder) installRoot() error {
	var config *Element
	for _, el := range b.elements {
		if el.Category != CategoryConfig || el.Subcategory == CloseTag {
			continue
		}
		if config != nil {
			return syntaxError(el, "duplicate <%s> tag at line %d, first declared at line %d", ConfigName, el.Line, config.Line)
		}
		config = el
	}
	if config == nil {
		var err error
		if config, err = NewElement("", CategoryConfig); err != nil {
			return err
		}
	}
	root, err := b.tree.Add(config)
	if err != nil {
		return err
	}
	b.stack = append(b.stack, root)
	return nil
}

func (b *builder) installApp() error {
	for _, el := range b.elements {
		if el.Category != CategoryComponent || el.Name != AppName || el.Subcategory == CloseTag {
			continue
		}
		if b.app != nil {
			return syntaxError(el, "duplicate <%s> tag at line %d, first declared at line %d", AppName, el.Line, b.app.Line)
		}
		b.app = el
	}
	if b.app == nil {
		return errors.Newf(errors.ErrSyntax, "missing <%s> root component", AppName)
	}
	node, err := b.tree.AddAsFirstChild(b.app, b.tree.Root())
	if err != nil {
		return err
	}
	b.appNode = node
	return nil
}

func (b *builder) validateClosers() error {
	opens := map[string][]*Element{}
	closes := map[string][]*Element{}
	var order []string
	for _, el := range b.elements {
		if el.Category != CategoryComponent {
			continue
		}
		switch el.Subcategory {
		case OpenTag:
			if _, seen := opens[el.Name]; !seen {
				order = append(order, el.Name)
			}
			opens[el.Name] = append(opens[el.Name], el)
		case CloseTag:
			closes[el.Name] = append(closes[el.Name], el)
		}
	}

	for _, name := range order {
		if len(closes[name]) >= len(opens[name]) {
			continue
		}
		open := opens[name][len(closes[name])]
		msg := fmt.Sprintf("missing closing tag </%s> for <%s> at line %d", name, name, open.Line)
		if stray := unmatchedClosers(opens, closes); len(stray) > 0 {
			msg += fmt.Sprintf(" (found unmatched %s)", strings.Join(stray, ", "))
		}
		return syntaxError(open, "%s", msg)
	}
	return nil
}

func unmatchedClosers(opens, closes map[string][]*Element) []string {
	var stray []string
	for _, name := range slices.Sorted(maps.Keys(closes)) {
		cs := closes[name]
		for _, c := range cs[min(len(opens[name]), len(cs)):] {
			stray = append(stray, fmt.Sprintf("</%s> at line %d", name, c.Line))
		}
	}
	return stray
}

func (b *builder) nest() error {
	for _, el := range b.elements {
		if el.Category != CategoryComponent {
			continue
		}
		top := b.stack[len(b.stack)-1]
		switch el.Subcategory {
		case OpenTag:
			if el == b.app {
				b.stack = append(b.stack, b.appNode)
				continue
			}
			if top.Value == el {
				continue
			}
			node, err := b.tree.AddAsLastChild(el, top)
			if err != nil {
				return err
			}
			b.stack = append(b.stack, node)
		case SelfClosingTag:
			if el == b.app {
				continue
			}
			if _, err := b.tree.AddAsLastChild(el, top); err != nil {
				return err
			}
		case CloseTag:
			if len(b.stack) == 1 {
				return syntaxError(el, "unexpected closing tag </%s> at line %d", el.Name, el.Line)
			}
			b.stack = b.stack[:len(b.stack)-1]
			if top.Value.Name != el.Name {
				return syntaxError(el, "closing tag </%s> at line %d does not match <%s> opened at line %d",
					el.Name, el.Line, top.Value.Name, top.Value.Line)
			}
		}
	}
	if len(b.stack) > 1 {
		open := b.stack[len(b.stack)-1].Value
		return syntaxError(open, "unclosed tag <%s> at line %d", open.Name, open.Line)
	}
	return nil
}

func syntaxError(el *Element, format string, args ...interface{}) error {
	return errors.Newf(errors.ErrSyntax, format, args...).
		WithDetail("line", el.Line).
		WithDetail("snippet", el.Source)
}
