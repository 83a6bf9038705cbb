package generate

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/chriserin/jsxgen/internal/parser"
)

// Multiplier families and the base names used for counted instances.
const (
	baseState   = "appState"
	baseReducer = "appReducer"
	baseContext = "appContext"
	baseEffect  = "effect"
)

// Input is one generated form field.
type Input struct {
	Kind string
	Name parser.CaseName
}

func (in Input) Initial() string {
	if in.Kind == "checkbox" {
		return "false"
	}
	return "''"
}

// componentView is the template data for the app and component routines.
type componentView struct {
	Name  string
	Arrow bool

	Imports []string
	Body    []string

	States   []parser.CaseName
	Reducers []parser.CaseName
	Contexts []parser.CaseName
	Effects  []parser.CaseName
	Inputs   []Input

	Location bool
	History  bool
	Params   bool
	Map      bool
	Form     bool
	Fetch    string
	Endpoint string
}

// HasSetup reports whether any statement precedes the return.
func (v *componentView) HasSetup() bool {
	return v.Location || v.History || v.Params || v.Map || v.Form || v.Fetch != "" ||
		len(v.Contexts)+len(v.States)+len(v.Reducers)+len(v.Inputs)+len(v.Effects) > 0
}

// Submits reports whether the form handler sends its values.
func (v *componentView) Submits() bool {
	return v.Fetch != "" && v.Fetch != "GET"
}

// Payload is the object literal passed to submit.
func (v *componentView) Payload() string {
	if len(v.Inputs) == 0 {
		return "{}"
	}
	names := make([]string, len(v.Inputs))
	for i, in := range v.Inputs {
		names[i] = in.Name.Given
	}
	return "{ " + strings.Join(names, ", ") + " }"
}

// configView is the template data for the entry file.
type configView struct {
	Imports []string
	Body    []string
}

// placement locates an artifact relative to src/ so imports can be written.
type placement struct {
	toSrc      string // from the artifact's directory back to src
	toSiblings string // prefix for importing another component
}

var (
	appPlacement       = placement{toSrc: "..", toSiblings: "../components/"}
	componentPlacement = placement{toSrc: "../..", toSiblings: "../"}
)

func newComponentView(el *parser.Element, children []*parser.Element, at placement, opts Options) *componentView {
	attrs := el.Attributes
	v := &componentView{
		Name:     el.Name,
		Arrow:    opts.Arrow,
		States:   parser.CollectMultiplier(el, parser.HookState, baseState),
		Reducers: parser.CollectMultiplier(el, parser.HookReducer, baseReducer),
		Contexts: parser.CollectMultiplier(el, parser.HookContext, baseContext),
		Effects:  effects(el),
		Inputs:   inputs(el),
		Location: present(el, parser.HookLocation),
		History:  present(el, parser.HookHistory),
		Params:   present(el, parser.HookParams),
		Map:      attrs.Flag(parser.AttrMap),
		Fetch:    attrs.Value(parser.AttrFetch),
		Endpoint: "/api/" + strings.ToLower(el.Name),
	}
	v.Form = attrs.Flag(parser.AttrForm) || len(v.Inputs) > 0
	v.Imports = v.imports(el, children, at)
	v.Body = v.body(el, children)
	return v
}

func present(el *parser.Element, hook string) bool {
	return parser.FindMultiplier(el, hook, 0, hook).Count > 0
}

// effects merges useEffect groups with generic hooks[...] groups.
func effects(el *parser.Element) []parser.CaseName {
	var out []parser.CaseName
	seen := map[string]bool{}
	next := 1
	for _, family := range []string{parser.HookEffect, parser.AttrHooks} {
		for i := 0; ; i++ {
			m := parser.FindMultiplier(el, family, i, baseEffect)
			if m.Count == 0 {
				break
			}
			if m.Named {
				for _, n := range m.Names {
					if !seen[n.Given] {
						seen[n.Given] = true
						out = append(out, n)
					}
				}
				continue
			}
			// counted groups share one sequence so they never collapse
			for range m.Count {
				for seen[baseEffect+strconv.Itoa(next)] {
					next++
				}
				n := parser.NewCaseName(baseEffect + strconv.Itoa(next))
				next++
				seen[n.Given] = true
				out = append(out, n)
			}
		}
	}
	return out
}

// inputs expands the forminputs list, kinds in order of first appearance.
func inputs(el *parser.Element) []Input {
	var kinds []string
	for _, entry := range el.Attributes.List(parser.AttrFormInputs) {
		kind := entry
		if i := strings.IndexAny(entry, "*["); i >= 0 {
			kind = entry[:i]
		}
		if !slices.Contains(kinds, kind) {
			kinds = append(kinds, kind)
		}
	}

	var out []Input
	for _, kind := range kinds {
		for _, n := range parser.CollectMultiplier(el, kind, kind+"Input") {
			out = append(out, Input{Kind: kind, Name: n})
		}
	}
	return out
}

func (v *componentView) imports(el *parser.Element, children []*parser.Element, at placement) []string {
	attrs := el.Attributes

	var hooks []string
	if len(v.States) > 0 || len(v.Inputs) > 0 || v.Map || v.Fetch != "" {
		hooks = append(hooks, "useState")
	}
	if len(v.Effects) > 0 || v.Fetch == "GET" {
		hooks = append(hooks, "useEffect")
	}
	if len(v.Reducers) > 0 {
		hooks = append(hooks, "useReducer")
	}
	if len(v.Contexts) > 0 {
		hooks = append(hooks, "useContext")
	}
	react := "import React from 'react';"
	if len(hooks) > 0 {
		react = fmt.Sprintf("import React, { %s } from 'react';", strings.Join(hooks, ", "))
	}
	lines := []string{react}

	var routing []string
	for _, r := range []struct {
		on   bool
		name string
	}{
		{attrs.Flag(parser.AttrRouter), "BrowserRouter"},
		{attrs.Flag(parser.AttrLink), "Link"},
		{attrs.Flag(parser.AttrSwitch), "Switch"},
		{attrs.Flag(parser.AttrRoute), "Route"},
		{v.Location, parser.HookLocation},
		{v.History, parser.HookHistory},
		{v.Params, parser.HookParams},
	} {
		if r.on {
			routing = append(routing, r.name)
		}
	}
	if len(routing) > 0 {
		lines = append(lines, fmt.Sprintf("import { %s } from 'react-router-dom';", strings.Join(routing, ", ")))
	}
	if attrs.Flag(parser.AttrBootstrap) {
		lines = append(lines, "import { Container } from 'react-bootstrap';")
	}
	for _, c := range v.Contexts {
		lines = append(lines, fmt.Sprintf("import %s from '%s/context/%s';", c.Title, at.toSrc, c.Title))
	}
	for _, name := range uniqueNames(children) {
		lines = append(lines, fmt.Sprintf("import %s from '%s%s/%s';", name, at.toSiblings, name, name))
	}
	if imp := styleImport(el.Name, attrs.Value(parser.AttrStyle)); imp != "" {
		lines = append(lines, imp)
	}
	return lines
}

func uniqueNames(elements []*parser.Element) []string {
	var names []string
	for _, el := range elements {
		if !slices.Contains(names, el.Name) {
			names = append(names, el.Name)
		}
	}
	return names
}

func styleImport(name, style string) string {
	switch style {
	case "":
		return ""
	case "module":
		return fmt.Sprintf("import styles from './%s.module.css';", name)
	default:
		return fmt.Sprintf("import './%s.%s';", name, style)
	}
}

// styleExt is the file extension of a stylesheet for the style value.
func styleExt(style string) string {
	if style == "module" {
		return "module.css"
	}
	return style
}

func (v *componentView) body(el *parser.Element, children []*parser.Element) []string {
	attrs := el.Attributes
	var j jsx

	class := fmt.Sprintf(`className="%s"`, v.Name)
	if attrs.Value(parser.AttrStyle) == "module" {
		class = fmt.Sprintf("className={styles.%s}", v.Name)
	}
	j.open("<div " + class + ">")
	if attrs.Flag(parser.AttrBootstrap) {
		j.open("<Container>")
	}
	if attrs.Flag(parser.AttrRouter) {
		j.open("<BrowserRouter>")
	}

	if attrs.Flag(parser.AttrLink) {
		j.open("<nav>")
		if len(children) == 0 {
			j.line(`<Link to="/">Home</Link>`)
		}
		for _, name := range uniqueNames(children) {
			j.line(fmt.Sprintf(`<Link to="/%s">%s</Link>`, strings.ToLower(name), name))
		}
		j.close("</nav>")
	}

	if attrs.Flag(parser.AttrSwitch) {
		j.open("<Switch>")
	}
	for _, c := range children {
		if attrs.Flag(parser.AttrRoute) {
			j.open(fmt.Sprintf(`<Route path="/%s">`, strings.ToLower(c.Name)))
			j.line("<" + c.Name + " />")
			j.close("</Route>")
			continue
		}
		j.line("<" + c.Name + " />")
	}
	if attrs.Flag(parser.AttrSwitch) {
		j.close("</Switch>")
	}

	if v.Map {
		j.open("<ul>")
		j.open("{items.map((item, index) => (")
		j.line("<li key={index}>{String(item)}</li>")
		j.close("))}")
		j.close("</ul>")
	}
	if v.Fetch == "GET" {
		j.line("{data && <pre>{JSON.stringify(data, null, 2)}</pre>}")
	}
	if v.Form {
		j.open("<form onSubmit={handleSubmit}>")
		for _, in := range v.Inputs {
			formField(&j, in)
		}
		j.line(`<button type="submit">Submit</button>`)
		j.close("</form>")
	}

	if j.depth == 1 && len(j.lines) == 1 {
		j.line(v.Name)
	}
	if attrs.Flag(parser.AttrRouter) {
		j.close("</BrowserRouter>")
	}
	if attrs.Flag(parser.AttrBootstrap) {
		j.close("</Container>")
	}
	j.close("</div>")
	return j.lines
}

func formField(j *jsx, in Input) {
	name, setter := in.Name.Given, "set"+in.Name.Title
	change := fmt.Sprintf("onChange={(event) => %s(event.target.value)}", setter)
	switch in.Kind {
	case "checkbox":
		j.line(fmt.Sprintf(`<input type="checkbox" name="%s" checked={%s} onChange={(event) => %s(event.target.checked)} />`, name, name, setter))
	case "textarea":
		j.line(fmt.Sprintf(`<textarea name="%s" value={%s} %s />`, name, name, change))
	case "select":
		j.open(fmt.Sprintf(`<select name="%s" value={%s} %s>`, name, name, change))
		j.line(`<option value="">Select</option>`)
		j.close("</select>")
	default:
		j.line(fmt.Sprintf(`<input type="%s" name="%s" value={%s} %s />`, in.Kind, name, name, change))
	}
}

func newConfigView(el *parser.Element, providers []parser.CaseName) *configView {
	attrs := el.Attributes
	v := &configView{}

	if attrs.Flag(parser.AttrBootstrap) {
		v.Imports = append(v.Imports, "import 'bootstrap/dist/css/bootstrap.min.css';")
	}
	if attrs.Flag(parser.AttrRouter) {
		v.Imports = append(v.Imports, "import { BrowserRouter } from 'react-router-dom';")
	}
	for _, p := range providers {
		v.Imports = append(v.Imports, fmt.Sprintf("import %s from './context/%s';", p.Title, p.Title))
	}
	if style := attrs.Value(parser.AttrStyle); style != "" {
		v.Imports = append(v.Imports, fmt.Sprintf("import './index.%s';", styleExt(style)))
	}

	var j jsx
	j.open("<React.StrictMode>")
	if attrs.Flag(parser.AttrRouter) {
		j.open("<BrowserRouter>")
	}
	for _, p := range providers {
		j.open(fmt.Sprintf("<%s.Provider value={null}>", p.Title))
	}
	j.line("<App />")
	for _, p := range slices.Backward(providers) {
		j.close(fmt.Sprintf("</%s.Provider>", p.Title))
	}
	if attrs.Flag(parser.AttrRouter) {
		j.close("</BrowserRouter>")
	}
	j.close("</React.StrictMode>,")
	v.Body = j.lines
	return v
}
