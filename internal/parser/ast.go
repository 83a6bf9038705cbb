package parser

import (
	"strconv"
	"strings"

	"github.com/chriserin/jsxgen/internal/errors"
)

// Reserved element names.
const (
	ConfigName = "Config"
	AppName    = "App"
)

type Category string

const (
	CategoryConfig    Category = "config"
	CategoryComponent Category = "component"
)

type Subcategory string

const (
	Unclassified   Subcategory = ""
	OpenTag        Subcategory = "opentag"
	CloseTag       Subcategory = "closetag"
	SelfClosingTag Subcategory = "selfclosingtag"
)

// Kind selects the artifact a tree node turns into.
type Kind string

const (
	KindConfig    Kind = "config"
	KindApp       Kind = "app"
	KindComponent Kind = "component"
)

// Element is one tag occurrence. Close tags keep their name without the
// leading slash; Subcategory records closure.
type Element struct {
	Name        string
	Category    Category
	Subcategory Subcategory
	Attributes  *Attributes
	Line        int    // 1-based line of the tag, 0 when synthesized
	Source      string // raw tag text as written
}

// NewElement creates an element with empty attributes. Only config
// elements may have an empty name; the builder synthesizes one when the
// document has no <Config> tag.
func NewElement(name string, category Category) (*Element, error) {
	switch category {
	case CategoryConfig:
	case CategoryComponent:
		if name == "" {
			return nil, errors.New(errors.ErrInvalidArgument, "component element requires a name")
		}
	default:
		return nil, errors.Newf(errors.ErrInvalidArgument, "unknown element category %q", category)
	}
	return &Element{
		Name:       name,
		Category:   category,
		Attributes: NewAttributes(),
	}, nil
}

func (e *Element) Kind() Kind {
	switch {
	case e.Category == CategoryConfig:
		return KindConfig
	case e.Name == AppName:
		return KindApp
	default:
		return KindComponent
	}
}

func (e *Element) String() string {
	switch e.Subcategory {
	case CloseTag:
		return "</" + e.Name + ">"
	case SelfClosingTag:
		return "<" + e.Name + "/>"
	default:
		return "<" + e.Name + ">"
	}
}

// ByAttribute returns a predicate matching elements whose attribute key has
// the given string form ("true" for set flags).
func ByAttribute(key, value string) func(*Element) bool {
	return func(e *Element) bool {
		a, ok := e.Attributes.Get(key)
		return ok && a.String() == value
	}
}

// ByName returns a predicate matching elements with the given name.
func ByName(name string) func(*Element) bool {
	return func(e *Element) bool { return e.Name == name }
}

type AttrKind int

const (
	FlagAttr AttrKind = iota + 1
	ValueAttr
	ListAttr
)

// Attribute is a tagged value: Flag for FlagAttr, Value for ValueAttr,
// Items for ListAttr.
type Attribute struct {
	Key   string
	Kind  AttrKind
	Flag  bool
	Value string
	Items []string
}

func (a Attribute) String() string {
	switch a.Kind {
	case FlagAttr:
		return strconv.FormatBool(a.Flag)
	case ListAttr:
		return strings.Join(a.Items, ",")
	default:
		return a.Value
	}
}

// Attributes is an insertion-ordered set of recognized attributes. Extra
// holds key=value tokens outside the vocabulary.
type Attributes struct {
	keys   []string
	values map[string]Attribute
	Extra  map[string]string
}

func NewAttributes() *Attributes {
	return &Attributes{
		values: make(map[string]Attribute),
		Extra:  make(map[string]string),
	}
}

func (a *Attributes) Len() int {
	return len(a.keys)
}

func (a *Attributes) Keys() []string {
	return append([]string(nil), a.keys...)
}

func (a *Attributes) Get(key string) (Attribute, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Set stores attr under attr.Key. An existing key keeps its position.
func (a *Attributes) Set(attr Attribute) {
	if _, ok := a.values[attr.Key]; !ok {
		a.keys = append(a.keys, attr.Key)
	}
	a.values[attr.Key] = attr
}

func (a *Attributes) SetFlag(key string) {
	a.Set(Attribute{Key: key, Kind: FlagAttr, Flag: true})
}

func (a *Attributes) SetValue(key, value string) {
	a.Set(Attribute{Key: key, Kind: ValueAttr, Value: value})
}

// Append adds item to the list attribute key, creating it if needed.
func (a *Attributes) Append(key, item string) {
	existing, ok := a.values[key]
	if !ok || existing.Kind != ListAttr {
		a.Set(Attribute{Key: key, Kind: ListAttr, Items: []string{item}})
		return
	}
	existing.Items = append(existing.Items, item)
	a.values[key] = existing
}

func (a *Attributes) Flag(key string) bool {
	v, ok := a.values[key]
	return ok && v.Kind == FlagAttr && v.Flag
}

func (a *Attributes) Value(key string) string {
	v, ok := a.values[key]
	if !ok || v.Kind != ValueAttr {
		return ""
	}
	return v.Value
}

func (a *Attributes) List(key string) []string {
	v, ok := a.values[key]
	if !ok || v.Kind != ListAttr {
		return nil
	}
	return append([]string(nil), v.Items...)
}

// All returns the attributes in insertion order.
func (a *Attributes) All() []Attribute {
	out := make([]Attribute, 0, len(a.keys))
	for _, k := range a.keys {
		out = append(out, a.values[k])
	}
	return out
}

// Map returns the string form of every attribute keyed by name.
func (a *Attributes) Map() map[string]string {
	out := make(map[string]string, len(a.keys))
	for _, k := range a.keys {
		out[k] = a.values[k].String()
	}
	return out
}
