package parser

import (
	"regexp"
	"strings"
)

// Canonical attribute keys.
const (
	AttrBootstrap  = "bootstrap"
	AttrRouter     = "router"
	AttrLink       = "link"
	AttrSwitch     = "switch"
	AttrRoute      = "route"
	AttrMap        = "map"
	AttrForm       = "form"
	AttrFetch      = "fetch"
	AttrStyle      = "style"
	AttrFormInputs = "forminputs"
	AttrHooks      = "hooks"
	AttrContext    = "context"
)

// Hook names as written in generated code.
const (
	HookEffect   = "useEffect"
	HookState    = "useState"
	HookReducer  = "useReducer"
	HookContext  = "useContext"
	HookLocation = "useLocation"
	HookHistory  = "useHistory"
	HookParams   = "useParams"
)

var hookNames = map[string]string{
	"useeffect":   HookEffect,
	"usestate":    HookState,
	"usereducer":  HookReducer,
	"usecontext":  HookContext,
	"uselocation": HookLocation,
	"usehistory":  HookHistory,
	"useparams":   HookParams,
}

// InputKinds are the form field kinds accepted after a forminput prefix.
var InputKinds = []string{"text", "email", "password", "number", "checkbox", "radio", "textarea", "select", "date"}

// FetchMethods are the enumerated values of the fetch attribute.
var FetchMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE"}

// flagSpellings maps a folded spelling (lowercase, no - or _) to its key.
var flagSpellings = map[string]string{
	"bootstrap":      AttrBootstrap,
	"reactbootstrap": AttrBootstrap,
	"rb":             AttrBootstrap,
	"router":         AttrRouter,
	"reactrouter":    AttrRouter,
	"browserrouter":  AttrRouter,
	"link":           AttrLink,
	"links":          AttrLink,
	"switch":         AttrSwitch,
	"routesswitch":   AttrSwitch,
	"route":          AttrRoute,
	"routes":         AttrRoute,
	"map":            AttrMap,
	"list":           AttrMap,
	"maplist":        AttrMap,
	"form":           AttrForm,
	"forms":          AttrForm,
}

const multiplierSuffix = `(\*[1-9]\d?|\[[^\]]*\])?`

// rule resolves one family of value or list tokens. build turns the
// regexp submatches into the stored value or list entry.
type rule struct {
	key     string
	kind    AttrKind
	pattern *regexp.Regexp
	build   func(m []string) string
}

var rules = []rule{
	{
		key:     AttrHooks,
		kind:    ListAttr,
		pattern: regexp.MustCompile(`(?i)^(use(?:effect|state|reducer|context|location|history|params))` + multiplierSuffix + `$`),
		build:   func(m []string) string { return hookNames[strings.ToLower(m[1])] + m[2] },
	},
	{
		key:     AttrHooks,
		kind:    ListAttr,
		pattern: regexp.MustCompile(`(?i)^hooks(\*[1-9]\d?|\[[^\]]*\])$`),
		build:   func(m []string) string { return "hooks" + m[1] },
	},
	{
		key:     AttrFormInputs,
		kind:    ListAttr,
		pattern: regexp.MustCompile(`(?i)^(?:form[-_]?inputs?|inputs?)[-_:]?(` + strings.Join(InputKinds, "|") + `)` + multiplierSuffix + `$`),
		build:   func(m []string) string { return strings.ToLower(m[1]) + m[2] },
	},
	{
		key:     AttrFormInputs,
		kind:    ListAttr,
		pattern: regexp.MustCompile(`(?i)^form[-_]?inputs?` + multiplierSuffix + `$`),
		build:   func(m []string) string { return "text" + m[1] },
	},
	{
		key:     AttrContext,
		kind:    ListAttr,
		pattern: regexp.MustCompile(`(?i)^(?:contexts?|providers?)` + multiplierSuffix + `$`),
		build:   func(m []string) string { return "context" + m[1] },
	},
	{
		key:     AttrFetch,
		kind:    ValueAttr,
		pattern: regexp.MustCompile(`(?i)^fetch(?:[-_:=]?(` + strings.Join(FetchMethods, "|") + `))?$`),
		build: func(m []string) string {
			if m[1] == "" {
				return "GET"
			}
			return strings.ToUpper(m[1])
		},
	},
	{
		key:     AttrStyle,
		kind:    ValueAttr,
		pattern: regexp.MustCompile(`(?i)^(?:style(?:[-_:=]?(css|scss|module|cssmodule))?|(css|scss|cssmodule))$`),
		build: func(m []string) string {
			v := strings.ToLower(m[1] + m[2])
			switch v {
			case "":
				return "css"
			case "cssmodule":
				return "module"
			}
			return v
		},
	},
}

func fold(tok string) string {
	return strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(tok))
}

// Resolve turns a lexed tag into an element. The first token names the
// element; every later token is matched against the attribute vocabulary.
// Tokens outside the vocabulary are ignored, except key=value pairs which
// are kept in Attributes.Extra.
func Resolve(tag RawTag) (*Element, error) {
	name := tag.Tokens[0]
	category := CategoryComponent
	if name == ConfigName {
		category = CategoryConfig
	}
	el, err := NewElement(name, category)
	if err != nil {
		return nil, err
	}
	el.Subcategory = tag.Subcategory
	el.Line = tag.Line
	el.Source = tag.Source

	for _, tok := range tag.Tokens[1:] {
		resolveToken(el.Attributes, tok)
	}
	return el, nil
}

func resolveToken(attrs *Attributes, tok string) {
	if key, ok := flagSpellings[fold(tok)]; ok {
		attrs.SetFlag(key)
		return
	}
	for _, r := range rules {
		m := r.pattern.FindStringSubmatch(tok)
		if m == nil {
			continue
		}
		switch r.kind {
		case ListAttr:
			attrs.Append(r.key, r.build(m))
		case ValueAttr:
			attrs.SetValue(r.key, r.build(m))
		}
		return
	}
	if k, v, ok := strings.Cut(tok, "="); ok && k != "" {
		attrs.Extra[k] = v
	}
}
