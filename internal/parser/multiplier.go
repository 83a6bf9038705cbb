package parser

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// CaseName is a generated instance name in the three spellings templates use.
type CaseName struct {
	Given string
	Lower string
	Title string
}

func NewCaseName(name string) CaseName {
	return CaseName{
		Given: name,
		Lower: strings.ToLower(name),
		Title: title(name),
	}
}

// Camel is the name with its first rune lowered, for locals that sit next
// to an import spelled Title.
func (c CaseName) Camel() string {
	r, size := utf8.DecodeRuneInString(c.Given)
	if r == utf8.RuneError {
		return c.Given
	}
	return string(unicode.ToLower(r)) + c.Given[size:]
}

func title(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Multiplier is the result of one FindMultiplier call. Count is zero when
// the requested group does not exist. Named is set for the family[a,b] form.
type Multiplier struct {
	Count int
	Names []CaseName
	Named bool
}

// familyPatterns caches the compiled matcher per family.
var familyPatterns sync.Map

func familyPattern(family string) *regexp.Regexp {
	if p, ok := familyPatterns.Load(family); ok {
		return p.(*regexp.Regexp)
	}
	p := regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(family) + `(?:\*([1-9]\d?)|\[([^\]]*)\])?$`)
	actual, _ := familyPatterns.LoadOrStore(family, p)
	return actual.(*regexp.Regexp)
}

// FindMultiplier locates the index-th (0-based) occurrence of family among
// the element's attribute values and expands it:
//
//	family[a,b]  -> a, b
//	family*N     -> base1 .. baseN
//	family       -> base1
//
// Callers loop with index 0, 1, 2, ... until Count is 0, so one tag can
// carry several independent groups of the same family.
func FindMultiplier(el *Element, family string, index int, base string) Multiplier {
	if el == nil || family == "" || index < 0 {
		return Multiplier{}
	}
	pattern := familyPattern(family)

	seen := 0
	for _, attr := range el.Attributes.All() {
		for _, entry := range splitEntries(attr.String()) {
			m := pattern.FindStringSubmatch(entry)
			if m == nil {
				continue
			}
			names := expand(m, base)
			if len(names) == 0 {
				continue
			}
			if seen == index {
				return Multiplier{Count: len(names), Names: names, Named: strings.HasSuffix(m[0], "]")}
			}
			seen++
		}
	}
	return Multiplier{}
}

// CollectMultiplier gathers the names of every group of family on el.
func CollectMultiplier(el *Element, family, base string) []CaseName {
	var out []CaseName
	for i := 0; ; i++ {
		m := FindMultiplier(el, family, i, base)
		if m.Count == 0 {
			return out
		}
		out = append(out, m.Names...)
	}
}

func expand(m []string, base string) []CaseName {
	switch {
	case strings.HasSuffix(m[0], "]"):
		var names []CaseName
		for _, item := range strings.Split(m[2], ",") {
			if item = strings.TrimSpace(item); item != "" {
				names = append(names, NewCaseName(item))
			}
		}
		return names
	case m[1] != "":
		n, _ := strconv.Atoi(m[1])
		names := make([]CaseName, 0, n)
		for i := 1; i <= n; i++ {
			names = append(names, NewCaseName(base+strconv.Itoa(i)))
		}
		return names
	default:
		return []CaseName{NewCaseName(base + "1")}
	}
}

// splitEntries splits s on commas that are not inside [...].
func splitEntries(s string) []string {
	var entries []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				entries = append(entries, s[start:i])
				start = i + 1
			}
		}
	}
	return append(entries, s[start:])
}
