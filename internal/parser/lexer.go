package parser

import (
	"regexp"
	"strings"

	"github.com/chriserin/jsxgen/internal/errors"
)

// RawTag is one lexed tag: its classification and normalized tokens. The
// first token is always the element name.
type RawTag struct {
	Subcategory Subcategory
	Tokens      []string
	Line        int
	Offset      int
	Source      string
}

// Lexer scans markup text for <...> spans.
type Lexer struct {
	src     string
	pos     int
	line    int
	linePos int
}

func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

// Lex returns every tag in src in document order.
func Lex(src string) ([]RawTag, error) {
	l := NewLexer(src)
	var tags []RawTag
	for {
		tag, ok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return tags, nil
		}
		tags = append(tags, tag)
	}
}

// Next returns the next tag. ok is false at the end of input.
// Empty fragments (<> and </>) are skipped.
func (l *Lexer) Next() (tag RawTag, ok bool, err error) {
	for {
		rest := l.src[l.pos:]
		lt := strings.IndexByte(rest, '<')
		if lt < 0 {
			if gt := strings.IndexByte(rest, '>'); gt >= 0 {
				return RawTag{}, false, l.errorAt(l.pos+gt, "unmatched '>'")
			}
			l.pos = len(l.src)
			return RawTag{}, false, nil
		}
		if gt := strings.IndexByte(rest[:lt], '>'); gt >= 0 {
			return RawTag{}, false, l.errorAt(l.pos+gt, "unmatched '>'")
		}

		start := l.pos + lt
		after := l.src[start+1:]
		gt := strings.IndexByte(after, '>')
		if gt < 0 || strings.IndexByte(after[:gt], '<') >= 0 {
			return RawTag{}, false, l.errorAt(start, "unmatched '<'")
		}
		body := after[:gt]
		end := start + 1 + gt + 1

		trimmed := strings.TrimSpace(body)
		if trimmed == "" || trimmed == "/" {
			l.pos = end
			continue
		}

		sub := OpenTag
		if strings.HasSuffix(trimmed, "/") {
			sub = SelfClosingTag
			trimmed = trimmed[:len(trimmed)-1]
		}
		if strings.HasPrefix(trimmed, "/") {
			sub = CloseTag
			trimmed = trimmed[1:]
		}

		tokens := normalize(trimmed)
		line := l.lineOf(start)
		l.pos = end
		if len(tokens) == 0 {
			continue
		}
		return RawTag{
			Subcategory: sub,
			Tokens:      tokens,
			Line:        line,
			Offset:      start,
			Source:      l.src[start:end],
		}, true, nil
	}
}

var (
	commaSpace    = regexp.MustCompile(`\s*,\s*`)
	operatorSpace = regexp.MustCompile(`\s*([*=])\s*`)
	bracketSpace  = regexp.MustCompile(`\[\s+|\s+\]`)
	whitespace    = regexp.MustCompile(`\s+`)
	quotes        = strings.NewReplacer(`"`, "", `'`, "")
)

// normalize tidies a tag body and splits it into tokens.
func normalize(body string) []string {
	s := commaSpace.ReplaceAllString(body, ",")
	s = operatorSpace.ReplaceAllString(s, "$1")
	s = bracketSpace.ReplaceAllStringFunc(s, strings.TrimSpace)
	s = quotes.Replace(s)
	s = whitespace.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.Split(s, " ")
}

func (l *Lexer) lineOf(offset int) int {
	if offset < l.linePos {
		return 1 + strings.Count(l.src[:offset], "\n")
	}
	l.line += strings.Count(l.src[l.linePos:offset], "\n")
	l.linePos = offset
	return l.line
}

func (l *Lexer) errorAt(offset int, msg string) error {
	line := l.lineOf(offset)
	snip := snippet(l.src, offset)
	return errors.Newf(errors.ErrSyntax, "%s at line %d near %q", msg, line, snip).
		WithDetail("line", line).
		WithDetail("offset", offset).
		WithDetail("snippet", snip)
}

const snippetRadius = 20

func snippet(src string, offset int) string {
	from := max(0, offset-snippetRadius)
	to := min(len(src), offset+snippetRadius)
	return strings.TrimSpace(whitespace.ReplaceAllString(src[from:to], " "))
}
