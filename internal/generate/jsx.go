package generate

import "strings"

const jsxIndent = "  "

// jsx accumulates indented markup lines.
type jsx struct {
	lines []string
	depth int
}

func (j *jsx) line(s string) {
	j.lines = append(j.lines, strings.Repeat(jsxIndent, j.depth)+s)
}

func (j *jsx) open(s string) {
	j.line(s)
	j.depth++
}

func (j *jsx) close(s string) {
	j.depth--
	j.line(s)
}
