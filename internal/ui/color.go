package ui

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/chriserin/jsxgen/internal/db"
	"github.com/chriserin/jsxgen/internal/parser"
	"github.com/chriserin/jsxgen/internal/writer"
)

var (
	newStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	updStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	skpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	sameStyle = lipgloss.NewStyle().Faint(true)
	nameStyle = lipgloss.NewStyle().Bold(true)
	attrStyle = lipgloss.NewStyle().Faint(true)
)

var actionLabels = map[writer.Action]string{
	writer.ActionCreated:     newStyle.Render("new"),
	writer.ActionOverwritten: updStyle.Render("upd"),
	writer.ActionSkipped:     skpStyle.Render("skp"),
	writer.ActionSame:        sameStyle.Render("ok "),
}

func ActionLine(w io.Writer, action writer.Action, path string) {
	fmt.Fprintln(w, actionLabels[action]+"  "+path)
}

func SummaryLine(w io.Writer, results []writer.Result, dryRun bool) {
	counts := map[writer.Action]int{}
	for _, r := range results {
		counts[r.Action]++
	}
	written := counts[writer.ActionCreated] + counts[writer.ActionOverwritten]
	verb := "generated"
	if dryRun {
		verb = "would generate"
	}
	fmt.Fprintf(w, "%s %d files (%d unchanged, %d skipped)\n",
		verb, written, counts[writer.ActionSame], counts[writer.ActionSkipped])
}

func RunRow(w io.Writer, r db.Run) {
	when := r.CreatedAt.Local().Format("2006-01-02 15:04")
	line := fmt.Sprintf("#%-4d %s  %s -> %s  %s  %d written, %d skipped",
		r.ID, when, r.Source, r.OutputDir, r.Policy, r.Written, r.Skipped)
	if r.DryRun {
		line += sameStyle.Render("  (dry run)")
	}
	fmt.Fprintln(w, line)
}

// File states reported by the status command.
const (
	StateModified = "modified"
	StateDeleted  = "deleted"
)

func StatusLine(w io.Writer, state, path string) {
	label := updStyle.Render("mod")
	if state == StateDeleted {
		label = skpStyle.Render("del")
	}
	fmt.Fprintln(w, label+"  "+path)
}

// Tree renders an outline as an indented tree with attributes beside each name.
func Tree(o *parser.Outline) string {
	if o == nil || o.Root == nil {
		return ""
	}
	return subtree(o.Root).String()
}

func subtree(n *parser.OutlineNode) *tree.Tree {
	t := tree.Root(label(n)).Enumerator(tree.RoundedEnumerator)
	for _, c := range n.Children {
		if len(c.Children) == 0 {
			t.Child(label(c))
			continue
		}
		t.Child(subtree(c))
	}
	return t
}

func label(n *parser.OutlineNode) string {
	name := n.Name
	if name == "" {
		name = parser.ConfigName
	}
	out := nameStyle.Render(name)
	if len(n.Attributes) == 0 {
		return out
	}
	var attrs []string
	for _, k := range slices.Sorted(maps.Keys(n.Attributes)) {
		v := n.Attributes[k]
		if v == "true" {
			attrs = append(attrs, k)
			continue
		}
		attrs = append(attrs, k+"="+v)
	}
	return out + " " + attrStyle.Render(strings.Join(attrs, " "))
}
