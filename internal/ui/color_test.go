package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/chriserin/jsxgen/internal/db"
	"github.com/chriserin/jsxgen/internal/parser"
	"github.com/chriserin/jsxgen/internal/writer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionLine(t *testing.T) {
	var buf bytes.Buffer
	ActionLine(&buf, writer.ActionCreated, "src/index.js")
	assert.Contains(t, buf.String(), "new")
	assert.Contains(t, buf.String(), "src/index.js")
}

func TestSummaryLine(t *testing.T) {
	results := []writer.Result{
		{Action: writer.ActionCreated},
		{Action: writer.ActionOverwritten},
		{Action: writer.ActionSame},
		{Action: writer.ActionSkipped},
		{Action: writer.ActionSkipped},
	}

	var buf bytes.Buffer
	SummaryLine(&buf, results, false)
	assert.Equal(t, "generated 2 files (1 unchanged, 2 skipped)\n", buf.String())

	buf.Reset()
	SummaryLine(&buf, nil, true)
	assert.Equal(t, "would generate 0 files (0 unchanged, 0 skipped)\n", buf.String())
}

func TestRunRow(t *testing.T) {
	var buf bytes.Buffer
	RunRow(&buf, db.Run{ID: 3, Source: "app.jsxg", OutputDir: "web", Policy: "never", CreatedAt: time.Now(), Written: 4, Skipped: 1, DryRun: true})
	out := buf.String()
	assert.Contains(t, out, "#3")
	assert.Contains(t, out, "app.jsxg -> web")
	assert.Contains(t, out, "4 written, 1 skipped")
	assert.Contains(t, out, "(dry run)")
}

func TestStatusLine(t *testing.T) {
	var buf bytes.Buffer
	StatusLine(&buf, StateDeleted, "src/App/App.js")
	assert.Contains(t, buf.String(), "del")
	assert.Contains(t, buf.String(), "src/App/App.js")
}

func TestTree(t *testing.T) {
	tr, err := parser.Parse(`<Config router/><App><Nav link/><Main><Card/></Main></App>`)
	require.NoError(t, err)
	outline, err := parser.Transform(tr)
	require.NoError(t, err)

	out := Tree(outline)
	for _, want := range []string{"Config", "router", "App", "Nav", "link", "Main", "Card"} {
		assert.Contains(t, out, want)
	}
	assert.Empty(t, Tree(nil))
}
