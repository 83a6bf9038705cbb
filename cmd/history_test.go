package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runHistory(t *testing.T, limit int) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunHistory(&buf, limit))
	return buf.String()
}

func TestHistory_ListsRunsNewestFirst(t *testing.T) {
	inTempDir(t)
	runInit(t)
	runGenerate(t, GenerateOptions{})
	runGenerate(t, GenerateOptions{DryRun: true})

	out := runHistory(t, 10)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "#2 "), lines[0])
	assert.Contains(t, lines[0], "(dry run)")
	assert.True(t, strings.HasPrefix(lines[1], "#1 "), lines[1])
	assert.Contains(t, lines[1], "app.jsxg -> ")
	assert.Contains(t, lines[1], "5 written, 0 skipped")
}

func TestHistory_Limit(t *testing.T) {
	inTempDir(t)
	runInit(t)
	runGenerate(t, GenerateOptions{})
	runGenerate(t, GenerateOptions{})
	runGenerate(t, GenerateOptions{})

	out := runHistory(t, 1)
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.True(t, strings.HasPrefix(out, "#3 "))

	out = runHistory(t, 0)
	assert.Equal(t, 3, strings.Count(out, "\n"))
}

func TestHistory_Empty(t *testing.T) {
	inTempDir(t)
	runInit(t)

	assert.Equal(t, "No runs recorded\n", runHistory(t, 10))
}

func TestHistory_RequiresDatabase(t *testing.T) {
	inTempDir(t)

	var buf bytes.Buffer
	err := RunHistory(&buf, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run `jsxgen generate` first")
}
