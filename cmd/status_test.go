package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runStatus(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunStatus(&buf))
	return buf.String()
}

func TestStatus_Clean(t *testing.T) {
	inTempDir(t)
	runInit(t)
	runGenerate(t, GenerateOptions{})

	out := runStatus(t)
	assert.Contains(t, out, "Tracked files: 5")
	assert.Contains(t, out, "All generated files match their last generation")
}

func TestStatus_ModifiedAndDeleted(t *testing.T) {
	inTempDir(t)
	runInit(t)
	runGenerate(t, GenerateOptions{})

	require.NoError(t, os.WriteFile("src/components/Home/Home.js", []byte("// edited\n"), 0o644))
	require.NoError(t, os.Remove("src/components/Signup/Signup.js"))

	out := runStatus(t)
	assert.Contains(t, out, "mod  src/components/Home/Home.js")
	assert.Contains(t, out, "del  src/components/Signup/Signup.js")
	assert.Contains(t, out, "  modified: 1\n")
	assert.Contains(t, out, "  deleted: 1\n")
	assert.NotContains(t, out, "src/index.js")
}

func TestStatus_SkippedFileStaysModified(t *testing.T) {
	inTempDir(t)
	runInit(t)
	runGenerate(t, GenerateOptions{})
	require.NoError(t, os.WriteFile("src/components/Home/Home.js", []byte("// edited\n"), 0o644))
	runGenerate(t, GenerateOptions{})

	out := runStatus(t)
	assert.Contains(t, out, "mod  src/components/Home/Home.js")
}

func TestStatus_DryRunTracksNothing(t *testing.T) {
	inTempDir(t)
	runInit(t)
	runGenerate(t, GenerateOptions{DryRun: true})

	out := runStatus(t)
	assert.Contains(t, out, "Tracked files: 0")
}

func TestStatus_RequiresDatabase(t *testing.T) {
	inTempDir(t)

	var buf bytes.Buffer
	err := RunStatus(&buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no history at .jsxgen/history.db")
}

func TestDisplayPath(t *testing.T) {
	assert.Equal(t, "src/index.js", displayPath("/work", "/work/src/index.js"))
	assert.Equal(t, "/elsewhere/index.js", displayPath("/work", "/elsewhere/index.js"))
}
