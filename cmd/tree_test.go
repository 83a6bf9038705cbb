package cmd

import (
	"bytes"
	"testing"

	"github.com/chriserin/jsxgen/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTree_Text(t *testing.T) {
	inTempDir(t)
	runInit(t)

	var buf bytes.Buffer
	require.NoError(t, RunTree(&buf, "", "text"))

	out := buf.String()
	for _, want := range []string{"Config", "bootstrap router", "App", "Home", "fetch=GET", "Signup", "╰──"} {
		assert.Contains(t, out, want)
	}
}

func TestTree_YAML(t *testing.T) {
	inTempDir(t)
	runInit(t)

	var buf bytes.Buffer
	require.NoError(t, RunTree(&buf, "app.jsxg", "yaml"))

	var outline parser.Outline
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &outline))
	assert.Equal(t, 5, outline.Size)
	assert.Equal(t, 3, outline.Depth)
	require.Len(t, outline.Root.Children, 1)
	app := outline.Root.Children[0]
	assert.Equal(t, parser.KindApp, app.Kind)
	require.Len(t, app.Children, 3)
	assert.Equal(t, "POST", app.Children[2].Attributes[parser.AttrFetch])
}

func TestTree_Errors(t *testing.T) {
	inTempDir(t)
	runInit(t)

	var buf bytes.Buffer
	err := RunTree(&buf, "", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "json"`)

	err = RunTree(&buf, "nope.jsxg", "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading nope.jsxg")
}
