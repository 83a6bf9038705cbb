package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/chriserin/jsxgen/internal/errors"
	"github.com/chriserin/jsxgen/internal/writer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory with the user config home
// inside it. It returns the user config path.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(orig) })

	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config-home"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return UserConfigPath()
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "app.jsxg", cfg.Input.File)
	assert.Equal(t, ".", cfg.Output.Dir)
	assert.Equal(t, "js", cfg.Output.Extension)
	assert.False(t, cfg.Output.Arrow)
	assert.Equal(t, writer.PolicyUnchanged, cfg.Output.Overwrite)
	assert.Equal(t, ".jsxgen/history.db", cfg.History.Path)
}

func TestLoad_Layering(t *testing.T) {
	userPath := isolate(t)
	write(t, userPath, "[output]\nextension = \"jsx\"\narrow = true\ndir = \"user\"\n")
	write(t, ProjectFile, "[output]\ndir = \"project\"\noverwrite = \"never\"\n")
	t.Setenv("JSXGEN_OUTPUT_OVERWRITE", "  always ")

	cfg, err := Load(LoadOptions{Overrides: map[string]interface{}{"input.file": "cli.jsxg"}})
	require.NoError(t, err)

	assert.Equal(t, "jsx", cfg.Output.Extension, "user config")
	assert.True(t, cfg.Output.Arrow, "user config")
	assert.Equal(t, "project", cfg.Output.Dir, "project config beats user config")
	assert.Equal(t, writer.PolicyAlways, cfg.Output.Overwrite, "environment beats project config")
	assert.Equal(t, "cli.jsxg", cfg.Input.File, "overrides beat everything")
}

func TestLoad_EnvironmentDirectory(t *testing.T) {
	isolate(t)
	t.Setenv("JSXGEN_OUTPUT_DIR", "web")

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "web", cfg.Output.Dir)
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	isolate(t)
	write(t, ProjectFile, "[output]\ndir = \"project\"\n")
	write(t, "alt/jsxgen.toml", "[output]\nextension = \"tsx\"\n")

	cfg, err := Load(LoadOptions{ConfigFile: "alt/jsxgen.toml"})
	require.NoError(t, err)
	assert.Equal(t, "tsx", cfg.Output.Extension)
	assert.Equal(t, ".", cfg.Output.Dir, "project file is not read when a config file is given")

	_, err = Load(LoadOptions{ConfigFile: "missing.toml"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfig))
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]struct {
		overrides map[string]interface{}
		contains  string
	}{
		"extension": {
			overrides: map[string]interface{}{"output.extension": "ts"},
			contains:  "output.extension",
		},
		"policy": {
			overrides: map[string]interface{}{"output.overwrite": "sometimes"},
			contains:  "sometimes",
		},
		"empty input": {
			overrides: map[string]interface{}{"input.file": " "},
			contains:  "input.file",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			isolate(t)
			_, err := Load(LoadOptions{Overrides: tt.overrides})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfig), "got %v", err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	isolate(t)
	write(t, ProjectFile, "[output\n")

	_, err := Load(LoadOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), ProjectFile)
}

func TestSave_RoundTrip(t *testing.T) {
	isolate(t)

	cfg, err := Default()
	require.NoError(t, err)
	cfg.Output.Dir = "web"
	cfg.Output.Arrow = true
	cfg.Output.Overwrite = writer.PolicyPrompt

	path := filepath.Join("nested", ProjectFile)
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(LoadOptions{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestGenerateOptions(t *testing.T) {
	cfg := &Config{Output: OutputConfig{Extension: "tsx", Arrow: true}}
	opts := cfg.GenerateOptions()
	assert.Equal(t, "tsx", opts.Extension)
	assert.True(t, opts.Arrow)
}
