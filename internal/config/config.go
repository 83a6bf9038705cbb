package config

import (
	_ "embed"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/adrg/xdg"
	"github.com/chriserin/jsxgen/internal/errors"
	"github.com/chriserin/jsxgen/internal/generate"
	"github.com/chriserin/jsxgen/internal/logging"
	"github.com/chriserin/jsxgen/internal/writer"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// ProjectFile is the per-project config file name looked up in the working directory.
const ProjectFile = "jsxgen.toml"

const envPrefix = "JSXGEN_"

type Config struct {
	Input   InputConfig   `koanf:"input" toml:"input"`
	Output  OutputConfig  `koanf:"output" toml:"output"`
	History HistoryConfig `koanf:"history" toml:"history"`
}

type InputConfig struct {
	File string `koanf:"file" toml:"file"`
}

type OutputConfig struct {
	Dir       string        `koanf:"dir" toml:"dir"`
	Extension string        `koanf:"extension" toml:"extension"`
	Arrow     bool          `koanf:"arrow" toml:"arrow"`
	Overwrite writer.Policy `koanf:"overwrite" toml:"overwrite"`
}

type HistoryConfig struct {
	Path string `koanf:"path" toml:"path"`
}

// GenerateOptions maps the output section onto generator options.
func (c *Config) GenerateOptions() generate.Options {
	return generate.Options{Extension: c.Output.Extension, Arrow: c.Output.Arrow}
}

type LoadOptions struct {
	// ConfigFile replaces the project file lookup; it must exist.
	ConfigFile string
	// Overrides are applied last, keyed by dotted path ("output.dir").
	Overrides map[string]interface{}
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Load merges, lowest precedence first: embedded defaults, the user config
// under the XDG config home, the project config, JSXGEN_* environment
// variables and explicit overrides.
func Load(opts LoadOptions) (*Config, error) {
	log := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfig, "loading defaults")
	}

	if err := loadFileIfExists(k, UserConfigPath()); err != nil {
		return nil, err
	}

	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfig, "config file %s", opts.ConfigFile)
		}
		if err := loadFileIfExists(k, opts.ConfigFile); err != nil {
			return nil, err
		}
	} else if err := loadFileIfExists(k, ProjectFile); err != nil {
		return nil, err
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfig, "loading environment")
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfig, "applying overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				trimStringHookFunc(),
				mapstructure.TextUnmarshallerHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfig, "decoding configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("input", cfg.Input.File).
		Str("output", cfg.Output.Dir).
		Str("overwrite", string(cfg.Output.Overwrite)).
		Msg("Configuration loaded")
	return &cfg, nil
}

func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return errors.Wrapf(err, errors.ErrConfig, "loading %s", path)
	}
	return nil
}

// trimStringHookFunc strips surrounding whitespace from string values, which
// environment variables often carry.
func trimStringHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		return strings.TrimSpace(reflect.ValueOf(data).String()), nil
	}
}

func (c *Config) Validate() error {
	if !slices.Contains(generate.Extensions, c.Output.Extension) {
		return errors.Newf(errors.ErrConfig, "output.extension must be one of %s, got %q",
			strings.Join(generate.Extensions, ", "), c.Output.Extension)
	}
	if _, err := writer.ParsePolicy(string(c.Output.Overwrite)); err != nil {
		return errors.Wrap(err, errors.ErrConfig, "output.overwrite")
	}
	if c.Input.File == "" {
		return errors.New(errors.ErrConfig, "input.file must not be empty")
	}
	return nil
}

// UserConfigPath is the per-user config file location.
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "jsxgen", "config.toml")
}

// Default returns the embedded defaults.
func Default() (*Config, error) {
	var cfg Config
	if err := gotoml.Unmarshal(defaultConfig, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfig, "parsing defaults")
	}
	return &cfg, nil
}

// Save writes cfg as TOML, creating parent directories.
func Save(path string, cfg *Config) error {
	data, err := gotoml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfig, "encoding configuration")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
