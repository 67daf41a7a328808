// Package config provides configuration types, defaults, loading and
// persistence for mdedit.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. MDEDIT_EDITOR_MAX_LENGTH.
const EnvPrefix = "MDEDIT"

// ErrInvalid is returned when a loaded configuration fails validation.
var ErrInvalid = errors.New("invalid config")

// Config holds all configuration options for mdedit.
type Config struct {
	Editor    EditorConfig    `mapstructure:"editor" yaml:"editor"`
	Highlight HighlightConfig `mapstructure:"highlight" yaml:"highlight"`
	Watch     WatchConfig     `mapstructure:"watch" yaml:"watch"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
}

// EditorConfig holds editing surface options.
type EditorConfig struct {
	Placeholder  string `mapstructure:"placeholder" yaml:"placeholder"`
	MaxLength    int    `mapstructure:"max_length" yaml:"max_length"` // 0 means no limit
	Editable     bool   `mapstructure:"editable" yaml:"editable"`
	OnlyAutolink bool   `mapstructure:"only_autolink" yaml:"only_autolink"`
	Width        int    `mapstructure:"width" yaml:"width"`   // 0 follows the terminal
	Height       int    `mapstructure:"height" yaml:"height"` // 0 follows the terminal
}

// HighlightConfig holds classification and syntax highlighting options.
type HighlightConfig struct {
	// Policy is "default" or "external".
	Policy          string        `mapstructure:"policy" yaml:"policy"`
	CodeLanguages   bool          `mapstructure:"code_languages" yaml:"code_languages"`
	CacheExpiration time.Duration `mapstructure:"cache_expiration" yaml:"cache_expiration"`
	DiffTimeout     time.Duration `mapstructure:"diff_timeout" yaml:"diff_timeout"`
}

// WatchConfig holds external reload options.
type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled" yaml:"enabled"`
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

// LogConfig holds debug logging options.
type LogConfig struct {
	Debug bool   `mapstructure:"debug" yaml:"debug"`
	Path  string `mapstructure:"path" yaml:"path"`
	Level string `mapstructure:"level" yaml:"level"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		Editor: EditorConfig{
			Placeholder: "...",
			Editable:    true,
		},
		Highlight: HighlightConfig{
			Policy:          "default",
			CodeLanguages:   true,
			CacheExpiration: 10 * time.Minute,
			DiffTimeout:     100 * time.Millisecond,
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: 200 * time.Millisecond,
		},
		Log: LogConfig{
			Path:  "debug.log",
			Level: "debug",
		},
	}
}

// DefaultPath returns the user config location, ~/.config/mdedit/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "mdedit", "config.yaml")
}

// SetDefaults registers every default with v so that environment variables
// and bound flags resolve for keys absent from the file.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("editor.placeholder", d.Editor.Placeholder)
	v.SetDefault("editor.max_length", d.Editor.MaxLength)
	v.SetDefault("editor.editable", d.Editor.Editable)
	v.SetDefault("editor.only_autolink", d.Editor.OnlyAutolink)
	v.SetDefault("editor.width", d.Editor.Width)
	v.SetDefault("editor.height", d.Editor.Height)
	v.SetDefault("highlight.policy", d.Highlight.Policy)
	v.SetDefault("highlight.code_languages", d.Highlight.CodeLanguages)
	v.SetDefault("highlight.cache_expiration", d.Highlight.CacheExpiration)
	v.SetDefault("highlight.diff_timeout", d.Highlight.DiffTimeout)
	v.SetDefault("watch.enabled", d.Watch.Enabled)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
	v.SetDefault("log.debug", d.Log.Debug)
	v.SetDefault("log.path", d.Log.Path)
	v.SetDefault("log.level", d.Log.Level)
}

// Load resolves the configuration from defaults, the YAML file at path,
// MDEDIT_ environment variables and any flags already bound to v. An empty
// path skips the file.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid option.
func (c Config) Validate() error {
	switch {
	case c.Editor.MaxLength < 0:
		return fmt.Errorf("%w: editor.max_length must not be negative, got %d", ErrInvalid, c.Editor.MaxLength)
	case c.Editor.Width < 0 || c.Editor.Height < 0:
		return fmt.Errorf("%w: editor size must not be negative, got %dx%d", ErrInvalid, c.Editor.Width, c.Editor.Height)
	case c.Watch.Debounce < 0:
		return fmt.Errorf("%w: watch.debounce must not be negative", ErrInvalid)
	}
	switch strings.ToLower(c.Highlight.Policy) {
	case "", "default", "external", "prism":
	default:
		// Custom classification needs a function and cannot come from a file.
		return fmt.Errorf("%w: unknown highlight.policy %q", ErrInvalid, c.Highlight.Policy)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log.level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}
