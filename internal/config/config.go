// Package config loads packlist settings from defaults, an optional YAML file,
// PACKLIST_* environment variables and command-line flags, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/prime-mcgowan/packing-list/internal/log"
	"github.com/prime-mcgowan/packing-list/internal/store"
	"github.com/prime-mcgowan/packing-list/internal/view"
)

// EnvPrefix namespaces environment overrides, e.g. PACKLIST_UI_THEME.
const EnvPrefix = "PACKLIST"

// Config holds all configuration options for packlist.
type Config struct {
	UI    UIConfig    `mapstructure:"ui"`
	Store StoreConfig `mapstructure:"store"`
	Log   LogConfig   `mapstructure:"log"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme  string `mapstructure:"theme"`  // classic | neon | mono
	Sort   string `mapstructure:"sort"`   // input | description | packed
	Locale string `mapstructure:"locale"` // BCP 47 tag used for collation and number formatting
	Color  string `mapstructure:"color"`  // auto | always | never
}

// StoreConfig holds session store settings.
type StoreConfig struct {
	IDGenerator string `mapstructure:"id_generator"` // counter | time | uuid
	Template    string `mapstructure:"template"`     // optional seed list (.json/.yaml)
}

// LogConfig controls the debug log file.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		UI: UIConfig{
			Theme:  "classic",
			Sort:   string(view.SortInput),
			Locale: "en",
			Color:  "auto",
		},
		Store: StoreConfig{IDGenerator: "counter"},
		Log:   LogConfig{Level: "info"},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/packlist/config.yaml (or the OS equivalent).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "packlist", "config.yaml")
}

// New returns a viper instance with defaults and env binding applied. Callers
// bind flags onto it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	d := Defaults()
	v.SetDefault("ui.theme", d.UI.Theme)
	v.SetDefault("ui.sort", d.UI.Sort)
	v.SetDefault("ui.locale", d.UI.Locale)
	v.SetDefault("ui.color", d.UI.Color)
	v.SetDefault("store.id_generator", d.Store.IDGenerator)
	v.SetDefault("store.template", d.Store.Template)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file (explicit path, else DefaultPath if it exists),
// unmarshals and validates. An explicit path that cannot be read is an error.
func Load(v *viper.Viper, path string) (Config, error) {
	v.SetConfigType("yaml")
	switch {
	case path != "":
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	default:
		if p := DefaultPath(); p != "" {
			if _, err := os.Stat(p); err == nil {
				v.SetConfigFile(p)
				if err := v.ReadInConfig(); err != nil {
					return Config{}, fmt.Errorf("read config %s: %w", p, err)
				}
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	log.Debug(log.CatConfig, "config loaded", "file", v.ConfigFileUsed(), "theme", c.UI.Theme, "sort", c.UI.Sort)
	return c, nil
}

// Validate rejects values outside the known enums.
func (c Config) Validate() error {
	switch strings.ToLower(c.UI.Theme) {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("ui.theme: unknown theme %q", c.UI.Theme)
	}
	if _, err := view.ParseSortKey(c.UI.Sort); err != nil {
		return fmt.Errorf("ui.sort: %w", err)
	}
	if _, err := c.LanguageTag(); err != nil {
		return err
	}
	switch strings.ToLower(c.UI.Color) {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("ui.color: unknown mode %q", c.UI.Color)
	}
	if _, err := store.NewIDGenerator(c.Store.IDGenerator); err != nil {
		return fmt.Errorf("store.id_generator: %w", err)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// SortKey returns the configured default sort key.
func (c Config) SortKey() view.SortKey {
	k, err := view.ParseSortKey(c.UI.Sort)
	if err != nil {
		return view.SortInput
	}
	return k
}

// LanguageTag parses ui.locale.
func (c Config) LanguageTag() (language.Tag, error) {
	tag, err := language.Parse(c.UI.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("ui.locale: parse %q: %w", c.UI.Locale, err)
	}
	return tag, nil
}

// DefaultConfigTemplate returns a commented YAML config for `packlist config init`.
func DefaultConfigTemplate() string {
	return `# packlist configuration

ui:
  theme: classic     # classic | neon | mono
  sort: input        # input | description | packed
  locale: en         # collation and number formatting
  color: auto        # auto | always | never

store:
  id_generator: counter   # counter | time | uuid
  # template: ~/trips/beach.yaml

log:
  # file: /tmp/packlist.log
  level: info
`
}
