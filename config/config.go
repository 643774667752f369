// Package config loads jump's settings from defaults, an optional TOML file
// and JUMP_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds every tunable of the ranking engine and the CLI around it.
type Config struct {
	DataPath       string   `mapstructure:"data_path"`
	FuzzyThreshold float64  `mapstructure:"fuzzy_threshold"`
	TabEntries     int      `mapstructure:"tab_entries"`
	TabSeparator   string   `mapstructure:"tab_separator"`
	IncreaseWeight float64  `mapstructure:"increase_weight"`
	DecreaseWeight float64  `mapstructure:"decrease_weight"`
	PickerLimit    int      `mapstructure:"picker_limit"`
	Exclude        []string `mapstructure:"exclude"`
	LogLevel       string   `mapstructure:"log_level"`
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataPath:       defaultDataPath(),
		FuzzyThreshold: 0.6,
		TabEntries:     9,
		TabSeparator:   "__",
		IncreaseWeight: 10,
		DecreaseWeight: 15,
		PickerLimit:    50,
		Exclude:        []string{},
		LogLevel:       "info",
	}
}

// Load reads the configuration. An empty path searches the default config
// directory; a missing file there is not an error. An explicit path must exist.
func Load(path string) (Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("data_path", def.DataPath)
	v.SetDefault("fuzzy_threshold", def.FuzzyThreshold)
	v.SetDefault("tab_entries", def.TabEntries)
	v.SetDefault("tab_separator", def.TabSeparator)
	v.SetDefault("increase_weight", def.IncreaseWeight)
	v.SetDefault("decrease_weight", def.DecreaseWeight)
	v.SetDefault("picker_limit", def.PickerLimit)
	v.SetDefault("exclude", def.Exclude)
	v.SetDefault("log_level", def.LogLevel)

	v.SetEnvPrefix("JUMP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the engine cannot work with.
func (c Config) Validate() error {
	switch {
	case c.DataPath == "":
		return fmt.Errorf("%w: data_path is empty", ErrInvalid)
	case c.FuzzyThreshold < 0 || c.FuzzyThreshold > 1:
		return fmt.Errorf("%w: fuzzy_threshold %v not in [0, 1]", ErrInvalid, c.FuzzyThreshold)
	case c.TabEntries <= 0 || c.TabEntries > 9:
		return fmt.Errorf("%w: tab_entries %d not in [1, 9]", ErrInvalid, c.TabEntries)
	case c.TabSeparator == "":
		return fmt.Errorf("%w: tab_separator is empty", ErrInvalid)
	case strings.ContainsAny(c.TabSeparator, "0123456789"):
		return fmt.Errorf("%w: tab_separator %q contains a digit", ErrInvalid, c.TabSeparator)
	case c.IncreaseWeight < 0 || c.DecreaseWeight < 0:
		return fmt.Errorf("%w: weights must not be negative", ErrInvalid)
	case c.PickerLimit <= 0:
		return fmt.Errorf("%w: picker_limit must be positive", ErrInvalid)
	}
	return nil
}

func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "jump")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "jump")
}

func defaultDataPath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "jump", "jump.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "jump", "jump.db")
}
