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

// Config holds application configuration.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	UI       UIConfig       `mapstructure:"ui"`
}

// APIConfig holds backend settings. Mock switches every collaborator to the
// in-process fakes.
type APIConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	Mock            bool          `mapstructure:"mock"`
	Timeout         time.Duration `mapstructure:"timeout"`
	NetworkDelayMin time.Duration `mapstructure:"network_delay_min"`
	NetworkDelayMax time.Duration `mapstructure:"network_delay_max"`
	LongDelayMin    time.Duration `mapstructure:"long_delay_min"`
	LongDelayMax    time.Duration `mapstructure:"long_delay_max"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds logger settings. An empty path means the XDG state dir.
type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Language    string        `mapstructure:"language"`
	SplashDelay time.Duration `mapstructure:"splash_delay"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8000/")
	v.SetDefault("api.mock", true)
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.network_delay_min", 500*time.Millisecond)
	v.SetDefault("api.network_delay_max", 1500*time.Millisecond)
	v.SetDefault("api.long_delay_min", 2000*time.Millisecond)
	v.SetDefault("api.long_delay_max", 3000*time.Millisecond)
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "jkb", "jkb.db"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", "")
	v.SetDefault("ui.language", "id")
	v.SetDefault("ui.splash_delay", 2*time.Second)
}

// Load reads configuration from file and env. Env var overrides use prefix JKB_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("JKB_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "jkb"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("JKB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects inverted delay ranges.
func (c Config) Validate() error {
	if c.API.NetworkDelayMax < c.API.NetworkDelayMin {
		return fmt.Errorf("api.network_delay_max %s is below api.network_delay_min %s", c.API.NetworkDelayMax, c.API.NetworkDelayMin)
	}
	if c.API.LongDelayMax < c.API.LongDelayMin {
		return fmt.Errorf("api.long_delay_max %s is below api.long_delay_min %s", c.API.LongDelayMax, c.API.LongDelayMin)
	}
	return nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("JKB_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "jkb", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.mock", cfg.API.Mock)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("api.network_delay_min", cfg.API.NetworkDelayMin.String())
	v.Set("api.network_delay_max", cfg.API.NetworkDelayMax.String())
	v.Set("api.long_delay_min", cfg.API.LongDelayMin.String())
	v.Set("api.long_delay_max", cfg.API.LongDelayMax.String())
	v.Set("database.path", cfg.Database.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.path", cfg.Log.Path)
	v.Set("ui.language", cfg.UI.Language)
	v.Set("ui.splash_delay", cfg.UI.SplashDelay.String())

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
