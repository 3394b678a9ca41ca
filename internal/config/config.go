// Package config loads levelup settings from a YAML file, LEVELUP_*
// environment variables and built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/levelup/internal/domain"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "LEVELUP"

type Config struct {
	DB         DBConfig         `mapstructure:"db" yaml:"db"`
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
	Pacing     PacingConfig     `mapstructure:"pacing" yaml:"pacing"`
	Categories []CategoryConfig `mapstructure:"categories" yaml:"categories" validate:"required,min=1,unique=Name,dive"`
	Timer      TimerConfig      `mapstructure:"timer" yaml:"timer"`
}

type DBConfig struct {
	Path string `mapstructure:"path" yaml:"path" validate:"required"`
}

type LogConfig struct {
	Calls  bool   `mapstructure:"calls" yaml:"calls"`
	Level  string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=text json"`
}

type PacingConfig struct {
	Window  int       `mapstructure:"window" yaml:"window" validate:"min=1"`
	Targets []float64 `mapstructure:"targets" yaml:"targets" validate:"required,dive,gt=0"`
}

type CategoryConfig struct {
	Name        string  `mapstructure:"name" yaml:"name" validate:"required"`
	DisplayName string  `mapstructure:"display_name" yaml:"display_name,omitempty"`
	Color       string  `mapstructure:"color" yaml:"color,omitempty"`
	Difficulty  float64 `mapstructure:"difficulty" yaml:"difficulty" validate:"gt=0,lte=1000"`
}

type TimerConfig struct {
	DefaultCategory string `mapstructure:"default_category" yaml:"default_category"`
}

// DefaultDBPath is ~/.levelup/levelup.db, or a relative .levelup directory
// when the home directory is unknown.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".levelup", "levelup.db")
	}
	return filepath.Join(home, ".levelup", "levelup.db")
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	cfg := Config{
		DB:     DBConfig{Path: DefaultDBPath()},
		Log:    LogConfig{Level: "info", Format: "text"},
		Pacing: PacingConfig{Window: 7, Targets: []float64{10, 20, 30, 40, 50, 100, 200, 300, 400, 500, 1000, 2000, 3000, 4000, 5000, 10000}},
		Timer:  TimerConfig{DefaultCategory: "Mathematics"},
	}
	for _, c := range domain.DefaultCatalog() {
		cfg.Categories = append(cfg.Categories, CategoryConfig{
			Name:        c.Name,
			DisplayName: c.DisplayName,
			Color:       c.Color,
			Difficulty:  c.Difficulty,
		})
	}
	return cfg
}

// Load reads configFile, or levelup.yaml from the working directory or
// $HOME/.config/levelup when configFile is empty. A missing default file is
// not an error; an explicit one must exist.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("levelup")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/levelup")
	}

	def := DefaultConfig()
	v.SetDefault("db.path", def.DB.Path)
	v.SetDefault("log.calls", def.Log.Calls)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("pacing.window", def.Pacing.Window)
	v.SetDefault("pacing.targets", def.Pacing.Targets)
	v.SetDefault("timer.default_category", def.Timer.DefaultCategory)
	categories := make([]map[string]any, 0, len(def.Categories))
	for _, c := range def.Categories {
		categories = append(categories, map[string]any{
			"name":         c.Name,
			"display_name": c.DisplayName,
			"color":        c.Color,
			"difficulty":   c.Difficulty,
		})
	}
	v.SetDefault("categories", categories)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("db.path", EnvPrefix+"_DB", EnvPrefix+"_DB_PATH"); err != nil {
		return nil, fmt.Errorf("failed to bind %s_DB environment variable: %w", EnvPrefix, err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}
	cfg.DB.Path = expandHome(cfg.DB.Path)
	return &cfg, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Catalog converts the configured categories.
func (c *Config) Catalog() domain.Catalog {
	out := make(domain.Catalog, 0, len(c.Categories))
	for _, cat := range c.Categories {
		out = append(out, domain.Category{
			Name:        cat.Name,
			DisplayName: cat.DisplayName,
			Color:       cat.Color,
			Difficulty:  cat.Difficulty,
		})
	}
	return out
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("rendering configuration: %w", err)
	}
	return out, nil
}
