// Package config handles loading and layering of promptline configuration files.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/NikitaCOEUR/promptline/internal/commands"
	"github.com/NikitaCOEUR/promptline/internal/derrors"
)

//go:embed defaults.yml
var defaultsYAML []byte

// SupportedConfigNames contains project configuration file names (in order of preference)
var SupportedConfigNames = []string{
	".promptline.yml",
	".promptline.yaml",
	".promptline.toml",
	".promptline.json",
}

// GlobalConfigNames contains global configuration file names (in order of preference)
var GlobalConfigNames = []string{
	"config.yml",
	"config.yaml",
	"config.toml",
	"config.json",
}

// CompletionConfig configures the completion manager
type CompletionConfig struct {
	MaxResults int           `koanf:"max_results"`
	Timeout    time.Duration `koanf:"timeout"`
}

// OracleConfig configures command lookups
type OracleConfig struct {
	LookupTimeout time.Duration `koanf:"lookup_timeout"`
}

// MenuConfig configures the completion menu
type MenuConfig struct {
	MaxVisible   int    `koanf:"max_visible"`
	HideCursor   bool   `koanf:"hide_cursor"`
	Width        int    `koanf:"width"`
	ItemTemplate string `koanf:"item_template"`
}

// ClassifierConfig extends the classifier vocabulary
type ClassifierConfig struct {
	LocalOnlyWords []string `koanf:"local_only_words"`
}

// Config represents a promptline configuration
type Config struct {
	LogLevel   string             `koanf:"log_level"`
	Completion CompletionConfig   `koanf:"completion"`
	Oracle     OracleConfig       `koanf:"oracle"`
	Menu       MenuConfig         `koanf:"menu"`
	Classifier ClassifierConfig   `koanf:"classifier"`
	Commands   []commands.Command `koanf:"commands"`
}

// Default returns the built-in configuration
func Default() *Config {
	cfg, err := NewLoader().load(nil)
	if err != nil {
		// The embedded defaults are covered by tests
		panic(fmt.Sprintf("invalid embedded defaults: %v", err))
	}
	return cfg
}

// Loader loads configuration layers
type Loader struct {
	globalDir string
}

// LoaderOption configures a Loader
type LoaderOption func(*Loader)

// WithGlobalDir overrides the directory searched for the global config
func WithGlobalDir(dir string) LoaderOption {
	return func(l *Loader) {
		l.globalDir = dir
	}
}

// NewLoader creates a new config loader
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load layers the defaults, the global config and the project config found
// in dir. It returns the files that were loaded, in order.
func (l *Loader) Load(dir string) (*Config, []string, error) {
	var files []string

	globalDir := l.globalDir
	if globalDir == "" {
		if d, err := GetGlobalConfigDir(); err == nil {
			globalDir = d
		}
	}
	if globalDir != "" {
		if path := findFirst(globalDir, GlobalConfigNames); path != "" {
			files = append(files, path)
		}
	}
	if dir != "" {
		if path := findFirst(dir, SupportedConfigNames); path != "" {
			files = append(files, path)
		}
	}

	cfg, err := l.load(files)
	if err != nil {
		return nil, files, err
	}
	return cfg, files, nil
}

// LoadFile layers a single file on top of the defaults
func (l *Loader) LoadFile(path string) (*Config, error) {
	return l.load([]string{path})
}

func (l *Loader) load(files []string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultsYAML), yaml.Parser()); err != nil {
		return nil, derrors.NewConfigurationError("defaults", "failed to load defaults", err)
	}

	for _, path := range files {
		parser, err := parserFor(path)
		if err != nil {
			return nil, derrors.NewConfigurationError(path, "unsupported config format", err)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, derrors.NewConfigurationError(path, "failed to load config", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, derrors.NewConfigurationError(strings.Join(files, ","), "failed to unmarshal config", err)
	}
	return cfg, nil
}

// parserFor picks the koanf parser from the file extension
func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %q", ext)
	}
}

func findFirst(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// GetGlobalConfigDir returns the directory holding the global config file
func GetGlobalConfigDir() (string, error) {
	// Try XDG_CONFIG_HOME first
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		// Fallback to ~/.config
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, "promptline"), nil
}
