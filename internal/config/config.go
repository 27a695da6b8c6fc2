// Package config provides reading and writing of chatarc configuration.
// Supports both global (~/.chatarc/config.yaml) and local (.chatarc/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.chatarc/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is directory-specific config in .chatarc/config.yaml
	ScopeLocal
)

// Database holds archive database options.
type Database struct {
	Path string `yaml:"path,omitempty"`
}

// Server holds HTTP server options.
type Server struct {
	Listen string `yaml:"listen,omitempty"`
}

// Display holds output shaping options.
type Display struct {
	SnippetWidth *int `yaml:"snippet_width,omitempty"`
	ListLimit    *int `yaml:"list_limit,omitempty"`
}

// Defaults applied when not configured.
const (
	DefaultListen       = "127.0.0.1:8787"
	DefaultSnippetWidth = 300
	DefaultListLimit    = 50
)

// Validation bounds for configuration values.
const (
	MinSnippetWidth = 40
	MaxSnippetWidth = 2000
	MinListLimit    = 1
	MaxListLimit    = 1000
)

// Config contains configuration for chatarc.
type Config struct {
	Database Database `yaml:"database,omitempty"`
	Server   Server   `yaml:"server,omitempty"`
	Display  Display  `yaml:"display,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Server.Listen != "" {
		if _, _, err := net.SplitHostPort(c.Server.Listen); err != nil {
			return fmt.Errorf("%w: server.listen must be host:port, got %q",
				ErrInvalidValue, c.Server.Listen)
		}
	}
	if c.Display.SnippetWidth != nil {
		v := *c.Display.SnippetWidth
		if v < MinSnippetWidth || v > MaxSnippetWidth {
			return fmt.Errorf("%w: snippet_width must be between %d and %d, got %d",
				ErrInvalidValue, MinSnippetWidth, MaxSnippetWidth, v)
		}
	}
	if c.Display.ListLimit != nil {
		v := *c.Display.ListLimit
		if v < MinListLimit || v > MaxListLimit {
			return fmt.Errorf("%w: list_limit must be between %d and %d, got %d",
				ErrInvalidValue, MinListLimit, MaxListLimit, v)
		}
	}
	return nil
}

// DBPath returns the archive database path. Defaults to ~/.chatarc/archive.db
// when not configured.
func (c *Config) DBPath() string {
	if c.Database.Path != "" {
		return c.Database.Path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "archive.db"
	}
	return filepath.Join(home, ".chatarc", "archive.db")
}

// Listen returns the HTTP listen address (defaults to 127.0.0.1:8787).
func (c *Config) Listen() string {
	if c.Server.Listen == "" {
		return DefaultListen
	}
	return c.Server.Listen
}

// SnippetWidth returns the maximum snippet width in runes (defaults to 300).
func (c *Config) SnippetWidth() int {
	if c.Display.SnippetWidth == nil {
		return DefaultSnippetWidth
	}
	return *c.Display.SnippetWidth
}

// ListLimit returns the default page size for listings (defaults to 50).
func (c *Config) ListLimit() int {
	if c.Display.ListLimit == nil {
		return DefaultListLimit
	}
	return *c.Display.ListLimit
}

// LocalPath returns the path to the local (directory) config file.
func LocalPath() string {
	return filepath.Join(".chatarc", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.chatarc/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".chatarc", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
