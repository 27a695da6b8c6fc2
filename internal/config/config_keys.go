// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic. This separation allows config.go to focus on YAML structure
// and loading, while this file handles the MCP and CLI interface where config
// is accessed by string keys (e.g., "display.snippet_width").
//
// Design: Pointers are used for optional numeric fields so we can distinguish
// between "not set" (nil) and "explicitly set to zero". This enables proper
// defaulting - we only apply defaults when the user hasn't set a value.

package config

import (
	"fmt"
	"slices"
	"strconv"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"database.path",
		"server.listen",
		"display.snippet_width", "display.list_limit",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "database.path":
		return c.DBPath(), nil
	case "server.listen":
		return c.Listen(), nil
	case "display.snippet_width":
		return strconv.Itoa(c.SnippetWidth()), nil
	case "display.list_limit":
		return strconv.Itoa(c.ListLimit()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "database.path":
		if value == "" {
			return fmt.Errorf("%w: database.path must not be empty", ErrInvalidValue)
		}
		c.Database.Path = value
	case "server.listen":
		c.Server.Listen = value
		if err := c.Validate(); err != nil {
			c.Server.Listen = ""
			return err
		}
	case "display.snippet_width":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinSnippetWidth || n > MaxSnippetWidth {
			return fmt.Errorf("%w: display.snippet_width must be an integer between %d and %d",
				ErrInvalidValue, MinSnippetWidth, MaxSnippetWidth)
		}
		c.Display.SnippetWidth = &n
	case "display.list_limit":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinListLimit || n > MaxListLimit {
			return fmt.Errorf("%w: display.list_limit must be an integer between %d and %d",
				ErrInvalidValue, MinListLimit, MaxListLimit)
		}
		c.Display.ListLimit = &n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	return map[string]string{
		"database.path":         c.DBPath(),
		"server.listen":         c.Listen(),
		"display.snippet_width": strconv.Itoa(c.SnippetWidth()),
		"display.list_limit":    strconv.Itoa(c.ListLimit()),
	}
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "database.path":
		return c.Database.Path != ""
	case "server.listen":
		return c.Server.Listen != ""
	case "display.snippet_width":
		return c.Display.SnippetWidth != nil
	case "display.list_limit":
		return c.Display.ListLimit != nil
	default:
		return false
	}
}
