package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is used when no configuration file or environment
// override provides an API endpoint.
const DefaultBaseURL = "http://localhost:3000"

// APIConfig describes the remote employee service endpoint.
type APIConfig struct {
	// BaseURL is the root of the remote API, e.g. https://hr.example.com.
	// Overridden by the STAFFDESK_API_URL environment variable.
	BaseURL string `yaml:"base_url" toml:"base_url" json:"base_url,omitempty" jsonschema:"description=Base URL of the employee API"`
	// TimeoutSeconds bounds each HTTP request. Zero means the client default.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty" toml:"timeout_seconds,omitempty" json:"timeout_seconds,omitempty" jsonschema:"description=Per-request timeout in seconds"`
}

// RealtimeConfig describes the push-notification channel.
type RealtimeConfig struct {
	// Enabled toggles the websocket channel. Defaults to true.
	Enabled *bool `yaml:"enabled,omitempty" toml:"enabled,omitempty" json:"enabled,omitempty" jsonschema:"description=Whether to open the realtime channel while logged in"`
	// Path is the websocket endpoint path on the API host.
	Path string `yaml:"path,omitempty" toml:"path,omitempty" json:"path,omitempty" jsonschema:"description=Websocket endpoint path (default /ws)"`
}

// TUIConfig groups dashboard presentation settings.
type TUIConfig struct {
	Theme string `yaml:"theme,omitempty" toml:"theme,omitempty" json:"theme,omitempty" jsonschema:"description=Color theme: kanagawa or terminal"`
}

// Config is the root of staffdesk.yml.
type Config struct {
	Version  string         `yaml:"version,omitempty" toml:"version,omitempty" json:"version,omitempty" jsonschema:"description=Config format version"`
	API      APIConfig      `yaml:"api,omitempty" toml:"api,omitempty" json:"api,omitempty" jsonschema:"description=Remote API settings"`
	Realtime RealtimeConfig `yaml:"realtime,omitempty" toml:"realtime,omitempty" json:"realtime,omitempty" jsonschema:"description=Realtime channel settings"`
	TUI      *TUIConfig     `yaml:"tui,omitempty" toml:"tui,omitempty" json:"tui,omitempty" jsonschema:"description=Dashboard settings"`

	// Extensions captures all other top-level keys for extensibility.
	// Tools layered on top of staffdesk (and our own logging setup) read
	// their sections from here via UnmarshalExtension.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" json:"-" jsonschema:"-"`
}

// UnmarshalYAML captures known fields and routes everything else into
// Extensions.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	type rawConfig struct {
		Version    string                 `yaml:"version,omitempty"`
		API        APIConfig              `yaml:"api,omitempty"`
		Realtime   RealtimeConfig         `yaml:"realtime,omitempty"`
		TUI        *TUIConfig             `yaml:"tui,omitempty"`
		Extensions map[string]interface{} `yaml:",inline"`
	}

	var raw rawConfig
	if err := node.Decode(&raw); err != nil {
		return err
	}

	c.Version = raw.Version
	c.API = raw.API
	c.Realtime = raw.Realtime
	c.TUI = raw.TUI
	c.Extensions = raw.Extensions
	return nil
}

// UnmarshalExtension decodes an extension section into a typed struct.
// Missing keys are not an error; the target simply stays zero-valued.
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		return nil
	}

	// Use mapstructure to decode the generic map[string]interface{}
	// into the strongly-typed target struct, keyed by yaml tags.
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}

// SetDefaults fills in defaults for anything the file left unset.
func (c *Config) SetDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")

	if c.Realtime.Path == "" {
		c.Realtime.Path = "/ws"
	}
	if c.Realtime.Enabled == nil {
		enabled := true
		c.Realtime.Enabled = &enabled
	}
}

// RealtimeEnabled reports whether the websocket channel should be opened.
func (c *Config) RealtimeEnabled() bool {
	return c.Realtime.Enabled == nil || *c.Realtime.Enabled
}

// ThemeName returns the configured theme, or empty for the default.
func (c *Config) ThemeName() string {
	if c.TUI == nil {
		return ""
	}
	return c.TUI.Theme
}
