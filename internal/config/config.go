package config

import (
	"errors"
	"fmt"

	"github.com/TBXark/confstore"
	"github.com/TBXark/optional-go"
)

// ServerType is the MCP transport the server speaks
type ServerType string

const (
	ServerTypeStdio      ServerType = "stdio"
	ServerTypeSSE        ServerType = "sse"
	ServerTypeStreamable ServerType = "streamable-http"
)

// Options are optional server behaviors; unset fields fall back to false
type Options struct {
	LogEnabled optional.Field[bool] `json:"logEnabled,omitempty"`
	Shallow    optional.Field[bool] `json:"shallow,omitempty"`
	AuthTokens []string             `json:"authTokens,omitempty"`
}

// ServerConfig describes the MCP server exposing the tutorial
type ServerConfig struct {
	BaseURL string     `json:"baseURL"`
	Addr    string     `json:"addr"`
	Name    string     `json:"name"`
	Version string     `json:"version"`
	Type    ServerType `json:"type,omitempty"`
	Options *Options   `json:"options,omitempty"`
}

// Config is the top-level config file layout
type Config struct {
	Server *ServerConfig `json:"server"`
}

// Defaults applied when the config leaves a field empty
const (
	DefaultName    = "tutorial"
	DefaultVersion = "1.0.0"
	DefaultAddr    = ":9090"
)

// Default returns the config used when no file is given: a stdio server
func Default() *Config {
	return &Config{
		Server: &ServerConfig{
			Addr:    DefaultAddr,
			Name:    DefaultName,
			Version: DefaultVersion,
			Type:    ServerTypeStdio,
			Options: &Options{},
		},
	}
}

// Load reads the config from a file path or http(s) url.
// An empty path yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	conf, err := confstore.Load[Config](path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if err := conf.normalize(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c *Config) normalize() error {
	if c.Server == nil {
		return errors.New("server is required")
	}
	if c.Server.Options == nil {
		c.Server.Options = &Options{}
	}
	if c.Server.Name == "" {
		c.Server.Name = DefaultName
	}
	if c.Server.Version == "" {
		c.Server.Version = DefaultVersion
	}
	if c.Server.Type == "" {
		c.Server.Type = ServerTypeStdio // default to stdio
	}
	return c.Validate()
}

// Validate checks the transport settings
func (c *Config) Validate() error {
	if c.Server == nil {
		return errors.New("server is required")
	}
	switch c.Server.Type {
	case ServerTypeStdio:
		return nil
	case ServerTypeSSE, ServerTypeStreamable:
		if c.Server.Addr == "" {
			return fmt.Errorf("addr is required for %s server", c.Server.Type)
		}
		return nil
	default:
		return fmt.Errorf("unknown server type: %s", c.Server.Type)
	}
}

// SetPort overrides the listen address, e.g. "8080" or ":8080"
func (c *Config) SetPort(port string) {
	if port == "" {
		return
	}
	if port[0] != ':' {
		c.Server.Addr = ":" + port
	} else {
		c.Server.Addr = port
	}
}

// LogOn reports whether request logging is enabled
func (o *Options) LogOn() bool {
	return o != nil && o.LogEnabled.OrElse(false)
}

// ShallowOn reports whether nested sections render as empty arrays
func (o *Options) ShallowOn() bool {
	return o != nil && o.Shallow.OrElse(false)
}
