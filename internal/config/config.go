// Package config holds the settings fixed when the server starts.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/f4ah6o/sgs-go/internal/acceptor"
	"github.com/f4ah6o/sgs-go/internal/responder"
)

// Config is read once at startup and never changed afterwards.
type Config struct {
	// Root is the content root. The server changes into it before serving.
	Root string `toml:"root" yaml:"root"`
	// Port is the TCP port to listen on, on all interfaces.
	Port int `toml:"port" yaml:"port"`
	// Backlog is the pending connection queue depth.
	Backlog int `toml:"backlog" yaml:"backlog"`
	// BufferSize bounds the single read of a request line.
	BufferSize int `toml:"buffer_size" yaml:"buffer_size"`
	// LogFile is the append-only log, relative to Root unless absolute.
	LogFile string `toml:"log_file" yaml:"log_file"`
	// Console mirrors log lines to stderr.
	Console bool `toml:"console" yaml:"console"`
	// MaxConnections caps concurrent connections; zero means no cap.
	MaxConnections int `toml:"max_connections" yaml:"max_connections"`
	// Extensions are appended after the default table and win over it.
	Extensions []responder.Extension `toml:"extensions" yaml:"extensions"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Root:       ".",
		Port:       8081,
		Backlog:    acceptor.DefaultBacklog,
		BufferSize: responder.DefaultBufferSize,
		LogFile:    "server.log",
	}
}

// ErrFormat is returned for a config file with an unknown extension.
var ErrFormat = errors.New("unsupported config format")

// Load reads path over the defaults. The format follows the file extension:
// .toml, or .yaml/.yml.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("%w: %s", ErrFormat, path)
	}

	return cfg, nil
}

// Validate reports the first setting the server cannot start with.
func (c Config) Validate() error {
	if c.Root == "" {
		return errors.New("root must not be empty")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.Backlog < 1 {
		return fmt.Errorf("backlog must be positive, got %d", c.Backlog)
	}
	if c.BufferSize < 6 {
		return fmt.Errorf("buffer_size must be at least 6, got %d", c.BufferSize)
	}
	if c.MaxConnections < 0 {
		return fmt.Errorf("max_connections must not be negative, got %d", c.MaxConnections)
	}
	for i, e := range c.Extensions {
		if !strings.HasPrefix(e.Ext, ".") || len(e.Ext) < 2 {
			return fmt.Errorf("extension %d: %q must start with a dot", i, e.Ext)
		}
		if e.MIME == "" {
			return fmt.Errorf("extension %d: %q has no MIME type", i, e.Ext)
		}
	}
	return nil
}

// Table returns the extension table the responder scans.
func (c Config) Table() responder.Table {
	return responder.DefaultTable.With(c.Extensions...)
}
