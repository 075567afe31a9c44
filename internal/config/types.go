// Package config loads layered settings for the todo client and the
// reference server.
package config

import (
	"github.com/idilsaglam/tada/internal/api"
	"github.com/idilsaglam/tada/internal/store"
)

const (
	DefaultBaseURL    = api.DefaultBaseURL
	DefaultTheme      = "classic"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
	DefaultServerAddr = "localhost:8080"
	DefaultStore      = store.KindJSON

	UserConfigDirName  = "tada"
	UserConfigFileName = "config.toml"
	ProjectConfigFile  = ".tada.toml"
)

// Config holds every tunable value.
type Config struct {
	BaseURL string    `toml:"base_url"`
	Theme   string    `toml:"theme"`
	NoColor bool      `toml:"no_color"`
	Log     LogConfig `toml:"log"`
	Server  Server    `toml:"server"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// Server configures the `serve` subcommand.
type Server struct {
	Addr      string `toml:"addr"`
	Store     string `toml:"store"`
	StorePath string `toml:"store_path"`
}
