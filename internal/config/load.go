package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/idilsaglam/tada/internal/store"
)

// Load builds configuration from, in increasing priority:
// 1. Defaults
// 2. User config file (<UserConfigDir>/tada/config.toml)
// 3. Project config file (.tada.toml in the current directory)
// 4. Environment variables (TADA_*)
// CLI flags are layered on top by the caller.
func Load() (*Config, error) {
	return load(findUserConfigFile(), findProjectConfigFile())
}

func load(files ...string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	for _, f := range files {
		if f == "" {
			continue
		}
		if err := loadConfigFile(cfg, f); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", f, err)
		}
	}

	loadFromEnv(cfg)
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.BaseURL = DefaultBaseURL
	cfg.Theme = DefaultTheme
	cfg.Log.Level = DefaultLogLevel
	cfg.Log.Format = DefaultLogFormat
	cfg.Server.Addr = DefaultServerAddr
	cfg.Server.Store = DefaultStore
}

// loadConfigFile decodes path over cfg; keys missing from the file keep
// their current values.
func loadConfigFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TADA_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("TADA_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TADA_NO_COLOR"); v != "" {
		cfg.NoColor = boolFromString(v)
	}
	if v := os.Getenv("TADA_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TADA_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("TADA_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("TADA_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("TADA_STORE"); v != "" {
		cfg.Server.Store = v
	}
	if v := os.Getenv("TADA_STORE_PATH"); v != "" {
		cfg.Server.StorePath = v
	}
}

func boolFromString(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// Validate rejects values the client or server cannot run with.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.BaseURL)
	switch {
	case strings.TrimSpace(c.BaseURL) == "":
		errs = append(errs, errors.New("base_url is empty"))
	case err != nil:
		errs = append(errs, fmt.Errorf("base_url: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("base_url %q: scheme must be http or https", c.BaseURL))
	case u.Host == "":
		errs = append(errs, fmt.Errorf("base_url %q: missing host", c.BaseURL))
	}

	switch strings.ToLower(c.Theme) {
	case "classic", "neon", "mono":
	default:
		errs = append(errs, fmt.Errorf("theme %q: want classic, neon or mono", c.Theme))
	}

	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		errs = append(errs, fmt.Errorf("log.level %q: want debug, info, warn, error or fatal", c.Log.Level))
	}

	switch strings.ToLower(strings.TrimSpace(c.Log.Format)) {
	case "", "text", "json", "logfmt":
	default:
		errs = append(errs, fmt.Errorf("log.format %q: want text, json or logfmt", c.Log.Format))
	}

	switch c.Server.Store {
	case store.KindJSON, store.KindSQLite:
	default:
		errs = append(errs, fmt.Errorf("server.store %q: want %s or %s", c.Server.Store, store.KindJSON, store.KindSQLite))
	}

	return errors.Join(errs...)
}

func findUserConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return existing(filepath.Join(dir, UserConfigDirName, UserConfigFileName))
}

func findProjectConfigFile() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return existing(filepath.Join(wd, ProjectConfigFile))
}

func existing(path string) string {
	if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
		return path
	}
	return ""
}
