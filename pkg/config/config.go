// Package config loads the optional taskgraph.toml configuration file.
//
// Flags always win over file values, which win over defaults. The file
// is looked up at an explicit path, then ./taskgraph.toml, then
// $XDG_CONFIG_HOME/taskgraph/taskgraph.toml. A missing file is not an
// error; a malformed one is.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/afenda/taskgraph/pkg/errors"
	"github.com/afenda/taskgraph/pkg/layout"
)

// Config is the full file schema.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Mongo  MongoConfig  `toml:"mongo"`
}

// LayoutConfig configures the grid geometry.
// Zero fields fall back to the engine defaults.
type LayoutConfig struct {
	NodeWidth  float64 `toml:"node_width"`
	NodeHeight float64 `toml:"node_height"`
	HGap       float64 `toml:"h_gap"`
	VGap       float64 `toml:"v_gap"`
}

// Geometry merges the file values over the engine defaults.
func (c LayoutConfig) Geometry() layout.Config {
	geo := layout.DefaultConfig()
	if c.NodeWidth > 0 {
		geo.NodeWidth = c.NodeWidth
	}
	if c.NodeHeight > 0 {
		geo.NodeHeight = c.NodeHeight
	}
	if c.HGap > 0 {
		geo.HGap = c.HGap
	}
	if c.VGap > 0 {
		geo.VGap = c.VGap
	}
	return geo
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"` // defaults to ":8080"
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"` // "file" (default), "redis", "none"
	Dir           string `toml:"dir"`     // file backend; defaults to XDG cache dir
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// MongoConfig configures the MongoDB task source.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Cache:  CacheConfig{Backend: "file"},
	}
}

// Load reads the configuration, trying path (when non-empty), then the
// working directory, then the XDG config directory. Missing files yield
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	candidates := []string{path, "taskgraph.toml"}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "taskgraph", "taskgraph.toml"))
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		data, err := os.ReadFile(candidate)
		if os.IsNotExist(err) {
			if candidate == path {
				// An explicitly requested file must exist.
				return cfg, errors.New(errors.ErrCodeFileNotFound, "config file %s not found", path)
			}
			continue
		}
		if err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", candidate)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", candidate)
		}
		return cfg, nil
	}

	return cfg, nil
}
