// Package config loads Branchboard configuration from a TOML file.
//
// Configuration is optional: every field has a default, a missing file
// yields the defaults, and the CLI flags override whatever the file set.
// The file lives at $XDG_CONFIG_HOME/branchboard/config.toml by default.
//
// Example:
//
//	[layout]
//	orientation = "columns"
//	node_width = 200
//
//	[server]
//	addr = ":8080"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[store]
//	backend = "memory"
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	bberrors "github.com/branchboard/branchboard/pkg/errors"
	"github.com/branchboard/branchboard/pkg/layout"
)

// Cache backend names accepted in [cache].backend.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Store backend names accepted in [store].backend.
const (
	StoreBackendMemory = "memory"
	StoreBackendMongo  = "mongo"
)

// Config is the full application configuration.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
}

// LayoutConfig configures node geometry and flow direction.
type LayoutConfig struct {
	NodeWidth           float64 `toml:"node_width"`
	NodeHeight          float64 `toml:"node_height"`
	TentativeNodeHeight float64 `toml:"tentative_node_height"`
	HorizontalGap       float64 `toml:"horizontal_gap"`
	VerticalGap         float64 `toml:"vertical_gap"`
	Padding             float64 `toml:"padding"`
	Orientation         string  `toml:"orientation"`
}

// ServerConfig configures the dashboard HTTP server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// CacheConfig selects and configures the layout cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// StoreConfig selects and configures the plan store backend.
type StoreConfig struct {
	Backend  string `toml:"backend"`
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	lc := layout.DefaultConfig()
	return Config{
		Layout: LayoutConfig{
			NodeWidth:           lc.NodeWidth,
			NodeHeight:          lc.NodeHeight,
			TentativeNodeHeight: lc.TentativeNodeHeight,
			HorizontalGap:       lc.HorizontalGap,
			VerticalGap:         lc.VerticalGap,
			Padding:             lc.Padding,
			Orientation:         string(lc.Orientation),
		},
		Server: ServerConfig{Addr: ":7420"},
		Cache: CacheConfig{
			Backend:   CacheBackendFile,
			RedisAddr: "localhost:6379",
		},
		Store: StoreConfig{
			Backend:  StoreBackendMemory,
			MongoURI: "mongodb://localhost:27017",
			Database: "branchboard",
		},
	}
}

// Load reads the configuration file at path, layering it on top of the
// defaults and applying environment overrides last. A missing file is not
// an error and yields Default() plus the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, bberrors.Wrap(bberrors.ErrCodeInvalidConfig, err, "parse config %s", path)
		}
	}

	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides the deployment-endpoint fields from the environment,
// so hosted instances can keep one config file across environments.
func (c *Config) applyEnv() {
	if v := os.Getenv("BRANCHBOARD_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("BRANCHBOARD_REDIS_ADDR"); v != "" {
		c.Cache.RedisAddr = v
	}
	if v := os.Getenv("BRANCHBOARD_REDIS_PASSWORD"); v != "" {
		c.Cache.RedisPassword = v
	}
	if v := os.Getenv("BRANCHBOARD_MONGO_URI"); v != "" {
		c.Store.MongoURI = v
	}
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return bberrors.New(bberrors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case StoreBackendMemory, StoreBackendMongo:
	default:
		return bberrors.New(bberrors.ErrCodeInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}
	switch layout.Orientation(c.Layout.Orientation) {
	case layout.OrientationRows, layout.OrientationColumns:
	default:
		return bberrors.New(bberrors.ErrCodeInvalidConfig, "unknown orientation %q", c.Layout.Orientation)
	}
	return nil
}

// LayoutOptions converts the file representation into the geometry config
// the layout engine consumes.
func (c Config) LayoutOptions() layout.Config {
	return layout.Config{
		NodeWidth:           c.Layout.NodeWidth,
		NodeHeight:          c.Layout.NodeHeight,
		TentativeNodeHeight: c.Layout.TentativeNodeHeight,
		HorizontalGap:       c.Layout.HorizontalGap,
		VerticalGap:         c.Layout.VerticalGap,
		Padding:             c.Layout.Padding,
		Orientation:         layout.Orientation(c.Layout.Orientation),
	}
}
