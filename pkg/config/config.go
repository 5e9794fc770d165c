// Package config loads wallcheck's TOML configuration.
//
// A configuration file looks like this:
//
//	[analysis]
//	order = "lifo"
//	direction_encoding = "eight-way"
//
//	[[footprint]]
//	name = "splitter"
//	offsets = [{x = 0, y = 0}, {x = 1, y = 0}]
//
//	[cache]
//	backend = "file"
//	ttl = "168h"
//
//	[store]
//	backend = "sqlite"
//	path = "~/.local/share/wallcheck/reports.db"
//
//	[server]
//	addr = ":8080"
//
// Missing sections keep their defaults. WALLCHECK_REDIS_ADDR and
// WALLCHECK_MONGO_URI override the corresponding file settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/wallcheck/pkg/blueprint"
	"github.com/matzehuels/wallcheck/pkg/cache"
	"github.com/matzehuels/wallcheck/pkg/entity"
	wcerrors "github.com/matzehuels/wallcheck/pkg/errors"
	"github.com/matzehuels/wallcheck/pkg/reach"
	"github.com/matzehuels/wallcheck/pkg/spatial"
	"github.com/matzehuels/wallcheck/pkg/store"
)

const appName = "wallcheck"

// Environment variables that override file settings.
const (
	EnvRedisAddr = "WALLCHECK_REDIS_ADDR"
	EnvMongoURI  = "WALLCHECK_MONGO_URI"
)

// Config is the complete configuration.
type Config struct {
	Analysis   Analysis    `toml:"analysis"`
	Footprints []Footprint `toml:"footprint"`
	Cache      Cache       `toml:"cache"`
	Store      Store       `toml:"store"`
	Server     Server      `toml:"server"`
}

type Analysis struct {
	Order             string `toml:"order"`
	DirectionEncoding string `toml:"direction_encoding"`
	MaxArea           int    `toml:"max_area"`
}

// Footprint is a [[footprint]] rule. Offsets are relative to the anchor
// cell of a north-facing entity.
type Footprint struct {
	Name    string   `toml:"name"`
	Offsets []Offset `toml:"offsets"`
}

type Offset struct {
	X int `toml:"x"`
	Y int `toml:"y"`
}

type Cache struct {
	Backend   string        `toml:"backend"`
	Dir       string        `toml:"dir"`
	RedisAddr string        `toml:"redis_addr"`
	TTL       time.Duration `toml:"ttl"`
}

type Store struct {
	Backend  string `toml:"backend"`
	Path     string `toml:"path"`
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Analysis: Analysis{
			Order:             string(reach.OrderLIFO),
			DirectionEncoding: string(blueprint.EightWay),
			MaxArea:           reach.DefaultMaxArea,
		},
		Cache: Cache{
			Backend: cache.BackendFile,
			Dir:     defaultCacheDir(),
			TTL:     cache.DefaultTTL,
		},
		Store: Store{
			Backend:  store.BackendNone,
			Path:     filepath.Join(dataDir(), "reports.db"),
			Database: appName,
		},
		Server: Server{Addr: ":8080"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/wallcheck/config.toml, falling back
// to ~/.config.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, appName, "config.toml")
}

// Load reads path on top of the defaults, applies environment overrides
// and validates the result. An empty path loads [DefaultPath]; a missing
// default file is not an error, a missing explicit file is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		switch {
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		case err != nil:
			return nil, wcerrors.Wrap(wcerrors.ErrCodeInvalidConfig, err, "load %s", path)
		default:
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				return nil, wcerrors.New(wcerrors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
			}
		}
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv copies environment overrides into cfg.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.Cache.RedisAddr = v
	}
	if v := os.Getenv(EnvMongoURI); v != "" {
		c.Store.MongoURI = v
	}
}

// Validate checks every section and returns the first problem.
func (c *Config) Validate() error {
	invalid := func(err error) error {
		return wcerrors.Wrap(wcerrors.ErrCodeInvalidConfig, err, "invalid configuration")
	}

	if _, err := reach.ParseOrder(c.Analysis.Order); err != nil {
		return invalid(err)
	}
	if _, err := blueprint.ParseDirectionEncoding(c.Analysis.DirectionEncoding); err != nil {
		return invalid(err)
	}
	if c.Analysis.MaxArea <= 0 {
		return invalid(fmt.Errorf("analysis.max_area must be positive, got %d", c.Analysis.MaxArea))
	}
	if _, err := c.Catalog(); err != nil {
		return invalid(err)
	}

	switch c.Cache.Backend {
	case "", cache.BackendNone:
	case cache.BackendFile:
		if c.Cache.Dir == "" {
			return invalid(errors.New("cache.dir is required for the file backend"))
		}
	case cache.BackendRedis:
		if c.Cache.RedisAddr == "" {
			return invalid(fmt.Errorf("cache.redis_addr (or %s) is required for the redis backend", EnvRedisAddr))
		}
	default:
		return invalid(fmt.Errorf("%w %q", cache.ErrUnknownBackend, c.Cache.Backend))
	}
	if c.Cache.TTL < 0 {
		return invalid(errors.New("cache.ttl cannot be negative"))
	}

	switch c.Store.Backend {
	case "", store.BackendNone:
	case store.BackendSQLite:
		if c.Store.Path == "" {
			return invalid(errors.New("store.path is required for the sqlite backend"))
		}
	case store.BackendMongo:
		if c.Store.MongoURI == "" {
			return invalid(fmt.Errorf("store.mongo_uri (or %s) is required for the mongo backend", EnvMongoURI))
		}
	default:
		return invalid(fmt.Errorf("%w %q", store.ErrUnknownBackend, c.Store.Backend))
	}

	if c.Server.Addr == "" {
		return invalid(errors.New("server.addr cannot be empty"))
	}
	return nil
}

// Catalog builds the footprint catalog from the [[footprint]] rules.
func (c *Config) Catalog() (*entity.Catalog, error) {
	rules := make([]entity.FootprintRule, len(c.Footprints))
	for i, fp := range c.Footprints {
		offsets := make([]spatial.Cell, len(fp.Offsets))
		for j, o := range fp.Offsets {
			offsets[j] = spatial.Cell{X: o.X, Y: o.Y}
		}
		rules[i] = entity.FootprintRule{Name: fp.Name, Offsets: offsets}
	}
	return entity.NewCatalog(rules...)
}

// Order returns the parsed analysis order. Call after Validate.
func (c *Config) Order() reach.Order {
	o, _ := reach.ParseOrder(c.Analysis.Order)
	return o
}

// Directions returns the parsed direction encoding. Call after Validate.
func (c *Config) Directions() blueprint.DirectionEncoding {
	enc, _ := blueprint.ParseDirectionEncoding(c.Analysis.DirectionEncoding)
	return enc
}

// CacheOptions converts the cache section for [cache.Open].
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend:   c.Cache.Backend,
		Dir:       c.Cache.Dir,
		RedisAddr: c.Cache.RedisAddr,
	}
}

// StoreOptions converts the store section for [store.Open].
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Backend:  c.Store.Backend,
		Path:     c.Store.Path,
		MongoURI: c.Store.MongoURI,
		Database: c.Store.Database,
	}
}

// defaultCacheDir follows XDG (~/.cache/wallcheck).
func defaultCacheDir() string {
	if base := os.Getenv("XDG_CACHE_HOME"); base != "" {
		return filepath.Join(base, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache", appName)
}

// dataDir follows XDG (~/.local/share/wallcheck).
func dataDir() string {
	if base := os.Getenv("XDG_DATA_HOME"); base != "" {
		return filepath.Join(base, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", appName)
}
