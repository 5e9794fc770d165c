package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/wallcheck/pkg/blueprint"
	"github.com/matzehuels/wallcheck/pkg/entity"
	wcerrors "github.com/matzehuels/wallcheck/pkg/errors"
	"github.com/matzehuels/wallcheck/pkg/reach"
	"github.com/matzehuels/wallcheck/pkg/spatial"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, reach.OrderLIFO, cfg.Order())
	assert.Equal(t, blueprint.EightWay, cfg.Directions())
	assert.Equal(t, "file", cfg.Cache.Backend)
	assert.Equal(t, reach.DefaultMaxArea, cfg.Analysis.MaxArea)
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.True(t, wcerrors.Is(err, wcerrors.ErrCodeInvalidConfig))
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[analysis]
order = "fifo"
direction_encoding = "four-way"
max_area = 10000

[[footprint]]
name = "splitter"
offsets = [{x = 0, y = 0}, {x = 1, y = 0}]

[cache]
backend = "none"
ttl = "1h"

[store]
backend = "sqlite"
path = "/tmp/wallcheck-reports.db"

[server]
addr = "127.0.0.1:9000"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, reach.OrderFIFO, cfg.Order())
	assert.Equal(t, blueprint.FourWay, cfg.Directions())
	assert.Equal(t, 10000, cfg.Analysis.MaxArea)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "sqlite", cfg.StoreOptions().Backend)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)

	cat, err := cfg.Catalog()
	require.NoError(t, err)
	rules := cat.Rules()
	require.Len(t, rules, 1)
	assert.Equal(t, []spatial.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}}, rules[0].Offsets)

	cells, err := cat.Positions(&entity.Entity{Number: 1, Position: spatial.Position{X: 3, Y: 2.5}, Kind: entity.Splitter{}})
	require.NoError(t, err)
	assert.Len(t, cells, 2)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", `[analysis`},
		{"unknown key", "[analysis]\ncolour = \"red\"\n"},
		{"order", "[analysis]\norder = \"random\"\n"},
		{"encoding", "[analysis]\ndirection_encoding = \"hex\"\n"},
		{"max area", "[analysis]\nmax_area = 0\n"},
		{"empty footprint", "[[footprint]]\nname = \"splitter\"\n"},
		{"duplicate footprint", "[[footprint]]\nname = \"a\"\noffsets = [{x = 0, y = 0}]\n[[footprint]]\nname = \"a\"\noffsets = [{x = 0, y = 0}]\n"},
		{"cache backend", "[cache]\nbackend = \"memcached\"\n"},
		{"redis without addr", "[cache]\nbackend = \"redis\"\n"},
		{"store backend", "[store]\nbackend = \"postgres\"\n"},
		{"mongo without uri", "[store]\nbackend = \"mongo\"\n"},
		{"empty addr", "[server]\naddr = \"\"\n"},
	}
	t.Setenv(EnvRedisAddr, "")
	t.Setenv(EnvMongoURI, "")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.True(t, wcerrors.Is(err, wcerrors.ErrCodeInvalidConfig), "got %v", err)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvRedisAddr, "redis:6379")
	t.Setenv(EnvMongoURI, "mongodb://mongo:27017")

	cfg, err := Load(writeConfig(t, "[cache]\nbackend = \"redis\"\n[store]\nbackend = \"mongo\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "redis:6379", cfg.CacheOptions().RedisAddr)
	assert.Equal(t, "mongodb://mongo:27017", cfg.StoreOptions().MongoURI)
}
