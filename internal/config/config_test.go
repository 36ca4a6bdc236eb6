package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "release", cfg.Mode)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 24, cfg.MediaPageSize)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.True(t, cfg.Feature("show_feature_panels"))
	assert.False(t, cfg.Feature("disable_room_creation"))
	assert.False(t, cfg.Feature("no_such_flag"))
}

func TestLoadFile_ReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.test.yaml")
	yaml := `
mode: debug
port: 9090
default_scene: atrium
features:
  disable_room_creation: true
images:
  logo: https://cdn.example.com/logo.png
  home_background: https://cdn.example.com/bg.jpg
scenes:
  - id: atrium
    name: Atrium
    screenshot_url: https://cdn.example.com/atrium.png
    featured: true
seed_hubs:
  - id: lobby01
    name: Main Lobby
    public: true
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Mode)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Feature("disable_room_creation"))
	assert.True(t, cfg.Feature("show_feature_panels"), "defaults merge with file values")
	assert.Equal(t, "https://cdn.example.com/logo.png", cfg.Image("logo", false))
	assert.Equal(t, `url("https://cdn.example.com/bg.jpg")`, cfg.Image("home_background", true))
	assert.Equal(t, "", cfg.Image("missing", true))

	s, ok := cfg.Scene("atrium")
	require.True(t, ok)
	assert.True(t, s.Featured)
	require.Len(t, cfg.SeedHubs, 1)
	assert.True(t, cfg.SeedHubs[0].Public)
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	t.Setenv("LOBBY_PORT", "7000")
	t.Setenv("LOBBY_STORE_DRIVER", "redis")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "redis", cfg.Store.Driver)
}

func TestLoadFile_MalformedYAMLIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.broken.yaml")
	yaml := `
features:
  disable_room_creation: true
scenes: [unclosed
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := LoadFile(path)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), path)
}
