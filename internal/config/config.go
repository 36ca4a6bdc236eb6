package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/dkeye/Lobby/internal/domain"
)

type StoreConfig struct {
	Driver        string `mapstructure:"driver"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
}

// SeedHub is a hub created at startup when the directory does not have it yet.
type SeedHub struct {
	ID          string `mapstructure:"id"`
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	SceneID     string `mapstructure:"scene_id"`
	PreviewURL  string `mapstructure:"preview_url"`
	Public      bool   `mapstructure:"public"`
}

type Config struct {
	Mode            string            `mapstructure:"mode"`
	Port            int               `mapstructure:"port"`
	StaticPath      string            `mapstructure:"static_path"`
	Secret          string            `mapstructure:"secret"`
	AdminToken      string            `mapstructure:"admin_token"`
	ThumbnailServer string            `mapstructure:"thumbnail_server"`
	DefaultScene    string            `mapstructure:"default_scene"`
	MediaPageSize   int               `mapstructure:"media_page_size"`
	RoomSize        int               `mapstructure:"room_size"`
	Store           StoreConfig       `mapstructure:"store"`
	Features        map[string]bool   `mapstructure:"features"`
	Images          map[string]string `mapstructure:"images"`
	Scenes          []domain.Scene    `mapstructure:"scenes"`
	SeedHubs        []SeedHub         `mapstructure:"seed_hubs"`
}

func Load() (*Config, error) {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return LoadFile(fmt.Sprintf("config/config.%s.yaml", env))
}

// LoadFile reads fileName on top of the defaults. A missing file is not an
// error; LOBBY_* environment variables override both.
func LoadFile(fileName string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(fileName)

	v.SetEnvPrefix("LOBBY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("static_path", "./web")
	v.SetDefault("secret", "")
	v.SetDefault("admin_token", "")
	v.SetDefault("thumbnail_server", "")
	v.SetDefault("default_scene", "")
	v.SetDefault("media_page_size", 24)
	v.SetDefault("room_size", 24)
	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.redis_addr", "localhost:6379")
	v.SetDefault("store.redis_password", "")
	v.SetDefault("store.redis_db", 0)
	v.SetDefault("features.disable_room_creation", false)
	v.SetDefault("features.show_feature_panels", true)
	v.SetDefault("features.show_discord_bot_link", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config %s: %w", fileName, err)
		}
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Features == nil {
		cfg.Features = map[string]bool{}
	}
	if cfg.Images == nil {
		cfg.Images = map[string]string{}
	}
	log.Info().
		Str("module", "config").
		Str("mode", cfg.Mode).
		Int("port", cfg.Port).
		Str("store", cfg.Store.Driver).
		Msg("config ready")
	return &cfg, nil
}

// Feature reports whether the named feature flag is on. Unknown flags are off.
func (c *Config) Feature(name string) bool {
	return c.Features[strings.ToLower(name)]
}

// Image returns the URL configured for key, or a CSS url() value when
// background is set. Unknown keys resolve to "".
func (c *Config) Image(key string, background bool) string {
	u := c.Images[strings.ToLower(key)]
	if u == "" {
		return ""
	}
	if background {
		return fmt.Sprintf("url(%q)", u)
	}
	return u
}

func (c *Config) Scene(id string) (domain.Scene, bool) {
	for _, s := range c.Scenes {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Scene{}, false
}

// Room converts the seed into a directory record.
func (s SeedHub) Room() domain.Room {
	return domain.Room{
		ID:          domain.RoomID(s.ID),
		Name:        s.Name,
		Description: s.Description,
		SceneID:     s.SceneID,
		Public:      s.Public,
		Images:      domain.RoomImages{Preview: domain.Image{URL: s.PreviewURL}},
	}
}
