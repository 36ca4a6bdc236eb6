package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/dkeye/Lobby/internal/adapters/http"
	"github.com/dkeye/Lobby/internal/adapters/store"
	"github.com/dkeye/Lobby/internal/app"
	"github.com/dkeye/Lobby/internal/app/orch"
	"github.com/dkeye/Lobby/internal/config"
	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/thumbnail"
)

func openDirectory(ctx context.Context, cfg *config.Config) (core.HubDirectory, func(), error) {
	switch cfg.Store.Driver {
	case "", "memory":
		return store.NewMemory(), func() {}, nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Store.RedisAddr,
			Password: cfg.Store.RedisPassword,
			DB:       cfg.Store.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("redis %s: %w", cfg.Store.RedisAddr, err)
		}
		return store.NewRedis(rdb), func() { _ = rdb.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Mode == "debug" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	dir, closeDir, err := openDirectory(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open hub directory")
	}
	defer closeDir()

	hubs := app.NewHubs(dir, cfg, cfg, cfg.DefaultScene, cfg.RoomSize)
	for _, seed := range cfg.SeedHubs {
		if err := hubs.Ensure(ctx, seed.Room()); err != nil {
			log.Error().Err(err).Str("hub", seed.ID).Msg("seed hub")
		}
	}

	thumbs := thumbnail.New(cfg.ThumbnailServer)
	svc := router.Services{
		Home: &app.Home{
			Favorites:  dir,
			Public:     dir,
			Flags:      cfg,
			Images:     cfg,
			Thumbnails: thumbs,
		},
		Browser: &app.MediaBrowser{
			Rooms:      dir,
			Scenes:     cfg.Scenes,
			PageSize:   cfg.MediaPageSize,
			Thumbnails: thumbs,
		},
		Hubs:      hubs,
		Directory: dir,
		Orch: &orch.Orchestrator{
			Registry:  app.NewRegistry(),
			Rooms:     app.NewRoomManager(),
			Policy:    app.SimplePolicy{},
			Directory: dir,
		},
	}

	r := router.SetupRouter(ctx, cfg, svc)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Str("store", cfg.Store.Driver).Msg("Lobby server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
