package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/dependencies/clock"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/storage"
	memorystorage "github.com/SageMyrloc/Torchbearers-Frontend/internal/storage/memory"
	redisstorage "github.com/SageMyrloc/Torchbearers-Frontend/internal/storage/redis"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/stub"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/stub/auth"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := stub.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Pick the storage backend
	var store storage.Storage
	if cfg.RedisURL != "" {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisStore, err := redisstorage.New(redisCfg)
		if err != nil {
			logger.Error("failed to connect to redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer redisStore.Close()
		store = redisStore
		logger.Info("using redis storage", slog.String("url", cfg.RedisURL))
	} else {
		store = memorystorage.New()
		logger.Info("using in-memory storage")
	}

	authService := auth.New(store, clock.New(), auth.Config{
		Secret:        []byte(cfg.JWTSecret),
		TokenDuration: cfg.TokenDuration,
	})

	if err := authService.EnsureRoles(context.Background()); err != nil {
		logger.Error("failed to seed roles", slog.String("error", err.Error()))
		os.Exit(1)
	}

	router := stub.NewRouter(stub.RouterConfig{
		Logger:      logger,
		AuthService: authService,
		Storage:     store,
		Clock:       clock.New(),
		UploadDir:   cfg.UploadDir,
	})

	server := stub.NewServer(router, stub.ServerConfigFrom(cfg), logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
