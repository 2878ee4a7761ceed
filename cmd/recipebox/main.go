package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"recipebox/internal/config"
	"recipebox/internal/events"
	eventsmem "recipebox/internal/events/memory"
	eventsnats "recipebox/internal/events/nats"
	"recipebox/internal/gateway/rest"
	"recipebox/internal/identity"
	"recipebox/internal/logging"
	"recipebox/internal/recipes"
	"recipebox/internal/server"
	storagemem "recipebox/internal/storage/memory"
	storagemongo "recipebox/internal/storage/mongo"
	"recipebox/internal/storage/types"
)

func main() {
	configDir := flag.String("config", ".", "Directory containing config.yml")
	flag.Parse()

	// 1. Load Configuration
	cfg := config.LoadConfig(*configDir)

	// 2. Initialize Logging
	if err := logging.Initialize(cfg.Logging); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.Shutdown()

	// 3. Initialize Storage Backend
	recipeStore, userStore, closeStorage, err := buildStorage(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}
	defer closeStorage()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Storage.Mongo.ConnectTimeout)
	if err := recipeStore.EnsureIndexes(ctx); err != nil {
		slog.Warn("Failed to ensure recipe indexes", "error", err)
	}
	if err := userStore.EnsureIndexes(ctx); err != nil {
		slog.Warn("Failed to ensure user indexes", "error", err)
	}
	cancel()

	// 4. Initialize Events Publisher
	publisher, err := buildPublisher(cfg)
	if err != nil {
		slog.Error("Failed to initialize events publisher", "backend", cfg.Events.Backend, "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	// 5. Wire Services
	catalog := recipes.NewService(recipeStore, publisher, slog.Default())
	auth := identity.NewService(userStore, slog.Default())

	srv := server.New(cfg.Server, slog.Default())

	handler := rest.NewHandler(catalog, auth)
	handler.SetAuthRateLimiter(srv.AuthRateLimiter())
	handler.RegisterRoutes(srv.HTTPMux())

	// 6. Start Server
	runCtx, stopRun := context.WithCancel(context.Background())
	defer stopRun()

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start(runCtx)
	}()

	// 7. Wait for Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("Shutdown signal received", "signal", sig.String())
	case err := <-errChan:
		if err != nil {
			slog.Error("Server failed", "error", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	stopRun()
	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Shutdown error", "error", err)
	}

	slog.Info("Server exiting")
}

func buildStorage(cfg *config.Config) (types.RecipeStore, types.UserStore, func(), error) {
	switch cfg.Storage.Backend {
	case "memory":
		return storagemem.NewRecipeStore(), storagemem.NewUserStore(), func() {}, nil

	default: // mongo, enforced by config validation
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Storage.Mongo.ConnectTimeout)
		defer cancel()

		provider, err := storagemongo.NewProvider(ctx, cfg.Storage.Mongo.URI, cfg.Storage.Mongo.Database)
		if err != nil {
			return nil, nil, nil, err
		}
		slog.Info("Connected to MongoDB", "database", cfg.Storage.Mongo.Database)

		recipeStore := storagemongo.NewRecipeStore(provider.Database(), cfg.Storage.Mongo.RecipesCollection)
		userStore := storagemongo.NewUserStore(provider.Database(), cfg.Storage.Mongo.UsersCollection)

		closeFn := func() {
			if err := provider.Close(context.Background()); err != nil {
				slog.Error("Error closing MongoDB connection", "error", err)
			}
		}
		return recipeStore, userStore, closeFn, nil
	}
}

func buildPublisher(cfg *config.Config) (events.Publisher, error) {
	switch cfg.Events.Backend {
	case "nats":
		pub, err := eventsnats.Connect(cfg.Events.NATS.URL, cfg.Events.NATS.SubjectPrefix)
		if err != nil {
			return nil, err
		}
		slog.Info("Connected to NATS", "url", cfg.Events.NATS.URL)
		return pub, nil

	default: // memory, enforced by config validation
		return eventsmem.NewPublisher(cfg.Events.Buffer), nil
	}
}
