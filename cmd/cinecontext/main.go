package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/time/rate"

	"cinecontext/api"
	"cinecontext/config"
	"cinecontext/handlers"
	"cinecontext/internal/database"
	"cinecontext/internal/logging"
	"cinecontext/services/accounts"
	"cinecontext/services/discovery"
	"cinecontext/services/metadata"
	"cinecontext/services/watchlist"
	"cinecontext/utils"
)

func main() {
	configPath := flag.String("config", "cinecontext.yaml", "settings file")
	envFile := flag.String("env", ".env", "dotenv file read before the environment")
	flag.Parse()

	if err := run(*configPath, *envFile); err != nil {
		fmt.Fprintln(os.Stderr, "cinecontext:", err)
		os.Exit(1)
	}
}

func run(configPath, envFile string) error {
	settings, err := config.NewManager(configPath).WithEnvFile(envFile).Load()
	if err != nil {
		return err
	}

	logger, logCloser := logging.New(settings.Logging)
	defer logCloser.Close()
	logging.Install(logger)

	provider := metadata.NewClient(settings.Provider, nil, logger)
	if !provider.IsConfigured() {
		logger.Warn("tmdb api key not set; pages will report the provider as not configured")
	}

	backend, closeBackend, err := openWatchlistBackend(settings.Storage)
	if err != nil {
		return err
	}
	defer closeBackend()

	store, err := watchlist.NewStore(backend, logger)
	if err != nil {
		return fmt.Errorf("load watchlist: %w", err)
	}

	render, err := handlers.NewRenderer(handlers.RendererOptions{
		Images:        metadata.ImageCDN{BaseURL: settings.Provider.ImageBaseURL},
		Locale:        settings.UI.Locale,
		IsWatchlisted: store.IsWatchlisted,
	})
	if err != nil {
		return err
	}

	h := handlers.New(
		discovery.NewService(provider, settings.Provider.Language, settings.UI, logger),
		store,
		accounts.NewService(logger),
		render,
		logger,
	)

	r := utils.NewRouter(settings.Server.CORSOrigins)
	r.Use(api.RequestID, api.AccessLog(logger), api.Metrics)
	if settings.Server.RateLimit > 0 {
		limiter := api.NewIPRateLimiter(rate.Limit(settings.Server.RateLimit), settings.Server.RateLimitBurst)
		defer limiter.Close()
		r.Use(api.RateLimitMiddleware(limiter))
	}
	r.Handle("/metrics", api.MetricsHandler()).Methods(http.MethodGet)
	h.Register(r)

	server := &http.Server{
		Addr:              settings.Server.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", server.Addr, "version", handlers.AppVersion(), "storage", settings.Storage.Backend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openWatchlistBackend returns the configured persistence for the watchlist
// plus a func releasing it.
func openWatchlistBackend(cfg config.StorageSettings) (watchlist.Backend, func(), error) {
	switch cfg.Backend {
	case config.StorageBackendSQLite:
		db, err := database.NewDB(database.Config{DatabasePath: filepath.Join(cfg.Dir, "cinecontext.db")})
		if err != nil {
			return nil, nil, err
		}
		repo := database.NewLocalStorageRepository(db.Connection())
		return watchlist.NewSQLiteBackend(repo), func() {
			if err := db.Close(); err != nil {
				slog.Warn("close database", "error", err)
			}
		}, nil
	default:
		return watchlist.NewFileBackend(afero.NewOsFs(), cfg.Dir), func() {}, nil
	}
}
