// Package main provides the entry point for snipsync-server.
//
// snipsync-server keeps a versioned snippet collection synchronized
// across an in-memory cache, a durable local store, and an optional
// remote store, and serves it over an HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/yndnr/snipsync-go/internal/capture"
	"github.com/yndnr/snipsync-go/internal/core/service"
	"github.com/yndnr/snipsync-go/internal/infra/buildinfo"
	"github.com/yndnr/snipsync-go/internal/infra/confloader"
	"github.com/yndnr/snipsync-go/internal/infra/shutdown"
	"github.com/yndnr/snipsync-go/internal/remote"
	"github.com/yndnr/snipsync-go/internal/server/config"
	"github.com/yndnr/snipsync-go/internal/server/httpserver"
	"github.com/yndnr/snipsync-go/internal/storage"
	"github.com/yndnr/snipsync-go/internal/telemetry/logger"
	"github.com/yndnr/snipsync-go/internal/telemetry/metric"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("snipsync-server %s\n", buildinfo.String())
		return nil
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, slogLogger, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	log.Info("starting snipsync-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"config", *configFile)

	metrics := metric.NewRegistry()

	// Durable local store
	store, err := storage.Open(storage.Config{
		Dir:        cfg.Storage.DataDir,
		SyncWrites: cfg.Storage.SyncWrites,
		GCInterval: cfg.Storage.GCInterval,
		Passphrase: []byte(cfg.Storage.Passphrase),
	}, slogLogger)
	if err != nil {
		return fmt.Errorf("open local store: %w", err)
	}
	store.RegisterMetrics(metrics.Prometheus())

	// Remote store (disabled when no URL is configured)
	var remoteStore service.RemoteStore
	if cfg.Remote.URL != "" {
		remoteStore = remote.NewClient(cfg.Remote.URL,
			remote.WithAuthToken(cfg.Remote.AuthToken),
			remote.WithLogger(slogLogger))
		log.Info("remote store configured", "url", cfg.Remote.URL)
	} else {
		remoteStore = remote.NewDisabled()
		log.Info("remote store disabled")
	}

	// Synchronization engine
	engine := service.New(service.Config{
		MaxVersionHistory: cfg.Sync.MaxVersionHistory,
		RemoteTimeout:     cfg.Remote.Timeout,
		DefaultAuthor:     cfg.Sync.Author,
	}, store, remoteStore,
		service.WithLogger(slogLogger),
		service.WithMetrics(metrics))

	// Change capture for watched files
	capt, fileSource, err := initCapture(cfg, engine, slogLogger, metrics)
	if err != nil {
		return fmt.Errorf("init capture: %w", err)
	}

	// HTTP server
	router := httpserver.NewRouter(&httpserver.RouterConfig{
		Engine:          engine,
		Logger:          slogLogger,
		Metrics:         metrics,
		AuthToken:       cfg.Server.HTTP.AuthToken,
		GlobalRateLimit: 100,
		EnableAudit:     true,
	})
	httpServer := httpserver.New(cfg.Server.HTTP.Addr, router)

	// Log a hint when the config file changes on disk.
	configWatcher := initConfigWatcher(*configFile, slogLogger)

	shutdownHandler := shutdown.NewHandler(30 * time.Second)

	// Shutdown hooks run in registration order: stop accepting requests,
	// drain pending captures, then close the engine and the store.
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return httpServer.Shutdown(ctx)
	})

	if fileSource != nil {
		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			log.Info("stopping change capture")
			err := fileSource.Stop()
			capt.Close()
			return err
		})
	}

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("closing synchronization engine")
		return engine.Close(ctx)
	})

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("closing local store")
		return store.Close()
	})

	if configWatcher != nil {
		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			return configWatcher.Stop()
		})
	}

	go func() {
		log.Info("HTTP server listening", "addr", cfg.Server.HTTP.Addr)

		var err error
		if cfg.Server.HTTP.TLSCertFile != "" && cfg.Server.HTTP.TLSKeyFile != "" {
			err = httpServer.ListenAndServeTLS(cfg.Server.HTTP.TLSCertFile, cfg.Server.HTTP.TLSKeyFile)
		} else {
			err = httpServer.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	// Log remote push failures as they happen.
	go func() {
		for outcome := range engine.Outcomes() {
			if outcome.Err != nil {
				log.Warn("remote push failed",
					"error", outcome.Err,
					"duration", outcome.Duration)
			}
		}
	}()

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig loads configuration from file and environment.
func loadConfig(configFile string) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initLogger initializes the structured logger.
// Returns both the logger interface and slog.Logger for components that need it.
func initLogger(cfg *config.ServerConfig) (logger.Logger, *slog.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.SetDefault(log)

	slogLogger := logger.NewSlog(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})

	return log, slogLogger, nil
}

// initCapture wires the debounced change capture and its file watcher.
// Returns nils when auto-save is disabled or no regions are configured.
func initCapture(cfg *config.ServerConfig, engine *service.Engine, log *slog.Logger, metrics *metric.Registry) (*capture.Capture, *capture.FileSource, error) {
	if !cfg.Sync.AutoSave || len(cfg.Sync.Regions) == 0 {
		return nil, nil, nil
	}

	capt := capture.New(capture.Config{
		Enabled: true,
		Delay:   cfg.Sync.AutoSaveDelay,
		Author:  cfg.Sync.Author,
	}, engine,
		capture.WithLogger(log),
		capture.WithMetrics(metrics))

	fileSource, err := capture.NewFileSource(capt, log)
	if err != nil {
		return nil, nil, err
	}

	for _, region := range cfg.Sync.Regions {
		if err := fileSource.WatchFile(region.Path, region.SnippetID); err != nil {
			log.Warn("failed to watch region",
				"path", region.Path,
				"snippet_id", region.SnippetID,
				"error", err)
		}
	}

	fileSource.StartAsync()
	return capt, fileSource, nil
}

// initConfigWatcher watches the config file and logs when it changes.
// Changes require a restart to take effect.
func initConfigWatcher(configFile string, log *slog.Logger) *confloader.Watcher {
	if configFile == "" {
		return nil
	}

	watcher, err := confloader.NewWatcher()
	if err != nil {
		log.Warn("config watcher unavailable", "error", err)
		return nil
	}
	if err := watcher.Watch(configFile); err != nil {
		log.Warn("failed to watch config file", "path", configFile, "error", err)
		watcher.Stop()
		return nil
	}

	watcher.OnChange(func(path string) {
		log.Info("configuration file changed, restart to apply", "path", path)
	})
	watcher.StartAsync()

	return watcher
}
