// Package bootstrap wires all dependencies and starts the application.
// Configuration comes from a YAML file and MOCKGATE_* environment
// variables; either alone is enough to run.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apihttp "github.com/mockgate/mockgate/adapters/http"
	"github.com/mockgate/mockgate/adapters/http/admin"
	"github.com/mockgate/mockgate/adapters/idgen"
	"github.com/mockgate/mockgate/adapters/memory"
	"github.com/mockgate/mockgate/adapters/metrics"
	"github.com/mockgate/mockgate/adapters/postgres"
	"github.com/mockgate/mockgate/adapters/sqlite"
	"github.com/mockgate/mockgate/app"
	"github.com/mockgate/mockgate/config"
	"github.com/mockgate/mockgate/ports"
	"github.com/rs/zerolog"
)

// App represents the running application.
type App struct {
	Logger     zerolog.Logger
	Config     *config.Config
	HTTPServer *http.Server
	Metrics    *metrics.Collector

	// Holder is non-nil when the app was built with hot reload.
	Holder *config.Holder

	// Services
	endpoints *app.EndpointService
	schemas   *app.SchemaService
	transfer  *app.TransferService

	stores  ports.Stores
	closeDB func() error
}

// New creates and initializes the application from its configuration.
func New(cfg *config.Config) (*App, error) {
	logger := setupLogger(cfg)

	logger.Info().Msg("initializing mockgate")

	a := &App{
		Logger: logger,
		Config: cfg,
	}

	// Initialize storage
	if err := a.initStores(); err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	// Initialize metrics if enabled
	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New()
		logger.Info().Msg("prometheus metrics enabled")
	}

	a.initServices()
	a.initHTTPServer()

	return a, nil
}

// NewWithHotReload creates the application with config hot reload: the
// file is watched for changes and SIGHUP forces a reload. Only the
// reloadable subset of the config takes effect without a restart.
func NewWithHotReload(cfgFile string) (*App, error) {
	bootLogger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	holder, err := config.NewHolder(cfgFile, bootLogger)
	if err != nil {
		return nil, err
	}

	a, err := New(holder.Get())
	if err != nil {
		return nil, err
	}
	a.Holder = holder

	holder.OnChange(func(cfg *config.Config) {
		a.applyReload(cfg)
	})
	holder.OnError(func(err error) {
		if a.Metrics != nil {
			a.Metrics.ConfigReloadErrors.Inc()
		}
	})

	if err := holder.WatchFile(); err != nil {
		a.Logger.Warn().Err(err).Msg("config file watch unavailable, SIGHUP still works")
	}
	holder.WatchSignals()

	return a, nil
}

// Stores exposes the wired definition stores, for commands that work on
// the data without running the server.
func (a *App) Stores() ports.Stores {
	return a.stores
}

// Endpoints returns the endpoint service.
func (a *App) Endpoints() *app.EndpointService {
	return a.endpoints
}

// Schemas returns the schema service.
func (a *App) Schemas() *app.SchemaService {
	return a.schemas
}

// Transfer returns the snapshot transfer service.
func (a *App) Transfer() *app.TransferService {
	return a.transfer
}

func (a *App) initStores() error {
	cfg := a.Config

	switch cfg.Database.Driver {
	case "postgres":
		db, err := postgres.Open(cfg.Database.DSN)
		if err != nil {
			return err
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return fmt.Errorf("migrate: %w", err)
		}
		a.stores = db.Stores()
		a.closeDB = db.Close
	case "memory":
		a.stores = memory.New().Stores()
	default:
		db, err := sqlite.Open(cfg.Database.DSN)
		if err != nil {
			return err
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return fmt.Errorf("migrate: %w", err)
		}
		a.stores = db.Stores()
		a.closeDB = db.Close
	}

	a.Logger.Info().
		Str("driver", cfg.Database.Driver).
		Str("dsn", cfg.Database.DSN).
		Msg("storage initialized")
	return nil
}

func (a *App) initServices() {
	a.endpoints = app.NewEndpointService(a.stores, a.Logger)
	a.schemas = app.NewSchemaService(a.stores, a.Logger)
	a.transfer = app.NewTransferService(a.stores, a.Logger)
}

func (a *App) initHTTPServer() {
	cfg := a.Config

	adminHandler := admin.NewHandler(admin.Deps{
		Endpoints: a.endpoints,
		Schemas:   a.schemas,
		Transfer:  a.transfer,
		Tx:        a.stores.Tx,
		Metrics:   a.Metrics,
		Logger:    a.Logger,
	})

	router := apihttp.NewRouterWithConfig(a.Logger, apihttp.RouterConfig{
		Metrics:       a.Metrics,
		MetricsPath:   cfg.Metrics.Path,
		EnableOpenAPI: cfg.OpenAPI.Enabled,
		AdminHandler:  adminHandler.Router(),
		IDs:           idgen.UUID{},
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	a.HTTPServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	a.Logger.Info().Str("addr", addr).Msg("http server configured")
}

// applyReload applies the reloadable parts of a new configuration to the
// running app. The rest (server address, storage, toggles) waits for a
// restart; the holder already logged what changed.
func (a *App) applyReload(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err == nil {
		zerolog.SetGlobalLevel(level)
	}

	a.Config = cfg

	if a.Metrics != nil {
		a.Metrics.ConfigReloads.Inc()
		a.Metrics.ConfigLastReload.SetToCurrentTime()
	}
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run() error {
	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info().
			Str("addr", a.HTTPServer.Addr).
			Msg("starting http server")
		if err := a.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt or error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		a.Logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	return a.Shutdown()
}

// Shutdown gracefully stops the application.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stop config watching
	if a.Holder != nil {
		a.Holder.Stop()
	}

	// Shutdown HTTP server
	if a.HTTPServer != nil {
		if err := a.HTTPServer.Shutdown(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("http server shutdown error")
		}
	}

	// Close database
	if a.closeDB != nil {
		if err := a.closeDB(); err != nil {
			a.Logger.Error().Err(err).Msg("database close error")
		}
	}

	a.Logger.Info().Msg("shutdown complete")
	return nil
}

func setupLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Logging.Format == "console" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
