package main

import (
	"fmt"
	"os"

	"github.com/mockgate/mockgate/bootstrap"
	"github.com/mockgate/mockgate/config"
	"github.com/spf13/cobra"
)

var (
	hotReload bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the definition API server",
	Long: `Start the MockGate server.

The server will:
  - Load configuration from mockgate.yaml (or --config)
  - Or load configuration from MOCKGATE_* environment variables
  - Open the definition storage and run migrations
  - Serve the definition API under /api

Environment variables (for Docker deployments):
  MOCKGATE_DATABASE_DRIVER  - Storage driver: sqlite, postgres or memory
  MOCKGATE_DATABASE_DSN     - Database path or URL (default: mockgate.db)
  MOCKGATE_SERVER_PORT      - Server port (default: 8080)
  MOCKGATE_LOG_LEVEL        - Log level: debug, info, warn, error
  MOCKGATE_METRICS_ENABLED  - Expose prometheus metrics on /metrics
  MOCKGATE_OPENAPI_ENABLED  - Serve the Swagger UI on /swagger

Examples:
  mockgate serve
  mockgate serve --config /etc/mockgate/config.yaml
  mockgate serve --hot-reload=false

  # Docker (env vars only):
  MOCKGATE_DATABASE_DSN=/data/mockgate.db mockgate serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&hotReload, "hot-reload", true, "enable hot reload of configuration")
}

func runServe(cmd *cobra.Command, args []string) error {
	hasConfigFile := false
	if _, err := os.Stat(cfgFile); err == nil {
		hasConfigFile = true
	}

	// Every knob has a default, so running without any configuration is
	// fine. Say so instead of failing.
	if !hasConfigFile && !config.HasEnvConfig() {
		fmt.Printf("No config file at %s and no MOCKGATE_* variables set, using defaults.\n", cfgFile)
	}

	// Create application
	var app *bootstrap.App
	var err error

	if hasConfigFile && hotReload {
		// Hot reload only works with a config file
		app, err = bootstrap.NewWithHotReload(cfgFile)
	} else {
		cfg, loadErr := config.LoadWithFallback(cfgFile)
		if loadErr != nil {
			return fmt.Errorf("error loading config: %w", loadErr)
		}
		app, err = bootstrap.New(cfg)
	}

	if err != nil {
		return fmt.Errorf("error initializing: %w", err)
	}

	// Run (blocks until shutdown)
	return app.Run()
}
