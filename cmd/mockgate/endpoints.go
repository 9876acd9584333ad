package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/mockgate/mockgate/adapters/memory"
	"github.com/mockgate/mockgate/adapters/postgres"
	"github.com/mockgate/mockgate/adapters/sqlite"
	"github.com/mockgate/mockgate/app"
	"github.com/mockgate/mockgate/config"
	"github.com/mockgate/mockgate/ports"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var endpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "List defined mock endpoints",
	Long: `List every base endpoint with the relative endpoints beneath it.

Examples:
  mockgate endpoints
  mockgate endpoints --config /etc/mockgate/config.yaml`,
	RunE: runEndpoints,
}

func init() {
	rootCmd.AddCommand(endpointsCmd)
}

func runEndpoints(cmd *cobra.Command, args []string) error {
	stores, closeStores, err := openStores()
	if err != nil {
		return err
	}
	defer closeStores()

	svc := app.NewEndpointService(stores, zerolog.Nop())
	ctx := context.Background()

	bases, err := svc.ListBases(ctx)
	if err != nil {
		return fmt.Errorf("failed to list base endpoints: %w", err)
	}

	if len(bases) == 0 {
		fmt.Println("No endpoints defined.")
		fmt.Println()
		fmt.Println("Register one through the API:")
		fmt.Println(`  curl -X POST localhost:8080/api/base-endpoints -d '{"endpoint": "/api/v1"}'`)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BASE\tID\tMETHOD\tPATH\tFIELDS")
	fmt.Fprintln(w, "----\t--\t------\t----\t------")

	for _, be := range bases {
		rels, err := svc.ListRelative(ctx, be.ID)
		if err != nil {
			return fmt.Errorf("failed to list relative endpoints: %w", err)
		}
		if len(rels) == 0 {
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\n", be.Endpoint)
			continue
		}
		for _, re := range rels {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%d\n", be.Endpoint, re.ID, re.Method, re.Endpoint, len(re.Fields))
		}
	}

	w.Flush()
	return nil
}

// openStores opens the configured definition storage for data commands.
func openStores() (ports.Stores, func() error, error) {
	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return ports.Stores{}, nil, fmt.Errorf("failed to load config: %w", err)
	}

	switch cfg.Database.Driver {
	case "postgres":
		db, err := postgres.Open(cfg.Database.DSN)
		if err != nil {
			return ports.Stores{}, nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return ports.Stores{}, nil, fmt.Errorf("migrate: %w", err)
		}
		return db.Stores(), db.Close, nil
	case "memory":
		return memory.New().Stores(), func() error { return nil }, nil
	default:
		db, err := sqlite.Open(cfg.Database.DSN)
		if err != nil {
			return ports.Stores{}, nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return ports.Stores{}, nil, fmt.Errorf("migrate: %w", err)
		}
		return db.Stores(), db.Close, nil
	}
}
