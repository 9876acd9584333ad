package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/mockgate/mockgate/app"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "List defined data schemas",
	Long: `List every schema with its field rows.

Examples:
  mockgate schemas
  mockgate schemas --config /etc/mockgate/config.yaml`,
	RunE: runSchemas,
}

func init() {
	rootCmd.AddCommand(schemasCmd)
}

func runSchemas(cmd *cobra.Command, args []string) error {
	stores, closeStores, err := openStores()
	if err != nil {
		return err
	}
	defer closeStores()

	svc := app.NewSchemaService(stores, zerolog.Nop())

	schemas, err := svc.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list schemas: %w", err)
	}

	if len(schemas) == 0 {
		fmt.Println("No schemas defined.")
		fmt.Println()
		fmt.Println("Create one through the API:")
		fmt.Println(`  curl -X POST localhost:8080/api/schemas -d '{"name": "User", "fields": [...]}'`)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tKEY\tTYPE\tVALUE")
	fmt.Fprintln(w, "--\t----\t---\t----\t-----")

	for _, sc := range schemas {
		if len(sc.Schema) == 0 {
			fmt.Fprintf(w, "%d\t%s\t-\t-\t-\n", sc.ID, sc.Name)
			continue
		}
		for _, row := range sc.Schema {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", sc.ID, sc.Name, row.Key, row.Type, row.Value)
		}
	}

	w.Flush()
	return nil
}
