package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mockgate/mockgate/app"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all definitions as a snapshot",
	Long: `Dump every base endpoint, relative endpoint, field and schema as
one JSON snapshot, the same document GET /api/export serves.

Examples:
  mockgate export
  mockgate export --output backup.json`,
	RunE: runExport,
}

var exportOutput string

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write snapshot to file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	stores, closeStores, err := openStores()
	if err != nil {
		return err
	}
	defer closeStores()

	svc := app.NewTransferService(stores, zerolog.Nop())

	snap, err := svc.Export(context.Background())
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	data = append(data, '\n')

	if exportOutput == "" {
		os.Stdout.Write(data)
		return nil
	}

	if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOutput, err)
	}

	fmt.Printf("%s Exported %d base endpoints, %d relative endpoints, %d schemas to %s\n",
		checkMark, len(snap.BaseEndpoints), len(snap.RelativeEndpoints), len(snap.Schema), exportOutput)
	return nil
}
