package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mockgate/mockgate/app"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <snapshot-file>",
	Short: "Import a snapshot, replacing all definitions",
	Long: `Load a snapshot file into storage. Everything currently defined
is deleted first, exactly like POST /api/import.

Examples:
  mockgate import backup.json
  mockgate import backup.json --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var importYes bool

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "skip the confirmation prompt")
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	var snap app.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}

	if !importYes {
		msg := fmt.Sprintf("Replace ALL definitions with %s (%d base endpoints, %d relative endpoints, %d schemas)?",
			args[0], len(snap.BaseEndpoints), len(snap.RelativeEndpoints), len(snap.Schema))
		if !confirm(msg) {
			fmt.Println("Aborted.")
			return nil
		}
	}

	stores, closeStores, err := openStores()
	if err != nil {
		return err
	}
	defer closeStores()

	svc := app.NewTransferService(stores, zerolog.Nop())

	if err := svc.Import(context.Background(), snap); err != nil {
		return fmt.Errorf("failed to import: %w", err)
	}

	fmt.Printf("%s Imported %d base endpoints, %d relative endpoints, %d schemas\n",
		checkMark, len(snap.BaseEndpoints), len(snap.RelativeEndpoints), len(snap.Schema))
	return nil
}

func confirm(message string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("? %s [y/N]: ", message)
	input, _ := reader.ReadString('\n')
	input = strings.ToLower(strings.TrimSpace(input))
	return input == "y" || input == "yes"
}
