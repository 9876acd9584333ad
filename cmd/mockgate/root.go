package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mockgate",
	Short: "Mock API definition service with schemas and snapshots",
	Long: `MockGate is a self-hosted backend for defining mock APIs.

Register base endpoints, describe the paths and response shapes beneath
them, build reusable data schemas, and move whole configurations between
installations as snapshots.

Quick start:
  mockgate serve      # Start the definition API server

Management:
  mockgate endpoints  # List defined endpoints
  mockgate schemas    # List defined schemas
  mockgate export     # Dump all definitions as a snapshot
  mockgate validate   # Validate configuration`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "mockgate.yaml", "config file path")
}
