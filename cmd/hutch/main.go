package main

import (
	"fmt"
	"os"

	"github.com/cuemby/hutch/pkg/log"
	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hutch",
	Short: "Hutch - content-addressed event-driven database core",
	Long: `Hutch is a small embedded database built from three ideas: a
content-addressed object store, a hierarchical ref layer pointing names
at hashes, and an event-driven runtime in which gates transform events
into atomic mutation batches.

Statements and events flow through a single dispatch loop; every claim
and follow-up is captured in a causally ordered stream log.`,
	Version: Version,
}

func init() {
	// Set version template
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"Hutch version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	// Global flags
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().String("data-dir", "./hutch-data", "Database directory (file and bolt backends)")
	rootCmd.PersistentFlags().String("backend", "file", "Storage backend (memory, file, bolt)")
	rootCmd.PersistentFlags().String("stream-level", "data", "Stream log verbosity (off, events, data)")

	// Initialize logging before command execution
	cobra.OnInitialize(initLogging)

	// Add subcommands
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(emitCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(refsCmd)
	rootCmd.AddCommand(objectCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(serveCmd)
}

func initLogging() {
	level, _ := rootCmd.PersistentFlags().GetString("log-level")
	jsonOutput, _ := rootCmd.PersistentFlags().GetBool("log-json")

	log.Init(log.Config{
		Level:      log.Level(level),
		JSONOutput: jsonOutput,
	})
}
