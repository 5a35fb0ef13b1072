package main

import (
	"fmt"

	"github.com/cuemby/hutch/pkg/manifest"
	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply a manifest file",
	Long: `Apply events and SQL statements from a YAML manifest.

Examples:
  # Apply a schema manifest
  hutch apply -f schema.yaml

  # Seed events from several documents in one file
  hutch apply -f seed.yaml`,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringP("file", "f", "", "YAML file to apply (required)")
	_ = applyCmd.MarkFlagRequired("file")
}

func runApply(cmd *cobra.Command, args []string) error {
	filename, _ := cmd.Flags().GetString("file")

	resources, err := manifest.Load(filename)
	if err != nil {
		return err
	}

	db, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer db.close()

	emitted, err := manifest.Apply(db.runner, resources)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Applied %d resource(s), %d event(s) emitted\n", len(resources), emitted)
	printDispatch(db)
	return nil
}
