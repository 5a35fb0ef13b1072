package main

import (
	"fmt"

	"github.com/cuemby/hutch/pkg/types"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <statement> [statement...]",
	Short: "Run SQL statements through the dispatch loop",
	Long: `Emit each statement as a sql event and print the resulting
stream log entries.

Examples:
  # Dispatch a query
  hutch sql "SELECT * FROM users"

  # Several statements in order
  hutch sql "CREATE TABLE users (id INT)" "INSERT INTO users VALUES (1)"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

var emitCmd = &cobra.Command{
	Use:   "emit <type>",
	Short: "Emit a raw event",
	Long: `Emit an event of the given type with an optional JSON payload.

Examples:
  hutch emit ping
  hutch emit sql --data '{"sql": "SELECT 1"}'`,
	Args: cobra.ExactArgs(1),
	RunE: runEmit,
}

func init() {
	emitCmd.Flags().String("data", "", "JSON event payload")
}

func runSQL(cmd *cobra.Command, args []string) error {
	db, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer db.close()

	for _, statement := range args {
		if err := db.runner.Emit(types.NewEvent("sql", map[string]any{"sql": statement})); err != nil {
			return err
		}
	}

	printDispatch(db)
	return nil
}

func runEmit(cmd *cobra.Command, args []string) error {
	db, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer db.close()

	var data types.Value
	if raw, _ := cmd.Flags().GetString("data"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return fmt.Errorf("invalid --data payload: %w", err)
		}
	}

	if err := db.runner.Emit(types.NewEvent(args[0], data)); err != nil {
		return err
	}

	printDispatch(db)
	return nil
}

// printDispatch renders the stream log and pending set of a dispatch.
func printDispatch(db *database) {
	for _, entry := range db.stream.Sample() {
		claimed := entry.Claimed
		if claimed == "" {
			claimed = "-"
		}
		if entry.Data != nil {
			payload, err := json.Marshal(entry.Data)
			if err == nil {
				fmt.Printf("%-24s claimed=%-12s %s\n", entry.Type, claimed, payload)
				continue
			}
		}
		fmt.Printf("%-24s claimed=%s\n", entry.Type, claimed)
	}

	pending := db.runner.Pending()
	if len(pending) > 0 {
		fmt.Printf("\n%d event(s) pending:\n", len(pending))
		for _, ev := range pending {
			fmt.Printf("  %s\n", ev.Type)
		}
	}
}
