package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/cuemby/hutch/pkg/api"
	"github.com/cuemby/hutch/pkg/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the database over HTTP",
	Long: `Open the database and expose it over HTTP: object and ref
reads, event emission, the stream log, and Prometheus metrics.

Examples:
  hutch serve --listen :7420
  hutch serve --backend bolt --data-dir /var/lib/hutch`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("listen", ":7420", "Address to listen on")
}

func runServe(cmd *cobra.Command, args []string) error {
	listen, _ := cmd.Flags().GetString("listen")

	db, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer db.close()

	server := api.NewServer(db.runner, db.store, db.refs, db.stream)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(listen)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		componentLogger := log.WithComponent("serve")
		componentLogger.Info().Str("signal", sig.String()).Msg("Shutting down")
		return nil
	}
}
