package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cuemby/hutch/pkg/log"
	"github.com/cuemby/hutch/pkg/refs"
	"github.com/cuemby/hutch/pkg/runner"
	"github.com/cuemby/hutch/pkg/sqlgate"
	"github.com/cuemby/hutch/pkg/store"
	"github.com/cuemby/hutch/pkg/streamlog"
	"github.com/spf13/cobra"
	bolt "go.etcd.io/bbolt"
)

// database bundles everything a command needs to work on an open store.
type database struct {
	store  store.Store
	refs   refs.Refs
	stream *streamlog.Log
	runner *runner.Runner
	close  func() error
}

// openDatabase builds the backend selected by the global flags and wires
// a runner with the SQL dispatch gate registered.
func openDatabase(cmd *cobra.Command) (*database, error) {
	backend, _ := cmd.Flags().GetString("backend")
	dataDir, _ := cmd.Flags().GetString("data-dir")
	streamName, _ := cmd.Flags().GetString("stream-level")

	level, err := streamlog.ParseLevel(streamName)
	if err != nil {
		return nil, err
	}

	db := &database{
		stream: streamlog.New(level),
		close:  func() error { return nil },
	}

	switch backend {
	case "memory":
		backendLogger := log.WithBackend(backend)
		backendLogger.Warn().Msg("Memory backend does not persist across invocations")
		db.store = store.NewMemoryStore()
		db.refs = refs.NewMemoryRefs()

	case "file":
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		fileStore, err := store.NewFileStore(dataDir)
		if err != nil {
			return nil, err
		}
		fileRefs, err := refs.NewFileRefs(dataDir)
		if err != nil {
			return nil, err
		}
		db.store = fileStore
		db.refs = fileRefs

	case "bolt":
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		bdb, err := bolt.Open(filepath.Join(dataDir, "hutch.db"), 0600, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		boltStore, err := store.NewBoltStore(bdb)
		if err != nil {
			bdb.Close()
			return nil, err
		}
		boltRefs, err := refs.NewBoltRefs(bdb)
		if err != nil {
			bdb.Close()
			return nil, err
		}
		db.store = boltStore
		db.refs = boltRefs
		db.close = bdb.Close

	default:
		return nil, fmt.Errorf("unknown backend %q (want memory, file, or bolt)", backend)
	}

	db.runner = runner.New(db.store, db.refs, runner.WithStreamLog(db.stream))
	if err := db.runner.Register(sqlgate.New()); err != nil {
		_ = db.close()
		return nil, err
	}
	return db, nil
}
