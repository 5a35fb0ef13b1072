package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cuemby/hutch/pkg/refs"
	"github.com/cuemby/hutch/pkg/runner"
	"github.com/cuemby/hutch/pkg/sqlgate"
	"github.com/cuemby/hutch/pkg/store"
	"github.com/cuemby/hutch/pkg/streamlog"
	"github.com/stretchr/testify/assert"
)

const sampleManifest = `apiVersion: hutch/v1
kind: Statements
metadata:
  name: schema
statements:
  - CREATE TABLE users (id INT)
  - SELECT * FROM users
---
apiVersion: hutch/v1
kind: Events
metadata:
  name: seed
events:
  - type: ping
    data:
      val: 42
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadMultiDocument(t *testing.T) {
	resources, err := Load(writeManifest(t, sampleManifest))
	assert.NoError(t, err)
	assert.Len(t, resources, 2)

	assert.Equal(t, KindStatements, resources[0].Kind)
	assert.Equal(t, "schema", resources[0].Metadata.Name)
	assert.Len(t, resources[0].Statements, 2)

	assert.Equal(t, KindEvents, resources[1].Kind)
	assert.Equal(t, "ping", resources[1].Events[0].Type)
	assert.Equal(t, 42, resources[1].Events[0].Data["val"])
}

func TestApplyEmitsThroughRunner(t *testing.T) {
	stream := streamlog.New(streamlog.Events)
	run := runner.New(store.NewMemoryStore(), refs.NewMemoryRefs(), runner.WithStreamLog(stream))
	assert.NoError(t, run.Register(sqlgate.New()))

	resources, err := Load(writeManifest(t, sampleManifest))
	assert.NoError(t, err)

	emitted, err := Apply(run, resources)
	assert.NoError(t, err)
	assert.Equal(t, 3, emitted)

	// Each statement was claimed by the sql gate and dispatched onward;
	// the parse events and the ping land in pending.
	var claimed, unclaimed int
	for _, entry := range stream.Sample() {
		if entry.Claimed == "" {
			unclaimed++
		} else {
			claimed++
		}
	}
	assert.Equal(t, 2, claimed)
	assert.Equal(t, 3, unclaimed)
	assert.Len(t, run.Pending(), 3)
}

func TestApplyRejectsUnknownKind(t *testing.T) {
	run := runner.New(store.NewMemoryStore(), refs.NewMemoryRefs())

	_, err := Apply(run, []Resource{{Kind: "Mystery"}})
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
