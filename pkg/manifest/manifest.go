package manifest

import (
	"fmt"
	"io"
	"os"

	"github.com/cuemby/hutch/pkg/runner"
	"github.com/cuemby/hutch/pkg/types"
	"gopkg.in/yaml.v3"
)

// Resource kinds understood by Apply.
const (
	KindEvents     = "Events"
	KindStatements = "Statements"
)

// Resource is one YAML document: a named batch of events or SQL
// statements to feed through the runner.
type Resource struct {
	APIVersion string           `yaml:"apiVersion"`
	Kind       string           `yaml:"kind"`
	Metadata   ResourceMetadata `yaml:"metadata"`
	Events     []EventSpec      `yaml:"events,omitempty"`
	Statements []string         `yaml:"statements,omitempty"`
}

// ResourceMetadata names a resource.
type ResourceMetadata struct {
	Name   string            `yaml:"name"`
	Labels map[string]string `yaml:"labels,omitempty"`
}

// EventSpec is one event to emit.
type EventSpec struct {
	Type string         `yaml:"type"`
	Data map[string]any `yaml:"data,omitempty"`
}

// Load reads every YAML document in the file.
func Load(filename string) ([]Resource, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer f.Close()

	return decode(f)
}

func decode(r io.Reader) ([]Resource, error) {
	var resources []Resource
	dec := yaml.NewDecoder(r)
	for {
		var res Resource
		if err := dec.Decode(&res); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		resources = append(resources, res)
	}
	return resources, nil
}

// Apply emits every event described by the resources, in document order.
// Statements resources wrap each statement as a sql event. Returns the
// number of events emitted.
func Apply(run *runner.Runner, resources []Resource) (int, error) {
	emitted := 0
	for _, res := range resources {
		events, err := res.events()
		if err != nil {
			return emitted, err
		}
		for _, ev := range events {
			if err := run.Emit(ev); err != nil {
				return emitted, fmt.Errorf("failed to emit %q from %q: %w", ev.Type, res.Metadata.Name, err)
			}
			emitted++
		}
	}
	return emitted, nil
}

func (r Resource) events() ([]types.Event, error) {
	switch r.Kind {
	case KindEvents:
		events := make([]types.Event, 0, len(r.Events))
		for _, spec := range r.Events {
			var data types.Value
			if spec.Data != nil {
				data = spec.Data
			}
			events = append(events, types.NewEvent(spec.Type, data))
		}
		return events, nil
	case KindStatements:
		events := make([]types.Event, 0, len(r.Statements))
		for _, sql := range r.Statements {
			events = append(events, types.NewEvent("sql", map[string]any{"sql": sql}))
		}
		return events, nil
	default:
		return nil, fmt.Errorf("unsupported resource kind: %s", r.Kind)
	}
}
