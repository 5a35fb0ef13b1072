package streamlog

import (
	"fmt"
	"sync"

	"github.com/cuemby/hutch/pkg/types"
)

// Level controls how much of each dispatch observation is kept.
type Level int

const (
	// Off records nothing.
	Off Level = iota
	// Events records event type and claim.
	Events
	// Data additionally records the event payload.
	Data
)

// ParseLevel converts a level name (off, events, data) to a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "off":
		return Off, nil
	case "events":
		return Events, nil
	case "data":
		return Data, nil
	default:
		return Off, fmt.Errorf("unknown stream log level %q", s)
	}
}

func (l Level) String() string {
	switch l {
	case Events:
		return "events"
	case Data:
		return "data"
	default:
		return "off"
	}
}

// Log is the causally ordered observation log of the runner. Entries
// appear in pre-order: an event's claim entry precedes every entry its
// handler transitively produced.
type Log struct {
	mu      sync.RWMutex
	level   Level
	entries []types.LogEntry
}

// New creates a log at the given verbosity.
func New(level Level) *Log {
	return &Log{level: level}
}

// Level returns the log's verbosity.
func (l *Log) Level() Level {
	if l == nil {
		return Off
	}
	return l.level
}

// Record appends an entry. At Events level the payload is stripped; at
// Off the entry is discarded.
func (l *Log) Record(entry types.LogEntry) {
	if l == nil || l.level == Off {
		return
	}
	if l.level == Events {
		entry.Data = nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

// Sample returns a snapshot of the entries in append order.
func (l *Log) Sample() []types.LogEntry {
	if l == nil {
		return nil
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]types.LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded entries.
func (l *Log) Len() int {
	if l == nil {
		return 0
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
