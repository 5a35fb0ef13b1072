package runner

import (
	"fmt"

	"github.com/cuemby/hutch/pkg/codec"
	"github.com/cuemby/hutch/pkg/gate"
	"github.com/cuemby/hutch/pkg/log"
	"github.com/cuemby/hutch/pkg/metrics"
	"github.com/cuemby/hutch/pkg/refs"
	"github.com/cuemby/hutch/pkg/store"
	"github.com/cuemby/hutch/pkg/streamlog"
	"github.com/cuemby/hutch/pkg/types"
	"github.com/rs/zerolog"
)

// Runner is the event dispatch loop. It routes events to registered
// gates by type, materializes state snapshots for StateGates, applies
// their mutation batches atomically, feeds follow-up events back into
// the loop, and records every step in the stream log.
//
// The runner is single-threaded and cooperative: Emit is synchronous and
// returns only after the transitive chain of events has drained. The
// store and refs are owned by the runner for the duration of a dispatch.
type Runner struct {
	store   store.Store
	refs    refs.Refs
	stream  *streamlog.Log
	logger  zerolog.Logger
	gates   map[string]gate.Gate
	pending []types.Event
}

// Option configures a Runner.
type Option func(*Runner)

// WithStreamLog attaches an observation log.
func WithStreamLog(l *streamlog.Log) Option {
	return func(r *Runner) {
		r.stream = l
	}
}

// New creates a runner over the given store and refs.
func New(st store.Store, rf refs.Refs, opts ...Option) *Runner {
	r := &Runner{
		store:  st,
		refs:   rf,
		logger: log.WithComponent("runner"),
		gates:  make(map[string]gate.Gate),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register claims the event type equal to the gate's name. Re-registering
// a name replaces the previous gate. The gate must satisfy PureGate or
// StateGate.
func (r *Runner) Register(g gate.Gate) error {
	if g == nil || g.Name() == "" {
		return fmt.Errorf("gate must have a non-empty name")
	}
	switch g.(type) {
	case gate.PureGate, gate.StateGate:
	default:
		return fmt.Errorf("gate %q satisfies neither PureGate nor StateGate", g.Name())
	}

	r.gates[g.Name()] = g
	r.logger.Debug().Str("gate", g.Name()).Msg("Gate registered")
	return nil
}

// Emit dispatches an event and drains everything it transitively
// produces. Gate failures never surface here; they convert into emitted
// error events. The returned error covers only misuse of the API.
func (r *Runner) Emit(event types.Event) error {
	if event.Type == "" {
		return fmt.Errorf("event must have a non-empty type")
	}
	r.dispatch(event)
	return nil
}

// Pending returns the unclaimed events in arrival order.
func (r *Runner) Pending() []types.Event {
	out := make([]types.Event, len(r.pending))
	copy(out, r.pending)
	return out
}

// dispatch claims the event, runs its gate, and recursively dispatches
// whatever the gate produced. The claim entry is recorded before the
// handler runs, which is what makes the log pre-order causal.
func (r *Runner) dispatch(event types.Event) {
	g, ok := r.gates[event.Type]
	if !ok {
		r.stream.Record(types.LogEntry{Type: event.Type, Data: event.Data})
		r.pending = append(r.pending, event)
		metrics.EventsDispatched.WithLabelValues("unclaimed").Inc()
		metrics.PendingEvents.Set(float64(len(r.pending)))
		r.logger.Debug().Str("type", event.Type).Msg("Event unclaimed")
		return
	}

	r.stream.Record(types.LogEntry{Type: event.Type, Claimed: g.Name(), Data: event.Data})
	metrics.EventsDispatched.WithLabelValues("claimed").Inc()

	switch impl := g.(type) {
	case gate.PureGate:
		r.runPure(impl, event)
	case gate.StateGate:
		r.runState(impl, event)
	}
}

func (r *Runner) runPure(g gate.PureGate, event types.Event) {
	out, err := transformPure(g, event)
	if err != nil {
		r.fail(g.Name(), event, err)
		return
	}
	r.dispatch(out)
}

func (r *Runner) runState(g gate.StateGate, event types.Event) {
	readSet, err := readsOf(g, event)
	if err != nil {
		r.fail(g.Name(), event, err)
		return
	}

	snapshot, err := r.materialize(readSet)
	if err != nil {
		r.fail(g.Name(), event, err)
		return
	}

	batch, err := transformState(g, event, snapshot)
	if err != nil {
		r.fail(g.Name(), event, err)
		return
	}

	emits, err := r.apply(batch)
	if err != nil {
		metrics.BatchesRejected.Inc()
		r.fail(g.Name(), event, err)
		return
	}

	for _, e := range emits {
		r.dispatch(e)
	}
}

// fail converts a gate failure into an error event. If no gate claims
// error events they land in pending, observable through the log.
func (r *Runner) fail(gateName string, event types.Event, err error) {
	metrics.GateFailures.WithLabelValues(gateName).Inc()
	r.logger.Warn().Err(err).Str("gate", gateName).Str("type", event.Type).Msg("Gate failed")

	r.dispatch(types.NewEvent(types.EventError, map[string]any{
		"message": err.Error(),
		"cause":   event.Type,
	}))
}

// materialize builds the immutable snapshot a StateGate transforms over.
// Exact names resolve through refs and then the store; an unbound exact
// name appears with a nil value rather than failing. Prefixes expand via
// List and each listed name resolves the same way.
func (r *Runner) materialize(readSet *gate.ReadSet) (gate.Snapshot, error) {
	snapshot := make(gate.Snapshot)
	if readSet == nil {
		return snapshot, nil
	}

	for _, name := range readSet.Exacts() {
		value, found, err := r.resolve(name)
		if err != nil {
			return nil, err
		}
		if !found {
			snapshot[name] = nil
			continue
		}
		snapshot[name] = value
	}

	for _, prefix := range readSet.Prefixes() {
		names, err := r.refs.List(prefix)
		if err != nil {
			return nil, fmt.Errorf("failed to expand prefix %q: %w", prefix, err)
		}
		for _, name := range names {
			value, found, err := r.resolve(name)
			if err != nil {
				return nil, err
			}
			if !found {
				// Listed moments ago; a vanished ref means external mutation
				return nil, fmt.Errorf("ref %q disappeared during snapshot", name)
			}
			snapshot[name] = value
		}
	}

	return snapshot, nil
}

// resolve follows name -> hash -> value.
func (r *Runner) resolve(name string) (types.Value, bool, error) {
	hash, ok, err := r.refs.Get(name)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read ref %q: %w", name, err)
	}
	if !ok {
		return nil, false, nil
	}

	value, ok, err := r.store.Get(hash)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load object for ref %q: %w", name, err)
	}
	if !ok {
		return nil, false, fmt.Errorf("ref %q points at missing object %s", name, hash)
	}
	return value, true, nil
}

// apply validates a batch in full, then applies it: puts first (binding
// labels), then ref sets and deletes in declaration order. Follow-up
// events are returned for the caller to dispatch after the mutations.
// Validation happens before the first visible mutation, so every failure
// the runner itself can detect aborts with the store and refs untouched.
func (r *Runner) apply(batch *gate.Batch) ([]types.Event, error) {
	if batch == nil || len(batch.Ops()) == 0 {
		return nil, nil
	}

	ops := batch.Ops()

	// Validation pass: hash every put and check every ref op
	labels := make([]types.Hash, 0, batch.Puts())
	for _, op := range ops {
		switch op.Kind {
		case gate.OpPut:
			hash, _, err := codec.HashOf(op.Value)
			if err != nil {
				return nil, fmt.Errorf("%w: put %d: %v", types.ErrBatchApply, op.Label, err)
			}
			labels = append(labels, hash)
		case gate.OpRefSet:
			if err := refs.ValidateName(op.Name); err != nil {
				return nil, fmt.Errorf("%w: %v", types.ErrBatchApply, err)
			}
			if op.Label != gate.NoLabel && (op.Label < 0 || op.Label >= batch.Puts()) {
				return nil, fmt.Errorf("%w: ref %q uses undefined label %d", types.ErrBatchApply, op.Name, op.Label)
			}
		case gate.OpRefDelete:
			if err := refs.ValidateName(op.Name); err != nil {
				return nil, fmt.Errorf("%w: %v", types.ErrBatchApply, err)
			}
		case gate.OpEmit:
			if op.Event.Type == "" {
				return nil, fmt.Errorf("%w: emit with empty event type", types.ErrBatchApply)
			}
		default:
			return nil, fmt.Errorf("%w: unknown op kind %q", types.ErrBatchApply, op.Kind)
		}
	}

	// Puts first, binding labels
	for _, op := range ops {
		if op.Kind != gate.OpPut {
			continue
		}
		if _, err := r.store.Put(op.Value); err != nil {
			return nil, fmt.Errorf("%w: put %d: %v", types.ErrBatchApply, op.Label, err)
		}
		metrics.BatchOpsApplied.WithLabelValues(string(gate.OpPut)).Inc()
	}

	// Ref mutations in declaration order, then collect emits
	var emits []types.Event
	for _, op := range ops {
		switch op.Kind {
		case gate.OpRefSet:
			hash := op.Hash
			if op.Label != gate.NoLabel {
				hash = labels[op.Label]
			}
			if err := r.refs.Set(op.Name, hash); err != nil {
				return nil, fmt.Errorf("%w: set %q: %v", types.ErrBatchApply, op.Name, err)
			}
			metrics.BatchOpsApplied.WithLabelValues(string(gate.OpRefSet)).Inc()
		case gate.OpRefDelete:
			if err := r.refs.Delete(op.Name); err != nil {
				return nil, fmt.Errorf("%w: delete %q: %v", types.ErrBatchApply, op.Name, err)
			}
			metrics.BatchOpsApplied.WithLabelValues(string(gate.OpRefDelete)).Inc()
		case gate.OpEmit:
			emits = append(emits, op.Event)
		}
	}

	metrics.BatchesApplied.Inc()
	return emits, nil
}

// The transform wrappers convert a panicking gate into an ordinary gate
// failure so a misbehaving handler cannot take down the loop.

func transformPure(g gate.PureGate, event types.Event) (out types.Event, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("gate %q panicked: %v", g.Name(), rec)
		}
	}()
	return g.Transform(event)
}

func readsOf(g gate.StateGate, event types.Event) (rs *gate.ReadSet, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("gate %q panicked in reads: %v", g.Name(), rec)
		}
	}()
	return g.Reads(event)
}

func transformState(g gate.StateGate, event types.Event, snapshot gate.Snapshot) (b *gate.Batch, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("gate %q panicked: %v", g.Name(), rec)
		}
	}()
	return g.Transform(event, snapshot)
}
