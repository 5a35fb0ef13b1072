package gate

import (
	"github.com/cuemby/hutch/pkg/types"
)

// Gate is the common contract of event handlers. A gate's name is the
// event type it claims. Every Gate must also satisfy PureGate or
// StateGate; the runner rejects anything else at registration.
type Gate interface {
	Name() string
}

// PureGate maps one event to one event. It must not read or write the
// store, refs, or any external state; its only effect is the returned
// event.
type PureGate interface {
	Gate
	Transform(event types.Event) (types.Event, error)
}

// Snapshot is the immutable state view a StateGate transforms over,
// keyed by ref name. An exact ReadSet entry naming an unbound ref
// appears with a nil value.
type Snapshot map[string]types.Value

// StateGate declares the refs it consults and transforms an event plus a
// snapshot of those refs into a mutation batch. It must not touch the
// store or refs directly; the runner materializes the snapshot from
// Reads before calling Transform and applies the returned batch.
type StateGate interface {
	Gate
	Reads(event types.Event) (*ReadSet, error)
	Transform(event types.Event, state Snapshot) (*Batch, error)
}
