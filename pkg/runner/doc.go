/*
Package runner provides the event dispatch loop at the heart of Hutch.

The runner owns a store, a ref layer, and a registry from event type to
gate. Emitting an event claims it for the matching gate, logs the claim,
and executes:

	┌─────────────────── DISPATCH LOOP ───────────────────┐
	│                                                       │
	│  Emit(event)                                          │
	│    │                                                  │
	│    ├─ no gate ──► log unclaimed ──► pending           │
	│    │                                                  │
	│    ├─ PureGate ──► Transform(event) ──► Emit(result)  │
	│    │                                                  │
	│    └─ StateGate ─► Reads(event) ─► snapshot           │
	│                    Transform(event, snapshot)         │
	│                    apply batch (puts, refs)           │
	│                    Emit each follow-up, in order      │
	│                                                       │
	│  any failure ──► Emit(error event)                    │
	└───────────────────────────────────────────────────────┘

Dispatch is depth-first and synchronous; the claim entry is logged before
the handler runs, so the stream log is pre-order causal: every parent
event precedes everything it transitively produced.

Batches validate in full before the first visible mutation. A failing
gate therefore leaves the store and refs exactly as they were when its
transform began, and the failure surfaces as an emitted error event, not
a returned error. A store or refs error raised while a validated batch is
being applied is reported the same way, but the mutations applied before
it are not rolled back.
*/
package runner
