/*
Package gate defines the event-handler contracts of the resolution
runtime.

A gate claims the event type matching its name. PureGates map one event
to one event with no state access. StateGates declare a ReadSet of refs,
receive an immutable Snapshot materialized from it, and return a Batch:
an ordered, atomic proposal of store puts, ref mutations, and follow-up
events. Labels let a batch's ref-sets point at hashes produced by its own
puts.

The runner (pkg/runner) enforces these contracts; this package is pure
data and interfaces so gate implementations depend only on it and
pkg/types.
*/
package gate
