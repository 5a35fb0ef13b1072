/*
Package streamlog provides the leveled observation log of the resolution
runtime.

The runner records one entry per dispatched event: its type, the gate
that claimed it (empty when unclaimed), and at Data verbosity the
payload. Entries are kept in pre-order causal order, so a Sample reads as
the story of a dispatch: each parent event first, then everything it
transitively produced.
*/
package streamlog
