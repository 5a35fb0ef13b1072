/*
Package types defines the core data structures used throughout Hutch.

This package contains the fundamental types of Hutch's domain model: the
opaque stored Value, the content Hash, the Event record dispatched through
the runner, and the LogEntry captured by the stream log. It also defines
the sentinel errors shared by the storage and runtime packages.

The storage, runtime, and API packages depend on types; types depends on
nothing.
*/
package types
