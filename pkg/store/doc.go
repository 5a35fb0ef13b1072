/*
Package store provides the content-addressed object repository.

Objects are stored under the hash of their canonical serialization, never
under an externally chosen key. The binding from hash to value is
insertion-monotonic: it is created on the first Put and never changes or
disappears for the store's lifetime, which is what lets refs swing between
versions while history stays reachable.

# Backends

Three implementations of the Store interface:

  - MemoryStore: a mutex-guarded map, for tests and ephemeral databases.
  - FileStore: one file per object under <base>/objects/<hh>/<rest>, with
    the first two hex characters of the hash as a fan-out directory.
  - BoltStore: an "objects" bucket in a shared BoltDB file, for
    single-file embedded deployments.

All backends persist the same canonical bytes (see pkg/codec), so hashes
are interchangeable across them.
*/
package store
