/*
Package codec provides canonical serialization and content hashing.

A value's canonical form is its JSON encoding with map keys in sorted
order; its hash is the hex-encoded SHA-256 of those bytes. The canonical
form is what the filesystem and bolt backends persist, so the hash law
holds across backends: equal values encode to equal bytes and hash to
equal hashes.
*/
package codec
