/*
Package refs provides the name-to-hash reference layer.

A ref is a named, mutable pointer to a stored object's hash. Names are
hierarchical (/-separated segments), and the layer supports prefix
listing, which gives the database its directory semantics: setting
db/tables/users/rows/1 and listing "db/tables/users/rows/" behaves like
reading a directory.

Three implementations mirror the store backends: MemoryRefs,
FileRefs (one file per ref under <base>/refs/, with empty ancestor
directories pruned on delete), and BoltRefs (a "refs" bucket whose
byte-ordered keys make listing a cursor scan).
*/
package refs
