package gate

import (
	"github.com/cuemby/hutch/pkg/types"
)

// OpKind discriminates the operations a batch can carry.
type OpKind string

const (
	OpPut       OpKind = "put"
	OpRefSet    OpKind = "ref_set"
	OpRefDelete OpKind = "ref_delete"
	OpEmit      OpKind = "emit"
)

// NoLabel marks a ref-set that carries a literal hash instead of a
// label referring to an earlier put in the same batch.
const NoLabel = -1

// Op is one operation in a mutation batch. Which fields are meaningful
// depends on Kind.
type Op struct {
	Kind  OpKind
	Value types.Value // OpPut
	Name  string      // OpRefSet, OpRefDelete
	Hash  types.Hash  // OpRefSet with a literal hash
	Label int         // OpRefSet referring to a prior put, else NoLabel
	Event types.Event // OpEmit
}

// Batch is an atomic mutation proposal: an ordered sequence of store
// puts, ref sets, ref deletes, and follow-up events. Builder methods
// return the batch for chaining. The runner applies a batch as a unit;
// on validation failure nothing takes effect.
type Batch struct {
	ops  []Op
	puts int
}

// NewBatch creates an empty batch.
func NewBatch() *Batch {
	return &Batch{}
}

// Put stages a store put. The value is bound to the label equal to the
// number of puts staged before it, so the first put is label 0.
func (b *Batch) Put(value types.Value) *Batch {
	b.ops = append(b.ops, Op{Kind: OpPut, Value: value, Label: b.puts})
	b.puts++
	return b
}

// RefSet stages a ref binding to a literal hash.
func (b *Batch) RefSet(name string, hash types.Hash) *Batch {
	b.ops = append(b.ops, Op{Kind: OpRefSet, Name: name, Hash: hash, Label: NoLabel})
	return b
}

// RefSetLabel stages a ref binding to the hash produced by an earlier
// Put in this batch, identified by its label.
func (b *Batch) RefSetLabel(name string, label int) *Batch {
	b.ops = append(b.ops, Op{Kind: OpRefSet, Name: name, Label: label})
	return b
}

// RefDelete stages a ref removal.
func (b *Batch) RefDelete(name string) *Batch {
	b.ops = append(b.ops, Op{Kind: OpRefDelete, Name: name, Label: NoLabel})
	return b
}

// Emit stages a follow-up event, dispatched after the batch's mutations
// have been applied, in staging order.
func (b *Batch) Emit(event types.Event) *Batch {
	b.ops = append(b.ops, Op{Kind: OpEmit, Event: event, Label: NoLabel})
	return b
}

// Ops returns the staged operations in insertion order.
func (b *Batch) Ops() []Op {
	return b.ops
}

// Puts returns the number of staged put operations, which is also the
// first unused label.
func (b *Batch) Puts() int {
	return b.puts
}
