package types

import "errors"

var (
	// ErrSerialization indicates a value could not be canonically
	// serialized and therefore cannot be stored or hashed.
	ErrSerialization = errors.New("value is not canonically serializable")

	// ErrBatchApply indicates a mutation batch failed validation and was
	// rejected before any mutation became visible, or that a store or
	// refs write failed while the batch was being applied; in the second
	// case the mutations applied before the failure are not rolled back.
	ErrBatchApply = errors.New("mutation batch rejected")

	// ErrInvalidRefName indicates a ref name that is empty or contains
	// empty, "." or ".." path segments.
	ErrInvalidRefName = errors.New("invalid ref name")
)
