package codec

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/cuemby/hutch/pkg/types"
	"github.com/goccy/go-json"
)

// Encode serializes a value to its canonical byte form. Map keys are
// emitted in sorted order, so equal values always encode to equal bytes.
// Values the codec cannot represent (functions, channels, NaN) fail with
// types.ErrSerialization.
func Encode(v types.Value) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrSerialization, err)
	}
	return data, nil
}

// Decode parses canonical bytes back into a value. Numbers decode with
// JSON semantics: a stored int comes back as float64.
func Decode(data []byte) (types.Value, error) {
	var v types.Value
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to decode stored value: %w", err)
	}
	return v, nil
}

// HashOf returns the content hash of a value along with its canonical
// bytes, so callers that go on to write the bytes do not encode twice.
func HashOf(v types.Value) (types.Hash, []byte, error) {
	data, err := Encode(v)
	if err != nil {
		return "", nil, err
	}
	sum := sha256.Sum256(data)
	return types.Hash(hex.EncodeToString(sum[:])), data, nil
}
