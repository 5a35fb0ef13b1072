package codec

import (
	"errors"
	"testing"

	"github.com/cuemby/hutch/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestEncodeDeterministic(t *testing.T) {
	v := map[string]any{
		"zebra": 1,
		"alpha": []any{"a", "b"},
		"mid":   map[string]any{"y": true, "x": nil},
	}

	first, err := Encode(v)
	assert.NoError(t, err)
	second, err := Encode(v)
	assert.NoError(t, err)
	assert.Equal(t, first, second)

	// Map keys must be sorted in the canonical form
	assert.Equal(t, `{"alpha":["a","b"],"mid":{"x":null,"y":true},"zebra":1}`, string(first))
}

func TestEncodeRejectsUnserializable(t *testing.T) {
	tests := []struct {
		name  string
		value types.Value
	}{
		{name: "function", value: func() {}},
		{name: "channel", value: make(chan int)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.value)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrSerialization))
		})
	}
}

func TestHashOfStable(t *testing.T) {
	v := map[string]any{"name": "users", "columns": []any{"id", "name"}}

	h1, data1, err := HashOf(v)
	assert.NoError(t, err)
	h2, data2, err := HashOf(v)
	assert.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Equal(t, data1, data2)
	assert.Len(t, string(h1), 64) // hex-encoded SHA-256

	// A different value must hash differently
	h3, _, err := HashOf(map[string]any{"name": "users"})
	assert.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestDecodeRoundTrip(t *testing.T) {
	v := map[string]any{"val": 42, "tags": []any{"x"}}

	data, err := Encode(v)
	assert.NoError(t, err)

	decoded, err := Decode(data)
	assert.NoError(t, err)

	m, ok := decoded.(map[string]any)
	assert.True(t, ok)
	// JSON numbers decode as float64
	assert.Equal(t, float64(42), m["val"])
	assert.Equal(t, []any{"x"}, m["tags"])
}
