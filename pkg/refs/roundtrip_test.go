package refs

import (
	"testing"

	"github.com/cuemby/hutch/pkg/store"
	"github.com/stretchr/testify/assert"
)

// A ref resolves through the store back to the exact value that was put.
func TestRefRoundTripThroughStore(t *testing.T) {
	st := store.NewMemoryStore()
	rf := NewMemoryRefs()

	hash, err := st.Put(map[string]any{"name": "users", "columns": []any{"id", "name"}})
	assert.NoError(t, err)
	assert.NoError(t, rf.Set("db/tables/users/schema", hash))

	bound, ok, err := rf.Get("db/tables/users/schema")
	assert.NoError(t, err)
	assert.True(t, ok)

	value, ok, err := st.Get(bound)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "id", value.(map[string]any)["columns"].([]any)[0])
}

// Swinging a ref to a new version leaves the old version reachable by hash.
func TestRefSwingPreservesHistory(t *testing.T) {
	st := store.NewMemoryStore()
	rf := NewMemoryRefs()

	h1, err := st.Put(map[string]any{"val": 1})
	assert.NoError(t, err)
	assert.NoError(t, rf.Set("c", h1))

	h2, err := st.Put(map[string]any{"val": 2})
	assert.NoError(t, err)
	assert.NoError(t, rf.Set("c", h2))

	current, _, err := rf.Get("c")
	assert.NoError(t, err)
	v, ok, err := st.Get(current)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, float64(2), v.(map[string]any)["val"])

	old, ok, err := st.Get(h1)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, float64(1), old.(map[string]any)["val"])
}
