package fallback

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestAppendAssignsIDAndOrigin(t *testing.T) {
	store := newTestStore(t)

	record, err := store.Append("orders", Record{
		Type:    "order",
		Op:      OpCreate,
		Payload: json.RawMessage(`{"customer_name":"Alice"}`),
	})

	require.NoError(t, err)
	assert.NotZero(t, record.ID)
	assert.Equal(t, OriginLocalFallback, record.Origin)
	assert.False(t, record.CreatedAt.IsZero())
}

func TestAppendPreservesInsertionOrder(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Append("orders", Record{Type: "order", Op: OpCreate, Payload: json.RawMessage(`{"n":1}`)})
	require.NoError(t, err)
	second, err := store.Append("orders", Record{Type: "order", Op: OpCreate, Payload: json.RawMessage(`{"n":2}`)})
	require.NoError(t, err)

	records := store.ReadAll("orders")
	require.Len(t, records, 2, "append must never overwrite existing records")
	assert.Equal(t, first.ID, records[0].ID)
	assert.Equal(t, second.ID, records[1].ID)
	assert.Greater(t, second.ID, first.ID)
}

func TestReadAllMissingNamespace(t *testing.T) {
	store := newTestStore(t)
	assert.Empty(t, store.ReadAll("nothing-here"))
}

func TestReadAllMalformedContentIsEmpty(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "burgero_orders.json"), []byte("{not json"), 0o644))

	assert.Empty(t, store.ReadAll("orders"))

	// A later append must still work.
	_, err = store.Append("orders", Record{Type: "order", Op: OpCreate, Payload: json.RawMessage(`{}`)})
	require.NoError(t, err)
	assert.Len(t, store.ReadAll("orders"), 1)
}

func TestRemove(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Append("messages", Record{Type: "message", Op: OpCreate, Payload: json.RawMessage(`{"n":1}`)})
	require.NoError(t, err)
	second, err := store.Append("messages", Record{Type: "message", Op: OpCreate, Payload: json.RawMessage(`{"n":2}`)})
	require.NoError(t, err)

	require.NoError(t, store.Remove("messages", first.ID))

	records := store.ReadAll("messages")
	require.Len(t, records, 1)
	assert.Equal(t, second.ID, records[0].ID)
}

func TestClear(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Append("orders", Record{Type: "order", Op: OpCreate, Payload: json.RawMessage(`{}`)})
	require.NoError(t, err)

	require.NoError(t, store.Clear("orders"))
	assert.Empty(t, store.ReadAll("orders"))

	// Clearing an absent namespace is not an error.
	require.NoError(t, store.Clear("orders"))
}

func TestNamespacesAreIsolated(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Append("orders", Record{Type: "order", Op: OpCreate, Payload: json.RawMessage(`{}`)})
	require.NoError(t, err)

	assert.Len(t, store.ReadAll("orders"), 1)
	assert.Empty(t, store.ReadAll("messages"))
}
