package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileKVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	kv := NewFileKV(path)
	kv.Set("cart_shop1", `[{"id":"1"}]`)
	kv.Set("theme", "dark")
	kv.Remove("theme")

	reloaded := NewFileKV(path)
	v, ok := reloaded.Get("cart_shop1")
	require.True(t, ok)
	assert.Equal(t, `[{"id":"1"}]`, v)

	_, ok = reloaded.Get("theme")
	assert.False(t, ok)
}

func TestFileKVStartsEmptyOnCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0o644))

	kv := NewFileKV(path)
	_, ok := kv.Get("anything")
	assert.False(t, ok)

	// And it recovers: writes land normally afterwards.
	kv.Set("k", "v")
	v, ok := NewFileKV(path).Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
}
