package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_RoundTrip(t *testing.T) {
	c, err := New(t.TempDir(), 1, true)
	require.NoError(t, err)

	hash := HashBytes([]byte("trace-contents"))
	require.NoError(t, c.SetWithHash("scenario-a", hash, []byte(`["A.B.C"]`)))

	data, ok := c.GetWithHash("scenario-a", hash)
	require.True(t, ok)
	assert.Equal(t, []byte(`["A.B.C"]`), data)
}

func TestCache_HashMismatch(t *testing.T) {
	c, err := New(t.TempDir(), 1, true)
	require.NoError(t, err)

	require.NoError(t, c.SetWithHash("scenario-a", HashBytes([]byte("v1")), []byte("data")))

	_, ok := c.GetWithHash("scenario-a", HashBytes([]byte("v2")))
	assert.False(t, ok, "stale entry must not be served after the trace changed")
}

func TestCache_Disabled(t *testing.T) {
	c, err := New("", 1, false)
	require.NoError(t, err)

	require.NoError(t, c.SetWithHash("k", "h", []byte("data")))
	_, ok := c.GetWithHash("k", "h")
	assert.False(t, ok)
	assert.NoError(t, c.Invalidate("k"))
	assert.NoError(t, c.Clear())
}

func TestCache_Invalidate(t *testing.T) {
	c, err := New(t.TempDir(), 1, true)
	require.NoError(t, err)

	hash := HashBytes([]byte("x"))
	require.NoError(t, c.SetWithHash("k", hash, []byte("data")))
	require.NoError(t, c.Invalidate("k"))

	_, ok := c.GetWithHash("k", hash)
	assert.False(t, ok)
}

func TestHashBytes_Deterministic(t *testing.T) {
	assert.Equal(t, HashBytes([]byte("abc")), HashBytes([]byte("abc")))
	assert.NotEqual(t, HashBytes([]byte("abc")), HashBytes([]byte("abd")))
}
