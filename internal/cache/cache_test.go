package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSetGet(t *testing.T) {
	c := New(true)

	etag := c.Set("k", []byte(`{"a":1}`), time.Minute)
	assert.NotEmpty(t, etag)

	data, gotETag, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"a":1}`), data)
	assert.Equal(t, etag, gotETag)
}

func TestCacheMiss(t *testing.T) {
	c := New(true)
	_, _, ok := c.Get("nope")
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	c := New(true)
	c.Set("k", []byte("v"), -time.Second) // already expired
	_, _, ok := c.Get("k")
	assert.False(t, ok)
}

func TestCacheInvalidate(t *testing.T) {
	c := New(true)
	c.Set("k", []byte("v"), time.Minute)
	c.Invalidate("k")
	_, _, ok := c.Get("k")
	assert.False(t, ok)
}

func TestDisabledCacheIsNoOp(t *testing.T) {
	c := New(false)

	// Set still returns a usable ETag so handlers behave uniformly.
	etag := c.Set("k", []byte("v"), time.Minute)
	assert.NotEmpty(t, etag)

	_, _, ok := c.Get("k")
	assert.False(t, ok)
}

func TestComputeETagDeterministic(t *testing.T) {
	a := ComputeETag([]byte("payload"))
	b := ComputeETag([]byte("payload"))
	other := ComputeETag([]byte("different"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, other)
	assert.Contains(t, a, `W/"`)
}

func TestCheckETagMatch(t *testing.T) {
	etag := ComputeETag([]byte("payload"))

	assert.True(t, CheckETagMatch(etag, etag))
	assert.True(t, CheckETagMatch("*", etag))
	assert.False(t, CheckETagMatch("", etag))
	assert.False(t, CheckETagMatch(`W/"stale"`, etag))
}
