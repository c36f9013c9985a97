// SPDX-License-Identifier: MIT

package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_TTL(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	c := NewCache(time.Minute)
	c.now = func() time.Time { return now }

	k := Key([]byte(`{"records":[]}`))
	assert.Equal(t, k, Key([]byte(`{"records":[]}`)))
	assert.NotEqual(t, k, Key([]byte(`{"records":[ ]}`)))

	_, ok := c.Get(k)
	assert.False(t, ok)

	c.Set(k, []byte("v"))
	got, ok := c.Get(k)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), got)

	now = now.Add(time.Minute)
	_, ok = c.Get(k)
	assert.False(t, ok, "entries expire at now+TTL")
}

func TestCache_Prune(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	c := NewCache(time.Second)
	c.now = func() time.Time { return now }

	for i := 0; i < pruneEvery-1; i++ {
		c.Set(uint64(i), nil)
	}
	now = now.Add(2 * time.Second)
	c.Set(uint64(pruneEvery), nil)
	assert.Equal(t, 1, c.Len())
}

func TestCache_Disabled(t *testing.T) {
	t.Parallel()

	c := NewCache(0)
	c.Set(1, []byte("v"))
	_, ok := c.Get(1)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}
