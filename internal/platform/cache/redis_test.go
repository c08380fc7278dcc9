package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Name   string
	Amount string
}

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c, err := New(context.Background(), Options{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestSetAndGet(t *testing.T) {
	c, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "catalog:product:1", entry{Name: "DEUDAPRIVADA", Amount: "50000"}, time.Minute))

	var got entry
	found, err := c.Get(ctx, "catalog:product:1", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "DEUDAPRIVADA", got.Name)
}

func TestGetMissAndExpiry(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	var got entry
	found, err := c.Get(ctx, "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "short", entry{Name: "x"}, time.Second))
	mr.FastForward(2 * time.Second)
	found, err = c.Get(ctx, "short", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	c, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "b", 2, time.Minute))
	require.NoError(t, c.Invalidate(ctx, "a", "b"))

	var v int
	found, err := c.Get(ctx, "a", &v)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetInvalidJSON(t *testing.T) {
	c, mr := setupTestCache(t)
	require.NoError(t, mr.Set("bad", "not-json"))

	var v entry
	_, err := c.Get(context.Background(), "bad", &v)
	assert.Error(t, err)
}

func TestNew_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = New(context.Background(), Options{Addr: addr})
	assert.Error(t, err)
}
