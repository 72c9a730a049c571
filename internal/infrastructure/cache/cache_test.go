package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkdnizduru/finans-proje/internal/application/cached"
	"github.com/gkdnizduru/finans-proje/pkg/config"
)

func TestNoopQueryCache_SiempreFalla(t *testing.T) {
	ctx := context.Background()
	var c NoopQueryCache
	require.NoError(t, c.Set(ctx, "k", 1))
	var out int
	ok, err := c.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.InvalidatePrefix(ctx, "u:"))
}

func TestNoopQueryCache_ConReader(t *testing.T) {
	r := cached.NewReader(NoopQueryCache{})
	calls := 0
	load := func(context.Context) (int, error) { calls++; return 7, nil }
	for i := 0; i < 2; i++ {
		v, err := cached.Load(context.Background(), r, "u:1:customers:", load)
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	}
	assert.Equal(t, 2, calls)
}

func TestNewRedisQueryCache_TTLPorDefecto(t *testing.T) {
	c := NewRedisQueryCache(config.RedisConfig{Addr: "127.0.0.1:1"})
	defer c.Close()
	assert.Equal(t, time.Minute, c.ttl)
}
