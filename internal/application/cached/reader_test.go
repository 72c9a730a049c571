package cached_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkdnizduru/finans-proje/internal/application/cached"
)

// memCache caché en memoria que serializa en JSON como la implementación Redis.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, key string, dest any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (m *memCache) Set(_ context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = b
	m.mu.Unlock()
	return nil
}

func (m *memCache) InvalidatePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
		}
	}
	return nil
}

func TestKey(t *testing.T) {
	assert.Equal(t, "u:u1:customers:", cached.Prefix("u1", "customers"))
	assert.Equal(t, "u:u1:customers:ali:20:0", cached.Key("u1", "customers", "ali", 20, 0))
}

func TestLoad_CacheaYLuegoInvalida(t *testing.T) {
	ctx := context.Background()
	r := cached.NewReader(newMemCache())
	var calls int32
	load := func(context.Context) ([]string, error) {
		atomic.AddInt32(&calls, 1)
		return []string{"a", "b"}, nil
	}
	key := cached.Key("u1", "products", 20, 0)

	v, err := cached.Load(ctx, r, key, load)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v)
	v, err = cached.Load(ctx, r, key, load)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	r.Invalidate(ctx, "u1", "products")
	_, err = cached.Load(ctx, r, key, load)
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestLoad_ErrorNoSeCachea(t *testing.T) {
	ctx := context.Background()
	r := cached.NewReader(newMemCache())
	boom := errors.New("db caída")
	_, err := cached.Load(ctx, r, "k", func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	v, err := cached.Load(ctx, r, "k", func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestLoad_SinCache(t *testing.T) {
	var r *cached.Reader
	v, err := cached.Load(context.Background(), r, "k", func(context.Context) (string, error) { return "x", nil })
	require.NoError(t, err)
	assert.Equal(t, "x", v)
	r.Invalidate(context.Background(), "u1", "x")
}
