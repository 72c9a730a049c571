package cache

import (
	"context"

	"github.com/gkdnizduru/finans-proje/internal/application/ports"
)

var _ ports.QueryCache = NoopQueryCache{}

// NoopQueryCache caché deshabilitada (REDIS_ADDR vacío): nunca hay aciertos.
type NoopQueryCache struct{}

func (NoopQueryCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (NoopQueryCache) Set(context.Context, string, any) error { return nil }
func (NoopQueryCache) InvalidatePrefix(context.Context, string) error { return nil }
