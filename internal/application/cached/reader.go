// Package cached implementa lectura a través de la caché de consultas (read-through)
// con deduplicación de lecturas concurrentes idénticas.
package cached

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/gkdnizduru/finans-proje/internal/application/ports"
	"github.com/gkdnizduru/finans-proje/pkg/metrics"
)

// Reader combina QueryCache y singleflight. Un Reader nil o sin caché lee siempre del origen.
type Reader struct {
	cache ports.QueryCache
	group singleflight.Group
}

// NewReader construye el lector.
func NewReader(cache ports.QueryCache) *Reader {
	return &Reader{cache: cache}
}

// Prefix prefijo de todas las claves de un recurso del usuario: u:<user>:<resource>:
func Prefix(userID, resource string) string {
	return "u:" + userID + ":" + resource + ":"
}

// Key clave de una lectura concreta. Las partes se concatenan con ":".
func Key(userID, resource string, parts ...any) string {
	var b strings.Builder
	b.WriteString(Prefix(userID, resource))
	for i, p := range parts {
		if i > 0 {
			b.WriteByte(':')
		}
		fmt.Fprint(&b, p)
	}
	return b.String()
}

// Load devuelve el valor cacheado o lo carga con load y lo guarda.
// Los errores de la caché se registran y no interrumpen la lectura.
func Load[T any](ctx context.Context, r *Reader, key string, load func(ctx context.Context) (T, error)) (T, error) {
	if r == nil || r.cache == nil {
		return load(ctx)
	}
	var out T
	hit, err := r.cache.Get(ctx, key, &out)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache get")
	} else if hit {
		metrics.CacheHit()
		return out, nil
	}
	metrics.CacheMiss()

	v, err, _ := r.group.Do(key, func() (any, error) {
		val, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if err := r.cache.Set(ctx, key, val); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache set")
		}
		return val, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Invalidate borra todas las claves de los recursos indicados del usuario.
func (r *Reader) Invalidate(ctx context.Context, userID string, resources ...string) {
	if r == nil || r.cache == nil {
		return
	}
	for _, res := range resources {
		if err := r.cache.InvalidatePrefix(ctx, Prefix(userID, res)); err != nil {
			log.Warn().Err(err).Str("resource", res).Msg("cache invalidate")
		}
	}
}

// Recursos cacheados. Las mutaciones invalidan el recurso y los que dependen de él.
const (
	Customers    = "customers"
	Products     = "products"
	Categories   = "categories"
	Airlines     = "airlines"
	Accounts     = "accounts"
	Transactions = "transactions"
	Deals        = "deals"
	Activities   = "activities"
	Invoices     = "invoices"
	Quotes       = "quotes"
	Tickets      = "tickets"
	Hotels       = "hotels"
	Dashboard    = "dashboard"
)
