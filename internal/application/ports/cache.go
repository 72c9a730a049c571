package ports

import "context"

// QueryCache caché de lecturas (listados, dashboard) invalidada por prefijo tras cada mutación.
// Las implementaciones serializan los valores; dest debe ser un puntero.
type QueryCache interface {
	// Get devuelve false si la clave no existe o expiró.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	InvalidatePrefix(ctx context.Context, prefix string) error
}
