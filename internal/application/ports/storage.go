package ports

import (
	"context"
	"io"
)

// ObjectStorage almacenamiento de archivos (adjuntos de clientes, logo de la empresa).
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	// PresignedGetURL URL temporal de descarga.
	PresignedGetURL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
