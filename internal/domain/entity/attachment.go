package entity

import "time"

// Attachment archivo de un cliente guardado en el almacenamiento de objetos.
type Attachment struct {
	ID          string
	UserID      string
	CustomerID  string
	FileName    string
	StorageKey  string
	ContentType string
	Size        int64
	CreatedAt   time.Time
}
