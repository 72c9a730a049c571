package entity

import "time"

// Note nota libre sobre un cliente.
type Note struct {
	ID         string
	UserID     string
	CustomerID string
	Content    string
	CreatedAt  time.Time
}
