package entity

import "time"

// Tipos de actividad.
const (
	ActivityTypeCall    = "call"
	ActivityTypeEmail   = "email"
	ActivityTypeMeeting = "meeting"
	ActivityTypeTask    = "task"
)

// Activity seguimiento comercial (llamada, reunión, tarea).
type Activity struct {
	ID          string
	UserID      string
	CustomerID  string
	DealID      *string
	Type        string
	Subject     string
	Description string
	DueDate     *time.Time
	Completed   bool
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
