package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Etapas del embudo de ventas.
const (
	DealStageLead        = "lead"
	DealStageProposal    = "proposal"
	DealStageNegotiation = "negotiation"
	DealStageWon         = "won"
	DealStageLost        = "lost"
)

// Deal oportunidad de venta asociada a un cliente.
type Deal struct {
	ID                string
	UserID            string
	CustomerID        string
	Title             string
	Value             decimal.Decimal
	Currency          string
	Stage             string
	ExpectedCloseDate *time.Time
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
