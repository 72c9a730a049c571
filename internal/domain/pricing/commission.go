package pricing

import (
	"math"

	"github.com/gkdnizduru/finans-proje/internal/domain"
)

// Mode modo de precio de una reserva.
type Mode string

const (
	ModeMarkup     Mode = "markup"
	ModeCommission Mode = "commission"
)

// roundEpsilon compensa errores de representación binaria antes de redondear (1.005 -> 1.01).
const roundEpsilon = 1e-9

// Round2 redondeo half-up a centavos.
func Round2(x float64) float64 {
	return math.Round((x+roundEpsilon)*100) / 100
}

// ResolveCommission deriva ganancia y neto a partir del precio de venta y la comisión (%).
func ResolveCommission(sellPrice, ratePercent float64) (net, profit float64) {
	profit = Round2(sellPrice * ratePercent / 100)
	net = Round2(sellPrice - profit)
	return net, profit
}

// ResolveInput entrada del resolvedor. CommissionRate es obligatorio en modo comisión;
// NetPrice solo se usa en modo markup.
type ResolveInput struct {
	Mode           Mode
	SellPrice      float64
	CommissionRate *float64
	NetPrice       float64
}

// Resolution neto adeudado al proveedor y ganancia de la agencia.
type Resolution struct {
	Mode     Mode
	NetPrice float64
	Profit   float64
	// NetReadOnly es true cuando el neto es derivado (modo comisión) y no editable.
	NetReadOnly bool
}

// Resolve aplica el modo de precio.
// En markup el neto es el ingresado por el usuario y la ganancia es venta - neto.
func Resolve(in ResolveInput) (Resolution, error) {
	if in.SellPrice < 0 {
		return Resolution{}, domain.ErrInvalidInput
	}
	switch in.Mode {
	case ModeCommission:
		if in.CommissionRate == nil || *in.CommissionRate < 0 {
			return Resolution{}, domain.ErrInvalidInput
		}
		net, profit := ResolveCommission(in.SellPrice, *in.CommissionRate)
		return Resolution{Mode: ModeCommission, NetPrice: net, Profit: profit, NetReadOnly: true}, nil
	case ModeMarkup:
		if in.NetPrice < 0 {
			return Resolution{}, domain.ErrInvalidInput
		}
		return Resolution{Mode: ModeMarkup, NetPrice: in.NetPrice, Profit: in.SellPrice - in.NetPrice}, nil
	default:
		return Resolution{}, domain.ErrInvalidInput
	}
}
