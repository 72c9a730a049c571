package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkdnizduru/finans-proje/internal/domain"
	"github.com/gkdnizduru/finans-proje/internal/domain/pricing"
)

func ptr(f float64) *float64 { return &f }

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.01, pricing.Round2(1.005))
	assert.Equal(t, 2.68, pricing.Round2(2.675))
	assert.Equal(t, 100.0, pricing.Round2(99.999))
	assert.Equal(t, 0.0, pricing.Round2(0))
	assert.Equal(t, 12.34, pricing.Round2(12.344))
}

func TestResolveCommission_Ejemplo(t *testing.T) {
	net, profit := pricing.ResolveCommission(1000, 10)
	assert.Equal(t, 100.0, profit)
	assert.Equal(t, 900.0, net)
}

func TestResolveCommission_NetoMasGananciaEsVenta(t *testing.T) {
	sells := []float64{0, 1, 99.99, 1234.56, 15750.5, 0.07}
	rates := []float64{0, 7.5, 10, 12.25, 33.333, 100}
	for _, s := range sells {
		for _, r := range rates {
			net, profit := pricing.ResolveCommission(s, r)
			assert.InDelta(t, s, net+profit, 0.005+1e-9, "venta=%v tasa=%v", s, r)
		}
	}
}

func TestResolve_ModoComision(t *testing.T) {
	res, err := pricing.Resolve(pricing.ResolveInput{Mode: pricing.ModeCommission, SellPrice: 2500, CommissionRate: ptr(12)})
	require.NoError(t, err)
	assert.Equal(t, 300.0, res.Profit)
	assert.Equal(t, 2200.0, res.NetPrice)
	assert.True(t, res.NetReadOnly)
}

func TestResolve_ModoComisionSinTasa(t *testing.T) {
	_, err := pricing.Resolve(pricing.ResolveInput{Mode: pricing.ModeCommission, SellPrice: 2500})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResolve_ModoMarkup(t *testing.T) {
	res, err := pricing.Resolve(pricing.ResolveInput{Mode: pricing.ModeMarkup, SellPrice: 1800, NetPrice: 1500, CommissionRate: ptr(50)})
	require.NoError(t, err)
	assert.Equal(t, 1500.0, res.NetPrice, "en markup el neto es el ingresado, la tasa se ignora")
	assert.Equal(t, 300.0, res.Profit)
	assert.False(t, res.NetReadOnly)
}

func TestResolve_Invalidos(t *testing.T) {
	_, err := pricing.Resolve(pricing.ResolveInput{Mode: "otro", SellPrice: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = pricing.Resolve(pricing.ResolveInput{Mode: pricing.ModeMarkup, SellPrice: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = pricing.Resolve(pricing.ResolveInput{Mode: pricing.ModeCommission, SellPrice: 10, CommissionRate: ptr(-5)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
