package travel_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkdnizduru/finans-proje/internal/application/dto"
	"github.com/gkdnizduru/finans-proje/internal/application/travel"
	"github.com/gkdnizduru/finans-proje/internal/domain"
	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
)

func hotelRequest(mode string) dto.HotelReservationRequest {
	return dto.HotelReservationRequest{
		CustomerID:  customerID,
		HotelName:   "  Kaya Palace ",
		City:        "Antalya",
		CheckIn:     time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:    time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC),
		Guests:      2,
		PricingMode: mode,
		SellPrice:   d("10000"),
	}
}

func ptr(v decimal.Decimal) *decimal.Decimal { return &v }

func TestHotelCreate_Comision(t *testing.T) {
	repo := &memHotels{rows: map[string]*entity.HotelReservation{}}
	uc := travel.NewHotelUseCase(repo, memCustomers{}, nil)

	in := hotelRequest(entity.PricingModeCommission)
	in.CommissionRate = ptr(d("12.5"))
	in.NetPrice = d("1") // se ignora en modo comisión
	out, err := uc.Create(context.Background(), userID, in)
	require.NoError(t, err)
	assert.Equal(t, "Kaya Palace", out.HotelName)
	assert.Equal(t, 4, out.Nights)
	assert.Equal(t, entity.ReservationStatusPending, out.Status)
	assert.True(t, d("1250").Equal(out.Profit))
	assert.True(t, d("8750").Equal(out.NetPrice))
	require.NotNil(t, out.CommissionRate)
}

func TestHotelCreate_Markup(t *testing.T) {
	repo := &memHotels{rows: map[string]*entity.HotelReservation{}}
	uc := travel.NewHotelUseCase(repo, memCustomers{}, nil)

	in := hotelRequest(entity.PricingModeMarkup)
	in.NetPrice = d("8200.40")
	in.CommissionRate = ptr(d("10"))
	out, err := uc.Create(context.Background(), userID, in)
	require.NoError(t, err)
	assert.True(t, d("1799.6").Equal(out.Profit))
	assert.True(t, d("8200.4").Equal(out.NetPrice))
	assert.Nil(t, out.CommissionRate)

	upd := in
	upd.PricingMode = entity.PricingModeCommission
	upd.CommissionRate = ptr(d("15"))
	got, err := uc.Update(context.Background(), userID, out.ID, upd)
	require.NoError(t, err)
	assert.True(t, d("1500").Equal(got.Profit))
	assert.True(t, d("1500").Equal(repo.rows[out.ID].Profit))
}

func TestHotelCreate_Invalida(t *testing.T) {
	repo := &memHotels{rows: map[string]*entity.HotelReservation{}}
	uc := travel.NewHotelUseCase(repo, memCustomers{}, nil)
	ctx := context.Background()

	_, err := uc.Create(ctx, userID, hotelRequest(entity.PricingModeCommission))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "comisión sin tasa")

	in := hotelRequest(entity.PricingModeMarkup)
	in.CheckOut = in.CheckIn
	_, err = uc.Create(ctx, userID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, userID, hotelRequest("otro"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, repo.rows)
}

func TestCommissionPreview(t *testing.T) {
	out, err := travel.CommissionPreview(dto.CommissionPreviewRequest{
		PricingMode:    entity.PricingModeCommission,
		SellPrice:      d("1999.99"),
		CommissionRate: ptr(d("10")),
	})
	require.NoError(t, err)
	assert.True(t, out.NetReadOnly)
	assert.True(t, d("200").Equal(out.Profit))
	assert.True(t, d("1799.99").Equal(out.NetPrice))

	out, err = travel.CommissionPreview(dto.CommissionPreviewRequest{
		PricingMode: entity.PricingModeMarkup,
		SellPrice:   d("500"),
		NetPrice:    d("420"),
	})
	require.NoError(t, err)
	assert.False(t, out.NetReadOnly)
	assert.True(t, d("80").Equal(out.Profit))

	_, err = travel.CommissionPreview(dto.CommissionPreviewRequest{
		PricingMode:    entity.PricingModeCommission,
		SellPrice:      d("500"),
		CommissionRate: ptr(d("150")),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
