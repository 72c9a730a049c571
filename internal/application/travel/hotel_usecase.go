package travel

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gkdnizduru/finans-proje/internal/application/billing"
	"github.com/gkdnizduru/finans-proje/internal/application/cached"
	"github.com/gkdnizduru/finans-proje/internal/application/dto"
	"github.com/gkdnizduru/finans-proje/internal/domain"
	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
	"github.com/gkdnizduru/finans-proje/internal/domain/pricing"
	"github.com/gkdnizduru/finans-proje/internal/domain/repository"
)

// HotelUseCase reservas de hotel. Crear y actualizar pasan por el resolvedor de comisión/markup.
type HotelUseCase struct {
	repo      repository.HotelReservationRepository
	customers repository.CustomerRepository
	cache     *cached.Reader
}

// NewHotelUseCase construye el caso de uso.
func NewHotelUseCase(repo repository.HotelReservationRepository, customers repository.CustomerRepository, cache *cached.Reader) *HotelUseCase {
	return &HotelUseCase{repo: repo, customers: customers, cache: cache}
}

func (uc *HotelUseCase) Create(ctx context.Context, userID string, in dto.HotelReservationRequest) (*dto.HotelReservationResponse, error) {
	if err := ensureCustomer(ctx, uc.customers, userID, in.CustomerID); err != nil {
		return nil, err
	}
	now := time.Now()
	h := &entity.HotelReservation{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := applyHotel(h, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, h); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, userID, cached.Hotels, cached.Dashboard)
	return toHotelResponse(h), nil
}

func (uc *HotelUseCase) GetByID(ctx context.Context, userID, id string) (*dto.HotelReservationResponse, error) {
	h, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil || h == nil {
		return nil, err
	}
	return toHotelResponse(h), nil
}

// Update recalcula neto y ganancia; nil si la reserva no existe.
func (uc *HotelUseCase) Update(ctx context.Context, userID, id string, in dto.HotelReservationRequest) (*dto.HotelReservationResponse, error) {
	h, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil || h == nil {
		return nil, err
	}
	if in.CustomerID != h.CustomerID {
		if err := ensureCustomer(ctx, uc.customers, userID, in.CustomerID); err != nil {
			return nil, err
		}
	}
	if err := applyHotel(h, in); err != nil {
		return nil, err
	}
	h.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, h); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, userID, cached.Hotels, cached.Dashboard)
	return toHotelResponse(h), nil
}

func (uc *HotelUseCase) List(ctx context.Context, userID string, f repository.HotelFilter) (*dto.HotelReservationListResponse, error) {
	key := cached.Key(userID, cached.Hotels, f.CustomerID, f.Status, f.Limit, f.Offset)
	return cached.Load(ctx, uc.cache, key, func(ctx context.Context) (*dto.HotelReservationListResponse, error) {
		list, total, err := uc.repo.List(ctx, userID, f)
		if err != nil {
			return nil, err
		}
		items := make([]dto.HotelReservationResponse, 0, len(list))
		for _, h := range list {
			items = append(items, *toHotelResponse(h))
		}
		return &dto.HotelReservationListResponse{
			Items: items,
			Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
		}, nil
	})
}

func (uc *HotelUseCase) Delete(ctx context.Context, userID, id string) error {
	if err := uc.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	uc.cache.Invalidate(ctx, userID, cached.Hotels, cached.Dashboard)
	return nil
}

// CommissionPreview aplica el resolvedor sin guardar nada.
func CommissionPreview(in dto.CommissionPreviewRequest) (*dto.CommissionPreviewResponse, error) {
	res, err := resolve(in.PricingMode, in.SellPrice, in.CommissionRate, in.NetPrice)
	if err != nil {
		return nil, err
	}
	return &dto.CommissionPreviewResponse{
		PricingMode: string(res.Mode),
		NetPrice:    billing.Money(res.NetPrice),
		Profit:      billing.Money(res.Profit),
		NetReadOnly: res.NetReadOnly,
	}, nil
}

func resolve(mode string, sell decimal.Decimal, rate *decimal.Decimal, net decimal.Decimal) (pricing.Resolution, error) {
	in := pricing.ResolveInput{
		Mode:      pricing.Mode(mode),
		SellPrice: sell.InexactFloat64(),
		NetPrice:  net.InexactFloat64(),
	}
	if rate != nil {
		r := rate.InexactFloat64()
		if r > 100 {
			return pricing.Resolution{}, fmt.Errorf("%w: comisión mayor a 100", domain.ErrInvalidInput)
		}
		in.CommissionRate = &r
	}
	res, err := pricing.Resolve(in)
	if err != nil {
		return pricing.Resolution{}, fmt.Errorf("%w: modo %q", err, mode)
	}
	return res, nil
}

func applyHotel(h *entity.HotelReservation, in dto.HotelReservationRequest) error {
	if !in.CheckOut.After(in.CheckIn) {
		return fmt.Errorf("%w: la salida debe ser posterior a la entrada", domain.ErrInvalidInput)
	}
	if in.Guests < 1 {
		return fmt.Errorf("%w: al menos un huésped", domain.ErrInvalidInput)
	}
	status := in.Status
	if status == "" {
		status = entity.ReservationStatusPending
	}
	switch status {
	case entity.ReservationStatusPending, entity.ReservationStatusConfirmed, entity.ReservationStatusCancelled:
	default:
		return fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	res, err := resolve(in.PricingMode, in.SellPrice, in.CommissionRate, in.NetPrice)
	if err != nil {
		return err
	}

	h.CustomerID = in.CustomerID
	h.HotelName = strings.TrimSpace(in.HotelName)
	h.City = strings.TrimSpace(in.City)
	h.RoomType = in.RoomType
	h.BoardType = in.BoardType
	h.CheckIn = in.CheckIn
	h.CheckOut = in.CheckOut
	h.Guests = in.Guests
	h.PricingMode = string(res.Mode)
	h.Currency = currencyOr(in.Currency)
	h.SellPrice = in.SellPrice
	h.CommissionRate = nil
	if res.Mode == pricing.ModeCommission {
		h.CommissionRate = in.CommissionRate
	}
	h.NetPrice = billing.Money(res.NetPrice)
	h.Profit = billing.Money(res.Profit)
	h.Status = status
	h.VoucherNumber = strings.TrimSpace(in.VoucherNumber)
	h.Notes = in.Notes
	return nil
}

func toHotelResponse(h *entity.HotelReservation) *dto.HotelReservationResponse {
	return &dto.HotelReservationResponse{
		ID:             h.ID,
		CustomerID:     h.CustomerID,
		HotelName:      h.HotelName,
		City:           h.City,
		RoomType:       h.RoomType,
		BoardType:      h.BoardType,
		CheckIn:        h.CheckIn,
		CheckOut:       h.CheckOut,
		Nights:         h.Nights(),
		Guests:         h.Guests,
		PricingMode:    h.PricingMode,
		Currency:       h.Currency,
		SellPrice:      h.SellPrice,
		CommissionRate: h.CommissionRate,
		NetPrice:       h.NetPrice,
		Profit:         h.Profit,
		Status:         h.Status,
		VoucherNumber:  h.VoucherNumber,
		Notes:          h.Notes,
		CreatedAt:      h.CreatedAt,
		UpdatedAt:      h.UpdatedAt,
	}
}
