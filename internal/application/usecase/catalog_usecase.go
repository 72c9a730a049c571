package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gkdnizduru/finans-proje/internal/application/cached"
	"github.com/gkdnizduru/finans-proje/internal/application/dto"
	"github.com/gkdnizduru/finans-proje/internal/domain"
	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
	"github.com/gkdnizduru/finans-proje/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// CategoryUseCase categorías de ingresos y egresos.
type CategoryUseCase struct {
	repo  repository.CategoryRepository
	cache *cached.Reader
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, cache *cached.Reader) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, cache: cache}
}

func (uc *CategoryUseCase) Create(ctx context.Context, userID string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if !validCategoryType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := &entity.Category{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      strings.TrimSpace(in.Name),
		Type:      in.Type,
		Color:     in.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, userID, cached.Categories)
	return toCategoryResponse(c), nil
}

func (uc *CategoryUseCase) Update(ctx context.Context, userID, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if !validCategoryType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil || c == nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(in.Name)
	c.Type = in.Type
	c.Color = in.Color
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, userID, cached.Categories)
	return toCategoryResponse(c), nil
}

// List categorías, opcionalmente filtradas por tipo.
func (uc *CategoryUseCase) List(ctx context.Context, userID, typ string) ([]dto.CategoryResponse, error) {
	return cached.Load(ctx, uc.cache, cached.Key(userID, cached.Categories, typ), func(ctx context.Context) ([]dto.CategoryResponse, error) {
		list, err := uc.repo.List(ctx, userID, typ)
		if err != nil {
			return nil, err
		}
		out := make([]dto.CategoryResponse, 0, len(list))
		for _, c := range list {
			out = append(out, *toCategoryResponse(c))
		}
		return out, nil
	})
}

func (uc *CategoryUseCase) Delete(ctx context.Context, userID, id string) error {
	if err := uc.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	uc.cache.Invalidate(ctx, userID, cached.Categories, cached.Transactions)
	return nil
}

func validCategoryType(t string) bool {
	return t == entity.CategoryTypeIncome || t == entity.CategoryTypeExpense
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Type: c.Type, Color: c.Color, CreatedAt: c.CreatedAt}
}

// AirlineUseCase aerolíneas del usuario (usadas por billetes y el parser de PNR).
type AirlineUseCase struct {
	repo  repository.AirlineRepository
	cache *cached.Reader
}

// NewAirlineUseCase construye el caso de uso.
func NewAirlineUseCase(repo repository.AirlineRepository, cache *cached.Reader) *AirlineUseCase {
	return &AirlineUseCase{repo: repo, cache: cache}
}

func (uc *AirlineUseCase) Create(ctx context.Context, userID string, in dto.AirlineRequest) (*dto.AirlineResponse, error) {
	now := time.Now()
	a := &entity.Airline{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      strings.TrimSpace(in.Name),
		Code:      strings.ToUpper(strings.TrimSpace(in.Code)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, userID, cached.Airlines)
	return toAirlineResponse(a), nil
}

func (uc *AirlineUseCase) Update(ctx context.Context, userID, id string, in dto.AirlineRequest) (*dto.AirlineResponse, error) {
	a, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil || a == nil {
		return nil, err
	}
	a.Name = strings.TrimSpace(in.Name)
	a.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	a.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, userID, cached.Airlines)
	return toAirlineResponse(a), nil
}

func (uc *AirlineUseCase) List(ctx context.Context, userID string) ([]dto.AirlineResponse, error) {
	return cached.Load(ctx, uc.cache, cached.Key(userID, cached.Airlines, "all"), func(ctx context.Context) ([]dto.AirlineResponse, error) {
		list, err := uc.repo.List(ctx, userID)
		if err != nil {
			return nil, err
		}
		out := make([]dto.AirlineResponse, 0, len(list))
		for _, a := range list {
			out = append(out, *toAirlineResponse(a))
		}
		return out, nil
	})
}

func (uc *AirlineUseCase) Delete(ctx context.Context, userID, id string) error {
	if err := uc.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	uc.cache.Invalidate(ctx, userID, cached.Airlines, cached.Tickets)
	return nil
}

func toAirlineResponse(a *entity.Airline) *dto.AirlineResponse {
	return &dto.AirlineResponse{ID: a.ID, Name: a.Name, Code: a.Code, CreatedAt: a.CreatedAt}
}
