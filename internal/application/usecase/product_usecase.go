package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gkdnizduru/finans-proje/internal/application/cached"
	"github.com/gkdnizduru/finans-proje/internal/application/dto"
	"github.com/gkdnizduru/finans-proje/internal/domain"
	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
	"github.com/gkdnizduru/finans-proje/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos y servicios.
type ProductUseCase struct {
	repo  repository.ProductRepository
	cache *cached.Reader
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, cache *cached.Reader) *ProductUseCase {
	return &ProductUseCase{repo: repo, cache: cache}
}

// Create crea un nuevo producto. Activo por defecto.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.TaxRate.IsNegative() || in.TaxRate.GreaterThan(hundred) || in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.Unit == "" {
		in.Unit = "adet"
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		Unit:        in.Unit,
		UnitPrice:   in.UnitPrice,
		TaxRate:     in.TaxRate,
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, userID, cached.Products)
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, userID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza los campos enviados.
func (uc *ProductUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.UnitPrice = *in.UnitPrice
	}
	if in.TaxRate != nil {
		if in.TaxRate.IsNegative() || in.TaxRate.GreaterThan(hundred) {
			return nil, domain.ErrInvalidInput
		}
		product.TaxRate = *in.TaxRate
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, userID, cached.Products)
	return toProductResponse(product), nil
}

// List lista productos del usuario con paginación.
func (uc *ProductUseCase) List(ctx context.Context, userID string, activeOnly bool, limit, offset int) (*dto.ProductListResponse, error) {
	key := cached.Key(userID, cached.Products, activeOnly, limit, offset)
	return cached.Load(ctx, uc.cache, key, func(ctx context.Context) (*dto.ProductListResponse, error) {
		list, err := uc.repo.List(ctx, userID, activeOnly, limit, offset)
		if err != nil {
			return nil, err
		}
		items := make([]dto.ProductResponse, 0, len(list))
		for _, p := range list {
			items = append(items, *toProductResponse(p))
		}
		return &dto.ProductListResponse{
			Items: items,
			Page:  dto.PageResponse{Limit: limit, Offset: offset},
		}, nil
	})
}

// Delete elimina un producto. Las líneas de documentos que lo referencian quedan sin producto.
func (uc *ProductUseCase) Delete(ctx context.Context, userID, id string) error {
	if err := uc.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	uc.cache.Invalidate(ctx, userID, cached.Products)
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Unit:        p.Unit,
		UnitPrice:   p.UnitPrice,
		TaxRate:     p.TaxRate,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
