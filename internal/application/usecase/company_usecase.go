package usecase

import (
	"context"
	"io"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gkdnizduru/finans-proje/internal/application/dto"
	"github.com/gkdnizduru/finans-proje/internal/application/ports"
	"github.com/gkdnizduru/finans-proje/internal/domain"
	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
	"github.com/gkdnizduru/finans-proje/internal/domain/repository"
)

// CompanyUseCase perfil de la agencia que aparece en facturas y cotizaciones.
type CompanyUseCase struct {
	repo    repository.CompanyRepository
	storage ports.ObjectStorage
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, storage ports.ObjectStorage) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, storage: storage}
}

// Get devuelve el perfil; un perfil vacío si todavía no se guardó.
func (uc *CompanyUseCase) Get(ctx context.Context, userID string) (*dto.CompanyProfileResponse, error) {
	p, err := uc.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return &dto.CompanyProfileResponse{}, nil
	}
	return toCompanyResponse(p), nil
}

// Save crea o reemplaza el perfil, conservando el logo.
func (uc *CompanyUseCase) Save(ctx context.Context, userID string, in dto.CompanyProfileRequest) (*dto.CompanyProfileResponse, error) {
	p, err := uc.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if p == nil {
		p = &entity.CompanyProfile{UserID: userID, CreatedAt: now}
	}
	p.Name = strings.TrimSpace(in.Name)
	p.TaxNumber = in.TaxNumber
	p.TaxOffice = in.TaxOffice
	p.Address = in.Address
	p.Phone = in.Phone
	p.Email = in.Email
	p.Website = in.Website
	p.IBAN = strings.ReplaceAll(strings.ToUpper(in.IBAN), " ", "")
	p.UpdatedAt = now
	if err := uc.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return toCompanyResponse(p), nil
}

// UploadLogo guarda el logo en company/<user>/logo<ext> y lo asocia al perfil.
func (uc *CompanyUseCase) UploadLogo(ctx context.Context, userID, fileName, contentType string, size int64, body io.Reader) (*dto.CompanyProfileResponse, error) {
	if uc.storage == nil {
		return nil, domain.ErrStorageDisabled
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		// el logo requiere un perfil con nombre
		return nil, domain.ErrNotFound
	}
	key := "company/" + userID + "/logo" + strings.ToLower(path.Ext(fileName))
	if err := uc.storage.Upload(ctx, key, body, size, contentType); err != nil {
		return nil, err
	}
	if p.LogoKey != "" && p.LogoKey != key {
		if err := uc.storage.Delete(ctx, p.LogoKey); err != nil {
			log.Warn().Err(err).Str("key", p.LogoKey).Msg("no se pudo borrar el logo anterior")
		}
	}
	p.LogoKey = key
	p.UpdatedAt = time.Now()
	if err := uc.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return toCompanyResponse(p), nil
}

// LogoURL URL temporal del logo.
func (uc *CompanyUseCase) LogoURL(ctx context.Context, userID string) (string, error) {
	if uc.storage == nil {
		return "", domain.ErrStorageDisabled
	}
	p, err := uc.repo.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	if p == nil || p.LogoKey == "" {
		return "", domain.ErrNotFound
	}
	return uc.storage.PresignedGetURL(ctx, p.LogoKey)
}

func toCompanyResponse(p *entity.CompanyProfile) *dto.CompanyProfileResponse {
	return &dto.CompanyProfileResponse{
		Name:      p.Name,
		TaxNumber: p.TaxNumber,
		TaxOffice: p.TaxOffice,
		Address:   p.Address,
		Phone:     p.Phone,
		Email:     p.Email,
		Website:   p.Website,
		IBAN:      p.IBAN,
		HasLogo:   p.LogoKey != "",
		UpdatedAt: p.UpdatedAt,
	}
}
