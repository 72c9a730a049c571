package repository

import (
	"context"

	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
)

// CompanyRepository perfil de la agencia (uno por usuario).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	// Get devuelve nil, nil si el usuario todavía no guardó su perfil.
	Get(ctx context.Context, userID string) (*entity.CompanyProfile, error)
	Upsert(ctx context.Context, profile *entity.CompanyProfile) error
}
