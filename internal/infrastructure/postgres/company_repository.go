package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
	"github.com/gkdnizduru/finans-proje/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo perfil de la agencia (una fila por usuario).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Get devuelve el perfil del usuario o nil si no existe.
func (r *CompanyRepo) Get(ctx context.Context, userID string) (*entity.CompanyProfile, error) {
	query := `
		SELECT user_id, name, tax_number, tax_office, address, phone, email, website, iban, logo_key,
		       created_at, updated_at
		FROM company_profiles WHERE user_id = $1`
	var p entity.CompanyProfile
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.Name, &p.TaxNumber, &p.TaxOffice, &p.Address, &p.Phone, &p.Email, &p.Website,
		&p.IBAN, &p.LogoKey, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company profile: %w", err)
	}
	return &p, nil
}

// Upsert crea o reemplaza el perfil. created_at se conserva en la actualización.
func (r *CompanyRepo) Upsert(ctx context.Context, p *entity.CompanyProfile) error {
	query := `
		INSERT INTO company_profiles
		    (user_id, name, tax_number, tax_office, address, phone, email, website, iban, logo_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id) DO UPDATE SET
		    name = EXCLUDED.name, tax_number = EXCLUDED.tax_number, tax_office = EXCLUDED.tax_office,
		    address = EXCLUDED.address, phone = EXCLUDED.phone, email = EXCLUDED.email,
		    website = EXCLUDED.website, iban = EXCLUDED.iban, logo_key = EXCLUDED.logo_key,
		    updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		p.UserID, p.Name, p.TaxNumber, p.TaxOffice, p.Address, p.Phone, p.Email, p.Website, p.IBAN,
		p.LogoKey, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert company profile: %w", err)
	}
	return nil
}
