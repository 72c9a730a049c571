package dto

import "time"

// CompanyProfileRequest datos editables del perfil de la agencia.
type CompanyProfileRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	TaxNumber string `json:"tax_number" validate:"omitempty,max=20"`
	TaxOffice string `json:"tax_office" validate:"omitempty,max=100"`
	Address   string `json:"address" validate:"omitempty,max=500"`
	Phone     string `json:"phone" validate:"omitempty,max=50"`
	Email     string `json:"email" validate:"omitempty,email"`
	Website   string `json:"website" validate:"omitempty,url"`
	IBAN      string `json:"iban" validate:"omitempty,max=34"`
}

// CompanyProfileResponse perfil de la agencia.
type CompanyProfileResponse struct {
	Name      string    `json:"name"`
	TaxNumber string    `json:"tax_number"`
	TaxOffice string    `json:"tax_office"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Website   string    `json:"website"`
	IBAN      string    `json:"iban"`
	HasLogo   bool      `json:"has_logo"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FileURLResponse URL temporal de descarga.
type FileURLResponse struct {
	URL string `json:"url"`
}
