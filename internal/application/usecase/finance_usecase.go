package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gkdnizduru/finans-proje/internal/application/cached"
	"github.com/gkdnizduru/finans-proje/internal/application/dto"
	"github.com/gkdnizduru/finans-proje/internal/domain"
	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
	"github.com/gkdnizduru/finans-proje/internal/domain/repository"
)

// DefaultCurrency moneda por defecto de documentos y movimientos.
const DefaultCurrency = "TRY"

// AccountUseCase cajas, cuentas bancarias y tarjetas.
type AccountUseCase struct {
	repo  repository.AccountRepository
	cache *cached.Reader
}

// NewAccountUseCase construye el caso de uso.
func NewAccountUseCase(repo repository.AccountRepository, cache *cached.Reader) *AccountUseCase {
	return &AccountUseCase{repo: repo, cache: cache}
}

func (uc *AccountUseCase) Create(ctx context.Context, userID string, in dto.AccountRequest) (*dto.AccountResponse, error) {
	now := time.Now()
	a := &entity.Account{
		ID:             uuid.New().String(),
		UserID:         userID,
		Name:           strings.TrimSpace(in.Name),
		Type:           in.Type,
		Currency:       currencyOr(in.Currency),
		OpeningBalance: in.OpeningBalance,
		Balance:        in.OpeningBalance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, userID, cached.Accounts)
	return toAccountResponse(a), nil
}

func (uc *AccountUseCase) GetByID(ctx context.Context, userID, id string) (*dto.AccountResponse, error) {
	a, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil || a == nil {
		return nil, err
	}
	return toAccountResponse(a), nil
}

// Update cambia nombre, tipo, moneda y saldo inicial; el saldo se recalcula en lectura.
func (uc *AccountUseCase) Update(ctx context.Context, userID, id string, in dto.AccountRequest) (*dto.AccountResponse, error) {
	a, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil || a == nil {
		return nil, err
	}
	a.Balance = a.Balance.Sub(a.OpeningBalance).Add(in.OpeningBalance)
	a.Name = strings.TrimSpace(in.Name)
	a.Type = in.Type
	a.Currency = currencyOr(in.Currency)
	a.OpeningBalance = in.OpeningBalance
	a.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, userID, cached.Accounts)
	return toAccountResponse(a), nil
}

// List cuentas con saldo actual.
func (uc *AccountUseCase) List(ctx context.Context, userID string) ([]dto.AccountResponse, error) {
	return cached.Load(ctx, uc.cache, cached.Key(userID, cached.Accounts, "all"), func(ctx context.Context) ([]dto.AccountResponse, error) {
		list, err := uc.repo.List(ctx, userID)
		if err != nil {
			return nil, err
		}
		out := make([]dto.AccountResponse, 0, len(list))
		for _, a := range list {
			out = append(out, *toAccountResponse(a))
		}
		return out, nil
	})
}

func (uc *AccountUseCase) Delete(ctx context.Context, userID, id string) error {
	if err := uc.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	uc.cache.Invalidate(ctx, userID, cached.Accounts, cached.Transactions)
	return nil
}

func toAccountResponse(a *entity.Account) *dto.AccountResponse {
	return &dto.AccountResponse{
		ID:             a.ID,
		Name:           a.Name,
		Type:           a.Type,
		Currency:       a.Currency,
		OpeningBalance: a.OpeningBalance,
		Balance:        a.Balance,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// TransactionUseCase movimientos de ingresos y egresos.
type TransactionUseCase struct {
	repo       repository.TransactionRepository
	categories repository.CategoryRepository
	cache      *cached.Reader
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(repo repository.TransactionRepository, categories repository.CategoryRepository, cache *cached.Reader) *TransactionUseCase {
	return &TransactionUseCase{repo: repo, categories: categories, cache: cache}
}

// Create registra un movimiento. La categoría, si se indica, debe ser del mismo tipo.
func (uc *TransactionUseCase) Create(ctx context.Context, userID string, in dto.TransactionRequest) (*dto.TransactionResponse, error) {
	if err := uc.checkInput(ctx, userID, in); err != nil {
		return nil, err
	}
	now := time.Now()
	t := &entity.Transaction{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyTransaction(t, in)
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, userID)
	return toTransactionResponse(t), nil
}

func (uc *TransactionUseCase) GetByID(ctx context.Context, userID, id string) (*dto.TransactionResponse, error) {
	t, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil || t == nil {
		return nil, err
	}
	return toTransactionResponse(t), nil
}

func (uc *TransactionUseCase) Update(ctx context.Context, userID, id string, in dto.TransactionRequest) (*dto.TransactionResponse, error) {
	t, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil || t == nil {
		return nil, err
	}
	if err := uc.checkInput(ctx, userID, in); err != nil {
		return nil, err
	}
	applyTransaction(t, in)
	t.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, userID)
	return toTransactionResponse(t), nil
}

// List movimientos filtrados, más recientes primero.
func (uc *TransactionUseCase) List(ctx context.Context, userID string, f repository.TransactionFilter) (*dto.TransactionListResponse, error) {
	key := cached.Key(userID, cached.Transactions, f.Type, f.AccountID, f.CategoryID, f.CustomerID,
		dateKey(f.From), dateKey(f.To), f.Limit, f.Offset)
	return cached.Load(ctx, uc.cache, key, func(ctx context.Context) (*dto.TransactionListResponse, error) {
		list, total, err := uc.repo.List(ctx, userID, f)
		if err != nil {
			return nil, err
		}
		items := make([]dto.TransactionResponse, 0, len(list))
		for _, t := range list {
			items = append(items, *toTransactionResponse(t))
		}
		return &dto.TransactionListResponse{
			Items: items,
			Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
		}, nil
	})
}

func (uc *TransactionUseCase) Delete(ctx context.Context, userID, id string) error {
	if err := uc.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	uc.invalidate(ctx, userID)
	return nil
}

func (uc *TransactionUseCase) checkInput(ctx context.Context, userID string, in dto.TransactionRequest) error {
	if !in.Amount.IsPositive() {
		return domain.ErrInvalidInput
	}
	if in.Type != entity.TransactionTypeIncome && in.Type != entity.TransactionTypeExpense {
		return domain.ErrInvalidInput
	}
	if in.CategoryID == nil {
		return nil
	}
	c, err := uc.categories.GetByID(ctx, userID, *in.CategoryID)
	if err != nil {
		return err
	}
	if c == nil || c.Type != in.Type {
		return domain.ErrInvalidInput
	}
	return nil
}

func (uc *TransactionUseCase) invalidate(ctx context.Context, userID string) {
	uc.cache.Invalidate(ctx, userID, cached.Transactions, cached.Accounts, cached.Dashboard)
}

func applyTransaction(t *entity.Transaction, in dto.TransactionRequest) {
	t.Type = in.Type
	t.Amount = in.Amount
	t.Currency = currencyOr(in.Currency)
	t.Description = in.Description
	t.Date = in.Date
	t.AccountID = in.AccountID
	t.CategoryID = in.CategoryID
	t.CustomerID = in.CustomerID
	t.InvoiceID = in.InvoiceID
}

func toTransactionResponse(t *entity.Transaction) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:          t.ID,
		Type:        t.Type,
		Amount:      t.Amount,
		Currency:    t.Currency,
		Description: t.Description,
		Date:        t.Date,
		AccountID:   t.AccountID,
		CategoryID:  t.CategoryID,
		CustomerID:  t.CustomerID,
		InvoiceID:   t.InvoiceID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func currencyOr(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return DefaultCurrency
	}
	return c
}

func dateKey(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
