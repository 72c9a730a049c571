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

// DealUseCase embudo de ventas.
type DealUseCase struct {
	repo  repository.DealRepository
	cache *cached.Reader
}

// NewDealUseCase construye el caso de uso.
func NewDealUseCase(repo repository.DealRepository, cache *cached.Reader) *DealUseCase {
	return &DealUseCase{repo: repo, cache: cache}
}

// Create crea una oportunidad; la etapa por defecto es lead.
func (uc *DealUseCase) Create(ctx context.Context, userID string, in dto.DealRequest) (*dto.DealResponse, error) {
	now := time.Now()
	d := &entity.Deal{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyDeal(d, in)
	if !validStage(d.Stage) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, userID, cached.Deals)
	return toDealResponse(d), nil
}

func (uc *DealUseCase) GetByID(ctx context.Context, userID, id string) (*dto.DealResponse, error) {
	d, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil || d == nil {
		return nil, err
	}
	return toDealResponse(d), nil
}

func (uc *DealUseCase) Update(ctx context.Context, userID, id string, in dto.DealRequest) (*dto.DealResponse, error) {
	d, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil || d == nil {
		return nil, err
	}
	applyDeal(d, in)
	if !validStage(d.Stage) {
		return nil, domain.ErrInvalidInput
	}
	d.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, userID, cached.Deals)
	return toDealResponse(d), nil
}

// MoveStage cambia solo la etapa.
func (uc *DealUseCase) MoveStage(ctx context.Context, userID, id, stage string) (*dto.DealResponse, error) {
	if !validStage(stage) {
		return nil, domain.ErrInvalidInput
	}
	d, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil || d == nil {
		return nil, err
	}
	d.Stage = stage
	d.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, userID, cached.Deals)
	return toDealResponse(d), nil
}

func (uc *DealUseCase) List(ctx context.Context, userID string, f repository.DealFilter) ([]dto.DealResponse, error) {
	key := cached.Key(userID, cached.Deals, f.CustomerID, f.Stage, f.Limit, f.Offset)
	return cached.Load(ctx, uc.cache, key, func(ctx context.Context) ([]dto.DealResponse, error) {
		list, err := uc.repo.List(ctx, userID, f)
		if err != nil {
			return nil, err
		}
		out := make([]dto.DealResponse, 0, len(list))
		for _, d := range list {
			out = append(out, *toDealResponse(d))
		}
		return out, nil
	})
}

func (uc *DealUseCase) Delete(ctx context.Context, userID, id string) error {
	if err := uc.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	uc.cache.Invalidate(ctx, userID, cached.Deals, cached.Activities)
	return nil
}

func validStage(s string) bool {
	switch s {
	case entity.DealStageLead, entity.DealStageProposal, entity.DealStageNegotiation,
		entity.DealStageWon, entity.DealStageLost:
		return true
	}
	return false
}

func applyDeal(d *entity.Deal, in dto.DealRequest) {
	d.CustomerID = in.CustomerID
	d.Title = strings.TrimSpace(in.Title)
	d.Value = in.Value
	d.Currency = currencyOr(in.Currency)
	d.Stage = in.Stage
	if d.Stage == "" {
		d.Stage = entity.DealStageLead
	}
	d.ExpectedCloseDate = in.ExpectedCloseDate
	d.Notes = in.Notes
}

func toDealResponse(d *entity.Deal) *dto.DealResponse {
	return &dto.DealResponse{
		ID:                d.ID,
		CustomerID:        d.CustomerID,
		Title:             d.Title,
		Value:             d.Value,
		Currency:          d.Currency,
		Stage:             d.Stage,
		ExpectedCloseDate: d.ExpectedCloseDate,
		Notes:             d.Notes,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

// ActivityUseCase llamadas, reuniones y tareas de seguimiento.
type ActivityUseCase struct {
	repo  repository.ActivityRepository
	cache *cached.Reader
}

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(repo repository.ActivityRepository, cache *cached.Reader) *ActivityUseCase {
	return &ActivityUseCase{repo: repo, cache: cache}
}

func (uc *ActivityUseCase) Create(ctx context.Context, userID string, in dto.ActivityRequest) (*dto.ActivityResponse, error) {
	now := time.Now()
	a := &entity.Activity{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyActivity(a, in, now)
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, userID, cached.Activities)
	return toActivityResponse(a), nil
}

func (uc *ActivityUseCase) GetByID(ctx context.Context, userID, id string) (*dto.ActivityResponse, error) {
	a, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil || a == nil {
		return nil, err
	}
	return toActivityResponse(a), nil
}

func (uc *ActivityUseCase) Update(ctx context.Context, userID, id string, in dto.ActivityRequest) (*dto.ActivityResponse, error) {
	a, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil || a == nil {
		return nil, err
	}
	now := time.Now()
	applyActivity(a, in, now)
	a.UpdatedAt = now
	if err := uc.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, userID, cached.Activities)
	return toActivityResponse(a), nil
}

// Complete marca la actividad como hecha. Completar dos veces conserva la primera fecha.
func (uc *ActivityUseCase) Complete(ctx context.Context, userID, id string) (*dto.ActivityResponse, error) {
	a, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil || a == nil {
		return nil, err
	}
	if a.Completed {
		return toActivityResponse(a), nil
	}
	now := time.Now()
	a.Completed = true
	a.CompletedAt = &now
	a.UpdatedAt = now
	if err := uc.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, userID, cached.Activities)
	return toActivityResponse(a), nil
}

func (uc *ActivityUseCase) List(ctx context.Context, userID string, f repository.ActivityFilter) ([]dto.ActivityResponse, error) {
	completed := ""
	if f.Completed != nil {
		completed = map[bool]string{true: "done", false: "open"}[*f.Completed]
	}
	key := cached.Key(userID, cached.Activities, f.CustomerID, f.DealID, completed, f.Limit, f.Offset)
	return cached.Load(ctx, uc.cache, key, func(ctx context.Context) ([]dto.ActivityResponse, error) {
		list, err := uc.repo.List(ctx, userID, f)
		if err != nil {
			return nil, err
		}
		out := make([]dto.ActivityResponse, 0, len(list))
		for _, a := range list {
			out = append(out, *toActivityResponse(a))
		}
		return out, nil
	})
}

func (uc *ActivityUseCase) Delete(ctx context.Context, userID, id string) error {
	if err := uc.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	uc.cache.Invalidate(ctx, userID, cached.Activities)
	return nil
}

func applyActivity(a *entity.Activity, in dto.ActivityRequest, now time.Time) {
	a.CustomerID = in.CustomerID
	a.DealID = in.DealID
	a.Type = in.Type
	a.Subject = strings.TrimSpace(in.Subject)
	a.Description = in.Description
	a.DueDate = in.DueDate
	switch {
	case in.Completed && !a.Completed:
		a.CompletedAt = &now
	case !in.Completed:
		a.CompletedAt = nil
	}
	a.Completed = in.Completed
}

func toActivityResponse(a *entity.Activity) *dto.ActivityResponse {
	return &dto.ActivityResponse{
		ID:          a.ID,
		CustomerID:  a.CustomerID,
		DealID:      a.DealID,
		Type:        a.Type,
		Subject:     a.Subject,
		Description: a.Description,
		DueDate:     a.DueDate,
		Completed:   a.Completed,
		CompletedAt: a.CompletedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
