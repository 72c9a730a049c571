package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkdnizduru/finans-proje/internal/application/dto"
	"github.com/gkdnizduru/finans-proje/internal/application/usecase"
	"github.com/gkdnizduru/finans-proje/internal/domain"
	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
)

const dealCustomerID = "22222222-2222-2222-2222-222222222222"

func TestDealCreate_EtapaPorDefecto(t *testing.T) {
	repo := &memDeals{rows: map[string]*entity.Deal{}}
	uc := usecase.NewDealUseCase(repo, nil)

	out, err := uc.Create(context.Background(), userID, dto.DealRequest{
		CustomerID: dealCustomerID, Title: "  Balayı paketi ", Value: decimal.RequireFromString("45000"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DealStageLead, out.Stage)
	assert.Equal(t, "Balayı paketi", out.Title)
	assert.Equal(t, "TRY", out.Currency)
	assert.Len(t, repo.rows, 1)

	_, err = uc.Create(context.Background(), userID, dto.DealRequest{CustomerID: dealCustomerID, Title: "x", Stage: "closed"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Len(t, repo.rows, 1)
}

func TestDealMoveStage(t *testing.T) {
	repo := &memDeals{rows: map[string]*entity.Deal{}}
	uc := usecase.NewDealUseCase(repo, nil)
	ctx := context.Background()

	d, err := uc.Create(ctx, userID, dto.DealRequest{CustomerID: dealCustomerID, Title: "Umre grubu"})
	require.NoError(t, err)

	moved, err := uc.MoveStage(ctx, userID, d.ID, entity.DealStageNegotiation)
	require.NoError(t, err)
	require.NotNil(t, moved)
	assert.Equal(t, entity.DealStageNegotiation, moved.Stage)
	assert.Equal(t, entity.DealStageNegotiation, repo.rows[d.ID].Stage)
	assert.Equal(t, "Umre grubu", repo.rows[d.ID].Title, "solo cambia la etapa")

	_, err = uc.MoveStage(ctx, userID, d.ID, "archived")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.DealStageNegotiation, repo.rows[d.ID].Stage)
	assert.Equal(t, 1, repo.updates)

	missing, err := uc.MoveStage(ctx, userID, "no-existe", entity.DealStageWon)
	require.NoError(t, err)
	assert.Nil(t, missing)

	other, err := uc.MoveStage(ctx, "33333333-3333-3333-3333-333333333333", d.ID, entity.DealStageWon)
	require.NoError(t, err)
	assert.Nil(t, other, "otro usuario no ve la oportunidad")
}
