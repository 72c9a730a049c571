package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkdnizduru/finans-proje/internal/application/dto"
	"github.com/gkdnizduru/finans-proje/internal/application/usecase"
	"github.com/gkdnizduru/finans-proje/internal/domain"
	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
)

func TestAirlineCRUD(t *testing.T) {
	repo := &memAirlines{rows: map[string]*entity.Airline{}}
	uc := usecase.NewAirlineUseCase(repo, nil)
	ctx := context.Background()

	a, err := uc.Create(ctx, userID, dto.AirlineRequest{Name: " Pegasus ", Code: "pc "})
	require.NoError(t, err)
	assert.Equal(t, "Pegasus", a.Name)
	assert.Equal(t, "PC", a.Code)

	_, err = uc.Create(ctx, userID, dto.AirlineRequest{Name: "AJet", Code: "vf"})
	require.NoError(t, err)

	up, err := uc.Update(ctx, userID, a.ID, dto.AirlineRequest{Name: "Pegasus Hava Yolları", Code: "pc"})
	require.NoError(t, err)
	require.NotNil(t, up)
	assert.Equal(t, "Pegasus Hava Yolları", up.Name)

	missing, err := uc.Update(ctx, userID, "no-existe", dto.AirlineRequest{Name: "X"})
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := uc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "AJet", list[0].Name)

	require.NoError(t, uc.Delete(ctx, userID, a.ID))
	assert.ErrorIs(t, uc.Delete(ctx, userID, a.ID), domain.ErrNotFound)
}

func TestCategoryCRUD(t *testing.T) {
	repo := &memCategories{rows: map[string]*entity.Category{}}
	uc := usecase.NewCategoryUseCase(repo, nil)
	ctx := context.Background()

	_, err := uc.Create(ctx, userID, dto.CategoryRequest{Name: " Bilet Satışı ", Type: entity.CategoryTypeIncome})
	require.NoError(t, err)
	rent, err := uc.Create(ctx, userID, dto.CategoryRequest{Name: "Kira", Type: entity.CategoryTypeExpense})
	require.NoError(t, err)

	_, err = uc.Create(ctx, userID, dto.CategoryRequest{Name: "Kira", Type: entity.CategoryTypeExpense})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = uc.Create(ctx, userID, dto.CategoryRequest{Name: "Diğer", Type: "transfer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	income, err := uc.List(ctx, userID, entity.CategoryTypeIncome)
	require.NoError(t, err)
	require.Len(t, income, 1)
	assert.Equal(t, "Bilet Satışı", income[0].Name)

	all, err := uc.List(ctx, userID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = uc.Update(ctx, userID, rent.ID, dto.CategoryRequest{Name: "Kira", Type: "other"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	up, err := uc.Update(ctx, userID, rent.ID, dto.CategoryRequest{Name: "Ofis kirası", Type: entity.CategoryTypeExpense, Color: "#aa3300"})
	require.NoError(t, err)
	assert.Equal(t, "Ofis kirası", up.Name)
	assert.Equal(t, "#aa3300", up.Color)

	require.NoError(t, uc.Delete(ctx, userID, rent.ID))
	all, err = uc.List(ctx, userID, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
