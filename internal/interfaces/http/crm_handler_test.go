package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkdnizduru/finans-proje/internal/application/dto"
	"github.com/gkdnizduru/finans-proje/internal/application/usecase"
	"github.com/gkdnizduru/finans-proje/internal/domain/entity"
	"github.com/gkdnizduru/finans-proje/internal/domain/repository"
	apphttp "github.com/gkdnizduru/finans-proje/internal/interfaces/http"
)

type dealStore struct {
	repository.DealRepository
	rows map[string]*entity.Deal
}

func (s *dealStore) GetByID(_ context.Context, userID, id string) (*entity.Deal, error) {
	d := s.rows[id]
	if d == nil || d.UserID != userID {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (s *dealStore) Update(_ context.Context, d *entity.Deal) error {
	s.rows[d.ID] = d
	return nil
}

type companyStore struct {
	profile *entity.CompanyProfile
}

func (s *companyStore) Get(context.Context, string) (*entity.CompanyProfile, error) {
	return s.profile, nil
}

func (s *companyStore) Upsert(_ context.Context, p *entity.CompanyProfile) error {
	s.profile = p
	return nil
}

// withUser simula AuthMiddleware.
func withUser(c *fiber.Ctx) error {
	c.Locals(apphttp.LocalUserID, testUserID)
	return c.Next()
}

func send(t *testing.T, app *fiber.App, req *http.Request, out any) int {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestDealMoveStage_HTTP(t *testing.T) {
	store := &dealStore{rows: map[string]*entity.Deal{
		"d1": {ID: "d1", UserID: testUserID, Title: "Kapadokya grubu", Stage: entity.DealStageLead, CreatedAt: time.Now()},
	}}
	app := fiber.New()
	h := apphttp.NewDealHandler(usecase.NewDealUseCase(store, nil))
	app.Patch("/deals/:id/stage", withUser, h.MoveStage)

	patch := func(id, body string) *http.Request {
		req := httptest.NewRequest(http.MethodPatch, "/deals/"+id+"/stage", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return req
	}

	var ok dto.DealResponse
	require.Equal(t, fiber.StatusOK, send(t, app, patch("d1", `{"stage":"proposal"}`), &ok))
	assert.Equal(t, entity.DealStageProposal, ok.Stage)
	assert.Equal(t, entity.DealStageProposal, store.rows["d1"].Stage)

	var bad dto.ErrorResponse
	require.Equal(t, fiber.StatusBadRequest, send(t, app, patch("d1", `{"stage":"archived"}`), &bad))
	assert.Equal(t, "VALIDATION", bad.Code)
	assert.Contains(t, bad.Message, "stage")

	require.Equal(t, fiber.StatusBadRequest, send(t, app, patch("d1", `{}`), &bad))
	assert.Equal(t, "VALIDATION", bad.Code)
	assert.Equal(t, entity.DealStageProposal, store.rows["d1"].Stage)

	var missing dto.ErrorResponse
	require.Equal(t, fiber.StatusNotFound, send(t, app, patch("zzz", `{"stage":"won"}`), &missing))
	assert.Equal(t, "NOT_FOUND", missing.Code)
}

func TestCompanyUploadLogo_AlmacenamientoDeshabilitado(t *testing.T) {
	store := &companyStore{profile: &entity.CompanyProfile{UserID: testUserID, Name: "Mavi Tur"}}
	app := fiber.New()
	h := apphttp.NewCompanyHandler(usecase.NewCompanyUseCase(store, nil))
	app.Put("/company/logo", withUser, h.UploadLogo)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "logo.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("\x89PNG"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/company/logo", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	var out dto.ErrorResponse
	require.Equal(t, fiber.StatusServiceUnavailable, send(t, app, req, &out))
	assert.Equal(t, "STORAGE_DISABLED", out.Code)
	assert.Empty(t, store.profile.LogoKey)

	// sin campo file
	req = httptest.NewRequest(http.MethodPut, "/company/logo", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	require.Equal(t, fiber.StatusBadRequest, send(t, app, req, &out))
	assert.Equal(t, "MISSING_FILE", out.Code)
}
