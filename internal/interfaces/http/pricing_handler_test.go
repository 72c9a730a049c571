package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkdnizduru/finans-proje/internal/application/dto"
	apphttp "github.com/gkdnizduru/finans-proje/internal/interfaces/http"
)

func pricingApp() *fiber.App {
	app := fiber.New()
	h := apphttp.NewPricingHandler()
	app.Post("/lines", h.Lines)
	app.Post("/commission", h.Commission)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string, out any) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "esperado %s, obtenido %s", want, got)
}

func TestPricingLines_Exclusive(t *testing.T) {
	var out dto.LinesPreviewResponse
	status := postJSON(t, pricingApp(), "/lines", `{
		"prices_include_tax": false,
		"items": [
			{"description": "Otel", "quantity": 2, "unit_price": 1500, "tax_rate": 20},
			{"description": "Transfer", "quantity": 1, "unit_price": "400", "tax_rate": 10}
		]}`, &out)

	require.Equal(t, fiber.StatusOK, status)
	assertDec(t, "3400", out.Subtotal)
	assertDec(t, "640", out.Tax)
	assertDec(t, "4040", out.Total)
	require.Len(t, out.Lines, 2)
	assertDec(t, "3600", out.Lines[0].LineTotal)
}

func TestPricingLines_Inclusive(t *testing.T) {
	var out dto.LinesPreviewResponse
	status := postJSON(t, pricingApp(), "/lines", `{
		"prices_include_tax": true,
		"items": [{"description": "Bilet", "quantity": 1, "unit_price": 1200, "tax_rate": 20}]}`, &out)

	require.Equal(t, fiber.StatusOK, status)
	assertDec(t, "1000", out.Subtotal)
	assertDec(t, "200", out.Tax)
	assertDec(t, "1200", out.Total)
}

func TestPricingLines_Validation(t *testing.T) {
	var out dto.ErrorResponse
	status := postJSON(t, pricingApp(), "/lines", `{
		"items": [{"description": "Otel", "quantity": 0, "unit_price": 100, "tax_rate": 20}]}`, &out)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Contains(t, out.Message, "quantity")
}

func TestPricingLines_InvalidBody(t *testing.T) {
	var out dto.ErrorResponse
	status := postJSON(t, pricingApp(), "/lines", `{"items": [`, &out)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INVALID_BODY", out.Code)
}

func TestPricingCommission(t *testing.T) {
	t.Run("comisión", func(t *testing.T) {
		var out dto.CommissionPreviewResponse
		status := postJSON(t, pricingApp(), "/commission",
			`{"pricing_mode": "commission", "sell_price": 10000, "commission_rate": 12.5}`, &out)

		require.Equal(t, fiber.StatusOK, status)
		assertDec(t, "1250", out.Profit)
		assertDec(t, "8750", out.NetPrice)
		assert.True(t, out.NetReadOnly)
	})

	t.Run("markup", func(t *testing.T) {
		var out dto.CommissionPreviewResponse
		status := postJSON(t, pricingApp(), "/commission",
			`{"pricing_mode": "markup", "sell_price": 500, "net_price": 420}`, &out)

		require.Equal(t, fiber.StatusOK, status)
		assertDec(t, "80", out.Profit)
		assertDec(t, "420", out.NetPrice)
		assert.False(t, out.NetReadOnly)
	})

	t.Run("tasa fuera de rango", func(t *testing.T) {
		var out dto.ErrorResponse
		status := postJSON(t, pricingApp(), "/commission",
			`{"pricing_mode": "commission", "sell_price": 1000, "commission_rate": 150}`, &out)

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "VALIDATION", out.Code)
	})

	t.Run("modo desconocido", func(t *testing.T) {
		var out dto.ErrorResponse
		status := postJSON(t, pricingApp(), "/commission", `{"pricing_mode": "net", "sell_price": 1000}`, &out)

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Contains(t, out.Message, "pricing_mode")
	})
}
