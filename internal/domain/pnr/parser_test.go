package pnr_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gkdnizduru/finans-proje/internal/domain/pnr"
)

var now = time.Date(2025, time.June, 10, 15, 30, 0, 0, time.UTC)

func TestParse_EjemploCompleto(t *testing.T) {
	got := pnr.Parse("14JAN AHMET YILMAZ TK1234 IST-AYT 1234567890123 PNR:ABC123", now)

	assert.True(t, got.DateFound)
	assert.Equal(t, time.Date(2025, time.January, 14, 0, 0, 0, 0, time.UTC), got.FlightDate)
	assert.Equal(t, "1234567890123", got.TicketNumber)
	assert.Equal(t, pnr.AirlineTHY, got.Airline)
	assert.Equal(t, "TK1234", got.FlightNumber)
	assert.Equal(t, "IST", got.Origin)
	assert.Equal(t, "AYT", got.Destination)
	assert.Equal(t, "ABC123", got.PNR)
	assert.Equal(t, "AHMET YILMAZ", got.PassengerName)
}

func TestParse_RutaSinGuionYPNRSinEtiqueta(t *testing.T) {
	got := pnr.Parse("pegasus PC2020 SAWADB 05MAR 123456 X7K2LM mehmet demir", now)

	assert.Equal(t, pnr.AirlinePegasus, got.Airline)
	assert.Equal(t, "PC2020", got.FlightNumber)
	assert.Equal(t, "SAW", got.Origin)
	assert.Equal(t, "ADB", got.Destination)
	assert.Equal(t, "123456", got.TicketNumber)
	assert.Equal(t, "X7K2LM", got.PNR)
	assert.Equal(t, time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC), got.FlightDate)
	assert.Equal(t, "MEHMET DEMIR", got.PassengerName)
}

func TestParse_AerolineaPorPalabra(t *testing.T) {
	got := pnr.Parse("AJET VF3001 ESB-IST", now)
	assert.Equal(t, pnr.AirlineAJet, got.Airline)
	assert.Equal(t, "VF3001", got.FlightNumber)
	assert.Empty(t, got.PassengerName)
}

func TestParse_SinFechaUsaHoy(t *testing.T) {
	got := pnr.Parse("TK2410 IST-ADB", now)
	assert.False(t, got.DateFound)
	assert.Equal(t, time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC), got.FlightDate)
}

func TestParse_FechaInvalidaSeDescarta(t *testing.T) {
	got := pnr.Parse("31FEB AYSE KAYA", now)
	assert.False(t, got.DateFound)
	assert.Equal(t, "AYSE KAYA", got.PassengerName)
}

func TestParse_QuitaTratamientoYBarra(t *testing.T) {
	got := pnr.Parse("KAYA/AYSE MRS", now)
	assert.Equal(t, "KAYA AYSE", got.PassengerName)
}

func TestParse_TextoVacio(t *testing.T) {
	got := pnr.Parse("", now)
	assert.Equal(t, pnr.Prefill{FlightDate: time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)}, got)
}

func TestParse_LocalizadorSoloLetras(t *testing.T) {
	// Sin etiqueta, un token solo de letras no se toma como PNR: queda en el nombre.
	got := pnr.Parse("IST-AYT XKQZPT AYSE KAYA", now)
	assert.Empty(t, got.PNR)
	assert.Equal(t, "XKQZPT AYSE KAYA", got.PassengerName)

	// Con etiqueta sí.
	got = pnr.Parse("IST-AYT PNR XKQZPT AYSE KAYA", now)
	assert.Equal(t, "XKQZPT", got.PNR)
	assert.Equal(t, "AYSE KAYA", got.PassengerName)

	// Sin ruta previa, 6 letras seguidas se leen como ruta (el orden de extracción manda).
	got = pnr.Parse("XKQZPT AYSE KAYA", now)
	assert.Equal(t, "XKQ", got.Origin)
	assert.Equal(t, "ZPT", got.Destination)
	assert.Empty(t, got.PNR)
}
