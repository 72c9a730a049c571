// Package pnr extrae datos de vuelo y pasajero de texto libre pegado desde un sistema de
// reservas (GDS / web de aerolínea).
//
// Es una heurística: el resultado se presenta como precarga editable y nunca se guarda
// automáticamente. Cada token reconocido se elimina del texto de trabajo para que los
// patrones posteriores, más laxos, no lo vuelvan a capturar; por eso el orden importa y
// una entrada ambigua puede interpretarse mal.
package pnr

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Nombres canónicos de aerolínea.
const (
	AirlineTHY     = "THY"
	AirlinePegasus = "Pegasus"
	AirlineAJet    = "AJet"
)

// Prefill resultado del análisis; los campos no encontrados quedan vacíos.
type Prefill struct {
	PassengerName string
	TicketNumber  string
	PNR           string
	Airline       string
	FlightNumber  string
	Origin        string
	Destination   string
	FlightDate    time.Time // hoy si no se encontró fecha
	DateFound     bool
}

var months = map[string]time.Month{
	"JAN": time.January, "FEB": time.February, "MAR": time.March, "APR": time.April,
	"MAY": time.May, "JUN": time.June, "JUL": time.July, "AUG": time.August,
	"SEP": time.September, "OCT": time.October, "NOV": time.November, "DEC": time.December,
}

var airlineVocabulary = map[string]string{
	"THY":     AirlineTHY,
	"TK":      AirlineTHY,
	"TURKISH": AirlineTHY,
	"PC":      AirlinePegasus,
	"PEGASUS": AirlinePegasus,
	"VF":      AirlineAJet,
	"AJET":    AirlineAJet,
}

var (
	dateRe        = regexp.MustCompile(`\b(\d{1,2})(JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)\b`)
	digitRunRe    = regexp.MustCompile(`\d+`)
	routeDashRe   = regexp.MustCompile(`\b([A-Z]{3})\s*-\s*([A-Z]{3})\b`)
	routeBareRe   = regexp.MustCompile(`\b([A-Z]{3})([A-Z]{3})\b`)
	airlineWordRe = regexp.MustCompile(`\b(THY|TK|PC|VF|AJET|TURKISH|PEGASUS)\b(\s+(AIRLINES|AIRLINE|HAVAYOLLARI))?`)
	flightCodeRe  = regexp.MustCompile(`\b(TK|PC|VF)\d{3,4}\b`)
	flightRe      = regexp.MustCompile(`\b[A-Z]{2}\d{3,4}\b`)
	pnrLabelRe    = regexp.MustCompile(`\bPNR\s*[:#]?\s*([A-Z0-9]{4,6})\b`)
	pnrTokenRe    = regexp.MustCompile(`\b[A-Z0-9]{4,6}\b`)
	titleRe       = regexp.MustCompile(`\b(MR|MRS|MS|MISS|MSTR|CHD|INF)\b`)
	spacesRe      = regexp.MustCompile(`\s+`)
)

// Parse analiza text. now fija el año de las fechas y la fecha por defecto.
func Parse(text string, now time.Time) Prefill {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	out := Prefill{FlightDate: today}
	work := " " + strings.ToUpper(text) + " "

	// 1) Fechas tipo 14JAN (año actual). Se usa la primera válida; todas se eliminan.
	for _, m := range dateRe.FindAllStringSubmatch(work, -1) {
		if !out.DateFound {
			if d, ok := parseDay(m[1], m[2], now); ok {
				out.FlightDate = d
				out.DateFound = true
			}
		}
		work = strings.Replace(work, m[0], " ", 1)
	}

	// 2) Número de billete: 13 dígitos exactos, si no la corrida numérica más larga (>= 6).
	if tn := pickTicketNumber(work); tn != "" {
		out.TicketNumber = tn
		work = strings.Replace(work, tn, " ", 1)
	}

	// 3) Ruta: XXX-XXX, si no 6 letras seguidas divididas 3+3.
	if m := routeDashRe.FindStringSubmatch(work); m != nil {
		out.Origin, out.Destination = m[1], m[2]
		work = strings.Replace(work, m[0], " ", 1)
	} else if m := routeBareRe.FindStringSubmatch(work); m != nil {
		out.Origin, out.Destination = m[1], m[2]
		work = strings.Replace(work, m[0], " ", 1)
	}

	// 4) Aerolínea: palabra suelta del vocabulario; si no, el código del número de vuelo
	// (sin eliminarlo, lo necesita el paso 5).
	if m := airlineWordRe.FindStringSubmatch(work); m != nil {
		out.Airline = airlineVocabulary[m[1]]
		work = strings.Replace(work, m[0], " ", 1)
	} else if m := flightCodeRe.FindStringSubmatch(work); m != nil {
		out.Airline = airlineVocabulary[m[1]]
	}

	// 5) Número de vuelo: 2 letras + 3-4 dígitos.
	if m := flightRe.FindString(work); m != "" {
		out.FlightNumber = m
		work = strings.Replace(work, m, " ", 1)
	}

	// 6) PNR: con etiqueta "PNR:" primero; si no, un token de 4-6 caracteres que mezcle
	// letras y dígitos (los tokens solo de letras se tratan como parte del nombre).
	if m := pnrLabelRe.FindStringSubmatch(work); m != nil {
		out.PNR = m[1]
		work = strings.Replace(work, m[0], " ", 1)
	} else {
		for _, tok := range pnrTokenRe.FindAllString(work, -1) {
			if hasLetter(tok) && hasDigit(tok) {
				out.PNR = tok
				work = strings.Replace(work, tok, " ", 1)
				break
			}
		}
	}

	// 7) Lo que queda, sin dígitos ni puntuación, es el nombre del pasajero.
	work = strings.ReplaceAll(work, "PNR", " ")
	work = titleRe.ReplaceAllString(work, " ")
	work = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return ' '
	}, work)
	out.PassengerName = strings.TrimSpace(spacesRe.ReplaceAllString(work, " "))

	return out
}

func parseDay(day, mon string, now time.Time) (time.Time, bool) {
	n, err := strconv.Atoi(day)
	if err != nil || n < 1 {
		return time.Time{}, false
	}
	month := months[mon]
	d := time.Date(now.Year(), month, n, 0, 0, 0, 0, now.Location())
	if d.Month() != month { // 31FEB y similares
		return time.Time{}, false
	}
	return d, true
}

func pickTicketNumber(work string) string {
	runs := digitRunRe.FindAllString(work, -1)
	longest := ""
	for _, r := range runs {
		if len(r) == 13 {
			return r
		}
		if len(r) >= 6 && len(r) > len(longest) {
			longest = r
		}
	}
	return longest
}

func hasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}
