package travel

import (
	"context"
	"strings"
	"time"

	"github.com/gkdnizduru/finans-proje/internal/application/dto"
	"github.com/gkdnizduru/finans-proje/internal/domain/pnr"
	"github.com/gkdnizduru/finans-proje/internal/domain/repository"
)

// iataCodes código IATA de cada nombre canónico del parser.
var iataCodes = map[string]string{
	pnr.AirlineTHY:     "TK",
	pnr.AirlinePegasus: "PC",
	pnr.AirlineAJet:    "VF",
}

// PNRUseCase precarga de billetes desde texto libre. No guarda nada.
type PNRUseCase struct {
	airlines repository.AirlineRepository
	now      func() time.Time
}

func NewPNRUseCase(airlines repository.AirlineRepository) *PNRUseCase {
	return &PNRUseCase{airlines: airlines, now: time.Now}
}

// Parse analiza el texto y, si reconoce la aerolínea, busca la del usuario por nombre o código.
func (uc *PNRUseCase) Parse(ctx context.Context, userID, text string) (*dto.PNRPrefillResponse, error) {
	p := pnr.Parse(text, uc.now())
	out := &dto.PNRPrefillResponse{
		PassengerName: p.PassengerName,
		TicketNumber:  p.TicketNumber,
		PNR:           p.PNR,
		Airline:       p.Airline,
		FlightNumber:  p.FlightNumber,
		Origin:        p.Origin,
		Destination:   p.Destination,
		FlightDate:    p.FlightDate,
	}
	if p.Airline == "" {
		return out, nil
	}
	list, err := uc.airlines.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	code := iataCodes[p.Airline]
	for _, a := range list {
		if strings.EqualFold(a.Name, p.Airline) || (code != "" && strings.EqualFold(a.Code, code)) {
			id := a.ID
			out.AirlineID = &id
			break
		}
	}
	return out, nil
}
