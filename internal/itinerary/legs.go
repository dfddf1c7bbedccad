package itinerary

import (
	"context"

	"github.com/centralviagens/viagens/internal/domain/event"
)

// Schedule holds the per-leg date/time fields that must survive leg
// regeneration. Values stay in wire format ("02/01/2006" / "15:04").
type Schedule struct {
	DataSaida   string
	HoraSaida   string
	DataChegada string
	HoraChegada string
}

// IsZero reports whether no field is set.
func (s Schedule) IsZero() bool {
	return s == Schedule{}
}

// Leg is one origin→destination segment of the itinerary.
type Leg struct {
	Index    int
	Origem   Place
	Destino  Place
	Schedule Schedule
}

// ReturnLeg is the final return-to-base pseudo-leg. It is not a numbered
// leg; only its endpoints are derived.
type ReturnLeg struct {
	Saida   Place
	Chegada Place
}

// Legs returns a snapshot of the current leg sequence.
func (c *Controller) Legs() []Leg {
	out := make([]Leg, len(c.legs))
	for i, l := range c.legs {
		out[i] = *l
	}
	return out
}

// Return returns the return pseudo-leg.
func (c *Controller) Return() ReturnLeg {
	return c.retorno
}

// SetSchedule updates the date/time fields of the leg at the given
// position.
func (c *Controller) SetSchedule(position int, s Schedule) error {
	if position < 0 || position >= len(c.legs) {
		return ErrDestinoNaoEncontrado
	}
	c.legs[position].Schedule = s
	c.fire(event.TypeHorarioAlterado, map[string]interface{}{"posicao": position})
	return nil
}

// Rebuild derives the leg sequence from the valid destinations and the
// home base. Date/time values are snapshotted and restored by position,
// not by destination identity, so a pure reorder keeps each leg's
// schedule where it was. With zero valid destinations exactly one blank
// leg remains, origin still the home base.
func (c *Controller) Rebuild() {
	valid := c.ValidDestinations()
	target := len(valid)
	if target < 1 {
		target = 1
	}

	snapshot := make([]Schedule, len(c.legs))
	for i, l := range c.legs {
		snapshot[i] = l.Schedule
	}

	legs := make([]*Leg, target)
	for i := 0; i < target; i++ {
		leg := &Leg{Index: i}

		if i == 0 {
			leg.Origem = c.sede
		} else {
			leg.Origem = Place{UF: valid[i-1].UF, Cidade: valid[i-1].Cidade}
		}
		if i < len(valid) {
			leg.Destino = Place{UF: valid[i].UF, Cidade: valid[i].Cidade}
		}
		if i < len(snapshot) {
			leg.Schedule = snapshot[i]
		}
		legs[i] = leg
	}
	c.legs = legs

	if len(valid) > 0 {
		last := valid[len(valid)-1]
		c.retorno = ReturnLeg{
			Saida:   Place{UF: last.UF, Cidade: last.Cidade},
			Chegada: c.sede,
		}
	} else {
		c.retorno = ReturnLeg{Chegada: c.sede}
	}

	if c.bus != nil {
		evt := event.NewEvent(event.TypeTrechosReconstruidos, c.oficioID, map[string]interface{}{
			"trechos": len(c.legs),
		})
		if err := c.bus.Dispatch(context.Background(), evt); err != nil {
			c.logger.Error("leg rebuild event dispatch failed")
		}
	}
}
