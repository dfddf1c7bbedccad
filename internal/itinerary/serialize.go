package itinerary

import (
	"github.com/centralviagens/viagens/internal/formset"
)

// Formset prefixes and field names used on the wire.
const (
	PrefixDestinos = "destinos"
	PrefixTrechos  = "trechos"

	OrderKey = "destinos-order"
)

func orderString(indices []int) string {
	return formset.OrderString(indices)
}

// ToForm serializes the controller to the formset wire format. This runs
// at submit time only; interactive edits never touch the wire form.
func (c *Controller) ToForm() formset.Form {
	form := formset.Form{}

	form.SetManagement(PrefixDestinos, len(c.destinos))
	for i, d := range c.destinos {
		form[formset.Key(PrefixDestinos, i, "uf")] = d.UF
		form[formset.Key(PrefixDestinos, i, "cidade")] = d.CidadeID
	}
	form[OrderKey] = c.OrderString()

	form.SetManagement(PrefixTrechos, len(c.legs))
	for i, l := range c.legs {
		form[formset.Key(PrefixTrechos, i, "origem")] = l.Origem.Cidade
		form[formset.Key(PrefixTrechos, i, "destino")] = l.Destino.Cidade
		form[formset.Key(PrefixTrechos, i, "destino_uf")] = l.Destino.UF
		form[formset.Key(PrefixTrechos, i, "data_saida")] = l.Schedule.DataSaida
		form[formset.Key(PrefixTrechos, i, "hora_saida")] = l.Schedule.HoraSaida
		form[formset.Key(PrefixTrechos, i, "data_chegada")] = l.Schedule.DataChegada
		form[formset.Key(PrefixTrechos, i, "hora_chegada")] = l.Schedule.HoraChegada
	}

	form["retorno_cidade_saida"] = c.retorno.Saida.Cidade
	form["retorno_cidade_chegada"] = c.retorno.Chegada.Cidade

	return form
}

// LoadForm replaces the controller's destinations and leg schedules with
// the contents of a submitted form. The "destinos-order" string, when
// present and consistent, replays the display order of a drag reorder.
func (c *Controller) LoadForm(form formset.Form) error {
	total := form.Total(PrefixDestinos)
	if total < 1 {
		total = 1
	}

	order, err := formset.ParseOrder(form.Get(OrderKey))
	if err != nil {
		return err
	}
	if len(order) != total {
		order = order[:0]
		for i := 0; i < total; i++ {
			order = append(order, i)
		}
	}

	c.destinos = nil
	for _, idx := range order {
		d := c.addBlank()
		d.formIndex = idx
		if idx >= c.nextFormIndex {
			c.nextFormIndex = idx + 1
		}
		d.UF = form.Field(PrefixDestinos, idx, "uf")
		d.CidadeID = form.Field(PrefixDestinos, idx, "cidade")
		d.Cidade = form.Field(PrefixDestinos, idx, "cidade_nome")
	}
	c.reindex()
	c.Validate()
	c.Rebuild()

	// Leg schedules restore by position.
	nLegs := form.Total(PrefixTrechos)
	for i := 0; i < nLegs && i < len(c.legs); i++ {
		c.legs[i].Schedule = Schedule{
			DataSaida:   form.Field(PrefixTrechos, i, "data_saida"),
			HoraSaida:   form.Field(PrefixTrechos, i, "hora_saida"),
			DataChegada: form.Field(PrefixTrechos, i, "data_chegada"),
			HoraChegada: form.Field(PrefixTrechos, i, "hora_chegada"),
		}
	}

	return nil
}
