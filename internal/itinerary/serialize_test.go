package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centralviagens/viagens/internal/formset"
)

func TestToForm(t *testing.T) {
	c := NewController(sede)
	a := c.Destinations()[0].ID
	b := c.Add().ID
	filled(t, c, a, "PR", "101", "Londrina")
	filled(t, c, b, "DF", "501", "Brasília")
	c.Rebuild()
	require.NoError(t, c.SetSchedule(0, Schedule{DataSaida: "01/03/2024", HoraSaida: "08:00"}))

	form := c.ToForm()

	assert.Equal(t, "2", form.Get("destinos-TOTAL_FORMS"))
	assert.Equal(t, "0", form.Get("destinos-INITIAL_FORMS"))
	assert.Equal(t, "PR", form.Get("destinos-0-uf"))
	assert.Equal(t, "101", form.Get("destinos-0-cidade"))
	assert.Equal(t, "DF", form.Get("destinos-1-uf"))
	assert.Equal(t, "0,1", form.Get("destinos-order"))

	assert.Equal(t, "2", form.Get("trechos-TOTAL_FORMS"))
	assert.Equal(t, sede.Cidade, form.Get("trechos-0-origem"))
	assert.Equal(t, "Londrina", form.Get("trechos-0-destino"))
	assert.Equal(t, "01/03/2024", form.Get("trechos-0-data_saida"))
	assert.Equal(t, "Londrina", form.Get("trechos-1-origem"))
	assert.Equal(t, "Brasília", form.Get("trechos-1-destino"))

	assert.Equal(t, "Brasília", form.Get("retorno_cidade_saida"))
	assert.Equal(t, sede.Cidade, form.Get("retorno_cidade_chegada"))
}

func TestToForm_OrderStringAfterReorder(t *testing.T) {
	c := NewController(sede)
	a := c.Destinations()[0].ID
	b := c.Add().ID
	filled(t, c, a, "PR", "101", "Londrina")
	filled(t, c, b, "PR", "102", "Maringá")
	require.NoError(t, c.Reorder(b, a, false))

	form := c.ToForm()
	assert.Equal(t, "1,0", form.Get("destinos-order"))
	// Display order, not original order, drives the indexed keys.
	assert.Equal(t, "102", form.Get("destinos-0-cidade"))
	assert.Equal(t, "101", form.Get("destinos-1-cidade"))
}

func TestLoadForm(t *testing.T) {
	form := formset.Form{
		"destinos-order":         "0,1",
		"destinos-0-uf":          "PR",
		"destinos-0-cidade":      "101",
		"destinos-1-uf":          "DF",
		"destinos-1-cidade":      "501",
		"trechos-0-data_saida":   "01/03/2024",
		"trechos-0-hora_saida":   "08:00",
		"trechos-0-data_chegada": "01/03/2024",
		"trechos-0-hora_chegada": "12:00",
		"trechos-1-data_saida":   "02/03/2024",
	}
	form.SetManagement("destinos", 2)
	form.SetManagement("trechos", 2)

	c := NewController(sede)
	require.NoError(t, c.LoadForm(form))

	destinos := c.Destinations()
	require.Len(t, destinos, 2)
	assert.Equal(t, "PR", destinos[0].UF)
	assert.Equal(t, "101", destinos[0].CidadeID)
	assert.Equal(t, "DF", destinos[1].UF)

	legs := c.Legs()
	require.Len(t, legs, 2)
	assert.Equal(t, "08:00", legs[0].Schedule.HoraSaida)
	assert.Equal(t, "02/03/2024", legs[1].Schedule.DataSaida)
}

func TestLoadForm_ReplaysOrderString(t *testing.T) {
	form := formset.Form{
		"destinos-order":    "1,0",
		"destinos-0-uf":     "PR",
		"destinos-0-cidade": "101",
		"destinos-1-uf":     "SP",
		"destinos-1-cidade": "200",
	}
	form.SetManagement("destinos", 2)

	c := NewController(sede)
	require.NoError(t, c.LoadForm(form))

	destinos := c.Destinations()
	require.Len(t, destinos, 2)
	assert.Equal(t, "SP", destinos[0].UF)
	assert.Equal(t, "PR", destinos[1].UF)
	assert.Equal(t, "1,0", c.OrderString())
}

func TestLoadForm_BadOrderString(t *testing.T) {
	form := formset.Form{"destinos-order": "0,x"}
	form.SetManagement("destinos", 2)

	c := NewController(sede)
	assert.Error(t, c.LoadForm(form))
}

func TestLoadForm_EmptyFormKeepsOneBlank(t *testing.T) {
	c := NewController(sede)
	require.NoError(t, c.LoadForm(formset.Form{}))

	destinos := c.Destinations()
	require.Len(t, destinos, 1)
	assert.True(t, destinos[0].IsEmpty())
	assert.Len(t, c.Legs(), 1)
}
