package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebuild_OriginChain(t *testing.T) {
	c := NewController(sede)
	a := c.Destinations()[0].ID
	b := c.Add().ID
	d := c.Add().ID
	filled(t, c, a, "PR", "101", "Londrina")
	filled(t, c, b, "PR", "102", "Maringá")
	filled(t, c, d, "DF", "501", "Brasília")

	c.Rebuild()

	legs := c.Legs()
	require.Len(t, legs, 3)
	assert.Equal(t, sede, legs[0].Origem)
	assert.Equal(t, "Londrina", legs[0].Destino.Cidade)
	assert.Equal(t, "Londrina", legs[1].Origem.Cidade)
	assert.Equal(t, "Maringá", legs[1].Destino.Cidade)
	assert.Equal(t, "Maringá", legs[2].Origem.Cidade)
	assert.Equal(t, "Brasília", legs[2].Destino.Cidade)

	retorno := c.Return()
	assert.Equal(t, "Brasília", retorno.Saida.Cidade)
	assert.Equal(t, sede, retorno.Chegada)
}

func TestRebuild_CountIsValidDestinations(t *testing.T) {
	c := NewController(sede)
	a := c.Destinations()[0].ID
	b := c.Add().ID
	c.Add() // stays empty
	filled(t, c, a, "PR", "101", "Londrina")
	require.NoError(t, c.SetDestino(b, "SP", "", "")) // partial, excluded

	c.Rebuild()

	assert.Len(t, c.Legs(), 1)
}

func TestRebuild_ZeroValidKeepsOneBlankLeg(t *testing.T) {
	c := NewController(sede)
	c.Rebuild()

	legs := c.Legs()
	require.Len(t, legs, 1)
	assert.Equal(t, sede, legs[0].Origem)
	assert.Equal(t, Place{}, legs[0].Destino)
	assert.Equal(t, ReturnLeg{Chegada: sede}, c.Return())
}

func TestRebuild_SchedulesSurviveByPosition(t *testing.T) {
	c := NewController(sede)
	a := c.Destinations()[0].ID
	b := c.Add().ID
	filled(t, c, a, "PR", "101", "Londrina")
	filled(t, c, b, "PR", "102", "Maringá")
	c.Rebuild()

	s0 := Schedule{DataSaida: "01/03/2024", HoraSaida: "08:00", DataChegada: "01/03/2024", HoraChegada: "12:00"}
	s1 := Schedule{DataSaida: "02/03/2024", HoraSaida: "09:00", DataChegada: "02/03/2024", HoraChegada: "11:00"}
	require.NoError(t, c.SetSchedule(0, s0))
	require.NoError(t, c.SetSchedule(1, s1))

	// Pure reorder: destinations swap but each position keeps its schedule.
	require.NoError(t, c.Reorder(b, a, false))
	c.Rebuild()

	legs := c.Legs()
	require.Len(t, legs, 2)
	assert.Equal(t, "Maringá", legs[0].Destino.Cidade)
	assert.Equal(t, s0, legs[0].Schedule, "position 0 keeps its schedule after reorder")
	assert.Equal(t, "Londrina", legs[1].Destino.Cidade)
	assert.Equal(t, s1, legs[1].Schedule, "position 1 keeps its schedule after reorder")
}

func TestRebuild_ShrinkDropsTailSchedules(t *testing.T) {
	c := NewController(sede)
	a := c.Destinations()[0].ID
	b := c.Add().ID
	filled(t, c, a, "PR", "101", "Londrina")
	filled(t, c, b, "PR", "102", "Maringá")
	c.Rebuild()

	require.NoError(t, c.SetSchedule(0, Schedule{DataSaida: "01/03/2024"}))
	require.NoError(t, c.SetSchedule(1, Schedule{DataSaida: "02/03/2024"}))

	require.NoError(t, c.Remove(b))
	c.Rebuild()

	legs := c.Legs()
	require.Len(t, legs, 1)
	assert.Equal(t, "01/03/2024", legs[0].Schedule.DataSaida)
}

func TestSetSede_CascadesThroughChain(t *testing.T) {
	c := NewController(sede)
	a := c.Destinations()[0].ID
	filled(t, c, a, "PR", "101", "Londrina")
	c.Rebuild()

	nova := Place{UF: "SC", Cidade: "Chapecó"}
	c.SetSede(nova)
	c.Rebuild()

	assert.Equal(t, nova, c.Legs()[0].Origem)
	assert.Equal(t, nova, c.Return().Chegada)
}

func TestSetSchedule_OutOfRange(t *testing.T) {
	c := NewController(sede)
	assert.Error(t, c.SetSchedule(5, Schedule{}))
	assert.Error(t, c.SetSchedule(-1, Schedule{}))
}
