package itinerary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centralviagens/viagens/internal/application/dispatcher"
)

type staleRecorder struct {
	calls int
}

func (s *staleRecorder) InputChanged(ctx context.Context) {
	s.calls++
}

func TestPipeline_EditRegeneratesAndInvalidates(t *testing.T) {
	bus := dispatcher.NewDispatcher()
	stale := &staleRecorder{}

	c := NewController(sede, WithDispatcher(bus))
	BindPipeline(bus, c, stale)

	id := c.Destinations()[0].ID
	require.NoError(t, c.SetDestino(id, "PR", "101", "Londrina"))

	// One edit ran the whole chain: legs now reflect the destination and
	// the estimate was marked stale.
	legs := c.Legs()
	require.Len(t, legs, 1)
	assert.Equal(t, "Londrina", legs[0].Destino.Cidade)
	assert.Equal(t, 1, stale.calls)
}

func TestPipeline_AddThenFillGrowsLegs(t *testing.T) {
	bus := dispatcher.NewDispatcher()
	stale := &staleRecorder{}

	c := NewController(sede, WithDispatcher(bus))
	BindPipeline(bus, c, stale)

	first := c.Destinations()[0].ID
	require.NoError(t, c.SetDestino(first, "PR", "101", "Londrina"))
	second := c.Add().ID
	require.NoError(t, c.SetDestino(second, "PR", "102", "Maringá"))

	assert.Len(t, c.Legs(), 2)
	assert.Equal(t, "Londrina", c.Legs()[1].Origem.Cidade)
}

func TestPipeline_RevalidatesBeforeRegenerating(t *testing.T) {
	bus := dispatcher.NewDispatcher()

	c := NewController(sede, WithDispatcher(bus))
	BindPipeline(bus, c, nil)

	id := c.Destinations()[0].ID
	// Partial entry: flagged invalid by the pipeline, excluded from legs.
	require.NoError(t, c.SetDestino(id, "PR", "", ""))

	assert.True(t, c.Destinations()[0].Invalid)
	require.Len(t, c.Legs(), 1)
	assert.Equal(t, Place{}, c.Legs()[0].Destino)
}

func TestPipeline_NilInvalidatorIsSafe(t *testing.T) {
	bus := dispatcher.NewDispatcher()
	c := NewController(sede, WithDispatcher(bus))
	BindPipeline(bus, c, nil)

	assert.NotPanics(t, func() { c.Add() })
}
