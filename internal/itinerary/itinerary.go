// Package itinerary keeps a multi-leg travel itinerary consistent: an
// ordered destination list, the leg sequence derived from it and the home
// base, and the ordered pipeline that revalidates, regenerates and marks
// the per-diem estimate stale after every change.
package itinerary

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/centralviagens/viagens/internal/application/dispatcher"
	"github.com/centralviagens/viagens/internal/domain/event"
)

var ErrDestinoNaoEncontrado = errors.New("destino nao encontrado")

// Place is a city/state pair, used for the home base and leg endpoints.
type Place struct {
	UF     string
	Cidade string
}

// Destination is one entry of the destinations list. The invariant is
// fully empty or fully set; anything in between is flagged Invalid by
// Validate and excluded from leg regeneration.
type Destination struct {
	ID       int64
	Order    int
	UF       string
	CidadeID string
	Cidade   string
	Invalid  bool

	// formIndex is the wire-format index the entry was created with. The
	// order string serializes these in display order so the server can
	// replay a drag reorder.
	formIndex int
}

// IsEmpty reports whether no field is set.
func (d *Destination) IsEmpty() bool {
	return d.UF == "" && d.CidadeID == "" && d.Cidade == ""
}

// IsValid reports whether both state and city are set.
func (d *Destination) IsValid() bool {
	return d.UF != "" && d.CidadeID != ""
}

func (d *Destination) clear() {
	d.UF, d.CidadeID, d.Cidade = "", "", ""
	d.Invalid = false
}

// Controller owns the destination list and the derived legs of one form.
type Controller struct {
	sede     Place
	destinos []*Destination
	legs     []*Leg
	retorno  ReturnLeg

	nextID        int64
	nextFormIndex int
	oficioID      int64

	bus    dispatcher.Dispatcher
	logger *zap.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithDispatcher wires the controller's change events into a dispatcher.
func WithDispatcher(bus dispatcher.Dispatcher) Option {
	return func(c *Controller) { c.bus = bus }
}

// WithLogger sets the controller's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithOficioID tags emitted events with the oficio being edited.
func WithOficioID(id int64) Option {
	return func(c *Controller) { c.oficioID = id }
}

// NewController creates a controller for the given home base. The list
// starts with one blank destination and the matching single blank leg.
func NewController(sede Place, opts ...Option) *Controller {
	c := &Controller{sede: sede, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	c.addBlank()
	c.Rebuild()
	return c
}

// Sede returns the home base.
func (c *Controller) Sede() Place {
	return c.sede
}

// SetSede changes the home base and cascades through the leg chain, since
// leg 0's origin and every transitive origin depend on it.
func (c *Controller) SetSede(sede Place) {
	c.sede = sede
	c.fire(event.TypeDestinoAlterado, map[string]interface{}{"campo": "sede"})
}

// Destinations returns a snapshot of the list in display order.
func (c *Controller) Destinations() []Destination {
	out := make([]Destination, len(c.destinos))
	for i, d := range c.destinos {
		out[i] = *d
	}
	return out
}

// Add appends a blank destination and returns it.
func (c *Controller) Add() Destination {
	d := c.addBlank()
	c.reindex()
	c.fire(event.TypeDestinoAdicionado, map[string]interface{}{"id": d.ID})
	return *d
}

// SetDestino fills in a destination entry.
func (c *Controller) SetDestino(id int64, uf, cidadeID, cidade string) error {
	d := c.byID(id)
	if d == nil {
		return ErrDestinoNaoEncontrado
	}
	d.UF, d.CidadeID, d.Cidade = uf, cidadeID, cidade
	c.fire(event.TypeDestinoAlterado, map[string]interface{}{"id": id})
	return nil
}

// Remove drops a destination. The list never goes below one entry: removing
// the last remaining destination clears its fields instead.
func (c *Controller) Remove(id int64) error {
	idx := -1
	for i, d := range c.destinos {
		if d.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrDestinoNaoEncontrado
	}

	if len(c.destinos) == 1 {
		c.destinos[0].clear()
	} else {
		c.destinos = append(c.destinos[:idx], c.destinos[idx+1:]...)
		c.reindex()
	}
	c.fire(event.TypeDestinoRemovido, map[string]interface{}{"id": id})
	return nil
}

// Reorder moves the dragged destination before or after the target and
// re-indexes the list 0..n-1 contiguously. A drag onto itself is a no-op.
func (c *Controller) Reorder(draggedID, targetID int64, after bool) error {
	if draggedID == targetID {
		return nil
	}

	dragged := c.byID(draggedID)
	if dragged == nil || c.byID(targetID) == nil {
		return ErrDestinoNaoEncontrado
	}

	rest := make([]*Destination, 0, len(c.destinos))
	for _, d := range c.destinos {
		if d.ID != draggedID {
			rest = append(rest, d)
		}
	}

	insertAt := -1
	for i, d := range rest {
		if d.ID == targetID {
			insertAt = i
			if after {
				insertAt++
			}
			break
		}
	}

	c.destinos = make([]*Destination, 0, len(rest)+1)
	c.destinos = append(c.destinos, rest[:insertAt]...)
	c.destinos = append(c.destinos, dragged)
	c.destinos = append(c.destinos, rest[insertAt:]...)
	c.reindex()

	c.fire(event.TypeDestinosReordenados, map[string]interface{}{
		"ordem": c.OrderString(),
	})
	return nil
}

// Validate flags partially-filled entries (state without city or city
// without state) and returns the display indices of the invalid ones.
// Invalid entries block only submit-time computation, never interaction.
func (c *Controller) Validate() []int {
	var invalid []int
	for i, d := range c.destinos {
		d.Invalid = !d.IsEmpty() && !d.IsValid()
		if d.Invalid {
			invalid = append(invalid, i)
		}
	}
	return invalid
}

// TrimTrailingEmpty drops fully-empty entries from the tail, never going
// below one entry.
func (c *Controller) TrimTrailingEmpty() {
	for len(c.destinos) > 1 && c.destinos[len(c.destinos)-1].IsEmpty() {
		c.destinos = c.destinos[:len(c.destinos)-1]
	}
	c.reindex()
}

// ValidDestinations returns the fully-set entries in display order.
func (c *Controller) ValidDestinations() []Destination {
	var out []Destination
	for _, d := range c.destinos {
		if d.IsValid() {
			out = append(out, *d)
		}
	}
	return out
}

// OrderString serializes the current display order as the comma-joined
// original-index string submitted in "destinos-order".
func (c *Controller) OrderString() string {
	indices := make([]int, len(c.destinos))
	for i, d := range c.destinos {
		indices[i] = d.formIndex
	}
	return orderString(indices)
}

func (c *Controller) addBlank() *Destination {
	d := &Destination{
		ID:        c.nextID,
		Order:     len(c.destinos),
		formIndex: c.nextFormIndex,
	}
	c.nextID++
	c.nextFormIndex++
	c.destinos = append(c.destinos, d)
	return d
}

func (c *Controller) byID(id int64) *Destination {
	for _, d := range c.destinos {
		if d.ID == id {
			return d
		}
	}
	return nil
}

func (c *Controller) reindex() {
	for i, d := range c.destinos {
		d.Order = i
	}
}

func (c *Controller) fire(eventType event.Type, payload map[string]interface{}) {
	if c.bus == nil {
		return
	}
	evt := event.NewEvent(eventType, c.oficioID, payload)
	if err := c.bus.Dispatch(context.Background(), evt); err != nil {
		c.logger.Error("itinerary event dispatch failed",
			zap.String("event_type", eventType.String()),
			zap.Error(err))
	}
}
