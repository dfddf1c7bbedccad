package itinerary

import (
	"context"

	"github.com/centralviagens/viagens/internal/application/dispatcher"
	"github.com/centralviagens/viagens/internal/domain/event"
)

// EstimateInvalidator is the estimate-side hook the pipeline calls after
// every leg regeneration.
type EstimateInvalidator interface {
	InputChanged(ctx context.Context)
}

// changeTypes are the events that mean "the itinerary changed" and run the
// full pipeline.
var changeTypes = []event.Type{
	event.TypeDestinoAdicionado,
	event.TypeDestinoAlterado,
	event.TypeDestinoRemovido,
	event.TypeDestinosReordenados,
	event.TypeHorarioAlterado,
}

// BindPipeline subscribes the ordered reactive chain on the dispatcher:
// any itinerary change revalidates the list and regenerates the legs, and
// every regeneration marks the estimate stale. The dispatcher runs
// handlers in registration order, which is what makes the chain ordered.
func BindPipeline(bus dispatcher.Dispatcher, c *Controller, estimate EstimateInvalidator) {
	for _, t := range changeTypes {
		bus.SubscribeNamed(t, "revalidar", func(ctx context.Context, evt *event.Event) error {
			c.Validate()
			return nil
		})
		bus.SubscribeNamed(t, "regenerar", func(ctx context.Context, evt *event.Event) error {
			c.Rebuild()
			return nil
		})
	}

	bus.SubscribeNamed(event.TypeTrechosReconstruidos, "invalidar-estimativa",
		func(ctx context.Context, evt *event.Event) error {
			if estimate != nil {
				estimate.InputChanged(ctx)
			}
			return nil
		})
}
