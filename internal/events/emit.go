package events

import (
	"context"
	"log"

	"prepwise/internal/metrics"
)

// Emit builds and publishes an event. Publishing is best effort: failures are
// logged and counted, never returned to the caller.
func Emit(ctx context.Context, p Publisher, eventType string, payload interface{}) {
	if p == nil {
		return
	}
	event, err := NewEvent(eventType, payload)
	if err != nil {
		log.Printf("Failed to build %s event: %v", eventType, err)
		metrics.IncEventPublishError()
		return
	}
	if err := p.Publish(ctx, event); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
		metrics.IncEventPublishError()
	}
}
