package events

// EventPublisherAdapter adapts the EventBus to the processor.EventPublisher interface,
// which accepts untyped values.
type EventPublisherAdapter struct {
	bus *EventBus
}

// NewEventPublisherAdapter creates a new adapter
func NewEventPublisherAdapter(bus *EventBus) *EventPublisherAdapter {
	return &EventPublisherAdapter{bus: bus}
}

// Publish forwards Event values and ignores anything else.
func (a *EventPublisherAdapter) Publish(event interface{}) {
	if e, ok := event.(Event); ok {
		a.bus.Publish(e)
	}
}
