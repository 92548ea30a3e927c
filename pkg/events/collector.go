package events

import "slices"

// EventCollector buffers the events an aggregate raises until they are
// drained for publishing. The zero value is ready to use.
type EventCollector struct {
	pending []DomainEvent
}

// Record queues events in the order they were raised.
func (c *EventCollector) Record(evts ...DomainEvent) {
	c.pending = append(c.pending, evts...)
}

// Pending returns a copy of the queued events.
func (c *EventCollector) Pending() []DomainEvent {
	return slices.Clone(c.pending)
}

// Raised reports whether an event of the given type is queued.
func (c *EventCollector) Raised(eventType string) bool {
	return slices.ContainsFunc(c.pending, func(e DomainEvent) bool {
		return e.EventType() == eventType
	})
}

// Drain returns the queued events and empties the queue.
func (c *EventCollector) Drain() []DomainEvent {
	drained := c.pending
	c.pending = nil
	return drained
}
