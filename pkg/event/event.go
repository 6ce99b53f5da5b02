// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Common event types
const (
	BodyDestroyed Type = "body_destroyed"
	BodyRespawned Type = "body_respawned"
	WarpEngaged   Type = "warp_engaged"
	WarpArrived   Type = "warp_arrived"
	WarpAborted   Type = "warp_aborted"
	TorpedoFired  Type = "torpedo_fired"
	HullCollision Type = "hull_collision"
	AlertChanged  Type = "alert_changed"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers, ok := b.handlers[event.GetType()]
	b.mu.RUnlock()

	if !ok {
		return
	}

	for _, handler := range handlers {
		handler(event)
	}
}

// Specific event implementations

// BodyEvent carries information about destructible-body lifecycle events
type BodyEvent struct {
	BaseEvent
	BodyID uint64
	Name   string
}

// NewBodyEvent creates a new body lifecycle event
func NewBodyEvent(eventType Type, source interface{}, bodyID uint64, name string) *BodyEvent {
	return &BodyEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		BodyID: bodyID,
		Name:   name,
	}
}

// WarpEvent carries information about warp travel milestones
type WarpEvent struct {
	BaseEvent
	DestinationID uint64
	Level         int
}

// NewWarpEvent creates a new warp travel event
func NewWarpEvent(eventType Type, source interface{}, destinationID uint64, level int) *WarpEvent {
	return &WarpEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		DestinationID: destinationID,
		Level:         level,
	}
}

// CollisionEvent carries information about hull contact with a body
type CollisionEvent struct {
	BaseEvent
	BodyID uint64
	Damage float64
}

// NewCollisionEvent creates a new hull collision event
func NewCollisionEvent(source interface{}, bodyID uint64, damage float64) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent: BaseEvent{
			EventType: HullCollision,
			Source:    source,
		},
		BodyID: bodyID,
		Damage: damage,
	}
}

// AlertEvent carries an alert level transition
type AlertEvent struct {
	BaseEvent
	Previous string
	Current  string
}

// NewAlertEvent creates a new alert level event
func NewAlertEvent(source interface{}, previous, current string) *AlertEvent {
	return &AlertEvent{
		BaseEvent: BaseEvent{
			EventType: AlertChanged,
			Source:    source,
		},
		Previous: previous,
		Current:  current,
	}
}
