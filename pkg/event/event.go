// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Flight event types
const (
	ShipLanded    Type = "ship_landed"
	ShipLaunched  Type = "ship_launched"
	GearCycled    Type = "gear_cycled"
	GearDeployed  Type = "gear_deployed"
	GearRetracted Type = "gear_retracted"
	GameStarted   Type = "game_started"
	GameEnded     Type = "game_ended"
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

// SubscriptionID identifies a registered handler.
type SubscriptionID uint64

// Subscription is returned by Subscribe. Cancel removes the handler.
type Subscription struct {
	ID     SubscriptionID
	Cancel func()
}

type registration struct {
	id      SubscriptionID
	handler Handler
}

// Bus manages event subscriptions and dispatching. Publish calls handlers
// synchronously in the publisher's goroutine, in subscription order.
type Bus struct {
	handlers map[Type][]registration
	nextID   SubscriptionID
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})
	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id SubscriptionID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[eventType]
	for i, r := range regs {
		if r.id == id {
			b.handlers[eventType] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	regs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, r := range regs {
		r.handler(event)
	}
}

// ShipEvent reports a ship contact transition.
type ShipEvent struct {
	BaseEvent
	Tick     uint64
	X, Y     float64
	Speed    float64
	Altitude float64
}

// NewShipEvent creates a new ship event
func NewShipEvent(eventType Type, source interface{}, tick uint64, x, y, speed, altitude float64) *ShipEvent {
	return &ShipEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Tick:     tick,
		X:        x,
		Y:        y,
		Speed:    speed,
		Altitude: altitude,
	}
}

// GearEvent reports a landing gear transition.
type GearEvent struct {
	BaseEvent
	Tick   uint64
	State  string
	Landed bool
}

// NewGearEvent creates a new gear event
func NewGearEvent(eventType Type, source interface{}, tick uint64, state string, landed bool) *GearEvent {
	return &GearEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Tick:   tick,
		State:  state,
		Landed: landed,
	}
}
