package eventbus

import (
	"log"
	"runtime/debug"
	"sync"

	"omnisearch/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventPaletteOpened         = domain.EventPaletteOpened
	EventPaletteClosed         = domain.EventPaletteClosed
	EventItemExecuted          = domain.EventItemExecuted
	EventActionFailed          = domain.EventActionFailed
	EventConfirmationRequested = domain.EventConfirmationRequested
	EventRemoteSearchFailed    = domain.EventRemoteSearchFailed
	EventConfigLoaded          = domain.EventConfigLoaded
	EventConfigSaved           = domain.EventConfigSaved
)

// Re-export domain event types
type PaletteOpenedEvent = domain.PaletteOpenedEvent
type PaletteClosedEvent = domain.PaletteClosedEvent
type ItemExecutedEvent = domain.ItemExecutedEvent
type ActionFailedEvent = domain.ActionFailedEvent
type ConfirmationRequestedEvent = domain.ConfirmationRequestedEvent
type RemoteSearchFailedEvent = domain.RemoteSearchFailedEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 256),
		quit:      make(chan struct{}),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers.
// Events are dropped when the buffer is full; publishing never blocks the caller.
func (b *bus) Publish(event DomainEvent) {
	select {
	case <-b.quit:
		return
	default:
	}

	select {
	case b.eventChan <- event:
	default:
		log.Printf("Event bus channel full, dropping event: %v", event.Type())
	}
}

// Subscribe subscribes to events of a specific type.
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher. Pending events are discarded.
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
	})
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := b.handlers[event.Type()]
			// Copy so handlers run without holding the lock
			subsCopy := make([]subscription, len(subs))
			copy(subsCopy, subs)
			b.mu.RUnlock()

			for _, s := range subsCopy {
				b.call(s.handler, event)
			}

		case <-b.quit:
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}

func (b *bus) call(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Event handler panic for %s: %v\nStack: %s", event.Type(), r, debug.Stack())
		}
	}()
	h(event)
}

// NullBus is a no-op implementation of EventBus
type NullBus struct{}

func (NullBus) Publish(event DomainEvent)                                  {}
func (NullBus) Subscribe(eventType EventType, handler EventHandler) func() { return func() {} }
func (NullBus) Close()                                                     {}
