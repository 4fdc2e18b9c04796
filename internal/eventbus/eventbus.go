package eventbus

import (
	"io"
	"runtime/debug"
	"sync"

	"github.com/charmbracelet/log"

	"quicklaunch/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventCatalogBuilt = domain.EventCatalogBuilt
	EventAppLaunched  = domain.EventAppLaunched
	EventLaunchFailed = domain.EventLaunchFailed
	EventResultCopied = domain.EventResultCopied
	EventError        = domain.EventError
)

// Re-export domain event types
type CatalogBuiltEvent = domain.CatalogBuiltEvent
type AppLaunchedEvent = domain.AppLaunchedEvent
type LaunchFailedEvent = domain.LaunchFailedEvent
type ResultCopiedEvent = domain.ResultCopiedEvent
type ErrorEvent = domain.ErrorEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

const queueSize = 256

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]subscription
	nextID   uint64
	events   chan DomainEvent
	quit     chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
	logger   *log.Logger
}

// New creates a new event bus and starts its dispatcher
func New(logger *log.Logger) EventBus {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	b := &bus{
		handlers: make(map[EventType][]subscription),
		events:   make(chan DomainEvent, queueSize),
		quit:     make(chan struct{}),
		logger:   logger,
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish queues an event for delivery. It never blocks.
func (b *bus) Publish(event DomainEvent) {
	select {
	case <-b.quit:
		return
	default:
	}

	select {
	case b.events <- event:
	default:
		b.logger.Warn("event bus full, dropping event", "type", event.Type())
	}
}

// Subscribe registers handler for eventType and returns an unsubscribe function
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

// Close delivers what is already queued and stops the dispatcher
func (b *bus) Close() {
	b.once.Do(func() {
		close(b.quit)
	})
	b.wg.Wait()
}

func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.events:
			b.deliver(event)
		case <-b.quit:
			for {
				select {
				case event := <-b.events:
					b.deliver(event)
				default:
					return
				}
			}
		}
	}
}

func (b *bus) deliver(event DomainEvent) {
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.Type()]))
	copy(subs, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, s := range subs {
		func(h EventHandler) {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("event handler panic", "type", event.Type(), "panic", r, "stack", string(debug.Stack()))
				}
			}()
			h(event)
		}(s.handler)
	}
}
