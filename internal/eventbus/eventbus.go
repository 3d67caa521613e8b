package eventbus

import (
	"fmt"
	"reflect"
	"runtime/debug"
	"sync"

	"github.com/rs/zerolog"

	"pagestrip/internal/domain"
)

// Re-export domain types for convenience
type Event = domain.Event
type EventType = domain.EventType

// DefaultCapacity is the per-type subscriber cap of a bus that was never configured
const DefaultCapacity = 1

// Handler receives published events. A returned error is reported as a HandlerFault.
type Handler interface {
	Handle(Event) error
}

type handlerFunc struct {
	fn func(Event) error
}

func (h *handlerFunc) Handle(e Event) error { return h.fn(e) }

// HandlerFunc wraps fn in a Handler. Every call returns a distinct handler, so keep
// the returned value to unsubscribe it or to register it again idempotently.
func HandlerFunc(fn func(Event) error) Handler {
	return &handlerFunc{fn: fn}
}

// ListenerFunc wraps a handler that cannot fail
func ListenerFunc(fn func(Event)) Handler {
	return &handlerFunc{fn: func(e Event) error {
		fn(e)
		return nil
	}}
}

// EventBus is the interface for the bounded event bus
type EventBus interface {
	ConfigureCapacity(n int) error
	Subscribe(eventType EventType, handler Handler) error
	Unsubscribe(eventType EventType, handler Handler)
	UnsubscribeAll(eventType EventType)
	Clear()
	Publish(event Event)
	Count(eventType EventType) int
	Capacity() (int, bool)
}

// Option configures a Bus
type Option func(*Bus)

// WithLogger sets the diagnostic logger
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Bus) {
		b.logger = logger
	}
}

// WithFaultHook registers a callback for handler faults, in addition to logging
func WithFaultHook(hook func(HandlerFault)) Option {
	return func(b *Bus) {
		b.onFault = hook
	}
}

// Bus is a synchronous publish/subscribe registry with a per-type subscriber cap.
// Handlers run on the publishing goroutine, outside the registry lock, so a handler
// may publish or subscribe again; such nested calls complete before the outer
// publish moves on to its next handler.
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
	capacity *int // nil until configured
	owner    interface{}
	logger   zerolog.Logger
	onFault  func(HandlerFault)
}

var _ EventBus = (*Bus)(nil)

// New creates a bus. owner becomes the Target of events published without one.
func New(owner interface{}, opts ...Option) *Bus {
	b := &Bus{
		handlers: make(map[EventType][]Handler),
		owner:    owner,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ConfigureCapacity sets the subscriber cap for every event type. Only the first
// call with a positive value takes effect; anything else is logged and rejected.
func (b *Bus) ConfigureCapacity(n int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.capacity != nil {
		configurationRejected.Inc()
		b.logger.Warn().Int("requested", n).Int("capacity", *b.capacity).Msg("Capacity already configured")
		return fmt.Errorf("%w: capacity already set to %d", ErrConfigurationRejected, *b.capacity)
	}
	if n <= 0 {
		configurationRejected.Inc()
		b.logger.Warn().Int("requested", n).Msg("Capacity must be a positive integer")
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrConfigurationRejected, n)
	}

	capacity := n
	b.capacity = &capacity
	return nil
}

// Capacity returns the active cap and whether it was configured explicitly
func (b *Bus) Capacity() (int, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.limit(), b.capacity != nil
}

func (b *Bus) limit() int {
	if b.capacity == nil {
		return DefaultCapacity
	}
	return *b.capacity
}

// Subscribe registers handler under eventType. Registering an equal handler twice
// is a no-op. A type at capacity refuses the handler with ErrCapacityExceeded.
func (b *Bus) Subscribe(eventType EventType, handler Handler) error {
	if handler == nil {
		return fmt.Errorf("subscribe %s: nil handler", eventType)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.handlers[eventType]
	for _, h := range handlers {
		if sameHandler(h, handler) {
			return nil
		}
	}

	if len(handlers) >= b.limit() {
		subscriptionsRefused.WithLabelValues(string(eventType)).Inc()
		b.logger.Error().
			Str("event_type", string(eventType)).
			Int("capacity", b.limit()).
			Msg("Subscriber capacity exceeded, handler not added")
		return fmt.Errorf("%w: %s already has %d handlers", ErrCapacityExceeded, eventType, len(handlers))
	}

	b.handlers[eventType] = append(handlers, handler)
	return nil
}

// On is an alias of Subscribe
func (b *Bus) On(eventType EventType, handler Handler) error {
	return b.Subscribe(eventType, handler)
}

// Unsubscribe removes the first handler equal to handler
func (b *Bus) Unsubscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.handlers[eventType]
	for i, h := range handlers {
		if sameHandler(h, handler) {
			// Copy into a fresh slice so snapshots taken by Publish stay intact
			remaining := make([]Handler, 0, len(handlers)-1)
			remaining = append(remaining, handlers[:i]...)
			remaining = append(remaining, handlers[i+1:]...)
			if len(remaining) == 0 {
				delete(b.handlers, eventType)
			} else {
				b.handlers[eventType] = remaining
			}
			return
		}
	}
}

// UnsubscribeAll removes every handler registered under eventType
func (b *Bus) UnsubscribeAll(eventType EventType) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.handlers, eventType)
}

// Clear removes all handlers of all types
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = make(map[EventType][]Handler)
}

// Count returns the number of handlers registered under eventType
func (b *Bus) Count(eventType EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

// Publish invokes every handler of event.Type in registration order. A failing
// handler is reported and does not stop the remaining ones.
func (b *Bus) Publish(event Event) {
	if event.Target == nil {
		event.Target = b.owner
	}

	// Copy the handlers so none of them runs under the lock
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type]))
	copy(handlers, b.handlers[event.Type])
	b.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	eventsPublished.WithLabelValues(string(event.Type)).Inc()
	b.logger.Debug().
		Str("event_type", string(event.Type)).
		Int("value", event.Value).
		Int("previous", event.Previous).
		Int("handlers", len(handlers)).
		Msg("Publishing event")

	for _, h := range handlers {
		b.invoke(h, event)
	}
}

// Fire is an alias of Publish
func (b *Bus) Fire(event Event) {
	b.Publish(event)
}

func (b *Bus) invoke(h Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			b.fault(HandlerFault{
				Type:  event.Type,
				Err:   fmt.Errorf("handler panic: %v", r),
				Panic: r,
				Stack: debug.Stack(),
			})
		}
	}()

	if err := h.Handle(event); err != nil {
		b.fault(HandlerFault{Type: event.Type, Err: err})
	}
}

func (b *Bus) fault(f HandlerFault) {
	handlerFaults.WithLabelValues(string(f.Type)).Inc()

	entry := b.logger.Error().Str("event_type", string(f.Type)).Err(f.Err)
	if f.Panic != nil {
		entry = entry.Bytes("stack", f.Stack)
	}
	entry.Msg("Event handler failed")

	if b.onFault != nil {
		b.onFault(f)
	}
}

// sameHandler compares handlers with ==, treating values that cannot be compared
// (func-backed struct values, for instance) as distinct.
func sameHandler(a, b Handler) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if !va.Comparable() || !vb.Comparable() {
		return false
	}
	return a == b
}
