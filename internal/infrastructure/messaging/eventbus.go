// Package messaging implements the in-memory event bus carrying the
// engine's domain events (enrollments, attendance marks, evaluations) to
// in-process subscribers.
package messaging

import (
	"errors"
	"sync"
	"time"

	"github.com/hadir-app/hadir/internal/domain/shared"
	"github.com/hadir-app/hadir/pkg/logger"
)

// ErrBusClosed is returned for operations on a closed bus.
var ErrBusClosed = errors.New("event bus is closed")

// Bus is an in-memory implementation of shared.EventBus. In synchronous
// mode (the default) handlers run inline on the publisher's goroutine, which
// keeps event ordering identical to mutation ordering. Async mode hands
// handlers to a bounded worker pool.
type Bus struct {
	mu          sync.RWMutex
	handlers    map[shared.EventType][]shared.EventHandler
	allHandlers []shared.EventHandler
	async       bool
	workers     chan struct{}
	log         *logger.Logger
	closed      bool
	closeCh     chan struct{}
	wg          sync.WaitGroup
}

var _ shared.EventBus = (*Bus)(nil)

// Config controls bus behaviour.
type Config struct {
	// Async moves handler execution off the publisher's goroutine.
	Async bool

	// Workers bounds concurrent handlers in async mode.
	Workers int

	Logger *logger.Logger
}

// DefaultConfig returns a synchronous bus configuration.
func DefaultConfig() Config {
	return Config{Workers: 4}
}

// New creates a bus.
func New(cfg Config) *Bus {
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	return &Bus{
		handlers: make(map[shared.EventType][]shared.EventHandler),
		async:    cfg.Async,
		workers:  make(chan struct{}, cfg.Workers),
		log:      cfg.Logger.With(logger.Component("eventbus")),
		closeCh:  make(chan struct{}),
	}
}

// Subscribe registers a handler for one event type.
func (b *Bus) Subscribe(eventType shared.EventType, handler shared.EventHandler) error {
	if handler == nil {
		return errors.New("handler cannot be nil")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrBusClosed
	}
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	return nil
}

// SubscribeAll registers a handler for every event type.
func (b *Bus) SubscribeAll(handler shared.EventHandler) error {
	if handler == nil {
		return errors.New("handler cannot be nil")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrBusClosed
	}
	b.allHandlers = append(b.allHandlers, handler)
	return nil
}

// Publish delivers an event to every subscribed handler. Handler errors are
// logged, never propagated: a broken subscriber must not fail the mutation
// that already committed.
func (b *Bus) Publish(event shared.Event) error {
	if event == nil {
		return errors.New("event cannot be nil")
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrBusClosed
	}
	handlers := make([]shared.EventHandler, 0, len(b.handlers[event.EventType()])+len(b.allHandlers))
	handlers = append(handlers, b.handlers[event.EventType()]...)
	handlers = append(handlers, b.allHandlers...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		if b.async {
			b.dispatch(event, handler)
			continue
		}
		if err := handler(event); err != nil {
			b.log.Error("event handler failed",
				logger.String("event_type", string(event.EventType())),
				logger.Err(err),
			)
		}
	}
	return nil
}

func (b *Bus) dispatch(event shared.Event, handler shared.EventHandler) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		select {
		case b.workers <- struct{}{}:
			defer func() { <-b.workers }()
		case <-b.closeCh:
			return
		}

		start := time.Now()
		if err := handler(event); err != nil {
			b.log.Error("event handler failed",
				logger.String("event_type", string(event.EventType())),
				logger.Latency(time.Since(start)),
				logger.Err(err),
			)
		}
	}()
}

// Close stops accepting events and waits for in-flight handlers.
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	close(b.closeCh)
	b.mu.Unlock()

	b.wg.Wait()
	return nil
}
