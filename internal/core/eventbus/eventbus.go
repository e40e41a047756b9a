// Package eventbus is a bounded, typed publish/subscribe bus.
//
// Every subscription owns a queue of the bus capacity and a goroutine that
// calls its handler, so a subscriber sees events in publish order and a slow
// subscriber only delays publishers once its own queue is full.
package eventbus

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// DefaultCapacity is the per-subscriber queue length used when none is configured.
const DefaultCapacity = 100

var ErrClosed = errors.New("eventbus: closed")

// Bus delivers events of type E to matching subscribers.
type Bus[E any] struct {
	mu       sync.RWMutex
	capacity int
	subs     map[*Subscription[E]]struct{}
	closed   bool
}

func New[E any](capacity int) *Bus[E] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Bus[E]{
		capacity: capacity,
		subs:     make(map[*Subscription[E]]struct{}),
	}
}

// Subscription is a live registration. Cancel stops future deliveries; a
// handler call already running is allowed to finish.
type Subscription[E any] struct {
	bus     *Bus[E]
	match   func(E) bool
	handler func(context.Context, E)
	queue   chan E
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	once    sync.Once
}

// SubscribeFunc registers handler for every event accepted by match. A nil
// match accepts everything.
func (b *Bus[E]) SubscribeFunc(match func(E) bool, handler func(context.Context, E)) (*Subscription[E], error) {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Subscription[E]{
		bus:     b,
		match:   match,
		handler: handler,
		queue:   make(chan E, b.capacity),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		cancel()
		return nil, ErrClosed
	}
	b.subs[s] = struct{}{}
	b.mu.Unlock()

	go s.run()
	return s, nil
}

// Subscribe registers handler for events of the concrete type T.
func Subscribe[T any, E any](b *Bus[E], handler func(context.Context, T)) (*Subscription[E], error) {
	return b.SubscribeFunc(
		func(ev E) bool {
			_, ok := any(ev).(T)
			return ok
		},
		func(ctx context.Context, ev E) {
			handler(ctx, any(ev).(T))
		},
	)
}

// Publish enqueues ev for every matching subscriber. It blocks while a
// matching subscriber's queue is full, until that subscriber drains or is
// cancelled, or ctx is done.
func (b *Bus[E]) Publish(ctx context.Context, ev E) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrClosed
	}
	targets := make([]*Subscription[E], 0, len(b.subs))
	for s := range b.subs {
		if s.match == nil || s.match(ev) {
			targets = append(targets, s)
		}
	}
	b.mu.RUnlock()

	for _, s := range targets {
		select {
		case s.queue <- ev:
		case <-s.ctx.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Send publishes ev without a deadline.
func (b *Bus[E]) Send(ev E) error {
	return b.Publish(context.Background(), ev)
}

// Close cancels every subscription and rejects further publishing.
func (b *Bus[E]) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	subs := make([]*Subscription[E], 0, len(b.subs))
	for s := range b.subs {
		subs = append(subs, s)
	}
	b.mu.Unlock()

	for _, s := range subs {
		s.Cancel()
	}
}

// Subscribers reports the number of live subscriptions.
func (b *Bus[E]) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Cancel stops delivery. Safe to call more than once and from inside the handler.
func (s *Subscription[E]) Cancel() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		delete(s.bus.subs, s)
		s.bus.mu.Unlock()
		s.cancel()
	})
}

// Done is closed once the delivery goroutine has exited.
func (s *Subscription[E]) Done() <-chan struct{} {
	return s.done
}

func (s *Subscription[E]) run() {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			return
		case ev := <-s.queue:
			// Cancellation wins over anything still queued.
			if s.ctx.Err() != nil {
				return
			}
			s.deliver(ev)
		}
	}
}

func (s *Subscription[E]) deliver(ev E) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Event handler panicked", "panic", r)
		}
	}()
	s.handler(context.WithoutCancel(s.ctx), ev)
}
