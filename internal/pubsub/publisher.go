package pubsub

import (
	"log/slog"
	"sync"
)

// Publisher holds an ordered list of listeners and fans events out to
// them synchronously, in registration order. Registration is unbounded
// and does not deduplicate: registering the same listener twice yields
// two notifications per event.
type Publisher[V any] struct {
	mu        sync.RWMutex
	name      string
	logger    *slog.Logger
	listeners []Listener[V]
}

// NewPublisher creates an empty publisher. name labels log lines for
// recovered listener panics.
func NewPublisher[V any](name string, logger *slog.Logger) *Publisher[V] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher[V]{name: name, logger: logger}
}

// Add appends a listener to the fan-out sequence.
func (p *Publisher[V]) Add(l Listener[V]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, l)
}

// Listeners returns a copy of the listener sequence in registration
// order.
func (p *Publisher[V]) Listeners() []Listener[V] {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]Listener[V], len(p.listeners))
	copy(out, p.listeners)
	return out
}

// NotifyAdd delivers an add event to every listener in registration
// order.
func (p *Publisher[V]) NotifyAdd(v V) {
	p.notify(v, "add", Listener[V].ProcessAdd)
}

// NotifyUpdate delivers an update event to every listener in
// registration order.
func (p *Publisher[V]) NotifyUpdate(v V) {
	p.notify(v, "update", Listener[V].ProcessUpdate)
}

// NotifyRemove delivers a remove event to every listener in registration
// order. Reserved: no service in this pipeline currently issues it.
func (p *Publisher[V]) NotifyRemove(v V) {
	p.notify(v, "remove", Listener[V].ProcessRemove)
}

// notify snapshots the listener list and invokes deliver on each entry.
// A panicking listener is recovered and logged so the remaining
// listeners still receive the event.
func (p *Publisher[V]) notify(v V, event string, deliver func(Listener[V], V)) {
	for i, l := range p.Listeners() {
		p.deliverOne(l, v, event, i, deliver)
	}
}

func (p *Publisher[V]) deliverOne(l Listener[V], v V, event string, index int, deliver func(Listener[V], V)) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("listener panicked",
				slog.String("service", p.name),
				slog.String("event", event),
				slog.Int("listener", index),
				slog.Any("panic", r),
			)
		}
	}()
	deliver(l, v)
}
