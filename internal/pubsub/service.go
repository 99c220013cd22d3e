package pubsub

import (
	"log/slog"
	"sync"
)

// Service composes a keyed store with a listener publisher and defines
// the uniform contract every domain service instantiates: GetData,
// OnMessage, AddListener, GetListeners.
//
// Mutations take the service mutex, so writes for all keys are
// serialized per service. Fan-out runs after the mutation completes and
// outside the mutex: listeners always observe the store fully updated,
// and a listener may call back into the notifying service (the inquiry
// auto-quote path relies on this).
type Service[K comparable, V any] struct {
	mu    sync.Mutex
	name  string
	keyOf func(V) K
	store *Store[K, V]
	pub   *Publisher[V]
}

// NewService creates a service. keyOf derives the store key from a
// value; notFound is the sentinel returned for absent keys.
func NewService[K comparable, V any](name string, keyOf func(V) K, notFound error, logger *slog.Logger) *Service[K, V] {
	return &Service[K, V]{
		name:  name,
		keyOf: keyOf,
		store: NewStore[K, V](notFound),
		pub:   NewPublisher[V](name, logger),
	}
}

// Name returns the service name used in logs.
func (s *Service[K, V]) Name() string {
	return s.name
}

// KeyOf derives the store key for a value.
func (s *Service[K, V]) KeyOf(v V) K {
	return s.keyOf(v)
}

// Len reports the number of stored entries.
func (s *Service[K, V]) Len() int {
	return s.store.Len()
}

// GetData returns the current value for a key, or the service's
// NotFound sentinel when the key is absent.
func (s *Service[K, V]) GetData(key K) (V, error) {
	return s.store.Get(key)
}

// OnMessage ingests an externally-sourced value: the key is derived
// from the value, the store entry is overwritten, and an add
// notification fans out to all listeners. Repeated identical messages
// simply overwrite.
func (s *Service[K, V]) OnMessage(v V) {
	s.mu.Lock()
	s.store.Put(s.keyOf(v), v)
	s.mu.Unlock()

	s.pub.NotifyAdd(v)
}

// Persist stores a value under an explicit key (rather than one derived
// from the value) and fans out an add notification.
func (s *Service[K, V]) Persist(key K, v V) {
	s.mu.Lock()
	s.store.Put(key, v)
	s.mu.Unlock()

	s.pub.NotifyAdd(v)
}

// Upsert applies a mutation to the current value for a key, creating it
// when absent, then fans out an update notification with the result.
// mutate receives the current value and whether the key existed.
func (s *Service[K, V]) Upsert(key K, mutate func(v V, exists bool) V) V {
	s.mu.Lock()
	cur, err := s.store.Get(key)
	next := mutate(cur, err == nil)
	s.store.Put(key, next)
	s.mu.Unlock()

	s.pub.NotifyUpdate(next)
	return next
}

// Amend applies a mutation to an existing value and fans out an update
// notification. It returns the service's NotFound sentinel when the key
// is absent, in which case nothing is notified.
func (s *Service[K, V]) Amend(key K, mutate func(v V) V) (V, error) {
	s.mu.Lock()
	cur, err := s.store.Get(key)
	if err != nil {
		s.mu.Unlock()
		var zero V
		return zero, err
	}
	next := mutate(cur)
	s.store.Put(key, next)
	s.mu.Unlock()

	s.pub.NotifyUpdate(next)
	return next, nil
}

// AddListener appends a listener to the fan-out sequence. There is no
// upper bound and no duplicate check.
func (s *Service[K, V]) AddListener(l Listener[V]) {
	s.pub.Add(l)
}

// GetListeners returns the listeners in registration order. The slice
// is a copy; mutating it does not affect the service.
func (s *Service[K, V]) GetListeners() []Listener[V] {
	return s.pub.Listeners()
}
