package pubsub

import "sync"

// Store is a thread-safe keyed store mapping each key to exactly one
// current value. Put is last-write-wins; there is no versioning and no
// remove.
type Store[K comparable, V any] struct {
	mu       sync.RWMutex
	data     map[K]V
	notFound error
}

// NewStore creates an empty store. notFound is the sentinel error Get
// returns for absent keys.
func NewStore[K comparable, V any](notFound error) *Store[K, V] {
	return &Store[K, V]{
		data:     make(map[K]V),
		notFound: notFound,
	}
}

// Get retrieves the current value for a key. It returns the store's
// NotFound sentinel when the key is absent — never a zero value.
func (s *Store[K, V]) Get(key K) (V, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		var zero V
		return zero, s.notFound
	}
	return v, nil
}

// Put inserts or replaces the value for a key.
func (s *Store[K, V]) Put(key K, v V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = v
}

// Len returns the number of stored keys.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
