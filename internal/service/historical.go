package service

import (
	"log/slog"

	"github.com/efreitasn/bonddesk/internal/pubsub"
)

// Recorder is the durable layer a historical data service writes
// through. Implementations live outside the core (see the persist
// package).
type Recorder[V any] interface {
	Record(key string, v V) error
}

// RecorderFunc adapts a plain function to the Recorder interface.
type RecorderFunc[V any] func(key string, v V) error

// Record calls the function.
func (f RecorderFunc[V]) Record(key string, v V) error {
	return f(key, v)
}

// HistoricalDataService processes and persists entities to a durable
// store. Keyed on a caller-chosen persist key. The durable write is
// best-effort: a recorder failure is logged, not propagated, and does
// not stop the in-memory store or the listener fan-out.
type HistoricalDataService[V any] struct {
	*pubsub.Service[string, V]
	recorder Recorder[V]
	logger   *slog.Logger
}

// NewHistoricalDataService creates a historical data service. keyOf
// derives the persist key used by OnMessage; recorder may be nil, in
// which case only the in-memory store is written.
func NewHistoricalDataService[V any](name string, keyOf func(V) string, notFound error, recorder Recorder[V], logger *slog.Logger) *HistoricalDataService[V] {
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoricalDataService[V]{
		Service:  pubsub.NewService(name, keyOf, notFound, logger),
		recorder: recorder,
		logger:   logger,
	}
}

// PersistData stores the value under the persist key, writes it through
// the recorder, and fans out an add notification.
func (s *HistoricalDataService[V]) PersistData(persistKey string, v V) {
	s.Persist(persistKey, v)

	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(persistKey, v); err != nil {
		s.logger.Error("historical record failed",
			slog.String("service", s.Name()),
			slog.String("persist_key", persistKey),
			slog.String("error", err.Error()),
		)
	}
}

// OnMessage persists an externally-sourced value under its derived key.
func (s *HistoricalDataService[V]) OnMessage(v V) {
	s.PersistData(s.KeyOf(v), v)
}
