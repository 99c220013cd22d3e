// Package pubsub implements the keyed publish/subscribe abstraction every
// domain service is built on: a thread-safe keyed store, an ordered
// listener fan-out, and the generic Service composing the two.
//
// Values handed to listeners and returned from queries are shared, not
// copied; callers must treat them as read-only.
package pubsub

// Listener receives synchronous notifications from a service.
//
// ProcessAdd fires once per ingestion (OnMessage / booking), ProcessUpdate
// once per mutating domain operation. ProcessRemove is part of the
// contract but no service in this pipeline currently issues it.
type Listener[V any] interface {
	ProcessAdd(v V)
	ProcessUpdate(v V)
	ProcessRemove(v V)
}

// ListenerFuncs adapts plain functions to the Listener interface. Nil
// fields are no-ops.
type ListenerFuncs[V any] struct {
	OnAdd    func(v V)
	OnUpdate func(v V)
	OnRemove func(v V)
}

func (l ListenerFuncs[V]) ProcessAdd(v V) {
	if l.OnAdd != nil {
		l.OnAdd(v)
	}
}

func (l ListenerFuncs[V]) ProcessUpdate(v V) {
	if l.OnUpdate != nil {
		l.OnUpdate(v)
	}
}

func (l ListenerFuncs[V]) ProcessRemove(v V) {
	if l.OnRemove != nil {
		l.OnRemove(v)
	}
}
