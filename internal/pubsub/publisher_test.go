package pubsub

import "testing"

func TestPublisher_PanickingListenerIsIsolated(t *testing.T) {
	p := NewPublisher[entity]("test", nil)
	var after int

	p.Add(ListenerFuncs[entity]{OnAdd: func(entity) { panic("boom") }})
	p.Add(ListenerFuncs[entity]{OnAdd: func(entity) { after++ }})

	p.NotifyAdd(entity{ID: "a"})

	if after != 1 {
		t.Fatalf("listener after the panicking one should still run, got %d invocations", after)
	}
}

func TestPublisher_NotifyRemove_Delivered(t *testing.T) {
	p := NewPublisher[entity]("test", nil)
	l := &recordingListener{}
	p.Add(l)

	p.NotifyRemove(entity{ID: "a"})

	if len(l.removes) != 1 {
		t.Fatalf("expected one remove notification, got %d", len(l.removes))
	}
}

func TestPublisher_Listeners_Empty(t *testing.T) {
	p := NewPublisher[entity]("test", nil)

	if got := p.Listeners(); len(got) != 0 {
		t.Fatalf("expected no listeners, got %d", len(got))
	}
	// Notify with no listeners must not panic.
	p.NotifyAdd(entity{ID: "a"})
}
