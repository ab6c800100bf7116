package eventbus

import (
	"testing"
	"time"
)

func TestBusPublishSubscribe(t *testing.T) {
	bus := New[string]()
	ch := bus.Subscribe()
	bus.Publish("hello")
	select {
	case got := <-ch:
		if got != "hello" {
			t.Fatalf("unexpected event %q", got)
		}
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestBusNonBlockingPublish(t *testing.T) {
	bus := New[int]()
	ch := bus.SubscribeBuffered(1)
	bus.Publish(1)
	// The buffer is full; this publish must not block.
	done := make(chan struct{})
	go func() {
		bus.Publish(2)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
	if got := <-ch; got != 1 {
		t.Fatalf("expected first event, got %d", got)
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := New[int]()
	ch := bus.Subscribe()
	bus.Unsubscribe(ch)
	if _, ok := <-ch; ok {
		t.Fatal("channel should be closed after unsubscribe")
	}
	bus.Publish(1)
}

func TestBusClose(t *testing.T) {
	bus := New[int]()
	ch := bus.Subscribe()
	bus.Close()
	if _, ok := <-ch; ok {
		t.Fatal("channel should be closed")
	}
	// Publishing and closing again must be safe.
	bus.Publish(1)
	bus.Close()
	if _, ok := <-bus.Subscribe(); ok {
		t.Fatal("subscribing after close returns a closed channel")
	}
}
