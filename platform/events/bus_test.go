package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cev_portal_backend/platform/logger"
)

type testEvent struct {
	BaseEvent
	name string
}

func (e testEvent) EventName() string { return e.name }

func TestPublishDispatchesToSubscribers(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	var wg sync.WaitGroup
	wg.Add(2)
	var mu sync.Mutex
	received := 0

	handler := HandlerFunc(func(_ context.Context, _ Event) error {
		mu.Lock()
		received++
		mu.Unlock()
		wg.Done()
		return nil
	})

	bus.Subscribe("thing.happened", handler)
	bus.Subscribe("thing.happened", handler)
	bus.Subscribe("other.happened", HandlerFunc(func(_ context.Context, _ Event) error {
		t.Error("handler for unrelated event must not fire")
		return nil
	}))

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "thing.happened"})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for handlers")
	}

	mu.Lock()
	defer mu.Unlock()
	if received != 2 {
		t.Fatalf("received = %d, want 2", received)
	}
}

func TestPublishSyncReturnsFirstError(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	errFirst := errors.New("first")
	ran := 0
	bus.Subscribe("thing.happened", HandlerFunc(func(_ context.Context, _ Event) error {
		ran++
		return errFirst
	}))
	bus.Subscribe("thing.happened", HandlerFunc(func(_ context.Context, _ Event) error {
		ran++
		return errors.New("second")
	}))

	err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "thing.happened"})
	if !errors.Is(err, errFirst) {
		t.Fatalf("PublishSync() error = %v, want %v", err, errFirst)
	}
	if ran != 2 {
		t.Fatalf("handlers run = %d, want 2 (later handlers still execute)", ran)
	}
}

func TestPublishSurvivesHandlerPanic(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	done := make(chan struct{})
	bus.Subscribe("thing.happened", HandlerFunc(func(_ context.Context, _ Event) error {
		defer close(done)
		panic("boom")
	}))

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "thing.happened"})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for panicking handler")
	}
}

func TestPublishWithNoSubscribersIsNoop(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))
	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "nobody.cares"})
	if err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "nobody.cares"}); err != nil {
		t.Fatalf("PublishSync() error = %v", err)
	}
}
