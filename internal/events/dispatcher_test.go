package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcher_DeliversToSubscribers(t *testing.T) {
	t.Parallel()

	dispatcher := NewInMemoryDispatcher()

	var got []string
	dispatcher.Subscribe(EventMarksUpdated, func(_ context.Context, event Event) error {
		got = append(got, event.ID)
		return nil
	})
	dispatcher.Subscribe(EventMarksUpdated, func(_ context.Context, event Event) error {
		got = append(got, event.ID)
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{ID: "e1", Type: EventMarksUpdated})
	if err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("deliveries: got %d want 2", len(got))
	}
}

func TestDispatcher_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	t.Parallel()

	dispatcher := NewInMemoryDispatcher()

	delivered := false
	dispatcher.Subscribe(EventSessionRevoked, func(context.Context, Event) error {
		return errors.New("subscriber failed")
	})
	dispatcher.Subscribe(EventSessionRevoked, func(context.Context, Event) error {
		delivered = true
		return nil
	})

	if err := dispatcher.Publish(context.Background(), Event{Type: EventSessionRevoked}); err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if !delivered {
		t.Fatalf("second subscriber must still receive the event")
	}
}

func TestDispatcher_IgnoresUnsubscribedTypes(t *testing.T) {
	t.Parallel()

	dispatcher := NewInMemoryDispatcher()

	called := false
	dispatcher.Subscribe(EventStudentRegistered, func(context.Context, Event) error {
		called = true
		return nil
	})

	if err := dispatcher.Publish(context.Background(), Event{Type: EventStudentLoggedIn}); err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if called {
		t.Fatalf("handler for another event type must not fire")
	}
}
