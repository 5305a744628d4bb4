package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesOnlyTargetUser(t *testing.T) {
	t.Parallel()

	hub := NewHub()

	chA, cleanupA := hub.Subscribe("user-a")
	defer cleanupA()
	chB, cleanupB := hub.Subscribe("user-b")
	defer cleanupB()

	hub.Publish("user-a", Event{UserID: "user-a", Event: "notification", Data: "hello"})

	select {
	case event := <-chA:
		assert.Equal(t, "notification", event.Event)
		assert.Equal(t, "hello", event.Data)
	default:
		t.Fatal("expected event for user-a")
	}

	select {
	case <-chB:
		t.Fatal("user-b should not receive user-a's event")
	default:
	}
}

func TestHub_MultipleSubscribersSameUser(t *testing.T) {
	t.Parallel()

	hub := NewHub()

	ch1, cleanup1 := hub.Subscribe("user-a")
	defer cleanup1()
	ch2, cleanup2 := hub.Subscribe("user-a")
	defer cleanup2()

	hub.Publish("user-a", Event{UserID: "user-a", Event: "notification"})

	require.Len(t, ch1, 1)
	require.Len(t, ch2, 1)
}

func TestHub_CleanupStopsDelivery(t *testing.T) {
	t.Parallel()

	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-a")
	cleanup()

	// A closed channel reads immediately with the zero value.
	_, open := <-ch
	assert.False(t, open)

	// Publishing after cleanup must not panic or deliver.
	hub.Publish("user-a", Event{UserID: "user-a", Event: "notification"})
}

func TestHub_PublishWithNoSubscribersIsNoop(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	hub.Publish("nobody", Event{UserID: "nobody", Event: "notification"})
}

func TestHub_FullChannelDoesNotBlock(t *testing.T) {
	t.Parallel()

	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-a")
	defer cleanup()

	for i := 0; i < 20; i++ {
		hub.Publish("user-a", Event{UserID: "user-a", Event: "notification"})
	}

	// Buffer holds 10; the rest were dropped rather than blocking the hub.
	assert.Len(t, ch, 10)
}
