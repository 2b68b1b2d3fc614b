package selection

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omnisearch/internal/domain"
	"omnisearch/internal/eventbus"
)

func TestInvokeAction(t *testing.T) {
	var got string
	item := domain.Item{ID: "greet", Action: func(args string) error {
		got = args
		return nil
	}}

	assert.Equal(t, OutcomeExecuted, NewExecutor(nil, nil).Invoke(item, "world"))
	assert.Equal(t, "world", got)
}

func TestInvokeActionPrecedesRoute(t *testing.T) {
	navigated := false
	ran := false
	item := domain.Item{
		ID:     "both",
		Route:  "/home",
		Action: func(string) error { ran = true; return nil },
	}

	out := NewExecutor(func(string) { navigated = true }, nil).Invoke(item, "")
	assert.Equal(t, OutcomeExecuted, out)
	assert.True(t, ran)
	assert.False(t, navigated)
}

func TestInvokeRoute(t *testing.T) {
	var path string
	out := NewExecutor(func(p string) { path = p }, nil).Invoke(domain.Item{ID: "home", Route: "/home"}, "")

	assert.Equal(t, OutcomeNavigated, out)
	assert.Equal(t, "/home", path)
}

func TestInvokeInformational(t *testing.T) {
	assert.Equal(t, OutcomeNoop, NewExecutor(nil, nil).Invoke(domain.Item{ID: "info"}, ""))
}

func TestInvokeFailuresArePublished(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	failed := make(chan eventbus.ActionFailedEvent, 4)
	bus.Subscribe(eventbus.EventActionFailed, func(e eventbus.DomainEvent) {
		failed <- e.(eventbus.ActionFailedEvent)
	})

	boom := errors.New("boom")
	e := NewExecutor(nil, bus)

	assert.Equal(t, OutcomeFailed, e.Invoke(domain.Item{ID: "err", Action: func(string) error { return boom }}, ""))
	assert.Equal(t, OutcomeFailed, e.Invoke(domain.Item{ID: "panic", Action: func(string) error { panic("kaboom") }}, ""))
	assert.Equal(t, OutcomeFailed, e.Invoke(domain.Item{ID: "route", Route: "/x"}, ""))

	var events []eventbus.ActionFailedEvent
	for len(events) < 3 {
		select {
		case ev := <-failed:
			events = append(events, ev)
		case <-time.After(time.Second):
			t.Fatalf("expected 3 failure events, got %d", len(events))
		}
	}

	assert.Equal(t, "err", events[0].ItemID)
	assert.ErrorIs(t, events[0].Err, boom)
	assert.Equal(t, "panic", events[1].ItemID)
	assert.ErrorContains(t, events[1].Err, "kaboom")
	assert.ErrorIs(t, events[2].Err, ErrNoNavigator)
}

func TestInvokeNavigatorPanic(t *testing.T) {
	e := NewExecutor(func(string) { panic("router gone") }, nil)
	require.NotPanics(t, func() {
		assert.Equal(t, OutcomeFailed, e.Invoke(domain.Item{ID: "r", Route: "/x"}, ""))
	})
}
