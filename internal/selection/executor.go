package selection

import (
	"errors"
	"fmt"
	"log"

	"omnisearch/internal/domain"
	"omnisearch/internal/eventbus"
)

// NavigateFunc is called with an item's route
type NavigateFunc func(path string)

// ErrNoNavigator is reported when a route item runs without a NavigateFunc
var ErrNoNavigator = errors.New("no navigator configured")

// Executor runs item actions and routes. Failures are published as
// ActionFailedEvent and never propagate to the caller.
type Executor struct {
	navigate NavigateFunc
	bus      eventbus.EventBus
}

// NewExecutor creates a new executor. bus may be nil.
func NewExecutor(navigate NavigateFunc, bus eventbus.EventBus) *Executor {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	return &Executor{navigate: navigate, bus: bus}
}

// Invoke runs item's action, or navigates to its route when it has none
func (e *Executor) Invoke(item domain.Item, args string) Outcome {
	switch {
	case item.Action != nil:
		if err := safely(func() error { return item.Action(args) }); err != nil {
			e.fail(item, err)
			return OutcomeFailed
		}
		e.bus.Publish(eventbus.ItemExecutedEvent{ItemID: item.ID, Label: item.Label, Args: args})
		return OutcomeExecuted

	case item.Route != "":
		if e.navigate == nil {
			e.fail(item, ErrNoNavigator)
			return OutcomeFailed
		}
		err := safely(func() error {
			e.navigate(item.Route)
			return nil
		})
		if err != nil {
			e.fail(item, err)
			return OutcomeFailed
		}
		e.bus.Publish(eventbus.ItemExecutedEvent{ItemID: item.ID, Label: item.Label, Route: item.Route})
		return OutcomeNavigated

	default:
		return OutcomeNoop
	}
}

func (e *Executor) fail(item domain.Item, err error) {
	log.Printf("Action %s failed: %v", item.ID, err)
	e.bus.Publish(eventbus.ActionFailedEvent{ItemID: item.ID, Label: item.Label, Err: err})
}

// safely calls fn and converts a panic into an error
func safely(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
