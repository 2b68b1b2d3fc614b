package selection

import "omnisearch/internal/domain"

// Direction is a relative navigation command
type Direction int

const (
	Up Direction = iota
	Down
	PageUp
	PageDown
	Home
	End
	NextGroup
	PrevGroup
)

// Outcome describes what a Select or Confirm did
type Outcome int

const (
	// OutcomeNone means there was nothing to select
	OutcomeNone Outcome = iota
	OutcomeDisabled
	OutcomeConfirmationRequired
	// OutcomeIntercepted means a plugin handled the selection itself
	OutcomeIntercepted
	// OutcomeNoop means the item has neither an action nor a route
	OutcomeNoop
	OutcomeExecuted
	OutcomeNavigated
	// OutcomeFailed means the action returned an error or panicked
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeDisabled:
		return "disabled"
	case OutcomeConfirmationRequired:
		return "confirmation-required"
	case OutcomeIntercepted:
		return "intercepted"
	case OutcomeNoop:
		return "noop"
	case OutcomeExecuted:
		return "executed"
	case OutcomeNavigated:
		return "navigated"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Closes reports whether the overlay closes after this outcome
func (o Outcome) Closes() bool {
	return o == OutcomeExecuted || o == OutcomeNavigated || o == OutcomeFailed
}

// Pending is an item waiting for the user to confirm it
type Pending struct {
	Result domain.ScoredResult
	Args   string
}

// State is a snapshot of the controller
type State struct {
	ActiveIndex int
	Pending     *Pending
}

// RunFunc executes a selected result once every gate has passed
type RunFunc func(result domain.ScoredResult, args string) Outcome
