package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventPaletteOpened         EventType = "PaletteOpened"
	EventPaletteClosed         EventType = "PaletteClosed"
	EventItemExecuted          EventType = "ItemExecuted"
	EventActionFailed          EventType = "ActionFailed"
	EventConfirmationRequested EventType = "ConfirmationRequested"
	EventRemoteSearchFailed    EventType = "RemoteSearchFailed"
	EventConfigLoaded          EventType = "ConfigLoaded"
	EventConfigSaved           EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// PaletteOpenedEvent is emitted when the overlay opens
type PaletteOpenedEvent struct{}

func (e PaletteOpenedEvent) Type() EventType { return EventPaletteOpened }

// PaletteClosedEvent is emitted when the overlay closes
type PaletteClosedEvent struct {
	Query string // query at the time of closing
}

func (e PaletteClosedEvent) Type() EventType { return EventPaletteClosed }

// ItemExecutedEvent is emitted after an item's action or route ran
type ItemExecutedEvent struct {
	ItemID string
	Label  string
	Args   string
	Route  string // non-empty for navigation items
}

func (e ItemExecutedEvent) Type() EventType { return EventItemExecuted }

// ActionFailedEvent is emitted when a user-supplied action fails or panics.
// It is a non-fatal notification.
type ActionFailedEvent struct {
	ItemID string
	Label  string
	Err    error
}

func (e ActionFailedEvent) Type() EventType { return EventActionFailed }

// ConfirmationRequestedEvent is emitted when an item is waiting for confirmation
type ConfirmationRequestedEvent struct {
	ItemID  string
	Confirm ConfirmSpec
}

func (e ConfirmationRequestedEvent) Type() EventType { return EventConfirmationRequested }

// RemoteSearchFailedEvent is emitted when the remote search callback fails
type RemoteSearchFailedEvent struct {
	Query string
	Err   error
}

func (e RemoteSearchFailedEvent) Type() EventType { return EventRemoteSearchFailed }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
