package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventIndexStarted     EventType = "IndexStarted"
	EventIndexCompleted   EventType = "IndexCompleted"
	EventIndexInvalidated EventType = "IndexInvalidated"
	EventSnapshotLoaded   EventType = "SnapshotLoaded"
	EventError            EventType = "Error"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
	EventTargetOpened     EventType = "TargetOpened"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// IndexStartedEvent is emitted when a walk over a set of roots begins
type IndexStartedEvent struct {
	Roots    []string
	Extended bool
}

func (e IndexStartedEvent) Type() EventType { return EventIndexStarted }

// IndexCompletedEvent is emitted when a walk finished and the snapshot was swapped
type IndexCompletedEvent struct {
	Extended bool
	Entries  int
	Took     time.Duration
}

func (e IndexCompletedEvent) Type() EventType { return EventIndexCompleted }

// IndexInvalidatedEvent is emitted by the watcher when a watched root changed
type IndexInvalidatedEvent struct {
	Path string
}

func (e IndexInvalidatedEvent) Type() EventType { return EventIndexInvalidated }

// SnapshotLoadedEvent is emitted after the persisted snapshot was imported
type SnapshotLoadedEvent struct {
	Entries int
}

func (e SnapshotLoadedEvent) Type() EventType { return EventSnapshotLoaded }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

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

// TargetOpenedEvent is emitted after a path or URL was handed to the OS
type TargetOpenedEvent struct {
	Target string
	IsURL  bool
}

func (e TargetOpenedEvent) Type() EventType { return EventTargetOpened }
