package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventCatalogBuilt EventType = "CatalogBuilt"
	EventAppLaunched  EventType = "AppLaunched"
	EventLaunchFailed EventType = "LaunchFailed"
	EventResultCopied EventType = "ResultCopied"
	EventError        EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// CatalogBuiltEvent is emitted once the startup scan has finished
type CatalogBuiltEvent struct {
	Stats ScanStats
}

func (e CatalogBuiltEvent) Type() EventType { return EventCatalogBuilt }

// AppLaunchedEvent is emitted when a launch spawn succeeded
type AppLaunchedEvent struct {
	Program string
	Args    []string
	PID     int
}

func (e AppLaunchedEvent) Type() EventType { return EventAppLaunched }

// LaunchFailedEvent is emitted when the spawn syscall failed
type LaunchFailedEvent struct {
	Program string
	Err     error
}

func (e LaunchFailedEvent) Type() EventType { return EventLaunchFailed }

// ResultCopiedEvent is emitted after an arithmetic result went to the clipboard
type ResultCopiedEvent struct {
	Value string
}

func (e ResultCopiedEvent) Type() EventType { return EventResultCopied }

// ErrorEvent is emitted when a non-fatal error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
