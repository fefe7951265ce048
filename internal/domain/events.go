package domain

import "github.com/google/uuid"

// Event names the host fires itself. External producers may publish any
// name; these constants exist so internal producers and subscribers agree
// on spelling.
const (
	// ErrorEvent follows the emitter convention for failure reporting:
	// firing it with zero listeners is treated as fatal by the publish
	// service, not by the registry.
	ErrorEvent = "error"

	UserRegisteredEvent = "user.registered"
	UserLoggedInEvent   = "user.logged_in"
)

// KnownEvents enumerates the built-in catalog. Fan-out adapters subscribe
// to these names at startup; additional names come from configuration.
func KnownEvents() []string {
	return []string{
		ErrorEvent,
		UserRegisteredEvent,
		UserLoggedInEvent,
	}
}

type EventUserRegistered struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

type EventUserLoggedIn struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}
