package domain

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrUnknownEvent = errors.New("unknown event name")

// Envelope wraps every payload dispatched through the registry. Listeners
// receive the envelope as their single argument.
type Envelope struct {
	ID      uuid.UUID       `json:"id"`
	Name    string          `json:"name"`
	Source  string          `json:"source"`
	Payload json.RawMessage `json:"payload,omitempty"`
	At      time.Time       `json:"at"`
}

// EventRecord is a persisted row of the audit trail.
type EventRecord struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Source    string          `json:"source"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	At        time.Time       `json:"at"`
	CreatedAt time.Time       `json:"created_at"`
}

type PublishRequest struct {
	Name    string          `json:"name" validate:"required,min=1,max=128"`
	Source  string          `json:"source" validate:"max=128"`
	Payload json.RawMessage `json:"payload"`
}

type EventListOptions struct {
	Page  int
	Limit int
	Names []string
	Since *time.Time
}

type ListenerInfo struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type EventService interface {
	Publish(ctx context.Context, req PublishRequest) (*Envelope, error)
	List(ctx context.Context, opts EventListOptions) ([]*EventRecord, int64, error)
	Listeners() []ListenerInfo
}

type EventRepository interface {
	Insert(ctx context.Context, rec *EventRecord) error
	List(ctx context.Context, opts EventListOptions) ([]*EventRecord, int64, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
