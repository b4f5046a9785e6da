// Package events publishes domain events for downstream consumers such as notifiers.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Routing keys of the published events.
const (
	TransactionCreated = "transaction.created"
	TransactionDeleted = "transaction.deleted"
	AccountDeleted     = "account.deleted"
)

// Event is the envelope of every published message.
type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	UserID     string          `json:"userID"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

// New builds an event with a fresh ID, marshalling payload as JSON.
func New(eventType, userID string, payload any, now time.Time) (Event, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		UserID:     userID,
		OccurredAt: now.UTC(),
		Payload:    body,
	}, nil
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Nop discards every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }
