package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/posthog/posthog-go"
)

const defaultPosthogEndpoint = "https://eu.i.posthog.com"

// posthogClient is the subset of posthog.Client the publisher needs.
type posthogClient interface {
	Enqueue(posthog.Message) error
	Close() error
}

// PosthogPublisher forwards domain events to PostHog as product analytics captures.
type PosthogPublisher struct {
	client posthogClient
}

// NewPosthogPublisher creates a PostHog client. An empty endpoint uses the EU cloud.
func NewPosthogPublisher(apiKey, endpoint string) (*PosthogPublisher, error) {
	if endpoint == "" {
		endpoint = defaultPosthogEndpoint
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		return nil, fmt.Errorf("create posthog client: %w", err)
	}
	return &PosthogPublisher{client: client}, nil
}

// Publish enqueues the event; the payload's top-level fields become capture properties.
func (p *PosthogPublisher) Publish(ctx context.Context, event Event) error {
	properties := posthog.NewProperties()
	if len(event.Payload) > 0 {
		var fields map[string]any
		if err := json.Unmarshal(event.Payload, &fields); err == nil {
			for k, v := range fields {
				properties.Set(k, v)
			}
		}
	}
	properties.Set("event_id", event.ID)

	err := p.client.Enqueue(posthog.Capture{
		DistinctId: event.UserID,
		Event:      event.Type,
		Timestamp:  event.OccurredAt,
		Properties: properties,
	})
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", event.Type, err)
	}
	slog.DebugContext(ctx, "Enqueued analytics event", slog.String("type", event.Type), slog.String("event_id", event.ID))
	return nil
}

func (p *PosthogPublisher) Close() error {
	return p.client.Close()
}
