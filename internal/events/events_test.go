package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/posthog/posthog-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))
	event, err := New(TransactionCreated, "user-1", map[string]string{"transactionID": "t1"}, now)
	require.NoError(t, err)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, TransactionCreated, event.Type)
	assert.Equal(t, "user-1", event.UserID)
	assert.Equal(t, time.UTC, event.OccurredAt.Location())
	assert.True(t, event.OccurredAt.Equal(now))

	var payload map[string]string
	require.NoError(t, json.Unmarshal(event.Payload, &payload))
	assert.Equal(t, "t1", payload["transactionID"])
}

func TestNewEventRejectsUnmarshalablePayload(t *testing.T) {
	_, err := New(AccountDeleted, "user-1", make(chan int), time.Now())
	assert.Error(t, err)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), Event{Type: AccountDeleted}))
	assert.NoError(t, p.Close())
}

type recordingClient struct {
	messages []posthog.Message
	closed   bool
	err      error
}

func (r *recordingClient) Enqueue(m posthog.Message) error {
	r.messages = append(r.messages, m)
	return r.err
}

func (r *recordingClient) Close() error {
	r.closed = true
	return nil
}

func TestPosthogPublisherCapturesPayload(t *testing.T) {
	client := &recordingClient{}
	p := &PosthogPublisher{client: client}

	event, err := New(TransactionCreated, "user-1", map[string]string{"transactionID": "t1", "type": "EXPENSE"}, time.Now())
	require.NoError(t, err)
	require.NoError(t, p.Publish(context.Background(), event))

	require.Len(t, client.messages, 1)
	capture, ok := client.messages[0].(posthog.Capture)
	require.True(t, ok)
	assert.Equal(t, "user-1", capture.DistinctId)
	assert.Equal(t, TransactionCreated, capture.Event)
	assert.Equal(t, "t1", capture.Properties["transactionID"])
	assert.Equal(t, "EXPENSE", capture.Properties["type"])
	assert.Equal(t, event.ID, capture.Properties["event_id"])

	require.NoError(t, p.Close())
	assert.True(t, client.closed)
}

func TestPosthogPublisherWrapsEnqueueError(t *testing.T) {
	p := &PosthogPublisher{client: &recordingClient{err: errors.New("queue full")}}
	err := p.Publish(context.Background(), Event{Type: AccountDeleted, UserID: "user-1"})
	assert.ErrorContains(t, err, "queue full")
}

type failingPublisher struct{ err error }

func (f failingPublisher) Publish(context.Context, Event) error { return f.err }
func (f failingPublisher) Close() error                         { return f.err }

func TestFanoutPublishesToAll(t *testing.T) {
	client := &recordingClient{}
	boom := errors.New("broker down")
	fanout := Fanout{failingPublisher{err: boom}, &PosthogPublisher{client: client}}

	err := fanout.Publish(context.Background(), Event{Type: AccountDeleted, UserID: "user-1"})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, client.messages, 1, "later publishers still receive the event")

	assert.ErrorIs(t, fanout.Close(), boom)
	assert.True(t, client.closed)
}

func TestEmptyFanout(t *testing.T) {
	assert.NoError(t, Fanout{}.Publish(context.Background(), Event{}))
	assert.NoError(t, Fanout{}.Close())
}
