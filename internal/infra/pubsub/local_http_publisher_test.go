package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"courtside/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLocalHTTPPublisher_PublishAuthEvent(t *testing.T) {
	var received PubSubPushMessage
	var requestID string

	consumer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer consumer.Close()

	publisher := NewLocalHTTPPublisher(consumer.URL, discardLogger())
	defer publisher.Close()

	event := &service.AuthEvent{
		RequestID:  "req-123",
		ActorID:    "actor-1",
		ActorKind:  "player",
		Event:      service.EventLogin,
		OccurredAt: time.Now().UTC(),
	}
	require.NoError(t, publisher.PublishAuthEvent(context.Background(), event))

	assert.Equal(t, "req-123", requestID)
	assert.Equal(t, "projects/local/subscriptions/auth-events-sub", received.Subscription)
	assert.NotEmpty(t, received.Message.MessageID)
	assert.Equal(t, service.EventLogin, received.Message.Attributes["event"])
	assert.Equal(t, "actor-1", received.Message.Attributes["actor_id"])
	assert.Equal(t, "player", received.Message.Attributes["actor_kind"])
	assert.Equal(t, "req-123", received.Message.Attributes["request_id"])

	data, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)

	var decoded service.AuthEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, event.ActorID, decoded.ActorID)
	assert.Equal(t, event.Event, decoded.Event)
}

func TestLocalHTTPPublisher_OmitsRequestIDWhenAbsent(t *testing.T) {
	var received PubSubPushMessage

	consumer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("X-Request-Id"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer consumer.Close()

	publisher := NewLocalHTTPPublisher(consumer.URL, discardLogger())
	defer publisher.Close()

	event := &service.AuthEvent{
		ActorID:    "actor-2",
		ActorKind:  "admin",
		Event:      service.EventLogout,
		OccurredAt: time.Now().UTC(),
	}
	require.NoError(t, publisher.PublishAuthEvent(context.Background(), event))

	_, hasRequestID := received.Message.Attributes["request_id"]
	assert.False(t, hasRequestID)
}

func TestLocalHTTPPublisher_ConsumerFailure(t *testing.T) {
	consumer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer consumer.Close()

	publisher := NewLocalHTTPPublisher(consumer.URL, discardLogger())
	defer publisher.Close()

	err := publisher.PublishAuthEvent(context.Background(), &service.AuthEvent{
		ActorID:   "actor-3",
		ActorKind: "player",
		Event:     service.EventSignup,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-success status")
}
