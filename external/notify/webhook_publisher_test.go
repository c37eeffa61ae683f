package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rizkyfalih/league-manager/internal/platform/resilience"
	"github.com/rizkyfalih/league-manager/internal/usecase"
)

func testEvent() usecase.StandingsUpdatedEvent {
	return usecase.StandingsUpdatedEvent{
		SeasonID: "vleague-2026",
		Date:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Entries: []usecase.StandingsUpdatedEntry{
			{TeamID: "team-a", Rank: 1, Points: 9},
			{TeamID: "team-b", Rank: 2, Points: 7},
		},
	}
}

func TestWebhookPublisher_PostsEventWithToken(t *testing.T) {
	t.Parallel()

	type received struct {
		token string
		body  []byte
	}
	got := make(chan received, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		got <- received{token: r.Header.Get("X-Webhook-Token"), body: body}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	publisher := NewWebhookPublisher(WebhookPublisherConfig{
		EndpointURL:    srv.URL,
		SigningToken:   "hook-secret",
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	}, nil)

	err := publisher.PublishStandingsUpdated(context.Background(), testEvent())
	require.NoError(t, err)

	r := <-got
	require.Equal(t, "hook-secret", r.token)

	var payload struct {
		Event    string `json:"event"`
		SeasonID string `json:"seasonId"`
		Date     string `json:"date"`
		Entries  []struct {
			TeamID string `json:"teamId"`
			Rank   int    `json:"rank"`
			Points int    `json:"points"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(r.body, &payload))
	require.Equal(t, "standings.updated", payload.Event)
	require.Equal(t, "vleague-2026", payload.SeasonID)
	require.Equal(t, "2026-03-01", payload.Date)
	require.Len(t, payload.Entries, 2)
	require.Equal(t, "team-a", payload.Entries[0].TeamID)
	require.Equal(t, 1, payload.Entries[0].Rank)
}

func TestWebhookPublisher_NonRetryableStatusDoesNotTripCircuit(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	publisher := NewWebhookPublisher(WebhookPublisherConfig{
		EndpointURL:    srv.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1},
	}, nil)

	err := publisher.PublishStandingsUpdated(context.Background(), testEvent())
	require.Error(t, err)
	require.Equal(t, resilience.CircuitStateClosed, publisher.breaker.State())
}

func TestWebhookPublisher_CircuitOpensOnServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	publisher := NewWebhookPublisher(WebhookPublisherConfig{
		EndpointURL:    srv.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 2},
	}, nil)

	for i := 0; i < 4; i++ {
		err := publisher.PublishStandingsUpdated(context.Background(), testEvent())
		require.Error(t, err)
	}

	require.Equal(t, int32(2), calls.Load())
}

func TestWebhookPublisher_MissingEndpoint(t *testing.T) {
	t.Parallel()

	publisher := NewWebhookPublisher(WebhookPublisherConfig{}, nil)

	err := publisher.PublishStandingsUpdated(context.Background(), testEvent())
	require.Error(t, err)
}
