package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cropwatch/internal/external"
	"cropwatch/internal/types"
)

func gatewayClient() *external.Client {
	return external.NewClient(&http.Client{}, "gateway",
		external.RetryPolicy{MaxRetries: 0, MinWait: time.Millisecond, MaxWait: time.Millisecond},
		"", external.WithSleepFunc(func(time.Duration) {}))
}

func TestWebhookScheduler_Schedule(t *testing.T) {
	var got types.ScheduledNotification
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/notifications", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	s := NewWebhookScheduler(gatewayClient(), srv.URL)
	n := types.ScheduledNotification{
		ID:           "task:rice-d001-planting",
		Kind:         types.NotificationTask,
		EntityID:     "rice-d001-planting",
		ScheduledFor: time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC),
		Title:        "Rice (Palay): Transplant seedlings",
	}

	require.NoError(t, s.Schedule(context.Background(), n))
	assert.Equal(t, n.ID, got.ID)
	assert.Equal(t, n.Kind, got.Kind)
}

func TestWebhookScheduler_CancelTolerates404(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	s := NewWebhookScheduler(gatewayClient(), srv.URL)
	assert.NoError(t, s.Cancel(context.Background(), "task:rice-d001-planting"))
	assert.NoError(t, s.CancelAll(context.Background()))
}

func TestWebhookScheduler_GatewayErrorIsAppError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	s := NewWebhookScheduler(gatewayClient(), srv.URL)
	err := s.Schedule(context.Background(), types.ScheduledNotification{ID: "x"})
	require.Error(t, err)

	var appErr *types.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, types.ErrCodeUpstreamScheduler, appErr.Code)
}
