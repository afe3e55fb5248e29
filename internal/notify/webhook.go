package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"cropwatch/internal/external"
	"cropwatch/internal/types"
)

// Compile-time assertion that WebhookScheduler implements Scheduler.
var _ Scheduler = (*WebhookScheduler)(nil)

// WebhookScheduler implements the scheduling capability by posting to a
// push-notification gateway, which owns the actual device delivery. The
// gateway contract is deliberately small:
//
//	POST   {base}/notifications       schedule (JSON body)
//	DELETE {base}/notifications/{id}  cancel one
//	DELETE {base}/notifications       cancel all
type WebhookScheduler struct {
	client  *external.Client
	baseURL string
}

// NewWebhookScheduler creates a scheduler posting to the given gateway base
// URL (no trailing slash).
func NewWebhookScheduler(client *external.Client, baseURL string) *WebhookScheduler {
	return &WebhookScheduler{client: client, baseURL: baseURL}
}

// Schedule posts the notification to the gateway.
func (s *WebhookScheduler) Schedule(ctx context.Context, n types.ScheduledNotification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encoding notification %s: %w", n.ID, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/notifications", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return s.do(req)
}

// Cancel revokes a scheduled notification at the gateway.
func (s *WebhookScheduler) Cancel(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.baseURL+"/notifications/"+id, nil)
	if err != nil {
		return err
	}
	return s.do(req)
}

// CancelAll revokes every scheduled notification at the gateway.
func (s *WebhookScheduler) CancelAll(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.baseURL+"/notifications", nil)
	if err != nil {
		return err
	}
	return s.do(req)
}

func (s *WebhookScheduler) do(req *http.Request) error {
	resp, err := s.client.Do(req)
	if err != nil {
		return types.NewAppError(types.ErrCodeUpstreamScheduler, "notification gateway unreachable", err)
	}
	defer resp.Body.Close()

	// 404 on cancel means the gateway never had the record; treat as done.
	if resp.StatusCode == http.StatusNotFound && req.Method == http.MethodDelete {
		return nil
	}
	if resp.StatusCode >= 400 {
		return types.NewAppError(types.ErrCodeUpstreamScheduler,
			fmt.Sprintf("notification gateway returned %d", resp.StatusCode), nil)
	}
	return nil
}
