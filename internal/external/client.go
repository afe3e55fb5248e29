// Package external provides the resilient HTTP client used for all outbound
// calls: the weather provider and the push-notification gateway. Every call
// is routed through a circuit breaker and retried with jittered exponential
// backoff, so a flaky upstream degrades to "fewer advisories" instead of
// hammering the provider or crashing the host.
package external

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"cropwatch/internal/types"
)

// RetryPolicy configures retry behavior for outbound calls.
type RetryPolicy struct {
	MaxRetries int
	MinWait    time.Duration
	MaxWait    time.Duration
}

// DefaultRetryPolicy returns sensible defaults for external API calls.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 3,
		MinWait:    500 * time.Millisecond,
		MaxWait:    10 * time.Second,
	}
}

// Client wraps an *http.Client with a circuit breaker and retry loop.
type Client struct {
	client    *http.Client
	breaker   *gobreaker.CircuitBreaker[*http.Response]
	retry     RetryPolicy
	userAgent string
	sleepFn   func(time.Duration)
}

// Option is a functional option for configuring a Client.
type Option func(*Client)

// WithSleepFunc overrides the sleep function used between retries. Intended
// for tests, to avoid real delays.
func WithSleepFunc(fn func(time.Duration)) Option {
	return func(c *Client) {
		c.sleepFn = fn
	}
}

// NewClient creates a Client named after the upstream it guards. The breaker
// opens after five consecutive failures and probes again after 30 seconds.
func NewClient(httpClient *http.Client, name string, retry RetryPolicy, userAgent string, opts ...Option) *Client {
	cb := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})

	c := &Client{
		client:    httpClient,
		breaker:   cb,
		retry:     retry,
		userAgent: userAgent,
		sleepFn:   time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do executes the request through the breaker, retrying transient failures
// (network errors, 429, 5xx). The request must have GetBody set when it
// carries a body, so retries can replay it. On success the caller owns the
// response body.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	var lastErr error
	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := rewindBody(req); err != nil {
				return nil, err
			}
			c.sleepFn(c.backoff(attempt))
		}

		resp, err := c.breaker.Execute(func() (*http.Response, error) {
			resp, err := c.client.Do(req)
			if err != nil {
				return nil, err
			}
			if resp.StatusCode >= 500 {
				resp.Body.Close()
				return nil, fmt.Errorf("upstream returned %d", resp.StatusCode)
			}
			return resp, nil
		})
		if err == nil {
			if resp.StatusCode == http.StatusTooManyRequests {
				resp.Body.Close()
				lastErr = types.NewAppError(types.ErrCodeUpstreamRateLimit, "upstream rate limited", nil)
				continue
			}
			return resp, nil
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			// No point retrying while the breaker is open.
			return nil, types.NewAppError(types.ErrCodeUpstreamWeather, "circuit breaker open", err)
		}
		lastErr = err
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", c.retry.MaxRetries+1, lastErr)
}

// backoff returns the jittered exponential delay before the given attempt.
func (c *Client) backoff(attempt int) time.Duration {
	wait := float64(c.retry.MinWait) * math.Pow(2, float64(attempt-1))
	if wait > float64(c.retry.MaxWait) {
		wait = float64(c.retry.MaxWait)
	}
	// Full jitter keeps herds of retries from synchronizing.
	return time.Duration(rand.Float64() * wait)
}

// rewindBody resets the request body before a retry attempt.
func rewindBody(req *http.Request) error {
	if req.Body == nil || req.GetBody == nil {
		return nil
	}
	body, err := req.GetBody()
	if err != nil {
		return fmt.Errorf("rewinding request body for retry: %w", err)
	}
	req.Body = body
	return nil
}
