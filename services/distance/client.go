package distance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"floormatch/models"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	// ErrRateLimited marks an HTTP 429 from the routing API. It is the only retried failure.
	ErrRateLimited = errors.New("routing api rate limited")
	// ErrEmptyResponse marks a 2xx response with no usable body.
	ErrEmptyResponse = errors.New("routing api returned an empty response")
)

// DefaultBackoff is the wait before each retry of a rate-limited call.
var DefaultBackoff = []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second}

const (
	defaultAttemptTimeout = 10 * time.Second
	maxResponseBytes      = 1 << 20
)

// StatusError is a non-2xx, non-429 response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("routing api returned status %d: %s", e.StatusCode, e.Body)
}

// RouteLeg is the raw first-route summary from the routing API.
type RouteLeg struct {
	DistanceMeters  float64
	DurationSeconds float64
}

// RoutingAPI fetches driving distance between two points.
type RoutingAPI interface {
	Route(ctx context.Context, origin, destination models.Coordinates) (RouteLeg, error)
}

// ClientConfig configures a RoutingClient.
type ClientConfig struct {
	BaseURL           string
	APIKey            string
	AttemptTimeout    time.Duration
	RequestsPerSecond float64 // 0 disables client-side throttling
	Backoff           []time.Duration
	HTTPClient        *http.Client
}

// RoutingClient talks to a directions endpoint that takes [lon, lat] pairs.
type RoutingClient struct {
	baseURL        string
	apiKey         string
	httpClient     *http.Client
	limiter        *rate.Limiter
	attemptTimeout time.Duration
	backoff        []time.Duration
	sleep          func(ctx context.Context, d time.Duration) error
	logger         *zap.Logger
}

func NewRoutingClient(cfg ClientConfig, logger *zap.Logger) *RoutingClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.AttemptTimeout
	if timeout <= 0 {
		timeout = defaultAttemptTimeout
	}
	backoff := cfg.Backoff
	if backoff == nil {
		backoff = DefaultBackoff
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:    20,
				IdleConnTimeout: 30 * time.Second,
			},
		}
	}
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), int(cfg.RequestsPerSecond)+1)
	}
	return &RoutingClient{
		baseURL:        cfg.BaseURL,
		apiKey:         cfg.APIKey,
		httpClient:     httpClient,
		limiter:        limiter,
		attemptTimeout: timeout,
		backoff:        backoff,
		sleep:          sleepContext,
		logger:         logger,
	}
}

type routeRequest struct {
	Coordinates [][2]float64 `json:"coordinates"`
}

type routeResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"` // meters
			Duration float64 `json:"duration"` // seconds
		} `json:"summary"`
	} `json:"routes"`
}

// Route calls the API, retrying only 429 responses on the backoff table.
// Cancelling ctx stops any pending retry.
func (c *RoutingClient) Route(ctx context.Context, origin, destination models.Coordinates) (RouteLeg, error) {
	payload, err := json.Marshal(routeRequest{Coordinates: [][2]float64{
		{origin.Longitude, origin.Latitude},
		{destination.Longitude, destination.Latitude},
	}})
	if err != nil {
		return RouteLeg{}, fmt.Errorf("failed to encode route request: %w", err)
	}

	for attempt := 1; ; attempt++ {
		leg, err := c.attempt(ctx, payload)
		if err == nil {
			if attempt > 1 {
				c.logger.Info("routing api recovered after rate limiting", zap.Int("attempts", attempt))
			}
			return leg, nil
		}
		retry := attempt - 1
		if !errors.Is(err, ErrRateLimited) || retry >= len(c.backoff) {
			return RouteLeg{}, fmt.Errorf("routing request failed after %d attempt(s): %w", attempt, err)
		}
		delay := c.backoff[retry]
		c.logger.Warn("routing api rate limited, backing off",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
		)
		if err := c.sleep(ctx, delay); err != nil {
			return RouteLeg{}, fmt.Errorf("routing retry aborted after %d attempt(s): %w", attempt, err)
		}
	}
}

func (c *RoutingClient) attempt(ctx context.Context, payload []byte) (RouteLeg, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return RouteLeg{}, fmt.Errorf("routing throttle: %w", err)
		}
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return RouteLeg{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return RouteLeg{}, fmt.Errorf("failed to perform request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return RouteLeg{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return RouteLeg{}, ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return RouteLeg{}, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 200)}
	}

	return parseRoute(body)
}

// parseRoute reads the first route summary. Missing routes yield a zero leg.
func parseRoute(body []byte) (RouteLeg, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return RouteLeg{}, ErrEmptyResponse
	}
	var parsed routeResponse
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		return RouteLeg{}, fmt.Errorf("failed to decode route response: %w", err)
	}
	if len(parsed.Routes) == 0 {
		return RouteLeg{}, nil
	}
	summary := parsed.Routes[0].Summary
	if summary.Distance < 0 || summary.Duration < 0 {
		return RouteLeg{}, fmt.Errorf("routing api returned negative summary (%.1fm, %.1fs)", summary.Distance, summary.Duration)
	}
	return RouteLeg{DistanceMeters: summary.Distance, DurationSeconds: summary.Duration}, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
