// Package provider implements the conditional HTTP client for the MET Norway
// locationforecast API.
package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/ikovac/met-forecast-api/internal/logger"
	"github.com/ikovac/met-forecast-api/internal/model"
)

// FetchStatus classifies the outcome of a single fetch attempt.
type FetchStatus int

const (
	// StatusFresh carries a new body plus cache-validation headers.
	StatusFresh FetchStatus = iota
	// StatusNotModified means the cached body is still current.
	StatusNotModified
	// StatusThrottled is HTTP 429; callers may apply backoff policy.
	StatusThrottled
	// StatusClientError is HTTP 400-499 excluding 429.
	StatusClientError
	// StatusServerError is HTTP 5xx.
	StatusServerError
	// StatusTransportError covers timeouts, connection failures, an open
	// circuit breaker and unreadable responses.
	StatusTransportError
)

// FetchOutcome is the result of one conditional request.
type FetchOutcome struct {
	Status       FetchStatus
	Body         []byte
	Expires      *time.Time
	LastModified *time.Time
	Code         int
}

// Config holds client settings.
type Config struct {
	BaseURL        string
	UserAgent      string
	Timeout        time.Duration
	BreakerTimeout time.Duration
}

// Client issues conditional GET requests against the locationforecast API.
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	baseURL    string
	userAgent  string
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}

// NewClient creates a locationforecast client wrapped in a circuit breaker.
func NewClient(cfg Config) *Client {
	settings := gobreaker.Settings{
		Name:    "locationforecast",
		Timeout: cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn(fmt.Sprintf("circuit breaker %s changed state from %s to %s", name, from, to))
		},
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    gobreaker.NewCircuitBreaker(settings),
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
	}
}

// Fetch performs a conditional GET for the given coordinate. When
// ifModifiedSince is non-nil it is sent verbatim as an If-Modified-Since
// header; nil means an unconditional fetch. Fetch never returns an error:
// every failure mode is folded into the outcome.
func (c *Client) Fetch(ctx context.Context, coord model.Coordinate, ifModifiedSince *time.Time) FetchOutcome {
	coord = coord.Rounded()
	url := fmt.Sprintf("%s?lat=%.2f&lon=%.2f", c.baseURL, coord.Latitude, coord.Longitude)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return FetchOutcome{Status: StatusTransportError}
	}
	// The provider rejects requests without an identifying User-Agent.
	req.Header.Set("User-Agent", c.userAgent)
	if ifModifiedSince != nil {
		req.Header.Set("If-Modified-Since", ifModifiedSince.UTC().Format(http.TimeFormat))
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, doErr := c.httpClient.Do(req)
		if doErr != nil {
			return nil, doErr
		}
		if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNotModified {
			return resp, nil
		}
		code := resp.StatusCode
		resp.Body.Close()
		return nil, &statusError{code: code}
	})
	if err != nil {
		var se *statusError
		if errors.As(err, &se) {
			return classifyStatus(se.code)
		}
		// Open breaker, timeout, DNS failure and friends.
		return FetchOutcome{Status: StatusTransportError}
	}

	resp := result.(*http.Response)
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		return FetchOutcome{Status: StatusNotModified, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return FetchOutcome{Status: StatusTransportError}
	}

	outcome := FetchOutcome{Status: StatusFresh, Body: body, Code: resp.StatusCode}
	if t, parseErr := http.ParseTime(resp.Header.Get("Expires")); parseErr == nil {
		outcome.Expires = &t
	}
	if t, parseErr := http.ParseTime(resp.Header.Get("Last-Modified")); parseErr == nil {
		outcome.LastModified = &t
	}
	return outcome
}

func classifyStatus(code int) FetchOutcome {
	switch {
	case code == http.StatusTooManyRequests:
		return FetchOutcome{Status: StatusThrottled, Code: code}
	case code >= 400 && code < 500:
		return FetchOutcome{Status: StatusClientError, Code: code}
	case code >= 500:
		return FetchOutcome{Status: StatusServerError, Code: code}
	default:
		return FetchOutcome{Status: StatusTransportError, Code: code}
	}
}
