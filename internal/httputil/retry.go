// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP client used by networked lookups.
package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/health-report/internal/logging"
	"github.com/pdiddy/health-report/pkg/types"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// throttled responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = time.Second

const (
	defaultMaxRetries = 5
	defaultTimeout    = 5 * time.Second
	maxRetryAfter     = time.Minute
)

// Client sends requests with a per-call timeout and retries responses
// that ask the caller to slow down (429, 503).
type Client struct {
	http       *http.Client
	timeout    time.Duration
	userAgent  string
	maxRetries int
	log        *zap.Logger
}

// NewClient builds a Client. A zero timeout uses 5 s and a non-positive
// maxRetries uses 5. A nil logger discards retry logs.
func NewClient(hc *http.Client, cfg types.HTTPConfig, maxRetries int, logger *zap.Logger) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	logger = logging.OrNop(logger)
	return &Client{
		http:       hc,
		timeout:    cfg.Timeout,
		userAgent:  cfg.UserAgent,
		maxRetries: maxRetries,
		log:        logger,
	}
}

// GetJSON fetches url and decodes a 200 response body into v. It returns
// the final status code; non-200 responses are not errors and leave v
// untouched.
func (c *Client) GetJSON(ctx context.Context, url string, header http.Header, v any) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("building request: %w", err)
	}
	for k, vals := range header {
		for _, val := range vals {
			req.Header.Add(k, val)
		}
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.Do(ctx, req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return resp.StatusCode, fmt.Errorf("decoding %s: %w", url, err)
	}
	return resp.StatusCode, nil
}

// Do executes req and retries throttled responses with exponential
// backoff starting at RetryBaseDelay. A Retry-After header given in
// seconds replaces the computed delay, capped at one minute. If the
// context is cancelled during a wait Do returns ctx.Err(). After
// exhausting retries the last throttled response is returned so the
// caller can inspect it.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		resp, err := c.http.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if !throttled(resp.StatusCode) || attempt >= c.maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		if d, ok := retryAfter(resp.Header.Get("Retry-After")); ok {
			backoff = d
		}
		c.log.Debug("throttled, retrying",
			zap.String("url", req.URL.String()),
			zap.Int("status", resp.StatusCode),
			zap.Duration("backoff", backoff),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", c.maxRetries),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

func throttled(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

func retryAfter(v string) (time.Duration, bool) {
	if v == "" {
		return 0, false
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0, false
	}
	d := time.Duration(secs) * time.Second
	if d > maxRetryAfter {
		d = maxRetryAfter
	}
	return d, true
}
