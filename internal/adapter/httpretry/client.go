// Package httpretry provides the shared outbound HTTP client. It retries
// transient failures (429, 5xx gateway/availability statuses and transport
// errors) with exponential backoff and a bounded number of attempts.
package httpretry

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/healdata/dd-annotator/pkg/ctxutil"
)

const (
	defaultMaxAttempts = 4
	defaultBackoffBase = time.Second
	defaultTimeout     = 60 * time.Second
)

// retryableStatuses are the response codes worth another attempt.
var retryableStatuses = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// Config holds retry policy settings.
type Config struct {
	Timeout     time.Duration
	MaxAttempts int
	BackoffBase time.Duration
}

// Client wraps an *http.Client with the retry policy. It holds no
// per-request state and is safe to share.
type Client struct {
	httpClient  *http.Client
	maxAttempts int
	backoffBase time.Duration
	log         *slog.Logger
}

// New creates a Client. Zero values in cfg fall back to 4 attempts, a 1s
// backoff base and a 60s per-attempt timeout.
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = defaultBackoffBase
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		maxAttempts: cfg.MaxAttempts,
		backoffBase: cfg.BackoffBase,
		log:         logger.With("adapter", "httpretry"),
	}
}

// statusError marks a retryable response status.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d", e.code)
}

// Do sends req, retrying transient failures. When every attempt ends in a
// retryable status the last response is returned with a nil error, so the
// caller handles it like any other failed response. When every attempt ends
// in a transport error the last error is returned. Requests with a body must
// be replayable (GetBody set), which http.NewRequest does for in-memory
// readers.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	var (
		attempt int
		last    *http.Response
	)

	operation := func() (*http.Response, error) {
		attempt++
		r, err := cloneRequest(req)
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		resp, err := c.httpClient.Do(r)
		if err != nil {
			if ctx.Err() != nil {
				return nil, backoff.Permanent(ctx.Err())
			}
			return nil, err
		}

		if !retryableStatuses[resp.StatusCode] {
			return resp, nil
		}

		buffered, err := bufferResponse(resp)
		if err != nil {
			return nil, err
		}
		last = buffered
		return nil, &statusError{code: resp.StatusCode}
	}

	notify := func(err error, delay time.Duration) {
		c.log.WarnContext(ctx, "http retry",
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.Int("attempt", attempt),
			slog.String("reason", err.Error()),
			slog.Duration("delay", delay),
			slog.String("run_id", ctxutil.RunIDString(ctx)),
		)
	}

	resp, err := backoff.RetryNotifyWithData(operation, c.newBackOff(ctx), notify)
	if err == nil {
		return resp, nil
	}

	var se *statusError
	if errors.As(err, &se) && last != nil {
		c.log.WarnContext(ctx, "http retries exhausted",
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.Int("attempts", attempt),
			slog.Int("status", se.code),
		)
		return last, nil
	}
	return nil, fmt.Errorf("httpretry: %s %s after %d attempt(s): %w", req.Method, req.URL.Redacted(), attempt, err)
}

// newBackOff waits BackoffBase, then doubles, with no jitter, for at most
// maxAttempts-1 retries.
func (c *Client) newBackOff(ctx context.Context) backoff.BackOffContext {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.backoffBase
	eb.RandomizationFactor = 0
	eb.Multiplier = 2
	eb.MaxInterval = c.backoffBase << c.maxAttempts
	eb.MaxElapsedTime = 0
	eb.Reset()

	return backoff.WithContext(backoff.WithMaxRetries(eb, uint64(c.maxAttempts-1)), ctx)
}

// cloneRequest returns a copy of req with a fresh body for this attempt.
func cloneRequest(req *http.Request) (*http.Request, error) {
	r := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return r, nil
	}
	if req.GetBody == nil {
		return nil, errors.New("httpretry: request body cannot be replayed")
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("httpretry: replay body: %w", err)
	}
	r.Body = body
	return r, nil
}

// bufferResponse reads and closes the body so the connection can be reused
// while the response is kept for the caller.
func bufferResponse(resp *http.Response) (*http.Response, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}
