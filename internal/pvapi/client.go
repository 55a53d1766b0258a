package pvapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RetryPolicy is the explicit retry contract for one logical call.
// Idempotent calls retry on any failure, immediately (no backoff: the
// original service tolerates it and it keeps the blocking window bounded
// by the transport timeout). Non-idempotent calls get exactly one attempt.
type RetryPolicy struct {
	MaxAttempts int
	Idempotent  bool
}

var (
	idempotentPolicy = RetryPolicy{MaxAttempts: 3, Idempotent: true}
	oneShotPolicy    = RetryPolicy{MaxAttempts: 1}
)

// Client performs logical calls against the booking service over JSON/HTTP.
// Each instance keeps one persistent connection alive and is NOT safe for
// concurrent use; use one instance per concurrent logical operation or
// serialize access externally.
type Client struct {
	hc   *http.Client
	host string
	log  *zap.Logger
}

func NewClient(host string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		hc: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        1,
				MaxIdleConnsPerHost: 1,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		host: strings.TrimSuffix(host, "/"),
		log:  logger,
	}
}

// Get performs an idempotent GET, decoding the 200 body into out.
func (c *Client) Get(ctx context.Context, route string, query url.Values, out any) error {
	return c.request(ctx, http.MethodGet, route, query, nil, idempotentPolicy, out)
}

// GetOnce is a GET explicitly marked non-idempotent: one attempt only.
func (c *Client) GetOnce(ctx context.Context, route string, query url.Values, out any) error {
	return c.request(ctx, http.MethodGet, route, query, nil, oneShotPolicy, out)
}

// Delete performs an idempotent DELETE, decoding the 200 body into out.
func (c *Client) Delete(ctx context.Context, route string, query url.Values, out any) error {
	return c.request(ctx, http.MethodDelete, route, query, nil, idempotentPolicy, out)
}

// Post submits body as JSON. Never retried: creation is not idempotent.
func (c *Client) Post(ctx context.Context, route string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request to POST %s: %w", route, err)
	}
	return c.request(ctx, http.MethodPost, route, nil, payload, oneShotPolicy, out)
}

// outcome is one attempt's classification: either done (body decoded or a
// terminal error) or a failure that the policy may retry.
type outcome struct {
	err       error
	retryable bool
}

func (c *Client) request(ctx context.Context, method, route string, query url.Values, body []byte, policy RetryPolicy, out any) error {
	path := "/api/" + strings.TrimPrefix(route, "/")

	// One correlation id for the logical call, reused across every
	// physical attempt so retries can be tied together in logs.
	requestID := requestIDFrom(ctx)

	var last outcome
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		c.log.Debug("api request",
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("attempt", attempt))

		last = c.attempt(ctx, method, path, requestID, query, body, out)
		if last.err == nil {
			return nil
		}
		if !policy.Idempotent || !last.retryable {
			break
		}
		c.log.Warn("api request failed",
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("attempt", attempt),
			zap.Error(last.err))
	}
	return last.err
}

func (c *Client) attempt(ctx context.Context, method, path, requestID string, query url.Values, body []byte, out any) outcome {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.host+path, reader)
	if err != nil {
		return outcome{err: transportError(kindOf(err), method, path, err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "en")
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return outcome{err: transportError(kindOf(err), method, path, err), retryable: true}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return outcome{err: transportError(kindOf(err), method, path, err), retryable: true}
	}

	switch {
	case res.StatusCode == http.StatusOK:
		if out == nil {
			return outcome{}
		}
		// A 200 with an undecodable body is a contract violation,
		// not a remote failure; retrying cannot fix it.
		if err := json.Unmarshal(raw, out); err != nil {
			return outcome{err: &DecodeError{Method: method, Path: path, Cause: err}}
		}
		return outcome{}
	case res.StatusCode == http.StatusNotFound:
		return outcome{err: &NotFoundError{Method: method, Path: path}, retryable: true}
	default:
		return outcome{err: statusError(res.StatusCode, method, path, errorBody(raw)), retryable: true}
	}
}

type requestIDKey struct{}

// WithRequestID attaches a caller-chosen correlation id to the context.
// Without one the client generates a fresh id per logical call.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

// errorBody extracts the service's {"message": ...} text, falling back to
// the raw body marked as invalid JSON.
func errorBody(raw []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "(invalid-JSON) " + string(raw)
	}
	if parsed.Message == "" {
		return string(raw)
	}
	return parsed.Message
}

// kindOf names the transport failure, unwrapping the url.Error envelope so
// the underlying cause's type shows through.
func kindOf(err error) string {
	if ue, ok := err.(*url.Error); ok && ue.Err != nil {
		return fmt.Sprintf("%T", ue.Err)
	}
	return fmt.Sprintf("%T", err)
}
