package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// requestIDHeader identifies individual calls in backend logs.
const requestIDHeader = "X-Request-Id"

// Client is the API gateway: every exchange with the kachki backend goes
// through it. It injects bearer authorization, normalizes the backend's
// heterogeneous error shapes into APIError, and raises a session-invalidation
// signal on authorization failure. Navigation and token teardown policy live
// in the session manager, not here.
type Client struct {
	baseURL string
	httpc   *http.Client
	store   CredentialStore
	limiter *rate.Limiter
	log     *zap.Logger

	onAuthFailure func()
}

// ClientOption mutates client construction.
type ClientOption func(*Client)

// WithHTTPClient overrides the HTTP client used for dispatch.
func WithHTTPClient(httpc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// WithLogger attaches a logger for per-request debug logging.
func WithLogger(log *zap.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// WithRateLimiter throttles outbound calls client-side. Waits honor the
// request context.
func WithRateLimiter(limiter *rate.Limiter) ClientOption {
	return func(c *Client) {
		c.limiter = limiter
	}
}

// NewClient creates a gateway against the API server at baseURL. The
// credential store is read for bearer injection only; a nil store gets an
// empty in-memory one.
func NewClient(baseURL string, store CredentialStore, optFns ...ClientOption) *Client {
	if store == nil {
		store = NewMemoryStore()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		log:     zap.NewNop(),
	}
	for _, fn := range optFns {
		fn(c)
	}
	if c.httpc == nil {
		c.httpc = &http.Client{Timeout: 30 * time.Second}
	}
	return c
}

// SetInvalidationHandler registers the callback raised when an authorized
// call is rejected with 401. The session manager installs itself here during
// construction; the handler must be in place before concurrent use.
func (c *Client) SetInvalidationHandler(fn func()) {
	c.onAuthFailure = fn
}

// isAuthEndpoint reports whether a path is one of the two unauthenticated
// entry endpoints. They never carry a bearer, and a 401 from them is a
// credential failure rather than a session invalidation.
func isAuthEndpoint(path string) bool {
	return path == "/auth/login" || path == "/auth/register"
}

// do dispatches one JSON call. All failures come back as *APIError; it never
// panics and never returns a partially decoded result. Idempotent GETs are
// retried exactly once after a transport-level failure; writes never are.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: fmt.Sprintf("encode request: %v", err)}
		}
		payload = data
	}
	return c.dispatch(ctx, method, path, query, payload, "application/json", out)
}

// doMultipart uploads a single file as a multipart form with field name
// "file", the only upload shape the backend accepts.
func (c *Client) doMultipart(ctx context.Context, path, filename string, content io.Reader, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("encode upload: %v", err)}
	}
	if _, err := io.Copy(part, content); err != nil {
		return &APIError{Message: fmt.Sprintf("encode upload: %v", err)}
	}
	if err := writer.Close(); err != nil {
		return &APIError{Message: fmt.Sprintf("encode upload: %v", err)}
	}
	return c.dispatch(ctx, http.MethodPost, path, nil, buf.Bytes(), writer.FormDataContentType(), out)
}

func (c *Client) dispatch(ctx context.Context, method, path string, query url.Values, payload []byte, contentType string, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return transportError(err)
		}
	}

	resp, authorized, err := c.roundTrip(ctx, method, path, query, payload, contentType)
	if err != nil && method == http.MethodGet && ctx.Err() == nil {
		// One retry for reads that never reached the server.
		resp, authorized, err = c.roundTrip(ctx, method, path, query, payload, contentType)
	}
	if err != nil {
		c.log.Debug("request failed before a response",
			zap.String("method", method), zap.String("path", path), zap.Error(err))
		return transportError(err)
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return transportError(readErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := normalizeError(resp.StatusCode, raw)
		if resp.StatusCode == http.StatusUnauthorized && authorized && c.onAuthFailure != nil {
			c.onAuthFailure()
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := decodeInto(raw, out); err != nil {
		return &APIError{Message: fmt.Sprintf("decode response: %v", err), Status: resp.StatusCode}
	}
	return nil
}

// roundTrip performs a single attempt. The bool result reports whether a
// bearer was attached, which gates the 401 invalidation signal.
func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, payload []byte, contentType string) (*http.Response, bool, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, false, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", contentType)
	}
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)

	authorized := false
	if !isAuthEndpoint(path) {
		if creds, credErr := c.store.Load(); credErr == nil && creds.Token != "" {
			creds.OAuthToken().SetAuthHeader(req)
			authorized = true
		}
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, authorized, err
	}
	c.log.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("request_id", requestID))
	return resp, authorized, nil
}

// decodeInto unmarshals a response body. String and numeric targets tolerate
// plain-text bodies because several backend handlers reply with raw text
// instead of JSON.
func decodeInto(raw []byte, out any) error {
	trimmed := bytes.TrimSpace(raw)
	switch target := out.(type) {
	case *json.RawMessage:
		// Raw capture; callers decode tolerantly themselves.
		*target = append((*target)[:0], trimmed...)
		return nil
	case *string:
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			*target = s
			return nil
		}
		*target = string(trimmed)
		return nil
	case *int64:
		var n int64
		if err := json.Unmarshal(trimmed, &n); err == nil {
			*target = n
			return nil
		}
		parsed, err := strconv.ParseInt(strings.Trim(string(trimmed), `"`), 10, 64)
		if err != nil {
			return err
		}
		*target = parsed
		return nil
	default:
		if len(trimmed) == 0 {
			return errors.New("empty body")
		}
		return json.Unmarshal(trimmed, out)
	}
}
