package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/resumedash/internal/metrics"
	"go.uber.org/zap"
)

// DefaultBaseURL is used when no API base URL is configured.
const DefaultBaseURL = "http://localhost:5170"

const maxResponseBytes = 8 << 20

// Doer is the subset of *http.Client the request layer depends on.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Envelope is the uniform success payload of the remote API.
type Envelope struct {
	Data    json.RawMessage `json:"data"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
}

type errorEnvelope struct {
	StatusCode *int    `json:"statusCode"`
	Error      *string `json:"error"`
	Code       *string `json:"code"`
	Details    *string `json:"details"`
	ID         *string `json:"id"`
}

func (e errorEnvelope) valid() bool {
	return e.StatusCode != nil && e.Error != nil && e.Code != nil && e.Details != nil && Code(*e.Code).Known()
}

// Client issues requests against the developer-management API.
type Client struct {
	baseURL string
	http    Doer
	tokens  TokenSource
	log     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(doer Doer) Option {
	return func(c *Client) {
		if doer != nil {
			c.http = doer
		}
	}
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		if ts != nil {
			c.tokens = ts
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a client. Requests default to a 30 second timeout and read
// bearer tokens from the request context.
func New(baseURL string, opts ...Option) *Client {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	c := &Client{
		baseURL: trimmed,
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  ContextTokenSource{},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type requestConfig struct {
	headers   http.Header
	operation string
}

// RequestOption customises a single request.
type RequestOption func(*requestConfig)

// WithHeader overrides or adds a request header.
func WithHeader(key, value string) RequestOption {
	return func(cfg *requestConfig) {
		cfg.headers.Set(key, value)
	}
}

// WithOperation names the call for metrics and logs.
func WithOperation(name string) RequestOption {
	return func(cfg *requestConfig) {
		cfg.operation = name
	}
}

// Request performs an unauthenticated call. body, when non-nil, is encoded
// as JSON unless it is already a []byte.
func (c *Client) Request(ctx context.Context, method, path string, body any, opts ...RequestOption) (*Envelope, error) {
	return c.do(ctx, method, path, body, "", opts)
}

// RequestAuthenticated obtains a bearer token first and fails with a
// NoToken error, without touching the network, when none is available.
func (c *Client) RequestAuthenticated(ctx context.Context, method, path string, body any, opts ...RequestOption) (*Envelope, error) {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		if _, ok := AsError(err); ok {
			return nil, err
		}
		return nil, NoTokenError(err.Error())
	}
	if strings.TrimSpace(token) == "" {
		return nil, NoTokenError("access token is empty")
	}
	return c.do(ctx, method, path, body, token, opts)
}

func (c *Client) do(ctx context.Context, method, path string, body any, token string, opts []RequestOption) (*Envelope, error) {
	cfg := requestConfig{headers: http.Header{}, operation: "unlabeled"}
	cfg.headers.Set("Content-Type", "application/json")
	cfg.headers.Set("Accept", "application/json")
	cfg.headers.Set("Cache-Control", "no-store")
	cfg.headers.Set("Pragma", "no-cache")
	if token != "" {
		cfg.headers.Set("Authorization", "Bearer "+token)
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	reader, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path), reader)
	if err != nil {
		return nil, InvalidFormatError(fmt.Sprintf("build request: %v", err))
	}
	req.Header = cfg.headers

	start := time.Now()
	env, status, err := c.send(req)
	outcome := "success"
	if err != nil {
		outcome = "error"
		if apiErr, ok := AsError(err); ok {
			outcome = apiErr.Kind.String()
		}
		c.log.Warn("api request failed",
			zap.String("operation", cfg.operation),
			zap.String("method", method),
			zap.String("url", req.URL.Redacted()),
			zap.Int("status", status),
			zap.Error(err),
		)
	} else {
		c.log.Debug("api request",
			zap.String("operation", cfg.operation),
			zap.String("method", method),
			zap.String("url", req.URL.Redacted()),
			zap.Int("status", status),
			zap.Bool("success", env.Success),
		)
	}
	metrics.RecordAPIRequest(cfg.operation, method, outcome, time.Since(start))

	return env, err
}

func (c *Client) send(req *http.Request) (*Envelope, int, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, NetworkError(err.Error(), err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, resp.StatusCode, NetworkError(fmt.Sprintf("read response body: %v", err), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, decodeFailure(resp, payload)
	}

	if len(bytes.TrimSpace(payload)) == 0 {
		// No content is treated as a bare success.
		return &Envelope{Success: true}, resp.StatusCode, nil
	}

	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, resp.StatusCode, JSONParseError(err.Error(), err)
	}
	return &env, resp.StatusCode, nil
}

func decodeFailure(resp *http.Response, payload []byte) error {
	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "application/json") {
		if contentType == "" {
			contentType = "unknown content type"
		}
		return InvalidResponseError("Expected JSON response but got " + contentType)
	}

	var env errorEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return InvalidResponseError(fmt.Sprintf("status %d: unreadable error body: %v", resp.StatusCode, err))
	}
	if !env.valid() {
		return InvalidResponseError("status " + strconv.Itoa(resp.StatusCode) + ": " + truncate(string(payload), 256))
	}
	return baseError(env)
}

func encodeBody(body any) (io.Reader, error) {
	switch v := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(v), nil
	case io.Reader:
		return v, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, InvalidFormatError(fmt.Sprintf("encode request body: %v", err))
		}
		return bytes.NewReader(data), nil
	}
}

func (c *Client) resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// DecodeData unmarshals the envelope data into T. A missing or null data
// field yields T's zero value.
func DecodeData[T any](env *Envelope) (T, error) {
	var out T
	if env == nil {
		return out, nil
	}
	raw := bytes.TrimSpace(env.Data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, JSONParseError(err.Error(), err)
	}
	return out, nil
}

// HasData reports whether the envelope carries a non-null data field.
func (e *Envelope) HasData() bool {
	if e == nil {
		return false
	}
	raw := bytes.TrimSpace(e.Data)
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}
