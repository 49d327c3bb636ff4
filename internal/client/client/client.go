package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/storepulse/internal/common"
	"github.com/dmitrijs2005/storepulse/internal/logging"
)

// Client is the fetch primitive consumed by resources and services.
type Client interface {
	// Do performs one request and decodes the JSON response into out.
	// A nil out discards the body.
	Do(ctx context.Context, req Request, out any) error
}

// HTTPClient implements Client over net/http.
type HTTPClient struct {
	baseURL   string
	http      *http.Client
	log       logging.Logger
	requestID func() string
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *HTTPClient) { c.http = h }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient builds a client that resolves every request path against
// baseURL.
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      http.DefaultClient,
		log:       logging.Discard(),
		requestID: uuid.NewString,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *HTTPClient) BaseURL() string { return c.baseURL }

func (c *HTTPClient) Do(ctx context.Context, r Request, out any) error {
	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method(), c.baseURL+r.Path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	id := c.requestID()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.RequestIDHeaderName, id)
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}

	log := c.log.With("method", req.Method, "path", r.Path, "request_id", id)
	log.Debug(ctx, "fetch started")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug(ctx, "fetch failed", "error", err)
		return &TransportError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		log.Debug(ctx, "fetch rejected", "status", resp.StatusCode)
		return &HTTPError{Status: resp.StatusCode}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		log.Debug(ctx, "fetch settled", "status", resp.StatusCode)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Debug(ctx, "fetch body malformed", "error", err)
		return &TransportError{Message: "malformed response body: " + err.Error(), Err: err}
	}

	log.Debug(ctx, "fetch settled", "status", resp.StatusCode)
	return nil
}

// Fetch performs req against c and returns the decoded body.
func Fetch[T any](ctx context.Context, c Client, req Request) (T, error) {
	var v T
	err := c.Do(ctx, req, &v)
	return v, err
}
