package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds a single HTTPClient request.
const DefaultTimeout = 30 * time.Second

// HTTPClient is a Client backed by net/http.
type HTTPClient struct {
	httpClient  *http.Client
	contentType string
	token       string
	headers     http.Header
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *HTTPClient) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithToken sends the token as a bearer Authorization header.
func WithToken(token string) Option {
	return func(c *HTTPClient) {
		c.token = token
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(c *HTTPClient) {
		c.headers.Add(key, value)
	}
}

// WithCodec sets the content type announced for request bodies from codec.
func WithCodec(codec Codec) Option {
	return func(c *HTTPClient) {
		c.contentType = codec.ContentType()
	}
}

// NewHTTPClient creates an HTTPClient.
func NewHTTPClient(opts ...Option) *HTTPClient {
	c := &HTTPClient{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		contentType: JSONCodec{}.ContentType(),
		headers:     make(http.Header),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get issues a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, url, nil)
}

// Post issues a POST request with body.
func (c *HTTPClient) Post(ctx context.Context, url string, body []byte) ([]byte, error) {
	return c.do(ctx, http.MethodPost, url, body)
}

// Put issues a PUT request with body.
func (c *HTTPClient) Put(ctx context.Context, url string, body []byte) ([]byte, error) {
	return c.do(ctx, http.MethodPut, url, body)
}

// Delete issues a DELETE request.
func (c *HTTPClient) Delete(ctx context.Context, url string) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, url, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", c.contentType)
	}
	req.Header.Set("Accept", c.contentType)
	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
		}
	}
	return payload, nil
}

// statusText strips the numeric prefix from resp.Status ("404 Not Found").
func statusText(resp *http.Response) string {
	if text, ok := strings.CutPrefix(resp.Status, fmt.Sprintf("%d ", resp.StatusCode)); ok && text != "" {
		return text
	}
	if resp.Status != "" {
		return resp.Status
	}
	return http.StatusText(resp.StatusCode)
}

// Ensure HTTPClient implements Client.
var _ Client = (*HTTPClient)(nil)
