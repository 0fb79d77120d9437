// Package testing provides test utilities and helpers for datasync services.
//
// Controller is a transport.Client that never touches the network. Every
// request parks until the test answers it, which makes in-flight,
// superseded and out-of-order responses easy to stage:
//
//	ctrl := datasynctest.NewController()
//	svc := datasync.New[datasynctest.Item](ctrl, "https://api.example.com/items")
//
//	svc.LoadData("")
//	ctrl.ExpectOne(t, http.MethodGet, "https://api.example.com/items").
//	    FlushJSON(t, []datasynctest.Item{{ID: 1}})
package testing

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/zoobzio/datasync/transport"
)

// DefaultWait bounds how long ExpectOne waits for a request to arrive.
const DefaultWait = 2 * time.Second

// Item is a standard resource type for testing datasync services.
type Item struct {
	ID   int64  `json:"id,omitempty" yaml:"id,omitempty"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// EntityID implements datasync.Entity.
func (i Item) EntityID() int64 {
	return i.ID
}

type outcome struct {
	body []byte
	err  error
}

// Request is one call received by a Controller.
type Request struct {
	Method string
	URL    string
	Body   []byte

	ctx  context.Context
	done chan outcome
	once sync.Once
}

// Flush answers the request successfully with body. Answering a request
// more than once, or after its caller gave up, has no effect.
func (r *Request) Flush(body []byte) {
	r.answer(outcome{body: body})
}

// FlushJSON answers the request successfully with v encoded as JSON.
func (r *Request) FlushJSON(t testing.TB, v any) {
	t.Helper()
	body, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("encode flush body: %v", err)
	}
	r.Flush(body)
}

// Fail answers the request with a transport error carrying the status.
func (r *Request) Fail(statusCode int, status string) {
	r.answer(outcome{err: &transport.Error{
		Method:     r.Method,
		URL:        r.URL,
		StatusCode: statusCode,
		Status:     status,
	}})
}

// FailWith answers the request with err.
func (r *Request) FailWith(err error) {
	r.answer(outcome{err: err})
}

// Canceled reports whether the caller abandoned the request.
func (r *Request) Canceled() bool {
	return r.ctx.Err() != nil
}

// DecodeJSON decodes the request body into v.
func (r *Request) DecodeJSON(t testing.TB, v any) {
	t.Helper()
	if err := json.Unmarshal(r.Body, v); err != nil {
		t.Fatalf("decode %s %s body: %v", r.Method, r.URL, err)
	}
}

func (r *Request) answer(o outcome) {
	r.once.Do(func() {
		r.done <- o
	})
}

// Controller is a transport.Client whose requests are answered by the test.
type Controller struct {
	mu      sync.Mutex
	open    []*Request
	all     []*Request
	arrived chan struct{}
}

// NewController creates an empty Controller.
func NewController() *Controller {
	return &Controller{arrived: make(chan struct{})}
}

// Get implements transport.Client.
func (c *Controller) Get(ctx context.Context, url string) ([]byte, error) {
	return c.handle(ctx, "GET", url, nil)
}

// Post implements transport.Client.
func (c *Controller) Post(ctx context.Context, url string, body []byte) ([]byte, error) {
	return c.handle(ctx, "POST", url, body)
}

// Put implements transport.Client.
func (c *Controller) Put(ctx context.Context, url string, body []byte) ([]byte, error) {
	return c.handle(ctx, "PUT", url, body)
}

// Delete implements transport.Client.
func (c *Controller) Delete(ctx context.Context, url string) ([]byte, error) {
	return c.handle(ctx, "DELETE", url, nil)
}

func (c *Controller) handle(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	req := &Request{
		Method: method,
		URL:    url,
		Body:   slices.Clone(body),
		ctx:    ctx,
		done:   make(chan outcome, 1),
	}

	c.mu.Lock()
	c.open = append(c.open, req)
	c.all = append(c.all, req)
	close(c.arrived)
	c.arrived = make(chan struct{})
	c.mu.Unlock()

	select {
	case o := <-req.done:
		return o.body, o.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ExpectOne waits for exactly one unanswered request matching method and
// url, removes it from the open set and returns it. The test fails if none
// arrives within DefaultWait or if more than one matches.
func (c *Controller) ExpectOne(t testing.TB, method, url string) *Request {
	t.Helper()
	deadline := time.After(DefaultWait)
	for {
		c.mu.Lock()
		var matches []int
		for i, r := range c.open {
			if r.Method == method && r.URL == url {
				matches = append(matches, i)
			}
		}
		arrived := c.arrived
		if len(matches) == 1 {
			req := c.open[matches[0]]
			c.open = slices.Delete(c.open, matches[0], matches[0]+1)
			c.mu.Unlock()
			return req
		}
		c.mu.Unlock()

		if len(matches) > 1 {
			t.Fatalf("expected one %s %s, found %d", method, url, len(matches))
			return nil
		}

		select {
		case <-arrived:
		case <-deadline:
			t.Fatalf("expected one %s %s, found none; open: %s", method, url, c.describeOpen())
			return nil
		}
	}
}

// ExpectNone fails the test if an unanswered request matching method and
// url is currently open.
func (c *Controller) ExpectNone(t testing.TB, method, url string) {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.open {
		if r.Method == method && r.URL == url {
			t.Fatalf("expected no %s %s", method, url)
		}
	}
}

// Verify fails the test if any request is still open and was not
// abandoned by its caller.
func (c *Controller) Verify(t testing.TB) {
	t.Helper()
	if open := c.describeOpen(); open != "" {
		t.Fatalf("unexpected open requests: %s", open)
	}
}

// Requests returns every request received, in arrival order.
func (c *Controller) Requests() []*Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.all)
}

func (c *Controller) describeOpen() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var parts []string
	for _, r := range c.open {
		if r.Canceled() {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s", r.Method, r.URL))
	}
	return strings.Join(parts, ", ")
}

// Ensure Controller implements transport.Client.
var _ transport.Client = (*Controller)(nil)

// WaitFor polls a condition until it returns true or timeout is reached.
// Returns true if the condition was met, false if timeout occurred.
func WaitFor(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return condition()
}
