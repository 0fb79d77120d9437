package testing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zoobzio/datasync/transport"
)

func TestItem_EntityID(t *testing.T) {
	if got := (Item{ID: 7}).EntityID(); got != 7 {
		t.Errorf("expected id 7, got %d", got)
	}
}

func TestController_Flush(t *testing.T) {
	ctrl := NewController()

	type result struct {
		body []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		body, err := ctrl.Get(context.Background(), "https://api.example.com/items")
		done <- result{body, err}
	}()

	req := ctrl.ExpectOne(t, "GET", "https://api.example.com/items")
	req.FlushJSON(t, []Item{{ID: 1}})

	r := <-done
	if r.err != nil {
		t.Fatalf("unexpected error: %v", r.err)
	}
	if string(r.body) != `[{"id":1}]` {
		t.Errorf("unexpected body %s", r.body)
	}
	ctrl.Verify(t)
}

func TestController_Fail(t *testing.T) {
	ctrl := NewController()

	done := make(chan error, 1)
	go func() {
		_, err := ctrl.Post(context.Background(), "https://api.example.com/items", []byte(`{"name":"a"}`))
		done <- err
	}()

	req := ctrl.ExpectOne(t, "POST", "https://api.example.com/items")
	var body Item
	req.DecodeJSON(t, &body)
	if body.Name != "a" {
		t.Errorf("expected name a, got %q", body.Name)
	}
	req.Fail(404, "Not Found")

	err := <-done
	if transport.StatusOf(err) != 404 {
		t.Errorf("expected status 404, got %v", err)
	}
}

func TestController_Canceled(t *testing.T) {
	ctrl := NewController()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := ctrl.Delete(ctx, "https://api.example.com/items/1")
		done <- err
	}()

	req := ctrl.ExpectOne(t, "DELETE", "https://api.example.com/items/1")
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if !req.Canceled() {
		t.Error("expected request to report cancellation")
	}

	// Late answers are ignored.
	req.Flush([]byte(`{}`))
	ctrl.Verify(t)
}

func TestController_ExpectNone(t *testing.T) {
	ctrl := NewController()
	ctrl.ExpectNone(t, "GET", "https://api.example.com/items")

	if len(ctrl.Requests()) != 0 {
		t.Error("expected no requests")
	}
}

func TestController_Requests(t *testing.T) {
	ctrl := NewController()

	go func() {
		_, _ = ctrl.Put(context.Background(), "https://api.example.com/items/2", nil)
	}()
	ctrl.ExpectOne(t, "PUT", "https://api.example.com/items/2").Flush(nil)

	reqs := ctrl.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(reqs))
	}
	if reqs[0].Method != "PUT" {
		t.Errorf("expected PUT, got %s", reqs[0].Method)
	}
}

func TestWaitFor(t *testing.T) {
	t.Run("condition met immediately", func(t *testing.T) {
		result := WaitFor(t, 100*time.Millisecond, func() bool {
			return true
		})
		if !result {
			t.Error("expected WaitFor to return true")
		}
	})

	t.Run("condition never met", func(t *testing.T) {
		result := WaitFor(t, 50*time.Millisecond, func() bool {
			return false
		})
		if result {
			t.Error("expected WaitFor to return false on timeout")
		}
	})

	t.Run("condition met after delay", func(t *testing.T) {
		start := time.Now()
		met := make(chan struct{})
		go func() {
			time.Sleep(30 * time.Millisecond)
			close(met)
		}()
		result := WaitFor(t, 200*time.Millisecond, func() bool {
			select {
			case <-met:
				return true
			default:
				return false
			}
		})
		if !result {
			t.Error("expected WaitFor to return true")
		}
		if time.Since(start) < 30*time.Millisecond {
			t.Error("condition should have taken at least 30ms")
		}
	})
}
