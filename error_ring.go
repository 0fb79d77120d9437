package datasync

import (
	"sync"
	"time"
)

// Failure is one entry of a Service's error history.
type Failure struct {
	Operation Operation
	CommandID string
	Message   string
	At        time.Time
}

// failureRing is a thread-safe ring buffer of recent failures.
type failureRing struct {
	mu      sync.RWMutex
	entries []Failure
	size    int
	head    int
	count   int
}

// newFailureRing creates a ring with the given capacity.
// If size is 0, the ring is disabled and every method is a no-op.
func newFailureRing(size int) *failureRing {
	if size <= 0 {
		return nil
	}
	return &failureRing{
		entries: make([]Failure, size),
		size:    size,
	}
}

func (r *failureRing) push(f Failure) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[r.head] = f
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

func (r *failureRing) clear() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.entries)
	r.head = 0
	r.count = 0
}

// all returns the retained failures, oldest first.
func (r *failureRing) all() []Failure {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 {
		return nil
	}

	result := make([]Failure, r.count)
	start := (r.head - r.count + r.size) % r.size
	for i := 0; i < r.count; i++ {
		result[i] = r.entries[(start+i)%r.size]
	}
	return result
}
