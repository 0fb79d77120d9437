package datasync

// listener is a registered snapshot observer.
type listener[T Entity] struct {
	id uint64
	fn func(DataResult[T])
}

// projector holds the snapshot cell and delivers every write to listeners
// in write order. Writes happen under the Service mutex; delivery happens
// outside it, on whichever goroutine finds the queue idle, so listeners may
// issue new commands without deadlocking.
type projector[T Entity] struct {
	current   DataResult[T]
	listeners []listener[T]
	nextID    uint64
	pending   []DataResult[T]
	draining  bool
}

// write overwrites the snapshot and queues it for delivery. It returns true
// when the caller must drain the queue.
func (p *projector[T]) write(r DataResult[T]) bool {
	p.current = r
	if len(p.listeners) == 0 {
		return false
	}
	p.pending = append(p.pending, r)
	if p.draining {
		return false
	}
	p.draining = true
	return true
}

func (p *projector[T]) add(fn func(DataResult[T])) uint64 {
	p.nextID++
	p.listeners = append(p.listeners, listener[T]{id: p.nextID, fn: fn})
	return p.nextID
}

func (p *projector[T]) remove(id uint64) {
	for i, l := range p.listeners {
		if l.id == id {
			p.listeners = append(p.listeners[:i:i], p.listeners[i+1:]...)
			return
		}
	}
}

// next pops the oldest queued result together with the listeners to notify.
// ok is false when the queue is empty, in which case draining ends.
func (p *projector[T]) next() (r DataResult[T], targets []listener[T], ok bool) {
	if len(p.pending) == 0 {
		p.draining = false
		p.pending = nil
		return r, nil, false
	}
	r = p.pending[0]
	p.pending = p.pending[1:]
	return r, p.listeners, true
}
