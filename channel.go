package datasync

import "context"

// channel is the single-slot intake of one operation. Accepting a command
// cancels whatever the channel was running and starts a new generation;
// only the current generation may publish. All methods are called with the
// owning Service's mutex held.
type channel struct {
	op         Operation
	generation uint64
	cancel     context.CancelFunc
}

// begin supersedes in-flight work and returns the generation and context
// for the new command. superseded reports whether work was abandoned.
func (ch *channel) begin(parent context.Context) (gen uint64, ctx context.Context, superseded bool) {
	if ch.cancel != nil {
		ch.cancel()
		superseded = true
	}
	ch.generation++
	ctx, ch.cancel = context.WithCancel(parent)
	return ch.generation, ctx, superseded
}

// current reports whether gen is still allowed to publish.
func (ch *channel) current(gen uint64) bool {
	return ch.generation == gen
}

// finish releases the context of gen once it has published.
func (ch *channel) finish(gen uint64) {
	if ch.generation != gen || ch.cancel == nil {
		return
	}
	ch.cancel()
	ch.cancel = nil
}

// inFlight reports whether the channel has unsettled work.
func (ch *channel) inFlight() bool {
	return ch.cancel != nil
}

// stop abandons in-flight work; nothing from the current generation will
// be published afterwards.
func (ch *channel) stop() {
	if ch.cancel != nil {
		ch.cancel()
		ch.cancel = nil
	}
	ch.generation++
}
