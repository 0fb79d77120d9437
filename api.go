// Package datasync provides a client-side synchronization engine for a single
// REST-style resource.
//
// The core type is Service, which accepts fire-and-forget commands (load,
// create, update, delete), runs each through its own latest-wins channel and
// projects every outcome into one observable snapshot.
//
// # Service
//
// A Service owns four independent channels, one per operation:
//
//	LoadData   → GET base[/relative]                 → snapshot
//	Create     → POST base        → GET base (reload) → snapshot
//	Update     → PUT base/<id>    → GET base (reload) → snapshot
//	Delete     → DELETE base/<id> → GET base (reload) → snapshot
//
// A new command on a channel cancels the command still in flight on that
// channel; its response is never observed. Channels do not coordinate with
// each other: whichever settles last determines the snapshot.
//
// # Views
//
// The snapshot is a DataResult holding either a Value or an Error. Data and
// Error project it; Loading reports the busy flag, which every channel sets
// when it accepts a command and clears when it publishes. The flag is shared,
// so with two channels in flight it clears as soon as the first one settles.
//
// # Validation
//
// Update and Delete require a positive id. Otherwise no request is made and
// the snapshot is set to ErrInvalidID before the method returns.
//
// # Example
//
//	type Todo struct {
//	    ID    int64  `json:"id,omitempty"`
//	    Title string `json:"title"`
//	}
//
//	func (t Todo) EntityID() int64 { return t.ID }
//
//	todos := datasync.New[Todo](
//	    transport.NewHTTPClient(),
//	    "https://api.example.com/todos",
//	)
//	defer todos.Close()
//
//	todos.Subscribe(func(r datasync.DataResult[Todo]) {
//	    if r.Failed() {
//	        log.Printf("todos: %s", r.Error.Message)
//	    }
//	})
//
//	todos.LoadData("")
//	todos.Create(Todo{Title: "write docs"})
package datasync

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/datasync/transport"
	"github.com/zoobzio/pipz"
)

// DefaultBaseURL is used when New is given an empty base address.
const DefaultBaseURL = "http://localhost"

// Service synchronizes one remote resource collection into a local snapshot.
type Service[T Entity] struct {
	client    transport.Client
	baseURL   string
	pipelines [len(operations)]pipz.Chainable[*Call[T]]
	clock     clockz.Clock
	codec     transport.Codec
	metrics   MetricsProvider
	logger    *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	loading      atomic.Bool
	errorHistory *failureRing

	// Busy flag transitions awaiting report, in flip order.
	loadingReports   []bool
	reportingLoading bool

	mu       sync.Mutex
	channels [len(operations)]*channel
	snapshot projector[T]
	closed   bool
}

// New creates a Service for the collection at baseURL. An empty baseURL
// falls back to DefaultBaseURL. All request paths are derived from it for
// the lifetime of the Service.
//
// Pipeline options (With*) wrap each operation pipeline. Instance
// configuration uses chainable methods before issuing commands.
//
// Example:
//
//	svc := datasync.New[Todo](
//	    transport.NewHTTPClient(transport.WithToken(token)),
//	    "https://api.example.com/todos",
//	).Logger(logger).Codec(transport.JSONCodec{})
func New[T Entity](client transport.Client, baseURL string, opts ...Option[T]) *Service[T] {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Service[T]{
		client:  client,
		baseURL: baseURL,
		clock:   clockz.RealClock,
		codec:   transport.JSONCodec{},
		logger:  slog.New(slog.DiscardHandler),
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, op := range operations {
		s.channels[op] = &channel{op: op}
	}
	s.buildPipelines(opts)

	return s
}

// -----------------------------------------------------------------------------
// Chainable Instance Configuration
// -----------------------------------------------------------------------------

// Clock sets a custom clock for measuring operation durations.
// Must be called before issuing commands.
func (s *Service[T]) Clock(clock clockz.Clock) *Service[T] {
	s.clock = clock
	return s
}

// Codec sets the codec used to encode items and decode responses.
// Default: transport.JSONCodec. Must be called before issuing commands.
func (s *Service[T]) Codec(codec transport.Codec) *Service[T] {
	s.codec = codec
	return s
}

// Metrics sets a metrics provider for observability integration.
// Must be called before issuing commands.
func (s *Service[T]) Metrics(provider MetricsProvider) *Service[T] {
	s.metrics = provider
	return s
}

// Logger sets the structured logger. Default: a logger that discards
// everything. Must be called before issuing commands.
func (s *Service[T]) Logger(logger *slog.Logger) *Service[T] {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// ErrorHistorySize sets the number of recent failures to retain.
// When set, ErrorHistory() returns up to this many entries; the history is
// cleared by every successful result. Must be called before issuing commands.
func (s *Service[T]) ErrorHistorySize(n int) *Service[T] {
	s.errorHistory = newFailureRing(n)
	return s
}

// -----------------------------------------------------------------------------
// Views
// -----------------------------------------------------------------------------

// BaseURL returns the collection address.
func (s *Service[T]) BaseURL() string {
	return s.baseURL
}

// Loading reports the busy flag.
func (s *Service[T]) Loading() bool {
	return s.loading.Load()
}

// Pending reports whether the channel of op has a command in flight.
// Unlike Loading, it is tracked per channel.
func (s *Service[T]) Pending(op Operation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.channels[op].inFlight()
}

// Snapshot returns the most recently published result.
func (s *Service[T]) Snapshot() DataResult[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.current
}

// Data returns the value of the snapshot, or nil when the snapshot holds
// no value.
func (s *Service[T]) Data() *Value[T] {
	return s.Snapshot().Value
}

// Error returns the error message of the snapshot and true, or "" and false
// when the snapshot holds no error.
func (s *Service[T]) Error() (string, bool) {
	r := s.Snapshot()
	if r.Error == nil {
		return "", false
	}
	return r.Error.Message, true
}

// ErrorHistory returns recent failures, oldest first.
// Returns nil if error history is not enabled (see ErrorHistorySize).
func (s *Service[T]) ErrorHistory() []Failure {
	return s.errorHistory.all()
}

// Subscribe registers fn to be called with every published result, in
// publication order. The returned function removes the registration.
func (s *Service[T]) Subscribe(fn func(DataResult[T])) (unsubscribe func()) {
	s.mu.Lock()
	id := s.snapshot.add(fn)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.snapshot.remove(id)
			s.mu.Unlock()
		})
	}
}

// -----------------------------------------------------------------------------
// Commands
// -----------------------------------------------------------------------------

// LoadData fetches the collection (relativeURL == "") or the sub-path
// relativeURL of it.
func (s *Service[T]) LoadData(relativeURL string) {
	s.dispatch(&Call[T]{
		Operation:   OperationLoad,
		RelativeURL: relativeURL,
		URL:         ResolveURL(s.baseURL, relativeURL),
	})
}

// LoadDataWithID fetches the single resource id.
func (s *Service[T]) LoadDataWithID(id int64) {
	s.LoadData(strconv.FormatInt(id, 10))
}

// Create posts item to the collection, then reloads the collection.
func (s *Service[T]) Create(item T) {
	s.dispatch(&Call[T]{
		Operation: OperationCreate,
		Item:      item,
		URL:       s.baseURL,
	})
}

// Update puts item to its own address, then reloads the collection.
// item.EntityID() must be positive.
func (s *Service[T]) Update(item T) {
	id := item.EntityID()
	s.dispatch(&Call[T]{
		Operation: OperationUpdate,
		Item:      item,
		ItemID:    id,
		URL:       s.itemURL(id),
	})
}

// Delete deletes the resource id, then reloads the collection.
// id must be positive.
func (s *Service[T]) Delete(id int64) {
	s.dispatch(&Call[T]{
		Operation: OperationDelete,
		ItemID:    id,
		URL:       s.itemURL(id),
	})
}

// Close abandons all in-flight work. Commands issued afterwards are ignored.
func (s *Service[T]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for _, ch := range s.channels {
		ch.stop()
	}
	s.cancel()
	report := s.setLoading(false)
	s.mu.Unlock()

	if report {
		s.drainLoading()
	}
	capitan.Emit(context.Background(), ServiceClosed,
		KeyURL.Field(s.baseURL),
	)
	s.logger.Debug("datasync service closed", "url", s.baseURL)
}

// -----------------------------------------------------------------------------
// Dispatch
// -----------------------------------------------------------------------------

// dispatch accepts c into its channel. Identified mutations with an invalid
// id are settled before dispatch returns; everything else runs on its own
// goroutine.
func (s *Service[T]) dispatch(c *Call[T]) {
	c.ID = uuid.New()
	ch := s.channels[c.Operation]

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.logger.Debug("command ignored on closed service", "operation", c.Operation.String())
		return
	}
	gen, ctx, superseded := ch.begin(s.ctx)
	report := s.setLoading(true)
	s.mu.Unlock()

	s.reportAccepted(ctx, c, superseded)
	if report {
		s.drainLoading()
	}

	start := s.clock.Now()
	if c.Operation == OperationUpdate || c.Operation == OperationDelete {
		if err := guardID(c.ItemID); err != nil {
			c.Stage = stageValidate
			c.Err = err
			c.Result = failure[T](err.Error())
			capitan.Emit(ctx, ValidationFailed,
				KeyOperation.Field(c.Operation.String()),
				KeyCommandID.Field(c.ID.String()),
				KeyError.Field(err.Error()),
			)
			s.settle(ch, gen, c, start)
			return
		}
	}

	pipeline := s.pipelines[c.Operation]
	go func() {
		out, err := pipeline.Process(ctx, c)
		if out != nil {
			// Middleware may hand later stages a different call.
			c = out
		}
		if err != nil && !c.Result.Failed() {
			// Middleware failures never reach a stage that records them.
			cause := middlewareCause[T](err)
			c.Stage = stageMiddleware
			c.Err = cause
			c.Result = failure[T](cause.Error())
		}
		s.settle(ch, gen, c, start)
	}()
}

// settle publishes the outcome of c if gen is still current on ch.
func (s *Service[T]) settle(ch *channel, gen uint64, c *Call[T], start time.Time) {
	s.mu.Lock()
	if s.closed || !ch.current(gen) {
		s.mu.Unlock()
		return
	}
	ch.finish(gen)
	report := s.setLoading(false)
	drain := s.snapshot.write(c.Result)
	if c.Result.Failed() {
		s.errorHistory.push(Failure{
			Operation: c.Operation,
			CommandID: c.ID.String(),
			Message:   c.Result.Error.Message,
			At:        s.clock.Now(),
		})
	} else {
		s.errorHistory.clear()
	}
	s.mu.Unlock()

	if report {
		s.drainLoading()
	}
	s.reportSettled(c, s.clock.Since(start))
	if drain {
		s.drain()
	}
}

// middlewareCause strips the pipeline path and timing pipz wraps around
// the error a processor returned.
func middlewareCause[T Entity](err error) error {
	for {
		var pe *pipz.Error[*Call[T]]
		if !errors.As(err, &pe) || pe.Err == nil {
			return err
		}
		err = pe.Err
	}
}

// drain delivers queued results to listeners until the queue is empty.
func (s *Service[T]) drain() {
	for {
		s.mu.Lock()
		r, targets, ok := s.snapshot.next()
		s.mu.Unlock()
		if !ok {
			return
		}
		for _, l := range targets {
			l.fn(r)
		}
	}
}

// setLoading stores the busy flag and queues the transition, if any, for
// reporting. It returns true when the caller must drain the report queue.
// Called with s.mu held, so reports follow flip order.
func (s *Service[T]) setLoading(loading bool) bool {
	if s.loading.Swap(loading) == loading {
		return false
	}
	s.loadingReports = append(s.loadingReports, loading)
	if s.reportingLoading {
		return false
	}
	s.reportingLoading = true
	return true
}

// drainLoading reports queued busy flag transitions until the queue is
// empty. Transitions queued by other goroutines meanwhile are reported here.
func (s *Service[T]) drainLoading() {
	for {
		s.mu.Lock()
		if len(s.loadingReports) == 0 {
			s.reportingLoading = false
			s.loadingReports = nil
			s.mu.Unlock()
			return
		}
		loading := s.loadingReports[0]
		s.loadingReports = s.loadingReports[1:]
		s.mu.Unlock()

		s.reportLoading(loading)
	}
}

// -----------------------------------------------------------------------------
// Reporting
// -----------------------------------------------------------------------------

func (s *Service[T]) reportAccepted(ctx context.Context, c *Call[T], superseded bool) {
	op := c.Operation.String()
	if superseded {
		capitan.Emit(ctx, CommandSuperseded,
			KeyOperation.Field(op),
			KeyCommandID.Field(c.ID.String()),
		)
		s.logger.Debug("in-flight command superseded", "operation", op, "command_id", c.ID.String())
	}
	capitan.Emit(ctx, CommandAccepted,
		KeyOperation.Field(op),
		KeyCommandID.Field(c.ID.String()),
		KeyMethod.Field(c.Operation.Method()),
		KeyURL.Field(c.URL),
	)
	s.logger.Debug("command accepted", "operation", op, "command_id", c.ID.String(), "url", c.URL)
	if s.metrics != nil {
		s.metrics.OnCommandAccepted(c.Operation)
	}
}

func (s *Service[T]) reportLoading(loading bool) {
	capitan.Emit(context.Background(), LoadingChanged,
		KeyOldState.Field(loadingState(!loading)),
		KeyNewState.Field(loadingState(loading)),
	)
	if s.metrics != nil {
		s.metrics.OnLoadingChange(loading)
	}
}

func (s *Service[T]) reportSettled(c *Call[T], elapsed time.Duration) {
	op := c.Operation.String()
	ctx := context.Background()

	if c.Result.Failed() {
		if c.Stage != stageValidate {
			capitan.Emit(ctx, RequestFailed,
				KeyOperation.Field(op),
				KeyCommandID.Field(c.ID.String()),
				KeyStage.Field(c.Stage),
				KeyStatus.Field(transport.StatusOf(c.Err)),
				KeyError.Field(c.Result.Error.Message),
			)
		}
		s.logger.Warn("operation failed",
			"operation", op,
			"command_id", c.ID.String(),
			"stage", c.Stage,
			"error", c.Result.Error.Message,
		)
		if s.metrics != nil {
			s.metrics.OnOperationFailure(c.Operation, c.Stage, elapsed)
		}
	} else if s.metrics != nil {
		s.metrics.OnOperationSuccess(c.Operation, elapsed)
	}

	capitan.Emit(ctx, SnapshotChanged,
		KeyOperation.Field(op),
		KeyCommandID.Field(c.ID.String()),
		KeyDuration.Field(elapsed),
	)
}
