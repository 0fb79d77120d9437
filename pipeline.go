package datasync

import (
	"context"
	"fmt"
	"strconv"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/pipz"
)

// Pipeline stage identities.
var (
	loadID    = pipz.NewIdentity("datasync:load", "Fetches the resolved resource address")
	createID  = pipz.NewIdentity("datasync:create", "Posts an item to the collection root")
	updateID  = pipz.NewIdentity("datasync:update", "Puts an identified item")
	deleteID  = pipz.NewIdentity("datasync:delete", "Deletes an identified item")
	reloadID  = pipz.NewIdentity("datasync:reload", "Re-fetches the collection after a mutation")
	mutateID  = pipz.NewIdentity("datasync:mutate-then-reload", "Mutation followed by collection reload")
	middlewID = pipz.NewIdentity("datasync:middleware", "Middleware followed by the operation")
)

// Failure stages.
const (
	stageValidate = "validate"
	stageEncode   = "encode"
	stageRequest  = "request"
	stageDecode   = "decode"
	stageReload   = "reload"

	stageMiddleware = "middleware"
)

// buildPipelines assembles the four operation pipelines and wraps each with
// the configured options.
func (s *Service[T]) buildPipelines(opts []Option[T]) {
	wrap := func(terminal pipz.Chainable[*Call[T]]) pipz.Chainable[*Call[T]] {
		pipeline := terminal
		for _, opt := range opts {
			pipeline = opt(pipeline)
		}
		return pipeline
	}

	stages := [len(operations)]pipz.Chainable[*Call[T]]{
		OperationLoad:   pipz.Apply(loadID, s.load),
		OperationCreate: pipz.Apply(createID, s.create),
		OperationUpdate: pipz.Apply(updateID, s.update),
		OperationDelete: pipz.Apply(deleteID, s.remove),
	}
	reload := pipz.Apply(reloadID, s.reload)
	for _, op := range operations {
		terminal := stages[op]
		if op.Reloads() {
			terminal = pipz.NewSequence(mutateID, terminal, reload)
		}
		s.pipelines[op] = wrap(terminal)
	}
}

// fail records the failing stage on the call and returns the error for the
// pipeline to propagate.
func (s *Service[T]) fail(c *Call[T], stage string, err error) (*Call[T], error) {
	c.Stage = stage
	c.Err = err
	c.Result = failure[T](err.Error())
	return c, err
}

// fetch issues a GET against url and decodes the body into the call result.
func (s *Service[T]) fetch(ctx context.Context, c *Call[T], url, stage string) (*Call[T], error) {
	body, err := s.client.Get(ctx, url)
	if err != nil {
		return s.fail(c, stage, err)
	}
	value, err := decodeValue[T](s.codec, body)
	if err != nil {
		return s.fail(c, stageDecode, fmt.Errorf("decode response: %w", err))
	}
	c.Result = success(value)
	return c, nil
}

func (s *Service[T]) load(ctx context.Context, c *Call[T]) (*Call[T], error) {
	return s.fetch(ctx, c, c.URL, stageRequest)
}

// reload replaces the discarded mutation response with the collection.
func (s *Service[T]) reload(ctx context.Context, c *Call[T]) (*Call[T], error) {
	capitan.Emit(ctx, ReloadTriggered,
		KeyOperation.Field(c.Operation.String()),
		KeyCommandID.Field(c.ID.String()),
		KeyURL.Field(s.baseURL),
	)
	return s.fetch(ctx, c, s.baseURL, stageReload)
}

func (s *Service[T]) create(ctx context.Context, c *Call[T]) (*Call[T], error) {
	body, err := s.codec.Marshal(c.Item)
	if err != nil {
		return s.fail(c, stageEncode, fmt.Errorf("encode item: %w", err))
	}
	if _, err := s.client.Post(ctx, c.URL, body); err != nil {
		return s.fail(c, stageRequest, err)
	}
	return c, nil
}

func (s *Service[T]) update(ctx context.Context, c *Call[T]) (*Call[T], error) {
	body, err := s.codec.Marshal(c.Item)
	if err != nil {
		return s.fail(c, stageEncode, fmt.Errorf("encode item: %w", err))
	}
	if _, err := s.client.Put(ctx, c.URL, body); err != nil {
		return s.fail(c, stageRequest, err)
	}
	return c, nil
}

func (s *Service[T]) remove(ctx context.Context, c *Call[T]) (*Call[T], error) {
	if _, err := s.client.Delete(ctx, c.URL); err != nil {
		return s.fail(c, stageRequest, err)
	}
	return c, nil
}

// itemURL is the address of the resource identified by id.
func (s *Service[T]) itemURL(id int64) string {
	return ResolveURL(s.baseURL, strconv.FormatInt(id, 10))
}
