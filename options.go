package datasync

import (
	"context"

	"github.com/zoobzio/pipz"
)

// Option configures the operation pipelines of a Service. Options wrap each
// of the four pipelines with middleware; they cannot change the
// request/reload protocol itself.
//
// Instance configuration (logger, clock, codec, etc.) is handled via
// chainable methods on the Service before issuing commands.
type Option[T Entity] func(pipz.Chainable[*Call[T]]) pipz.Chainable[*Call[T]]

// WithMiddleware runs processors before every operation. A processor that
// fails stops the command; its error becomes the published result.
//
// Example:
//
//	svc := datasync.New[Todo](
//	    client,
//	    "https://api.example.com/todos",
//	    datasync.WithMiddleware(
//	        datasync.UseEffect[Todo](auditID, func(ctx context.Context, c *datasync.Call[Todo]) error {
//	            audit.Record(ctx, c.Operation.String(), c.URL)
//	            return nil
//	        }),
//	    ),
//	)
func WithMiddleware[T Entity](processors ...pipz.Chainable[*Call[T]]) Option[T] {
	return func(p pipz.Chainable[*Call[T]]) pipz.Chainable[*Call[T]] {
		all := make([]pipz.Chainable[*Call[T]], 0, len(processors)+1)
		all = append(all, processors...)
		all = append(all, p)
		return pipz.NewSequence(middlewID, all...)
	}
}

// UseEffect creates a processor that performs a side effect.
// The call passes through unchanged.
func UseEffect[T Entity](identity pipz.Identity, fn func(context.Context, *Call[T]) error) pipz.Chainable[*Call[T]] {
	return pipz.Effect(identity, fn)
}

// UseApply creates a processor that can modify the call and fail.
// Use it to rewrite the outgoing item or reject a command.
func UseApply[T Entity](identity pipz.Identity, fn func(context.Context, *Call[T]) (*Call[T], error)) pipz.Chainable[*Call[T]] {
	return pipz.Apply(identity, fn)
}

// UseTransform creates a processor that modifies the call and cannot fail.
func UseTransform[T Entity](identity pipz.Identity, fn func(context.Context, *Call[T]) *Call[T]) pipz.Chainable[*Call[T]] {
	return pipz.Transform(identity, fn)
}
