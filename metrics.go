package datasync

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key service events.
type MetricsProvider interface {
	// OnCommandAccepted is called when a command enters its channel.
	OnCommandAccepted(op Operation)

	// OnOperationSuccess is called when a channel publishes a successful result.
	// Duration covers the request and, for mutations, the reload.
	OnOperationSuccess(op Operation, duration time.Duration)

	// OnOperationFailure is called when a channel publishes a failure.
	// Stage indicates where it occurred: "validate", "encode", "request",
	// "decode" or "reload".
	OnOperationFailure(op Operation, stage string, duration time.Duration)

	// OnLoadingChange is called when the busy flag flips.
	OnLoadingChange(loading bool)
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnCommandAccepted(_ Operation)                             {}
func (NoOpMetricsProvider) OnOperationSuccess(_ Operation, _ time.Duration)           {}
func (NoOpMetricsProvider) OnOperationFailure(_ Operation, _ string, _ time.Duration) {}
func (NoOpMetricsProvider) OnLoadingChange(_ bool)                                    {}
