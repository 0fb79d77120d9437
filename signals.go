package datasync

import "github.com/zoobzio/capitan"

// Command intake signals.
var (
	// CommandAccepted is emitted when a command enters its channel.
	CommandAccepted = capitan.NewSignal(
		"datasync.command.accepted",
		"Command accepted into its channel",
	)

	// CommandSuperseded is emitted when an in-flight command is abandoned
	// because a newer command arrived on the same channel.
	CommandSuperseded = capitan.NewSignal(
		"datasync.command.superseded",
		"In-flight command superseded by a newer one",
	)

	// ValidationFailed is emitted when an identified mutation is rejected
	// before any request is made.
	ValidationFailed = capitan.NewSignal(
		"datasync.validation.failed",
		"Command rejected by id validation",
	)
)

// Request signals.
var (
	// RequestFailed is emitted when a transport call or payload codec fails.
	RequestFailed = capitan.NewSignal(
		"datasync.request.failed",
		"Request failed",
	)

	// ReloadTriggered is emitted when a successful mutation starts the
	// collection reload.
	ReloadTriggered = capitan.NewSignal(
		"datasync.reload.triggered",
		"Collection reload after mutation",
	)
)

// Snapshot and lifecycle signals.
var (
	// SnapshotChanged is emitted every time a channel publishes a result.
	SnapshotChanged = capitan.NewSignal(
		"datasync.snapshot.changed",
		"Snapshot overwritten by a channel result",
	)

	// LoadingChanged is emitted when the busy flag flips.
	LoadingChanged = capitan.NewSignal(
		"datasync.loading.changed",
		"Busy flag transition",
	)

	// ServiceClosed is emitted when a Service is closed.
	ServiceClosed = capitan.NewSignal(
		"datasync.service.closed",
		"Service closed",
	)
)
