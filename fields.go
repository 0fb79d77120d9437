package datasync

import "github.com/zoobzio/capitan"

// Field keys for Service events.
var (
	// KeyOperation is the channel the event belongs to.
	KeyOperation = capitan.NewStringKey("operation")

	// KeyCommandID is the correlation id assigned when a command is accepted.
	KeyCommandID = capitan.NewStringKey("command_id")

	// KeyURL is the resolved request address.
	KeyURL = capitan.NewStringKey("url")

	// KeyMethod is the HTTP method of the request.
	KeyMethod = capitan.NewStringKey("method")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyStatus is the response status code of a failed request, 0 when the
	// failure did not come from a response.
	KeyStatus = capitan.NewIntKey("status")

	// KeyStage is where a failure occurred: encode, request, decode or reload.
	KeyStage = capitan.NewStringKey("stage")

	// KeyDuration is the time an operation took to settle.
	KeyDuration = capitan.NewDurationKey("duration")

	// KeyOldState is the busy flag before a transition ("idle" or "busy").
	KeyOldState = capitan.NewStringKey("old_state")

	// KeyNewState is the busy flag after a transition ("idle" or "busy").
	KeyNewState = capitan.NewStringKey("new_state")
)

func loadingState(loading bool) string {
	if loading {
		return "busy"
	}
	return "idle"
}
