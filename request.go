package datasync

import "github.com/google/uuid"

// Call carries one accepted command through its operation pipeline.
// Pipeline stages read the command fields and write Result; a stage that
// fails records where and why in Stage and Err.
type Call[T Entity] struct {
	// ID correlates every signal and log line produced for the command.
	ID uuid.UUID

	// Operation is the channel the command was issued on.
	Operation Operation

	// RelativeURL is the path suffix of a load command; empty means the
	// collection root.
	RelativeURL string

	// Item is the payload of a create or update command.
	Item T

	// ItemID is the identifier of an update or delete command.
	ItemID int64

	// URL is the resolved address of the first request.
	URL string

	// Result is the outcome published to the snapshot.
	Result DataResult[T]

	// Stage and Err describe the failing step, if any.
	Stage string
	Err   error
}
