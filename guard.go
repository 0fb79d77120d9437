package datasync

import "errors"

// ErrInvalidID is reported, without any request being made, when Update or
// Delete is called with an id that is not positive.
var ErrInvalidID = errors.New("Id must be greater than 0") //nolint:staticcheck // message is surfaced verbatim

// guardID admits identified mutations only for positive ids.
func guardID(id int64) error {
	if id > 0 {
		return nil
	}
	return ErrInvalidID
}
