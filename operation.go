package datasync

import "net/http"

// Operation identifies one of the four command channels of a Service.
type Operation int32

const (
	// OperationLoad fetches the collection or a sub-path of it.
	OperationLoad Operation = iota

	// OperationCreate posts a new item, then reloads the collection.
	OperationCreate

	// OperationUpdate puts an identified item, then reloads the collection.
	OperationUpdate

	// OperationDelete deletes an identified item, then reloads the collection.
	OperationDelete
)

// operations lists every channel in dispatch order.
var operations = [...]Operation{OperationLoad, OperationCreate, OperationUpdate, OperationDelete}

// String returns the string representation of the operation.
func (o Operation) String() string {
	switch o {
	case OperationLoad:
		return "load"
	case OperationCreate:
		return "create"
	case OperationUpdate:
		return "update"
	case OperationDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Method returns the HTTP method the operation issues first.
func (o Operation) Method() string {
	switch o {
	case OperationCreate:
		return http.MethodPost
	case OperationUpdate:
		return http.MethodPut
	case OperationDelete:
		return http.MethodDelete
	default:
		return http.MethodGet
	}
}

// Reloads reports whether a successful operation is followed by a
// collection reload.
func (o Operation) Reloads() bool {
	return o != OperationLoad
}
