package datasync

import (
	"bytes"
	"encoding/json"
	"slices"

	"github.com/zoobzio/datasync/transport"
)

// Entity is the constraint on resource types. EntityID reports the numeric
// identifier used to address a single resource; values <= 0 are treated as
// "no id".
type Entity interface {
	EntityID() int64
}

// ErrorInfo describes a failed operation.
type ErrorInfo struct {
	Message string `json:"message" yaml:"message"`
}

// Error implements error.
func (e *ErrorInfo) Error() string {
	return e.Message
}

// Value is a successful payload: either a single resource or an ordered
// collection of resources, depending on what the server returned.
type Value[T any] struct {
	item  T
	items []T
	list  bool
}

// One wraps a single resource.
func One[T any](item T) *Value[T] {
	return &Value[T]{item: item}
}

// Many wraps an ordered collection.
func Many[T any](items []T) *Value[T] {
	if items == nil {
		items = []T{}
	}
	return &Value[T]{items: items, list: true}
}

// IsList reports whether the payload is a collection.
func (v *Value[T]) IsList() bool {
	return v.list
}

// Item returns the single resource and true, or the zero value and false
// when the payload is a collection.
func (v *Value[T]) Item() (T, bool) {
	if v.list {
		var zero T
		return zero, false
	}
	return v.item, true
}

// Items returns the collection. A single resource is returned as a
// one-element slice. The returned slice is a copy.
func (v *Value[T]) Items() []T {
	if !v.list {
		return []T{v.item}
	}
	return slices.Clone(v.items)
}

// MarshalJSON renders the payload the way it was received.
func (v *Value[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.raw())
}

// MarshalYAML renders the payload the way it was received.
func (v *Value[T]) MarshalYAML() (any, error) {
	return v.raw(), nil
}

func (v *Value[T]) raw() any {
	if v.list {
		return v.items
	}
	return v.item
}

// DataResult is the envelope produced by every operation. A result carries
// either a Value or an Error, never both. The zero DataResult means "no
// result yet".
type DataResult[T any] struct {
	Value *Value[T]  `json:"value,omitempty" yaml:"value,omitempty"`
	Error *ErrorInfo `json:"error,omitempty" yaml:"error,omitempty"`
}

// DefaultDataResult returns the initial result: neither success nor failure.
func DefaultDataResult[T any]() DataResult[T] {
	return DataResult[T]{}
}

// Failed reports whether the result carries an error.
func (r DataResult[T]) Failed() bool {
	return r.Error != nil
}

// IsEmpty reports whether the result carries neither a value nor an error.
func (r DataResult[T]) IsEmpty() bool {
	return r.Value == nil && r.Error == nil
}

func success[T any](v *Value[T]) DataResult[T] {
	return DataResult[T]{Value: v}
}

func failure[T any](message string) DataResult[T] {
	return DataResult[T]{Error: &ErrorInfo{Message: message}}
}

// decodeValue turns a response body into a Value. Collections are tried
// first so that both "[...]" and "{...}" bodies decode into the right shape.
// An empty or null body decodes to nil.
func decodeValue[T any](codec transport.Codec, body []byte) (*Value[T], error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var items []T
	if err := codec.Unmarshal(trimmed, &items); err == nil {
		if items == nil {
			return nil, nil
		}
		return Many(items), nil
	}

	var item T
	if err := codec.Unmarshal(trimmed, &item); err != nil {
		return nil, err
	}
	return One(item), nil
}
