// Package patch implements the tri-state field update used by every update
// payload in the library.
//
// On the wire (JSON):
//   - key absent          -> Ignore (leave the field unchanged)
//   - key present, null   -> Clear  (null the field)
//   - key present, value  -> Set(value)
//
// Struct fields of type Patch[T] must carry the `omitzero` JSON option so that
// Ignore is omitted on encode. Decoding needs nothing special: encoding/json
// only calls UnmarshalJSON for keys that are present, so an absent key keeps
// the zero value, which is Ignore.
package patch

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// State is the instruction a Patch carries.
type State uint8

const (
	StateIgnore State = iota
	StateClear
	StateSet
)

func (s State) String() string {
	switch s {
	case StateIgnore:
		return "ignore"
	case StateClear:
		return "clear"
	case StateSet:
		return "set"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Patch is an update instruction for a single field of type T.
// The zero value is Ignore.
type Patch[T any] struct {
	state State
	value T
}

// Ignore leaves the field unchanged.
func Ignore[T any]() Patch[T] { return Patch[T]{} }

// Clear nulls the field.
func Clear[T any]() Patch[T] { return Patch[T]{state: StateClear} }

// Set assigns v to the field.
func Set[T any](v T) Patch[T] { return Patch[T]{state: StateSet, value: v} }

func (p Patch[T]) State() State   { return p.state }
func (p Patch[T]) IsIgnore() bool { return p.state == StateIgnore }
func (p Patch[T]) IsClear() bool  { return p.state == StateClear }
func (p Patch[T]) IsSet() bool    { return p.state == StateSet }

// IsZero reports Ignore; it lets `omitzero` drop ignored fields.
func (p Patch[T]) IsZero() bool { return p.state == StateIgnore }

// Get returns the assigned value and true when the patch is Set.
func (p Patch[T]) Get() (T, bool) {
	return p.value, p.state == StateSet
}

// Apply returns the field value after the patch: Ignore keeps current,
// Clear yields nil, Set yields the new value.
func (p Patch[T]) Apply(current *T) *T {
	switch p.state {
	case StateClear:
		return nil
	case StateSet:
		v := p.value
		return &v
	default:
		return current
	}
}

// MarshalJSON encodes Set as the value and Clear as null. Ignore also encodes
// as null when the field is not tagged omitzero.
func (p Patch[T]) MarshalJSON() ([]byte, error) {
	if p.state != StateSet {
		return []byte("null"), nil
	}
	return json.Marshal(p.value)
}

// UnmarshalJSON is only called for keys present in the payload.
func (p *Patch[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = Clear[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Set(v)
	return nil
}

func (p Patch[T]) String() string {
	if p.state == StateSet {
		return fmt.Sprintf("set(%v)", p.value)
	}
	return p.state.String()
}

// anyValue exposes the Set value to the validation rules without knowing T.
func (p Patch[T]) anyValue() (interface{}, bool) {
	return p.value, p.state == StateSet
}
