package serialization

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrTypeMismatch indicates a value was read or written using a type that is
	// not assignable from the slot's declared type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidOperation indicates a container or object narrowing was requested
	// on a slot whose FieldType does not match.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrUnsupported indicates a Go type that has no FieldType.
	ErrUnsupported = errors.New("unsupported type")

	// ErrNilValue indicates a nil pointer, slice or map was dereferenced.
	ErrNilValue = errors.New("nil value")

	// ErrIndexOutOfRange indicates an array or list index outside the current length.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrKeyNotFound indicates a dictionary key that is no longer present.
	ErrKeyNotFound = errors.New("key not found")

	// ErrInvalidInstance indicates an object was built from something other than
	// a non-nil pointer to a struct.
	ErrInvalidInstance = errors.New("invalid instance")

	// ErrNotSerializable indicates a clone of a value whose type has no FieldType.
	ErrNotSerializable = errors.New("not serializable")

	// ErrPropertyNotFound indicates a property path that does not resolve.
	ErrPropertyNotFound = errors.New("property not found")
)

// TypeError reports a value access with an incompatible Go type.
type TypeError struct {
	Err      error        // Underlying sentinel error (ErrTypeMismatch)
	Op       string       // Operation that failed (get, set, create)
	Provided reflect.Type // Type supplied by the caller
	Needed   reflect.Type // Declared type of the slot
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: %s value using an invalid type: provided %v, needed %v",
		e.Err.Error(), e.Op, e.Provided, e.Needed)
}

func (e *TypeError) Unwrap() error {
	return e.Err
}

// OperationError reports an operation that is not valid for a slot or type.
type OperationError struct {
	Err    error     // Underlying sentinel error
	Op     string    // Operation that failed
	Type   FieldType // FieldType of the slot the operation was invoked on
	Detail string
}

func (e *OperationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s on %s: %s", e.Err.Error(), e.Op, e.Type, e.Detail)
	}
	return fmt.Sprintf("%s: %s on %s", e.Err.Error(), e.Op, e.Type)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

func newTypeError(op string, provided, needed reflect.Type) error {
	return &TypeError{
		Err:      ErrTypeMismatch,
		Op:       op,
		Provided: provided,
		Needed:   needed,
	}
}

func newOperationError(sentinel error, op string, typ FieldType, detail string) error {
	return &OperationError{
		Err:    sentinel,
		Op:     op,
		Type:   typ,
		Detail: detail,
	}
}

// expectType returns an ErrInvalidOperation error unless have equals want.
func expectType(op string, have, want FieldType) error {
	if have == want {
		return nil
	}
	return newOperationError(ErrInvalidOperation, op, have, "slot does not contain "+want.article())
}
