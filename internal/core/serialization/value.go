package serialization

import (
	"reflect"
)

// Slot is an addressable value in an object graph: a Field of a live object
// or a detached Property. Use GetValue, SetValue and GetValueCopy to access it.
type Slot interface {
	Type() FieldType
	InternalType() reflect.Type
	Path() Path

	get() (reflect.Value, error)
	set(v reflect.Value) error
}

var (
	_ Slot = (*Field)(nil)
	_ Slot = (*Property)(nil)
)

// GetValue reads the slot as T. T must be assignable from the slot's declared
// type; otherwise ErrTypeMismatch is returned and nothing is read.
func GetValue[T any](s Slot) (T, error) {
	var zero T
	want := reflect.TypeFor[T]()
	if !s.InternalType().AssignableTo(want) {
		return zero, newTypeError("get", want, s.InternalType())
	}

	v, err := s.get()
	if err != nil {
		return zero, err
	}
	return as[T](v), nil
}

// SetValue writes value into the slot. The same assignability rule as GetValue
// applies; when T is an interface the dynamic value must also fit the slot.
func SetValue[T any](s Slot, value T) error {
	want := reflect.TypeFor[T]()
	if !s.InternalType().AssignableTo(want) {
		return newTypeError("set", want, s.InternalType())
	}

	v, err := coerce(reflect.ValueOf(&value).Elem(), s.InternalType())
	if err != nil {
		return err
	}
	return s.set(v)
}

// GetValueCopy is GetValue on a deep clone of the stored value. Game object and
// resource references inside the copy still point at the originals.
func GetValueCopy[T any](s Slot) (T, error) {
	var zero T
	want := reflect.TypeFor[T]()
	if !s.InternalType().AssignableTo(want) {
		return zero, newTypeError("get", want, s.InternalType())
	}

	v, err := s.get()
	if err != nil {
		return zero, err
	}
	return as[T](cloneValue(v)), nil
}

// as converts v, whose type is assignable to T, into a T. Going through a
// pointer keeps nil interface values intact.
func as[T any](v reflect.Value) T {
	out := reflect.New(reflect.TypeFor[T]()).Elem()
	if v.IsValid() {
		out.Set(v)
	}
	return *out.Addr().Interface().(*T)
}

// coerce returns v as a value of type to, unwrapping interfaces.
func coerce(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	if v.Kind() == reflect.Interface && v.Type() != to {
		if v.IsNil() {
			return reflect.Zero(to), nil
		}
		v = v.Elem()
	}
	if !v.Type().AssignableTo(to) {
		return reflect.Value{}, newTypeError("set", v.Type(), to)
	}
	out := reflect.New(to).Elem()
	out.Set(v)
	return out, nil
}
