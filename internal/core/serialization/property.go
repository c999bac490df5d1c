package serialization

import (
	"fmt"
	"reflect"
)

// Getter returns the current value of a custom property.
type Getter func() any

// Setter assigns a new value to a custom property.
type Setter func(value any)

// Property gives uniform read/write access to one slot of an object graph:
// an object field, an array or list cell, or a dictionary key or value.
//
// A Property does not own the value it points at. Properties issued by objects
// and container adapters carry a Path and re-resolve it on every access, so a
// container replaced after issuance is picked up on the next call.
type Property struct {
	typ      FieldType
	internal reflect.Type
	acc      accessor
}

// NewProperty builds a property over caller supplied callbacks.
func NewProperty(typ FieldType, internal reflect.Type, getter Getter, setter Setter) *Property {
	return &Property{
		typ:      typ,
		internal: internal,
		acc: &funcAccessor{
			getter:   getter,
			setter:   setter,
			internal: internal,
		},
	}
}

// CreateProperty builds a property over typed callbacks, classifying T.
func CreateProperty[T any](get func() T, set func(T)) (*Property, error) {
	rt := reflect.TypeFor[T]()
	typ, err := DetermineFieldType(rt)
	if err != nil {
		return nil, err
	}

	var getter Getter
	if get != nil {
		getter = func() any { return get() }
	}
	var setter Setter
	if set != nil {
		setter = func(v any) {
			var value T
			if v != nil {
				value = v.(T)
			}
			set(value)
		}
	}
	return NewProperty(typ, rt, getter, setter), nil
}

// Type returns the FieldType of the value the property points at.
func (p *Property) Type() FieldType {
	return p.typ
}

// InternalType returns the declared Go type of the slot.
func (p *Property) InternalType() reflect.Type {
	return p.internal
}

// IsValueType reports whether the slot holds its value by copy.
func (p *Property) IsValueType() bool {
	return isValueKind(p.internal.Kind())
}

// Path returns the location of the slot relative to its owner. Properties
// built from callbacks have an empty path.
func (p *Property) Path() Path {
	return p.acc.path()
}

func (p *Property) get() (reflect.Value, error) {
	return p.acc.get()
}

func (p *Property) set(v reflect.Value) error {
	return p.acc.set(v)
}

// GetObject returns an object view over the value the property points at.
// Its fields resolve through this property, so reassigning the slot is seen
// by the view.
func (p *Property) GetObject() (*Object, error) {
	if err := expectType("get object", p.typ, TypeObject); err != nil {
		return nil, err
	}
	return newObject(p.acc, p.internal)
}

// GetArray returns an adapter over the array currently stored in the slot.
// Cell writes store the whole array back into the slot.
func (p *Property) GetArray() (*ArrayInfo, error) {
	if err := expectType("get array", p.typ, TypeArray); err != nil {
		return nil, err
	}
	v, err := p.acc.get()
	if err != nil {
		return nil, err
	}
	return newArrayInfo(&boundAccessor{value: detach(v), owner: p.acc}, p.internal)
}

// GetList returns an adapter that re-reads the slice through this property on
// every access.
func (p *Property) GetList() (*ListInfo, error) {
	if err := expectType("get list", p.typ, TypeList); err != nil {
		return nil, err
	}
	return newListInfo(p.acc, p.internal)
}

// GetDictionary returns an adapter that re-reads the map through this
// property on every access.
func (p *Property) GetDictionary() (*DictionaryInfo, error) {
	if err := expectType("get dictionary", p.typ, TypeDictionary); err != nil {
		return nil, err
	}
	return newDictionaryInfo(p.acc, p.internal)
}

// CreateObjectInstance returns a new default value of the property's object type.
// A pointer-to-struct slot yields a pointer to a fresh zero struct.
func CreateObjectInstance[T any](p *Property) (T, error) {
	var zero T
	if err := expectType("create object", p.typ, TypeObject); err != nil {
		return zero, err
	}
	want := reflect.TypeFor[T]()
	if !p.internal.AssignableTo(want) {
		return zero, newTypeError("create", want, p.internal)
	}
	return as[T](newInstance(p.internal, TypeObject)), nil
}

// CreateArrayInstance returns a zero array of the property's array type. Go
// arrays have a fixed length, so lengths must name exactly that one dimension.
func (p *Property) CreateArrayInstance(lengths []int) (any, error) {
	if err := expectType("create array", p.typ, TypeArray); err != nil {
		return nil, err
	}
	if len(lengths) != 1 {
		return nil, newOperationError(ErrUnsupported, "create array", p.typ,
			"multi-dimensional arrays are not supported")
	}
	if lengths[0] != p.internal.Len() {
		return nil, newOperationError(ErrInvalidOperation, "create array", p.typ,
			fmt.Sprintf("length %d does not match %v", lengths[0], p.internal))
	}
	return newInstance(p.internal, TypeArray).Interface(), nil
}

// CreateListInstance returns a slice of the property's type with length zero
// valued elements.
func (p *Property) CreateListInstance(length int) (any, error) {
	if err := expectType("create list", p.typ, TypeList); err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, newOperationError(ErrInvalidOperation, "create list", p.typ,
			fmt.Sprintf("negative length %d", length))
	}
	return reflect.MakeSlice(p.internal, length, length).Interface(), nil
}

// CreateDictionaryInstance returns an empty map of the property's type.
func (p *Property) CreateDictionaryInstance() (any, error) {
	if err := expectType("create dictionary", p.typ, TypeDictionary); err != nil {
		return nil, err
	}
	return newInstance(p.internal, TypeDictionary).Interface(), nil
}

func isValueKind(k reflect.Kind) bool {
	switch k {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface,
		reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return false
	default:
		return true
	}
}
