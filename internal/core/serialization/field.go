package serialization

import (
	"reflect"
)

// Flags describe how a field takes part in serialization and inspection.
type Flags uint8

const (
	FlagSerializable Flags = 1 << iota
	FlagInspectable
)

// Field is one declared field of a live object. It reads and writes the
// parent's instance directly; there is no intermediate copy.
type Field struct {
	parent   *Object
	name     string
	flags    Flags
	typ      FieldType
	internal reflect.Type
	index    []int
}

func (f *Field) Name() string {
	return f.name
}

func (f *Field) Type() FieldType {
	return f.typ
}

func (f *Field) Flags() Flags {
	return f.flags
}

func (f *Field) Inspectable() bool {
	return f.flags&FlagInspectable != 0
}

func (f *Field) Serializable() bool {
	return f.flags&FlagSerializable != 0
}

func (f *Field) InternalType() reflect.Type {
	return f.internal
}

// Parent returns the object the field belongs to.
func (f *Field) Parent() *Object {
	return f.parent
}

func (f *Field) Path() Path {
	return f.path()
}

// Property returns a detached property addressing this field.
func (f *Field) Property() *Property {
	return &Property{
		typ:      f.typ,
		internal: f.internal,
		acc:      &elementAccessor{parent: f.parent.owner, elem: f.element()},
	}
}

// GetSerializableArrayInfo returns an adapter bound to the array the field
// holds right now.
func (f *Field) GetSerializableArrayInfo() (*ArrayInfo, error) {
	if err := expectType("get array info", f.typ, TypeArray); err != nil {
		return nil, err
	}
	v, err := f.get()
	if err != nil {
		return nil, err
	}
	return newArrayInfo(&boundAccessor{value: detach(v), owner: f}, f.internal)
}

// GetSerializableListInfo returns an adapter bound to the slice the field
// holds right now. Unlike Property.GetList, assigning a different slice to the
// field afterwards is not seen by the adapter.
func (f *Field) GetSerializableListInfo() (*ListInfo, error) {
	if err := expectType("get list info", f.typ, TypeList); err != nil {
		return nil, err
	}
	v, err := f.get()
	if err != nil {
		return nil, err
	}
	return newListInfo(&boundAccessor{value: detach(v), owner: f}, f.internal)
}

// GetSerializableDictionaryInfo returns an adapter bound to the map the field
// holds right now.
func (f *Field) GetSerializableDictionaryInfo() (*DictionaryInfo, error) {
	if err := expectType("get dictionary info", f.typ, TypeDictionary); err != nil {
		return nil, err
	}
	v, err := f.get()
	if err != nil {
		return nil, err
	}
	return newDictionaryInfo(&boundAccessor{value: detach(v), owner: f}, f.internal)
}

func (f *Field) element() PathElement {
	return fieldElement(f.name, f.index)
}

func (f *Field) get() (reflect.Value, error) {
	inst, err := f.parent.instance()
	if err != nil {
		return reflect.Value{}, err
	}
	return inst.FieldByIndexErr(f.index)
}

func (f *Field) set(v reflect.Value) error {
	inst, err := f.parent.instance()
	if err != nil {
		return err
	}
	if target := inst.FieldByIndex(f.index); target.CanSet() {
		target.Set(v)
		return nil
	}

	// instance held by value, e.g. a struct stored in a map
	cp := reflect.New(inst.Type()).Elem()
	cp.Set(inst)
	cp.FieldByIndex(f.index).Set(v)
	return f.parent.owner.set(cp)
}

func (f *Field) path() Path {
	return f.parent.owner.path().Append(f.element())
}
