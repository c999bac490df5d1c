package serialization

import (
	"fmt"
	"reflect"
)

// accessor reads and writes one slot of the graph. Implementations resolve the
// slot at the moment of use; nothing is cached between calls.
type accessor interface {
	get() (reflect.Value, error)
	set(v reflect.Value) error
	path() Path
}

var (
	_ accessor = (*rootAccessor)(nil)
	_ accessor = (*funcAccessor)(nil)
	_ accessor = (*elementAccessor)(nil)
	_ accessor = (*boundAccessor)(nil)
	_ accessor = (*Field)(nil)
)

// rootAccessor owns nothing: it points at an instance created elsewhere.
type rootAccessor struct {
	value reflect.Value // pointer to struct
}

func (a *rootAccessor) get() (reflect.Value, error) {
	return a.value, nil
}

func (a *rootAccessor) set(v reflect.Value) error {
	if a.value.Kind() == reflect.Ptr && !a.value.IsNil() && v.Type() == a.value.Type().Elem() {
		a.value.Elem().Set(v)
		return nil
	}
	return newOperationError(ErrInvalidOperation, "set", TypeObject, "the referenced instance cannot be replaced")
}

func (a *rootAccessor) path() Path {
	return nil
}

// funcAccessor adapts caller supplied getter and setter callbacks.
type funcAccessor struct {
	getter   Getter
	setter   Setter
	internal reflect.Type
}

func (a *funcAccessor) get() (reflect.Value, error) {
	if a.getter == nil {
		return reflect.Value{}, newOperationError(ErrInvalidOperation, "get", 0, "property has no getter")
	}
	raw := a.getter()
	if raw == nil {
		return reflect.Zero(a.internal), nil
	}
	rv := reflect.ValueOf(raw)
	if rv.Type() == a.internal {
		// not addressable: element writes go back through the setter
		return rv, nil
	}
	if !rv.Type().AssignableTo(a.internal) {
		return reflect.Value{}, newTypeError("get", rv.Type(), a.internal)
	}
	out := reflect.New(a.internal).Elem()
	out.Set(rv)
	return out, nil
}

func (a *funcAccessor) set(v reflect.Value) error {
	if a.setter == nil {
		return newOperationError(ErrInvalidOperation, "set", 0, "property has no setter")
	}
	a.setter(v.Interface())
	return nil
}

func (a *funcAccessor) path() Path {
	return nil
}

// elementAccessor is one step below its parent slot.
type elementAccessor struct {
	parent accessor
	elem   PathElement
}

func (a *elementAccessor) get() (reflect.Value, error) {
	c, err := a.parent.get()
	if err != nil {
		return reflect.Value{}, err
	}
	return a.elem.resolve(c)
}

func (a *elementAccessor) set(v reflect.Value) error {
	switch a.elem.Kind {
	case ElementKey:
		return nil
	case ElementValue:
		c, err := a.parent.get()
		if err != nil {
			return err
		}
		if !c.IsValid() || c.IsNil() {
			return fmt.Errorf("%w: dictionary is nil", ErrNilValue)
		}
		c.SetMapIndex(a.elem.key, v)
		return nil
	}

	c, err := a.parent.get()
	if err != nil {
		return err
	}
	target, err := a.elem.resolve(c)
	if err != nil {
		return err
	}
	if target.CanSet() {
		target.Set(v)
		return nil
	}

	// The container is held by value: modify a copy and store it back.
	cp := reflect.New(c.Type()).Elem()
	cp.Set(c)
	target, err = a.elem.resolve(cp)
	if err != nil {
		return err
	}
	if !target.CanSet() {
		return newOperationError(ErrInvalidOperation, "set", 0, "slot "+a.path().String()+" is not writable")
	}
	target.Set(v)
	return a.parent.set(cp)
}

func (a *elementAccessor) path() Path {
	return a.parent.path().Append(a.elem)
}

// boundAccessor holds a container value captured when an adapter was created.
// The value is detached from the slot it came from, so reassigning the slot is
// not observed. Writes to the container are stored back through owner.
type boundAccessor struct {
	value reflect.Value
	owner accessor
}

func (a *boundAccessor) get() (reflect.Value, error) {
	return a.value, nil
}

func (a *boundAccessor) set(v reflect.Value) error {
	a.value = detach(v)
	return a.owner.set(v)
}

func (a *boundAccessor) path() Path {
	return a.owner.path()
}

// detach returns a copy of v that is not addressable. Array cells reached from
// it cannot be set in place, which routes writes through the owning slot.
func detach(v reflect.Value) reflect.Value {
	if !v.IsValid() || !v.CanInterface() {
		return v
	}
	return reflect.ValueOf(v.Interface())
}
