// Package deepcopy provides a reflection based deep copy that is safe for
// cyclic graphs and can keep selected types shared between the original and
// the copy.
package deepcopy

import "reflect"

// Option configures a copy operation.
type Option func(*copier)

// WithShared marks values whose type satisfies pred as references: they are
// copied as-is instead of being duplicated. The root value is always copied.
func WithShared(pred func(reflect.Type) bool) Option {
	return func(c *copier) {
		c.shared = pred
	}
}

type visit struct {
	typ reflect.Type
	ptr uintptr
}

type copier struct {
	shared func(reflect.Type) bool
	seen   map[visit]reflect.Value
}

// Copy returns a deep copy of src. Pointers, slices and maps reachable more
// than once are copied once and the copy is reused, so cycles terminate and
// aliasing inside the graph is preserved.
func Copy(src any, opts ...Option) any {
	if src == nil {
		return nil
	}
	out := Value(reflect.ValueOf(src), opts...)
	if !out.IsValid() {
		return nil
	}
	return out.Interface()
}

// Value is Copy for callers that already hold a reflect.Value.
func Value(src reflect.Value, opts ...Option) reflect.Value {
	c := &copier{seen: make(map[visit]reflect.Value)}
	for _, opt := range opts {
		opt(c)
	}
	return c.copy(src, true)
}

func (c *copier) isShared(t reflect.Type) bool {
	return c.shared != nil && c.shared(t)
}

func (c *copier) copy(value reflect.Value, root bool) reflect.Value {
	if !value.IsValid() {
		return value
	}
	if !root && c.isShared(value.Type()) {
		return value
	}

	switch value.Kind() {
	case reflect.Map:
		if value.IsNil() {
			return reflect.Zero(value.Type())
		}
		v := visit{typ: value.Type(), ptr: value.Pointer()}
		if cached, ok := c.seen[v]; ok {
			return cached
		}

		cloned := reflect.MakeMapWithSize(value.Type(), value.Len())
		c.seen[v] = cloned
		iter := value.MapRange()
		for iter.Next() {
			cloned.SetMapIndex(c.copy(iter.Key(), false), c.copy(iter.Value(), false))
		}
		return cloned

	case reflect.Slice:
		if value.IsNil() {
			return reflect.Zero(value.Type())
		}
		v := visit{typ: value.Type(), ptr: value.Pointer()}
		if cached, ok := c.seen[v]; ok && cached.Len() == value.Len() {
			return cached
		}

		cloned := reflect.MakeSlice(value.Type(), value.Len(), value.Len())
		c.seen[v] = cloned
		for i := 0; i < value.Len(); i++ {
			cloned.Index(i).Set(c.copy(value.Index(i), false))
		}
		return cloned

	case reflect.Array:
		cloned := reflect.New(value.Type()).Elem()
		for i := 0; i < value.Len(); i++ {
			cloned.Index(i).Set(c.copy(value.Index(i), false))
		}
		return cloned

	case reflect.Ptr:
		if value.IsNil() {
			return reflect.Zero(value.Type())
		}
		v := visit{typ: value.Type(), ptr: value.Pointer()}
		if cached, ok := c.seen[v]; ok {
			return cached
		}

		cloned := reflect.New(value.Type().Elem())
		c.seen[v] = cloned
		cloned.Elem().Set(c.copy(value.Elem(), false))
		return cloned

	case reflect.Interface:
		if value.IsNil() {
			return reflect.Zero(value.Type())
		}
		out := reflect.New(value.Type()).Elem()
		out.Set(c.copy(value.Elem(), false))
		return out

	case reflect.Struct:
		cloned := reflect.New(value.Type()).Elem()
		// unexported fields stay shallow
		cloned.Set(value)
		for i := 0; i < value.NumField(); i++ {
			dst := cloned.Field(i)
			if !dst.CanSet() {
				continue
			}
			dst.Set(c.copy(value.Field(i), false))
		}
		return cloned

	default:
		return value
	}
}
