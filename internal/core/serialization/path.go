package serialization

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ElementKind discriminates the PathElement union.
type ElementKind uint8

const (
	// ElementField addresses a struct field.
	ElementField ElementKind = iota
	// ElementIndex addresses an array or list cell.
	ElementIndex
	// ElementValue addresses the value stored under a dictionary key.
	ElementValue
	// ElementKey addresses a dictionary key itself. Keys are read-only.
	ElementKey
)

// PathElement is one step from a container to the value it holds.
type PathElement struct {
	Kind  ElementKind
	Name  string // ElementField
	Index int    // ElementIndex
	Key   any    // ElementValue, ElementKey

	field []int
	key   reflect.Value
}

// Path locates a slot relative to the owner it was issued from. It is a plain
// value: copying or storing it never aliases the graph.
type Path []PathElement

func fieldElement(name string, index []int) PathElement {
	return PathElement{Kind: ElementField, Name: name, field: index}
}

func indexElement(i int) PathElement {
	return PathElement{Kind: ElementIndex, Index: i}
}

func valueElement(key reflect.Value) PathElement {
	return PathElement{Kind: ElementValue, Key: key.Interface(), key: key}
}

func keyElement(key reflect.Value) PathElement {
	return PathElement{Kind: ElementKey, Key: key.Interface(), key: key}
}

// Append returns a new path; p is left untouched.
func (p Path) Append(e PathElement) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, e)
}

// String renders the path in the form accepted by Object.FindProperty,
// e.g. `inventory/items[2]/stats[hp]`. Dictionary key slots end in `@key`.
func (p Path) String() string {
	var sb strings.Builder
	for _, e := range p {
		switch e.Kind {
		case ElementField:
			if sb.Len() > 0 {
				sb.WriteByte('/')
			}
			sb.WriteString(e.Name)
		case ElementIndex:
			sb.WriteByte('[')
			sb.WriteString(strconv.Itoa(e.Index))
			sb.WriteByte(']')
		case ElementValue:
			fmt.Fprintf(&sb, "[%s]", e.keyString())
		case ElementKey:
			fmt.Fprintf(&sb, "[%s]@key", e.keyString())
		}
	}
	return sb.String()
}

// keyString renders a dictionary key. String keys that would not survive
// FindProperty unquoted are written as Go string literals.
func (e PathElement) keyString() string {
	if e.key.IsValid() && e.key.Kind() == reflect.String {
		s := e.key.String()
		if quoted := strconv.Quote(s); s == "" || strings.ContainsAny(s, `/[]"`) || quoted[1:len(quoted)-1] != s {
			return quoted
		}
		return s
	}
	return fmt.Sprint(e.Key)
}

// Hash is a stable 64-bit digest of String, suitable as a map key.
func (p Path) Hash() uint64 {
	return xxhash.Sum64String(p.String())
}

// resolve applies the element to the container value c.
func (e PathElement) resolve(c reflect.Value) (reflect.Value, error) {
	if !c.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: container is absent", ErrNilValue)
	}
	switch e.Kind {
	case ElementField:
		s, err := indirect(c)
		if err != nil {
			return reflect.Value{}, err
		}
		v, err := s.FieldByIndexErr(e.field)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: field %s: %v", ErrNilValue, e.Name, err)
		}
		return v, nil

	case ElementIndex:
		if c.Kind() == reflect.Slice && c.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: list is nil", ErrNilValue)
		}
		if e.Index < 0 || e.Index >= c.Len() {
			return reflect.Value{}, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, e.Index, c.Len())
		}
		return c.Index(e.Index), nil

	case ElementValue, ElementKey:
		if c.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: dictionary is nil", ErrNilValue)
		}
		v := c.MapIndex(e.key)
		if !v.IsValid() {
			return reflect.Value{}, fmt.Errorf("%w: %v", ErrKeyNotFound, e.Key)
		}
		if e.Kind == ElementKey {
			return e.key, nil
		}
		return v, nil
	}
	return reflect.Value{}, fmt.Errorf("%w: unknown path element kind %d", ErrInvalidOperation, e.Kind)
}

// indirect dereferences a pointer to a struct.
func indirect(v reflect.Value) (reflect.Value, error) {
	if !v.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: object is absent", ErrNilValue)
	}
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: object pointer is nil", ErrNilValue)
		}
		return v.Elem(), nil
	}
	return v, nil
}
