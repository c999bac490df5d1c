package serialization

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Identity identifies an instance by its type and address. Two objects over
// the same instance share an Identity; graph walks use it as a visited key.
type Identity struct {
	Type reflect.Type
	Addr uintptr
}

// Object exposes the fields of one struct instance. The set of fields mirrors
// the declared struct and cannot change.
type Object struct {
	id     uuid.UUID
	owner  accessor
	typ    reflect.Type
	fields []*Field
	byName map[string]*Field
}

// NewObject creates an object over instance, which must be a non-nil pointer
// to a struct. The object does not own the instance.
func NewObject(instance any) (*Object, error) {
	rv := reflect.ValueOf(instance)
	if !rv.IsValid() || rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: expected a non-nil pointer to a struct, got %T", ErrInvalidInstance, instance)
	}
	return newObject(&rootAccessor{value: rv}, rv.Type())
}

func newObject(owner accessor, typ reflect.Type) (*Object, error) {
	structType := typ
	if structType.Kind() == reflect.Ptr {
		structType = structType.Elem()
	}

	l, err := layoutOf(structType)
	if err != nil {
		return nil, err
	}

	o := &Object{
		id:     uuid.New(),
		owner:  owner,
		typ:    typ,
		fields: make([]*Field, 0, len(l.fields)),
		byName: make(map[string]*Field, len(l.fields)),
	}
	for _, fl := range l.fields {
		f := &Field{
			parent:   o,
			name:     fl.name,
			flags:    fl.flags,
			typ:      fl.typ,
			internal: fl.internal,
			index:    fl.index,
		}
		o.fields = append(o.fields, f)
		o.byName[f.name] = f
	}
	return o, nil
}

// ID identifies this object view. Each call to NewObject yields a new ID.
func (o *Object) ID() uuid.UUID {
	return o.id
}

// Type returns the declared type of the instance (a struct or pointer to struct).
func (o *Object) Type() reflect.Type {
	return o.typ
}

// Fields returns the fields in declaration order.
func (o *Object) Fields() []*Field {
	out := make([]*Field, len(o.fields))
	copy(out, o.fields)
	return out
}

// Field returns the field with the given name.
func (o *Object) Field(name string) (*Field, bool) {
	f, ok := o.byName[name]
	return f, ok
}

// ReferencedObject returns the instance the object currently points at, or nil.
func (o *Object) ReferencedObject() any {
	v, err := o.owner.get()
	if err != nil || !v.IsValid() {
		return nil
	}
	return v.Interface()
}

// Path returns the location of the instance relative to the root object.
func (o *Object) Path() Path {
	return o.owner.path()
}

// Identity returns the identity of the referenced instance. It reports false
// when the instance is nil or held by value somewhere it has no address.
func (o *Object) Identity() (Identity, bool) {
	v, err := o.owner.get()
	if err != nil || !v.IsValid() {
		return Identity{}, false
	}
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return Identity{}, false
		}
		return Identity{Type: v.Type(), Addr: v.Pointer()}, true
	}
	if v.CanAddr() {
		return Identity{Type: reflect.PointerTo(v.Type()), Addr: v.Addr().Pointer()}, true
	}
	return Identity{}, false
}

// instance returns the struct value, dereferencing pointers.
func (o *Object) instance() (reflect.Value, error) {
	v, err := o.owner.get()
	if err != nil {
		return reflect.Value{}, err
	}
	return indirect(v)
}

// FindProperty resolves a path such as `inventory/items[2]/stats[hp]`.
// Segments name fields; bracketed suffixes index arrays and lists or look up
// dictionary keys, parsed according to the dictionary's key type. String keys
// holding `/`, brackets or quotes are written as Go string literals,
// e.g. `tags["a/b"]`, which is also how Path.String renders them.
func (o *Object) FindProperty(path string) (*Property, error) {
	segments, err := splitPath(path)
	if err != nil {
		return nil, err
	}

	obj := o
	var current *Property
	for _, seg := range segments {
		if current != nil {
			if obj, err = current.GetObject(); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrPropertyNotFound, path, err)
			}
		}
		f, ok := obj.Field(seg.name)
		if !ok {
			return nil, fmt.Errorf("%w: %s: no field %q", ErrPropertyNotFound, path, seg.name)
		}
		current = f.Property()

		for _, key := range seg.keys {
			if current, err = lookupElement(current, key); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrPropertyNotFound, path, err)
			}
		}
	}
	return current, nil
}

type segment struct {
	name string
	keys []string
}

// splitPath breaks path into field segments. Slashes inside brackets belong
// to the key; a quoted key may also hold `]`.
func splitPath(path string) ([]segment, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrPropertyNotFound)
	}

	var (
		segments []segment
		cur      segment
		start    int
		inKeys   bool
	)
	flush := func(end int) error {
		if !inKeys {
			cur.name = path[start:end]
		}
		if cur.name == "" {
			return fmt.Errorf("%w: empty segment in %q", ErrPropertyNotFound, path)
		}
		segments = append(segments, cur)
		cur, inKeys = segment{}, false
		return nil
	}

	for i := 0; i < len(path); {
		switch c := path[i]; {
		case c == '/':
			if err := flush(i); err != nil {
				return nil, err
			}
			i++
			start = i
		case c == '[':
			if !inKeys {
				cur.name, inKeys = path[start:i], true
			}
			key, n, err := scanKey(path[i+1:])
			if err != nil {
				return nil, fmt.Errorf("%w: %v in %q", ErrPropertyNotFound, err, path)
			}
			cur.keys = append(cur.keys, key)
			i += 1 + n
		case inKeys:
			return nil, fmt.Errorf("%w: malformed segment in %q", ErrPropertyNotFound, path)
		default:
			i++
		}
	}
	if err := flush(len(path)); err != nil {
		return nil, err
	}
	return segments, nil
}

// scanKey reads a key up to and including its closing bracket and reports how
// many bytes it consumed. Quoted keys are returned with their quotes.
func scanKey(s string) (key string, n int, err error) {
	if strings.HasPrefix(s, `"`) {
		quoted, err := strconv.QuotedPrefix(s)
		if err != nil {
			return "", 0, errors.New("bad quoted key")
		}
		if !strings.HasPrefix(s[len(quoted):], "]") {
			return "", 0, errors.New("unterminated key")
		}
		return quoted, len(quoted) + 1, nil
	}
	end := strings.IndexByte(s, ']')
	if end < 0 {
		return "", 0, errors.New("unterminated key")
	}
	return s[:end], end + 1, nil
}

func lookupElement(p *Property, key string) (*Property, error) {
	switch p.Type() {
	case TypeArray, TypeList:
		idx, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("index %q is not a number", key)
		}
		if p.Type() == TypeArray {
			a, err := p.GetArray()
			if err != nil {
				return nil, err
			}
			if idx < 0 || idx >= a.GetLength() {
				return nil, fmt.Errorf("index %d out of range", idx)
			}
			return a.GetProperty(idx), nil
		}
		l, err := p.GetList()
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= l.GetLength() {
			return nil, fmt.Errorf("index %d out of range", idx)
		}
		return l.GetProperty(idx), nil

	case TypeDictionary:
		d, err := p.GetDictionary()
		if err != nil {
			return nil, err
		}
		k, err := parseKey(key, d.KeyType())
		if err != nil {
			return nil, err
		}
		_, value := d.GetProperty(k)
		if value == nil {
			return nil, fmt.Errorf("key %q not present", key)
		}
		return value, nil
	}
	return nil, fmt.Errorf("%s is not indexable", p.Type())
}

// parseKey converts the textual key of a path into a value of type kt.
func parseKey(s string, kt reflect.Type) (any, error) {
	var v reflect.Value
	switch kt.Kind() {
	case reflect.String:
		if unquoted, err := strconv.Unquote(s); err == nil {
			s = unquoted
		}
		v = reflect.ValueOf(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, kt.Bits())
		if err != nil {
			return nil, err
		}
		v = reflect.ValueOf(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, kt.Bits())
		if err != nil {
			return nil, err
		}
		v = reflect.ValueOf(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(s, kt.Bits())
		if err != nil {
			return nil, err
		}
		v = reflect.ValueOf(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, err
		}
		v = reflect.ValueOf(b)
	default:
		return nil, fmt.Errorf("%w: keys of type %v cannot be written in a path", ErrUnsupported, kt)
	}
	return v.Convert(kt).Interface(), nil
}
