package serialization

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"

	"github.com/zeusync/inspect/internal/core/observability/log"
)

// DictionaryInfo issues key and value properties for the entries of a map.
// Like ListInfo it re-reads the map from its parent slot on every access.
type DictionaryInfo struct {
	parent    accessor
	internal  reflect.Type
	keyType   FieldType
	valueType FieldType
}

func newDictionaryInfo(parent accessor, internal reflect.Type) (*DictionaryInfo, error) {
	keyType, err := DetermineFieldType(internal.Key())
	if err != nil {
		return nil, err
	}
	valueType, err := DetermineFieldType(internal.Elem())
	if err != nil {
		return nil, err
	}
	return &DictionaryInfo{
		parent:    parent,
		internal:  internal,
		keyType:   keyType,
		valueType: valueType,
	}, nil
}

// GetProperty returns properties for the key and the value stored under key.
// When there is no map, key is absent or key is not of the map's key type,
// both results are nil. The key property ignores writes.
func (d *DictionaryInfo) GetProperty(key any) (keyProperty, valueProperty *Property) {
	m, err := d.parent.get()
	if err != nil || !m.IsValid() || m.IsNil() || key == nil {
		return nil, nil
	}

	k, err := coerce(reflect.ValueOf(&key).Elem(), d.internal.Key())
	if err != nil {
		logger().Warn("dictionary key rejected",
			log.String("dictionary", d.internal.String()),
			log.Error(err),
		)
		return nil, nil
	}
	if !m.MapIndex(k).IsValid() {
		return nil, nil
	}

	keyProperty = &Property{
		typ:      d.keyType,
		internal: d.internal.Key(),
		acc:      &elementAccessor{parent: d.parent, elem: keyElement(k)},
	}
	valueProperty = &Property{
		typ:      d.valueType,
		internal: d.internal.Elem(),
		acc:      &elementAccessor{parent: d.parent, elem: valueElement(k)},
	}
	return keyProperty, valueProperty
}

// GetLength returns the number of entries, or 0 when there is no map.
func (d *DictionaryInfo) GetLength() int {
	m, err := d.parent.get()
	if err != nil || !m.IsValid() || m.IsNil() {
		return 0
	}
	return m.Len()
}

// Keys returns the current keys in a stable display order.
func (d *DictionaryInfo) Keys() []any {
	m, err := d.parent.get()
	if err != nil || !m.IsValid() || m.IsNil() {
		return nil
	}

	keys := m.MapKeys()
	slices.SortFunc(keys, compareKeys)

	out := make([]any, len(keys))
	for i, k := range keys {
		out[i] = k.Interface()
	}
	return out
}

func (d *DictionaryInfo) KeyType() reflect.Type {
	return d.internal.Key()
}

func (d *DictionaryInfo) ValueType() reflect.Type {
	return d.internal.Elem()
}

func (d *DictionaryInfo) KeyPropertyType() FieldType {
	return d.keyType
}

func (d *DictionaryInfo) ValuePropertyType() FieldType {
	return d.valueType
}

func compareKeys(a, b reflect.Value) int {
	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case reflect.String:
		return cmp.Compare(a.String(), b.String())
	case reflect.Bool:
		switch {
		case a.Bool() == b.Bool():
			return 0
		case !a.Bool():
			return -1
		default:
			return 1
		}
	default:
		return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
	}
}
