package serialization

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/zeusync/inspect/internal/core/models"
)

// FieldType is the semantic classification of a serializable value,
// independent of its concrete Go type.
type FieldType uint8

const (
	TypeInt FieldType = iota
	TypeFloat
	TypeBool
	TypeString
	TypeColor
	TypeVector2
	TypeVector3
	TypeVector4
	TypeGameObjectRef
	TypeResourceRef
	TypeObject
	TypeArray
	TypeList
	TypeDictionary
)

var fieldTypeNames = [...]string{
	TypeInt:           "Int",
	TypeFloat:         "Float",
	TypeBool:          "Bool",
	TypeString:        "String",
	TypeColor:         "Color",
	TypeVector2:       "Vector2",
	TypeVector3:       "Vector3",
	TypeVector4:       "Vector4",
	TypeGameObjectRef: "GameObjectRef",
	TypeResourceRef:   "ResourceRef",
	TypeObject:        "Object",
	TypeArray:         "Array",
	TypeList:          "List",
	TypeDictionary:    "Dictionary",
}

func (t FieldType) String() string {
	if int(t) < len(fieldTypeNames) {
		return fieldTypeNames[t]
	}
	return fmt.Sprintf("FieldType(%d)", uint8(t))
}

// IsContainer reports whether values of this type hold other addressable values.
func (t FieldType) IsContainer() bool {
	return t == TypeObject || t == TypeArray || t == TypeList || t == TypeDictionary
}

// IsReference reports whether values of this type are shared rather than owned.
func (t FieldType) IsReference() bool {
	return t == TypeGameObjectRef || t == TypeResourceRef
}

func (t FieldType) article() string {
	switch t {
	case TypeObject, TypeArray:
		return "an " + lower(t.String())
	default:
		return "a " + lower(t.String())
	}
}

func lower(s string) string {
	b := []byte(s)
	if len(b) > 0 && b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}

var (
	gameObjectType = reflect.TypeFor[models.GameObject]()
	resourceType   = reflect.TypeFor[models.Resource]()

	exactTypes = map[reflect.Type]FieldType{
		reflect.TypeFor[models.Vector2]():    TypeVector2,
		reflect.TypeFor[models.Vector3]():    TypeVector3,
		reflect.TypeFor[models.Vector4]():    TypeVector4,
		reflect.TypeFor[models.Quaternion](): TypeVector4,
		reflect.TypeFor[models.Color]():      TypeColor,
	}
)

type classification struct {
	typ FieldType
	err error
}

// fieldTypes caches the classification of every type seen so far. Every call
// site (fields, properties, adapters, cloning) goes through it.
var fieldTypes sync.Map // reflect.Type -> classification

// DetermineFieldType maps a Go type to its FieldType. The result is computed
// once per type. Types without a classification yield an error wrapping
// ErrUnsupported.
func DetermineFieldType(rt reflect.Type) (FieldType, error) {
	if rt == nil {
		return 0, fmt.Errorf("%w: nil type", ErrUnsupported)
	}
	if cached, ok := fieldTypes.Load(rt); ok {
		c := cached.(classification)
		return c.typ, c.err
	}

	typ, err := classify(rt)
	fieldTypes.Store(rt, classification{typ: typ, err: err})
	return typ, err
}

// classify is an ordered decision list; the array gate must stay first.
func classify(rt reflect.Type) (FieldType, error) {
	if rt.Kind() == reflect.Array {
		return TypeArray, nil
	}

	switch rt.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return TypeInt, nil
	case reflect.Bool:
		return TypeBool, nil
	case reflect.Float32, reflect.Float64:
		return TypeFloat, nil
	case reflect.String:
		return TypeString, nil
	}

	if typ, ok := exactTypes[rt]; ok {
		return typ, nil
	}

	if rt.Implements(gameObjectType) {
		return TypeGameObjectRef, nil
	}
	if rt.Implements(resourceType) {
		return TypeResourceRef, nil
	}

	switch rt.Kind() {
	case reflect.Slice:
		return TypeList, nil
	case reflect.Map:
		return TypeDictionary, nil
	case reflect.Struct:
		if isGenericInstance(rt) {
			break
		}
		return TypeObject, nil
	case reflect.Ptr:
		if rt.Elem().Kind() == reflect.Struct && !isGenericInstance(rt.Elem()) {
			return TypeObject, nil
		}
	}

	return 0, fmt.Errorf("%w: cannot determine field type of %v", ErrUnsupported, rt)
}

// isGenericInstance reports whether rt is an instantiated generic type such as
// Pair[string,int]. Only slices and maps are accepted as generic containers.
func isGenericInstance(rt reflect.Type) bool {
	return strings.ContainsRune(rt.Name(), '[')
}
