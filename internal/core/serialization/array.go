package serialization

import (
	"reflect"
)

// ArrayInfo issues properties for the cells of a fixed-size array. It is bound
// to the array value captured when it was created; a cell write stores the
// modified array back into the slot it came from.
//
// Indices are not checked when a property is issued; an out of range index
// surfaces as ErrIndexOutOfRange when the property is used.
type ArrayInfo struct {
	src      accessor
	internal reflect.Type
	elemType FieldType
}

func newArrayInfo(src accessor, internal reflect.Type) (*ArrayInfo, error) {
	elemType, err := DetermineFieldType(internal.Elem())
	if err != nil {
		return nil, err
	}
	return &ArrayInfo{
		src:      src,
		internal: internal,
		elemType: elemType,
	}, nil
}

// GetProperty returns a property for the cell at index.
func (a *ArrayInfo) GetProperty(index int) *Property {
	return &Property{
		typ:      a.elemType,
		internal: a.internal.Elem(),
		acc:      &elementAccessor{parent: a.src, elem: indexElement(index)},
	}
}

// GetLength returns the number of cells.
func (a *ArrayInfo) GetLength() int {
	return a.internal.Len()
}

// ElementType returns the Go type of the cells.
func (a *ArrayInfo) ElementType() reflect.Type {
	return a.internal.Elem()
}

// ElementPropertyType returns the FieldType of the cells.
func (a *ArrayInfo) ElementPropertyType() FieldType {
	return a.elemType
}
