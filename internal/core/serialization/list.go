package serialization

import (
	"reflect"
)

// ListInfo issues properties for the cells of a slice. The slice is fetched
// from the parent slot on every access, so a list created or replaced after
// the adapter was made is observed.
//
// Indices are not checked when a property is issued. A property for index i
// reads cell i of whatever slice the parent holds at the time of use.
type ListInfo struct {
	parent   accessor
	internal reflect.Type
	elemType FieldType
}

func newListInfo(parent accessor, internal reflect.Type) (*ListInfo, error) {
	elemType, err := DetermineFieldType(internal.Elem())
	if err != nil {
		return nil, err
	}
	return &ListInfo{
		parent:   parent,
		internal: internal,
		elemType: elemType,
	}, nil
}

// GetProperty returns a property for the cell at index.
func (l *ListInfo) GetProperty(index int) *Property {
	return &Property{
		typ:      l.elemType,
		internal: l.internal.Elem(),
		acc:      &elementAccessor{parent: l.parent, elem: indexElement(index)},
	}
}

// GetLength returns the current length, or 0 when there is no list.
func (l *ListInfo) GetLength() int {
	v, err := l.parent.get()
	if err != nil || !v.IsValid() || v.IsNil() {
		return 0
	}
	return v.Len()
}

// ElementType returns the Go type of the cells.
func (l *ListInfo) ElementType() reflect.Type {
	return l.internal.Elem()
}

// ElementPropertyType returns the FieldType of the cells.
func (l *ListInfo) ElementPropertyType() FieldType {
	return l.elemType
}
