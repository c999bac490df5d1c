package serialization

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPath_String(t *testing.T) {
	key := reflect.ValueOf("hp")

	tests := []struct {
		name string
		path Path
		want string
	}{
		{"empty", nil, ""},
		{"field", Path{fieldElement("stats", []int{0})}, "stats"},
		{"nested", Path{fieldElement("a", []int{0}), fieldElement("b", []int{1})}, "a/b"},
		{"index", Path{fieldElement("items", []int{0}), indexElement(2), fieldElement("name", []int{0})}, "items[2]/name"},
		{"value", Path{fieldElement("attrs", []int{0}), valueElement(key)}, "attrs[hp]"},
		{"key", Path{fieldElement("attrs", []int{0}), keyElement(key)}, "attrs[hp]@key"},
		{"slash key", Path{fieldElement("attrs", []int{0}), valueElement(reflect.ValueOf("a/b"))}, `attrs["a/b"]`},
		{"bracket key", Path{fieldElement("attrs", []int{0}), valueElement(reflect.ValueOf("x]y"))}, `attrs["x]y"]`},
		{"empty key", Path{fieldElement("attrs", []int{0}), valueElement(reflect.ValueOf(""))}, `attrs[""]`},
		{"int key", Path{fieldElement("ids", []int{0}), valueElement(reflect.ValueOf(7))}, "ids[7]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.path.String())
		})
	}
}

func TestPath_Append(t *testing.T) {
	base := Path{fieldElement("a", []int{0})}
	left := base.Append(indexElement(1))
	right := base.Append(indexElement(2))

	require.Len(t, base, 1)
	require.Equal(t, "a[1]", left.String())
	require.Equal(t, "a[2]", right.String())
}

func TestPath_Hash(t *testing.T) {
	a := Path{fieldElement("a", []int{0}), indexElement(1)}
	b := Path{fieldElement("a", []int{0}), indexElement(1)}
	c := Path{fieldElement("a", []int{0}), indexElement(2)}

	require.Equal(t, a.Hash(), b.Hash())
	require.NotEqual(t, a.Hash(), c.Hash())
}
