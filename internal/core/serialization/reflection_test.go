package serialization

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zoobzio/sentinel"

	"github.com/zeusync/inspect/internal/core/serialization/internal/sample"
)

type Settings struct {
	Volume int
	Title  string
}

func fieldNames(obj *Object) []string {
	var names []string
	for _, f := range obj.Fields() {
		names = append(names, f.Name())
	}
	return names
}

type Registered struct {
	Count int
	Label string `inspect:"label,hidden"`
	Skip  bool   `inspect:"-"`
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag   string
		name  string
		flags Flags
		skip  bool
	}{
		{"", "Field", FlagSerializable | FlagInspectable, false},
		{"alias", "alias", FlagSerializable | FlagInspectable, false},
		{",hidden", "Field", FlagSerializable, false},
		{",transient", "Field", FlagInspectable, false},
		{"x, hidden, transient", "", 0, true},
		{"-", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			name, flags, skip := parseTag("Field", tt.tag)
			require.Equal(t, tt.skip, skip)
			if skip {
				return
			}
			require.Equal(t, tt.name, name)
			require.Equal(t, tt.flags, flags)
		})
	}
}

func TestRegister(t *testing.T) {
	require.NoError(t, Register[Registered]())

	obj, err := NewObject(&Registered{Count: 2, Label: "x"})
	require.NoError(t, err)

	fields := obj.Fields()
	require.Len(t, fields, 2)
	require.Equal(t, "Count", fields[0].Name())
	require.Equal(t, "label", fields[1].Name())
	require.False(t, fields[1].Inspectable())

	err = Register[int]()
	require.ErrorIs(t, err, ErrInvalidInstance)
}

func TestRegister_SameNameOtherPackage(t *testing.T) {
	require.NoError(t, Register[sample.Settings]())
	require.NoError(t, Register[Settings]())

	obj, err := NewObject(&Settings{Volume: 3, Title: "x"})
	require.NoError(t, err)
	require.Equal(t, []string{"Volume", "Title"}, fieldNames(obj))

	other, err := NewObject(&sample.Settings{Ratio: 0.5})
	require.NoError(t, err)
	require.Equal(t, []string{"Muted", "Ratio", "Tags"}, fieldNames(other))
}

func TestDescribe(t *testing.T) {
	t.Run("uses scanned metadata", func(t *testing.T) {
		sentinel.Scan[sample.Settings]()

		rt := reflect.TypeFor[sample.Settings]()
		meta := describe(rt)
		require.Equal(t, "Settings", meta.TypeName)
		require.Equal(t, rt.PkgPath(), meta.PackageName)
		require.Len(t, meta.Fields, 3)
	})

	t.Run("ignores same-named type", func(t *testing.T) {
		sentinel.Scan[sample.Settings]()

		rt := reflect.TypeFor[Settings]()
		meta := describe(rt)
		require.Equal(t, rt.PkgPath(), meta.PackageName)
		require.Len(t, meta.Fields, 2)
		require.Equal(t, "Volume", meta.Fields[0].Name)
	})
}

func TestLayoutOf_Concurrent(t *testing.T) {
	type concurrent struct {
		A int
		B []string
	}
	rt := reflect.TypeFor[concurrent]()

	var wg sync.WaitGroup
	results := make([]*layout, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l, err := layoutOf(rt)
			if err == nil {
				results[i] = l
			}
		}(i)
	}
	wg.Wait()

	for _, l := range results {
		require.NotNil(t, l)
		require.Same(t, results[0], l)
		require.Len(t, l.fields, 2)
	}
}
