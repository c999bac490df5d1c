package serialization

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewObject_InvalidInstance(t *testing.T) {
	tests := []struct {
		name     string
		instance any
	}{
		{"nil", nil},
		{"struct value", player{}},
		{"nil pointer", (*player)(nil)},
		{"pointer to scalar", new(int)},
		{"slice", []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewObject(tt.instance)
			require.ErrorIs(t, err, ErrInvalidInstance)
		})
	}
}

func TestNewObject_UnsupportedField(t *testing.T) {
	_, err := NewObject(&unsupportedHolder{})
	require.ErrorIs(t, err, ErrUnsupported)
	require.Contains(t, err.Error(), "Ch")
}

func TestObject_Fields(t *testing.T) {
	p := newPlayer()
	obj := mustObject(p)

	var names []string
	for _, f := range obj.Fields() {
		names = append(names, f.Name())
	}
	require.Equal(t, []string{
		"Name", "Level", "Health", "Alive", "Team", "Tint", "Position", "Rotation",
		"Target", "Texture", "Stats", "Home", "Slots", "Scores", "Items",
		"Attributes", "Loadout", "secret", "Cache",
	}, names)

	types := map[string]FieldType{
		"Name":       TypeString,
		"Level":      TypeInt,
		"Health":     TypeFloat,
		"Alive":      TypeBool,
		"Tint":       TypeColor,
		"Position":   TypeVector3,
		"Rotation":   TypeVector4,
		"Target":     TypeGameObjectRef,
		"Texture":    TypeResourceRef,
		"Stats":      TypeObject,
		"Home":       TypeObject,
		"Slots":      TypeArray,
		"Scores":     TypeList,
		"Attributes": TypeDictionary,
	}
	for name, want := range types {
		require.Equal(t, want, mustField(obj, name).Type(), name)
	}

	_, ok := obj.Field("Ignored")
	require.False(t, ok)
	_, ok = obj.Field("Both")
	require.False(t, ok)
	_, ok = obj.Field("internal")
	require.False(t, ok)

	fields := obj.Fields()
	fields[0] = nil
	require.NotNil(t, obj.Fields()[0])
}

func TestObject_Identity(t *testing.T) {
	p := newPlayer()
	a := mustObject(p)
	b := mustObject(p)

	require.NotEqual(t, a.ID(), b.ID())
	require.Same(t, p, a.ReferencedObject())

	ida, ok := a.Identity()
	require.True(t, ok)
	idb, ok := b.Identity()
	require.True(t, ok)
	require.Equal(t, ida, idb)

	other, ok := mustObject(newPlayer()).Identity()
	require.True(t, ok)
	require.NotEqual(t, ida, other)

	t.Run("nested by value", func(t *testing.T) {
		nested, err := mustField(a, "Stats").Property().GetObject()
		require.NoError(t, err)

		id, ok := nested.Identity()
		require.True(t, ok)
		require.NotEqual(t, ida, id)
	})

	t.Run("nil pointer", func(t *testing.T) {
		nested, err := mustField(a, "Home").Property().GetObject()
		require.NoError(t, err)

		_, ok := nested.Identity()
		require.False(t, ok)
	})
}

func TestObject_FindProperty(t *testing.T) {
	p := newPlayer()
	p.Home = &stats{HP: 4}
	obj := mustObject(p)

	t.Run("resolves", func(t *testing.T) {
		tests := []struct {
			path string
			want any
		}{
			{"Name", "alice"},
			{"Stats/HP", 10},
			{"Home/HP", 4},
			{"Slots[2]", 3},
			{"Scores[2]", 99},
			{"Items[1]/Name", "arrow"},
			{"Attributes[str]", 5},
			{`Attributes["dex"]`, 7},
			{"Loadout[sword]/Count", 1},
		}

		for _, tt := range tests {
			t.Run(tt.path, func(t *testing.T) {
				prop, err := obj.FindProperty(tt.path)
				require.NoError(t, err)

				v, err := GetValue[any](prop)
				require.NoError(t, err)
				require.Equal(t, tt.want, v)
			})
		}
	})

	t.Run("writes", func(t *testing.T) {
		prop, err := obj.FindProperty("Items[0]/Count")
		require.NoError(t, err)
		require.NoError(t, SetValue(prop, 5))
		require.Equal(t, 5, p.Items[0].Count)

		prop, err = obj.FindProperty("Loadout[sword]/Count")
		require.NoError(t, err)
		require.NoError(t, SetValue(prop, 2))
		require.Equal(t, 2, p.Loadout["sword"].Count)
	})

	t.Run("path round trip", func(t *testing.T) {
		for _, path := range []string{"Items[1]/Name", "Attributes[str]", "Stats/Speed"} {
			prop, err := obj.FindProperty(path)
			require.NoError(t, err)
			require.Equal(t, path, prop.Path().String())
		}
	})

	t.Run("keys with separators", func(t *testing.T) {
		q := newPlayer()
		q.Attributes["a/b"] = 1
		q.Attributes["x]y"] = 2
		q.Attributes[`say "hi"`] = 3
		qobj := mustObject(q)

		tests := []struct {
			path string
			want int
		}{
			{`Attributes["a/b"]`, 1},
			{`Attributes["x]y"]`, 2},
			{`Attributes["say \"hi\""]`, 3},
		}
		for _, tt := range tests {
			t.Run(tt.path, func(t *testing.T) {
				prop, err := qobj.FindProperty(tt.path)
				require.NoError(t, err)

				v, err := GetValue[int](prop)
				require.NoError(t, err)
				require.Equal(t, tt.want, v)
				require.Equal(t, tt.path, prop.Path().String())

				again, err := qobj.FindProperty(prop.Path().String())
				require.NoError(t, err)
				require.Equal(t, prop.Path().Hash(), again.Path().Hash())
			})
		}
	})

	t.Run("fails", func(t *testing.T) {
		for _, path := range []string{
			"", "Missing", "Stats/Missing", "Scores[10]", "Scores[x]",
			"Attributes[int]", "Name[0]", "Scores[1", "Name/Length",
			"Items[0]x", `Attributes["open]`, "Stats//HP",
		} {
			_, err := obj.FindProperty(path)
			require.ErrorIs(t, err, ErrPropertyNotFound, path)
		}
	})
}
