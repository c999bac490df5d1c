package history

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeusync/inspect/internal/core/models"
	"github.com/zeusync/inspect/internal/core/observability/log"
	"github.com/zeusync/inspect/internal/core/serialization"
)

type crate struct {
	Label    string
	Contents []string
	Weights  map[string]float64
	Texture  *models.Asset
}

func newCrate() *crate {
	return &crate{
		Label:    "supplies",
		Contents: []string{"rope", "lamp"},
		Weights:  map[string]float64{"rope": 1.5},
		Texture:  models.NewAsset("wood", "textures/wood.png"),
	}
}

func field(t *testing.T, obj *serialization.Object, name string) *serialization.Field {
	t.Helper()
	f, ok := obj.Field(name)
	require.True(t, ok, name)
	return f
}

func TestStack_Undo(t *testing.T) {
	c := newCrate()
	obj, err := serialization.NewObject(c)
	require.NoError(t, err)

	s := NewStack(0, log.NewNop())
	label := field(t, obj, "Label")
	contents := field(t, obj, "Contents")

	require.NoError(t, s.Snapshot(label))
	c.Label = "empty"
	require.NoError(t, s.Snapshot(contents))
	c.Contents[0] = "knife"
	c.Contents = append(c.Contents, "map")
	require.Equal(t, 2, s.Len())

	path, err := s.Undo()
	require.NoError(t, err)
	require.Equal(t, "Contents", path)
	require.Equal(t, []string{"rope", "lamp"}, c.Contents)

	path, err = s.Undo()
	require.NoError(t, err)
	require.Equal(t, "Label", path)
	require.Equal(t, "supplies", c.Label)

	_, err = s.Undo()
	require.ErrorIs(t, err, ErrEmpty)
}

func TestStack_Revert(t *testing.T) {
	c := newCrate()
	obj, err := serialization.NewObject(c)
	require.NoError(t, err)

	info, err := field(t, obj, "Weights").GetSerializableDictionaryInfo()
	require.NoError(t, err)
	_, rope := info.GetProperty("rope")
	require.NotNil(t, rope)

	s := NewStack(0, log.NewNop())
	label := field(t, obj, "Label")

	require.NoError(t, s.Snapshot(rope))
	require.NoError(t, serialization.SetValue(rope, 2.0))
	require.NoError(t, s.Snapshot(label))
	require.NoError(t, s.Snapshot(rope))
	require.NoError(t, serialization.SetValue(rope, 3.0))

	require.Equal(t, "Weights[rope]", s.Entries()[0].Path)

	require.NoError(t, s.Revert(rope))
	require.Equal(t, 2.0, c.Weights["rope"])
	require.Equal(t, 1, s.Len())
	require.Equal(t, "Label", s.Entries()[0].Path)

	require.ErrorIs(t, s.Revert(rope), ErrNoSnapshot)
}

func TestStack_ReferencesNotCopied(t *testing.T) {
	c := newCrate()
	obj, err := serialization.NewObject(c)
	require.NoError(t, err)

	s := NewStack(0, log.NewNop())
	texture := field(t, obj, "Texture")
	original := c.Texture

	require.NoError(t, s.Snapshot(texture))
	c.Texture = models.NewAsset("stone", "textures/stone.png")

	_, err = s.Undo()
	require.NoError(t, err)
	require.Same(t, original, c.Texture)
}

func TestStack_Limit(t *testing.T) {
	c := newCrate()
	obj, err := serialization.NewObject(c)
	require.NoError(t, err)

	s := NewStack(2, log.NewNop())
	label := field(t, obj, "Label")

	for _, v := range []string{"a", "b", "c"} {
		c.Label = v
		require.NoError(t, s.Snapshot(label))
	}
	require.Equal(t, 2, s.Len())
	require.Equal(t, "b", s.Entries()[0].Value)

	require.NoError(t, s.Revert(label))
	require.Equal(t, "c", c.Label)
	require.Zero(t, s.Len())
}
