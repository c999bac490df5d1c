package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSceneObject_Defaults(t *testing.T) {
	so := NewSceneObject("player")

	require.Equal(t, "player", so.Name)
	require.NotEqual(t, uuid.Nil, so.InstanceID())
	require.Equal(t, IdentityQuaternion, so.Rotation)
	require.Equal(t, Vector3{X: 1, Y: 1, Z: 1}, so.Scale)
	require.NotEqual(t, so.InstanceID(), NewSceneObject("player").InstanceID())
}

func TestAsset_Identity(t *testing.T) {
	a := NewAsset("brick", "textures/brick.png")

	require.Equal(t, "brick", a.ResourceName())
	require.NotEqual(t, uuid.Nil, a.ResourceID())
}
