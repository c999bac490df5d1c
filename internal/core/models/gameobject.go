package models

import (
	"github.com/google/uuid"
)

// GameObject is implemented by everything that lives in a scene: scene objects
// and the components attached to them. Values of such types are referenced,
// never owned, by the data that points at them.
type GameObject interface {
	InstanceID() uuid.UUID
}

// Resource is implemented by shared assets (textures, meshes, materials).
// Like game objects they are referenced rather than copied.
type Resource interface {
	ResourceID() uuid.UUID
	ResourceName() string
}

var (
	_ GameObject = (*SceneObject)(nil)
	_ Resource   = (*Asset)(nil)
)

// SceneObject is a node in the scene hierarchy.
type SceneObject struct {
	id       uuid.UUID
	Name     string
	Position Vector3
	Rotation Quaternion
	Scale    Vector3
}

func NewSceneObject(name string) *SceneObject {
	return &SceneObject{
		id:       uuid.New(),
		Name:     name,
		Rotation: IdentityQuaternion,
		Scale:    Vector3{X: 1, Y: 1, Z: 1},
	}
}

func (s *SceneObject) InstanceID() uuid.UUID {
	return s.id
}

// Asset is a resource loaded from disk.
type Asset struct {
	id   uuid.UUID
	Name string
	Path string
}

func NewAsset(name, path string) *Asset {
	return &Asset{
		id:   uuid.New(),
		Name: name,
		Path: path,
	}
}

func (a *Asset) ResourceID() uuid.UUID {
	return a.id
}

func (a *Asset) ResourceName() string {
	return a.Name
}
