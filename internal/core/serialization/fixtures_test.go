package serialization

import (
	"github.com/zeusync/inspect/internal/core/models"
	"github.com/zeusync/inspect/internal/core/observability/log"
)

func init() {
	SetLogger(log.NewNop())
}

type team int

type stats struct {
	HP    int
	Speed float32
}

type item struct {
	Name  string
	Count int
}

type player struct {
	Name       string
	Level      uint8
	Health     float64
	Alive      bool
	Team       team
	Tint       models.Color
	Position   models.Vector3
	Rotation   models.Quaternion
	Target     models.GameObject
	Texture    *models.Asset
	Stats      stats
	Home       *stats
	Slots      [4]int
	Scores     []int
	Items      []item
	Attributes map[string]int
	Loadout    map[string]item
	Secret     string   `inspect:"secret,hidden"`
	Cache      int      `inspect:",transient"`
	Ignored    chan int `inspect:"-"`
	Both       int      `inspect:",hidden,transient"`

	internal int
}

type unsupportedHolder struct {
	Ch chan int
}

func newPlayer() *player {
	return &player{
		Name:       "alice",
		Level:      3,
		Health:     72.5,
		Alive:      true,
		Tint:       models.White,
		Position:   models.Vector3{X: 1, Y: 2, Z: 3},
		Rotation:   models.IdentityQuaternion,
		Target:     models.NewSceneObject("goblin"),
		Texture:    models.NewAsset("brick", "textures/brick.png"),
		Stats:      stats{HP: 10, Speed: 1.5},
		Slots:      [4]int{1, 2, 3, 4},
		Scores:     []int{0, 0, 99, 0},
		Items:      []item{{Name: "potion", Count: 2}, {Name: "arrow", Count: 20}},
		Attributes: map[string]int{"str": 5, "dex": 7},
		Loadout:    map[string]item{"sword": {Name: "sword", Count: 1}},
		internal:   1,
	}
}

func mustObject(p *player) *Object {
	obj, err := NewObject(p)
	if err != nil {
		panic(err)
	}
	return obj
}

func mustField(obj *Object, name string) *Field {
	f, ok := obj.Field(name)
	if !ok {
		panic("no field " + name)
	}
	return f
}
