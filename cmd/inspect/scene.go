package main

import (
	"github.com/zeusync/inspect/internal/core/models"
)

type Item struct {
	Name  string
	Count int
	Icon  *models.Asset
}

type Inventory struct {
	Gold     int
	Items    []Item
	Equipped map[string]*models.Asset
}

type Hero struct {
	Name      string
	Level     int
	Transform *models.SceneObject
	Tint      models.Color
	Stats     [3]float32
	Inventory Inventory
	Party     []*Hero
	Notes     string `inspect:"notes,hidden"`
}

// newScene builds a small party whose members reference each other.
func newScene() *Hero {
	potion := models.NewAsset("potion", "icons/potion.png")
	sword := models.NewAsset("sword", "items/sword.asset")

	hero := &Hero{
		Name:      "Aria",
		Level:     12,
		Transform: models.NewSceneObject("aria"),
		Tint:      models.White,
		Stats:     [3]float32{14, 9, 11},
		Inventory: Inventory{
			Gold:     250,
			Items:    []Item{{Name: "potion", Count: 3, Icon: potion}},
			Equipped: map[string]*models.Asset{"main_hand": sword},
		},
		Notes: "met the blacksmith",
	}
	companion := &Hero{
		Name:      "Bran",
		Level:     10,
		Transform: models.NewSceneObject("bran"),
		Tint:      models.Black,
		Stats:     [3]float32{16, 7, 8},
		Party:     []*Hero{hero},
	}
	hero.Party = []*Hero{companion}
	return hero
}
