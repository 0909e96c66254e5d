// Package levels holds the compiled-in level catalog.
package levels

import (
	"github.com/san-kum/gravgrid/internal/body"
	"github.com/san-kum/gravgrid/internal/level"
)

// Body colours.
const (
	Yellow1 = "#fff3bf"
	Yellow2 = "#ffec99"
	Yellow3 = "#ffe066"
	Yellow4 = "#ffd43b"
	Blue1   = "#d0ebff"
	Blue2   = "#a5d8ff"
	Blue3   = "#74c0fc"
	Blue4   = "#228be6"
	Red     = "#f52d37"
)

const (
	smallBody  = 0.4
	mediumBody = 0.6
	largeBody  = 0.8
)

func at(x, y int) *body.Tile { return &body.Tile{X: x, Y: y} }

func planet(g body.GravityField, size float64, color string) level.BodyTemplate {
	return level.BodyTemplate{Gravity: g, Removable: true, Size: size, Color: color}
}

func anchor(g body.GravityField, t *body.Tile, color string) level.BodyTemplate {
	return level.BodyTemplate{Gravity: g, At: t, Size: largeBody, Color: color}
}

var catalog = []level.Definition{
	{
		Name: "first light",
		Grid: level.DefaultGrid,
		Bodies: []level.BodyTemplate{
			planet(body.GravityNone, mediumBody, Yellow3),
		},
	},
	{
		Name: "tether",
		Grid: level.DefaultGrid,
		Bodies: []level.BodyTemplate{
			anchor(body.GravityAll, at(7, 4), Blue4),
			planet(body.GravityNone, smallBody, Yellow2),
		},
	},
	{
		Name: "binary",
		Grid: level.DefaultGrid,
		Bodies: []level.BodyTemplate{
			planet(body.GravityLeft|body.GravityRight, mediumBody, Yellow4),
			planet(body.GravityLeft|body.GravityRight, mediumBody, Blue3),
		},
	},
	{
		Name: "crossfire",
		Grid: level.DefaultGrid,
		Bodies: []level.BodyTemplate{
			anchor(body.GravityRight, at(3, 2), Blue4),
			anchor(body.GravityLeft, at(12, 6), Blue4),
			planet(body.GravityNone, smallBody, Yellow1),
			planet(body.GravityUp|body.GravityDown, mediumBody, Yellow3),
		},
	},
	{
		Name: "lattice",
		Grid: level.DefaultGrid,
		Bodies: []level.BodyTemplate{
			planet(body.GravityAll, mediumBody, Blue1),
			planet(body.GravityAll, mediumBody, Blue2),
			planet(body.GravityAll, mediumBody, Blue3),
		},
	},
	{
		Name: "sentinel",
		Grid: level.DefaultGrid,
		Bodies: []level.BodyTemplate{
			anchor(body.GravityAll, at(7, 4), Red),
			planet(body.GravityAll, smallBody, Yellow1),
			planet(body.GravityAll, smallBody, Yellow2),
			planet(body.GravityAll, smallBody, Yellow3),
			{Gravity: body.GravityUp, Size: mediumBody, Color: Blue4},
		},
	},
}

// All returns the catalog in play order.
func All() []level.Definition {
	out := make([]level.Definition, len(catalog))
	copy(out, catalog)
	return out
}

// ByName returns the named level and its position in the catalog.
func ByName(name string) (level.Definition, int, bool) {
	for i, def := range catalog {
		if def.Name == name {
			return def, i, true
		}
	}
	return level.Definition{}, -1, false
}

func Names() []string {
	names := make([]string, 0, len(catalog))
	for _, def := range catalog {
		names = append(names, def.Name)
	}
	return names
}
