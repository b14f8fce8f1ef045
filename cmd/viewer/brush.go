package main

import (
	"image"

	"github.com/milk9111/tilemapfield/asset"
)

// brush paints either tile indices or walls onto the edited tilemap.
type brush struct {
	data  *asset.TilemapData
	tile  int
	walls bool
}

// apply paints cell x,y and reports whether anything changed. With walls
// set, the cell's wall is set to on.
func (b *brush) apply(x, y int, on bool) bool {
	if b.data == nil {
		return false
	}
	if b.walls {
		var v byte
		if on {
			v = asset.Wall
		}
		if b.data.Layers.Get(x, y) == v {
			return false
		}
		return b.data.Layers.Set(x, y, v)
	}
	if b.tile < 0 || b.tile >= len(b.data.Tileset.Tiles) {
		return false
	}
	if int(b.data.Tilemap.Get(x, y)) == b.tile {
		return false
	}
	return b.data.Tilemap.Set(x, y, byte(b.tile))
}

// cellAt maps a screen position to a cell of a canvas drawn at origin with
// square cells of size pixels.
func cellAt(p, origin image.Point, size int, g *asset.Grid) (int, int, bool) {
	if size <= 0 || g == nil {
		return 0, 0, false
	}
	rel := p.Sub(origin)
	if rel.X < 0 || rel.Y < 0 {
		return 0, 0, false
	}
	x, y := rel.X/size, rel.Y/size
	if x >= g.Width || y >= g.Height {
		return 0, 0, false
	}
	return x, y, true
}
