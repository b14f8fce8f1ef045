// Package collision turns the wall layer of a tilemap into static physics
// shapes.
package collision

import (
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilemapfield/asset"
)

const collisionTypeWall cp.CollisionType = 1

type World struct {
	space    *cp.Space
	tileSize int
}

// Build merges contiguous wall cells into boxes on the static body of a new
// space. Cells are tileSize pixels square.
func Build(data *asset.TilemapData, tileSize int) *World {
	w := &World{space: cp.NewSpace(), tileSize: tileSize}
	if data == nil || data.Layers == nil || tileSize <= 0 {
		return w
	}
	layer := data.Layers
	if len(layer.Cells) != layer.Width*layer.Height {
		return w
	}

	solid := func(idx int) bool { return layer.Cells[idx] == asset.Wall }
	processed := make([]bool, len(layer.Cells))
	for y := 0; y < layer.Height; y++ {
		for x := 0; x < layer.Width; x++ {
			idx := y*layer.Width + x
			if processed[idx] {
				continue
			}
			if !solid(idx) {
				processed[idx] = true
				continue
			}

			cw := 1
			for x+cw < layer.Width {
				idx2 := y*layer.Width + x + cw
				if processed[idx2] || !solid(idx2) {
					break
				}
				cw++
			}

			ch := 1
		heightLoop:
			for y+ch < layer.Height {
				for xi := x; xi < x+cw; xi++ {
					idx2 := (y+ch)*layer.Width + xi
					if processed[idx2] || !solid(idx2) {
						break heightLoop
					}
				}
				ch++
			}

			x0 := float64(x * tileSize)
			y0 := float64(y * tileSize)
			bb := cp.BB{L: x0, B: y0, R: x0 + float64(cw*tileSize), T: y0 + float64(ch*tileSize)}
			shape := cp.NewBox2(w.space.StaticBody, bb, 0)
			shape.SetCollisionType(collisionTypeWall)
			w.space.AddShape(shape)

			for yy := y; yy < y+ch; yy++ {
				for xx := x; xx < x+cw; xx++ {
					processed[yy*layer.Width+xx] = true
				}
			}
		}
	}
	return w
}

// Space returns the physics space holding the wall shapes.
func (w *World) Space() *cp.Space {
	return w.space
}

// Solid reports whether the pixel position lies strictly inside a wall box.
func (w *World) Solid(x, y float64) bool {
	info := w.space.PointQueryNearest(cp.Vector{X: x, Y: y}, 0, cp.SHAPE_FILTER_ALL)
	return info != nil && info.Shape != nil
}

// SolidCell reports whether cell x,y is covered by a wall box.
func (w *World) SolidCell(x, y int) bool {
	half := float64(w.tileSize) / 2
	return w.Solid(float64(x*w.tileSize)+half, float64(y*w.tileSize)+half)
}

// Boxes returns the bounding boxes of the wall shapes in the space, top to
// bottom then left to right.
func (w *World) Boxes() []cp.BB {
	var boxes []cp.BB
	w.space.EachShape(func(shape *cp.Shape) {
		boxes = append(boxes, shape.BB())
	})
	sort.Slice(boxes, func(i, j int) bool {
		if boxes[i].B != boxes[j].B {
			return boxes[i].B < boxes[j].B
		}
		return boxes[i].L < boxes[j].L
	})
	return boxes
}

// Area is the wall area in cells.
func (w *World) Area() int {
	if w.tileSize <= 0 {
		return 0
	}
	total := 0.0
	for _, bb := range w.Boxes() {
		total += (bb.R - bb.L) * (bb.T - bb.B)
	}
	return int(total) / (w.tileSize * w.tileSize)
}
