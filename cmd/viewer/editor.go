package main

import (
	"image"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/tilemapfield/asset"
	"github.com/milk9111/tilemapfield/field"
	"github.com/milk9111/tilemapfield/render"
)

// Viewer is a field.Editor backed by an ebiten window. Open only records the
// session; the window is driven by ebiten.RunGame.
type Viewer struct {
	zoom int

	ui      *ebitenui.UI
	edited  *asset.Tilemap
	onClose func(asset.Asset)
	brush   brush

	canvas *ebiten.Image
	dirty  bool
	walls  bool
	closed bool
}

func NewViewer(zoom int) *Viewer {
	if zoom < 1 {
		zoom = 1
	}
	return &Viewer{zoom: zoom}
}

func (v *Viewer) Open(req field.Request, onClose func(result asset.Asset)) {
	src, ok := req.Asset.(*asset.Tilemap)
	if !ok || src == nil || !asset.IsValid(src.Data) {
		log.Printf("viewer: cannot edit %s asset", req.Type)
		onClose(nil)
		return
	}

	v.edited = &asset.Tilemap{ID: src.ID, Meta: src.Meta, Data: src.Data.Clone()}
	v.onClose = onClose
	v.brush = brush{data: v.edited.Data}
	if len(v.edited.Data.Tileset.Tiles) > 1 {
		v.brush.tile = 1
	}
	v.ui = buildUI(v.edited.Data.Tileset.Tiles, v.brush.tile,
		func(index int) {
			v.brush.tile = index
			v.brush.walls = false
		},
		func() {
			v.brush.walls = true
			v.walls = true
			v.dirty = true
		},
	)
	v.dirty = true
}

// WindowSize is the window size that fits the whole tilemap.
func (v *Viewer) WindowSize() (int, int) {
	if v.edited == nil {
		return 640, 480
	}
	size := v.cellSize()
	w := v.edited.Data.Tilemap.Width * size
	if w < 640 {
		w = 640
	}
	return w, v.edited.Data.Tilemap.Height*size + toolbarHeight
}

func (v *Viewer) cellSize() int {
	return v.edited.Data.Tileset.TileWidth * v.zoom
}

func (v *Viewer) finish(result asset.Asset) {
	if v.closed || v.onClose == nil {
		return
	}
	v.closed = true
	v.onClose(result)
}

func (v *Viewer) Update() error {
	if v.edited == nil || v.closed {
		return ebiten.Termination
	}
	v.ui.Update()

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		v.finish(v.edited)
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyQ):
		v.finish(nil)
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyW):
		v.walls = !v.walls
		v.dirty = true
	}

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if !left && !right {
		return nil
	}
	mx, my := ebiten.CursorPosition()
	x, y, ok := cellAt(image.Pt(mx, my), image.Pt(0, toolbarHeight), v.cellSize(), v.edited.Data.Tilemap)
	if !ok {
		return nil
	}
	if right && !v.brush.walls {
		// right click erases to the transparency tile
		saved := v.brush.tile
		v.brush.tile = 0
		v.dirty = v.brush.apply(x, y, true) || v.dirty
		v.brush.tile = saved
		return nil
	}
	v.dirty = v.brush.apply(x, y, left) || v.dirty
	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{30, 30, 30, 255})
	if v.edited == nil {
		return
	}
	if v.dirty || v.canvas == nil {
		img := render.Tilemap(v.edited.Data, render.Options{Scale: v.zoom, Walls: v.walls})
		if v.canvas != nil {
			v.canvas.Deallocate()
		}
		v.canvas = ebiten.NewImageFromImage(img)
		v.dirty = false
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, toolbarHeight)
	screen.DrawImage(v.canvas, op)
	v.ui.Draw(screen)
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
