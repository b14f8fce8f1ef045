// Package render rasterizes tilemap data into images for previews and the
// viewer.
package render

import (
	"image"
	"image/color"
	"log"

	"github.com/milk9111/tilemapfield/asset"
	"github.com/milk9111/tilemapfield/codec"
	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
)

// Palette is the 16 color arcade palette. Index 0 is transparent.
var Palette = color.Palette{
	color.RGBA{},
	color.RGBA{0xff, 0xff, 0xff, 0xff},
	color.RGBA{0xff, 0x21, 0x21, 0xff},
	color.RGBA{0xff, 0x93, 0xc4, 0xff},
	color.RGBA{0xff, 0x81, 0x35, 0xff},
	color.RGBA{0xff, 0xf6, 0x09, 0xff},
	color.RGBA{0x24, 0x9c, 0xa3, 0xff},
	color.RGBA{0x78, 0xdc, 0x52, 0xff},
	color.RGBA{0x00, 0x3f, 0xad, 0xff},
	color.RGBA{0x87, 0xf2, 0xff, 0xff},
	color.RGBA{0x8e, 0x2e, 0xc4, 0xff},
	color.RGBA{0xa4, 0x83, 0x9f, 0xff},
	color.RGBA{0x5c, 0x40, 0x6c, 0xff},
	color.RGBA{0xe5, 0xcd, 0xc4, 0xff},
	color.RGBA{0x91, 0x46, 0x3d, 0xff},
	color.RGBA{0x00, 0x00, 0x00, 0xff},
}

// WallTint is blended over wall cells when Options.Walls is set.
var WallTint = color.NRGBA{colornames.Crimson.R, colornames.Crimson.G, colornames.Crimson.B, 0x80}

type Options struct {
	// Scale multiplies the output size. Values below 1 mean 1.
	Scale int
	Walls bool
}

// Tile rasterizes one JRES payload. Undecodable payloads yield nil.
func Tile(jres string) *image.Paletted {
	if jres == "" {
		return nil
	}
	b, err := codec.DecodeBitmap(jres)
	if err != nil {
		log.Printf("render: tile bitmap: %v", err)
		return nil
	}
	img := image.NewPaletted(image.Rect(0, 0, b.Width, b.Height), Palette)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			img.SetColorIndex(x, y, b.At(x, y))
		}
	}
	return img
}

// Tilemap draws every cell with its tileset entry. Cells whose tile has no
// image stay transparent.
func Tilemap(data *asset.TilemapData, opts Options) *image.RGBA {
	if !asset.IsValid(data) {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	size := data.Tileset.TileWidth
	if size <= 0 {
		size = 16
	}

	tiles := make([]*image.Paletted, len(data.Tileset.Tiles))
	for i := range data.Tileset.Tiles {
		tiles[i] = Tile(data.Tileset.Tiles[i].JRESData)
	}

	g := data.Tilemap
	out := image.NewRGBA(image.Rect(0, 0, g.Width*size, g.Height*size))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			cell := image.Rect(x*size, y*size, (x+1)*size, (y+1)*size)
			if i := int(g.Get(x, y)); i < len(tiles) && tiles[i] != nil {
				t := tiles[i]
				draw.Draw(out, cell, t, t.Bounds().Min, draw.Over)
			}
			if opts.Walls && data.Layers.Get(x, y) == asset.Wall {
				draw.Draw(out, cell, image.NewUniform(WallTint), image.Point{}, draw.Over)
			}
		}
	}

	if opts.Scale <= 1 {
		return out
	}
	scaled := image.NewRGBA(image.Rect(0, 0, out.Bounds().Dx()*opts.Scale, out.Bounds().Dy()*opts.Scale))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), out, out.Bounds(), draw.Src, nil)
	return scaled
}
