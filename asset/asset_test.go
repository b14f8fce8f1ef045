package asset

import (
	"testing"
)

func validData() *TilemapData {
	return &TilemapData{
		Tilemap: &Grid{Width: 2, Height: 2, Cells: []byte{0, 1, 1, 0}},
		Layers:  NewGrid(2, 2),
		Tileset: &Tileset{TileWidth: 16, Tiles: []Tile{{ID: "myTiles.transparency16"}, {ID: "myTiles.tile1"}}},
	}
}

func TestIsValid(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(d *TilemapData) *TilemapData
		want   bool
	}{
		{"valid", func(d *TilemapData) *TilemapData { return d }, true},
		{"nil", func(d *TilemapData) *TilemapData { return nil }, false},
		{"no_grid", func(d *TilemapData) *TilemapData { d.Tilemap = nil; return d }, false},
		{"zero_width", func(d *TilemapData) *TilemapData { d.Tilemap.Width = 0; return d }, false},
		{"negative_height", func(d *TilemapData) *TilemapData { d.Tilemap.Height = -2; return d }, false},
		{"cell_count_mismatch", func(d *TilemapData) *TilemapData { d.Tilemap.Cells = d.Tilemap.Cells[:3]; return d }, false},
		{"no_layers", func(d *TilemapData) *TilemapData { d.Layers = nil; return d }, false},
		{"layers_width_mismatch", func(d *TilemapData) *TilemapData { d.Layers = NewGrid(3, 2); return d }, false},
		{"layers_height_mismatch", func(d *TilemapData) *TilemapData { d.Layers = NewGrid(2, 1); return d }, false},
		{"no_tileset", func(d *TilemapData) *TilemapData { d.Tileset = nil; return d }, false},
		{"empty_tileset", func(d *TilemapData) *TilemapData { d.Tileset.Tiles = nil; return d }, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsValid(c.mutate(validData())); got != c.want {
				t.Fatalf("IsValid = %v, want %v", got, c.want)
			}
		})
	}
}

func TestTrimTileset(t *testing.T) {
	d := &TilemapData{
		Tilemap: &Grid{Width: 3, Height: 1, Cells: []byte{3, 1, 3}},
		Layers:  NewGrid(3, 1),
		Tileset: &Tileset{TileWidth: 16, Tiles: []Tile{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}},
	}

	TrimTileset(d)

	if len(d.Tileset.Tiles) != 2 {
		t.Fatalf("expected 2 tiles after trim, got %d", len(d.Tileset.Tiles))
	}
	if d.Tileset.Tiles[0].ID != "b" || d.Tileset.Tiles[1].ID != "d" {
		t.Fatalf("trim did not preserve order: %+v", d.Tileset.Tiles)
	}
	want := []byte{1, 0, 1}
	for i, c := range d.Tilemap.Cells {
		if c != want[i] {
			t.Fatalf("cell %d = %d, want %d", i, c, want[i])
		}
	}
}

func TestTrimTilesetKeepsReferenced(t *testing.T) {
	d := validData()
	TrimTileset(d)
	if len(d.Tileset.Tiles) != 2 {
		t.Fatalf("expected both referenced tiles kept, got %d", len(d.Tileset.Tiles))
	}
}

func TestCloneIsDeep(t *testing.T) {
	d := validData()
	cp := d.Clone()
	cp.Tilemap.Cells[0] = 9
	cp.Tileset.Tiles[0].ID = "changed"
	if d.Tilemap.Cells[0] == 9 || d.Tileset.Tiles[0].ID == "changed" {
		t.Fatalf("clone shares storage with original")
	}
}

func TestGridBounds(t *testing.T) {
	g := NewGrid(2, 2)
	if g.Set(2, 0, 1) {
		t.Fatalf("expected out of range write to be rejected")
	}
	if !g.Set(1, 1, 5) || g.Get(1, 1) != 5 {
		t.Fatalf("expected in range write to stick")
	}
	if g.Get(-1, 0) != 0 {
		t.Fatalf("expected out of range read to be 0")
	}
}
