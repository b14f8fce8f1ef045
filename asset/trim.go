package asset

// TrimTileset drops tileset entries that no grid cell references and remaps
// the cells onto the compacted tileset. Remaining entries keep their order.
func TrimTileset(d *TilemapData) {
	if d == nil || d.Tilemap == nil || d.Tileset == nil {
		return
	}

	used := make([]bool, len(d.Tileset.Tiles))
	for _, c := range d.Tilemap.Cells {
		if int(c) < len(used) {
			used[c] = true
		}
	}

	remap := make([]byte, len(d.Tileset.Tiles))
	kept := make([]Tile, 0, len(d.Tileset.Tiles))
	for i, t := range d.Tileset.Tiles {
		if !used[i] {
			continue
		}
		remap[i] = byte(len(kept))
		kept = append(kept, t)
	}

	for i, c := range d.Tilemap.Cells {
		if int(c) < len(remap) {
			d.Tilemap.Cells[i] = remap[c]
		}
	}
	d.Tileset.Tiles = kept
}
