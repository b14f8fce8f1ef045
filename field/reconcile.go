package field

import (
	"log"

	"github.com/milk9111/tilemapfield/asset"
)

// Reconcile flushes an editor session's tile changes into the registry and
// trims the tileset. The steps run in a fixed order: deletions, edits,
// resolution of entries without bitmap data, then trimming.
func Reconcile(tiles TileRegistry, d *asset.TilemapData) {
	if d == nil {
		return
	}

	for _, id := range d.DeletedTiles {
		tiles.DeleteTile(id)
	}

	if d.Tileset != nil {
		for _, id := range d.EditedTiles {
			i := d.Tileset.Index(id)
			if i < 0 {
				// deleted or replaced during the session
				continue
			}
			d.Tileset.Tiles[i] = tiles.UpdateTile(d.Tileset.Tiles[i])
		}

		for i := range d.Tileset.Tiles {
			t := &d.Tileset.Tiles[i]
			if t.Resolved() {
				continue
			}
			resolved, ok := tiles.ResolveTile(t.ID)
			if !ok {
				log.Printf("field: reconcile: tile %s has no bitmap in the registry", t.ID)
				continue
			}
			*t = resolved
		}

		asset.TrimTileset(d)
	}

	d.EditedTiles = nil
	d.DeletedTiles = nil
}
