package asset

// IsValid reports whether decoded tilemap data is structurally consistent
// enough to be registered as an asset.
func IsValid(d *TilemapData) bool {
	if d == nil || d.Tilemap == nil || d.Tilemap.Width <= 0 || d.Tilemap.Height <= 0 {
		return false
	}
	if len(d.Tilemap.Cells) != d.Tilemap.Width*d.Tilemap.Height {
		return false
	}

	if d.Layers == nil || d.Layers.Width != d.Tilemap.Width || d.Layers.Height != d.Tilemap.Height {
		return false
	}

	if d.Tileset == nil {
		return false
	}
	if len(d.Tileset.Tiles) == 0 && len(d.Tilemap.Cells) > 0 {
		return false
	}

	return true
}
