package field

import (
	"github.com/milk9111/tilemapfield/asset"
)

// TileRegistry is the project-wide store of canonical tile bitmaps.
type TileRegistry interface {
	LookupTileByName(name string) (asset.Tile, bool)
	LookupTile(id string) (asset.Tile, bool)
	CreateTile(jres, displayName string) asset.Tile
	UpdateTile(t asset.Tile) asset.Tile
	DeleteTile(id string) bool
	ResolveTile(id string) (asset.Tile, bool)
}

// TilemapStore is the project-wide store of tilemap assets.
type TilemapStore interface {
	LookupAssetByName(name string) (*asset.Tilemap, bool)
	LookupAsset(id string) (*asset.Tilemap, bool)
	BlankTilemap(tileWidth, width, height int) *asset.TilemapData
	CreateFromData(data *asset.TilemapData) (string, error)
	GetByID(id string) (*asset.Tilemap, bool)
	UpdateAsset(tm *asset.Tilemap) error
	RemoveAsset(id string) bool
}

// Deps are the shared stores a tilemap field reads from and writes to.
type Deps struct {
	Tiles    TileRegistry
	Tilemaps TilemapStore
}

// Request is what an editor is handed when a field opens it.
type Request struct {
	Asset   asset.Asset
	Type    asset.Type
	Options Options
}

// Editor is the interactive collaborator that edits a bound asset. Open must
// not block on the session; onClose is called once with the edited asset, or
// with nil when the session was cancelled.
type Editor interface {
	Open(req Request, onClose func(result asset.Asset))
}

// EditorFunc adapts a function to the Editor interface.
type EditorFunc func(req Request, onClose func(result asset.Asset))

func (f EditorFunc) Open(req Request, onClose func(result asset.Asset)) {
	f(req, onClose)
}
