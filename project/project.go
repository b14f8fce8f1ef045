// Package project holds the shared tile registry and tilemap store that every
// tilemap field in a program reads from and reconciles into.
package project

import (
	"errors"
	"fmt"

	"github.com/milk9111/tilemapfield/asset"
)

var ErrNotFound = errors.New("project: asset not found")

const (
	tileNamespace = "myTiles."
	tilemapPrefix = "tilemap"
	levelPrefix   = "level"
)

// Project is an in-memory asset store. It is not safe for concurrent use;
// callers serialise access on their event loop.
type Project struct {
	Tiles    []*asset.Tile    `json:"tiles"`
	Tilemaps []*asset.Tilemap `json:"tilemaps"`

	nextTile    int
	nextTilemap int
}

func New() *Project {
	return &Project{}
}

// LookupTileByName returns the tile whose display name is name.
func (p *Project) LookupTileByName(name string) (asset.Tile, bool) {
	for _, t := range p.Tiles {
		if t.Meta.DisplayName == name {
			return *t, true
		}
	}
	return asset.Tile{}, false
}

func (p *Project) LookupTile(id string) (asset.Tile, bool) {
	if t := p.tile(id); t != nil {
		return *t, true
	}
	return asset.Tile{}, false
}

func (p *Project) tile(id string) *asset.Tile {
	for _, t := range p.Tiles {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// CreateTile registers a new tile with a generated id.
func (p *Project) CreateTile(jres, displayName string) asset.Tile {
	id := p.newTileID()
	t := &asset.Tile{ID: id, Meta: asset.Meta{DisplayName: displayName}, JRESData: jres}
	p.Tiles = append(p.Tiles, t)
	return *t
}

func (p *Project) newTileID() string {
	for {
		p.nextTile++
		id := fmt.Sprintf("%stile%d", tileNamespace, p.nextTile)
		if p.tile(id) == nil {
			return id
		}
	}
}

// UpdateTile stores t and returns the registry's record for it. Tiles the
// registry has never seen are created under their own id.
func (p *Project) UpdateTile(t asset.Tile) asset.Tile {
	existing := p.tile(t.ID)
	if existing == nil {
		nt := t
		p.Tiles = append(p.Tiles, &nt)
		return nt
	}
	if t.JRESData != "" {
		existing.JRESData = t.JRESData
	}
	if t.Meta.DisplayName != "" {
		existing.Meta.DisplayName = t.Meta.DisplayName
	}
	return *existing
}

func (p *Project) DeleteTile(id string) bool {
	for i, t := range p.Tiles {
		if t.ID == id {
			p.Tiles = append(p.Tiles[:i], p.Tiles[i+1:]...)
			return true
		}
	}
	return false
}

// ResolveTile returns the stored record for id, which carries its bitmap data.
func (p *Project) ResolveTile(id string) (asset.Tile, bool) {
	t := p.tile(id)
	if t == nil || !t.Resolved() {
		return asset.Tile{}, false
	}
	return *t, true
}

// LookupAssetByName returns the tilemap whose display name is name.
func (p *Project) LookupAssetByName(name string) (*asset.Tilemap, bool) {
	for _, tm := range p.Tilemaps {
		if tm.Meta.DisplayName == name {
			return tm, true
		}
	}
	return nil, false
}

func (p *Project) LookupAsset(id string) (*asset.Tilemap, bool) {
	for _, tm := range p.Tilemaps {
		if tm.ID == id {
			return tm, true
		}
	}
	return nil, false
}

func (p *Project) GetByID(id string) (*asset.Tilemap, bool) {
	return p.LookupAsset(id)
}

// BlankTilemap returns an empty grid with matching walls and an empty tileset.
func (p *Project) BlankTilemap(tileWidth, width, height int) *asset.TilemapData {
	return &asset.TilemapData{
		Tilemap: asset.NewGrid(width, height),
		Layers:  asset.NewGrid(width, height),
		Tileset: &asset.Tileset{TileWidth: tileWidth},
	}
}

// CreateFromData registers data as a new tilemap and returns its id.
func (p *Project) CreateFromData(data *asset.TilemapData) (string, error) {
	if data == nil {
		return "", errors.New("project: create tilemap: nil data")
	}
	id, name := p.newTilemapID()
	p.Tilemaps = append(p.Tilemaps, &asset.Tilemap{ID: id, Meta: asset.Meta{DisplayName: name}, Data: data})
	return id, nil
}

func (p *Project) newTilemapID() (string, string) {
	for {
		p.nextTilemap++
		id := fmt.Sprintf("%s%d", tilemapPrefix, p.nextTilemap)
		name := fmt.Sprintf("%s%d", levelPrefix, p.nextTilemap)
		_, idTaken := p.LookupAsset(id)
		_, nameTaken := p.LookupAssetByName(name)
		if !idTaken && !nameTaken {
			return id, name
		}
	}
}

func (p *Project) UpdateAsset(tm *asset.Tilemap) error {
	for i, existing := range p.Tilemaps {
		if existing.ID == tm.ID {
			p.Tilemaps[i] = tm
			return nil
		}
	}
	return fmt.Errorf("project: update %s: %w", tm.ID, ErrNotFound)
}

func (p *Project) RemoveAsset(id string) bool {
	for i, tm := range p.Tilemaps {
		if tm.ID == id {
			p.Tilemaps = append(p.Tilemaps[:i], p.Tilemaps[i+1:]...)
			return true
		}
	}
	return false
}
