package field

import (
	"errors"
	"fmt"

	"github.com/milk9111/tilemapfield/asset"
)

// fakeTiles is an in-memory TileRegistry that records every mutating call.
type fakeTiles struct {
	tiles map[string]asset.Tile
	ops   []string
	next  int
}

func newFakeTiles(tiles ...asset.Tile) *fakeTiles {
	f := &fakeTiles{tiles: map[string]asset.Tile{}}
	for _, t := range tiles {
		f.tiles[t.ID] = t
	}
	return f
}

func (f *fakeTiles) LookupTileByName(name string) (asset.Tile, bool) {
	for _, t := range f.tiles {
		if t.Meta.DisplayName == name {
			return t, true
		}
	}
	return asset.Tile{}, false
}

func (f *fakeTiles) LookupTile(id string) (asset.Tile, bool) {
	t, ok := f.tiles[id]
	return t, ok
}

func (f *fakeTiles) CreateTile(jres, displayName string) asset.Tile {
	f.next++
	t := asset.Tile{ID: fmt.Sprintf("myTiles.fake%d", f.next), Meta: asset.Meta{DisplayName: displayName}, JRESData: jres}
	f.tiles[t.ID] = t
	f.ops = append(f.ops, "create:"+t.ID)
	return t
}

func (f *fakeTiles) UpdateTile(t asset.Tile) asset.Tile {
	f.ops = append(f.ops, "update:"+t.ID)
	stored := f.tiles[t.ID]
	stored.ID = t.ID
	if t.JRESData != "" {
		stored.JRESData = t.JRESData
	}
	stored.Meta.DisplayName = "updated"
	f.tiles[t.ID] = stored
	return stored
}

func (f *fakeTiles) DeleteTile(id string) bool {
	f.ops = append(f.ops, "delete:"+id)
	_, ok := f.tiles[id]
	delete(f.tiles, id)
	return ok
}

func (f *fakeTiles) ResolveTile(id string) (asset.Tile, bool) {
	t, ok := f.tiles[id]
	if !ok || t.JRESData == "" {
		return asset.Tile{}, false
	}
	f.ops = append(f.ops, "resolve:"+id)
	return t, true
}

// fakeStore is an in-memory TilemapStore.
type fakeStore struct {
	maps    []*asset.Tilemap
	next    int
	created int
	updated int
	failNew bool
}

func (s *fakeStore) LookupAssetByName(name string) (*asset.Tilemap, bool) {
	for _, tm := range s.maps {
		if tm.Meta.DisplayName == name {
			return tm, true
		}
	}
	return nil, false
}

func (s *fakeStore) LookupAsset(id string) (*asset.Tilemap, bool) {
	for _, tm := range s.maps {
		if tm.ID == id {
			return tm, true
		}
	}
	return nil, false
}

func (s *fakeStore) BlankTilemap(tileWidth, width, height int) *asset.TilemapData {
	return &asset.TilemapData{
		Tilemap: asset.NewGrid(width, height),
		Layers:  asset.NewGrid(width, height),
		Tileset: &asset.Tileset{TileWidth: tileWidth},
	}
}

func (s *fakeStore) CreateFromData(d *asset.TilemapData) (string, error) {
	if s.failNew {
		return "", errors.New("store full")
	}
	s.next++
	s.created++
	tm := &asset.Tilemap{
		ID:   fmt.Sprintf("tilemap%d", s.next),
		Meta: asset.Meta{DisplayName: fmt.Sprintf("level%d", s.next)},
		Data: d,
	}
	s.maps = append(s.maps, tm)
	return tm.ID, nil
}

func (s *fakeStore) GetByID(id string) (*asset.Tilemap, bool) {
	return s.LookupAsset(id)
}

func (s *fakeStore) UpdateAsset(tm *asset.Tilemap) error {
	s.updated++
	for i, existing := range s.maps {
		if existing.ID == tm.ID {
			s.maps[i] = tm
			return nil
		}
	}
	return errors.New("missing")
}

func (s *fakeStore) RemoveAsset(id string) bool {
	for i, tm := range s.maps {
		if tm.ID == id {
			s.maps = append(s.maps[:i], s.maps[i+1:]...)
			return true
		}
	}
	return false
}

// captureEditor records the last request and close callback so tests can
// close the session when they choose.
type captureEditor struct {
	opened  int
	req     Request
	onClose func(asset.Asset)
}

func (e *captureEditor) Open(req Request, onClose func(asset.Asset)) {
	e.opened++
	e.req = req
	e.onClose = onClose
}
