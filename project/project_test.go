package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/tilemapfield/asset"
)

func TestTileRegistry(t *testing.T) {
	p := New()

	created := p.CreateTile("AAAA", "grass")
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
	if got, ok := p.LookupTileByName("grass"); !ok || got.ID != created.ID {
		t.Fatalf("lookup by name failed: %+v ok=%v", got, ok)
	}
	if _, ok := p.LookupTile(created.ID); !ok {
		t.Fatalf("lookup by id failed")
	}

	second := p.CreateTile("BBBB", "stone")
	if second.ID == created.ID {
		t.Fatalf("expected distinct ids, both %s", second.ID)
	}

	updated := p.UpdateTile(asset.Tile{ID: created.ID, JRESData: "CCCC"})
	if updated.JRESData != "CCCC" || updated.Meta.DisplayName != "grass" {
		t.Fatalf("unexpected updated record %+v", updated)
	}

	fresh := p.UpdateTile(asset.Tile{ID: "myTiles.new", JRESData: "DDDD"})
	if fresh.ID != "myTiles.new" {
		t.Fatalf("expected unknown tile to be created under its id, got %+v", fresh)
	}
	if resolved, ok := p.ResolveTile("myTiles.new"); !ok || resolved.JRESData != "DDDD" {
		t.Fatalf("resolve failed: %+v ok=%v", resolved, ok)
	}

	if !p.DeleteTile(created.ID) {
		t.Fatalf("expected delete to succeed")
	}
	if _, ok := p.ResolveTile(created.ID); ok {
		t.Fatalf("deleted tile still resolves")
	}
	if p.DeleteTile(created.ID) {
		t.Fatalf("expected second delete to report absence")
	}
}

func TestResolveTileWithoutData(t *testing.T) {
	p := New()
	p.UpdateTile(asset.Tile{ID: "myTiles.empty"})
	if _, ok := p.ResolveTile("myTiles.empty"); ok {
		t.Fatalf("tile without bitmap data should not resolve")
	}
}

func TestTilemapStore(t *testing.T) {
	p := New()

	blank := p.BlankTilemap(16, 4, 3)
	if blank.Tilemap.Width != 4 || blank.Tilemap.Height != 3 || len(blank.Tilemap.Cells) != 12 {
		t.Fatalf("unexpected blank grid %+v", blank.Tilemap)
	}
	if blank.Layers.Width != 4 || blank.Layers.Height != 3 {
		t.Fatalf("unexpected blank walls %+v", blank.Layers)
	}
	if blank.Tileset == nil || len(blank.Tileset.Tiles) != 0 || blank.Tileset.TileWidth != 16 {
		t.Fatalf("unexpected blank tileset %+v", blank.Tileset)
	}

	id, err := p.CreateFromData(blank)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	tm, ok := p.GetByID(id)
	if !ok || tm.Data != blank {
		t.Fatalf("GetByID did not return the created asset")
	}
	if byName, ok := p.LookupAssetByName(tm.Meta.DisplayName); !ok || byName.ID != id {
		t.Fatalf("lookup by name failed for %q", tm.Meta.DisplayName)
	}

	id2, _ := p.CreateFromData(p.BlankTilemap(16, 1, 1))
	if id2 == id {
		t.Fatalf("expected unique tilemap ids")
	}

	if err := p.UpdateAsset(&asset.Tilemap{ID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !p.RemoveAsset(id) {
		t.Fatalf("expected remove to succeed")
	}
	if _, ok := p.LookupAsset(id); ok {
		t.Fatalf("removed asset still present")
	}
}

func TestCreateFromDataSkipsTakenNames(t *testing.T) {
	p := New()
	p.Tilemaps = append(p.Tilemaps, &asset.Tilemap{ID: "custom", Meta: asset.Meta{DisplayName: "level1"}})

	id, err := p.CreateFromData(p.BlankTilemap(16, 1, 1))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	tm, _ := p.GetByID(id)
	if tm.Meta.DisplayName == "level1" {
		t.Fatalf("generated a display name that is already taken")
	}
}

func TestDefaultProject(t *testing.T) {
	p, err := Default()
	if err != nil {
		t.Fatalf("default project: %v", err)
	}
	for _, size := range []int{8, 16, 32} {
		id := fmt.Sprintf("myTiles.transparency%d", size)
		if _, ok := p.ResolveTile(id); !ok {
			t.Fatalf("%s missing or without bitmap data", id)
		}
	}
	if len(p.Tiles) != 3 {
		t.Fatalf("default project has %d tiles, want 3", len(p.Tiles))
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "project.json")

	p := New()
	tile := p.CreateTile("AAAA", "grass")
	data := p.BlankTilemap(8, 2, 2)
	data.Tileset.Tiles = []asset.Tile{{ID: tile.ID}}
	data.Tilemap.Cells[3] = 0
	id, _ := p.CreateFromData(data)

	if err := p.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if _, ok := loaded.LookupTile(tile.ID); !ok {
		t.Fatalf("tile lost across save/load")
	}
	tm, ok := loaded.GetByID(id)
	if !ok || tm.Data.Tilemap.Width != 2 || tm.Data.Tileset.Tiles[0].ID != tile.ID {
		t.Fatalf("tilemap lost across save/load: %+v", tm)
	}

	next := loaded.CreateTile("", "")
	if next.ID == tile.ID {
		t.Fatalf("loaded project reused an existing tile id")
	}
}

func TestLoadMissingFileYieldsDefault(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if _, ok := p.ResolveTile("myTiles.transparency16"); !ok {
		t.Fatalf("expected default tiles")
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for corrupt project")
	}
}

func TestLoadDropsInvalidTilemaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.json")
	body := `{"tiles": [], "tilemaps": [
		{"id": "t1", "meta": {"display_name": "lvl"}, "data": null},
		{"id": "t2", "meta": {"display_name": "skewed"}, "data": {
			"tilemap": {"width": 2, "height": 2, "cells": "AAAAAA=="},
			"layers": {"width": 1, "height": 2, "cells": "AAA="},
			"tileset": {"tile_width": 16, "tiles": [{"id": "myTiles.transparency16"}]}}},
		{"id": "t3", "meta": {"display_name": "ok"}, "data": {
			"tilemap": {"width": 2, "height": 2, "cells": "AAAAAA=="},
			"layers": {"width": 2, "height": 2, "cells": "AAAAAA=="},
			"tileset": {"tile_width": 16, "tiles": [{"id": "myTiles.transparency16"}]}}}
	]}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, name := range []string{"lvl", "skewed"} {
		if _, ok := p.LookupAssetByName(name); ok {
			t.Fatalf("invalid tilemap %s entered the store", name)
		}
	}
	tm, ok := p.LookupAssetByName("ok")
	if !ok || !asset.IsValid(tm.Data) {
		t.Fatalf("valid tilemap not loaded")
	}
}

func TestWatcherReportsProjectWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.json")
	other := filepath.Join(dir, "other.json")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(other, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		abs, _ := filepath.Abs(path)
		if got != abs {
			t.Fatalf("unexpected event path %q", got)
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatalf("no event for project write")
	}
}
