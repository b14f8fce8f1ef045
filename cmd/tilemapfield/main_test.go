package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/milk9111/tilemapfield/project"
)

const literal = "tiles.createTilemap(hex`0200020000000000`, img`\n. 2\n2 2\n`, [myTiles.transparency16], TileScale.Sixteen)"

func TestNormalizeSavesProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p", "project.json")
	var out bytes.Buffer
	if err := runNormalize([]string{"-project", path, literal}, &out); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "tilemap`level1`" {
		t.Fatalf("value = %q", got)
	}

	p, err := project.Load(path)
	if err != nil {
		t.Fatalf("load saved project: %v", err)
	}
	tm, ok := p.LookupAssetByName("level1")
	if !ok {
		t.Fatalf("committed tilemap missing from saved project")
	}
	if tm.Data.Layers.Get(1, 0) != 2 {
		t.Fatalf("walls not persisted")
	}
}

func TestNormalizeRejectsGreyBlock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.json")
	err := runNormalize([]string{"-project", path, "tilemap`"}, &bytes.Buffer{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("project saved for invalid text")
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.json")
	if err := runNormalize([]string{"-project", path, literal}, &bytes.Buffer{}); err != nil {
		t.Fatalf("normalize: %v", err)
	}

	src := filepath.Join(dir, "main.ts")
	code := "let a = tilemap`level1`\nlet b = " + literal + "\nlet c = tilemap`missing`\n"
	if err := os.WriteFile(src, []byte(code), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	err := runCheck([]string{"-project", path, "-walls", src}, &out)
	if !errors.Is(err, errInvalidFields) {
		t.Fatalf("expected errInvalidFields, got %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	want := []string{
		src + ":1: bound level1 (tilemap1)",
		"\twalls: 2 boxes covering 3 cells",
		src + ":2: bound level2 (tilemap2)",
		"\twalls: 2 boxes covering 3 cells",
		src + ":3: grey block",
	}
	if len(lines) != len(want) {
		t.Fatalf("output:\n%s", out.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	p, err := project.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Tilemaps) != 1 {
		t.Fatalf("check changed the saved project: %d tilemaps", len(p.Tilemaps))
	}
}

func TestEditRunsScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.json")
	scriptPath := filepath.Join(dir, "fill.tengo")
	if err := os.WriteFile(scriptPath, []byte("t := add_tile(\"stone\", solid_tile(11))\nfill(t)\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := runEdit([]string{"-project", path, "-script", scriptPath, literal}, &out); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "tilemap`level1`" {
		t.Fatalf("value = %q", got)
	}

	p, err := project.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.ResolveTile("myTiles.stone"); !ok {
		t.Fatalf("script tile not saved")
	}
	tm, _ := p.LookupAssetByName("level1")
	if len(tm.Data.Tileset.Tiles) != 1 || tm.Data.Tileset.Tiles[0].ID != "myTiles.stone" {
		t.Fatalf("tileset = %+v", tm.Data.Tileset.Tiles)
	}
}

func TestRenderWritesPNG(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "img", "map.png")
	if err := runRender([]string{"-project", filepath.Join(dir, "project.json"), "-out", out, "-scale", "2", literal}); err != nil {
		t.Fatalf("render: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
}

func TestUnknownLanguage(t *testing.T) {
	err := runNormalize([]string{"-lang", "lua", "-project", filepath.Join(t.TempDir(), "p.json"), literal}, &bytes.Buffer{})
	if err == nil {
		t.Fatalf("expected an unknown dialect error")
	}
}

func TestCheckCorruptProjectTilemap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.json")
	body := `{"tilemaps":[{"id":"t1","meta":{"display_name":"lvl"},"data":null}]}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(dir, "main.ts")
	if err := os.WriteFile(src, []byte("let a = tilemap`lvl`\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	err := runCheck([]string{"-project", path, "-walls", src}, &out)
	if !errors.Is(err, errInvalidFields) {
		t.Fatalf("expected errInvalidFields, got %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != src+":1: grey block" {
		t.Fatalf("output = %q", got)
	}
}
