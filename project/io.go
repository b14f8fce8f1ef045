package project

import (
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/milk9111/tilemapfield/asset"
)

//go:embed default.json
var defaultFS embed.FS

// Default returns a project seeded with the built-in transparency tiles.
func Default() (*Project, error) {
	data, err := defaultFS.ReadFile("default.json")
	if err != nil {
		return nil, fmt.Errorf("project: read default: %w", err)
	}
	return decode(data)
}

// Load reads a project file. A missing file yields the default project.
func Load(filename string) (*Project, error) {
	b, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return Default()
	}
	if err != nil {
		return nil, fmt.Errorf("project: read %s: %w", filename, err)
	}
	p, err := decode(b)
	if err != nil {
		return nil, fmt.Errorf("project: %s: %w", filename, err)
	}
	return p, nil
}

func decode(b []byte) (*Project, error) {
	var p Project
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("unmarshal project: %w", err)
	}

	// drop entries a hand-edited file may have nulled out
	tiles := p.Tiles[:0]
	for _, t := range p.Tiles {
		if t != nil && t.ID != "" {
			tiles = append(tiles, t)
		}
	}
	p.Tiles = tiles
	maps := p.Tilemaps[:0]
	for _, tm := range p.Tilemaps {
		if tm == nil || tm.ID == "" {
			continue
		}
		if !asset.IsValid(tm.Data) {
			log.Printf("project: dropping invalid tilemap %s", tm.ID)
			continue
		}
		maps = append(maps, tm)
	}
	p.Tilemaps = maps
	return &p, nil
}

// Save writes the project as indented JSON, creating the directory if needed.
func (p *Project) Save(filename string) error {
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}
