package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tilemapfield/codec"
	"github.com/milk9111/tilemapfield/field"
	"github.com/milk9111/tilemapfield/project"
)

func main() {
	projectPath := flag.String("project", "project.json", "project file")
	optionsPath := flag.String("options", "", "optional YAML file with field options")
	lang := flag.String("lang", string(codec.TypeScript), "source language: typescript or python")
	zoom := flag.Int("zoom", 2, "pixel zoom")
	flag.Parse()

	p, err := project.Load(*projectPath)
	if err != nil {
		log.Fatalf("Failed to load project: %v", err)
	}
	opts := field.DefaultOptions()
	if *optionsPath != "" {
		if opts, err = field.LoadOptions(*optionsPath); err != nil {
			log.Fatalf("Failed to load options: %v", err)
		}
	}

	viewer := NewViewer(*zoom)
	deps := field.Deps{Tiles: p, Tilemaps: p}
	kind := field.NewTilemapKind(deps, opts).WithDialect(codec.Dialect(strings.ToLower(*lang)))
	f := field.New(kind, viewer, opts)
	f.SetValue(strings.Join(flag.Args(), " "))
	if err := f.ShowEditor(); err != nil {
		log.Fatalf("Cannot open editor: %v", err)
	}

	w, h := viewer.WindowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("tilemap viewer")
	if err := ebiten.RunGame(viewer); err != nil {
		log.Fatal(err)
	}

	if f.Editing() {
		// window closed without Esc or Q
		viewer.finish(nil)
	}
	if _, ok := f.State().(field.Bound); !ok {
		f.Dispose()
		return
	}
	f.Commit()
	if err := p.Save(*projectPath); err != nil {
		log.Fatalf("Failed to save project: %v", err)
	}
	fmt.Println(f.Value())
}
