package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/milk9111/tilemapfield/codec"
	"github.com/milk9111/tilemapfield/collision"
	"github.com/milk9111/tilemapfield/project"
	"github.com/milk9111/tilemapfield/render"
	"github.com/milk9111/tilemapfield/script"
	"golang.design/x/clipboard"
)

var errInvalidFields = errors.New("source has invalid tilemap fields")

func runCheck(args []string, out io.Writer) error {
	var e env
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	e.bind(fs)
	walls := fs.Bool("walls", false, "report the collision boxes built from each tilemap's walls")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("check: expected one source file")
	}

	s, err := e.open()
	if err != nil {
		return err
	}
	return check(s, fs.Arg(0), *walls, out)
}

// check reports every field in file. Fields are disposed afterwards so the
// project is left as it was.
func check(s *session, file string, walls bool, out io.Writer) error {
	src, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	invalid := 0
	for _, m := range codec.FindFields(string(src), s.dialect) {
		f := s.newField(nil)
		f.SetValue(m.Text)
		fmt.Fprintf(out, "%s:%d: %s\n", file, m.Line, describe(f))
		if f.IsGreyBlock() {
			invalid++
		}
		if walls {
			if tm, err := boundTilemap(f); err == nil {
				w := collision.Build(tm.Data, tm.Data.Tileset.TileWidth)
				fmt.Fprintf(out, "\twalls: %d boxes covering %d cells\n", len(w.Boxes()), w.Area())
			}
		}
		f.Dispose()
	}
	if invalid > 0 {
		return fmt.Errorf("check: %s: %w (%d)", file, errInvalidFields, invalid)
	}
	return nil
}

func runNormalize(args []string, out io.Writer) error {
	var e env
	fs := flag.NewFlagSet("normalize", flag.ContinueOnError)
	e.bind(fs)
	copyOut := fs.Bool("copy", false, "also copy the value text to the clipboard")
	if err := fs.Parse(args); err != nil {
		return err
	}
	text, err := textArg(fs)
	if err != nil {
		return err
	}

	s, err := e.open()
	if err != nil {
		return err
	}
	f := s.newField(nil)
	f.SetValue(text)
	if f.IsGreyBlock() {
		return errors.New("normalize: text is not a valid tilemap")
	}
	f.Commit()
	if err := s.save(); err != nil {
		return err
	}

	value := f.Value()
	fmt.Fprintln(out, value)
	if *copyOut {
		if err := clipboard.Init(); err != nil {
			return fmt.Errorf("normalize: clipboard: %w", err)
		}
		clipboard.Write(clipboard.FmtText, []byte(value))
	}
	return nil
}

func runEdit(args []string, out io.Writer) error {
	var e env
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	e.bind(fs)
	scriptPath := fs.String("script", "", "tengo script applied to the tilemap")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *scriptPath == "" {
		return errors.New("edit: -script is required")
	}
	text, err := textArg(fs)
	if err != nil {
		return err
	}
	src, err := os.ReadFile(*scriptPath)
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}

	s, err := e.open()
	if err != nil {
		return err
	}
	ed := script.New(src)
	f := s.newField(ed)
	f.SetValue(text)
	if err := f.ShowEditor(); err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	if ed.Err != nil {
		f.Dispose()
		return ed.Err
	}
	f.Commit()
	if err := s.save(); err != nil {
		return err
	}
	fmt.Fprintln(out, f.Value())
	return nil
}

func runRender(args []string) error {
	var e env
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	e.bind(fs)
	outPath := fs.String("out", "tilemap.png", "output PNG file")
	scale := fs.Int("scale", 1, "pixel scale")
	walls := fs.Bool("walls", false, "tint wall cells")
	if err := fs.Parse(args); err != nil {
		return err
	}
	text, err := textArg(fs)
	if err != nil {
		return err
	}

	s, err := e.open()
	if err != nil {
		return err
	}
	f := s.newField(nil)
	defer f.Dispose()
	f.SetValue(text)
	tm, err := boundTilemap(f)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	img := render.Tilemap(tm.Data, render.Options{Scale: *scale, Walls: *walls})
	if err := os.MkdirAll(filepath.Dir(*outPath), 0755); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	file, err := os.Create(*outPath)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("render: encode %s: %w", *outPath, err)
	}
	log.Printf("render: wrote %s (%dx%d)", *outPath, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

func runWatch(args []string, out io.Writer) error {
	var e env
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	e.bind(fs)
	walls := fs.Bool("walls", false, "report collision boxes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("watch: expected one source file")
	}
	file := fs.Arg(0)

	recheck := func() {
		s, err := e.open()
		if err != nil {
			log.Printf("watch: %v", err)
			return
		}
		if err := check(s, file, *walls, out); err != nil {
			log.Printf("watch: %v", err)
		}
	}

	w, err := project.NewWatcher(e.projectPath)
	if err != nil {
		return err
	}
	defer w.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	recheck()
	for {
		select {
		case name, ok := <-w.Events:
			if !ok {
				return nil
			}
			log.Printf("watch: %s changed", name)
			recheck()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch: %v", err)
		case <-interrupt:
			return nil
		}
	}
}
