package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/milk9111/tilemapfield/asset"
	"github.com/milk9111/tilemapfield/codec"
	"github.com/milk9111/tilemapfield/field"
	"github.com/milk9111/tilemapfield/project"
)

// env holds the flags every command shares.
type env struct {
	projectPath string
	optionsPath string
	lang        string
}

func (e *env) bind(fs *flag.FlagSet) {
	fs.StringVar(&e.projectPath, "project", "project.json", "project file (created on save if missing)")
	fs.StringVar(&e.optionsPath, "options", "", "optional YAML file with field options")
	fs.StringVar(&e.lang, "lang", string(codec.TypeScript), "source language: typescript or python")
}

func (e *env) dialect() (codec.Dialect, error) {
	switch d := codec.Dialect(strings.ToLower(e.lang)); d {
	case codec.TypeScript, codec.Python:
		return d, nil
	case "ts":
		return codec.TypeScript, nil
	case "py":
		return codec.Python, nil
	default:
		return "", fmt.Errorf("%w: %s", codec.ErrUnknownDialect, e.lang)
	}
}

func (e *env) options() (field.Options, error) {
	if e.optionsPath == "" {
		return field.DefaultOptions(), nil
	}
	return field.LoadOptions(e.optionsPath)
}

// session is a loaded project plus what is needed to build fields over it.
type session struct {
	env     *env
	project *project.Project
	opts    field.Options
	dialect codec.Dialect
}

func (e *env) open() (*session, error) {
	d, err := e.dialect()
	if err != nil {
		return nil, err
	}
	opts, err := e.options()
	if err != nil {
		return nil, err
	}
	p, err := project.Load(e.projectPath)
	if err != nil {
		return nil, err
	}
	return &session{env: e, project: p, opts: opts, dialect: d}, nil
}

func (s *session) newField(editor field.Editor) *field.Field {
	if editor == nil {
		editor = closedEditor
	}
	deps := field.Deps{Tiles: s.project, Tilemaps: s.project}
	return field.New(field.NewTilemapKind(deps, s.opts).WithDialect(s.dialect), editor, s.opts)
}

func (s *session) save() error {
	return s.project.Save(s.env.projectPath)
}

// closedEditor cancels every session; used by commands that never edit.
var closedEditor = field.EditorFunc(func(_ field.Request, onClose func(asset.Asset)) {
	onClose(nil)
})

// textArg returns the single positional argument, reading stdin for "-".
func textArg(fs *flag.FlagSet) (string, error) {
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%s: expected one text argument, got %d", fs.Name(), fs.NArg())
	}
	if arg := fs.Arg(0); arg != "-" {
		return arg, nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("%s: read stdin: %w", fs.Name(), err)
	}
	return strings.TrimRight(string(b), "\n"), nil
}

func describe(f *field.Field) string {
	switch st := f.State().(type) {
	case field.Bound:
		return fmt.Sprintf("bound %s (%s)", st.Asset.Name(), st.Asset.AssetID())
	case field.Invalid:
		return "grey block"
	default:
		return "empty"
	}
}

func boundTilemap(f *field.Field) (*asset.Tilemap, error) {
	tm, ok := f.Asset().(*asset.Tilemap)
	if !ok || tm == nil || !asset.IsValid(tm.Data) {
		return nil, fmt.Errorf("field is %s", describe(f))
	}
	return tm, nil
}
