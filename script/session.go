package script

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/d5/tengo/v2"
	"github.com/milk9111/tilemapfield/asset"
	"github.com/milk9111/tilemapfield/codec"
	"github.com/milk9111/tilemapfield/field"
)

const tileNamespace = "myTiles."

var tileNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type session struct {
	data      *asset.TilemapData
	opts      field.Options
	cancelled bool
}

func (s *session) globals() map[string]interface{} {
	ids := make([]tengo.Object, len(s.data.Tileset.Tiles))
	for i, t := range s.data.Tileset.Tiles {
		ids[i] = &tengo.String{Value: t.ID}
	}

	return map[string]interface{}{
		"width":          s.data.Tilemap.Width,
		"height":         s.data.Tilemap.Height,
		"tile_width":     s.data.Tileset.TileWidth,
		"filter":         s.opts.Filter,
		"disable_resize": s.opts.DisableResize,
		"tileset":        &tengo.ImmutableArray{Value: ids},

		"get_cell":    s.fn("get_cell", s.getCell),
		"set_cell":    s.fn("set_cell", s.setCell),
		"get_wall":    s.fn("get_wall", s.getWall),
		"set_wall":    s.fn("set_wall", s.setWall),
		"tile_index":  s.fn("tile_index", s.tileIndex),
		"add_tile":    s.fn("add_tile", s.addTile),
		"edit_tile":   s.fn("edit_tile", s.editTile),
		"delete_tile": s.fn("delete_tile", s.deleteTile),
		"solid_tile":  s.fn("solid_tile", s.solidTile),
		"resize":      s.fn("resize", s.resize),
		"fill":        s.fn("fill", s.fill),
		"cancel":      s.fn("cancel", s.cancel),
	}
}

func (s *session) fn(name string, f tengo.CallableFunc) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: f}
}

func intArgs(args []tengo.Object, n int) ([]int, error) {
	if len(args) != n {
		return nil, tengo.ErrWrongNumArguments
	}
	out := make([]int, n)
	for i, a := range args {
		v, ok := tengo.ToInt(a)
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: fmt.Sprintf("arg %d", i), Expected: "int", Found: a.TypeName()}
		}
		out[i] = v
	}
	return out, nil
}

func stringArg(args []tengo.Object, i int) (string, error) {
	if i >= len(args) {
		return "", tengo.ErrWrongNumArguments
	}
	v, ok := tengo.ToString(args[i])
	if !ok {
		return "", tengo.ErrInvalidArgumentType{Name: fmt.Sprintf("arg %d", i), Expected: "string", Found: args[i].TypeName()}
	}
	return v, nil
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func (s *session) getCell(args ...tengo.Object) (tengo.Object, error) {
	xy, err := intArgs(args, 2)
	if err != nil {
		return nil, err
	}
	return &tengo.Int{Value: int64(s.data.Tilemap.Get(xy[0], xy[1]))}, nil
}

func (s *session) setCell(args ...tengo.Object) (tengo.Object, error) {
	v, err := intArgs(args, 3)
	if err != nil {
		return nil, err
	}
	if v[2] < 0 || v[2] >= len(s.data.Tileset.Tiles) {
		return nil, fmt.Errorf("tile index %d out of range", v[2])
	}
	return boolObject(s.data.Tilemap.Set(v[0], v[1], byte(v[2]))), nil
}

func (s *session) getWall(args ...tengo.Object) (tengo.Object, error) {
	xy, err := intArgs(args, 2)
	if err != nil {
		return nil, err
	}
	return boolObject(s.data.Layers.Get(xy[0], xy[1]) == asset.Wall), nil
}

func (s *session) setWall(args ...tengo.Object) (tengo.Object, error) {
	if len(args) != 3 {
		return nil, tengo.ErrWrongNumArguments
	}
	xy, err := intArgs(args[:2], 2)
	if err != nil {
		return nil, err
	}
	wall, ok := tengo.ToBool(args[2])
	if !ok {
		return nil, tengo.ErrInvalidArgumentType{Name: "arg 2", Expected: "bool", Found: args[2].TypeName()}
	}
	var v byte
	if wall {
		v = asset.Wall
	}
	return boolObject(s.data.Layers.Set(xy[0], xy[1], v)), nil
}

func (s *session) tileIndex(args ...tengo.Object) (tengo.Object, error) {
	id, err := stringArg(args, 0)
	if err != nil {
		return nil, err
	}
	return &tengo.Int{Value: int64(s.data.Tileset.Index(id))}, nil
}

// addTile appends a new tile named myTiles.<name> and marks it edited so the
// registry picks it up on close.
func (s *session) addTile(args ...tengo.Object) (tengo.Object, error) {
	if len(args) != 2 {
		return nil, tengo.ErrWrongNumArguments
	}
	name, err := stringArg(args, 0)
	if err != nil {
		return nil, err
	}
	jres, err := stringArg(args, 1)
	if err != nil {
		return nil, err
	}
	if !tileNameRe.MatchString(name) {
		return nil, fmt.Errorf("bad tile name %q", name)
	}
	if _, err := codec.DecodeBitmap(jres); err != nil {
		return nil, fmt.Errorf("tile %s: %v", name, err)
	}

	id := tileNamespace + name
	if i := s.data.Tileset.Index(id); i >= 0 {
		return &tengo.Int{Value: int64(i)}, nil
	}
	if len(s.data.Tileset.Tiles) > 0xff {
		return nil, errors.New("tileset is full")
	}
	s.data.Tileset.Tiles = append(s.data.Tileset.Tiles, asset.Tile{ID: id, Meta: asset.Meta{DisplayName: name}, JRESData: jres})
	s.data.EditedTiles = append(s.data.EditedTiles, id)
	return &tengo.Int{Value: int64(len(s.data.Tileset.Tiles) - 1)}, nil
}

func (s *session) editTile(args ...tengo.Object) (tengo.Object, error) {
	if len(args) != 2 {
		return nil, tengo.ErrWrongNumArguments
	}
	id, err := stringArg(args, 0)
	if err != nil {
		return nil, err
	}
	jres, err := stringArg(args, 1)
	if err != nil {
		return nil, err
	}
	if _, err := codec.DecodeBitmap(jres); err != nil {
		return nil, fmt.Errorf("tile %s: %v", id, err)
	}
	i := s.data.Tileset.Index(id)
	if i < 0 {
		return tengo.FalseValue, nil
	}
	s.data.Tileset.Tiles[i].JRESData = jres
	s.data.EditedTiles = append(s.data.EditedTiles, id)
	return tengo.TrueValue, nil
}

// deleteTile marks a tile deleted and clears the cells that used it. The
// entry itself is left for trimming on close.
func (s *session) deleteTile(args ...tengo.Object) (tengo.Object, error) {
	id, err := stringArg(args, 0)
	if err != nil {
		return nil, err
	}
	i := s.data.Tileset.Index(id)
	if i <= 0 {
		return tengo.FalseValue, nil
	}
	for c, v := range s.data.Tilemap.Cells {
		if int(v) == i {
			s.data.Tilemap.Cells[c] = 0
		}
	}
	s.data.DeletedTiles = append(s.data.DeletedTiles, id)
	return tengo.TrueValue, nil
}

func (s *session) solidTile(args ...tengo.Object) (tengo.Object, error) {
	v, err := intArgs(args, 1)
	if err != nil {
		return nil, err
	}
	return &tengo.String{Value: codec.SolidTile(s.data.Tileset.TileWidth, byte(v[0]))}, nil
}

func (s *session) resize(args ...tengo.Object) (tengo.Object, error) {
	wh, err := intArgs(args, 2)
	if err != nil {
		return nil, err
	}
	if s.opts.DisableResize {
		return nil, errors.New("resizing is disabled for this field")
	}
	if wh[0] <= 0 || wh[1] <= 0 || wh[0] > 0xffff || wh[1] > 0xffff {
		return nil, fmt.Errorf("bad size %dx%d", wh[0], wh[1])
	}
	s.data.Tilemap = resized(s.data.Tilemap, wh[0], wh[1])
	s.data.Layers = resized(s.data.Layers, wh[0], wh[1])
	return tengo.TrueValue, nil
}

func resized(g *asset.Grid, w, h int) *asset.Grid {
	out := asset.NewGrid(w, h)
	for y := 0; y < h && y < g.Height; y++ {
		for x := 0; x < w && x < g.Width; x++ {
			out.Set(x, y, g.Get(x, y))
		}
	}
	return out
}

func (s *session) fill(args ...tengo.Object) (tengo.Object, error) {
	v, err := intArgs(args, 1)
	if err != nil {
		return nil, err
	}
	if v[0] < 0 || v[0] >= len(s.data.Tileset.Tiles) {
		return nil, fmt.Errorf("tile index %d out of range", v[0])
	}
	for i := range s.data.Tilemap.Cells {
		s.data.Tilemap.Cells[i] = byte(v[0])
	}
	return tengo.UndefinedValue, nil
}

func (s *session) cancel(args ...tengo.Object) (tengo.Object, error) {
	s.cancelled = true
	return tengo.UndefinedValue, nil
}
