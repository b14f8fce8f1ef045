// Package codec converts between the text a tilemap field embeds in program
// source and the structured asset.TilemapData it stands for.
package codec

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/milk9111/tilemapfield/asset"
)

// Dialect is the source language the literal is embedded in.
type Dialect string

const (
	TypeScript Dialect = "typescript"
	Python     Dialect = "python"
)

var (
	tsLiteralRe = regexp.MustCompile("(?s)^\\s*tiles\\s*\\.\\s*createTilemap\\s*\\(\\s*hex\\s*`([^`]*)`\\s*,\\s*img\\s*`([^`]*)`\\s*,\\s*\\[([^\\]]*)\\]\\s*,\\s*TileScale\\s*\\.\\s*(\\w+)\\s*\\)\\s*;?\\s*$")
	pyLiteralRe = regexp.MustCompile(`(?s)^\s*tiles\s*\.\s*create_tilemap\s*\(\s*hex\s*\(\s*"""(.*?)"""\s*\)\s*,\s*img\s*\(\s*"""(.*?)"""\s*\)\s*,\s*\[([^\]]*)\]\s*,\s*TileScale\s*\.\s*(\w+)\s*\)\s*$`)
	tileIDRe    = regexp.MustCompile(`^[A-Za-z_$][\w$]*(\.[A-Za-z_$][\w$]*)*$`)
)

var ErrUnknownDialect = errors.New("codec: unknown dialect")

// scale names per dialect, keyed by tile width.
var scaleNames = map[Dialect]map[int]string{
	TypeScript: {8: "Eight", 16: "Sixteen", 32: "ThirtyTwo"},
	Python:     {8: "EIGHT", 16: "SIXTEEN", 32: "THIRTY_TWO"},
}

// Decode parses an inline tilemap literal. It returns nil for anything it
// cannot parse; the result is not validated (see asset.IsValid).
func Decode(text string, d Dialect) *asset.TilemapData {
	var re *regexp.Regexp
	switch d {
	case TypeScript:
		re = tsLiteralRe
	case Python:
		re = pyLiteralRe
	default:
		return nil
	}

	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	grid := decodeHexGrid(m[1])
	if grid == nil {
		return nil
	}
	walls := decodeWalls(m[2])
	if walls == nil {
		return nil
	}
	tiles, ok := decodeTileList(m[3])
	if !ok {
		return nil
	}
	tileWidth := scaleWidth(d, m[4])
	if tileWidth == 0 {
		return nil
	}

	return &asset.TilemapData{
		Tilemap: grid,
		Layers:  walls,
		Tileset: &asset.Tileset{TileWidth: tileWidth, Tiles: tiles},
	}
}

// Encode renders data as an inline literal for the given dialect.
func Encode(data *asset.TilemapData, d Dialect) (string, error) {
	if err := checkEncodable(data); err != nil {
		return "", err
	}
	names, ok := scaleNames[d]
	if !ok {
		return "", ErrUnknownDialect
	}
	scale, ok := names[data.Tileset.TileWidth]
	if !ok {
		return "", fmt.Errorf("codec: unsupported tile width %d", data.Tileset.TileWidth)
	}

	hexGrid := encodeHexGrid(data.Tilemap)
	walls, err := encodeWalls(data.Layers)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(data.Tileset.Tiles))
	for i, t := range data.Tileset.Tiles {
		ids[i] = t.ID
	}

	var sb strings.Builder
	switch d {
	case TypeScript:
		fmt.Fprintf(&sb, "tiles.createTilemap(hex`%s`, img`\n%s`, [%s], TileScale.%s)", hexGrid, walls, strings.Join(ids, ","), scale)
	case Python:
		fmt.Fprintf(&sb, "tiles.create_tilemap(hex(\"\"\"%s\"\"\"), img(\"\"\"\n%s\"\"\"), [%s], TileScale.%s)", hexGrid, walls, strings.Join(ids, ", "), scale)
	}
	return sb.String(), nil
}

func checkEncodable(data *asset.TilemapData) error {
	if data == nil || data.Tilemap == nil || data.Layers == nil || data.Tileset == nil {
		return errors.New("codec: incomplete tilemap data")
	}
	g := data.Tilemap
	if g.Width <= 0 || g.Height <= 0 || g.Width > 0xffff || g.Height > 0xffff {
		return fmt.Errorf("codec: bad dimensions %dx%d", g.Width, g.Height)
	}
	if len(g.Cells) != g.Width*g.Height {
		return fmt.Errorf("codec: %d cells for a %dx%d grid", len(g.Cells), g.Width, g.Height)
	}
	if data.Layers.Width != g.Width || data.Layers.Height != g.Height || len(data.Layers.Cells) != len(g.Cells) {
		return errors.New("codec: walls do not match tilemap size")
	}
	for i, c := range g.Cells {
		if int(c) >= len(data.Tileset.Tiles) {
			return fmt.Errorf("codec: cell %d references tile %d of %d", i, c, len(data.Tileset.Tiles))
		}
	}
	for i, t := range data.Tileset.Tiles {
		if !tileIDRe.MatchString(t.ID) {
			return fmt.Errorf("codec: tileset entry %d has bad id %q", i, t.ID)
		}
	}
	return nil
}

func decodeHexGrid(s string) *asset.Grid {
	s = strings.Join(strings.Fields(s), "")
	b, err := hex.DecodeString(s)
	if err != nil || len(b) < 4 {
		return nil
	}
	w := int(binary.LittleEndian.Uint16(b[0:2]))
	h := int(binary.LittleEndian.Uint16(b[2:4]))
	cells := make([]byte, len(b)-4)
	copy(cells, b[4:])
	return &asset.Grid{Width: w, Height: h, Cells: cells}
}

func encodeHexGrid(g *asset.Grid) string {
	b := make([]byte, 4+len(g.Cells))
	binary.LittleEndian.PutUint16(b[0:2], uint16(g.Width))
	binary.LittleEndian.PutUint16(b[2:4], uint16(g.Height))
	copy(b[4:], g.Cells)
	return hex.EncodeToString(b)
}

// decodeWalls parses an img literal: one row per line, '.' for open cells and
// a hex digit otherwise.
func decodeWalls(s string) *asset.Grid {
	var rows [][]byte
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		row := make([]byte, 0, len(line))
		for _, r := range line {
			switch {
			case r == ' ' || r == '\t' || r == '\r':
			case r == '.':
				row = append(row, 0)
			case r >= '0' && r <= '9':
				row = append(row, byte(r-'0'))
			case r >= 'a' && r <= 'f':
				row = append(row, byte(r-'a'+10))
			case r >= 'A' && r <= 'F':
				row = append(row, byte(r-'A'+10))
			default:
				return nil
			}
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return &asset.Grid{}
	}
	w := len(rows[0])
	cells := make([]byte, 0, w*len(rows))
	for _, row := range rows {
		if len(row) != w {
			return nil
		}
		cells = append(cells, row...)
	}
	return &asset.Grid{Width: w, Height: len(rows), Cells: cells}
}

func encodeWalls(g *asset.Grid) (string, error) {
	var sb strings.Builder
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			v := g.Get(x, y)
			switch {
			case v == 0:
				sb.WriteByte('.')
			case v < 16:
				sb.WriteByte("0123456789abcdef"[v])
			default:
				return "", fmt.Errorf("codec: wall value %d at %d,%d", v, x, y)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func decodeTileList(s string) ([]asset.Tile, bool) {
	tiles := []asset.Tile{}
	for _, part := range strings.Split(s, ",") {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		if !tileIDRe.MatchString(id) {
			return nil, false
		}
		tiles = append(tiles, asset.Tile{ID: id})
	}
	return tiles, true
}

func scaleWidth(d Dialect, name string) int {
	for w, n := range scaleNames[d] {
		if n == name {
			return w
		}
	}
	return 0
}
