package asset

// Type identifies the kind of a project asset.
type Type string

const (
	TypeTile    Type = "tile"
	TypeTilemap Type = "tilemap"
)

// Asset is implemented by everything a field can bind to.
type Asset interface {
	AssetID() string
	AssetType() Type
	Name() string
}

type Meta struct {
	DisplayName string `json:"display_name,omitempty"`
}

// Tile is a single reusable bitmap. JRESData holds the base64 bitmap payload;
// an empty payload means the tile still has to be resolved from the registry.
type Tile struct {
	ID       string `json:"id"`
	Meta     Meta   `json:"meta,omitempty"`
	JRESData string `json:"jres_data,omitempty"`
}

func (t *Tile) AssetID() string { return t.ID }
func (t *Tile) AssetType() Type { return TypeTile }
func (t *Tile) Name() string {
	if t.Meta.DisplayName != "" {
		return t.Meta.DisplayName
	}
	return t.ID
}

// Resolved reports whether the tile carries inline bitmap data.
func (t *Tile) Resolved() bool {
	return t.JRESData != ""
}

// Grid is a dense row-major array of byte cells.
type Grid struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Cells  []byte `json:"cells"`
}

func NewGrid(width, height int) *Grid {
	n := 0
	if width > 0 && height > 0 {
		n = width * height
	}
	return &Grid{Width: width, Height: height, Cells: make([]byte, n)}
}

// Get returns the cell at (x, y), or 0 when out of range.
func (g *Grid) Get(x, y int) byte {
	if g == nil || x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return 0
	}
	idx := y*g.Width + x
	if idx >= len(g.Cells) {
		return 0
	}
	return g.Cells[idx]
}

// Set writes the cell at (x, y). Out of range writes are ignored.
func (g *Grid) Set(x, y int, v byte) bool {
	if g == nil || x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return false
	}
	idx := y*g.Width + x
	if idx >= len(g.Cells) {
		return false
	}
	g.Cells[idx] = v
	return true
}

func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	cells := make([]byte, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{Width: g.Width, Height: g.Height, Cells: cells}
}

// Wall is the walls overlay value for a blocked cell.
const Wall byte = 2

type Tileset struct {
	TileWidth int    `json:"tile_width"`
	Tiles     []Tile `json:"tiles"`
}

// Index returns the position of the tile with the given id, or -1.
func (ts *Tileset) Index(id string) int {
	if ts == nil {
		return -1
	}
	for i := range ts.Tiles {
		if ts.Tiles[i].ID == id {
			return i
		}
	}
	return -1
}

// TilemapData is the grid, walls overlay and tileset of a tilemap asset.
type TilemapData struct {
	Tilemap *Grid    `json:"tilemap"`
	Layers  *Grid    `json:"layers"`
	Tileset *Tileset `json:"tileset"`

	// Populated by an editor session and consumed by reconciliation.
	EditedTiles  []string `json:"-"`
	DeletedTiles []string `json:"-"`
}

func (d *TilemapData) Clone() *TilemapData {
	if d == nil {
		return nil
	}
	out := &TilemapData{
		Tilemap: d.Tilemap.Clone(),
		Layers:  d.Layers.Clone(),
	}
	if d.Tileset != nil {
		tiles := make([]Tile, len(d.Tileset.Tiles))
		copy(tiles, d.Tileset.Tiles)
		out.Tileset = &Tileset{TileWidth: d.Tileset.TileWidth, Tiles: tiles}
	}
	out.EditedTiles = append([]string(nil), d.EditedTiles...)
	out.DeletedTiles = append([]string(nil), d.DeletedTiles...)
	return out
}

// Tilemap is a named tilemap asset.
type Tilemap struct {
	ID   string       `json:"id"`
	Meta Meta         `json:"meta,omitempty"`
	Data *TilemapData `json:"data"`
}

func (t *Tilemap) AssetID() string { return t.ID }
func (t *Tilemap) AssetType() Type { return TypeTilemap }
func (t *Tilemap) Name() string {
	if t.Meta.DisplayName != "" {
		return t.Meta.DisplayName
	}
	return t.ID
}
