package field

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/milk9111/tilemapfield/asset"
	"github.com/milk9111/tilemapfield/codec"
)

// TilemapKind binds field text to tilemap assets.
type TilemapKind struct {
	deps    Deps
	opts    Options
	dialect codec.Dialect

	// initText is the last text that produced a valid asset. It is what the
	// field falls back to when the bound asset cannot be encoded.
	initText string
	// pending is the id of an asset this kind created and nobody owns yet.
	pending string
}

func NewTilemapKind(deps Deps, opts Options) *TilemapKind {
	return &TilemapKind{deps: deps, opts: opts, dialect: codec.TypeScript}
}

// WithDialect switches the language the kind reads and writes.
func (k *TilemapKind) WithDialect(d codec.Dialect) *TilemapKind {
	k.dialect = d
	return k
}

// NewTilemapField wires a tilemap field to its stores and editor.
func NewTilemapField(deps Deps, editor Editor, opts Options) *Field {
	return New(NewTilemapKind(deps, opts), editor, opts)
}

func (k *TilemapKind) AssetType() asset.Type {
	return asset.TypeTilemap
}

func (k *TilemapKind) InitText() string {
	return k.initText
}

func (k *TilemapKind) CreateNewAsset(text string) State {
	if text != "" {
		text = codec.UnescapeBackticks(text)
	}

	if name, ok := codec.ParseReference(text, k.dialect); ok {
		if tm, ok := k.deps.Tilemaps.LookupAssetByName(name); ok {
			return Bound{Asset: tm}
		}
		if tm, ok := k.deps.Tilemaps.LookupAsset(name); ok {
			return Bound{Asset: tm}
		}
	}

	data := codec.Decode(text, k.dialect)
	if data == nil {
		data = k.deps.Tilemaps.BlankTilemap(k.opts.TileWidth, k.opts.InitWidth, k.opts.InitHeight)
	}

	if asset.IsValid(data) && k.resolveTiles(data) {
		tm, err := k.register(data)
		if err == nil {
			k.initText = text
			return Bound{Asset: tm}
		}
		log.Printf("field: register tilemap: %v", err)
	}

	if strings.TrimSpace(text) != "" {
		return Invalid{Raw: text}
	}
	return Unbound{}
}

// resolveTiles fills in bitmap data for tileset entries that only carry an id.
func (k *TilemapKind) resolveTiles(d *asset.TilemapData) bool {
	for i := range d.Tileset.Tiles {
		t := &d.Tileset.Tiles[i]
		if t.Resolved() {
			continue
		}
		resolved, ok := k.deps.Tiles.ResolveTile(t.ID)
		if !ok {
			return false
		}
		*t = resolved
	}
	return true
}

func (k *TilemapKind) register(d *asset.TilemapData) (*asset.Tilemap, error) {
	id, err := k.deps.Tilemaps.CreateFromData(d)
	if err != nil {
		return nil, err
	}
	tm, ok := k.deps.Tilemaps.GetByID(id)
	if !ok {
		return nil, fmt.Errorf("created tilemap %s vanished", id)
	}
	k.pending = id
	return tm, nil
}

// BlankAsset registers an empty tilemap whose tileset holds the transparency
// tile for the configured tile width.
func (k *TilemapKind) BlankAsset() (asset.Asset, error) {
	data := k.deps.Tilemaps.BlankTilemap(k.opts.TileWidth, k.opts.InitWidth, k.opts.InitHeight)
	if data.Tileset == nil {
		data.Tileset = &asset.Tileset{TileWidth: k.opts.TileWidth}
	}
	if len(data.Tileset.Tiles) == 0 {
		data.Tileset.Tiles = append(data.Tileset.Tiles, k.transparency())
	}
	if !asset.IsValid(data) {
		return nil, fmt.Errorf("field: blank %dx%d tilemap is not valid", k.opts.InitWidth, k.opts.InitHeight)
	}
	tm, err := k.register(data)
	if err != nil {
		return nil, fmt.Errorf("field: register blank tilemap: %w", err)
	}
	k.initText = ""
	return tm, nil
}

func (k *TilemapKind) transparency() asset.Tile {
	id := fmt.Sprintf("myTiles.transparency%d", k.opts.TileWidth)
	if t, ok := k.deps.Tiles.ResolveTile(id); ok {
		return t
	}
	return k.deps.Tiles.UpdateTile(asset.Tile{
		ID:       id,
		Meta:     asset.Meta{DisplayName: strings.TrimPrefix(id, "myTiles.")},
		JRESData: codec.SolidTile(k.opts.TileWidth, 0),
	})
}

func (k *TilemapKind) OnEditorClose(result asset.Asset) {
	tm, ok := result.(*asset.Tilemap)
	if !ok || tm == nil {
		return
	}
	Reconcile(k.deps.Tiles, tm.Data)
	if err := k.deps.Tilemaps.UpdateAsset(tm); err != nil {
		log.Printf("field: store edited tilemap: %v", err)
	}
	k.pending = ""
}

func (k *TilemapKind) ValueText(s State) string {
	switch st := s.(type) {
	case Invalid:
		return st.Raw
	case Bound:
		if st.Asset == nil {
			return k.initText
		}
		if name := st.Asset.Name(); name != "" {
			return codec.ReferenceText(name, k.dialect)
		}
		if text, err := k.encode(st.Asset); err == nil {
			return text
		}
		return k.initText
	}
	return ""
}

var errNotTilemap = errors.New("field: asset is not a tilemap")

func (k *TilemapKind) encode(a asset.Asset) (string, error) {
	tm, ok := a.(*asset.Tilemap)
	if !ok {
		return "", errNotTilemap
	}
	return codec.Encode(tm.Data, k.dialect)
}

func (k *TilemapKind) Commit() {
	k.pending = ""
}

func (k *TilemapKind) Discard(a asset.Asset) {
	if a == nil || k.pending == "" || a.AssetID() != k.pending {
		return
	}
	k.deps.Tilemaps.RemoveAsset(k.pending)
	k.pending = ""
}
