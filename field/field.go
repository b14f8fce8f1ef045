// Package field implements the block-editor field that embeds an asset in
// program text and keeps it in sync with the project's asset stores.
package field

import (
	"errors"
	"sync"

	"github.com/milk9111/tilemapfield/asset"
)

var (
	ErrGreyBlock = errors.New("field: value is not a valid asset")
	ErrDisposed  = errors.New("field: disposed")
	ErrEditing   = errors.New("field: editor already open")
)

// AssetKind is the per-asset-type behaviour a Field delegates to.
type AssetKind interface {
	AssetType() asset.Type
	// CreateNewAsset turns field text into a state. It never fails; text it
	// cannot use comes back as Invalid or Unbound.
	CreateNewAsset(text string) State
	// BlankAsset creates a fresh asset for editing an empty field.
	BlankAsset() (asset.Asset, error)
	// OnEditorClose reconciles an edited asset back into the project.
	OnEditorClose(result asset.Asset)
	ValueText(s State) string
}

// Owner is implemented by kinds that create assets on behalf of a field and
// must drop them again if the field goes away before it takes ownership.
type Owner interface {
	Commit()
	Discard(a asset.Asset)
}

// Field is a single field instance. It is driven from one goroutine; the
// editor's close callback is the only re-entry point.
type Field struct {
	kind    AssetKind
	editor  Editor
	options Options

	state    State
	session  *session
	disposed bool
}

type session struct {
	once sync.Once
}

func New(kind AssetKind, editor Editor, opts Options) *Field {
	return &Field{kind: kind, editor: editor, options: opts, state: Unbound{}}
}

// SetValue replaces the field's text. An open editor session is abandoned;
// its close callback is ignored.
func (f *Field) SetValue(text string) {
	if f.disposed {
		return
	}
	f.session = nil
	f.discard()
	f.state = f.kind.CreateNewAsset(text)
}

// Value returns the text the field serialises to.
func (f *Field) Value() string {
	return f.kind.ValueText(f.state)
}

func (f *Field) State() State {
	return f.state
}

func (f *Field) IsGreyBlock() bool {
	_, ok := f.state.(Invalid)
	return ok
}

// Asset returns the bound asset, or nil.
func (f *Field) Asset() asset.Asset {
	if b, ok := f.state.(Bound); ok {
		return b.Asset
	}
	return nil
}

func (f *Field) Editing() bool {
	return f.session != nil
}

// ShowEditor hands the bound asset to the editor. An empty field gets a
// blank asset first; a grey block cannot be edited.
func (f *Field) ShowEditor() error {
	if f.disposed {
		return ErrDisposed
	}
	if f.session != nil {
		return ErrEditing
	}

	var a asset.Asset
	switch st := f.state.(type) {
	case Invalid:
		return ErrGreyBlock
	case Bound:
		a = st.Asset
	default:
		blank, err := f.kind.BlankAsset()
		if err != nil {
			return err
		}
		f.state = Bound{Asset: blank}
		a = blank
	}

	s := &session{}
	f.session = s
	f.editor.Open(Request{Asset: a, Type: f.kind.AssetType(), Options: f.options}, func(result asset.Asset) {
		f.closeSession(s, result)
	})
	return nil
}

func (f *Field) closeSession(s *session, result asset.Asset) {
	s.once.Do(func() {
		if f.disposed || f.session != s {
			return
		}
		f.session = nil
		if result == nil {
			return
		}
		f.kind.OnEditorClose(result)
		f.state = Bound{Asset: result}
	})
}

// Commit makes the field the owner of an asset it created.
func (f *Field) Commit() {
	if o, ok := f.kind.(Owner); ok {
		o.Commit()
	}
}

// Dispose detaches the field. A pending editor close is ignored and an asset
// the field created but never committed is removed from the store.
func (f *Field) Dispose() {
	if f.disposed {
		return
	}
	f.discard()
	f.disposed = true
	f.session = nil
}

func (f *Field) discard() {
	o, ok := f.kind.(Owner)
	if !ok {
		return
	}
	if b, ok := f.state.(Bound); ok {
		o.Discard(b.Asset)
	}
}
