// Package script runs tilemap editing sessions from tengo scripts, so a field
// can be edited headlessly (batch fixes, tests, CI).
package script

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/tilemapfield/asset"
	"github.com/milk9111/tilemapfield/field"
)

var ErrCancelled = errors.New("script: session cancelled")

// Editor is a field.Editor that applies a tengo script to the tilemap.
type Editor struct {
	Source  []byte
	Timeout time.Duration

	// Err is the error of the last session, if any.
	Err error
}

func New(src []byte) *Editor {
	return &Editor{Source: src, Timeout: 5 * time.Second}
}

// Open runs the script synchronously and reports the edited copy, or nil when
// the script failed or called cancel().
func (e *Editor) Open(req field.Request, onClose func(result asset.Asset)) {
	ctx := context.Background()
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	result, err := e.Run(ctx, req)
	e.Err = err
	if err != nil {
		if !errors.Is(err, ErrCancelled) {
			log.Printf("script: session error: %v", err)
		}
		onClose(nil)
		return
	}
	onClose(result)
}

// Run applies the script to a copy of the requested tilemap.
func (e *Editor) Run(ctx context.Context, req field.Request) (*asset.Tilemap, error) {
	src, ok := req.Asset.(*asset.Tilemap)
	if !ok || src == nil || !asset.IsValid(src.Data) {
		return nil, fmt.Errorf("script: cannot edit %s asset", req.Type)
	}

	edited := &asset.Tilemap{ID: src.ID, Meta: src.Meta, Data: src.Data.Clone()}
	s := &session{data: edited.Data, opts: req.Options}

	script := tengo.NewScript(e.Source)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	for name, value := range s.globals() {
		if err := script.Add(name, value); err != nil {
			return nil, fmt.Errorf("script: add %s: %w", name, err)
		}
	}

	if _, err := script.RunContext(ctx); err != nil {
		return nil, fmt.Errorf("script: run: %w", err)
	}
	if s.cancelled {
		return nil, ErrCancelled
	}
	return edited, nil
}
