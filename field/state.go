package field

import "github.com/milk9111/tilemapfield/asset"

// State is what a field currently holds: exactly one of Unbound, Invalid or
// Bound.
type State interface {
	isState()
}

// Unbound is a field with no text.
type Unbound struct{}

// Invalid is a grey block: text that could not be turned into an asset,
// kept verbatim.
type Invalid struct {
	Raw string
}

// Bound is a field backed by a live asset.
type Bound struct {
	Asset asset.Asset
}

func (Unbound) isState() {}
func (Invalid) isState() {}
func (Bound) isState()   {}
