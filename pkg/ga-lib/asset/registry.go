package asset

import (
	"sort"

	gaerrors "github.com/cennznet/generic-asset-go/pkg/errors"
)

var defaultRegistry = mustNewRegistry(DefaultAssets...)

// Registry is a read-only table of asset definitions indexed by id and symbol.
type Registry struct {
	byID     map[uint32]Definition
	bySymbol map[string]Definition
}

// NewRegistry builds a registry out of the given definitions. Symbols and ids
// must be unique since each of them must resolve to exactly one asset.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{
		byID:     make(map[uint32]Definition, len(defs)),
		bySymbol: make(map[string]Definition, len(defs)),
	}
	for _, def := range defs {
		if err := def.validate(); err != nil {
			return nil, err
		}
		if _, ok := r.byID[def.ID]; ok {
			return nil, gaerrors.DUPLICATE_ASSET.New("duplicate asset id %d", def.ID).
				WithMetadata(gaerrors.DuplicateAssetMetadata{ID: def.ID, Symbol: def.Symbol})
		}
		if _, ok := r.bySymbol[def.Symbol]; ok {
			return nil, gaerrors.DUPLICATE_ASSET.New("duplicate asset symbol %s", def.Symbol).
				WithMetadata(gaerrors.DuplicateAssetMetadata{ID: def.ID, Symbol: def.Symbol})
		}
		r.byID[def.ID] = def
		r.bySymbol[def.Symbol] = def
	}
	return r, nil
}

// DefaultRegistry returns the registry of DefaultAssets.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Resolve returns the id of the asset with the given symbol.
func (r *Registry) Resolve(symbol string) (uint32, error) {
	def, ok := r.bySymbol[symbol]
	if !ok {
		return 0, gaerrors.UNKNOWN_ASSET_SYMBOL.New("unknown asset symbol %s", symbol).
			WithMetadata(gaerrors.AssetSymbolMetadata{Symbol: symbol})
	}
	return def.ID, nil
}

// Lookup returns the definition of the asset with the given id, if any.
func (r *Registry) Lookup(id uint32) (Definition, bool) {
	def, ok := r.byID[id]
	return def, ok
}

// LookupSymbol returns the definition of the asset with the given symbol, if any.
func (r *Registry) LookupSymbol(symbol string) (Definition, bool) {
	def, ok := r.bySymbol[symbol]
	return def, ok
}

// Definitions returns all definitions sorted by id.
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, 0, len(r.byID))
	for _, def := range r.byID {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].ID < defs[j].ID
	})
	return defs
}

func mustNewRegistry(defs ...Definition) *Registry {
	r, err := NewRegistry(defs...)
	if err != nil {
		panic(err)
	}
	return r
}
