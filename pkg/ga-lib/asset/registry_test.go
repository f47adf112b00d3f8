package asset_test

import (
	"encoding/json"
	"testing"

	gaerrors "github.com/cennznet/generic-asset-go/pkg/errors"
	"github.com/cennznet/generic-asset-go/pkg/ga-lib/asset"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	registry := asset.DefaultRegistry()

	defs := registry.Definitions()
	require.Len(t, defs, len(asset.DefaultAssets))
	for i := 1; i < len(defs); i++ {
		require.Less(t, defs[i-1].ID, defs[i].ID)
	}

	for _, def := range asset.DefaultAssets {
		require.Equal(t, uint8(18), def.Decimals)
		require.Less(t, def.ID, uint32(asset.MaxReserveID))

		id, err := registry.Resolve(def.Symbol)
		require.NoError(t, err)
		require.Equal(t, def.ID, id)

		got, ok := registry.Lookup(def.ID)
		require.True(t, ok)
		require.Equal(t, def, got)

		got, ok = registry.LookupSymbol(def.Symbol)
		require.True(t, ok)
		require.Equal(t, def, got)
	}

	cennz, ok := registry.LookupSymbol("CENNZ")
	require.True(t, ok)
	require.Equal(t, asset.Staking, cennz.Category)
	spending, ok := registry.Lookup(16001)
	require.True(t, ok)
	require.Equal(t, asset.Spending, spending.Category)

	_, err := registry.Resolve("DOGE")
	require.Error(t, err)
	require.True(t, gaerrors.UNKNOWN_ASSET_SYMBOL.Is(err))

	_, ok = registry.Lookup(asset.MaxReserveID)
	require.False(t, ok)
}

func TestNewRegistry(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		registry, err := asset.NewRegistry(
			asset.Definition{ID: 7, Symbol: "GOLD", Decimals: 4, Category: asset.Reserve},
			asset.Definition{ID: 1000001, Symbol: "USER", Decimals: 0, Category: asset.Spending},
		)
		require.NoError(t, err)

		id, err := registry.NewId("GOLD")
		require.NoError(t, err)
		require.Equal(t, uint32(7), id.Value())
		require.True(t, id.IsReserved())

		id, err = registry.NewId("USER")
		require.NoError(t, err)
		require.False(t, id.IsReserved())

		// symbols of the default registry are not known here
		_, err = registry.NewId("CENNZ")
		require.True(t, gaerrors.UNKNOWN_ASSET_SYMBOL.Is(err))
	})

	t.Run("invalid", func(t *testing.T) {
		tests := []struct {
			name          string
			defs          []asset.Definition
			expectedError string
			duplicate     bool
		}{
			{
				name: "duplicate id",
				defs: []asset.Definition{
					{ID: 1, Symbol: "A", Category: asset.Reserve},
					{ID: 1, Symbol: "B", Category: asset.Reserve},
				},
				expectedError: "duplicate asset id 1",
				duplicate:     true,
			},
			{
				name: "duplicate symbol",
				defs: []asset.Definition{
					{ID: 1, Symbol: "A", Category: asset.Reserve},
					{ID: 2, Symbol: "A", Category: asset.Reserve},
				},
				expectedError: "duplicate asset symbol A",
				duplicate:     true,
			},
			{
				name:          "missing symbol",
				defs:          []asset.Definition{{ID: 1, Category: asset.Reserve}},
				expectedError: "missing symbol",
			},
			{
				name:          "missing category",
				defs:          []asset.Definition{{ID: 1, Symbol: "A"}},
				expectedError: "invalid category",
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				registry, err := asset.NewRegistry(tt.defs...)
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.expectedError)
				require.Nil(t, registry)
				require.Equal(t, tt.duplicate, gaerrors.DUPLICATE_ASSET.Is(err))
				require.Equal(t, !tt.duplicate, gaerrors.INVALID_ASSET_DEFINITION.Is(err))
			})
		}
	})
}

func TestDefinitionJSON(t *testing.T) {
	buf, err := json.Marshal(asset.DefaultAssets[1])
	require.NoError(t, err)
	require.JSONEq(
		t, `{"id":1,"symbol":"CENTRAPAY","decimals":18,"category":"SPENDING"}`, string(buf),
	)
}
