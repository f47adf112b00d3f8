package store_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/cennznet/generic-asset-go/pkg/client-lib/store"
	"github.com/cennznet/generic-asset-go/pkg/client-lib/types"
	"github.com/stretchr/testify/require"
)

var testConfigData = types.Config{
	NodeURL:       "ws://127.0.0.1:9944",
	Network:       "rimu",
	SignerAddress: "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY",
}

func TestService(t *testing.T) {
	t.Run("config store", func(t *testing.T) {
		dbDir := t.TempDir()
		tests := []struct {
			name   string
			config store.Config
		}{
			{
				name: "inmemory",
				config: store.Config{
					ConfigStoreType: types.InMemoryStore,
				},
			},
			{
				name: "file",
				config: store.Config{
					ConfigStoreType: types.FileStore,
					BaseDir:         dbDir,
				},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc, err := store.NewStore(tt.config)
				require.NoError(t, err)
				defer svc.Close()

				require.Equal(t, tt.config.ConfigStoreType, svc.ConfigStore().GetType())
				require.Equal(t, tt.config.BaseDir, svc.ConfigStore().GetDatadir())
				testConfigStore(t, svc.ConfigStore())
			})
		}
	})

	t.Run("file store persists", func(t *testing.T) {
		ctx := context.Background()
		dbDir := t.TempDir()

		svc, err := store.NewStore(store.Config{ConfigStoreType: types.FileStore, BaseDir: dbDir})
		require.NoError(t, err)
		err = svc.ConfigStore().AddData(ctx, testConfigData)
		require.NoError(t, err)
		svc.Close()

		buf, err := os.ReadFile(filepath.Join(dbDir, "config.json"))
		require.NoError(t, err)
		stored := make(map[string]any)
		require.NoError(t, json.Unmarshal(buf, &stored))
		require.Equal(t, map[string]any{
			"node_url":       testConfigData.NodeURL,
			"network":        testConfigData.Network,
			"signer_address": testConfigData.SignerAddress,
		}, stored)

		svc, err = store.NewStore(store.Config{ConfigStoreType: types.FileStore, BaseDir: dbDir})
		require.NoError(t, err)
		data, err := svc.ConfigStore().GetData(ctx)
		require.NoError(t, err)
		require.Equal(t, testConfigData, *data)

		svc.Clean(ctx)
		data, err = svc.ConfigStore().GetData(ctx)
		require.NoError(t, err)
		require.Nil(t, data)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := store.NewStore(store.Config{ConfigStoreType: "sql"})
		require.EqualError(t, err, "unknown config store type sql")

		_, err = store.NewStore(store.Config{ConfigStoreType: types.FileStore})
		require.EqualError(t, err, "missing base directory")
	})
}

func testConfigStore(t *testing.T, storeSvc types.ConfigStore) {
	ctx := context.Background()

	// Check empty data when store is empty.
	data, err := storeSvc.GetData(ctx)
	require.NoError(t, err)
	require.Nil(t, data)

	// Check no side effects when cleaning an empty store.
	err = storeSvc.CleanData(ctx)
	require.NoError(t, err)

	// Check add and retrieve data.
	err = storeSvc.AddData(ctx, testConfigData)
	require.NoError(t, err)

	data, err = storeSvc.GetData(ctx)
	require.NoError(t, err)
	require.Equal(t, testConfigData, *data)

	// Check clean and retrieve data.
	err = storeSvc.CleanData(ctx)
	require.NoError(t, err)

	data, err = storeSvc.GetData(ctx)
	require.NoError(t, err)
	require.Nil(t, data)

	// Check overwriting the store.
	err = storeSvc.AddData(ctx, testConfigData)
	require.NoError(t, err)
	other := testConfigData
	other.SignerAddress = ""
	err = storeSvc.AddData(ctx, other)
	require.NoError(t, err)

	data, err = storeSvc.GetData(ctx)
	require.NoError(t, err)
	require.Equal(t, other, *data)
}
