package chain_test

import (
	"context"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/cennznet/generic-asset-go/pkg/chain"
	"github.com/cennznet/generic-asset-go/pkg/chain/chaintest"
	gaerrors "github.com/cennznet/generic-asset-go/pkg/errors"
	"github.com/centrifuge/go-substrate-rpc-client/v3/types"
	"github.com/stretchr/testify/require"
)

type section string

func (s section) Section() string {
	return string(s)
}

func newTestAPI(t *testing.T, opts ...chain.Option) (*chain.API, *chaintest.Conn) {
	t.Helper()
	conn := chaintest.NewConn(chaintest.NewMetadata(
		"System.remark", "Balances.transfer", "Balances.set_balance",
	))
	api, err := chain.Connect(context.Background(), conn, opts...)
	require.NoError(t, err)
	return api, conn
}

func TestConnect(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		api, _ := newTestAPI(t)
		require.NotNil(t, api.Metadata())

		for _, name := range []string{
			chain.AssetIdType, chain.BalanceType, chain.AccountIdType,
			chain.HashType, chain.BlockNumberType,
		} {
			v, err := api.NewType(name)
			require.NoError(t, err)
			require.NotNil(t, v)
		}

		_, ok := api.Derive("genericAsset")
		require.False(t, ok)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := chain.Connect(context.Background(), nil)
		require.EqualError(t, err, "missing chain connection")

		conn := chaintest.NewConn(chaintest.NewMetadata())
		conn.MetadataErr = fmt.Errorf("connection refused")
		_, err = chain.Connect(context.Background(), conn)
		require.ErrorContains(t, err, "connection refused")

		_, err = chain.Connect(
			context.Background(), chaintest.NewConn(chaintest.NewMetadata()),
			chain.WithType("", func() any { return new(types.U8) }),
		)
		require.EqualError(t, err, "missing type name")
	})
}

func TestWith(t *testing.T) {
	ctx := context.Background()
	api, _ := newTestAPI(t)

	extended, err := api.With(ctx,
		chain.WithType("Weight", func() any { return new(types.U64) }),
		chain.WithDerives(section("genericAsset")),
	)
	require.NoError(t, err)
	require.NotSame(t, api, extended)

	// the receiver is left untouched
	_, err = api.NewType("Weight")
	require.Error(t, err)
	require.True(t, gaerrors.UNKNOWN_TYPE.Is(err))
	_, ok := api.Derive("genericAsset")
	require.False(t, ok)

	v, err := extended.NewType("Weight")
	require.NoError(t, err)
	require.IsType(t, new(types.U64), v)
	s, ok := extended.Derive("genericAsset")
	require.True(t, ok)
	require.Equal(t, "genericAsset", s.Section())

	// sections are inherited and can't be installed twice
	_, err = extended.With(ctx, chain.WithDerives(section("genericAsset")))
	require.Error(t, err)
	require.True(t, gaerrors.SECTION_ALREADY_INSTALLED.Is(err))

	_, err = api.With(ctx, chain.WithDerives(section("")))
	require.EqualError(t, err, "missing derive section")

	// types can be overridden
	overridden, err := extended.With(ctx,
		chain.WithType(chain.AssetIdType, func() any { return new(types.U64) }),
	)
	require.NoError(t, err)
	v, err = overridden.NewType(chain.AssetIdType)
	require.NoError(t, err)
	require.IsType(t, new(types.U64), v)
	v, err = extended.NewType(chain.AssetIdType)
	require.NoError(t, err)
	require.IsType(t, new(types.U32), v)
}

func TestTx(t *testing.T) {
	api, _ := newTestAPI(t)

	t.Run("valid", func(t *testing.T) {
		tx, err := api.Tx("Balances.set_balance", types.NewU32(1), types.NewUCompactFromUInt(100))
		require.NoError(t, err)
		require.Equal(t, "Balances.set_balance", tx.Name())
		require.False(t, tx.IsSigned())

		call := tx.Call()
		require.Equal(t, types.CallIndex{SectionIndex: 1, MethodIndex: 1}, call.CallIndex)
		require.Equal(t, "010000009101", hex.EncodeToString(call.Args))

		tx, err = api.Tx("System.remark")
		require.NoError(t, err)
		require.Equal(t, types.CallIndex{SectionIndex: 0, MethodIndex: 0}, tx.Call().CallIndex)
		require.Empty(t, tx.Call().Args)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := api.Tx("GenericAsset.transfer")
		require.Error(t, err)
		require.True(t, gaerrors.CALL_NOT_FOUND.Is(err))

		_, err = api.Tx("Balances.transfer", types.NewU32(1), make(chan int))
		require.Error(t, err)
		require.True(t, gaerrors.ENCODING_FAILED.Is(err))
		typed, ok := err.(gaerrors.Error)
		require.True(t, ok)
		require.Equal(t, "1", typed.Metadata()["arg_index"])
	})
}

func TestReadStorage(t *testing.T) {
	ctx := context.Background()
	api, conn := newTestAPI(t)
	key := types.NewStorageKey([]byte{0x01, 0x02})

	value, err := api.ReadStorage(ctx, key, nil)
	require.NoError(t, err)
	require.Nil(t, value)

	conn.Set(key, []byte{0x2a})
	block := types.NewHash([]byte{0x01})
	conn.Seal(block)
	conn.Set(key, []byte{0x2b})

	value, err = api.ReadStorage(ctx, key, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0x2b}, []byte(value))

	value, err = api.ReadStorage(ctx, key, &block)
	require.NoError(t, err)
	require.Equal(t, []byte{0x2a}, []byte(value))

	_, err = api.WatchStorage(ctx)
	require.EqualError(t, err, "missing storage keys")
}
