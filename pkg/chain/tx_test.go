package chain_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/cennznet/generic-asset-go/pkg/chain"
	gaerrors "github.com/cennznet/generic-asset-go/pkg/errors"
	"github.com/centrifuge/go-substrate-rpc-client/v3/signature"
	"github.com/centrifuge/go-substrate-rpc-client/v3/types"
	"github.com/stretchr/testify/require"
)

func TestSubmittable(t *testing.T) {
	ctx := context.Background()
	alice := signature.TestKeyringPairAlice

	t.Run("send", func(t *testing.T) {
		api, conn := newTestAPI(t)
		conn.SetNonce(alice.Address, 7)

		tx, err := api.Tx("Balances.transfer", types.NewU32(1))
		require.NoError(t, err)

		_, err = tx.Send(ctx)
		require.EqualError(t, err, "extrinsic Balances.transfer is not signed")

		err = tx.Sign(ctx, alice)
		require.NoError(t, err)
		require.True(t, tx.IsSigned())

		ext := tx.Extrinsic()
		require.Equal(t, uint64(7), compactUint64(ext.Signature.Nonce))
		require.Equal(t, tx.Call(), ext.Method)

		hash, err := tx.Send(ctx)
		require.NoError(t, err)
		require.NotEqual(t, types.Hash{}, hash)
		require.Len(t, conn.Submitted(), 1)
	})

	t.Run("send and watch", func(t *testing.T) {
		api, conn := newTestAPI(t)
		conn.Statuses = []types.ExtrinsicStatus{
			{IsReady: true},
			{IsInBlock: true, AsInBlock: types.NewHash([]byte("block"))},
		}

		tx, err := api.Tx("System.remark")
		require.NoError(t, err)
		_, err = tx.SendAndWatch(ctx)
		require.Error(t, err)

		err = tx.Sign(ctx, alice, chain.WithNonce(3), chain.WithTip(big.NewInt(10)))
		require.NoError(t, err)
		require.Equal(t, uint64(3), compactUint64(tx.Extrinsic().Signature.Nonce))

		sub, err := tx.SendAndWatch(ctx)
		require.NoError(t, err)
		defer sub.Unsubscribe()

		require.True(t, receive(t, sub.Chan()).IsReady)
		require.True(t, receive(t, sub.Chan()).IsInBlock)
		waitClosed(t, sub.Chan())
	})

	t.Run("invalid tip", func(t *testing.T) {
		api, _ := newTestAPI(t)
		tx, err := api.Tx("System.remark")
		require.NoError(t, err)

		err = tx.Sign(ctx, alice, chain.WithNonce(0), chain.WithTip(big.NewInt(-1)))
		require.Error(t, err)
		require.True(t, gaerrors.INVALID_AMOUNT.Is(err))
		require.False(t, tx.IsSigned())
	})
}

func compactUint64(c types.UCompact) uint64 {
	return (*big.Int)(&c).Uint64()
}
