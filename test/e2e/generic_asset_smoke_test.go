package e2e_test

import (
	"context"
	"flag"
	"math/big"
	"testing"
	"time"

	"github.com/cennznet/generic-asset-go/pkg/chain"
	"github.com/cennznet/generic-asset-go/pkg/chain/gsrpc"
	gasdk "github.com/cennznet/generic-asset-go/pkg/client-lib"
	"github.com/cennznet/generic-asset-go/pkg/ga-lib/address"
	"github.com/centrifuge/go-substrate-rpc-client/v3/signature"
	"github.com/stretchr/testify/require"
)

// Command-line flags for test configuration
var (
	runSmoke = flag.Bool("smoke", false, "run smoke tests")
	nodeUrl  = flag.String("node-url", "ws://127.0.0.1:9944", "websocket url of a dev node")
	assetId  = flag.String("asset", "CENTRAPAY", "asset to transfer")
)

// TestTransferSmoke transfers an asset from //Alice to //Bob on a dev node and
// checks that the free balance of //Bob increases accordingly.
//
// To run it against a local dev node:
// go test -v ./test/e2e -run TestTransferSmoke -args -smoke -node-url=ws://127.0.0.1:9944
func TestTransferSmoke(t *testing.T) {
	if !flag.Parsed() {
		flag.Parse()
	}
	if !*runSmoke {
		t.Skip("skip smoke test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := gsrpc.NewConn(*nodeUrl)
	require.NoError(t, err)
	defer conn.Close()

	api, err := chain.Connect(ctx, conn)
	require.NoError(t, err)
	ga, err := gasdk.New(ctx, api, gasdk.WithVerbose())
	require.NoError(t, err)

	alice := signature.TestKeyringPairAlice
	bob, _, err := address.Decode("5FHneW46xGXgs5mUiveU4sbTyGBzmstUspZC92UhjJM694ty")
	require.NoError(t, err)

	sub, err := ga.FreeBalance().Subscribe(ctx, *assetId, bob)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	before := <-sub.Chan()
	require.NotNil(t, before)

	amount := big.NewInt(1000)
	tx, err := ga.Transfer(*assetId, bob, amount)
	require.NoError(t, err)
	err = tx.Sign(ctx, alice)
	require.NoError(t, err)

	statuses, err := tx.SendAndWatch(ctx)
	require.NoError(t, err)
	defer statuses.Unsubscribe()

	for status := range statuses.Chan() {
		require.False(t, status.IsInvalid || status.IsDropped || status.IsUsurped)
		if status.IsInBlock {
			break
		}
	}

	expected := new(big.Int).Add(before, amount)
	for {
		select {
		case after, ok := <-sub.Chan():
			require.True(t, ok)
			if after.Cmp(expected) == 0 {
				return
			}
		case <-ctx.Done():
			require.FailNow(t, "timed out waiting for balance update")
		}
	}
}
