package gasdk

import (
	"context"
	"math/big"

	"github.com/cennznet/generic-asset-go/pkg/chain"
	"github.com/centrifuge/go-substrate-rpc-client/v3/types"
)

// BalanceQuery reads one kind of balance of an account for an asset. The asset
// id can be anything the facade registry resolves.
type BalanceQuery struct {
	ga   *GenericAsset
	kind BalanceKind
}

func (q BalanceQuery) Kind() BalanceKind {
	return q.kind
}

// Current returns the balance at the best block.
func (q BalanceQuery) Current(
	ctx context.Context, assetId any, account types.AccountID,
) (*big.Int, error) {
	return q.read(ctx, nil, assetId, account)
}

// At returns the balance at the given block.
func (q BalanceQuery) At(
	ctx context.Context, blockHash types.Hash, assetId any, account types.AccountID,
) (*big.Int, error) {
	return q.read(ctx, &blockHash, assetId, account)
}

// Subscribe streams the balance, starting with its current value.
func (q BalanceQuery) Subscribe(
	ctx context.Context, assetId any, account types.AccountID,
) (*chain.Subscription[*big.Int], error) {
	id, err := q.ga.ResolveAssetId(assetId)
	if err != nil {
		return nil, err
	}
	return q.ga.derives.SubscribeBalance(ctx, q.ga.api, q.kind, *id, account)
}

func (q BalanceQuery) read(
	ctx context.Context, at *types.Hash, assetId any, account types.AccountID,
) (*big.Int, error) {
	id, err := q.ga.ResolveAssetId(assetId)
	if err != nil {
		return nil, err
	}
	return q.ga.derives.Balance(ctx, q.ga.api, q.kind, at, *id, account)
}
