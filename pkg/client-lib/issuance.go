package gasdk

import (
	"context"
	"math/big"

	"github.com/cennznet/generic-asset-go/pkg/chain"
	"github.com/centrifuge/go-substrate-rpc-client/v3/types"
)

// IssuanceQuery reads the total issuance of an asset. Like BalanceQuery, the
// asset id can be anything the facade registry resolves.
type IssuanceQuery struct {
	ga    *GenericAsset
	query *chain.StorageQuery[*types.U128]
}

func (q IssuanceQuery) String() string {
	return q.query.String()
}

// Key returns the storage key holding the issuance of the asset.
func (q IssuanceQuery) Key(assetId any) (types.StorageKey, error) {
	id, err := q.ga.ResolveAssetId(assetId)
	if err != nil {
		return nil, err
	}
	return q.query.Key(*id)
}

// Current returns the issuance at the best block.
func (q IssuanceQuery) Current(ctx context.Context, assetId any) (*big.Int, error) {
	id, err := q.ga.ResolveAssetId(assetId)
	if err != nil {
		return nil, err
	}
	v, err := q.query.Current(ctx, *id)
	if err != nil {
		return nil, err
	}
	return u128ToInt(v), nil
}

// At returns the issuance at the given block.
func (q IssuanceQuery) At(
	ctx context.Context, blockHash types.Hash, assetId any,
) (*big.Int, error) {
	id, err := q.ga.ResolveAssetId(assetId)
	if err != nil {
		return nil, err
	}
	v, err := q.query.At(ctx, blockHash, *id)
	if err != nil {
		return nil, err
	}
	return u128ToInt(v), nil
}

// Subscribe streams the issuance, starting with its current value.
func (q IssuanceQuery) Subscribe(
	ctx context.Context, assetId any,
) (*chain.Subscription[*big.Int], error) {
	id, err := q.ga.ResolveAssetId(assetId)
	if err != nil {
		return nil, err
	}
	sub, err := q.query.Subscribe(ctx, *id)
	if err != nil {
		return nil, err
	}
	return chain.MapSubscription(ctx, sub, func(v *types.U128) (*big.Int, bool, error) {
		return u128ToInt(v), true, nil
	}), nil
}

func u128ToInt(v *types.U128) *big.Int {
	if v == nil || v.Int == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(v.Int)
}
