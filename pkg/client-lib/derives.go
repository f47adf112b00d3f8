package gasdk

import (
	"bytes"
	"context"
	"fmt"
	"math/big"

	"github.com/cennznet/generic-asset-go/pkg/chain"
	"github.com/cennznet/generic-asset-go/pkg/ga-lib/asset"
	"github.com/cennznet/generic-asset-go/pkg/ga-lib/storage"
	"github.com/centrifuge/go-substrate-rpc-client/v3/types"
)

// DeriveSection is the name the generic asset derives are installed with.
const DeriveSection = "genericAsset"

type BalanceKind int

const (
	FreeBalance BalanceKind = iota
	ReservedBalance
	TotalBalance
)

func (k BalanceKind) String() string {
	switch k {
	case FreeBalance:
		return "free"
	case ReservedBalance:
		return "reserved"
	case TotalBalance:
		return "total"
	default:
		return "unknown"
	}
}

// Derives computes account balances from the generic asset balance double maps.
type Derives struct{}

func NewDerives() *Derives {
	return &Derives{}
}

func (d *Derives) Section() string {
	return DeriveSection
}

// BalanceKeys returns the storage keys backing the given kind of balance.
func (d *Derives) BalanceKeys(
	kind BalanceKind, assetId asset.Id, account types.AccountID,
) ([]types.StorageKey, error) {
	var prefixes []string
	switch kind {
	case FreeBalance:
		prefixes = []string{storage.FreeBalancePrefix}
	case ReservedBalance:
		prefixes = []string{storage.ReservedBalancePrefix}
	case TotalBalance:
		prefixes = []string{storage.FreeBalancePrefix, storage.ReservedBalancePrefix}
	default:
		return nil, fmt.Errorf("unknown balance kind %d", kind)
	}

	keys := make([]types.StorageKey, 0, len(prefixes))
	for _, prefix := range prefixes {
		key, err := storage.DoubleMapStorageKey(prefix, assetId, account)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// Balance reads the given kind of balance, at the given block or at the best
// block if at is nil. Missing storage values count as zero.
func (d *Derives) Balance(
	ctx context.Context, api *chain.API, kind BalanceKind, at *types.Hash,
	assetId asset.Id, account types.AccountID,
) (*big.Int, error) {
	keys, err := d.BalanceKeys(kind, assetId, account)
	if err != nil {
		return nil, err
	}

	total := big.NewInt(0)
	for _, key := range keys {
		raw, err := api.ReadStorage(ctx, key, at)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s balance: %w", kind, err)
		}
		amount, err := decodeBalance(api, raw)
		if err != nil {
			return nil, err
		}
		total.Add(total, amount)
	}
	return total, nil
}

// SubscribeBalance streams the given kind of balance. The total balance is
// emitted every time one of its parts changes, once both are known.
func (d *Derives) SubscribeBalance(
	ctx context.Context, api *chain.API, kind BalanceKind,
	assetId asset.Id, account types.AccountID,
) (*chain.Subscription[*big.Int], error) {
	keys, err := d.BalanceKeys(kind, assetId, account)
	if err != nil {
		return nil, err
	}

	sub, err := api.WatchStorage(ctx, keys...)
	if err != nil {
		return nil, err
	}

	parts := make([]*big.Int, len(keys))
	return chain.MapSubscription(ctx, sub, func(set types.StorageChangeSet) (*big.Int, bool, error) {
		updated := false
		for _, change := range set.Changes {
			for i, key := range keys {
				if !bytes.Equal(key, change.StorageKey) {
					continue
				}
				var raw types.StorageDataRaw
				if change.HasStorageData {
					raw = change.StorageData
				}
				amount, err := decodeBalance(api, raw)
				if err != nil {
					return nil, false, err
				}
				parts[i] = amount
				updated = true
			}
		}
		if !updated {
			return nil, false, nil
		}

		total := big.NewInt(0)
		for _, part := range parts {
			if part == nil {
				return nil, false, nil
			}
			total.Add(total, part)
		}
		return total, true, nil
	}), nil
}

func decodeBalance(api *chain.API, raw types.StorageDataRaw) (*big.Int, error) {
	v, err := api.DecodeType(chain.BalanceType, raw)
	if err != nil {
		return nil, err
	}
	balance, ok := v.(*types.U128)
	if !ok {
		return nil, fmt.Errorf("balance type decodes into %T", v)
	}
	return u128ToInt(balance), nil
}
