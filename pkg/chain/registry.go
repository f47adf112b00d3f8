package chain

import (
	"fmt"
	"math/big"

	gaerrors "github.com/cennznet/generic-asset-go/pkg/errors"
	"github.com/centrifuge/go-substrate-rpc-client/v3/types"
)

const (
	AssetIdType     = "AssetId"
	BalanceType     = "Balance"
	AccountIdType   = "AccountId"
	HashType        = "Hash"
	BlockNumberType = "BlockNumber"
)

func defaultTypes() map[string]TypeFactory {
	return map[string]TypeFactory{
		AssetIdType: func() any { return new(types.U32) },
		BalanceType: func() any {
			v := types.NewU128(*big.NewInt(0))
			return &v
		},
		AccountIdType:   func() any { return new(types.AccountID) },
		HashType:        func() any { return new(types.Hash) },
		BlockNumberType: func() any { return new(types.U32) },
	}
}

// NewType returns a pointer to a new zero value of the type registered with
// the given name.
func (a *API) NewType(name string) (any, error) {
	factory, ok := a.types[name]
	if !ok {
		return nil, gaerrors.UNKNOWN_TYPE.New("type %s not registered", name).
			WithMetadata(gaerrors.TypeMetadata{TypeName: name})
	}
	return factory(), nil
}

// DecodeType decodes raw into a new value of the type registered with the given
// name. Empty raw data yields the zero value.
func (a *API) DecodeType(name string, raw []byte) (any, error) {
	v, err := a.NewType(name)
	if err != nil {
		return nil, err
	}
	if len(raw) <= 0 {
		return v, nil
	}
	if err := types.DecodeFromBytes(raw, v); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return v, nil
}
