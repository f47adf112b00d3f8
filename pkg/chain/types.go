package chain

import (
	"context"

	"github.com/centrifuge/go-substrate-rpc-client/v3/types"
)

// Conn is the transport towards a chain node.
type Conn interface {
	Metadata(ctx context.Context) (Metadata, error)
	// GetStorage returns the raw value stored at key, at the given block or at
	// the best block if at is nil. A nil value means the key is not set.
	GetStorage(
		ctx context.Context, key types.StorageKey, at *types.Hash,
	) (types.StorageDataRaw, error)
	SubscribeStorage(
		ctx context.Context, keys []types.StorageKey,
	) (*Subscription[types.StorageChangeSet], error)
	SubmitExtrinsic(ctx context.Context, ext types.Extrinsic) (types.Hash, error)
	SubmitAndWatchExtrinsic(
		ctx context.Context, ext types.Extrinsic,
	) (*Subscription[types.ExtrinsicStatus], error)
	GenesisHash(ctx context.Context) (types.Hash, error)
	RuntimeVersion(ctx context.Context) (*types.RuntimeVersion, error)
	// AccountNextIndex returns the next usable nonce of the given ss58 address.
	AccountNextIndex(ctx context.Context, address string) (uint32, error)
	Close()
}

// Metadata is the part of the runtime metadata needed to build calls and
// storage keys.
type Metadata interface {
	FindCallIndex(call string) (types.CallIndex, error)
	StorageKey(module, item string, args ...[]byte) (types.StorageKey, error)
}

// DeriveSection is a named bundle of derived queries layered on top of the raw
// storage of the chain.
type DeriveSection interface {
	Section() string
}

// TypeFactory returns a pointer to a new zero value of a registered type.
type TypeFactory func() any
