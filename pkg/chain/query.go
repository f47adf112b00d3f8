package chain

import (
	"bytes"
	"context"
	"fmt"

	gaerrors "github.com/cennznet/generic-asset-go/pkg/errors"
	"github.com/centrifuge/go-substrate-rpc-client/v3/types"
)

// StorageQuery reads a storage item of the chain and decodes its value into
// T, which must match the factory registered for the item's type name.
type StorageQuery[T any] struct {
	api      *API
	module   string
	item     string
	typeName string
}

// NewStorageQuery returns a query for the given storage item. It fails if
// typeName is not registered or if its factory does not produce a T.
func NewStorageQuery[T any](api *API, module, item, typeName string) (*StorageQuery[T], error) {
	if len(module) <= 0 || len(item) <= 0 {
		return nil, fmt.Errorf("missing storage module or item")
	}

	sample, err := api.NewType(typeName)
	if err != nil {
		return nil, err
	}
	if _, ok := sample.(T); !ok {
		var want T
		return nil, gaerrors.TYPE_MISMATCH.New(
			"storage item %s.%s: type %s decodes into %T, not %T",
			module, item, typeName, sample, want,
		).WithMetadata(gaerrors.TypeMismatchMetadata{
			TypeName: typeName,
			Expected: fmt.Sprintf("%T", want),
			Got:      fmt.Sprintf("%T", sample),
		})
	}

	return &StorageQuery[T]{api, module, item, typeName}, nil
}

func (q *StorageQuery[T]) String() string {
	return fmt.Sprintf("%s.%s", q.module, q.item)
}

// Key returns the storage key of the item for the given map keys, if any.
func (q *StorageQuery[T]) Key(args ...any) (types.StorageKey, error) {
	encoded := make([][]byte, 0, len(args))
	for i, arg := range args {
		buf, err := types.EncodeToBytes(arg)
		if err != nil {
			return nil, gaerrors.ENCODING_FAILED.Wrap(err).
				WithMetadata(gaerrors.EncodingMetadata{Call: q.String(), ArgIndex: i})
		}
		encoded = append(encoded, buf)
	}
	return q.api.meta.StorageKey(q.module, q.item, encoded...)
}

// Current returns the value of the item at the best block.
func (q *StorageQuery[T]) Current(ctx context.Context, args ...any) (T, error) {
	return q.read(ctx, nil, args...)
}

// At returns the value of the item at the given block.
func (q *StorageQuery[T]) At(ctx context.Context, blockHash types.Hash, args ...any) (T, error) {
	return q.read(ctx, &blockHash, args...)
}

// Subscribe streams the value of the item, starting with its current value
// and followed by every change.
func (q *StorageQuery[T]) Subscribe(ctx context.Context, args ...any) (*Subscription[T], error) {
	key, err := q.Key(args...)
	if err != nil {
		return nil, err
	}

	sub, err := q.api.WatchStorage(ctx, key)
	if err != nil {
		return nil, err
	}

	return MapSubscription(ctx, sub, func(set types.StorageChangeSet) (T, bool, error) {
		var zero T
		for _, change := range set.Changes {
			if !bytes.Equal(change.StorageKey, key) {
				continue
			}
			var raw []byte
			if change.HasStorageData {
				raw = change.StorageData
			}
			v, err := q.Decode(raw)
			if err != nil {
				return zero, false, err
			}
			return v, true, nil
		}
		return zero, false, nil
	}), nil
}

// Decode decodes the given raw storage value. Empty data yields the zero
// value of the item's type.
func (q *StorageQuery[T]) Decode(raw []byte) (T, error) {
	var zero T
	v, err := q.api.DecodeType(q.typeName, raw)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, gaerrors.TYPE_MISMATCH.New("type %s decodes into %T", q.typeName, v).
			WithMetadata(gaerrors.TypeMismatchMetadata{
				TypeName: q.typeName,
				Expected: fmt.Sprintf("%T", zero),
				Got:      fmt.Sprintf("%T", v),
			})
	}
	return t, nil
}

func (q *StorageQuery[T]) read(ctx context.Context, at *types.Hash, args ...any) (T, error) {
	var zero T
	key, err := q.Key(args...)
	if err != nil {
		return zero, err
	}
	raw, err := q.api.ReadStorage(ctx, key, at)
	if err != nil {
		return zero, fmt.Errorf("failed to read %s: %w", q, err)
	}
	return q.Decode(raw)
}
