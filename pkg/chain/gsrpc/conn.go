// Package gsrpc implements chain.Conn on top of the go-substrate-rpc-client
// websocket client.
package gsrpc

import (
	"context"
	"fmt"

	"github.com/cennznet/generic-asset-go/pkg/chain"
	gsrpc "github.com/centrifuge/go-substrate-rpc-client/v3"
	"github.com/centrifuge/go-substrate-rpc-client/v3/types"
	log "github.com/sirupsen/logrus"
)

type conn struct {
	url string
	api *gsrpc.SubstrateAPI
}

// NewConn dials the node at the given websocket url.
func NewConn(url string) (chain.Conn, error) {
	if len(url) <= 0 {
		return nil, fmt.Errorf("missing node url")
	}
	api, err := gsrpc.NewSubstrateAPI(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	log.Debugf("connected to node %s", url)
	return &conn{url, api}, nil
}

func (c *conn) Metadata(_ context.Context) (chain.Metadata, error) {
	meta, err := c.api.RPC.State.GetMetadataLatest()
	if err != nil {
		return nil, err
	}
	return &metadata{meta}, nil
}

func (c *conn) GetStorage(
	_ context.Context, key types.StorageKey, at *types.Hash,
) (types.StorageDataRaw, error) {
	var (
		raw *types.StorageDataRaw
		err error
	)
	if at != nil {
		raw, err = c.api.RPC.State.GetStorageRaw(key, *at)
	} else {
		raw, err = c.api.RPC.State.GetStorageRawLatest(key)
	}
	if err != nil {
		return nil, err
	}
	if raw == nil || len(*raw) <= 0 {
		return nil, nil
	}
	return *raw, nil
}

func (c *conn) SubscribeStorage(
	ctx context.Context, keys []types.StorageKey,
) (*chain.Subscription[types.StorageChangeSet], error) {
	sub, err := c.api.RPC.State.SubscribeStorageRaw(keys)
	if err != nil {
		return nil, err
	}

	return chain.NewSubscription(ctx, func(
		quit <-chan struct{}, emit chain.Emitter[types.StorageChangeSet],
	) error {
		defer sub.Unsubscribe()

		for {
			select {
			case <-quit:
				return nil
			case err := <-sub.Err():
				return err
			case set, ok := <-sub.Chan():
				if !ok {
					return nil
				}
				if !emit(set) {
					return nil
				}
			}
		}
	}), nil
}

func (c *conn) SubmitExtrinsic(_ context.Context, ext types.Extrinsic) (types.Hash, error) {
	return c.api.RPC.Author.SubmitExtrinsic(ext)
}

func (c *conn) SubmitAndWatchExtrinsic(
	ctx context.Context, ext types.Extrinsic,
) (*chain.Subscription[types.ExtrinsicStatus], error) {
	sub, err := c.api.RPC.Author.SubmitAndWatchExtrinsic(ext)
	if err != nil {
		return nil, err
	}

	return chain.NewSubscription(ctx, func(
		quit <-chan struct{}, emit chain.Emitter[types.ExtrinsicStatus],
	) error {
		defer sub.Unsubscribe()

		for {
			select {
			case <-quit:
				return nil
			case err := <-sub.Err():
				return err
			case status, ok := <-sub.Chan():
				if !ok {
					return nil
				}
				if !emit(status) {
					return nil
				}
				// no more updates after a final status
				if status.IsFinalized || status.IsDropped || status.IsInvalid ||
					status.IsUsurped || status.IsFinalityTimeout {
					return nil
				}
			}
		}
	}), nil
}

func (c *conn) GenesisHash(_ context.Context) (types.Hash, error) {
	return c.api.RPC.Chain.GetBlockHash(0)
}

func (c *conn) RuntimeVersion(_ context.Context) (*types.RuntimeVersion, error) {
	return c.api.RPC.State.GetRuntimeVersionLatest()
}

func (c *conn) AccountNextIndex(_ context.Context, address string) (uint32, error) {
	var nonce uint32
	if err := c.api.Client.Call(&nonce, "system_accountNextIndex", address); err != nil {
		return 0, err
	}
	return nonce, nil
}

func (c *conn) Close() {
	if closer, ok := c.api.Client.(interface{ Close() }); ok {
		closer.Close()
	}
	log.Debugf("closed connection to node %s", c.url)
}

type metadata struct {
	*types.Metadata
}

func (m *metadata) StorageKey(module, item string, args ...[]byte) (types.StorageKey, error) {
	return types.CreateStorageKey(m.Metadata, module, item, args...)
}
