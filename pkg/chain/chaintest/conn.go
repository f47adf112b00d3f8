package chaintest

import (
	"context"
	"fmt"
	"sync"

	"github.com/cennznet/generic-asset-go/pkg/chain"
	"github.com/centrifuge/go-substrate-rpc-client/v3/types"
)

// Conn is an in-memory chain.Conn. Storage is a flat key/value map, and
// historical states can be recorded with Seal.
type Conn struct {
	lock     sync.Mutex
	meta     *Metadata
	storage  map[string][]byte
	blocks   map[types.Hash]map[string][]byte
	watchers map[*watcher]struct{}
	nonces   map[string]uint32
	sent     []types.Extrinsic
	head     types.Hash

	Genesis types.Hash
	Runtime types.RuntimeVersion
	// MetadataErr, if set, is returned by Metadata.
	MetadataErr error
	// Statuses are streamed to the subscriber of every submitted and watched
	// extrinsic.
	Statuses []types.ExtrinsicStatus
}

type watcher struct {
	keys    map[string]struct{}
	updates chan types.StorageChangeSet
	done    <-chan struct{}
}

func NewConn(meta *Metadata) *Conn {
	return &Conn{
		meta:     meta,
		storage:  make(map[string][]byte),
		blocks:   make(map[types.Hash]map[string][]byte),
		watchers: make(map[*watcher]struct{}),
		nonces:   make(map[string]uint32),
		Genesis:  types.NewHash([]byte("genesis")),
		Runtime: types.RuntimeVersion{
			SpecName:           "cennznet",
			SpecVersion:        1,
			TransactionVersion: 1,
		},
	}
}

// Set updates the value at key, or deletes it if value is nil, and notifies
// the storage subscribers watching it.
func (c *Conn) Set(key types.StorageKey, value []byte) {
	c.lock.Lock()
	if value == nil {
		delete(c.storage, string(key))
	} else {
		c.storage[string(key)] = value
	}
	set := types.StorageChangeSet{
		Block: c.head,
		Changes: []types.KeyValueOption{{
			StorageKey:     key,
			HasStorageData: value != nil,
			StorageData:    value,
		}},
	}
	watchers := make([]*watcher, 0)
	for w := range c.watchers {
		if _, ok := w.keys[string(key)]; ok {
			watchers = append(watchers, w)
		}
	}
	c.lock.Unlock()

	for _, w := range watchers {
		select {
		case w.updates <- set:
		case <-w.done:
		}
	}
}

// Seal records the current storage as the state of the given block.
func (c *Conn) Seal(block types.Hash) {
	c.lock.Lock()
	defer c.lock.Unlock()

	state := make(map[string][]byte, len(c.storage))
	for k, v := range c.storage {
		state[k] = v
	}
	c.blocks[block] = state
	c.head = block
}

func (c *Conn) SetNonce(address string, nonce uint32) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.nonces[address] = nonce
}

// Submitted returns the extrinsics submitted so far.
func (c *Conn) Submitted() []types.Extrinsic {
	c.lock.Lock()
	defer c.lock.Unlock()
	return append([]types.Extrinsic{}, c.sent...)
}

// Watchers returns the number of active storage subscriptions.
func (c *Conn) Watchers() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return len(c.watchers)
}

func (c *Conn) Metadata(_ context.Context) (chain.Metadata, error) {
	if c.MetadataErr != nil {
		return nil, c.MetadataErr
	}
	return c.meta, nil
}

func (c *Conn) GetStorage(
	_ context.Context, key types.StorageKey, at *types.Hash,
) (types.StorageDataRaw, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	state := c.storage
	if at != nil {
		var ok bool
		if state, ok = c.blocks[*at]; !ok {
			return nil, fmt.Errorf("unknown block %s", at.Hex())
		}
	}
	value, ok := state[string(key)]
	if !ok {
		return nil, nil
	}
	return types.NewStorageDataRaw(value), nil
}

// SubscribeStorage emits the current values of keys first, then every change.
func (c *Conn) SubscribeStorage(
	ctx context.Context, keys []types.StorageKey,
) (*chain.Subscription[types.StorageChangeSet], error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	initial := types.StorageChangeSet{Block: c.head}
	w := &watcher{
		keys:    make(map[string]struct{}, len(keys)),
		updates: make(chan types.StorageChangeSet),
	}
	for _, key := range keys {
		w.keys[string(key)] = struct{}{}
		value, ok := c.storage[string(key)]
		initial.Changes = append(initial.Changes, types.KeyValueOption{
			StorageKey:     key,
			HasStorageData: ok,
			StorageData:    value,
		})
	}

	sub := chain.NewSubscription(ctx, func(
		quit <-chan struct{}, emit chain.Emitter[types.StorageChangeSet],
	) error {
		defer c.unwatch(w)

		if !emit(initial) {
			return nil
		}
		for {
			select {
			case <-quit:
				return nil
			case set := <-w.updates:
				if !emit(set) {
					return nil
				}
			}
		}
	})
	w.done = sub.Done()
	c.watchers[w] = struct{}{}
	return sub, nil
}

func (c *Conn) SubmitExtrinsic(_ context.Context, ext types.Extrinsic) (types.Hash, error) {
	buf, err := types.EncodeToBytes(ext)
	if err != nil {
		return types.Hash{}, err
	}

	c.lock.Lock()
	defer c.lock.Unlock()
	c.sent = append(c.sent, ext)
	return types.NewHash(buf), nil
}

func (c *Conn) SubmitAndWatchExtrinsic(
	ctx context.Context, ext types.Extrinsic,
) (*chain.Subscription[types.ExtrinsicStatus], error) {
	if _, err := c.SubmitExtrinsic(ctx, ext); err != nil {
		return nil, err
	}

	statuses := append([]types.ExtrinsicStatus{}, c.Statuses...)
	return chain.NewSubscription(ctx, func(
		_ <-chan struct{}, emit chain.Emitter[types.ExtrinsicStatus],
	) error {
		for _, status := range statuses {
			if !emit(status) {
				return nil
			}
		}
		return nil
	}), nil
}

func (c *Conn) GenesisHash(_ context.Context) (types.Hash, error) {
	return c.Genesis, nil
}

func (c *Conn) RuntimeVersion(_ context.Context) (*types.RuntimeVersion, error) {
	rv := c.Runtime
	return &rv, nil
}

func (c *Conn) AccountNextIndex(_ context.Context, address string) (uint32, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.nonces[address], nil
}

func (c *Conn) Close() {}

func (c *Conn) unwatch(w *watcher) {
	c.lock.Lock()
	defer c.lock.Unlock()
	delete(c.watchers, w)
}
