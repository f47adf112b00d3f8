package chain

import (
	"context"
	"fmt"

	gaerrors "github.com/cennznet/generic-asset-go/pkg/errors"
	"github.com/centrifuge/go-substrate-rpc-client/v3/types"
	log "github.com/sirupsen/logrus"
)

// Option customizes a new API handle.
type Option func(*API) error

// WithType registers, or overrides, the type with the given name.
func WithType(name string, factory TypeFactory) Option {
	return func(a *API) error {
		if len(name) <= 0 {
			return fmt.Errorf("missing type name")
		}
		if factory == nil {
			return fmt.Errorf("missing factory for type %s", name)
		}
		a.types[name] = factory
		return nil
	}
}

// WithDerives installs the given derive section. A section can be installed
// only once per handle lineage.
func WithDerives(section DeriveSection) Option {
	return func(a *API) error {
		if section == nil || len(section.Section()) <= 0 {
			return fmt.Errorf("missing derive section")
		}
		name := section.Section()
		if _, ok := a.derives[name]; ok {
			return gaerrors.SECTION_ALREADY_INSTALLED.New("derive section %s already installed", name).
				WithMetadata(gaerrors.SectionMetadata{Section: name})
		}
		a.derives[name] = section
		return nil
	}
}

// API is an immutable handle to a chain node. Customizations are applied with
// With, which returns a new handle and leaves the receiver untouched.
type API struct {
	conn    Conn
	meta    Metadata
	types   map[string]TypeFactory
	derives map[string]DeriveSection
}

// Connect loads the runtime metadata through the given connection and returns
// a handle with the default types registered.
func Connect(ctx context.Context, conn Conn, opts ...Option) (*API, error) {
	if conn == nil {
		return nil, fmt.Errorf("missing chain connection")
	}

	api := &API{
		conn:    conn,
		types:   defaultTypes(),
		derives: make(map[string]DeriveSection),
	}
	return api.build(ctx, opts...)
}

// With returns a copy of the handle, with reloaded metadata and the given
// options applied.
func (a *API) With(ctx context.Context, opts ...Option) (*API, error) {
	api := &API{
		conn:    a.conn,
		types:   make(map[string]TypeFactory, len(a.types)),
		derives: make(map[string]DeriveSection, len(a.derives)),
	}
	for name, factory := range a.types {
		api.types[name] = factory
	}
	for name, section := range a.derives {
		api.derives[name] = section
	}
	return api.build(ctx, opts...)
}

// Metadata returns the runtime metadata the handle was built with.
func (a *API) Metadata() Metadata {
	return a.meta
}

// Derive returns the installed derive section with the given name.
func (a *API) Derive(section string) (DeriveSection, bool) {
	s, ok := a.derives[section]
	return s, ok
}

// ReadStorage returns the raw value stored at key, at the given block or at
// the best block if at is nil.
func (a *API) ReadStorage(
	ctx context.Context, key types.StorageKey, at *types.Hash,
) (types.StorageDataRaw, error) {
	return a.conn.GetStorage(ctx, key, at)
}

// WatchStorage subscribes to the changes of the given keys.
func (a *API) WatchStorage(
	ctx context.Context, keys ...types.StorageKey,
) (*Subscription[types.StorageChangeSet], error) {
	if len(keys) <= 0 {
		return nil, fmt.Errorf("missing storage keys")
	}
	return a.conn.SubscribeStorage(ctx, keys)
}

// Close closes the underlying connection, shared by all handles derived from
// the same Connect.
func (a *API) Close() {
	a.conn.Close()
}

func (a *API) build(ctx context.Context, opts ...Option) (*API, error) {
	meta, err := a.conn.Metadata(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load metadata: %w", err)
	}
	a.meta = meta

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	log.WithField("types", len(a.types)).
		WithField("derives", len(a.derives)).
		Debug("chain api ready")
	return a, nil
}
