package gasdk

import (
	"context"
	"fmt"
	"math/big"

	"github.com/cennznet/generic-asset-go/pkg/chain"
	gaerrors "github.com/cennznet/generic-asset-go/pkg/errors"
	"github.com/cennznet/generic-asset-go/pkg/ga-lib/asset"
	"github.com/centrifuge/go-substrate-rpc-client/v3/types"
	log "github.com/sirupsen/logrus"
)

var Version string

const (
	module = "GenericAsset"

	createCall         = module + ".create"
	createReservedCall = module + ".create_reserved"
	transferCall       = module + ".transfer"
	mintCall           = module + ".mint"
	burnCall           = module + ".burn"
)

// GenericAsset builds the transactions and queries of the generic asset
// module of a chain.
type GenericAsset struct {
	api      *chain.API
	derives  *Derives
	registry *asset.Registry
	verbose  bool

	nextAssetId   *chain.StorageQuery[*asset.Id]
	totalIssuance *chain.StorageQuery[*types.U128]
}

// New returns a facade over the given chain handle. If the handle does not
// carry the generic asset derives or the AssetId type yet, they are installed
// on a new handle, returned by API, and the given one is left untouched.
func New(ctx context.Context, api *chain.API, opts ...ServiceOption) (*GenericAsset, error) {
	if api == nil {
		return nil, fmt.Errorf("missing chain api")
	}

	ga := &GenericAsset{
		registry: asset.DefaultRegistry(),
	}
	for _, opt := range opts {
		opt(ga)
	}
	if ga.verbose {
		log.SetLevel(log.DebugLevel)
	}

	installOpts := make([]chain.Option, 0, 2)
	_, installed := api.Derive(DeriveSection)
	if !installed {
		installOpts = append(installOpts, chain.WithDerives(NewDerives()))
	}
	if v, err := api.NewType(chain.AssetIdType); err != nil {
		installOpts = append(installOpts, chain.WithType(chain.AssetIdType, newAssetId))
	} else if _, ok := v.(*asset.Id); !ok {
		installOpts = append(installOpts, chain.WithType(chain.AssetIdType, newAssetId))
	}
	if len(installOpts) > 0 {
		var err error
		api, err = api.With(ctx, installOpts...)
		if err != nil {
			return nil, gaerrors.DERIVES_NOT_INSTALLED.Wrap(err).
				WithMetadata(gaerrors.SectionMetadata{Section: DeriveSection})
		}
		if !installed {
			log.Debugf("installed %s derives", DeriveSection)
		}
	}

	section, ok := api.Derive(DeriveSection)
	if !ok {
		return nil, gaerrors.DERIVES_NOT_INSTALLED.New(
			"derive section %s missing after install", DeriveSection,
		).WithMetadata(gaerrors.SectionMetadata{Section: DeriveSection})
	}
	derives, ok := section.(*Derives)
	if !ok {
		return nil, gaerrors.DERIVES_NOT_INSTALLED.New(
			"derive section %s is a %T", DeriveSection, section,
		).WithMetadata(gaerrors.SectionMetadata{Section: DeriveSection})
	}

	nextAssetId, err := chain.NewStorageQuery[*asset.Id](
		api, module, "NextAssetId", chain.AssetIdType,
	)
	if err != nil {
		return nil, err
	}
	totalIssuance, err := chain.NewStorageQuery[*types.U128](
		api, module, "TotalIssuance", chain.BalanceType,
	)
	if err != nil {
		return nil, err
	}

	ga.api = api
	ga.derives = derives
	ga.nextAssetId = nextAssetId
	ga.totalIssuance = totalIssuance
	return ga, nil
}

func (g *GenericAsset) GetVersion() string {
	return Version
}

// API returns the chain handle the facade operates on.
func (g *GenericAsset) API() *chain.API {
	return g.api
}

func (g *GenericAsset) Registry() *asset.Registry {
	return g.registry
}

// ResolveAssetId resolves a numeric value or a registered symbol into an
// asset id.
func (g *GenericAsset) ResolveAssetId(assetId any) (*asset.Id, error) {
	return g.registry.NewId(assetId)
}

// Create builds the creation of a new asset, whose id is picked by the chain.
func (g *GenericAsset) Create(opts asset.Options) (*chain.Submittable, error) {
	if err := opts.Validate(); err != nil {
		return nil, gaerrors.INVALID_AMOUNT.Wrap(err).
			WithMetadata(gaerrors.AmountMetadata{Amount: fmt.Sprint(opts.InitialIssuance)})
	}
	return g.api.Tx(createCall, opts)
}

// CreateReserved builds the creation of an asset with the given reserved id.
func (g *GenericAsset) CreateReserved(assetId any, opts asset.Options) (*chain.Submittable, error) {
	id, err := g.ResolveAssetId(assetId)
	if err != nil {
		return nil, err
	}
	if !id.IsReserved() {
		log.Warnf("asset id %s is outside of the reserved range", id)
	}
	if err := opts.Validate(); err != nil {
		return nil, gaerrors.INVALID_AMOUNT.Wrap(err).
			WithMetadata(gaerrors.AmountMetadata{Amount: fmt.Sprint(opts.InitialIssuance)})
	}
	return g.api.Tx(createReservedCall, *id, opts)
}

// Transfer builds the transfer of amount units of the asset to dest.
func (g *GenericAsset) Transfer(
	assetId any, dest types.AccountID, amount *big.Int,
) (*chain.Submittable, error) {
	id, err := g.ResolveAssetId(assetId)
	if err != nil {
		return nil, err
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	return g.api.Tx(transferCall, id.Compact(), dest, types.NewUCompact(amount))
}

// Mint builds the issuance of amount new units of the asset to dest.
func (g *GenericAsset) Mint(
	assetId any, dest types.AccountID, amount *big.Int,
) (*chain.Submittable, error) {
	id, err := g.ResolveAssetId(assetId)
	if err != nil {
		return nil, err
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	return g.api.Tx(mintCall, id.Compact(), dest, types.NewU128(*amount))
}

// Burn builds the destruction of amount units of the asset held by source.
func (g *GenericAsset) Burn(
	assetId any, source types.AccountID, amount *big.Int,
) (*chain.Submittable, error) {
	id, err := g.ResolveAssetId(assetId)
	if err != nil {
		return nil, err
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	return g.api.Tx(burnCall, id.Compact(), source, types.NewU128(*amount))
}

// NextAssetID queries the id the next created asset will get.
func (g *GenericAsset) NextAssetID() *chain.StorageQuery[*asset.Id] {
	return g.nextAssetId
}

// TotalIssuance queries the total issuance of an asset.
func (g *GenericAsset) TotalIssuance() IssuanceQuery {
	return IssuanceQuery{g, g.totalIssuance}
}

func (g *GenericAsset) FreeBalance() BalanceQuery {
	return BalanceQuery{g, FreeBalance}
}

func (g *GenericAsset) ReservedBalance() BalanceQuery {
	return BalanceQuery{g, ReservedBalance}
}

// TotalBalance queries the sum of the free and reserved balances.
func (g *GenericAsset) TotalBalance() BalanceQuery {
	return BalanceQuery{g, TotalBalance}
}

func newAssetId() any {
	return new(asset.Id)
}

func validateAmount(amount *big.Int) error {
	if amount == nil {
		return gaerrors.INVALID_AMOUNT.New("missing amount")
	}
	if amount.Sign() < 0 || amount.Cmp(asset.MaxBalance) > 0 {
		return gaerrors.INVALID_AMOUNT.New("amount %s out of range", amount).
			WithMetadata(gaerrors.AmountMetadata{Amount: amount.String()})
	}
	return nil
}
