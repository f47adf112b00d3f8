package asset

import (
	"fmt"

	gaerrors "github.com/cennznet/generic-asset-go/pkg/errors"
)

// MaxReserveID is the upper bound (exclusive) of the id range reserved for
// system assets. Assets created by users are given ids from this value on.
const MaxReserveID = 1000000

// Category classifies the role an asset plays on the chain.
type Category uint8

const (
	// CategoryUnspecified is the zero value, representing an invalid category.
	CategoryUnspecified Category = iota
	// Staking assets are bonded by validators and nominators.
	Staking
	// Spending assets are used to pay transaction fees.
	Spending
	// Reserve assets are any other asset held in reserve by the chain.
	Reserve
)

func (c Category) String() string {
	switch c {
	case Staking:
		return "STAKING"
	case Spending:
		return "SPENDING"
	case Reserve:
		return "RESERVE"
	default:
		return fmt.Sprintf("UNSPECIFIED(%d)", uint8(c))
	}
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Definition describes a well-known asset.
type Definition struct {
	ID       uint32   `json:"id"`
	Symbol   string   `json:"symbol"`
	Decimals uint8    `json:"decimals"`
	Category Category `json:"category"`
}

func (d Definition) validate() error {
	if len(d.Symbol) <= 0 {
		return d.invalid("missing symbol for asset %d", d.ID)
	}
	switch d.Category {
	case Staking, Spending, Reserve:
		return nil
	default:
		return d.invalid("invalid category %s for asset %s", d.Category, d.Symbol)
	}
}

func (d Definition) invalid(msg string, args ...any) error {
	return gaerrors.INVALID_ASSET_DEFINITION.New(msg, args...).
		WithMetadata(gaerrors.AssetDefinitionMetadata{
			ID:       d.ID,
			Symbol:   d.Symbol,
			Category: d.Category.String(),
		})
}

// DefaultAssets is the table of assets reserved at genesis, main-net ones
// first followed by their test-net twins.
var DefaultAssets = []Definition{
	{ID: 0, Symbol: "CENNZ", Decimals: 18, Category: Staking},
	{ID: 1, Symbol: "CENTRAPAY", Decimals: 18, Category: Spending},
	{ID: 2, Symbol: "PLUG", Decimals: 18, Category: Reserve},
	{ID: 3, Symbol: "SYLO", Decimals: 18, Category: Reserve},
	{ID: 4, Symbol: "CERTI", Decimals: 18, Category: Reserve},
	{ID: 5, Symbol: "ARDA", Decimals: 18, Category: Reserve},
	{ID: 16000, Symbol: "CENNZ-T", Decimals: 18, Category: Staking},
	{ID: 16001, Symbol: "CENTRAPAY-T", Decimals: 18, Category: Spending},
	{ID: 16002, Symbol: "PLUG-T", Decimals: 18, Category: Reserve},
	{ID: 16003, Symbol: "SYLO-T", Decimals: 18, Category: Reserve},
	{ID: 16004, Symbol: "CERTI-T", Decimals: 18, Category: Reserve},
	{ID: 16005, Symbol: "ARDA-T", Decimals: 18, Category: Reserve},
}
