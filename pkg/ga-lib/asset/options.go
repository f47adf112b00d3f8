package asset

import (
	"fmt"
	"math/big"

	"github.com/centrifuge/go-substrate-rpc-client/v3/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v3/types"
)

// permissionsV1 is the only version of permissions known by the pallet.
const permissionsV1 byte = 0x00

// MaxBalance is the largest amount a u128 balance can hold.
var MaxBalance = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// Owner is the holder of a permission over an asset. The zero value means no owner.
type Owner struct {
	account *types.AccountID
}

// NoOwner returns an Owner that nobody holds.
func NoOwner() Owner {
	return Owner{}
}

// NewOwner returns an Owner held by the given account.
func NewOwner(account types.AccountID) Owner {
	return Owner{&account}
}

// Account returns the holder of the permission, if any.
func (o Owner) Account() (types.AccountID, bool) {
	if o.account == nil {
		return types.AccountID{}, false
	}
	return *o.account, true
}

// Encode implements scale.Encodeable.
func (o Owner) Encode(encoder scale.Encoder) error {
	if o.account == nil {
		return encoder.PushByte(0)
	}
	if err := encoder.PushByte(1); err != nil {
		return err
	}
	return encoder.Encode(*o.account)
}

// Permissions lists who is allowed to update, mint and burn an asset.
type Permissions struct {
	Update Owner
	Mint   Owner
	Burn   Owner
}

// NewPermissions returns Permissions granting every right to the given account.
func NewPermissions(owner types.AccountID) Permissions {
	return Permissions{
		Update: NewOwner(owner),
		Mint:   NewOwner(owner),
		Burn:   NewOwner(owner),
	}
}

// Encode implements scale.Encodeable.
func (p Permissions) Encode(encoder scale.Encoder) error {
	if err := encoder.PushByte(permissionsV1); err != nil {
		return err
	}
	for _, owner := range []Owner{p.Update, p.Mint, p.Burn} {
		if err := owner.Encode(encoder); err != nil {
			return err
		}
	}
	return nil
}

// Options are the initialization options of a new asset.
type Options struct {
	InitialIssuance *big.Int
	Permissions     Permissions
}

// Validate checks that the initial issuance is set and fits a u128 balance.
func (o Options) Validate() error {
	if o.InitialIssuance == nil {
		return fmt.Errorf("missing initial issuance")
	}
	if o.InitialIssuance.Sign() < 0 {
		return fmt.Errorf("initial issuance must not be negative")
	}
	if o.InitialIssuance.Cmp(MaxBalance) > 0 {
		return fmt.Errorf("initial issuance %s exceeds max balance", o.InitialIssuance)
	}
	return nil
}

// Encode implements scale.Encodeable.
func (o Options) Encode(encoder scale.Encoder) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := encoder.Encode(types.NewUCompact(o.InitialIssuance)); err != nil {
		return err
	}
	return o.Permissions.Encode(encoder)
}
