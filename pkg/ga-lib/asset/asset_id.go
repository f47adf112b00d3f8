package asset

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	gaerrors "github.com/cennznet/generic-asset-go/pkg/errors"
	"github.com/centrifuge/go-substrate-rpc-client/v3/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v3/types"
)

// ASSET_ID_SIZE is the serialized size of an Id in bytes (fixed-width u32).
const ASSET_ID_SIZE = 4

// Id identifies an asset of the generic asset pallet. It can be created from a
// numeric value or from the symbol of a registered asset, but it always holds
// the resolved numeric id.
type Id struct {
	value uint32
}

// NewId resolves the given value into an Id using the default registry.
// See Registry.NewId for the accepted values.
func NewId(value any) (*Id, error) {
	return defaultRegistry.NewId(value)
}

// NewId resolves the given value into an Id. Accepted values are Go integers,
// *big.Int, types.U32, decimal strings, registered symbols, Definition and Id.
// An unknown symbol or a value outside the u32 range is an error.
func (r *Registry) NewId(value any) (*Id, error) {
	switch v := value.(type) {
	case Id:
		return &Id{v.value}, nil
	case *Id:
		if v == nil {
			return nil, invalidAssetId(value, "missing asset id")
		}
		return &Id{v.value}, nil
	case Definition:
		return &Id{v.ID}, nil
	case string:
		return r.newIdFromString(v)
	case types.U32:
		return &Id{uint32(v)}, nil
	case uint8:
		return &Id{uint32(v)}, nil
	case uint16:
		return &Id{uint32(v)}, nil
	case uint32:
		return &Id{v}, nil
	case uint:
		return newIdFromUint64(value, uint64(v))
	case uint64:
		return newIdFromUint64(value, v)
	case int:
		return newIdFromInt64(value, int64(v))
	case int8:
		return newIdFromInt64(value, int64(v))
	case int16:
		return newIdFromInt64(value, int64(v))
	case int32:
		return newIdFromInt64(value, int64(v))
	case int64:
		return newIdFromInt64(value, v)
	case *big.Int:
		if v == nil || v.Sign() < 0 || !v.IsUint64() {
			return nil, invalidAssetId(value, "asset id out of range")
		}
		return newIdFromUint64(value, v.Uint64())
	default:
		return nil, invalidAssetId(value, "unsupported asset id type %T", value)
	}
}

// Value returns the numeric asset id.
func (a Id) Value() uint32 {
	return a.value
}

// IsReserved returns whether the id falls in the range reserved for system assets.
func (a Id) IsReserved() bool {
	return a.value < MaxReserveID
}

// Symbol returns the symbol of the asset in the given registry, if any.
func (a Id) Symbol(r *Registry) (string, bool) {
	def, ok := r.Lookup(a.value)
	if !ok {
		return "", false
	}
	return def.Symbol, true
}

// Serialize encodes the Id into its fixed-width SCALE representation.
func (a Id) Serialize() ([]byte, error) {
	return types.EncodeToBytes(a)
}

// String returns the decimal representation of the id.
func (a Id) String() string {
	return strconv.FormatUint(uint64(a.value), 10)
}

// Compact returns the compact SCALE form of the id, used by call arguments
// marked as compact.
func (a Id) Compact() types.UCompact {
	return types.NewUCompactFromUInt(uint64(a.value))
}

func (a Id) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// Encode implements scale.Encodeable.
func (a Id) Encode(encoder scale.Encoder) error {
	return encoder.Encode(a.value)
}

// Decode implements scale.Decodeable.
func (a *Id) Decode(decoder scale.Decoder) error {
	var value uint32
	if err := decoder.Decode(&value); err != nil {
		return err
	}
	a.value = value
	return nil
}

func (r *Registry) newIdFromString(s string) (*Id, error) {
	s = strings.TrimSpace(s)
	if len(s) <= 0 {
		return nil, invalidAssetId(s, "missing asset id")
	}
	if isNumeric(s) {
		value, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return nil, invalidAssetId(s, "asset id out of range")
		}
		return &Id{uint32(value)}, nil
	}
	value, err := r.Resolve(s)
	if err != nil {
		return nil, err
	}
	return &Id{value}, nil
}

func newIdFromUint64(orig any, value uint64) (*Id, error) {
	if value > math.MaxUint32 {
		return nil, invalidAssetId(orig, "asset id out of range")
	}
	return &Id{uint32(value)}, nil
}

func newIdFromInt64(orig any, value int64) (*Id, error) {
	if value < 0 {
		return nil, invalidAssetId(orig, "asset id out of range")
	}
	return newIdFromUint64(orig, uint64(value))
}

func isNumeric(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if len(s) <= 0 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func invalidAssetId(value any, msg string, args ...any) error {
	return gaerrors.INVALID_ASSET_ID.New(msg, args...).
		WithMetadata(gaerrors.AssetIdMetadata{
			Value: fmt.Sprintf("%v", value),
			Type:  fmt.Sprintf("%T", value),
		})
}
