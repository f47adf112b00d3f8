package storage

import (
	"encoding/hex"

	"github.com/centrifuge/go-substrate-rpc-client/v3/types"
	"github.com/centrifuge/go-substrate-rpc-client/v3/xxhash"
	"golang.org/x/crypto/blake2b"
)

const hexPrefix = "0x"

const (
	// FreeBalancePrefix is the storage prefix of the free balance double map,
	// keyed by asset id and account.
	FreeBalancePrefix = "GenericAsset FreeBalance"
	// ReservedBalancePrefix is the storage prefix of the reserved balance double
	// map, keyed by asset id and account.
	ReservedBalancePrefix = "GenericAsset ReservedBalance"
)

// DoubleMapStorageKey returns the raw key of a double map storage item:
// blake2b-256(prefix ++ key1) followed by twox128(key2), where keys are
// SCALE-encoded before hashing.
func DoubleMapStorageKey(prefix string, key1, key2 any) (types.StorageKey, error) {
	key1Encoded, err := types.EncodeToBytes(key1)
	if err != nil {
		return nil, err
	}
	key2Encoded, err := types.EncodeToBytes(key2)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, len(prefix)+len(key1Encoded))
	buf = append(buf, prefix...)
	buf = append(buf, key1Encoded...)

	key := make([]byte, 0, blake2b.Size256+16)
	key = append(key, Blake2b256(buf)...)
	key = append(key, Twox128(key2Encoded)...)
	return types.NewStorageKey(key), nil
}

// DeriveDoubleMapKey is like DoubleMapStorageKey but returns the key as a
// 0x-prefixed hex string.
func DeriveDoubleMapKey(prefix string, key1, key2 any) (string, error) {
	key, err := DoubleMapStorageKey(prefix, key1, key2)
	if err != nil {
		return "", err
	}
	return hexPrefix + hex.EncodeToString(key), nil
}

// Blake2b256 returns the 256-bit blake2b digest of data.
func Blake2b256(data []byte) []byte {
	sum := blake2b.Sum256(data)
	return sum[:]
}

// Twox128 returns the 128-bit xxhash digest of data, made of two xxhash64
// rounds seeded with 0 and 1.
func Twox128(data []byte) []byte {
	return xxhash.New128(data).Sum(nil)
}
