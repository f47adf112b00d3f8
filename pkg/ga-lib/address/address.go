// Package address encodes and decodes ss58 account addresses.
package address

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/centrifuge/go-substrate-rpc-client/v3/types"
	"golang.org/x/crypto/blake2b"
)

const (
	// SubstrateNetwork is the generic substrate address format.
	SubstrateNetwork uint8 = 42

	accountSize  = 32
	checksumSize = 2
)

var checksumPrefix = []byte("SS58PRE")

// Encode returns the ss58 address of the account for the given network.
// Only single-byte network prefixes (below 64) are supported.
func Encode(account types.AccountID, network uint8) (string, error) {
	if network >= 64 {
		return "", fmt.Errorf("unsupported network prefix %d", network)
	}

	payload := make([]byte, 0, 1+accountSize+checksumSize)
	payload = append(payload, network)
	payload = append(payload, account[:]...)
	payload = append(payload, checksum(payload)...)
	return base58.Encode(payload), nil
}

// Decode returns the account and network prefix of the given ss58 address.
func Decode(address string) (types.AccountID, uint8, error) {
	buf := base58.Decode(address)
	if len(buf) != 1+accountSize+checksumSize {
		return types.AccountID{}, 0, fmt.Errorf("invalid address length")
	}
	network := buf[0]
	if network >= 64 {
		return types.AccountID{}, 0, fmt.Errorf("unsupported network prefix %d", network)
	}

	payload, sum := buf[:1+accountSize], buf[1+accountSize:]
	if !bytes.Equal(checksum(payload), sum) {
		return types.AccountID{}, 0, fmt.Errorf("invalid address checksum")
	}
	return types.NewAccountID(payload[1:]), network, nil
}

// ParseAccount accepts either an ss58 address or the 0x-prefixed hex of a
// 32 bytes public key.
func ParseAccount(s string) (types.AccountID, error) {
	s = strings.TrimSpace(s)
	if len(s) <= 0 {
		return types.AccountID{}, fmt.Errorf("missing account")
	}

	if strings.HasPrefix(s, "0x") {
		buf, err := hex.DecodeString(s[2:])
		if err != nil {
			return types.AccountID{}, fmt.Errorf("invalid account hex: %s", err)
		}
		if len(buf) != accountSize {
			return types.AccountID{}, fmt.Errorf(
				"invalid account length, expected %d bytes, got %d", accountSize, len(buf),
			)
		}
		return types.NewAccountID(buf), nil
	}

	account, _, err := Decode(s)
	return account, err
}

func checksum(payload []byte) []byte {
	buf := make([]byte, 0, len(checksumPrefix)+len(payload))
	buf = append(buf, checksumPrefix...)
	buf = append(buf, payload...)
	sum := blake2b.Sum512(buf)
	return sum[:checksumSize]
}
