package main

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"syscall"

	"github.com/cennznet/generic-asset-go/pkg/chain"
	"github.com/cennznet/generic-asset-go/pkg/ga-lib/address"
	"github.com/centrifuge/go-substrate-rpc-client/v3/signature"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

// getSigner returns the keyring pair of the --seed secret, prompting for it if
// not set. Only the address of the default signer is ever stored, so the
// secret must match it when one is configured.
func getSigner(ctx *cli.Context) (signature.KeyringPair, error) {
	cfgData, err := getConfig(ctx.Context)
	if err != nil {
		return signature.KeyringPair{}, err
	}

	seed := ctx.String(seedFlag.Name)
	if len(seed) <= 0 {
		fmt.Print("signer secret uri or mnemonic: ")
		buf, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return signature.KeyringPair{}, err
		}
		seed = strings.TrimSpace(string(buf))
	}
	if len(seed) <= 0 {
		return signature.KeyringPair{}, fmt.Errorf("missing signer secret")
	}

	signer, err := signature.KeyringPairFromSecret(seed, address.SubstrateNetwork)
	if err != nil {
		return signature.KeyringPair{}, err
	}
	if err := checkSigner(signer, cfgData.SignerAddress); err != nil {
		return signature.KeyringPair{}, err
	}
	return signer, nil
}

// checkSigner verifies that the signer holds the account of the configured
// address, if any.
func checkSigner(signer signature.KeyringPair, configured string) error {
	if len(configured) <= 0 {
		return nil
	}
	account, err := address.ParseAccount(configured)
	if err != nil {
		return fmt.Errorf("invalid configured signer: %w", err)
	}
	if !bytes.Equal(account[:], signer.PublicKey) {
		return fmt.Errorf(
			"signer %s does not match configured signer %s", signer.Address, configured,
		)
	}
	return nil
}

// normalizeAddress turns an ss58 address or hex public key into an ss58
// address of the substrate network. An empty value is left as is.
func normalizeAddress(s string) (string, error) {
	if len(s) <= 0 {
		return "", nil
	}
	account, err := address.ParseAccount(s)
	if err != nil {
		return "", err
	}
	return address.Encode(account, address.SubstrateNetwork)
}

func signOptions(nonce int64) ([]chain.SignOption, error) {
	opts := make([]chain.SignOption, 0, 1)
	// negative means unset
	if nonce < 0 {
		return opts, nil
	}
	if nonce > math.MaxUint32 {
		return nil, fmt.Errorf("invalid nonce %d, must be at most %d", nonce, uint32(math.MaxUint32))
	}
	return append(opts, chain.WithNonce(uint32(nonce))), nil
}
