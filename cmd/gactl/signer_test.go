package main

import (
	"math"
	"testing"

	"github.com/centrifuge/go-substrate-rpc-client/v3/signature"
	"github.com/stretchr/testify/require"
)

const (
	aliceAddress = "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"
	aliceHex     = "0xd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"
	bobAddress   = "5FHneW46xGXgs5mUiveU4sbTyGBzmstUspZC92UhjJM694ty"
)

func TestSignOptions(t *testing.T) {
	tests := []struct {
		name          string
		nonce         int64
		expectedLen   int
		expectedError string
	}{
		{"unset", -1, 0, ""},
		{"zero", 0, 1, ""},
		{"max", math.MaxUint32, 1, ""},
		{"too big", math.MaxUint32 + 1, 0, "invalid nonce 4294967296"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := signOptions(tt.nonce)
			if len(tt.expectedError) > 0 {
				require.ErrorContains(t, err, tt.expectedError)
				require.Nil(t, opts)
				return
			}
			require.NoError(t, err)
			require.Len(t, opts, tt.expectedLen)
		})
	}
}

func TestCheckSigner(t *testing.T) {
	alice := signature.TestKeyringPairAlice

	require.NoError(t, checkSigner(alice, ""))
	require.NoError(t, checkSigner(alice, aliceAddress))
	require.NoError(t, checkSigner(alice, aliceHex))

	err := checkSigner(alice, bobAddress)
	require.ErrorContains(t, err, "does not match configured signer")

	err = checkSigner(alice, "not an address")
	require.ErrorContains(t, err, "invalid configured signer")
}

func TestNormalizeAddress(t *testing.T) {
	got, err := normalizeAddress("")
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = normalizeAddress(aliceHex)
	require.NoError(t, err)
	require.Equal(t, aliceAddress, got)

	got, err = normalizeAddress(aliceAddress)
	require.NoError(t, err)
	require.Equal(t, aliceAddress, got)

	_, err = normalizeAddress("0x1234")
	require.Error(t, err)
}
