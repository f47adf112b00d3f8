package gsrpc_test

import (
	"testing"

	"github.com/cennznet/generic-asset-go/pkg/chain/gsrpc"
	"github.com/stretchr/testify/require"
)

func TestNewConn(t *testing.T) {
	_, err := gsrpc.NewConn("")
	require.EqualError(t, err, "missing node url")

	_, err = gsrpc.NewConn("ws://127.0.0.1:1")
	require.Error(t, err)
}
