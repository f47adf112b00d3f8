package main

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const (
	datadirFlagName  = "datadir"
	logLevelFlagName = "log-level"
	verboseFlagName  = "verbose"
	nodeUrlFlagName  = "node-url"
	networkFlagName  = "network"
	seedFlagName     = "seed"
	signerFlagName   = "signer"
	assetFlagName    = "asset"
	accountFlagName  = "account"
	amountFlagName   = "amount"
	blockFlagName    = "block"
	prefixFlagName   = "prefix"
	watchFlagName    = "watch"
	nonceFlagName    = "nonce"

	defaultNodeUrl  = "ws://127.0.0.1:9944"
	defaultNetwork  = "local"
	defaultLogLevel = int(log.WarnLevel)
)

// env returns a list of strings prefixed with `GACTL_`.
// This is used as a syntax sugar for defining env vars.
func env(values ...string) []string {
	envs := make([]string, len(values))

	for i, value := range values {
		envs[i] = fmt.Sprintf("GACTL_%s", value)
	}

	return envs
}

var (
	datadirFlag = &cli.StringFlag{
		Name:    datadirFlagName,
		Usage:   "Specify the data directory",
		Value:   btcutil.AppDataDir("gactl", false),
		EnvVars: env("DATADIR"),
	}
	logLevelFlag = &cli.IntFlag{
		Name:    logLevelFlagName,
		Usage:   "Logging level (0-6, where 6 is trace)",
		Value:   defaultLogLevel,
		EnvVars: env("LOG_LEVEL"),
	}
	verboseFlag = &cli.BoolFlag{
		Name:        verboseFlagName,
		Usage:       "enable debug logs",
		Value:       false,
		DefaultText: "false",
	}
	nodeUrlFlag = &cli.StringFlag{
		Name:    nodeUrlFlagName,
		Usage:   "the websocket url of the node to connect to",
		Value:   defaultNodeUrl,
		EnvVars: env("NODE_URL"),
	}
	networkFlag = &cli.StringFlag{
		Name:  networkFlagName,
		Usage: "the name of the network the node belongs to",
		Value: defaultNetwork,
	}
	signerFlag = &cli.StringFlag{
		Name:  signerFlagName,
		Usage: "optional ss58 address or hex public key of the default signer",
	}
	seedFlag = &cli.StringFlag{
		Name:    seedFlagName,
		Usage:   "secret uri or mnemonic of the signer, prompted for if not set",
		EnvVars: env("SEED"),
	}
	assetFlag = &cli.StringFlag{
		Name:     assetFlagName,
		Usage:    "asset id or symbol",
		Required: true,
	}
	accountFlag = &cli.StringFlag{
		Name:     accountFlagName,
		Usage:    "ss58 address or hex public key of the account",
		Required: true,
	}
	amountFlag = &cli.StringFlag{
		Name:     amountFlagName,
		Usage:    "amount in base units",
		Required: true,
	}
	blockFlag = &cli.StringFlag{
		Name:  blockFlagName,
		Usage: "hash of the block to query, defaults to the best block",
	}
	prefixFlag = &cli.StringFlag{
		Name:  prefixFlagName,
		Usage: "balance map to derive the key for, either free, reserved or a raw storage prefix",
		Value: "free",
	}
	watchFlag = &cli.BoolFlag{
		Name:  watchFlagName,
		Usage: "wait for the extrinsic to be included in a block",
	}
	nonceFlag = &cli.Int64Flag{
		Name:  nonceFlagName,
		Usage: "nonce of the signer, fetched from the node if not set",
		Value: -1,
	}
)
