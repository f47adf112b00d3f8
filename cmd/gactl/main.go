package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/cennznet/generic-asset-go/pkg/chain"
	"github.com/cennznet/generic-asset-go/pkg/chain/gsrpc"
	gasdk "github.com/cennznet/generic-asset-go/pkg/client-lib"
	"github.com/cennznet/generic-asset-go/pkg/client-lib/store"
	"github.com/cennznet/generic-asset-go/pkg/client-lib/types"
	"github.com/cennznet/generic-asset-go/pkg/ga-lib/address"
	"github.com/cennznet/generic-asset-go/pkg/ga-lib/asset"
	"github.com/cennznet/generic-asset-go/pkg/ga-lib/storage"
	gstypes "github.com/centrifuge/go-substrate-rpc-client/v3/types"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

var (
	Version  string
	sdkStore types.Store
)

func main() {
	app := cli.NewApp()
	app.Version = Version
	app.Name = "gactl"
	app.Usage = "generic asset command line interface"
	app.Commands = append(
		app.Commands,
		&initCommand,
		&configCommand,
		&assetsCommand,
		&storageKeyCommand,
		&balanceCommand,
		&issuanceCommand,
		&nextAssetIdCommand,
		&transferCommand,
		&mintCommand,
		&burnCommand,
	)
	app.Flags = []cli.Flag{datadirFlag, logLevelFlag, verboseFlag}
	app.Before = func(ctx *cli.Context) error {
		log.SetLevel(log.Level(ctx.Int(logLevelFlag.Name)))
		if ctx.Bool(verboseFlag.Name) {
			log.SetLevel(log.DebugLevel)
		}

		svc, err := store.NewStore(store.Config{
			ConfigStoreType: types.FileStore,
			BaseDir:         ctx.String(datadirFlag.Name),
		})
		if err != nil {
			return fmt.Errorf("error initializing store: %v", err)
		}
		sdkStore = svc
		return nil
	}
	app.After = func(_ *cli.Context) error {
		if sdkStore != nil {
			sdkStore.Close()
		}
		return nil
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Println(fmt.Errorf("error: %v", err))
		os.Exit(1)
	}
}

var (
	initCommand = cli.Command{
		Name:  "init",
		Usage: "Initialize the CLI with the node to connect to",
		Action: func(ctx *cli.Context) error {
			return initConfig(ctx)
		},
		Flags: []cli.Flag{nodeUrlFlag, networkFlag, signerFlag},
	}
	configCommand = cli.Command{
		Name:  "config",
		Usage: "Shows the CLI configuration",
		Action: func(ctx *cli.Context) error {
			return config(ctx)
		},
	}
	assetsCommand = cli.Command{
		Name:  "assets",
		Usage: "Lists the well-known assets",
		Action: func(ctx *cli.Context) error {
			return printJSON(asset.DefaultRegistry().Definitions())
		},
	}
	storageKeyCommand = cli.Command{
		Name:  "storage-key",
		Usage: "Derives the storage key of a balance of an account",
		Action: func(ctx *cli.Context) error {
			return storageKey(ctx)
		},
		Flags: []cli.Flag{prefixFlag, assetFlag, accountFlag},
	}
	balanceCommand = cli.Command{
		Name:  "balance",
		Usage: "Shows the free, reserved and total balance of an account",
		Action: func(ctx *cli.Context) error {
			return balance(ctx)
		},
		Flags: []cli.Flag{assetFlag, accountFlag, blockFlag},
	}
	issuanceCommand = cli.Command{
		Name:  "issuance",
		Usage: "Shows the total issuance of an asset",
		Action: func(ctx *cli.Context) error {
			return issuance(ctx)
		},
		Flags: []cli.Flag{assetFlag, blockFlag},
	}
	nextAssetIdCommand = cli.Command{
		Name:  "next-asset-id",
		Usage: "Shows the id the next created asset will get",
		Action: func(ctx *cli.Context) error {
			return nextAssetId(ctx)
		},
		Flags: []cli.Flag{blockFlag},
	}
	transferCommand = cli.Command{
		Name:  "transfer",
		Usage: "Transfers an amount of an asset to an account",
		Action: func(ctx *cli.Context) error {
			return submit(ctx, func(
				ga *gasdk.GenericAsset, id *asset.Id, account gstypes.AccountID, amount *big.Int,
			) (*chain.Submittable, error) {
				return ga.Transfer(id, account, amount)
			})
		},
		Flags: []cli.Flag{assetFlag, accountFlag, amountFlag, seedFlag, nonceFlag, watchFlag},
	}
	mintCommand = cli.Command{
		Name:  "mint",
		Usage: "Mints an amount of an asset to an account",
		Action: func(ctx *cli.Context) error {
			return submit(ctx, func(
				ga *gasdk.GenericAsset, id *asset.Id, account gstypes.AccountID, amount *big.Int,
			) (*chain.Submittable, error) {
				return ga.Mint(id, account, amount)
			})
		},
		Flags: []cli.Flag{assetFlag, accountFlag, amountFlag, seedFlag, nonceFlag, watchFlag},
	}
	burnCommand = cli.Command{
		Name:  "burn",
		Usage: "Burns an amount of an asset held by an account",
		Action: func(ctx *cli.Context) error {
			return submit(ctx, func(
				ga *gasdk.GenericAsset, id *asset.Id, account gstypes.AccountID, amount *big.Int,
			) (*chain.Submittable, error) {
				return ga.Burn(id, account, amount)
			})
		},
		Flags: []cli.Flag{assetFlag, accountFlag, amountFlag, seedFlag, nonceFlag, watchFlag},
	}
)

func initConfig(ctx *cli.Context) error {
	signer, err := normalizeAddress(ctx.String(signerFlag.Name))
	if err != nil {
		return err
	}
	data := types.Config{
		NodeURL:       ctx.String(nodeUrlFlag.Name),
		Network:       ctx.String(networkFlag.Name),
		SignerAddress: signer,
	}
	if err := sdkStore.ConfigStore().AddData(ctx.Context, data); err != nil {
		return err
	}
	return config(ctx)
}

func config(ctx *cli.Context) error {
	cfgData, err := getConfig(ctx.Context)
	if err != nil {
		return err
	}

	cfg := map[string]any{
		"node_url": cfgData.NodeURL,
		"network":  cfgData.Network,
		"signer":   cfgData.SignerAddress,
		"datadir":  sdkStore.ConfigStore().GetDatadir(),
	}
	return printJSON(cfg)
}

func storageKey(ctx *cli.Context) error {
	id, err := asset.NewId(ctx.String(assetFlag.Name))
	if err != nil {
		return err
	}
	account, err := address.ParseAccount(ctx.String(accountFlag.Name))
	if err != nil {
		return err
	}

	prefix := ctx.String(prefixFlag.Name)
	switch strings.ToLower(prefix) {
	case "free":
		prefix = storage.FreeBalancePrefix
	case "reserved":
		prefix = storage.ReservedBalancePrefix
	}

	key, err := storage.DeriveDoubleMapKey(prefix, id, account)
	if err != nil {
		return err
	}
	return printJSON(map[string]any{
		"prefix":   prefix,
		"asset_id": id,
		"key":      key,
	})
}

func balance(ctx *cli.Context) error {
	ga, closeFn, err := getGenericAsset(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	id, err := ga.ResolveAssetId(ctx.String(assetFlag.Name))
	if err != nil {
		return err
	}
	account, err := address.ParseAccount(ctx.String(accountFlag.Name))
	if err != nil {
		return err
	}
	at, err := parseBlock(ctx)
	if err != nil {
		return err
	}

	resp := map[string]any{"asset_id": id}
	if symbol, ok := id.Symbol(ga.Registry()); ok {
		resp["symbol"] = symbol
	}
	for _, q := range []gasdk.BalanceQuery{
		ga.FreeBalance(), ga.ReservedBalance(), ga.TotalBalance(),
	} {
		var amount *big.Int
		if at != nil {
			amount, err = q.At(ctx.Context, *at, id, account)
		} else {
			amount, err = q.Current(ctx.Context, id, account)
		}
		if err != nil {
			return err
		}
		resp[q.Kind().String()] = amount.String()
	}
	return printJSON(resp)
}

func issuance(ctx *cli.Context) error {
	ga, closeFn, err := getGenericAsset(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	id, err := ga.ResolveAssetId(ctx.String(assetFlag.Name))
	if err != nil {
		return err
	}
	at, err := parseBlock(ctx)
	if err != nil {
		return err
	}

	var total *big.Int
	if at != nil {
		total, err = ga.TotalIssuance().At(ctx.Context, *at, id)
	} else {
		total, err = ga.TotalIssuance().Current(ctx.Context, id)
	}
	if err != nil {
		return err
	}
	return printJSON(map[string]any{
		"asset_id":       id,
		"total_issuance": total.String(),
	})
}

func nextAssetId(ctx *cli.Context) error {
	ga, closeFn, err := getGenericAsset(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	at, err := parseBlock(ctx)
	if err != nil {
		return err
	}

	var id *asset.Id
	if at != nil {
		id, err = ga.NextAssetID().At(ctx.Context, *at)
	} else {
		id, err = ga.NextAssetID().Current(ctx.Context)
	}
	if err != nil {
		return err
	}
	return printJSON(map[string]any{
		"next_asset_id": id,
	})
}

type txBuilder func(
	ga *gasdk.GenericAsset, id *asset.Id, account gstypes.AccountID, amount *big.Int,
) (*chain.Submittable, error)

func submit(ctx *cli.Context, build txBuilder) error {
	ga, closeFn, err := getGenericAsset(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	id, err := ga.ResolveAssetId(ctx.String(assetFlag.Name))
	if err != nil {
		return err
	}
	account, err := address.ParseAccount(ctx.String(accountFlag.Name))
	if err != nil {
		return err
	}
	amount, ok := new(big.Int).SetString(ctx.String(amountFlag.Name), 10)
	if !ok {
		return fmt.Errorf("invalid amount %s", ctx.String(amountFlag.Name))
	}

	signOpts, err := signOptions(ctx.Int64(nonceFlag.Name))
	if err != nil {
		return err
	}
	signer, err := getSigner(ctx)
	if err != nil {
		return err
	}

	tx, err := build(ga, id, account, amount)
	if err != nil {
		return err
	}

	if err := tx.Sign(ctx.Context, signer, signOpts...); err != nil {
		return err
	}

	if !ctx.Bool(watchFlag.Name) {
		hash, err := tx.Send(ctx.Context)
		if err != nil {
			return err
		}
		return printJSON(map[string]any{
			"call":   tx.Name(),
			"signer": signer.Address,
			"hash":   hash.Hex(),
		})
	}

	sub, err := tx.SendAndWatch(ctx.Context)
	if err != nil {
		return err
	}
	defer sub.Unsubscribe()

	for status := range sub.Chan() {
		name, block := describeStatus(status)
		resp := map[string]any{"call": tx.Name(), "status": name}
		if block != nil {
			resp["block"] = block.Hex()
		}
		if err := printJSON(resp); err != nil {
			return err
		}
		if status.IsInBlock || status.IsFinalized {
			return nil
		}
		if status.IsDropped || status.IsInvalid || status.IsUsurped {
			return fmt.Errorf("extrinsic %s", name)
		}
	}
	if err := <-sub.Err(); err != nil {
		return err
	}
	return nil
}

func getConfig(ctx context.Context) (*types.Config, error) {
	cfgData, err := sdkStore.ConfigStore().GetData(ctx)
	if err != nil {
		return nil, err
	}
	if cfgData == nil {
		return nil, fmt.Errorf("CLI not initialized, run 'init' cmd to initialize")
	}
	return cfgData, nil
}

func getGenericAsset(ctx *cli.Context) (*gasdk.GenericAsset, func(), error) {
	cfgData, err := getConfig(ctx.Context)
	if err != nil {
		return nil, nil, err
	}

	nodeUrl := cfgData.NodeURL
	if url := viper.GetString(nodeUrlFlagName); len(url) > 0 {
		nodeUrl = url
	}

	conn, err := gsrpc.NewConn(nodeUrl)
	if err != nil {
		return nil, nil, err
	}
	api, err := chain.Connect(ctx.Context, conn)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	opts := make([]gasdk.ServiceOption, 0)
	if ctx.Bool(verboseFlag.Name) {
		opts = append(opts, gasdk.WithVerbose())
	}
	ga, err := gasdk.New(ctx.Context, api, opts...)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	return ga, conn.Close, nil
}

func parseBlock(ctx *cli.Context) (*gstypes.Hash, error) {
	block := ctx.String(blockFlag.Name)
	if len(block) <= 0 {
		return nil, nil
	}
	hash, err := gstypes.NewHashFromHexString(block)
	if err != nil {
		return nil, fmt.Errorf("invalid block hash: %s", err)
	}
	return &hash, nil
}

func describeStatus(status gstypes.ExtrinsicStatus) (string, *gstypes.Hash) {
	switch {
	case status.IsFuture:
		return "future", nil
	case status.IsReady:
		return "ready", nil
	case status.IsBroadcast:
		return "broadcast", nil
	case status.IsInBlock:
		return "in_block", &status.AsInBlock
	case status.IsRetracted:
		return "retracted", &status.AsRetracted
	case status.IsFinalityTimeout:
		return "finality_timeout", &status.AsFinalityTimeout
	case status.IsFinalized:
		return "finalized", &status.AsFinalized
	case status.IsUsurped:
		return "usurped", &status.AsUsurped
	case status.IsDropped:
		return "dropped", nil
	case status.IsInvalid:
		return "invalid", nil
	default:
		return "unknown", nil
	}
}

func printJSON(resp interface{}) error {
	jsonBytes, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		return err
	}
	fmt.Println(string(jsonBytes))
	return nil
}
