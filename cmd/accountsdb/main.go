// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/vechain/thorstate/accounts"
	"github.com/vechain/thorstate/api"
	apiaccounts "github.com/vechain/thorstate/api/accounts"
	"github.com/vechain/thorstate/api/blocks"
	"github.com/vechain/thorstate/log"
	"github.com/vechain/thorstate/thor"
	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "accountsdb"
	app.Usage = "Standalone accounts state database"
	app.Copyright = "2025 VeChain Foundation <https://vechain.org/>"
	app.Flags = []cli.Flag{
		dataDirFlag,
		genesisFlag,
		cacheFlag,
		verbosityFlag,
		jsonLogsFlag,
	}
	app.Before = func(ctx *cli.Context) error {
		initLogger(ctx)
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:   "init",
			Usage:  "install the genesis accounts",
			Action: initAction,
		},
		{
			Name:      "apply",
			Usage:     "apply a block on top of the head",
			ArgsUsage: "<block.json>",
			Action:    applyAction,
		},
		{
			Name:   "revert",
			Usage:  "roll back the head block",
			Action: revertAction,
		},
		{
			Name:      "preview",
			Usage:     "print the root a block would produce, without applying it",
			ArgsUsage: "<block.json>",
			Action:    previewAction,
		},
		{
			Name:      "account",
			Usage:     "print an account",
			ArgsUsage: "<address>",
			Action:    accountAction,
		},
		{
			Name:   "root",
			Usage:  "print the accounts root and the head",
			Action: rootAction,
		},
		{
			Name:  "serve",
			Usage: "serve the accounts state over HTTP",
			Flags: []cli.Flag{
				apiAddrFlag,
				apiCorsFlag,
				enableAPILogsFlag,
				enableMetricsFlag,
			},
			Action: serveAction,
		},
	}
	return app
}

func initAction(ctx *cli.Context) error {
	gen, err := loadGenesis(ctx)
	if err != nil {
		return err
	}
	genesisAccounts, err := gen.Build()
	if err != nil {
		return errors.WithMessage(err, "build genesis")
	}

	c, err := openComponents(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	head, err := c.applier.Init(genesisAccounts, gen.LaunchTime)
	if err != nil {
		return err
	}
	return writeJSON(ctx, blocks.ConvertHead(head))
}

func applyAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("block file required")
	}
	c, err := openComponents(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	head, err := c.applier.Head()
	if err != nil {
		return err
	}
	blk, err := readBlock(ctx.Args().First(), head)
	if err != nil {
		return err
	}
	head, receipts, err := c.applier.Apply(blk)
	if err != nil {
		return err
	}
	return writeJSON(ctx, &struct {
		Head     *blocks.Head     `json:"head"`
		Receipts *blocks.Receipts `json:"receipts"`
	}{
		blocks.ConvertHead(head),
		blocks.ConvertReceipts(head.ID, receipts),
	})
}

func revertAction(ctx *cli.Context) error {
	c, err := openComponents(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	head, err := c.applier.Rollback()
	if err != nil {
		return err
	}
	return writeJSON(ctx, blocks.ConvertHead(head))
}

func previewAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("block file required")
	}
	c, err := openComponents(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	head, err := c.applier.Head()
	if err != nil {
		return err
	}
	blk, err := readBlock(ctx.Args().First(), head)
	if err != nil {
		return err
	}
	h := blk.Header()
	root, err := c.accounts.GetRootWith(blk.Transactions(), blk.Inherents(), h.Height(), h.Timestamp())
	if err != nil {
		return err
	}
	return writeJSON(ctx, &struct {
		Root thor.Bytes32 `json:"root"`
	}{root})
}

func accountAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("address required")
	}
	addr, err := thor.ParseAddress(ctx.Args().First())
	if err != nil {
		return errors.WithMessage(err, "address")
	}
	c, err := openComponents(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	head, err := c.applier.Head()
	if err != nil {
		return err
	}
	acc, err := c.accounts.Get(accounts.KeyOf(addr), nil)
	if err != nil {
		return err
	}
	return writeJSON(ctx, apiaccounts.ConvertAccount(addr, acc, apiaccounts.ConvertHead(head)))
}

func rootAction(ctx *cli.Context) error {
	c, err := openComponents(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	head, err := c.applier.Head()
	if err != nil {
		return err
	}
	root, err := c.accounts.GetRoot(nil)
	if err != nil {
		return err
	}
	return writeJSON(ctx, &apiaccounts.Root{Root: root, Head: apiaccounts.ConvertHead(head)})
}

func serveAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	initMetrics(ctx)
	exitCtx := handleExitSignal()

	c, err := openComponents(ctx)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing database..."); c.Close() }()

	head, err := c.applier.Head()
	if err != nil {
		return err
	}

	handler := api.New(c.applier, c.accounts, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
	})
	url, stop, err := startAPIServer(ctx.String(apiAddrFlag.Name), handler)
	if err != nil {
		return err
	}
	defer func() { logger.Info("stopping API server..."); stop() }()

	logger.Info("serving", "api", url, "head", head.ID, "height", head.Height)
	<-exitCtx.Done()
	return nil
}
