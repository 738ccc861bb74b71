// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/vechain/thorstate/accounts"
	"github.com/vechain/thorstate/block"
	"github.com/vechain/thorstate/chain"
	"github.com/vechain/thorstate/genesis"
	"github.com/vechain/thorstate/log"
	"github.com/vechain/thorstate/metrics"
	"github.com/vechain/thorstate/muxdb"
	cli "gopkg.in/urfave/cli.v1"
)

func initLogger(ctx *cli.Context) {
	lvl := log.FromLegacyLevel(ctx.GlobalInt(verbosityFlag.Name))

	var handler = log.NewTerminalHandler(os.Stderr, lvl, useColor(os.Stderr))
	if ctx.GlobalBool(jsonLogsFlag.Name) {
		handler = log.JSONHandler(os.Stderr, lvl)
	}
	log.SetDefault(handler)
}

func useColor(f *os.File) bool {
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func initMetrics(ctx *cli.Context) {
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		logger.Info("metrics enabled")
	}
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".accountsdb")
	}
	return ".accountsdb"
}

func loadGenesis(ctx *cli.Context) (*genesis.CustomGenesis, error) {
	path := ctx.GlobalString(genesisFlag.Name)
	if path == "" {
		return genesis.NewDevnet(), nil
	}
	gen, err := genesis.Load(path)
	if err != nil {
		return nil, errors.WithMessage(err, "load genesis")
	}
	return gen, nil
}

type components struct {
	db       *muxdb.MuxDB
	accounts *accounts.Accounts
	applier  *chain.Applier
}

func (c *components) Close() {
	if err := c.db.Close(); err != nil {
		logger.Warn("failed to close database", "err", err)
	}
}

func openComponents(ctx *cli.Context) (*components, error) {
	dataDir := ctx.GlobalString(dataDirFlag.Name)
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, errors.Wrap(err, "create data dir")
	}

	opts := muxdb.DefaultOptions()
	opts.TrieNodeCacheSizeMB = ctx.GlobalInt(cacheFlag.Name)

	path := filepath.Join(dataDir, "main.db")
	db, err := muxdb.Open(path, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("database opened", "path", path, "cache", opts.TrieNodeCacheSizeMB)

	accs := accounts.New(db)
	return &components{
		db:       db,
		accounts: accs,
		applier:  chain.NewApplier(db, accs),
	}, nil
}

// readBlock reads a block in JSON form. A block without parent is put on top of head.
func readBlock(path string, head *chain.Head) (*block.Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read block file")
	}
	var blk block.Block
	if err := json.Unmarshal(data, &blk); err != nil {
		return nil, errors.Wrap(err, "decode block")
	}
	h := blk.Header()
	if !h.ParentID().IsZero() {
		return &blk, nil
	}

	builder := new(block.Builder).
		ParentID(head.ID).
		Timestamp(h.Timestamp()).
		StateRoot(h.StateRoot())
	for _, t := range blk.Transactions() {
		builder.Transaction(t)
	}
	for _, in := range blk.Inherents() {
		builder.Inherent(in)
	}
	return builder.Build(), nil
}

func writeJSON(ctx *cli.Context, obj any) error {
	enc := json.NewEncoder(ctx.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(obj)
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func startAPIServer(addr string, handler http.Handler) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen API addr [%v]", addr)
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("API server stopped", "err", err)
		}
	}()
	return "http://" + listener.Addr().String() + "/", func() {
		srv.Close()
		<-done
	}, nil
}
