// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apiaccounts "github.com/vechain/thorstate/api/accounts"
	"github.com/vechain/thorstate/api/blocks"
	"github.com/vechain/thorstate/genesis"
	"github.com/vechain/thorstate/thor"
)

func run(t *testing.T, dataDir string, args ...string) ([]byte, error) {
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"accountsdb", "--data-dir", dataDir, "--verbosity", "0"}, args...))
	return out.Bytes(), err
}

func mustRun(t *testing.T, dataDir string, out any, args ...string) {
	data, err := run(t, dataDir, args...)
	require.NoError(t, err, string(data))
	require.NoError(t, json.Unmarshal(data, out), string(data))
}

func writeBlock(t *testing.T, dir string, from, to thor.Address, value string) string {
	path := filepath.Join(dir, "block.json")
	content := fmt.Sprintf(`{
		"timestamp": 1526400010,
		"transactions": [{"sender": "%v", "recipient": "%v", "value": "%v", "fee": "21"}],
		"inherents": [{"type": "reward", "target": "%v", "value": "5"}]
	}`, from, to, value, to)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	dev := genesis.DevAccounts()
	recipient := thor.BytesToAddress([]byte("recipient"))

	_, err := run(t, dataDir, "root")
	assert.Error(t, err, "not initialized")

	var genesisHead blocks.Head
	mustRun(t, dataDir, &genesisHead, "init")
	assert.Equal(t, uint32(0), genesisHead.Height)

	_, err = run(t, dataDir, "init")
	assert.Error(t, err, "initialized twice")

	var root apiaccounts.Root
	mustRun(t, dataDir, &root, "root")
	assert.Equal(t, genesisHead.StateRoot, root.Root)

	var acc apiaccounts.Account
	mustRun(t, dataDir, &acc, "account", dev[0].Address.String())
	assert.Equal(t, "10000000000000000000000000", acc.Balance)

	blockFile := writeBlock(t, dir, dev[0].Address, recipient, "1000")

	var preview struct {
		Root thor.Bytes32 `json:"root"`
	}
	mustRun(t, dataDir, &preview, "preview", blockFile)
	assert.NotEqual(t, root.Root, preview.Root)

	// preview leaves the state untouched
	mustRun(t, dataDir, &root, "root")
	assert.Equal(t, genesisHead.StateRoot, root.Root)

	var applied struct {
		Head     *blocks.Head     `json:"head"`
		Receipts *blocks.Receipts `json:"receipts"`
	}
	mustRun(t, dataDir, &applied, "apply", blockFile)
	assert.Equal(t, uint32(1), applied.Head.Height)
	assert.Equal(t, genesisHead.ID, applied.Head.ParentID)
	assert.Equal(t, preview.Root, applied.Head.StateRoot)

	mustRun(t, dataDir, &acc, "account", recipient.String())
	assert.Equal(t, "1005", acc.Balance)
	mustRun(t, dataDir, &acc, "account", dev[0].Address.String())
	assert.Equal(t, "9999999999999999999998979", acc.Balance)

	var reverted blocks.Head
	mustRun(t, dataDir, &reverted, "revert")
	assert.Equal(t, genesisHead, reverted)

	mustRun(t, dataDir, &root, "root")
	assert.Equal(t, genesisHead.StateRoot, root.Root)
	mustRun(t, dataDir, &acc, "account", recipient.String())
	assert.Equal(t, "0", acc.Balance)

	_, err = run(t, dataDir, "revert")
	assert.Error(t, err, "genesis can't be rolled back")
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	mustRun(t, dataDir, &blocks.Head{}, "init")

	_, err := run(t, dataDir, "apply")
	assert.Error(t, err)
	_, err = run(t, dataDir, "account", "0x01")
	assert.Error(t, err)

	// spends more than the balance
	dev := genesis.DevAccounts()
	blockFile := writeBlock(t, dir, dev[0].Address, dev[1].Address, "20000000000000000000000000")
	_, err = run(t, dataDir, "apply", blockFile)
	assert.Error(t, err)
	_, err = run(t, dataDir, "preview", blockFile)
	assert.Error(t, err)
}

func TestLoadGenesisFile(t *testing.T) {
	dir := t.TempDir()
	addr := thor.BytesToAddress([]byte("alice"))
	path := filepath.Join(dir, "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(`
launchTime: 1000
accounts:
  - address: "%v"
    balance: "500"
`, addr)), 0o600))

	dataDir := filepath.Join(dir, "data")
	var head blocks.Head
	mustRun(t, dataDir, &head, "--genesis", path, "init")
	assert.Equal(t, uint64(1000), head.Timestamp)

	var acc apiaccounts.Account
	mustRun(t, dataDir, &acc, "account", addr.String())
	assert.Equal(t, "500", acc.Balance)
}
