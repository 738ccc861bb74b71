// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/thorstate/account"
	"github.com/vechain/thorstate/accounts"
	"github.com/vechain/thorstate/block"
	"github.com/vechain/thorstate/muxdb"
	"github.com/vechain/thorstate/thor"
	"github.com/vechain/thorstate/tx"
)

var (
	alice = thor.MustParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	bob   = thor.MustParseAddress("0xd3ae78222beadb038203be21ed5ce7c9b1bff602")
)

func newApplier(t *testing.T) (*Applier, *accounts.Accounts, *Head) {
	db := muxdb.NewMem()
	t.Cleanup(func() { db.Close() })

	accs := accounts.New(db)
	a := NewApplier(db, accs)

	_, err := a.Head()
	assert.Equal(t, ErrNotInitialized, err)

	genesis, err := a.Init([]accounts.GenesisAccount{
		{Key: accounts.KeyOf(alice), Account: account.NewBasic(uint256.NewInt(100))},
	}, 1000)
	require.NoError(t, err)
	return a, accs, genesis
}

func balanceOf(t *testing.T, accs *accounts.Accounts, addr thor.Address) uint64 {
	acc, err := accs.Get(accounts.KeyOf(addr), nil)
	require.NoError(t, err)
	return acc.Balance().Uint64()
}

func TestInit(t *testing.T) {
	a, accs, genesis := newApplier(t)

	assert.Equal(t, uint32(0), genesis.Height)
	assert.Equal(t, uint32(0), block.Number(genesis.ID))
	root, err := accs.GetRoot(nil)
	require.NoError(t, err)
	assert.Equal(t, root, genesis.StateRoot)

	head, err := a.Head()
	require.NoError(t, err)
	assert.Equal(t, genesis, head)

	blk, err := a.GetBlock(genesis.ID)
	require.NoError(t, err)
	assert.Equal(t, root, blk.Header().StateRoot())

	_, err = a.Init(nil, 0)
	assert.Equal(t, ErrInitialized, err)

	_, err = a.Rollback()
	assert.Equal(t, ErrGenesis, err)
}

func TestApplyAndRollback(t *testing.T) {
	a, accs, genesis := newApplier(t)

	blk := new(block.Builder).
		ParentID(genesis.ID).
		Timestamp(1010).
		Transaction(&tx.Transaction{Sender: alice, Recipient: bob, Value: uint256.NewInt(40)}).
		Inherent(&tx.Inherent{Type: tx.InherentSlash, Target: alice, Value: uint256.NewInt(10)}).
		Build()

	head, receipts, err := a.Apply(blk)
	require.NoError(t, err)
	assert.Equal(t, blk.ID(), head.ID)
	assert.Equal(t, uint32(1), head.Height)
	assert.Len(t, receipts, 1)
	assert.Equal(t, uint64(50), balanceOf(t, accs, alice))
	assert.Equal(t, uint64(40), balanceOf(t, accs, bob))

	stored, err := a.GetReceipts(blk.ID())
	require.NoError(t, err)
	assert.Equal(t, receipts, stored)

	head, err = a.Rollback()
	require.NoError(t, err)
	assert.Equal(t, genesis, head)
	assert.Equal(t, uint64(100), balanceOf(t, accs, alice))
	assert.Equal(t, uint64(0), balanceOf(t, accs, bob))

	root, err := accs.GetRoot(nil)
	require.NoError(t, err)
	assert.Equal(t, genesis.StateRoot, root)

	_, err = a.GetBlock(blk.ID())
	assert.True(t, a.IsNotFound(err))
}

func TestApplyChecks(t *testing.T) {
	a, accs, genesis := newApplier(t)

	orphan := new(block.Builder).Height(1).Timestamp(1010).Build()
	_, _, err := a.Apply(orphan)
	assert.Equal(t, ErrNotChild, errors.Cause(err))

	tampered := block.New(
		new(block.Builder).ParentID(genesis.ID).Build().Header(),
		[]*tx.Transaction{{Sender: alice, Recipient: bob, Value: uint256.NewInt(1)}},
		nil,
	)
	_, _, err = a.Apply(tampered)
	assert.Equal(t, ErrTxsRootMismatch, err)

	wrongRoot := new(block.Builder).
		ParentID(genesis.ID).
		StateRoot(thor.Blake2b([]byte("wrong"))).
		Transaction(&tx.Transaction{Sender: alice, Recipient: bob, Value: uint256.NewInt(1)}).
		Build()
	_, _, err = a.Apply(wrongRoot)
	assert.Equal(t, ErrStateRootMismatch, errors.Cause(err))

	overspend := new(block.Builder).
		ParentID(genesis.ID).
		Transaction(&tx.Transaction{Sender: alice, Recipient: bob, Value: uint256.NewInt(1000)}).
		Build()
	_, _, err = a.Apply(overspend)
	assert.True(t, account.IsInsufficientFunds(err))

	// failed blocks leave nothing behind
	head, err := a.Head()
	require.NoError(t, err)
	assert.Equal(t, genesis, head)
	assert.Equal(t, uint64(100), balanceOf(t, accs, alice))
}

func TestApplyWithStateRoot(t *testing.T) {
	a, accs, genesis := newApplier(t)
	txs := []*tx.Transaction{{Sender: alice, Recipient: bob, Value: uint256.NewInt(25)}}

	root, err := accs.GetRootWith(txs, nil, 1, 1010)
	require.NoError(t, err)

	blk := new(block.Builder).ParentID(genesis.ID).Timestamp(1010).StateRoot(root).Transaction(txs[0]).Build()
	head, _, err := a.Apply(blk)
	require.NoError(t, err)
	assert.Equal(t, root, head.StateRoot)

	next := new(block.Builder).ParentID(head.ID).Timestamp(1020).Build()
	head2, _, err := a.Apply(next)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), head2.Height)
	assert.Equal(t, root, head2.StateRoot, "empty block keeps the root")

	back, err := a.Rollback()
	require.NoError(t, err)
	assert.Equal(t, head, back)
}

func TestViewSnapshot(t *testing.T) {
	a, accs, genesis := newApplier(t)

	blk := new(block.Builder).
		ParentID(genesis.ID).
		Timestamp(1010).
		Transaction(&tx.Transaction{Sender: alice, Recipient: bob, Value: uint256.NewInt(40)}).
		Build()

	err := a.View(func(head *Head, txn muxdb.Txn) error {
		// a block applied meanwhile is invisible to the view
		_, _, err := a.Apply(blk)
		require.NoError(t, err)

		assert.Equal(t, genesis, head)
		root, err := accs.GetRoot(txn)
		require.NoError(t, err)
		assert.Equal(t, genesis.StateRoot, root)
		acc, err := accs.Get(accounts.KeyOf(alice), txn)
		require.NoError(t, err)
		assert.Equal(t, uint64(100), acc.Balance().Uint64())
		return nil
	})
	require.NoError(t, err)

	head, err := a.Head()
	require.NoError(t, err)
	assert.Equal(t, blk.ID(), head.ID)
	assert.Equal(t, uint64(60), balanceOf(t, accs, alice))

	db := muxdb.NewMem()
	t.Cleanup(func() { db.Close() })
	err = NewApplier(db, accounts.New(db)).View(func(*Head, muxdb.Txn) error { return nil })
	assert.Equal(t, ErrNotInitialized, err)
}
