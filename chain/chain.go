// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package chain applies blocks to the accounts state one after another and
// keeps what is needed to roll them back.
package chain

import (
	"time"

	"github.com/pkg/errors"
	"github.com/vechain/thorstate/account"
	"github.com/vechain/thorstate/accounts"
	"github.com/vechain/thorstate/block"
	"github.com/vechain/thorstate/log"
	"github.com/vechain/thorstate/muxdb"
	"github.com/vechain/thorstate/thor"
)

var logger = log.WithContext("pkg", "chain")

var (
	ErrNotInitialized    = errors.New("chain not initialized")
	ErrInitialized       = errors.New("chain already initialized")
	ErrNotChild          = errors.New("block is not a child of head")
	ErrTxsRootMismatch   = errors.New("txs root mismatch")
	ErrStateRootMismatch = errors.New("state root mismatch")
	ErrGenesis           = errors.New("can't roll back genesis")
)

// Applier applies blocks on top of the head and rolls back the head block.
// Every operation runs in a single write transaction, so a failure leaves nothing behind.
type Applier struct {
	db       *muxdb.MuxDB
	accounts *accounts.Accounts
}

// NewApplier creates an applier over the accounts engine.
func NewApplier(db *muxdb.MuxDB, accs *accounts.Accounts) *Applier {
	return &Applier{db, accs}
}

// Init installs the genesis accounts and records the genesis block as head.
func (a *Applier) Init(genesis []accounts.GenesisAccount, timestamp uint64) (*Head, error) {
	txn, err := a.db.NewWriteTxn()
	if err != nil {
		return nil, err
	}
	defer txn.Abort()

	store := txn.Store(storeName)
	if head, err := loadHead(store); err != nil {
		return nil, err
	} else if head != nil {
		return nil, ErrInitialized
	}

	if err := a.accounts.Init(txn, genesis); err != nil {
		return nil, err
	}
	root, err := a.accounts.GetRoot(txn)
	if err != nil {
		return nil, err
	}

	blk := new(block.Builder).Timestamp(timestamp).StateRoot(root).Build()
	head := &Head{
		ID:        blk.ID(),
		Height:    0,
		Timestamp: timestamp,
		StateRoot: root,
	}
	if err := saveBlock(store, blk); err != nil {
		return nil, errors.WithMessage(err, "save genesis block")
	}
	if err := saveReceipts(store, head.ID, nil); err != nil {
		return nil, errors.WithMessage(err, "save genesis receipts")
	}
	if err := saveHead(store, head); err != nil {
		return nil, errors.WithMessage(err, "save head")
	}
	if err := txn.Commit(); err != nil {
		return nil, err
	}

	metricHeadHeight().Set(0)
	logger.Info("initialized", "id", head.ID, "accounts", len(genesis), "root", root)
	return head, nil
}

// Head returns the current head.
func (a *Applier) Head() (*Head, error) {
	rt := a.db.NewReadTxn()
	defer rt.Release()
	return headIn(rt)
}

// View calls fn with the head and a read transaction over the same snapshot,
// so the accounts state read through txn is the state at head.
func (a *Applier) View(fn func(head *Head, txn muxdb.Txn) error) error {
	rt := a.db.NewReadTxn()
	defer rt.Release()

	head, err := headIn(rt)
	if err != nil {
		return err
	}
	return fn(head, rt)
}

func headIn(txn muxdb.Txn) (*Head, error) {
	head, err := loadHead(txn.Getter(storeName))
	if err != nil {
		return nil, err
	}
	if head == nil {
		return nil, ErrNotInitialized
	}
	return head, nil
}

// Apply commits blk on top of the head. A non-zero state root in the header
// must match the resulting accounts root.
func (a *Applier) Apply(blk *block.Block) (head *Head, receipts account.Receipts, err error) {
	start := time.Now()
	defer func() { observe("apply", start, err) }()

	txn, err := a.db.NewWriteTxn()
	if err != nil {
		return nil, nil, err
	}
	defer txn.Abort()

	store := txn.Store(storeName)
	parent, err := loadHead(store)
	if err != nil {
		return nil, nil, err
	}
	if parent == nil {
		return nil, nil, ErrNotInitialized
	}

	h := blk.Header()
	if h.ParentID() != parent.ID || h.Height() != parent.Height+1 {
		return nil, nil, errors.WithMessagef(ErrNotChild, "block %v, head %v", blk.ID(), parent.ID)
	}
	if !blk.VerifyTxsRoot() {
		return nil, nil, ErrTxsRootMismatch
	}

	receipts, err = a.accounts.Commit(txn, blk.Transactions(), blk.Inherents(), h.Height(), h.Timestamp())
	if err != nil {
		return nil, nil, errors.WithMessagef(err, "apply block %v", blk.ID())
	}
	root, err := a.accounts.GetRoot(txn)
	if err != nil {
		return nil, nil, err
	}
	if !h.StateRoot().IsZero() && h.StateRoot() != root {
		return nil, nil, errors.WithMessagef(ErrStateRootMismatch, "want %v, got %v", h.StateRoot(), root)
	}

	head = &Head{
		ID:        blk.ID(),
		ParentID:  h.ParentID(),
		Height:    h.Height(),
		Timestamp: h.Timestamp(),
		StateRoot: root,
	}
	if err := saveBlock(store, blk); err != nil {
		return nil, nil, errors.WithMessage(err, "save block")
	}
	if err := saveReceipts(store, head.ID, receipts); err != nil {
		return nil, nil, errors.WithMessage(err, "save receipts")
	}
	if err := saveHead(store, head); err != nil {
		return nil, nil, errors.WithMessage(err, "save head")
	}
	if err := txn.Commit(); err != nil {
		return nil, nil, err
	}

	metricHeadHeight().Set(int64(head.Height))
	logger.Debug("applied block", "id", head.ID, "height", head.Height, "receipts", len(receipts), "root", root)
	return head, receipts, nil
}

// Rollback reverts the head block with its stored receipts and makes its parent the head.
func (a *Applier) Rollback() (head *Head, err error) {
	start := time.Now()
	defer func() { observe("rollback", start, err) }()

	txn, err := a.db.NewWriteTxn()
	if err != nil {
		return nil, err
	}
	defer txn.Abort()

	store := txn.Store(storeName)
	cur, err := loadHead(store)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, ErrNotInitialized
	}
	if cur.Height == 0 {
		return nil, ErrGenesis
	}

	blk, err := loadBlock(store, cur.ID)
	if err != nil {
		return nil, errors.WithMessagef(err, "load block %v", cur.ID)
	}
	receipts, err := loadReceipts(store, cur.ID)
	if err != nil {
		return nil, errors.WithMessagef(err, "load receipts of %v", cur.ID)
	}
	parent, err := loadHeadOf(store, cur.ParentID)
	if err != nil {
		return nil, errors.WithMessagef(err, "load parent %v", cur.ParentID)
	}

	h := blk.Header()
	if err := a.accounts.Revert(txn, blk.Transactions(), blk.Inherents(), h.Height(), h.Timestamp(), receipts); err != nil {
		return nil, errors.WithMessagef(err, "revert block %v", cur.ID)
	}
	root, err := a.accounts.GetRoot(txn)
	if err != nil {
		return nil, err
	}
	if root != parent.StateRoot {
		return nil, errors.WithMessagef(ErrStateRootMismatch, "reverted to %v, parent has %v", root, parent.StateRoot)
	}

	if err := deleteBlock(store, cur.ID); err != nil {
		return nil, err
	}
	if err := store.Put(headKey, parent.ID[:]); err != nil {
		return nil, err
	}
	if err := txn.Commit(); err != nil {
		return nil, err
	}

	metricHeadHeight().Set(int64(parent.Height))
	logger.Debug("rolled back block", "id", cur.ID, "height", cur.Height, "head", parent.ID)
	return parent, nil
}

// GetBlock returns a stored block.
func (a *Applier) GetBlock(id thor.Bytes32) (*block.Block, error) {
	rt := a.db.NewReadTxn()
	defer rt.Release()
	return loadBlock(rt.Getter(storeName), id)
}

// GetReceipts returns the receipts produced by a stored block.
func (a *Applier) GetReceipts(id thor.Bytes32) (account.Receipts, error) {
	rt := a.db.NewReadTxn()
	defer rt.Release()
	return loadReceipts(rt.Getter(storeName), id)
}

// IsNotFound returns if the error indicates a missing block.
func (a *Applier) IsNotFound(err error) bool {
	return a.db.IsNotFound(errors.Cause(err))
}

func observe(op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "failed"
	}
	metricBlockCount().AddWithLabel(1, map[string]string{"op": op, "result": result})
	metricBlockDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"op": op})
}
