// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package accounts applies the transactions and inherents of a block to the
// accounts trie, and reverts them given the receipts produced.
package accounts

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/vechain/thorstate/account"
	"github.com/vechain/thorstate/cache"
	"github.com/vechain/thorstate/log"
	"github.com/vechain/thorstate/muxdb"
	"github.com/vechain/thorstate/thor"
	"github.com/vechain/thorstate/trie"
	"github.com/vechain/thorstate/tx"
)

var logger = log.WithContext("pkg", "accounts")

const defaultCacheSize = 4096

var errTooManyItems = errors.New("too many items in block")

// GenesisAccount is an account installed by Init.
type GenesisAccount struct {
	Key     trie.KeyNibbles
	Account account.Account
}

// Accounts is the state transition engine over the accounts trie.
type Accounts struct {
	db    *muxdb.MuxDB
	tree  Trie
	cache *cache.LRU
}

// New creates the engine over the accounts trie of db.
func New(db *muxdb.MuxDB) *Accounts {
	return NewWithTrie(db, NewTrie(TrieName), defaultCacheSize)
}

// NewWithTrie creates the engine over the given trie. Committed accounts are
// cached up to cacheSize entries, a non-positive size disables the cache.
func NewWithTrie(db *muxdb.MuxDB, tree Trie, cacheSize int) *Accounts {
	a := &Accounts{db: db, tree: tree}
	if cacheSize > 0 {
		a.cache, _ = cache.NewLRU(cacheSize)
	}
	return a
}

// Init installs the genesis accounts in order.
func (a *Accounts) Init(txn *muxdb.WriteTxn, genesis []GenesisAccount) error {
	for i, g := range genesis {
		if err := a.tree.PutBatch(txn, g.Key, g.Account); err != nil {
			return errors.WithMessagef(err, "genesis account #%v %v", i, g.Key)
		}
	}
	logger.Debug("installed genesis accounts", "count", len(genesis))
	return nil
}

// Get returns the account stored under key. A nil txn reads the committed state.
func (a *Accounts) Get(key trie.KeyNibbles, txn muxdb.Txn) (account.Account, error) {
	if txn != nil {
		return a.tree.Get(txn, key)
	}

	rt := a.db.NewReadTxn()
	defer rt.Release()
	if a.cache == nil {
		return a.tree.Get(rt, key)
	}

	root, err := a.tree.RootHash(rt)
	if err != nil {
		return nil, err
	}
	// accounts are immutable values, so they can be shared
	v, err := a.cache.GetOrLoad(string(root[:])+string(key), func(any) (any, error) {
		return a.tree.Get(rt, key)
	})
	if err != nil {
		return nil, err
	}
	return v.(account.Account), nil
}

// GetRoot returns the root hash visible to txn. A nil txn reads the committed state.
func (a *Accounts) GetRoot(txn muxdb.Txn) (thor.Bytes32, error) {
	if txn != nil {
		return a.tree.RootHash(txn)
	}
	rt := a.db.NewReadTxn()
	defer rt.Release()
	return a.tree.RootHash(rt)
}

// Commit applies a block and returns the receipts needed to revert it.
// On error the transaction holds partial changes and must be aborted.
func (a *Accounts) Commit(
	txn *muxdb.WriteTxn,
	txs []*tx.Transaction,
	inherents []*tx.Inherent,
	height uint32,
	timestamp uint64,
) (receipts account.Receipts, err error) {
	start := time.Now()
	defer func() { observe("commit", start, len(receipts), err) }()

	return a.commit(txn, txs, inherents, height, timestamp)
}

func (a *Accounts) commit(
	txn *muxdb.WriteTxn,
	txs []*tx.Transaction,
	inherents []*tx.Inherent,
	height uint32,
	timestamp uint64,
) (receipts account.Receipts, err error) {
	if len(txs) > math.MaxUint16+1 || len(inherents) > math.MaxUint16+1 {
		return nil, errTooManyItems
	}

	op := operation{revert: false, height: height, timestamp: timestamp}
	pre, post := tx.Split(inherents)

	rs, err := a.processInherents(txn, pre, true, op, nil)
	if err != nil {
		return nil, err
	}
	receipts = append(receipts, rs...)

	if rs, err = a.processSenders(txn, txs, op, nil); err != nil {
		return nil, err
	}
	receipts = append(receipts, rs...)

	if rs, err = a.processRecipients(txn, txs, op, nil); err != nil {
		return nil, err
	}
	receipts = append(receipts, rs...)

	if err = a.createContracts(txn, txs, op); err != nil {
		return nil, err
	}

	if rs, err = a.processInherents(txn, post, false, op, nil); err != nil {
		return nil, err
	}
	receipts = append(receipts, rs...)

	logger.Debug("committed block", "height", height, "txs", len(txs), "inherents", len(inherents), "receipts", len(receipts))
	return receipts, nil
}

// Revert undoes a block committed with Commit, given its receipts.
// On error the transaction holds partial changes and must be aborted.
func (a *Accounts) Revert(
	txn *muxdb.WriteTxn,
	txs []*tx.Transaction,
	inherents []*tx.Inherent,
	height uint32,
	timestamp uint64,
	receipts account.Receipts,
) (err error) {
	start := time.Now()
	defer func() { observe("revert", start, len(receipts), err) }()

	pre, post := tx.Split(inherents)
	parts, err := receipts.Partition()
	if err != nil {
		return err
	}
	if err := checkIndices(parts, len(txs), len(pre), len(post)); err != nil {
		return err
	}

	op := operation{revert: true, height: height, timestamp: timestamp}

	if _, err = a.processInherents(txn, post, false, op, parts.PostInherents); err != nil {
		return err
	}
	if err = a.revertContracts(txn, txs); err != nil {
		return err
	}
	if _, err = a.processRecipients(txn, txs, op, parts.Recipients); err != nil {
		return err
	}
	if _, err = a.processSenders(txn, txs, op, parts.Senders); err != nil {
		return err
	}
	if _, err = a.processInherents(txn, pre, true, op, parts.PreInherents); err != nil {
		return err
	}

	logger.Debug("reverted block", "height", height, "txs", len(txs), "inherents", len(inherents))
	return nil
}

// GetRootWith returns the root hash the committed state would have after
// applying the block, leaving the state untouched.
// It opens a write transaction, so it blocks while another one is open.
func (a *Accounts) GetRootWith(
	txs []*tx.Transaction,
	inherents []*tx.Inherent,
	height uint32,
	timestamp uint64,
) (root thor.Bytes32, err error) {
	start := time.Now()
	defer func() { observe("preview", start, 0, err) }()

	txn, err := a.db.NewWriteTxn()
	if err != nil {
		return thor.Bytes32{}, err
	}
	defer txn.Abort()

	if _, err := a.commit(txn, txs, inherents, height, timestamp); err != nil {
		return thor.Bytes32{}, err
	}
	return a.tree.RootHash(txn)
}

// checkIndices rejects receipts that point outside their phase.
func checkIndices(parts *account.PartitionedReceipts, txs, pre, post int) error {
	for _, c := range []struct {
		name string
		m    map[uint16][]byte
		n    int
	}{
		{"sender", parts.Senders, txs},
		{"recipient", parts.Recipients, txs},
		{"pre-tx inherent", parts.PreInherents, pre},
		{"post-tx inherent", parts.PostInherents, post},
	} {
		for i := range c.m {
			if int(i) >= c.n {
				return errors.WithMessagef(account.ErrInvalidReceipt, "%v receipt #%v out of range", c.name, i)
			}
		}
	}
	return nil
}
