// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

//go:generate mockgen -source trie.go -destination trie_mocks.go -package accounts

import (
	"github.com/pkg/errors"
	"github.com/vechain/thorstate/account"
	"github.com/vechain/thorstate/muxdb"
	"github.com/vechain/thorstate/thor"
	"github.com/vechain/thorstate/trie"
)

// TrieName is the name of the accounts trie in muxdb.
const TrieName = "accounts"

// Trie is the authenticated account set the engine operates on.
// All access is scoped to a storage transaction.
type Trie interface {
	// Get returns the account stored under key, an empty Basic account if absent.
	Get(txn muxdb.Txn, key trie.KeyNibbles) (account.Account, error)
	// PutBatch stores acc under key in the write transaction.
	// Storing an empty account removes the key.
	PutBatch(txn *muxdb.WriteTxn, key trie.KeyNibbles, acc account.Account) error
	// RootHash returns the commitment over the accounts visible to txn.
	RootHash(txn muxdb.Txn) (thor.Bytes32, error)
}

// KeyOf returns the trie key of an address.
func KeyOf(addr thor.Address) trie.KeyNibbles {
	return trie.KeyNibblesFromBytes(addr[:])
}

type accountsTrie struct {
	name string
}

// NewTrie returns the muxdb backed accounts trie with the given name.
func NewTrie(name string) Trie {
	return &accountsTrie{name}
}

func (a *accountsTrie) Get(txn muxdb.Txn, key trie.KeyNibbles) (account.Account, error) {
	tr, err := txn.Trie(a.name)
	if err != nil {
		return nil, err
	}
	data, err := tr.Get(key)
	if err != nil {
		return nil, err
	}
	acc, err := account.Decode(data)
	if err != nil {
		return nil, errors.WithMessagef(err, "account %v", key)
	}
	return acc, nil
}

func (a *accountsTrie) PutBatch(txn *muxdb.WriteTxn, key trie.KeyNibbles, acc account.Account) error {
	tr, err := txn.Trie(a.name)
	if err != nil {
		return err
	}
	if account.IsEmpty(acc) {
		return tr.Update(key, nil)
	}
	data, err := account.Encode(acc)
	if err != nil {
		return err
	}
	return tr.Update(key, data)
}

func (a *accountsTrie) RootHash(txn muxdb.Txn) (thor.Bytes32, error) {
	tr, err := txn.Trie(a.name)
	if err != nil {
		return thor.Bytes32{}, err
	}
	return tr.Hash(), nil
}
