// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package muxdb

import (
	"github.com/pkg/errors"
	"github.com/vechain/thorstate/thor"
	"github.com/vechain/thorstate/trie"
)

var errReadOnly = errors.New("trie is read-only")

// Trie is a named trie scoped to a transaction.
type Trie struct {
	name     string
	trie     *trie.Trie
	writable bool
	dirty    bool
}

// Name returns the trie name.
func (t *Trie) Name() string { return t.name }

// Get returns the value stored under key, nil if absent.
func (t *Trie) Get(key trie.KeyNibbles) ([]byte, error) {
	val, err := t.trie.Get(key.Bytes())
	if err != nil {
		return nil, errors.Wrapf(err, "trie %v get %v", t.name, key)
	}
	return val, nil
}

// Update sets the value of key. An empty value removes the key.
func (t *Trie) Update(key trie.KeyNibbles, val []byte) error {
	if !t.writable {
		return errReadOnly
	}
	if err := t.trie.Update(key.Bytes(), val); err != nil {
		return errors.Wrapf(err, "trie %v update %v", t.name, key)
	}
	t.dirty = true
	return nil
}

// Hash returns the root hash covering every change made so far.
func (t *Trie) Hash() thor.Bytes32 {
	return t.trie.Hash()
}

// IsReadOnly reports whether the trie belongs to a read-only transaction.
func (t *Trie) IsReadOnly() bool { return !t.writable }
