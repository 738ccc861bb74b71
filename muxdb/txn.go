// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package muxdb

import (
	"github.com/pkg/errors"
	"github.com/vechain/thorstate/kv"
	"github.com/vechain/thorstate/muxdb/internal/engine"
	"github.com/vechain/thorstate/thor"
	"github.com/vechain/thorstate/trie"
)

var errTxnClosed = errors.New("transaction closed")

// Txn is a storage transaction. All trie and store access goes through one.
type Txn interface {
	// Trie returns the named trie as visible to the transaction.
	Trie(name string) (*Trie, error)
	// Getter returns the named kv store as visible to the transaction.
	Getter(name string) kv.Getter
}

var (
	_ Txn = (*ReadTxn)(nil)
	_ Txn = (*WriteTxn)(nil)
)

// ReadTxn is a read-only transaction over a snapshot of the committed state.
type ReadTxn struct {
	db       *MuxDB
	snapshot kv.Snapshot
	tries    map[string]*Trie
	released bool
}

// Trie returns the read-only handle of the named trie.
func (t *ReadTxn) Trie(name string) (*Trie, error) {
	if t.released {
		return nil, errTxnClosed
	}
	if tr := t.tries[name]; tr != nil {
		return tr, nil
	}
	tr, err := openTrie(name, t.snapshot, t.db.cache, false)
	if err != nil {
		return nil, err
	}
	t.tries[name] = tr
	return tr, nil
}

// Getter returns the named store as seen by the snapshot.
func (t *ReadTxn) Getter(name string) kv.Getter {
	return namedBucket(name).NewGetter(t.snapshot)
}

// Release releases the snapshot. Calling it more than once is harmless.
func (t *ReadTxn) Release() {
	if !t.released {
		t.released = true
		t.snapshot.Release()
		metricTxnCount().AddWithLabel(1, map[string]string{"mode": "read", "result": "released"})
	}
}

// WriteTxn is the read-write transaction. Trie changes stay in memory and
// reads observe them; Commit persists tries and store writes atomically.
type WriteTxn struct {
	db    *MuxDB
	tx    engine.Transaction
	tries map[string]*Trie
	done  bool
}

// Trie returns the writable handle of the named trie.
func (t *WriteTxn) Trie(name string) (*Trie, error) {
	if t.done {
		return nil, errTxnClosed
	}
	if tr := t.tries[name]; tr != nil {
		return tr, nil
	}
	tr, err := openTrie(name, t.tx, t.db.cache, true)
	if err != nil {
		return nil, err
	}
	t.tries[name] = tr
	return tr, nil
}

// Getter returns the named store including writes made by this transaction.
func (t *WriteTxn) Getter(name string) kv.Getter {
	return namedBucket(name).NewGetter(t.tx)
}

// Store returns the named store for writing within this transaction.
func (t *WriteTxn) Store(name string) kv.GetPutter {
	return namedBucket(name).NewGetPutter(t.tx)
}

// Commit persists all modified tries and store writes.
// The transaction is closed afterwards, even on failure.
func (t *WriteTxn) Commit() error {
	if t.done {
		return errTxnClosed
	}
	t.done = true

	w := &nodeWriter{t.tx, t.db.cache, 0}
	for name, tr := range t.tries {
		if !tr.dirty {
			continue
		}
		root, err := tr.trie.Commit(w)
		if err != nil {
			t.fail()
			return errors.Wrapf(err, "commit trie %v", name)
		}
		if err := t.tx.Put(trieRootKey(name), root[:]); err != nil {
			t.fail()
			return errors.Wrapf(err, "save root of trie %v", name)
		}
		tr.dirty = false
	}
	if err := t.tx.Commit(); err != nil {
		t.fail()
		return errors.Wrap(err, "commit transaction")
	}
	metricCommittedNodes().Add(int64(w.count))
	metricTxnCount().AddWithLabel(1, map[string]string{"mode": "write", "result": "committed"})
	return nil
}

func (t *WriteTxn) fail() {
	t.tx.Discard()
	metricTxnCount().AddWithLabel(1, map[string]string{"mode": "write", "result": "failed"})
}

// Abort drops every change made in the transaction.
// It's a no-op after Commit or Abort, so it can be deferred unconditionally.
func (t *WriteTxn) Abort() {
	if t.done {
		return
	}
	t.done = true
	t.tx.Discard()
	metricTxnCount().AddWithLabel(1, map[string]string{"mode": "write", "result": "aborted"})
}

func openTrie(name string, src kv.Getter, cache *nodeCache, writable bool) (*Trie, error) {
	var root thor.Bytes32
	val, ok, err := kv.GetOptional(src, trieRootKey(name))
	if err != nil {
		return nil, errors.Wrapf(err, "load root of trie %v", name)
	}
	if ok {
		root = thor.BytesToBytes32(val)
	}

	tr, err := trie.New(root, &nodeReader{src, cache})
	if err != nil {
		return nil, errors.Wrapf(err, "open trie %v", name)
	}
	return &Trie{
		name:     name,
		trie:     tr,
		writable: writable,
	}, nil
}

func trieNodeKey(buf, hash []byte) []byte {
	return append(append(buf[:0], trieNodeSpace), hash...)
}

// nodeReader loads trie nodes through the cache.
type nodeReader struct {
	src   kv.Getter
	cache *nodeCache
}

func (r *nodeReader) Get(hash []byte) ([]byte, error) {
	if blob := r.cache.Get(hash); blob != nil {
		return blob, nil
	}
	blob, err := r.src.Get(trieNodeKey(nil, hash))
	if err != nil {
		return nil, err
	}
	r.cache.Add(hash, blob)
	return blob, nil
}

// nodeWriter saves committed trie nodes into the transaction.
type nodeWriter struct {
	dst   kv.Putter
	cache *nodeCache
	count int
}

func (w *nodeWriter) Put(hash, blob []byte) error {
	if err := w.dst.Put(trieNodeKey(nil, hash), blob); err != nil {
		return err
	}
	w.cache.Add(hash, blob)
	w.count++
	return nil
}
