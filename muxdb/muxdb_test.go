// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package muxdb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/thorstate/thor"
	"github.com/vechain/thorstate/trie"
)

func key(s string) trie.KeyNibbles {
	return trie.KeyNibblesFromBytes([]byte(s))
}

func TestWriteTxnCommit(t *testing.T) {
	db := NewMem()
	defer db.Close()

	txn, err := db.NewWriteTxn()
	require.NoError(t, err)

	tr, err := txn.Trie("accounts")
	require.NoError(t, err)
	require.NoError(t, tr.Update(key("alice"), []byte("100")))

	// read-your-writes through a second lookup of the same trie
	same, err := txn.Trie("accounts")
	require.NoError(t, err)
	val, err := same.Get(key("alice"))
	require.NoError(t, err)
	assert.Equal(t, "100", string(val))

	require.NoError(t, txn.Store("chain").Put([]byte("head"), []byte("h1")))
	root := tr.Hash()

	// not visible to readers before commit
	r := db.NewReadTxn()
	rt, err := r.Trie("accounts")
	require.NoError(t, err)
	val, err = rt.Get(key("alice"))
	require.NoError(t, err)
	assert.Nil(t, val)
	assert.Equal(t, trie.EmptyRoot(), rt.Hash())
	r.Release()

	require.NoError(t, txn.Commit())
	assert.Error(t, txn.Commit())
	txn.Abort() // no-op after commit

	r = db.NewReadTxn()
	defer r.Release()
	rt, err = r.Trie("accounts")
	require.NoError(t, err)
	assert.Equal(t, root, rt.Hash())
	val, err = rt.Get(key("alice"))
	require.NoError(t, err)
	assert.Equal(t, "100", string(val))

	head, err := r.Getter("chain").Get([]byte("head"))
	require.NoError(t, err)
	assert.Equal(t, "h1", string(head))

	assert.True(t, rt.IsReadOnly())
	assert.Equal(t, errReadOnly, rt.Update(key("bob"), []byte("1")))
}

func TestWriteTxnAbort(t *testing.T) {
	db := NewMem()
	defer db.Close()

	txn, err := db.NewWriteTxn()
	require.NoError(t, err)
	tr, err := txn.Trie("accounts")
	require.NoError(t, err)
	require.NoError(t, tr.Update(key("alice"), []byte("100")))
	require.NoError(t, txn.Store("chain").Put([]byte("head"), []byte("h1")))
	txn.Abort()

	_, err = txn.Trie("accounts")
	assert.Error(t, err)

	r := db.NewReadTxn()
	defer r.Release()
	rt, err := r.Trie("accounts")
	require.NoError(t, err)
	assert.Equal(t, trie.EmptyRoot(), rt.Hash())

	_, err = r.Getter("chain").Get([]byte("head"))
	assert.True(t, db.IsNotFound(err))
}

func TestSnapshotIsolation(t *testing.T) {
	db := NewMem()
	defer db.Close()

	commit := func(v string) thor.Bytes32 {
		txn, err := db.NewWriteTxn()
		require.NoError(t, err)
		defer txn.Abort()
		tr, err := txn.Trie("accounts")
		require.NoError(t, err)
		require.NoError(t, tr.Update(key("alice"), []byte(v)))
		root := tr.Hash()
		require.NoError(t, txn.Commit())
		return root
	}

	root1 := commit("1")
	r := db.NewReadTxn()
	defer r.Release()

	root2 := commit("2")
	assert.NotEqual(t, root1, root2)

	rt, err := r.Trie("accounts")
	require.NoError(t, err)
	assert.Equal(t, root1, rt.Hash())
	val, err := rt.Get(key("alice"))
	require.NoError(t, err)
	assert.Equal(t, "1", string(val))
}

func TestSingleWriter(t *testing.T) {
	db := NewMem()
	defer db.Close()

	first, err := db.NewWriteTxn()
	require.NoError(t, err)

	opened := make(chan *WriteTxn)
	go func() {
		second, err := db.NewWriteTxn()
		if err != nil {
			close(opened)
			return
		}
		opened <- second
	}()

	select {
	case <-opened:
		t.Fatal("second writer opened while the first one is in flight")
	case <-time.After(100 * time.Millisecond):
	}

	first.Abort()
	second := <-opened
	require.NotNil(t, second)
	second.Abort()
}

func TestOpenPersistsConfig(t *testing.T) {
	dir := t.TempDir()

	db, err := Open(dir, DefaultOptions())
	require.NoError(t, err)

	txn, err := db.NewWriteTxn()
	require.NoError(t, err)
	tr, err := txn.Trie("accounts")
	require.NoError(t, err)
	require.NoError(t, tr.Update(key("alice"), []byte("100")))
	root := tr.Hash()
	require.NoError(t, txn.Commit())
	require.NoError(t, db.Close())

	db, err = Open(dir, DefaultOptions())
	require.NoError(t, err)
	defer db.Close()

	data, err := db.NewStore(propStoreName).Get([]byte(configKey))
	require.NoError(t, err)
	assert.JSONEq(t, `{"SchemaVersion":1}`, string(data))

	r := db.NewReadTxn()
	defer r.Release()
	rt, err := r.Trie("accounts")
	require.NoError(t, err)
	assert.Equal(t, root, rt.Hash())

	// reads go through the node cache the second time
	val, err := rt.Get(key("alice"))
	require.NoError(t, err)
	assert.Equal(t, "100", string(val))
}

func TestNodeCache(t *testing.T) {
	var nilCache *nodeCache
	assert.Nil(t, nilCache.Get([]byte("k")))
	nilCache.Add([]byte("k"), []byte("v"))

	c := newNodeCache(1)
	assert.Nil(t, c.Get([]byte("k")))
	c.Add([]byte("k"), []byte("v"))
	assert.Equal(t, []byte("v"), c.Get([]byte("k")))

	_, hit, miss := c.stats.Stats()
	assert.Equal(t, int64(1), hit)
	assert.Equal(t, int64(1), miss)
}
