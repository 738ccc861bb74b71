// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/vechain/thorstate/kv"
)

func newEngine(t *testing.T) Engine {
	ldb, err := leveldb.Open(storage.NewMemStorage(), nil)
	require.NoError(t, err)
	e := NewLevelEngine(ldb)
	t.Cleanup(func() { e.Close() })
	return e
}

func TestTransactionIsolation(t *testing.T) {
	e := newEngine(t)
	require.NoError(t, e.Put([]byte("a"), []byte("1")))

	tx, err := e.Transaction()
	require.NoError(t, err)

	require.NoError(t, tx.Put([]byte("a"), []byte("2")))
	require.NoError(t, tx.Put([]byte("b"), []byte("3")))

	// read-your-writes
	val, err := tx.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, "2", string(val))

	// invisible outside until commit
	val, err = e.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, "1", string(val))
	_, err = e.Get([]byte("b"))
	assert.True(t, e.IsNotFound(err))

	snap := e.Snapshot()
	defer snap.Release()

	require.NoError(t, tx.Commit())

	val, err = e.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, "3", string(val))

	// the snapshot taken earlier keeps the old view
	val, err = snap.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, "1", string(val))
}

func TestTransactionDiscard(t *testing.T) {
	e := newEngine(t)

	tx, err := e.Transaction()
	require.NoError(t, err)
	require.NoError(t, tx.Put([]byte("k"), []byte("v")))
	tx.Discard()
	tx.Discard()

	has, err := e.Has([]byte("k"))
	require.NoError(t, err)
	assert.False(t, has)

	// a new transaction can be opened after discard
	tx, err = e.Transaction()
	require.NoError(t, err)
	tx.Discard()
}

func TestIterate(t *testing.T) {
	e := newEngine(t)
	for _, k := range []string{"p1", "p2", "q1"} {
		require.NoError(t, e.Put([]byte(k), []byte(k)))
	}

	it := kv.Bucket("p").NewStore(e).Iterate(kv.Range{})
	defer it.Release()

	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	require.NoError(t, it.Error())
	assert.Equal(t, []string{"1", "2"}, keys)
}
