// Copyright (c) 2022 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
	"github.com/vechain/thorstate/kv"
)

var (
	writeOpt = opt.WriteOptions{}
	readOpt  = opt.ReadOptions{}
	scanOpt  = opt.ReadOptions{DontFillCache: true}
)

type levelEngine struct {
	db *leveldb.DB
}

// NewLevelEngine creates leveldb instance which implements the Engine interface.
func NewLevelEngine(db *leveldb.DB) Engine {
	return &levelEngine{db}
}

func (ldb *levelEngine) Close() error {
	return ldb.db.Close()
}

func (ldb *levelEngine) IsNotFound(err error) bool {
	return err == leveldb.ErrNotFound
}

func (ldb *levelEngine) Get(key []byte) ([]byte, error) {
	val, err := ldb.db.Get(key, &readOpt)
	// val will be []byte{} if error occurs, which is not expected
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (ldb *levelEngine) Has(key []byte) (bool, error) {
	return ldb.db.Has(key, &readOpt)
}

func (ldb *levelEngine) Put(key, val []byte) error {
	return ldb.db.Put(key, val, &writeOpt)
}

func (ldb *levelEngine) Delete(key []byte) error {
	return ldb.db.Delete(key, &writeOpt)
}

func (ldb *levelEngine) Snapshot() kv.Snapshot {
	s, err := ldb.db.GetSnapshot()
	return &struct {
		kv.GetFunc
		kv.HasFunc
		kv.IsNotFoundFunc
		kv.ReleaseFunc
	}{
		func(key []byte) ([]byte, error) {
			if err != nil {
				return nil, err
			}
			val, err := s.Get(key, &readOpt)
			if err != nil {
				return nil, err
			}
			return val, nil
		},
		func(key []byte) (bool, error) {
			if err != nil {
				return false, err
			}
			return s.Has(key, &readOpt)
		},
		ldb.IsNotFound,
		func() {
			if s != nil {
				s.Release()
			}
		},
	}
}

func (ldb *levelEngine) Iterate(r kv.Range) kv.Iterator {
	return ldb.db.NewIterator((*util.Range)(&r), &scanOpt)
}

func (ldb *levelEngine) Transaction() (Transaction, error) {
	tr, err := ldb.db.OpenTransaction()
	if err != nil {
		return nil, err
	}
	return &levelTransaction{tr}, nil
}

type levelTransaction struct {
	tr *leveldb.Transaction
}

func (t *levelTransaction) IsNotFound(err error) bool {
	return err == leveldb.ErrNotFound
}

func (t *levelTransaction) Get(key []byte) ([]byte, error) {
	val, err := t.tr.Get(key, &readOpt)
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (t *levelTransaction) Has(key []byte) (bool, error) {
	return t.tr.Has(key, &readOpt)
}

func (t *levelTransaction) Put(key, val []byte) error {
	return t.tr.Put(key, val, &writeOpt)
}

func (t *levelTransaction) Delete(key []byte) error {
	return t.tr.Delete(key, &writeOpt)
}

func (t *levelTransaction) Commit() error {
	return t.tr.Commit()
}

func (t *levelTransaction) Discard() {
	t.tr.Discard()
}
