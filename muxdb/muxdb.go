// Copyright (c) 2019 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package muxdb implements the storage layer of the accounts database.
// It manages named merkle-patricia-tries and general purpose named kv-stores,
// accessed through read-only and read-write transactions.
package muxdb

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	dberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/vechain/thorstate/kv"
	"github.com/vechain/thorstate/log"
	"github.com/vechain/thorstate/muxdb/internal/engine"
)

const (
	trieNodeSpace   = byte(0) // the key space for trie nodes, keyed by node hash.
	trieRootSpace   = byte(1) // the key space for trie root pointers, keyed by trie name.
	namedStoreSpace = byte(2) // the key space for named store.
)

const (
	propStoreName = "muxdb.props"
	configKey     = "config"

	schemaVersion = 1
)

var logger = log.WithContext("pkg", "muxdb")

// Options optional parameters for MuxDB.
type Options struct {
	// TrieNodeCacheSizeMB is the size of the cache for trie node blobs.
	TrieNodeCacheSizeMB int

	// OpenFilesCacheCapacity is the capacity of open files caching for underlying database.
	OpenFilesCacheCapacity int
	// ReadCacheMB is the size of read cache for underlying database.
	ReadCacheMB int
	// WriteBufferMB is the size of write buffer for underlying database.
	WriteBufferMB int
}

// DefaultOptions returns the options used by the CLI when nothing is configured.
func DefaultOptions() *Options {
	return &Options{
		TrieNodeCacheSizeMB:    256,
		OpenFilesCacheCapacity: 500,
		ReadCacheMB:            128,
		WriteBufferMB:          64,
	}
}

// MuxDB is the database to store account tries, receipts and chain pointers.
type MuxDB struct {
	engine engine.Engine
	cache  *nodeCache
}

// Open opens or creates DB at the given path.
func Open(path string, options *Options) (*MuxDB, error) {
	// prepare leveldb options
	ldbOpts := opt.Options{
		OpenFilesCacheCapacity: options.OpenFilesCacheCapacity,
		BlockCacheCapacity:     options.ReadCacheMB * opt.MiB,
		WriteBuffer:            options.WriteBufferMB * opt.MiB,
		Filter:                 filter.NewBloomFilter(10),
		BlockSize:              1024 * 32, // balance performance of point reads and compression ratio.
		CompactionTableSize:    4 * opt.MiB,
	}

	// open leveldb
	ldb, err := leveldb.OpenFile(path, &ldbOpts)
	if _, corrupted := err.(*dberrors.ErrCorrupted); corrupted {
		logger.Warn("database corrupted, recovering", "path", path)
		ldb, err = leveldb.RecoverFile(path, &ldbOpts)
	}
	if err != nil {
		return nil, errors.Wrap(err, "open leveldb")
	}

	engine := engine.NewLevelEngine(ldb)

	propStore := kv.Bucket(string(namedStoreSpace) + propStoreName).NewStore(engine)
	// persists critical options to avoid corruption when tweaked.
	cfg := config{SchemaVersion: schemaVersion}
	if err := cfg.LoadOrSave(propStore); err != nil {
		ldb.Close()
		return nil, err
	}
	if cfg.SchemaVersion != schemaVersion {
		ldb.Close()
		return nil, errors.Errorf("incompatible database schema version %d, want %d", cfg.SchemaVersion, schemaVersion)
	}

	return &MuxDB{
		engine: engine,
		cache:  newNodeCache(options.TrieNodeCacheSizeMB),
	}, nil
}

// NewMem creates a memory-backed DB.
func NewMem() *MuxDB {
	storage := storage.NewMemStorage()
	ldb, _ := leveldb.Open(storage, nil)

	return &MuxDB{
		engine: engine.NewLevelEngine(ldb),
		cache:  nil,
	}
}

// Close closes the DB.
func (db *MuxDB) Close() error {
	return db.engine.Close()
}

// NewStore creates named kv-store outside of any transaction.
func (db *MuxDB) NewStore(name string) kv.Store {
	return namedBucket(name).NewStore(db.engine)
}

// IsNotFound returns if the error indicates key not found.
func (db *MuxDB) IsNotFound(err error) bool {
	return db.engine.IsNotFound(err)
}

// NewReadTxn opens a read-only transaction over a consistent snapshot.
// It may be used while a write transaction is open and must be released.
func (db *MuxDB) NewReadTxn() *ReadTxn {
	return &ReadTxn{
		db:       db,
		snapshot: db.engine.Snapshot(),
		tries:    make(map[string]*Trie),
	}
}

// NewWriteTxn opens the read-write transaction. Only one can be open at a time:
// the call blocks until the in-flight write transaction commits or aborts.
func (db *MuxDB) NewWriteTxn() (*WriteTxn, error) {
	tx, err := db.engine.Transaction()
	if err != nil {
		return nil, errors.Wrap(err, "open transaction")
	}
	return &WriteTxn{
		db:    db,
		tx:    tx,
		tries: make(map[string]*Trie),
	}, nil
}

func namedBucket(name string) kv.Bucket {
	return kv.Bucket(string(namedStoreSpace) + name)
}

func trieRootKey(name string) []byte {
	return append([]byte{trieRootSpace}, name...)
}

type config struct {
	SchemaVersion uint32
}

func (c *config) LoadOrSave(store kv.Store) error {
	// try to load
	data, err := store.Get([]byte(configKey))
	if err == nil {
		// and decode
		return json.Unmarshal(data, c)
	}

	if !store.IsNotFound(err) {
		return err
	}
	// not found
	// encode and save
	data, err = json.Marshal(c)
	if err != nil {
		return err
	}
	return store.Put([]byte(configKey), data)
}
