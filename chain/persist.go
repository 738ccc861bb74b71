// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/golang/snappy"
	"github.com/vechain/thorstate/account"
	"github.com/vechain/thorstate/block"
	"github.com/vechain/thorstate/kv"
	"github.com/vechain/thorstate/thor"
)

const storeName = "chain"

var headKey = []byte("head")

const (
	blockPrefix    = byte('b')
	headPrefix     = byte('h')
	receiptsPrefix = byte('r')
)

// Head is the chain position after a block has been applied.
type Head struct {
	ID        thor.Bytes32
	ParentID  thor.Bytes32
	Height    uint32
	Timestamp uint64
	StateRoot thor.Bytes32
}

func makeKey(prefix byte, id thor.Bytes32) []byte {
	return append([]byte{prefix}, id[:]...)
}

func saveRLP(w kv.Putter, key []byte, val any) error {
	data, err := rlp.EncodeToBytes(val)
	if err != nil {
		return err
	}
	return w.Put(key, data)
}

func loadRLP(r kv.Getter, key []byte, val any) error {
	data, err := r.Get(key)
	if err != nil {
		return err
	}
	return rlp.DecodeBytes(data, val)
}

func saveHead(w kv.Putter, head *Head) error {
	if err := saveRLP(w, makeKey(headPrefix, head.ID), head); err != nil {
		return err
	}
	return w.Put(headKey, head.ID[:])
}

func loadHeadOf(r kv.Getter, id thor.Bytes32) (*Head, error) {
	var head Head
	if err := loadRLP(r, makeKey(headPrefix, id), &head); err != nil {
		return nil, err
	}
	return &head, nil
}

// loadHead returns the current head, nil if the chain is not initialized.
func loadHead(r kv.Getter) (*Head, error) {
	id, ok, err := kv.GetOptional(r, headKey)
	if err != nil || !ok {
		return nil, err
	}
	return loadHeadOf(r, thor.BytesToBytes32(id))
}

func saveBlock(w kv.Putter, blk *block.Block) error {
	return saveRLP(w, makeKey(blockPrefix, blk.ID()), blk)
}

func loadBlock(r kv.Getter, id thor.Bytes32) (*block.Block, error) {
	var blk block.Block
	if err := loadRLP(r, makeKey(blockPrefix, id), &blk); err != nil {
		return nil, err
	}
	return &blk, nil
}

// receipts are stored snappy compressed.
func saveReceipts(w kv.Putter, id thor.Bytes32, receipts account.Receipts) error {
	data, err := rlp.EncodeToBytes(receipts)
	if err != nil {
		return err
	}
	return w.Put(makeKey(receiptsPrefix, id), snappy.Encode(nil, data))
}

func loadReceipts(r kv.Getter, id thor.Bytes32) (account.Receipts, error) {
	data, err := r.Get(makeKey(receiptsPrefix, id))
	if err != nil {
		return nil, err
	}
	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, err
	}
	var receipts account.Receipts
	if err := rlp.DecodeBytes(raw, &receipts); err != nil {
		return nil, err
	}
	return receipts, nil
}

func deleteBlock(w kv.Putter, id thor.Bytes32) error {
	for _, prefix := range []byte{blockPrefix, headPrefix, receiptsPrefix} {
		if err := w.Delete(makeKey(prefix, id)); err != nil {
			return err
		}
	}
	return nil
}
