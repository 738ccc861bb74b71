// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package account

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
	"github.com/vechain/thorstate/thor"
	"github.com/vechain/thorstate/trie"
)

// ReceiptKind tells what produced a receipt.
type ReceiptKind uint8

const (
	ReceiptTransaction ReceiptKind = iota
	ReceiptInherent
)

func (k ReceiptKind) String() string {
	switch k {
	case ReceiptTransaction:
		return "transaction"
	case ReceiptInherent:
		return "inherent"
	default:
		return "unknown"
	}
}

// Receipt records the data an operation needs to be reverted.
//
// For transaction receipts, Index is the position of the transaction in the
// block and Sender tells which side produced it. For inherent receipts, Index
// is the position within the pre or post transaction inherents, selected by
// PreTransactions.
type Receipt struct {
	Kind            ReceiptKind
	Index           uint16
	Sender          bool
	PreTransactions bool
	Data            []byte
}

// TransactionReceipt creates a receipt of a transaction side.
func TransactionReceipt(index uint16, sender bool, data []byte) *Receipt {
	return &Receipt{Kind: ReceiptTransaction, Index: index, Sender: sender, Data: data}
}

// InherentReceipt creates a receipt of an inherent.
func InherentReceipt(index uint16, preTransactions bool, data []byte) *Receipt {
	return &Receipt{Kind: ReceiptInherent, Index: index, PreTransactions: preTransactions, Data: data}
}

// Receipts is the ordered receipts of a block.
type Receipts []*Receipt

// RootHash computes the merkle root of the receipts.
func (rs Receipts) RootHash() thor.Bytes32 {
	if len(rs) == 0 {
		return trie.EmptyRoot()
	}
	return trie.DeriveRoot(derivableReceipts(rs))
}

// Partition splits the receipts by the phase that produced them, each
// phase keyed by index. Duplicated entries make the receipts invalid.
func (rs Receipts) Partition() (*PartitionedReceipts, error) {
	p := &PartitionedReceipts{
		Senders:       make(map[uint16][]byte),
		Recipients:    make(map[uint16][]byte),
		PreInherents:  make(map[uint16][]byte),
		PostInherents: make(map[uint16][]byte),
	}
	for _, r := range rs {
		var m map[uint16][]byte
		switch {
		case r.Kind == ReceiptTransaction && r.Sender:
			m = p.Senders
		case r.Kind == ReceiptTransaction:
			m = p.Recipients
		case r.Kind == ReceiptInherent && r.PreTransactions:
			m = p.PreInherents
		case r.Kind == ReceiptInherent:
			m = p.PostInherents
		default:
			return nil, errors.WithMessagef(ErrInvalidReceipt, "unknown receipt kind %v", r.Kind)
		}
		if _, dup := m[r.Index]; dup {
			return nil, errors.WithMessagef(ErrInvalidReceipt, "duplicated %v receipt #%v", r.Kind, r.Index)
		}
		data := r.Data
		if data == nil {
			// a present receipt is never nil
			data = []byte{}
		}
		m[r.Index] = data
	}
	return p, nil
}

// PartitionedReceipts is receipts grouped by phase.
type PartitionedReceipts struct {
	Senders       map[uint16][]byte
	Recipients    map[uint16][]byte
	PreInherents  map[uint16][]byte
	PostInherents map[uint16][]byte
}

// implements trie.DerivableList
type derivableReceipts Receipts

func (rs derivableReceipts) Len() int {
	return len(rs)
}

func (rs derivableReceipts) GetRlp(i int) []byte {
	data, err := rlp.EncodeToBytes(rs[i])
	if err != nil {
		panic(err)
	}
	return data
}
