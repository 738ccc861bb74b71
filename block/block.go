// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/vechain/thorstate/thor"
	"github.com/vechain/thorstate/trie"
	"github.com/vechain/thorstate/tx"
)

// Block is an immutable block type.
type Block struct {
	header    *Header
	txs       []*tx.Transaction
	inherents []*tx.Inherent
}

// New create a block instance.
// Note: This method is usually to recover a block by its portions, and the TxsRoot is not verified.
// To build up a block, use a Builder.
func New(header *Header, txs []*tx.Transaction, inherents []*tx.Inherent) *Block {
	return &Block{
		header,
		append([]*tx.Transaction(nil), txs...),
		append([]*tx.Inherent(nil), inherents...),
	}
}

// Header returns the block header.
func (b *Block) Header() *Header {
	return b.header
}

// Transactions returns a copy of transactions.
func (b *Block) Transactions() []*tx.Transaction {
	return append([]*tx.Transaction(nil), b.txs...)
}

// Inherents returns a copy of inherents.
func (b *Block) Inherents() []*tx.Inherent {
	return append([]*tx.Inherent(nil), b.inherents...)
}

// ID is a shortcut of Header().ID().
func (b *Block) ID() thor.Bytes32 {
	return b.header.ID()
}

// VerifyTxsRoot returns whether the header commits to the block's transactions and inherents.
func (b *Block) VerifyTxsRoot() bool {
	return b.header.TxsRoot() == TxsRoot(b.txs, b.inherents)
}

type blockRLP struct {
	Header    *Header
	Txs       []*tx.Transaction
	Inherents []*tx.Inherent
}

// EncodeRLP implements rlp.Encoder.
func (b *Block) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &blockRLP{b.header, b.txs, b.inherents})
}

// DecodeRLP implements rlp.Decoder.
func (b *Block) DecodeRLP(s *rlp.Stream) error {
	var payload blockRLP
	if err := s.Decode(&payload); err != nil {
		return err
	}
	*b = Block{payload.Header, payload.Txs, payload.Inherents}
	return nil
}

func (b *Block) String() string {
	return fmt.Sprintf(`Block(%v)
%v
Transactions: %v
Inherents: %v`, b.ID(), b.header, len(b.txs), len(b.inherents))
}

// TxsRoot computes the merkle root over transactions followed by inherents.
func TxsRoot(txs []*tx.Transaction, inherents []*tx.Inherent) thor.Bytes32 {
	if len(txs) == 0 && len(inherents) == 0 {
		return trie.EmptyRoot()
	}
	return trie.DeriveRoot(derivableItems{txs, inherents})
}

// implements trie.DerivableList
type derivableItems struct {
	txs       []*tx.Transaction
	inherents []*tx.Inherent
}

func (d derivableItems) Len() int {
	return len(d.txs) + len(d.inherents)
}

func (d derivableItems) GetRlp(i int) []byte {
	var item any
	if i < len(d.txs) {
		item = d.txs[i]
	} else {
		item = d.inherents[i-len(d.txs)]
	}
	data, err := rlp.EncodeToBytes(item)
	if err != nil {
		panic(err)
	}
	return data
}
