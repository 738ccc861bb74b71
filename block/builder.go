// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"github.com/vechain/thorstate/thor"
	"github.com/vechain/thorstate/tx"
)

// Builder to make it easy to build a block object.
type Builder struct {
	header    headerBody
	txs       []*tx.Transaction
	inherents []*tx.Inherent
}

// ParentID set parent id. The height follows the parent.
func (b *Builder) ParentID(id thor.Bytes32) *Builder {
	b.header.ParentID = id
	b.header.Height = Number(id) + 1
	return b
}

// Height overrides the height derived from the parent id.
func (b *Builder) Height(height uint32) *Builder {
	b.header.Height = height
	return b
}

// Timestamp set timestamp.
func (b *Builder) Timestamp(ts uint64) *Builder {
	b.header.Timestamp = ts
	return b
}

// StateRoot set the expected state root.
func (b *Builder) StateRoot(root thor.Bytes32) *Builder {
	b.header.StateRoot = root
	return b
}

// Transaction add a transaction.
func (b *Builder) Transaction(t *tx.Transaction) *Builder {
	b.txs = append(b.txs, t)
	return b
}

// Inherent add an inherent.
func (b *Builder) Inherent(in *tx.Inherent) *Builder {
	b.inherents = append(b.inherents, in)
	return b
}

// Build build a block object.
func (b *Builder) Build() *Block {
	header := b.header
	header.TxsRoot = TxsRoot(b.txs, b.inherents)

	return New(&Header{body: header}, b.txs, b.inherents)
}
