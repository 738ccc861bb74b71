// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blocks

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/vechain/thorstate/account"
	"github.com/vechain/thorstate/chain"
	"github.com/vechain/thorstate/thor"
)

type Head struct {
	ID        thor.Bytes32 `json:"id"`
	ParentID  thor.Bytes32 `json:"parentID"`
	Height    uint32       `json:"height"`
	Timestamp uint64       `json:"timestamp"`
	StateRoot thor.Bytes32 `json:"stateRoot"`
}

type Receipt struct {
	Kind            string        `json:"kind"`
	Index           uint16        `json:"index"`
	Sender          bool          `json:"sender"`
	PreTransactions bool          `json:"preTransactions"`
	Data            hexutil.Bytes `json:"data"`
}

type Receipts struct {
	BlockID  thor.Bytes32 `json:"blockID"`
	Root     thor.Bytes32 `json:"root"`
	Receipts []*Receipt   `json:"receipts"`
}

// ConvertHead builds the view of a chain head.
func ConvertHead(h *chain.Head) *Head {
	return &Head{
		ID:        h.ID,
		ParentID:  h.ParentID,
		Height:    h.Height,
		Timestamp: h.Timestamp,
		StateRoot: h.StateRoot,
	}
}

// ConvertReceipts builds the view of the receipts of block id.
func ConvertReceipts(id thor.Bytes32, receipts account.Receipts) *Receipts {
	out := &Receipts{
		BlockID:  id,
		Root:     receipts.RootHash(),
		Receipts: make([]*Receipt, 0, len(receipts)),
	}
	for _, r := range receipts {
		out.Receipts = append(out.Receipts, &Receipt{
			Kind:            r.Kind.String(),
			Index:           r.Index,
			Sender:          r.Sender,
			PreTransactions: r.PreTransactions,
			Data:            r.Data,
		})
	}
	return out
}
