// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/vechain/thorstate/thor"
	"github.com/vechain/thorstate/tx"
)

// JSONBlock is the JSON form of a block, used by the CLI and the API.
// TxsRoot and ID are derived, they're ignored on input.
type JSONBlock struct {
	ID           thor.Bytes32      `json:"id"`
	ParentID     thor.Bytes32      `json:"parentID"`
	Height       uint32            `json:"height"`
	Timestamp    uint64            `json:"timestamp"`
	TxsRoot      thor.Bytes32      `json:"txsRoot"`
	StateRoot    thor.Bytes32      `json:"stateRoot"`
	Transactions []*tx.Transaction `json:"transactions"`
	Inherents    []*tx.Inherent    `json:"inherents"`
}

// MarshalJSON implements json.Marshaler.
func (b *Block) MarshalJSON() ([]byte, error) {
	h := b.header
	return json.Marshal(&JSONBlock{
		ID:           h.ID(),
		ParentID:     h.ParentID(),
		Height:       h.Height(),
		Timestamp:    h.Timestamp(),
		TxsRoot:      h.TxsRoot(),
		StateRoot:    h.StateRoot(),
		Transactions: nonNil(b.txs),
		Inherents:    nonNil(b.inherents),
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Block) UnmarshalJSON(data []byte) error {
	var obj JSONBlock
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if !obj.ParentID.IsZero() && Number(obj.ParentID)+1 != obj.Height {
		return errors.Errorf("height %v doesn't follow parent %v", obj.Height, obj.ParentID)
	}

	builder := new(Builder).
		ParentID(obj.ParentID).
		Height(obj.Height).
		Timestamp(obj.Timestamp).
		StateRoot(obj.StateRoot)
	for i, t := range obj.Transactions {
		if t == nil {
			return errors.Errorf("transaction #%v is null", i)
		}
		builder.Transaction(t)
	}
	for i, in := range obj.Inherents {
		if in == nil {
			return errors.Errorf("inherent #%v is null", i)
		}
		builder.Inherent(in)
	}
	*b = *builder.Build()
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
