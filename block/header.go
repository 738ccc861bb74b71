// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/vechain/thorstate/thor"
)

// Header contains almost all information about a block, except its transactions and inherents.
// It's immutable.
type Header struct {
	body headerBody

	cache struct {
		id atomic.Pointer[thor.Bytes32]
	}
}

type headerBody struct {
	ParentID  thor.Bytes32
	Height    uint32
	Timestamp uint64
	TxsRoot   thor.Bytes32
	StateRoot thor.Bytes32
}

// ParentID returns id of parent block.
func (h *Header) ParentID() thor.Bytes32 {
	return h.body.ParentID
}

// Height returns the block height.
func (h *Header) Height() uint32 {
	return h.body.Height
}

// Timestamp returns timestamp of this block.
func (h *Header) Timestamp() uint64 {
	return h.body.Timestamp
}

// TxsRoot returns merkle root of transactions and inherents contained in this block.
func (h *Header) TxsRoot() thor.Bytes32 {
	return h.body.TxsRoot
}

// StateRoot returns the accounts root expected after applying the block.
// Zero means unchecked.
func (h *Header) StateRoot() thor.Bytes32 {
	return h.body.StateRoot
}

// ID computes id of block.
// The id is the hash of the header, with its leading 4 bytes replaced by the height.
func (h *Header) ID() (id thor.Bytes32) {
	if cached := h.cache.id.Load(); cached != nil {
		return *cached
	}
	defer func() {
		h.cache.id.Store(&id)
	}()

	data, err := rlp.EncodeToBytes(&h.body)
	if err != nil {
		panic(err)
	}
	id = thor.Blake2b(data)
	binary.BigEndian.PutUint32(id[:], h.body.Height)
	return
}

// EncodeRLP implements rlp.Encoder.
func (h *Header) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &h.body)
}

// DecodeRLP implements rlp.Decoder.
func (h *Header) DecodeRLP(s *rlp.Stream) error {
	var body headerBody
	if err := s.Decode(&body); err != nil {
		return err
	}
	*h = Header{body: body}
	return nil
}

func (h *Header) String() string {
	return fmt.Sprintf(`Header(%v):
	Height:    %v
	ParentID:  %v
	Timestamp: %v
	TxsRoot:   %v
	StateRoot: %v`, h.ID(), h.body.Height, h.body.ParentID, h.body.Timestamp, h.body.TxsRoot, h.body.StateRoot)
}

// Number extracts the block height from its id.
func Number(blockID thor.Bytes32) uint32 {
	return binary.BigEndian.Uint32(blockID[:])
}
