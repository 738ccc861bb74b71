// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/vechain/thorstate/thor"
)

// InherentType is the kind of a protocol-generated state change.
type InherentType uint8

const (
	// InherentReward credits the target.
	InherentReward InherentType = iota
	// InherentSlash burns from the target.
	InherentSlash
)

func (t InherentType) String() string {
	switch t {
	case InherentReward:
		return "reward"
	case InherentSlash:
		return "slash"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t InherentType) MarshalText() ([]byte, error) {
	if t > InherentSlash {
		return nil, errors.Errorf("invalid inherent type %d", uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *InherentType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "reward":
		*t = InherentReward
	case "slash":
		*t = InherentSlash
	default:
		return errors.Errorf("unknown inherent type %q", text)
	}
	return nil
}

// Inherent is a state change produced by the protocol itself rather than signed by a user.
// PreTransactions selects whether it applies before or after the block's transactions.
type Inherent struct {
	Type            InherentType
	Target          thor.Address
	Value           *uint256.Int
	Data            []byte
	PreTransactions bool
}

// IsPreTransactions returns whether the inherent is applied before transactions.
func (in *Inherent) IsPreTransactions() bool {
	return in.PreTransactions
}

// Amount returns the inherent value, zero if unset.
func (in *Inherent) Amount() *uint256.Int {
	return amount(in.Value)
}

type inherentJSON struct {
	Type            InherentType  `json:"type"`
	Target          thor.Address  `json:"target"`
	Value           *uint256.Int  `json:"value"`
	Data            hexutil.Bytes `json:"data,omitempty"`
	PreTransactions bool          `json:"preTransactions"`
}

// MarshalJSON implements json.Marshaler.
func (in *Inherent) MarshalJSON() ([]byte, error) {
	return json.Marshal(&inherentJSON{
		Type:            in.Type,
		Target:          in.Target,
		Value:           amount(in.Value),
		Data:            in.Data,
		PreTransactions: in.PreTransactions,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (in *Inherent) UnmarshalJSON(data []byte) error {
	var obj inherentJSON
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*in = Inherent{
		Type:            obj.Type,
		Target:          obj.Target,
		Value:           amount(obj.Value),
		Data:            obj.Data,
		PreTransactions: obj.PreTransactions,
	}
	return nil
}

// Split returns pre-transaction and post-transaction inherents, each keeping its original order.
func Split(inherents []*Inherent) (pre, post []*Inherent) {
	for _, in := range inherents {
		if in.IsPreTransactions() {
			pre = append(pre, in)
		} else {
			post = append(post, in)
		}
	}
	return
}
