// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/vechain/thorstate/thor"
)

// Flags is the bit set of transaction options.
type Flags uint8

const (
	// FlagContractCreation marks a transaction that turns its recipient into a contract account.
	FlagContractCreation Flags = 1 << iota
)

// Has returns whether every bit of f is set.
func (fl Flags) Has(f Flags) bool {
	return fl&f == f
}

// Transaction moves value from a sender to a recipient.
// Both parties claim the account type they expect to find in state.
type Transaction struct {
	Sender        thor.Address
	SenderType    thor.AccountType
	Recipient     thor.Address
	RecipientType thor.AccountType
	Value         *uint256.Int
	Fee           *uint256.Int
	Flags         Flags
	Data          []byte
}

// IsContractCreation returns whether the transaction creates a contract at its recipient.
func (t *Transaction) IsContractCreation() bool {
	return t.Flags.Has(FlagContractCreation)
}

// Cost returns value plus fee, reporting overflow.
func (t *Transaction) Cost() (*uint256.Int, bool) {
	return new(uint256.Int).AddOverflow(amount(t.Value), amount(t.Fee))
}

// Hash returns the blake2b hash of the RLP encoded transaction.
func (t *Transaction) Hash() thor.Bytes32 {
	data, err := rlp.EncodeToBytes(t.normalized())
	if err != nil {
		panic(err)
	}
	return thor.Blake2b(data)
}

func (t *Transaction) String() string {
	return fmt.Sprintf(`Tx(%v)
	Sender:    %v (%v)
	Recipient: %v (%v)
	Value:     %v
	Fee:       %v
	Flags:     %#x
	Data:      %#x`, t.Hash(),
		t.Sender, t.SenderType,
		t.Recipient, t.RecipientType,
		amount(t.Value), amount(t.Fee),
		uint8(t.Flags), t.Data)
}

// normalized replaces nil amounts with zero so that nil and 0 hash the same.
func (t *Transaction) normalized() *Transaction {
	cpy := *t
	cpy.Value = amount(t.Value)
	cpy.Fee = amount(t.Fee)
	return &cpy
}

type txJSON struct {
	Sender        thor.Address     `json:"sender"`
	SenderType    thor.AccountType `json:"senderType"`
	Recipient     thor.Address     `json:"recipient"`
	RecipientType thor.AccountType `json:"recipientType"`
	Value         *uint256.Int     `json:"value"`
	Fee           *uint256.Int     `json:"fee"`
	Flags         Flags            `json:"flags"`
	Data          hexutil.Bytes    `json:"data,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (t *Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(&txJSON{
		Sender:        t.Sender,
		SenderType:    t.SenderType,
		Recipient:     t.Recipient,
		RecipientType: t.RecipientType,
		Value:         amount(t.Value),
		Fee:           amount(t.Fee),
		Flags:         t.Flags,
		Data:          t.Data,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
// Amounts accept decimal or 0x-prefixed hex strings, missing ones are zero.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var obj txJSON
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*t = Transaction{
		Sender:        obj.Sender,
		SenderType:    obj.SenderType,
		Recipient:     obj.Recipient,
		RecipientType: obj.RecipientType,
		Value:         amount(obj.Value),
		Fee:           amount(obj.Fee),
		Flags:         obj.Flags,
		Data:          obj.Data,
	}
	return nil
}

// amount treats nil as zero.
func amount(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return v
}
