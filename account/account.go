// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package account defines the account variants and their state transition rules.
package account

import (
	"github.com/holiman/uint256"
	"github.com/vechain/thorstate/thor"
	"github.com/vechain/thorstate/tx"
)

// Type selects the account variant.
type Type = thor.AccountType

const (
	TypeBasic   = thor.AccountBasic
	TypeVesting = thor.AccountVesting
	TypeStaking = thor.AccountStaking
)

// Account is the capability every account variant implements.
//
// Accounts are values: a mutating method never modifies the receiver and
// returns the successor account instead. Commit methods may return receipt
// data, which the matching revert method needs to restore the prior account.
type Account interface {
	Type() Type
	Balance() *uint256.Int

	CommitIncomingTransaction(t *tx.Transaction, height uint32, timestamp uint64) (Account, []byte, error)
	RevertIncomingTransaction(t *tx.Transaction, height uint32, timestamp uint64, receipt []byte) (Account, error)

	CommitOutgoingTransaction(t *tx.Transaction, height uint32, timestamp uint64) (Account, []byte, error)
	RevertOutgoingTransaction(t *tx.Transaction, height uint32, timestamp uint64, receipt []byte) (Account, error)

	CommitInherent(in *tx.Inherent, height uint32, timestamp uint64) (Account, []byte, error)
	RevertInherent(in *tx.Inherent, height uint32, timestamp uint64, receipt []byte) (Account, error)
}

// NewContract creates the contract account a CONTRACT_CREATION transaction asks for.
// The contract takes over the balance of the account it replaces.
func NewContract(typ Type, balance *uint256.Int, t *tx.Transaction, height uint32, timestamp uint64) (Account, error) {
	switch typ {
	case TypeVesting:
		return newVestingFromTx(balance, t)
	default:
		return nil, ErrInvalidContractType
	}
}

// IsEmpty returns whether acc is indistinguishable from an absent account.
func IsEmpty(acc Account) bool {
	b, ok := acc.(*Basic)
	return ok && b.balance.IsZero()
}

// Equal reports whether two accounts have the same canonical encoding.
func Equal(a, b Account) bool {
	ea, err := Encode(a)
	if err != nil {
		return false
	}
	eb, err := Encode(b)
	if err != nil {
		return false
	}
	return string(ea) == string(eb)
}

// clone returns a copy of v, zero for nil.
func clone(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return v.Clone()
}
