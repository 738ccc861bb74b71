// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package account

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/vechain/thorstate/tx"
)

// Basic is the plain value-holding account.
// A Basic account with zero balance is the state of every untouched key.
type Basic struct {
	balance *uint256.Int
}

var _ Account = (*Basic)(nil)

// NewBasic creates a Basic account holding balance.
func NewBasic(balance *uint256.Int) *Basic {
	return &Basic{clone(balance)}
}

func (b *Basic) Type() Type { return TypeBasic }

// Balance returns a copy of the balance.
func (b *Basic) Balance() *uint256.Int { return b.balance.Clone() }

func (b *Basic) credit(v *uint256.Int) (*Basic, error) {
	sum, overflow := new(uint256.Int).AddOverflow(b.balance, v)
	if overflow {
		return nil, ErrBalanceOverflow
	}
	return &Basic{sum}, nil
}

func (b *Basic) debit(v *uint256.Int) (*Basic, error) {
	if b.balance.Lt(v) {
		return nil, insufficient(b.balance, v)
	}
	return &Basic{new(uint256.Int).Sub(b.balance, v)}, nil
}

func (b *Basic) CommitIncomingTransaction(t *tx.Transaction, height uint32, timestamp uint64) (Account, []byte, error) {
	next, err := b.credit(amountOf(t.Value))
	if err != nil {
		return nil, nil, err
	}
	return next, nil, nil
}

func (b *Basic) RevertIncomingTransaction(t *tx.Transaction, height uint32, timestamp uint64, receipt []byte) (Account, error) {
	if receipt != nil {
		return nil, ErrInvalidReceipt
	}
	return b.debit(amountOf(t.Value))
}

func (b *Basic) CommitOutgoingTransaction(t *tx.Transaction, height uint32, timestamp uint64) (Account, []byte, error) {
	cost, overflow := t.Cost()
	if overflow {
		return nil, nil, ErrBalanceOverflow
	}
	next, err := b.debit(cost)
	if err != nil {
		return nil, nil, err
	}
	return next, nil, nil
}

func (b *Basic) RevertOutgoingTransaction(t *tx.Transaction, height uint32, timestamp uint64, receipt []byte) (Account, error) {
	if receipt != nil {
		return nil, ErrInvalidReceipt
	}
	cost, overflow := t.Cost()
	if overflow {
		return nil, ErrBalanceOverflow
	}
	return b.credit(cost)
}

func (b *Basic) CommitInherent(in *tx.Inherent, height uint32, timestamp uint64) (Account, []byte, error) {
	switch in.Type {
	case tx.InherentReward:
		next, err := b.credit(in.Amount())
		if err != nil {
			return nil, nil, err
		}
		return next, nil, nil
	case tx.InherentSlash:
		burned := minOf(in.Amount(), b.balance)
		receipt, err := rlp.EncodeToBytes(burned)
		if err != nil {
			return nil, nil, err
		}
		return &Basic{new(uint256.Int).Sub(b.balance, burned)}, receipt, nil
	default:
		return nil, nil, ErrInvalidInherent
	}
}

func (b *Basic) RevertInherent(in *tx.Inherent, height uint32, timestamp uint64, receipt []byte) (Account, error) {
	switch in.Type {
	case tx.InherentReward:
		if receipt != nil {
			return nil, ErrInvalidReceipt
		}
		return b.debit(in.Amount())
	case tx.InherentSlash:
		if receipt == nil {
			return nil, ErrMissingReceipt
		}
		var burned uint256.Int
		if err := rlp.DecodeBytes(receipt, &burned); err != nil {
			return nil, ErrInvalidReceipt
		}
		if burned.Gt(in.Amount()) {
			return nil, ErrInvalidReceipt
		}
		return b.credit(&burned)
	default:
		return nil, ErrInvalidInherent
	}
}

func amountOf(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return v
}

func minOf(a, b *uint256.Int) *uint256.Int {
	if a.Lt(b) {
		return a.Clone()
	}
	return b.Clone()
}
