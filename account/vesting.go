// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package account

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/vechain/thorstate/thor"
	"github.com/vechain/thorstate/tx"
)

// VestingSchedule releases StepAmount every TimeStep seconds from StartTime
// until TotalAmount is released. A zero TimeStep releases everything at StartTime.
type VestingSchedule struct {
	Owner       thor.Address
	StartTime   uint64
	TimeStep    uint64
	StepAmount  *uint256.Int
	TotalAmount *uint256.Int
}

// Locked returns the amount still locked at timestamp.
func (s *VestingSchedule) Locked(timestamp uint64) *uint256.Int {
	total := amountOf(s.TotalAmount)
	if timestamp < s.StartTime {
		return total.Clone()
	}
	if s.TimeStep == 0 {
		return new(uint256.Int)
	}
	steps := uint256.NewInt((timestamp - s.StartTime) / s.TimeStep)
	released, overflow := new(uint256.Int).MulOverflow(steps, amountOf(s.StepAmount))
	if overflow || !released.Lt(total) {
		return new(uint256.Int)
	}
	return new(uint256.Int).Sub(total, released)
}

func (s *VestingSchedule) validate(balance *uint256.Int) error {
	if s.TimeStep == 0 && !amountOf(s.StepAmount).IsZero() {
		return ErrInvalidVestingSchedule
	}
	if amountOf(s.TotalAmount).Gt(balance) {
		return ErrInvalidVestingSchedule
	}
	return nil
}

// Vesting is a contract account whose balance is partially locked by a schedule.
// It never receives transactions or inherents once created.
type Vesting struct {
	balance  *uint256.Int
	schedule VestingSchedule
}

var _ Account = (*Vesting)(nil)

// NewVesting creates a vesting account holding balance.
func NewVesting(balance *uint256.Int, schedule VestingSchedule) (*Vesting, error) {
	schedule.StepAmount = clone(schedule.StepAmount)
	schedule.TotalAmount = clone(schedule.TotalAmount)
	if err := schedule.validate(clone(balance)); err != nil {
		return nil, err
	}
	return &Vesting{clone(balance), schedule}, nil
}

func newVestingFromTx(balance *uint256.Int, t *tx.Transaction) (*Vesting, error) {
	var schedule VestingSchedule
	if err := rlp.DecodeBytes(t.Data, &schedule); err != nil {
		return nil, ErrInvalidVestingSchedule
	}
	return NewVesting(balance, schedule)
}

// EncodeVestingSchedule returns the creation data of a vesting contract.
func EncodeVestingSchedule(s *VestingSchedule) ([]byte, error) {
	cpy := *s
	cpy.StepAmount = clone(s.StepAmount)
	cpy.TotalAmount = clone(s.TotalAmount)
	return rlp.EncodeToBytes(&cpy)
}

func (v *Vesting) Type() Type { return TypeVesting }

// Balance returns a copy of the balance.
func (v *Vesting) Balance() *uint256.Int { return v.balance.Clone() }

// Schedule returns a copy of the vesting schedule.
func (v *Vesting) Schedule() VestingSchedule {
	s := v.schedule
	s.StepAmount = clone(s.StepAmount)
	s.TotalAmount = clone(s.TotalAmount)
	return s
}

func (v *Vesting) with(balance *uint256.Int) *Vesting {
	return &Vesting{balance, v.schedule}
}

func (v *Vesting) CommitIncomingTransaction(t *tx.Transaction, height uint32, timestamp uint64) (Account, []byte, error) {
	return nil, nil, ErrInvalidForRecipient
}

func (v *Vesting) RevertIncomingTransaction(t *tx.Transaction, height uint32, timestamp uint64, receipt []byte) (Account, error) {
	return nil, ErrInvalidForRecipient
}

func (v *Vesting) CommitOutgoingTransaction(t *tx.Transaction, height uint32, timestamp uint64) (Account, []byte, error) {
	if t.IsContractCreation() {
		return nil, nil, ErrInvalidForSender
	}
	cost, overflow := t.Cost()
	if overflow {
		return nil, nil, ErrBalanceOverflow
	}
	if v.balance.Lt(cost) {
		return nil, nil, insufficient(v.balance, cost)
	}
	remaining := new(uint256.Int).Sub(v.balance, cost)
	if locked := v.schedule.Locked(timestamp); remaining.Lt(locked) {
		// only the vested part of the balance is spendable
		spendable := new(uint256.Int).Sub(v.balance, minOf(locked, v.balance))
		return nil, nil, insufficient(spendable, cost)
	}
	return v.with(remaining), nil, nil
}

func (v *Vesting) RevertOutgoingTransaction(t *tx.Transaction, height uint32, timestamp uint64, receipt []byte) (Account, error) {
	if t.IsContractCreation() {
		return nil, ErrInvalidForSender
	}
	if receipt != nil {
		return nil, ErrInvalidReceipt
	}
	cost, overflow := t.Cost()
	if overflow {
		return nil, ErrBalanceOverflow
	}
	sum, overflow := new(uint256.Int).AddOverflow(v.balance, cost)
	if overflow {
		return nil, ErrBalanceOverflow
	}
	return v.with(sum), nil
}

func (v *Vesting) CommitInherent(in *tx.Inherent, height uint32, timestamp uint64) (Account, []byte, error) {
	return nil, nil, ErrInvalidInherent
}

func (v *Vesting) RevertInherent(in *tx.Inherent, height uint32, timestamp uint64, receipt []byte) (Account, error) {
	return nil, ErrInvalidInherent
}
