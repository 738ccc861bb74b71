// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package account

import (
	"sort"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/vechain/thorstate/thor"
	"github.com/vechain/thorstate/tx"
)

// StakingOp is the operation carried by an incoming staking transaction.
type StakingOp uint8

const (
	// OpStake adds the transaction value to a staker, creating it when absent.
	OpStake StakingOp = iota
	// OpUpdateDelegation replaces the delegation of an existing staker.
	OpUpdateDelegation
)

// Staker is one entry of the staking contract.
type Staker struct {
	Address    thor.Address
	Delegation thor.Address
	Stake      *uint256.Int
}

// IncomingStakingData is the data of a transaction sent to the staking contract.
type IncomingStakingData struct {
	Op         StakingOp
	Staker     thor.Address
	Delegation thor.Address
}

// OutgoingStakingData is the data of a transaction sent from the staking contract (unstake).
type OutgoingStakingData struct {
	Staker thor.Address
}

// StakingInherentData is the data of a reward or slash inherent targeting the staking contract.
type StakingInherentData struct {
	Staker thor.Address
}

type slashReceipt struct {
	Burned     *uint256.Int
	Delegation thor.Address
	Removed    bool
}

// Staking is the contract account holding the stakers.
// Its balance is the sum of all stakes and stakers are kept sorted by address.
type Staking struct {
	balance *uint256.Int
	stakers []*Staker
}

var _ Account = (*Staking)(nil)

// NewStaking creates a staking account from a staker list.
// Zero stakes are dropped and duplicates rejected.
func NewStaking(stakers []Staker) (*Staking, error) {
	s := &Staking{balance: new(uint256.Int)}
	for i := range stakers {
		stake := clone(stakers[i].Stake)
		if stake.IsZero() {
			continue
		}
		if _, found := s.find(stakers[i].Address); found {
			return nil, ErrInvalidData
		}
		var overflow bool
		if s.balance, overflow = new(uint256.Int).AddOverflow(s.balance, stake); overflow {
			return nil, ErrBalanceOverflow
		}
		s.stakers = s.insert(&Staker{stakers[i].Address, stakers[i].Delegation, stake})
	}
	return s, nil
}

func (s *Staking) Type() Type { return TypeStaking }

// Balance returns a copy of the total stake.
func (s *Staking) Balance() *uint256.Int { return s.balance.Clone() }

// Stakers returns a copy of the stakers in address order.
func (s *Staking) Stakers() []Staker {
	out := make([]Staker, 0, len(s.stakers))
	for _, st := range s.stakers {
		out = append(out, Staker{st.Address, st.Delegation, st.Stake.Clone()})
	}
	return out
}

// Staker returns the staker at addr.
func (s *Staking) Staker(addr thor.Address) (Staker, bool) {
	i, found := s.find(addr)
	if !found {
		return Staker{}, false
	}
	st := s.stakers[i]
	return Staker{st.Address, st.Delegation, st.Stake.Clone()}, true
}

func (s *Staking) find(addr thor.Address) (int, bool) {
	i := sort.Search(len(s.stakers), func(i int) bool {
		return s.stakers[i].Address.Compare(addr) >= 0
	})
	return i, i < len(s.stakers) && s.stakers[i].Address == addr
}

// insert returns a new slice with st placed in order. st must not be present.
func (s *Staking) insert(st *Staker) []*Staker {
	i, _ := s.find(st.Address)
	out := make([]*Staker, 0, len(s.stakers)+1)
	out = append(out, s.stakers[:i]...)
	out = append(out, st)
	return append(out, s.stakers[i:]...)
}

// replace returns the successor with the staker at addr set to st, or removed when st is nil.
func (s *Staking) replace(addr thor.Address, st *Staker, balance *uint256.Int) *Staking {
	i, found := s.find(addr)
	var stakers []*Staker
	switch {
	case st == nil && found:
		stakers = make([]*Staker, 0, len(s.stakers)-1)
		stakers = append(stakers, s.stakers[:i]...)
		stakers = append(stakers, s.stakers[i+1:]...)
	case st == nil:
		stakers = s.stakers
	case found:
		stakers = make([]*Staker, len(s.stakers))
		copy(stakers, s.stakers)
		stakers[i] = st
	default:
		stakers = s.insert(st)
	}
	return &Staking{balance, stakers}
}

func (s *Staking) addStake(addr, delegation thor.Address, v *uint256.Int) (*Staking, error) {
	balance, overflow := new(uint256.Int).AddOverflow(s.balance, v)
	if overflow {
		return nil, ErrBalanceOverflow
	}
	stake := v.Clone()
	if i, found := s.find(addr); found {
		delegation = s.stakers[i].Delegation
		stake.Add(stake, s.stakers[i].Stake)
	}
	return s.replace(addr, &Staker{addr, delegation, stake}, balance), nil
}

// subStake debits v from the staker, removing it when drained.
func (s *Staking) subStake(addr thor.Address, v *uint256.Int) (next *Staking, removed *Staker, err error) {
	i, found := s.find(addr)
	if !found {
		return nil, nil, ErrUnknownStaker
	}
	cur := s.stakers[i]
	if cur.Stake.Lt(v) {
		return nil, nil, insufficient(cur.Stake, v)
	}
	balance := new(uint256.Int).Sub(s.balance, v)
	stake := new(uint256.Int).Sub(cur.Stake, v)
	if stake.IsZero() {
		return s.replace(addr, nil, balance), cur, nil
	}
	return s.replace(addr, &Staker{addr, cur.Delegation, stake}, balance), nil, nil
}

func (s *Staking) CommitIncomingTransaction(t *tx.Transaction, height uint32, timestamp uint64) (Account, []byte, error) {
	if t.IsContractCreation() {
		return nil, nil, ErrInvalidForRecipient
	}
	var data IncomingStakingData
	if err := rlp.DecodeBytes(t.Data, &data); err != nil {
		return nil, nil, ErrInvalidData
	}
	value := amountOf(t.Value)
	switch data.Op {
	case OpStake:
		if value.IsZero() {
			return nil, nil, ErrInvalidData
		}
		next, err := s.addStake(data.Staker, data.Delegation, value)
		if err != nil {
			return nil, nil, err
		}
		return next, nil, nil
	case OpUpdateDelegation:
		if !value.IsZero() {
			return nil, nil, ErrInvalidData
		}
		i, found := s.find(data.Staker)
		if !found {
			return nil, nil, ErrUnknownStaker
		}
		cur := s.stakers[i]
		receipt, err := rlp.EncodeToBytes(cur.Delegation)
		if err != nil {
			return nil, nil, err
		}
		next := s.replace(cur.Address, &Staker{cur.Address, data.Delegation, cur.Stake}, s.balance)
		return next, receipt, nil
	default:
		return nil, nil, ErrInvalidData
	}
}

func (s *Staking) RevertIncomingTransaction(t *tx.Transaction, height uint32, timestamp uint64, receipt []byte) (Account, error) {
	if t.IsContractCreation() {
		return nil, ErrInvalidForRecipient
	}
	var data IncomingStakingData
	if err := rlp.DecodeBytes(t.Data, &data); err != nil {
		return nil, ErrInvalidData
	}
	switch data.Op {
	case OpStake:
		if receipt != nil {
			return nil, ErrInvalidReceipt
		}
		next, _, err := s.subStake(data.Staker, amountOf(t.Value))
		if err != nil {
			return nil, err
		}
		return next, nil
	case OpUpdateDelegation:
		if receipt == nil {
			return nil, ErrMissingReceipt
		}
		var prev thor.Address
		if err := rlp.DecodeBytes(receipt, &prev); err != nil {
			return nil, ErrInvalidReceipt
		}
		i, found := s.find(data.Staker)
		if !found {
			return nil, ErrUnknownStaker
		}
		cur := s.stakers[i]
		return s.replace(cur.Address, &Staker{cur.Address, prev, cur.Stake}, s.balance), nil
	default:
		return nil, ErrInvalidData
	}
}

func (s *Staking) CommitOutgoingTransaction(t *tx.Transaction, height uint32, timestamp uint64) (Account, []byte, error) {
	if t.IsContractCreation() {
		return nil, nil, ErrInvalidForSender
	}
	var data OutgoingStakingData
	if err := rlp.DecodeBytes(t.Data, &data); err != nil {
		return nil, nil, ErrInvalidData
	}
	cost, overflow := t.Cost()
	if overflow {
		return nil, nil, ErrBalanceOverflow
	}
	next, removed, err := s.subStake(data.Staker, cost)
	if err != nil {
		return nil, nil, err
	}
	if removed == nil {
		return next, nil, nil
	}
	receipt, err := rlp.EncodeToBytes(removed.Delegation)
	if err != nil {
		return nil, nil, err
	}
	return next, receipt, nil
}

func (s *Staking) RevertOutgoingTransaction(t *tx.Transaction, height uint32, timestamp uint64, receipt []byte) (Account, error) {
	if t.IsContractCreation() {
		return nil, ErrInvalidForSender
	}
	var data OutgoingStakingData
	if err := rlp.DecodeBytes(t.Data, &data); err != nil {
		return nil, ErrInvalidData
	}
	cost, overflow := t.Cost()
	if overflow {
		return nil, ErrBalanceOverflow
	}
	_, found := s.find(data.Staker)
	if receipt == nil {
		if !found {
			return nil, ErrUnknownStaker
		}
		return s.addStake(data.Staker, thor.Address{}, cost)
	}
	// the staker was drained and removed, recreate it
	if found {
		return nil, ErrInvalidReceipt
	}
	var delegation thor.Address
	if err := rlp.DecodeBytes(receipt, &delegation); err != nil {
		return nil, ErrInvalidReceipt
	}
	return s.addStake(data.Staker, delegation, cost)
}

func (s *Staking) CommitInherent(in *tx.Inherent, height uint32, timestamp uint64) (Account, []byte, error) {
	var data StakingInherentData
	if err := rlp.DecodeBytes(in.Data, &data); err != nil {
		return nil, nil, ErrInvalidData
	}
	switch in.Type {
	case tx.InherentReward:
		if _, found := s.find(data.Staker); !found {
			return nil, nil, ErrUnknownStaker
		}
		next, err := s.addStake(data.Staker, thor.Address{}, in.Amount())
		if err != nil {
			return nil, nil, err
		}
		return next, nil, nil
	case tx.InherentSlash:
		i, found := s.find(data.Staker)
		if !found {
			return nil, nil, ErrUnknownStaker
		}
		cur := s.stakers[i]
		burned := minOf(in.Amount(), cur.Stake)
		next, removed, err := s.subStake(data.Staker, burned)
		if err != nil {
			return nil, nil, err
		}
		receipt, err := rlp.EncodeToBytes(&slashReceipt{
			Burned:     burned,
			Delegation: cur.Delegation,
			Removed:    removed != nil,
		})
		if err != nil {
			return nil, nil, err
		}
		return next, receipt, nil
	default:
		return nil, nil, ErrInvalidInherent
	}
}

func (s *Staking) RevertInherent(in *tx.Inherent, height uint32, timestamp uint64, receipt []byte) (Account, error) {
	var data StakingInherentData
	if err := rlp.DecodeBytes(in.Data, &data); err != nil {
		return nil, ErrInvalidData
	}
	switch in.Type {
	case tx.InherentReward:
		if receipt != nil {
			return nil, ErrInvalidReceipt
		}
		next, _, err := s.subStake(data.Staker, in.Amount())
		if err != nil {
			return nil, err
		}
		return next, nil
	case tx.InherentSlash:
		if receipt == nil {
			return nil, ErrMissingReceipt
		}
		var r slashReceipt
		if err := rlp.DecodeBytes(receipt, &r); err != nil {
			return nil, ErrInvalidReceipt
		}
		burned := amountOf(r.Burned)
		if _, found := s.find(data.Staker); found == r.Removed {
			return nil, ErrInvalidReceipt
		}
		if r.Removed && burned.IsZero() {
			return nil, ErrInvalidReceipt
		}
		if burned.IsZero() {
			return s, nil
		}
		return s.addStake(data.Staker, r.Delegation, burned)
	default:
		return nil, ErrInvalidInherent
	}
}
