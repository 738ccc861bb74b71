// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"github.com/vechain/thorstate/account"
	"github.com/vechain/thorstate/chain"
	"github.com/vechain/thorstate/thor"
)

// Vesting is the schedule of a vesting account. Amounts are decimal strings.
type Vesting struct {
	Owner       thor.Address `json:"owner"`
	StartTime   uint64       `json:"startTime"`
	TimeStep    uint64       `json:"timeStep"`
	StepAmount  string       `json:"stepAmount"`
	TotalAmount string       `json:"totalAmount"`
	Locked      string       `json:"locked"`
}

// Staker is one entry of a staking account.
type Staker struct {
	Address    thor.Address `json:"address"`
	Delegation thor.Address `json:"delegation"`
	Stake      string       `json:"stake"`
}

// Account is the view of an account at the head.
type Account struct {
	Address thor.Address     `json:"address"`
	Type    thor.AccountType `json:"type"`
	Balance string           `json:"balance"`
	Vesting *Vesting         `json:"vesting,omitempty"`
	Stakers []Staker         `json:"stakers,omitempty"`
	Head    *Head            `json:"head"`
}

// Head locates the state the account was read from.
type Head struct {
	ID        thor.Bytes32 `json:"id"`
	Height    uint32       `json:"height"`
	Timestamp uint64       `json:"timestamp"`
	StateRoot thor.Bytes32 `json:"stateRoot"`
}

// Root is the accounts root hash of the committed state.
type Root struct {
	Root thor.Bytes32 `json:"root"`
	Head *Head        `json:"head"`
}

// ConvertHead builds the view of a chain head.
func ConvertHead(h *chain.Head) *Head {
	return &Head{
		ID:        h.ID,
		Height:    h.Height,
		Timestamp: h.Timestamp,
		StateRoot: h.StateRoot,
	}
}

// ConvertAccount builds the view of acc read at head.
func ConvertAccount(addr thor.Address, acc account.Account, head *Head) *Account {
	out := &Account{
		Address: addr,
		Type:    acc.Type(),
		Balance: acc.Balance().Dec(),
		Head:    head,
	}
	switch v := acc.(type) {
	case *account.Vesting:
		s := v.Schedule()
		out.Vesting = &Vesting{
			Owner:       s.Owner,
			StartTime:   s.StartTime,
			TimeStep:    s.TimeStep,
			StepAmount:  s.StepAmount.Dec(),
			TotalAmount: s.TotalAmount.Dec(),
			Locked:      s.Locked(head.Timestamp).Dec(),
		}
	case *account.Staking:
		for _, st := range v.Stakers() {
			out.Stakers = append(out.Stakers, Staker{st.Address, st.Delegation, st.Stake.Dec()})
		}
	}
	return out
}
