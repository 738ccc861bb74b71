// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package account

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/vechain/thorstate/thor"
)

type basicBody struct {
	Balance *uint256.Int
}

type vestingBody struct {
	Balance     *uint256.Int
	Owner       thor.Address
	StartTime   uint64
	TimeStep    uint64
	StepAmount  *uint256.Int
	TotalAmount *uint256.Int
}

type stakingBody struct {
	Balance *uint256.Int
	Stakers []*Staker
}

// Encode serializes acc as one type byte followed by the RLP body.
// The encoding is canonical.
func Encode(acc Account) ([]byte, error) {
	var body any
	switch a := acc.(type) {
	case *Basic:
		body = &basicBody{a.balance}
	case *Vesting:
		body = &vestingBody{
			Balance:     a.balance,
			Owner:       a.schedule.Owner,
			StartTime:   a.schedule.StartTime,
			TimeStep:    a.schedule.TimeStep,
			StepAmount:  a.schedule.StepAmount,
			TotalAmount: a.schedule.TotalAmount,
		}
	case *Staking:
		body = &stakingBody{a.balance, a.stakers}
	default:
		return nil, errors.Errorf("unsupported account %T", acc)
	}
	enc, err := rlp.EncodeToBytes(body)
	if err != nil {
		return nil, errors.Wrap(err, "encode account")
	}
	return append([]byte{byte(acc.Type())}, enc...), nil
}

// Decode parses data produced by Encode. Empty data decodes to an empty Basic account.
func Decode(data []byte) (Account, error) {
	if len(data) == 0 {
		return NewBasic(nil), nil
	}
	typ, body := Type(data[0]), data[1:]
	switch typ {
	case TypeBasic:
		var b basicBody
		if err := rlp.DecodeBytes(body, &b); err != nil {
			return nil, errors.Wrap(err, "decode basic account")
		}
		return &Basic{clone(b.Balance)}, nil
	case TypeVesting:
		var b vestingBody
		if err := rlp.DecodeBytes(body, &b); err != nil {
			return nil, errors.Wrap(err, "decode vesting account")
		}
		return &Vesting{
			balance: clone(b.Balance),
			schedule: VestingSchedule{
				Owner:       b.Owner,
				StartTime:   b.StartTime,
				TimeStep:    b.TimeStep,
				StepAmount:  clone(b.StepAmount),
				TotalAmount: clone(b.TotalAmount),
			},
		}, nil
	case TypeStaking:
		var b stakingBody
		if err := rlp.DecodeBytes(body, &b); err != nil {
			return nil, errors.Wrap(err, "decode staking account")
		}
		for i, st := range b.Stakers {
			st.Stake = clone(st.Stake)
			if i > 0 && b.Stakers[i-1].Address.Compare(st.Address) >= 0 {
				return nil, errors.New("decode staking account: stakers not sorted")
			}
		}
		return &Staking{clone(b.Balance), b.Stakers}, nil
	default:
		return nil, errors.Errorf("unknown account type %v", typ)
	}
}

// MustEncode is like Encode but panics on error.
func MustEncode(acc Account) []byte {
	data, err := Encode(acc)
	if err != nil {
		panic(err)
	}
	return data
}
