// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package account

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

var (
	ErrMissingReceipt         = errors.New("missing receipt")
	ErrInvalidReceipt         = errors.New("invalid receipt")
	ErrBalanceOverflow        = errors.New("balance overflow")
	ErrInvalidForRecipient    = errors.New("invalid for recipient")
	ErrInvalidForSender       = errors.New("invalid for sender")
	ErrInvalidInherent        = errors.New("invalid inherent")
	ErrInvalidContractType    = errors.New("invalid contract type")
	ErrInvalidVestingSchedule = errors.New("invalid vesting schedule")
	ErrUnknownStaker          = errors.New("unknown staker")
	ErrInvalidData            = errors.New("invalid data")
)

// TypeMismatchError is returned when the type an operation claims for an
// account differs from the type found in state.
type TypeMismatchError struct {
	Expected Type
	Got      Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("account type mismatch: expected %v, got %v", e.Expected, e.Got)
}

// InsufficientFundsError is returned when a debit exceeds what is available.
type InsufficientFundsError struct {
	Balance *uint256.Int
	Needed  *uint256.Int
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: balance %v, needed %v", e.Balance, e.Needed)
}

// IsTypeMismatch returns whether err is caused by a type mismatch.
func IsTypeMismatch(err error) bool {
	var e *TypeMismatchError
	return errors.As(err, &e)
}

// IsInsufficientFunds returns whether err is caused by insufficient funds.
func IsInsufficientFunds(err error) bool {
	var e *InsufficientFundsError
	return errors.As(err, &e)
}

func insufficient(balance, needed *uint256.Int) error {
	return &InsufficientFundsError{Balance: balance.Clone(), Needed: needed.Clone()}
}
