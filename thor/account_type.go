// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"fmt"

	"github.com/pkg/errors"
)

// AccountType selects the variant of an account.
type AccountType uint8

const (
	AccountBasic AccountType = iota
	AccountVesting
	AccountStaking
)

var accountTypeNames = [...]string{
	AccountBasic:   "basic",
	AccountVesting: "vesting",
	AccountStaking: "staking",
}

// IsValid returns whether t names a known account variant.
func (t AccountType) IsValid() bool {
	return int(t) < len(accountTypeNames)
}

func (t AccountType) String() string {
	if t.IsValid() {
		return accountTypeNames[t]
	}
	return fmt.Sprintf("unknown(%d)", uint8(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t AccountType) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, errors.Errorf("invalid account type %d", uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *AccountType) UnmarshalText(text []byte) error {
	parsed, err := ParseAccountType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseAccountType converts a variant name into AccountType.
func ParseAccountType(s string) (AccountType, error) {
	for i, name := range accountTypeNames {
		if name == s {
			return AccountType(i), nil
		}
	}
	return 0, errors.Errorf("unknown account type %q", s)
}
