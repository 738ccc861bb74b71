// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis describes the initial accounts of a database.
package genesis

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/vechain/thorstate/account"
	"github.com/vechain/thorstate/accounts"
	"github.com/vechain/thorstate/thor"
	"gopkg.in/yaml.v3"
)

// CustomGenesis is user customized genesis.
type CustomGenesis struct {
	LaunchTime uint64    `json:"launchTime" yaml:"launchTime"`
	Accounts   []Account `json:"accounts" yaml:"accounts"`
}

// Account is one genesis account. Type defaults to basic.
type Account struct {
	Address thor.Address     `json:"address" yaml:"address"`
	Type    thor.AccountType `json:"type,omitempty" yaml:"type,omitempty"`
	Balance *uint256.Int     `json:"balance,omitempty" yaml:"balance,omitempty"`
	Vesting *Vesting         `json:"vesting,omitempty" yaml:"vesting,omitempty"`
	Stakers []Staker         `json:"stakers,omitempty" yaml:"stakers,omitempty"`
}

// Vesting is the schedule of a vesting account.
type Vesting struct {
	Owner       thor.Address `json:"owner" yaml:"owner"`
	StartTime   uint64       `json:"startTime" yaml:"startTime"`
	TimeStep    uint64       `json:"timeStep" yaml:"timeStep"`
	StepAmount  *uint256.Int `json:"stepAmount" yaml:"stepAmount"`
	TotalAmount *uint256.Int `json:"totalAmount" yaml:"totalAmount"`
}

// Staker is one staker of the staking account.
type Staker struct {
	Address    thor.Address `json:"address" yaml:"address"`
	Delegation thor.Address `json:"delegation" yaml:"delegation"`
	Stake      *uint256.Int `json:"stake" yaml:"stake"`
}

// Load reads a genesis file. Files ending with .yaml or .yml are parsed as YAML, others as JSON.
func Load(path string) (*CustomGenesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// ParseJSON decodes a JSON genesis.
func ParseJSON(data []byte) (*CustomGenesis, error) {
	var gen CustomGenesis
	if err := json.Unmarshal(data, &gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	return &gen, nil
}

// ParseYAML decodes a YAML genesis.
func ParseYAML(data []byte) (*CustomGenesis, error) {
	var gen CustomGenesis
	if err := yaml.Unmarshal(data, &gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	return &gen, nil
}

// Build validates the genesis and returns its accounts in file order.
func (gen *CustomGenesis) Build() ([]accounts.GenesisAccount, error) {
	seen := make(map[thor.Address]bool, len(gen.Accounts))
	out := make([]accounts.GenesisAccount, 0, len(gen.Accounts))

	for i := range gen.Accounts {
		a := &gen.Accounts[i]
		if seen[a.Address] {
			return nil, errors.Errorf("%v: duplicated account", a.Address)
		}
		seen[a.Address] = true

		acc, err := a.build()
		if err != nil {
			return nil, errors.WithMessagef(err, "%v", a.Address)
		}
		out = append(out, accounts.GenesisAccount{Key: accounts.KeyOf(a.Address), Account: acc})
	}
	return out, nil
}

func (a *Account) build() (account.Account, error) {
	if a.Type != account.TypeVesting && a.Vesting != nil {
		return nil, errors.New("vesting schedule set on non-vesting account")
	}
	if a.Type != account.TypeStaking && len(a.Stakers) > 0 {
		return nil, errors.New("stakers set on non-staking account")
	}

	switch a.Type {
	case account.TypeBasic:
		if a.Balance == nil || a.Balance.IsZero() {
			return nil, errors.New("balance must be a non-zero integer")
		}
		return account.NewBasic(a.Balance), nil
	case account.TypeVesting:
		if a.Vesting == nil {
			return nil, errors.New("vesting schedule must be set")
		}
		return account.NewVesting(a.Balance, account.VestingSchedule{
			Owner:       a.Vesting.Owner,
			StartTime:   a.Vesting.StartTime,
			TimeStep:    a.Vesting.TimeStep,
			StepAmount:  a.Vesting.StepAmount,
			TotalAmount: a.Vesting.TotalAmount,
		})
	case account.TypeStaking:
		stakers := make([]account.Staker, 0, len(a.Stakers))
		for _, s := range a.Stakers {
			stakers = append(stakers, account.Staker{Address: s.Address, Delegation: s.Delegation, Stake: s.Stake})
		}
		staking, err := account.NewStaking(stakers)
		if err != nil {
			return nil, err
		}
		if a.Balance != nil && !a.Balance.Eq(staking.Balance()) {
			return nil, errors.Errorf("balance %v differs from total stake %v", a.Balance, staking.Balance())
		}
		return staking, nil
	default:
		return nil, errors.Errorf("unsupported account type %v", a.Type)
	}
}
