// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/thorstate/account"
	"github.com/vechain/thorstate/accounts"
	"github.com/vechain/thorstate/thor"
)

const yamlGenesis = `
launchTime: 1526400000
accounts:
  - address: "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed"
    balance: "1000"
  - address: "0xd3ae78222beadb038203be21ed5ce7c9b1bff602"
    type: vesting
    balance: "0x3e8"
    vesting:
      owner: "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed"
      startTime: 100
      timeStep: 10
      stepAmount: "100"
      totalAmount: "1000"
  - address: "0x0000000000000000000000000000005374616b65"
    type: staking
    stakers:
      - address: "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed"
        delegation: "0xd3ae78222beadb038203be21ed5ce7c9b1bff602"
        stake: "500"
`

const jsonGenesis = `{
	"launchTime": 1526400000,
	"accounts": [
		{"address": "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", "balance": "1000"},
		{
			"address": "0xd3ae78222beadb038203be21ed5ce7c9b1bff602",
			"type": "vesting",
			"balance": "0x3e8",
			"vesting": {"owner": "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", "startTime": 100, "timeStep": 10, "stepAmount": "100", "totalAmount": "1000"}
		},
		{
			"address": "0x0000000000000000000000000000005374616b65",
			"type": "staking",
			"stakers": [{"address": "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", "delegation": "0xd3ae78222beadb038203be21ed5ce7c9b1bff602", "stake": "500"}]
		}
	]
}`

func checkGenesis(t *testing.T, gen *CustomGenesis) {
	assert.Equal(t, uint64(1526400000), gen.LaunchTime)

	accs, err := gen.Build()
	require.NoError(t, err)
	require.Len(t, accs, 3)

	assert.Equal(t, accounts.KeyOf(thor.MustParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")), accs[0].Key)
	assert.Equal(t, account.TypeBasic, accs[0].Account.Type())
	assert.Equal(t, uint64(1000), accs[0].Account.Balance().Uint64())

	vesting, ok := accs[1].Account.(*account.Vesting)
	require.True(t, ok)
	assert.Equal(t, uint64(1000), vesting.Balance().Uint64())
	assert.Equal(t, uint64(10), vesting.Schedule().TimeStep)

	staking, ok := accs[2].Account.(*account.Staking)
	require.True(t, ok)
	assert.Equal(t, uint64(500), staking.Balance().Uint64())
	assert.Len(t, staking.Stakers(), 1)
}

func TestParse(t *testing.T) {
	gen, err := ParseYAML([]byte(yamlGenesis))
	require.NoError(t, err)
	checkGenesis(t, gen)

	gen, err = ParseJSON([]byte(jsonGenesis))
	require.NoError(t, err)
	checkGenesis(t, gen)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "genesis.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlGenesis), 0o600))
	gen, err := Load(yamlPath)
	require.NoError(t, err)
	checkGenesis(t, gen)

	jsonPath := filepath.Join(dir, "genesis.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(jsonGenesis), 0o600))
	gen, err = Load(jsonPath)
	require.NoError(t, err)
	checkGenesis(t, gen)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestBuildErrors(t *testing.T) {
	for name, input := range map[string]string{
		"duplicated":      `{"accounts":[{"address":"0x7567d83b7b8d80addcb281a71d54fc7b3364ffed","balance":"1"},{"address":"0x7567d83b7b8d80addcb281a71d54fc7b3364ffed","balance":"2"}]}`,
		"zero balance":    `{"accounts":[{"address":"0x7567d83b7b8d80addcb281a71d54fc7b3364ffed","balance":"0"}]}`,
		"missing balance": `{"accounts":[{"address":"0x7567d83b7b8d80addcb281a71d54fc7b3364ffed"}]}`,
		"no schedule":     `{"accounts":[{"address":"0x7567d83b7b8d80addcb281a71d54fc7b3364ffed","type":"vesting","balance":"1"}]}`,
		"underfunded":     `{"accounts":[{"address":"0x7567d83b7b8d80addcb281a71d54fc7b3364ffed","type":"vesting","balance":"1","vesting":{"totalAmount":"2"}}]}`,
		"stray schedule":  `{"accounts":[{"address":"0x7567d83b7b8d80addcb281a71d54fc7b3364ffed","balance":"1","vesting":{}}]}`,
		"stake mismatch":  `{"accounts":[{"address":"0x7567d83b7b8d80addcb281a71d54fc7b3364ffed","type":"staking","balance":"9","stakers":[{"address":"0xd3ae78222beadb038203be21ed5ce7c9b1bff602","stake":"1"}]}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			gen, err := ParseJSON([]byte(input))
			require.NoError(t, err)
			_, err = gen.Build()
			assert.Error(t, err)
		})
	}

	_, err := ParseJSON([]byte(`{"accounts":[{"address":"0x7567d83b7b8d80addcb281a71d54fc7b3364ffed","type":"wallet"}]}`))
	assert.Error(t, err)
}

func TestDevnet(t *testing.T) {
	devs := DevAccounts()
	require.Len(t, devs, 10)
	assert.Equal(t, thor.MustParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed"), devs[0].Address)
	for _, dev := range devs {
		assert.Equal(t, thor.Address(crypto.PubkeyToAddress(dev.PrivateKey.PublicKey)), dev.Address)
	}

	accs, err := NewDevnet().Build()
	require.NoError(t, err)
	assert.Len(t, accs, 10)
	for _, a := range accs {
		assert.Equal(t, account.TypeBasic, a.Account.Type())
	}
}
