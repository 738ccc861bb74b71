// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/thorstate/account"
	"github.com/vechain/thorstate/accounts"
	apiaccounts "github.com/vechain/thorstate/api/accounts"
	"github.com/vechain/thorstate/chain"
	"github.com/vechain/thorstate/muxdb"
	"github.com/vechain/thorstate/thor"
)

var (
	alice   = thor.MustParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	bob     = thor.MustParseAddress("0xd3ae78222beadb038203be21ed5ce7c9b1bff602")
	vesting = thor.MustParseAddress("0x0000000000000000000000000000000000000101")
	staking = thor.MustParseAddress("0x0000000000000000000000000000000000000202")
)

func newServer(t *testing.T, init bool) *httptest.Server {
	db := muxdb.NewMem()
	t.Cleanup(func() { db.Close() })

	accs := accounts.New(db)
	applier := chain.NewApplier(db, accs)

	if init {
		vest, err := account.NewVesting(uint256.NewInt(1000), account.VestingSchedule{
			Owner:       alice,
			StartTime:   1000,
			TimeStep:    10,
			StepAmount:  uint256.NewInt(100),
			TotalAmount: uint256.NewInt(1000),
		})
		require.NoError(t, err)
		stake, err := account.NewStaking([]account.Staker{
			{Address: bob, Delegation: alice, Stake: uint256.NewInt(30)},
			{Address: alice, Delegation: bob, Stake: uint256.NewInt(20)},
		})
		require.NoError(t, err)

		_, err = applier.Init([]accounts.GenesisAccount{
			{Key: accounts.KeyOf(alice), Account: account.NewBasic(uint256.NewInt(100))},
			{Key: accounts.KeyOf(vesting), Account: vest},
			{Key: accounts.KeyOf(staking), Account: stake},
		}, 1025)
		require.NoError(t, err)
	}

	router := mux.NewRouter()
	apiaccounts.New(applier, accs).Mount(router, "/accounts")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func getAccount(t *testing.T, ts *httptest.Server, addr thor.Address) *apiaccounts.Account {
	body, code := httpGet(t, ts.URL+"/accounts/"+addr.String())
	require.Equal(t, http.StatusOK, code, string(body))

	var acc apiaccounts.Account
	require.NoError(t, json.Unmarshal(body, &acc))
	return &acc
}

func TestGetBasic(t *testing.T) {
	ts := newServer(t, true)

	acc := getAccount(t, ts, alice)
	assert.Equal(t, alice, acc.Address)
	assert.Equal(t, account.TypeBasic, acc.Type)
	assert.Equal(t, "100", acc.Balance)
	assert.Nil(t, acc.Vesting)
	assert.Empty(t, acc.Stakers)
	assert.Equal(t, uint32(0), acc.Head.Height)

	acc = getAccount(t, ts, bob)
	assert.Equal(t, account.TypeBasic, acc.Type)
	assert.Equal(t, "0", acc.Balance)
}

func TestGetVesting(t *testing.T) {
	ts := newServer(t, true)

	acc := getAccount(t, ts, vesting)
	assert.Equal(t, account.TypeVesting, acc.Type)
	assert.Equal(t, "1000", acc.Balance)
	require.NotNil(t, acc.Vesting)
	assert.Equal(t, alice, acc.Vesting.Owner)
	assert.Equal(t, "100", acc.Vesting.StepAmount)
	// two steps released at 1025
	assert.Equal(t, "800", acc.Vesting.Locked)
}

func TestGetStaking(t *testing.T) {
	ts := newServer(t, true)

	acc := getAccount(t, ts, staking)
	assert.Equal(t, account.TypeStaking, acc.Type)
	assert.Equal(t, "50", acc.Balance)
	assert.Equal(t, []apiaccounts.Staker{
		{Address: alice, Delegation: bob, Stake: "20"},
		{Address: bob, Delegation: alice, Stake: "30"},
	}, acc.Stakers)
}

func TestGetRoot(t *testing.T) {
	ts := newServer(t, true)

	body, code := httpGet(t, ts.URL+"/accounts/root")
	require.Equal(t, http.StatusOK, code, string(body))

	var root apiaccounts.Root
	require.NoError(t, json.Unmarshal(body, &root))
	assert.False(t, root.Root.IsZero())
	assert.Equal(t, root.Head.StateRoot, root.Root)
}

func TestErrors(t *testing.T) {
	ts := newServer(t, true)

	_, code := httpGet(t, ts.URL+"/accounts/0x")
	assert.Equal(t, http.StatusBadRequest, code)

	_, code = httpGet(t, ts.URL+"/accounts/0xzz67d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.Equal(t, http.StatusBadRequest, code)

	uninit := newServer(t, false)
	_, code = httpGet(t, uninit.URL+"/accounts/"+alice.String())
	assert.Equal(t, http.StatusServiceUnavailable, code)
	_, code = httpGet(t, uninit.URL+"/accounts/root")
	assert.Equal(t, http.StatusServiceUnavailable, code)
}
