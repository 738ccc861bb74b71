// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blocks_test

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
	"github.com/vechain/thorstate/api/blocks"
	"github.com/vechain/thorstate/block"
	"github.com/vechain/thorstate/chain"
	"github.com/vechain/thorstate/muxdb"
	"github.com/vechain/thorstate/thor"
	"github.com/vechain/thorstate/tx"
)

var (
	alice = thor.MustParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	bob   = thor.MustParseAddress("0xd3ae78222beadb038203be21ed5ce7c9b1bff602")
)

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func TestBlocks(t *testing.T) {
	db := muxdb.NewMem()
	defer db.Close()

	applier := chain.NewApplier(db, accounts.New(db))

	router := mux.NewRouter()
	blocks.New(applier).Mount(router, "/blocks")
	ts := httptest.NewServer(router)
	defer ts.Close()

	_, code := httpGet(t, ts.URL+"/blocks/head")
	assert.Equal(t, http.StatusServiceUnavailable, code)

	genesis, err := applier.Init([]accounts.GenesisAccount{
		{Key: accounts.KeyOf(alice), Account: account.NewBasic(uint256.NewInt(100))},
	}, 1000)
	require.NoError(t, err)

	blk := new(block.Builder).
		ParentID(genesis.ID).
		Timestamp(1010).
		Transaction(&tx.Transaction{Sender: alice, Recipient: bob, Value: uint256.NewInt(40)}).
		Inherent(&tx.Inherent{Type: tx.InherentSlash, Target: alice, Value: uint256.NewInt(10)}).
		Build()
	head, receipts, err := applier.Apply(blk)
	require.NoError(t, err)

	t.Run("head", func(t *testing.T) {
		body, code := httpGet(t, ts.URL+"/blocks/head")
		require.Equal(t, http.StatusOK, code, string(body))

		var h blocks.Head
		require.NoError(t, json.Unmarshal(body, &h))
		assert.Equal(t, head.ID, h.ID)
		assert.Equal(t, genesis.ID, h.ParentID)
		assert.Equal(t, uint32(1), h.Height)
		assert.Equal(t, head.StateRoot, h.StateRoot)
	})

	t.Run("block", func(t *testing.T) {
		body, code := httpGet(t, ts.URL+"/blocks/"+blk.ID().String())
		require.Equal(t, http.StatusOK, code, string(body))

		var got block.Block
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, blk.ID(), got.ID())
		assert.Len(t, got.Transactions(), 1)
		assert.Len(t, got.Inherents(), 1)
	})

	t.Run("receipts", func(t *testing.T) {
		body, code := httpGet(t, ts.URL+"/blocks/"+blk.ID().String()+"/receipts")
		require.Equal(t, http.StatusOK, code, string(body))

		var got blocks.Receipts
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, blk.ID(), got.BlockID)
		assert.Equal(t, receipts.RootHash(), got.Root)
		require.Len(t, got.Receipts, len(receipts))
		assert.Equal(t, "inherent", got.Receipts[0].Kind)
		assert.Equal(t, []byte(receipts[0].Data), []byte(got.Receipts[0].Data))
	})

	t.Run("errors", func(t *testing.T) {
		_, code := httpGet(t, ts.URL+"/blocks/0x1234")
		assert.Equal(t, http.StatusBadRequest, code)

		missing := thor.Blake2b([]byte("missing"))
		_, code = httpGet(t, ts.URL+"/blocks/"+missing.String())
		assert.Equal(t, http.StatusNotFound, code)
		_, code = httpGet(t, ts.URL+"/blocks/"+missing.String()+"/receipts")
		assert.Equal(t, http.StatusNotFound, code)
	})
}
