// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/holiman/uint256"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/thorstate/account"
	"github.com/vechain/thorstate/accounts"
	"github.com/vechain/thorstate/chain"
	"github.com/vechain/thorstate/metrics"
	"github.com/vechain/thorstate/muxdb"
	"github.com/vechain/thorstate/thor"
)

func init() {
	metrics.InitializePrometheusMetrics()
}

var alice = thor.MustParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	db := muxdb.NewMem()
	t.Cleanup(func() { db.Close() })

	accs := accounts.New(db)
	applier := chain.NewApplier(db, accs)
	_, err := applier.Init([]accounts.GenesisAccount{
		{Key: accounts.KeyOf(alice), Account: account.NewBasic(uint256.NewInt(100))},
	}, 1000)
	require.NoError(t, err)

	ts := httptest.NewServer(New(applier, accs, opts))
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

func TestRoutes(t *testing.T) {
	ts := newTestServer(t, Options{AllowedOrigins: "*"})

	_, code := httpGet(t, ts.URL+"/accounts/"+alice.String())
	assert.Equal(t, http.StatusOK, code)
	_, code = httpGet(t, ts.URL+"/accounts/root")
	assert.Equal(t, http.StatusOK, code)
	_, code = httpGet(t, ts.URL+"/blocks/head")
	assert.Equal(t, http.StatusOK, code)
	_, code = httpGet(t, ts.URL+"/nothing")
	assert.Equal(t, http.StatusNotFound, code)

	// metrics route is off unless asked for
	_, code = httpGet(t, ts.URL+"/metrics")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t, Options{AllowedOrigins: "https://Example.com"})

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/blocks/head", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.com")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, "https://example.com", res.Header.Get("Access-Control-Allow-Origin"))
}

func TestMetricsMiddleware(t *testing.T) {
	ts := newTestServer(t, Options{EnableMetrics: true})

	httpGet(t, ts.URL+"/accounts/0x")
	httpGet(t, ts.URL+"/accounts/"+alice.String())

	body, code := httpGet(t, ts.URL+"/metrics")
	require.Equal(t, http.StatusOK, code)

	parser := expfmt.TextParser{}
	families, err := parser.TextToMetricFamilies(bytes.NewReader(body))
	require.NoError(t, err)

	m := families["accountsdb_api_request_count"].GetMetric()
	require.Len(t, m, 2)

	var codes []string
	for _, metric := range m {
		labels := metric.GetLabel()
		require.Len(t, labels, 3)
		assert.Equal(t, "code", labels[0].GetName())
		assert.Equal(t, "method", labels[1].GetName())
		assert.Equal(t, "GET", labels[1].GetValue())
		assert.Equal(t, "name", labels[2].GetName())
		assert.Equal(t, "accounts_get_account", labels[2].GetValue())
		assert.Equal(t, float64(1), metric.GetCounter().GetValue())
		codes = append(codes, labels[0].GetValue())
	}
	assert.ElementsMatch(t, []string{"200", "400"}, codes)

	assert.NotNil(t, families["accountsdb_api_duration_ms"])
}
