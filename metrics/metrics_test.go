// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T) map[string]*dto.MetricFamily {
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	out := make(map[string]*dto.MetricFamily)
	for _, mf := range families {
		out[mf.GetName()] = mf
	}
	return out
}

func TestNoopByDefault(t *testing.T) {
	noop := defaultNoopMetrics()
	assert.Nil(t, noop.GetOrCreateHandler())

	// all meters are safe to call
	noop.GetOrCreateCountVecMeter("x", nil).AddWithLabel(1, nil)
	noop.GetOrCreateGaugeVecMeter("x", nil).SetWithLabel(1, nil)
	noop.GetOrCreateHistogramMeter("x", nil).Observe(1)
}

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()
	assert.True(t, IsEnabled())
	assert.NotNil(t, HTTPHandler())

	lazy := LazyLoadCounterVec("test_block_count", []string{"op"})
	lazy().AddWithLabel(2, map[string]string{"op": "commit"})
	lazy().AddWithLabel(1, map[string]string{"op": "revert"})
	assert.Same(t, lazy(), lazy())

	Gauge("test_head").Set(10)
	Gauge("test_head").Add(-3)

	gaugeVec := GaugeVec("test_gauge_vec", []string{"kind"})
	gaugeVec.SetWithLabel(5, map[string]string{"kind": "a"})
	gaugeVec.AddWithLabel(2, map[string]string{"kind": "a"})

	hist := Histogram("test_duration", BucketBlock)
	hist.Observe(3)
	hist.Observe(7)

	families := gather(t)

	var total float64
	for _, m := range families["accountsdb_test_block_count"].Metric {
		total += m.GetCounter().GetValue()
	}
	assert.Equal(t, float64(3), total)
	assert.Equal(t, float64(7), families["accountsdb_test_head"].Metric[0].GetGauge().GetValue())
	assert.Equal(t, float64(7), families["accountsdb_test_gauge_vec"].Metric[0].GetGauge().GetValue())
	assert.Equal(t, float64(10), families["accountsdb_test_duration"].Metric[0].GetHistogram().GetSampleSum())
}
