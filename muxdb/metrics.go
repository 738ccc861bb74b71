// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package muxdb

import (
	"github.com/vechain/thorstate/metrics"
)

var (
	metricCacheHitMiss   = metrics.LazyLoadGaugeVec("muxdb_node_cache_hit_miss_count", []string{"event"})
	metricTxnCount       = metrics.LazyLoadCounterVec("muxdb_txn_count", []string{"mode", "result"})
	metricCommittedNodes = metrics.LazyLoadCounter("muxdb_committed_node_count")
)
