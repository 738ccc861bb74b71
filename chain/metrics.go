// Copyright (c) 2024 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import "github.com/vechain/thorstate/metrics"

var (
	metricHeadHeight    = metrics.LazyLoadGauge("chain_head_height")
	metricBlockCount    = metrics.LazyLoadCounterVec("chain_block_count", []string{"op", "result"})
	metricBlockDuration = metrics.LazyLoadHistogramVec("chain_block_duration_ms", []string{"op"}, metrics.Bucket10s)
)
