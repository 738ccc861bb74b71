// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"time"

	"github.com/vechain/thorstate/metrics"
)

var (
	metricBlockCount    = metrics.LazyLoadCounterVec("accounts_block_count", []string{"op", "result"})
	metricBlockDuration = metrics.LazyLoadHistogramVec("accounts_block_duration_ms", []string{"op"}, metrics.BucketBlock)
	metricReceiptCount  = metrics.LazyLoadCounter("accounts_receipt_count")
)

func observe(op string, start time.Time, receipts int, err error) {
	result := "ok"
	if err != nil {
		result = "failed"
	}
	metricBlockCount().AddWithLabel(1, map[string]string{"op": op, "result": result})
	metricBlockDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"op": op})
	if err == nil && op == "commit" {
		metricReceiptCount().Add(int64(receipts))
	}
}
