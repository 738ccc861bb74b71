// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"fmt"
	"sync/atomic"
)

// Stats counts the hits and misses of a cache.
type Stats struct {
	hit, miss atomic.Int64
	permille  atomic.Int32 // hit rate seen by the previous Stats call
}

// Hit records a hit and returns the hits so far.
func (cs *Stats) Hit() int64 { return cs.hit.Add(1) }

// Miss records a miss and returns the misses so far.
func (cs *Stats) Miss() int64 { return cs.miss.Add(1) }

// Stats returns the counters, and whether the hit rate in permille
// moved since the previous call.
func (cs *Stats) Stats() (changed bool, hit, miss int64) {
	hit = cs.hit.Load()
	miss = cs.miss.Load()

	var permille int32
	if lookups := hit + miss; lookups > 0 {
		permille = int32(hit * 1000 / lookups)
	}
	return cs.permille.Swap(permille) != permille, hit, miss
}

// HitRate formats hit/(hit+miss) for logging, "n/a" when nothing was looked up.
func HitRate(hit, miss int64) string {
	lookups := hit + miss
	if lookups == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", float64(hit)/float64(lookups))
}
