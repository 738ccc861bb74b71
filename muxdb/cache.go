// Copyright (c) 2021 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package muxdb

import (
	"slices"
	"sync/atomic"
	"time"

	"github.com/qianbin/directcache"
	"github.com/vechain/thorstate/cache"
)

// nodeCache caches trie node blobs keyed by node hash.
// Nodes are content addressed, so cached blobs never go stale.
// A nil *nodeCache is valid and caches nothing.
type nodeCache struct {
	nodes       *directcache.Cache
	stats       cache.Stats
	lastLogTime atomic.Int64
}

func newNodeCache(sizeMB int) *nodeCache {
	if sizeMB <= 0 {
		return nil
	}
	c := &nodeCache{
		nodes: directcache.New(sizeMB * 1024 * 1024),
	}
	c.lastLogTime.Store(time.Now().UnixNano())
	return c
}

// Get returns the cached blob of the node, nil if absent.
func (c *nodeCache) Get(hash []byte) []byte {
	if c == nil {
		return nil
	}
	var blob []byte
	if c.nodes.AdvGet(hash, func(val []byte) {
		blob = slices.Clone(val)
	}, false) && len(blob) > 0 {
		if c.stats.Hit()%2000 == 0 {
			c.log()
		}
		return blob
	}
	c.stats.Miss()
	return nil
}

// Add puts the node blob into the cache.
func (c *nodeCache) Add(hash, blob []byte) {
	if c == nil {
		return
	}
	_ = c.nodes.Set(hash, blob)
}

func (c *nodeCache) log() {
	now := time.Now().UnixNano()
	last := c.lastLogTime.Swap(now)

	if now-last > int64(time.Second*20) {
		changed, hit, miss := c.stats.Stats()
		if changed {
			logStats("node cache stats", hit, miss)
		}
		// metrics will reported every 20 seconds
		metricCacheHitMiss().SetWithLabel(hit, map[string]string{"event": "hit"})
		metricCacheHitMiss().SetWithLabel(miss, map[string]string{"event": "miss"})
	} else {
		c.lastLogTime.CompareAndSwap(now, last)
	}
}

func logStats(msg string, hit, miss int64) {
	logger.Info(msg,
		"lookups", hit+miss,
		"hitrate", cache.HitRate(hit, miss),
	)
}
