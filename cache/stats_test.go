// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStats(t *testing.T) {
	var cs Stats

	changed, hit, miss := cs.Stats()
	assert.False(t, changed, "no lookups keeps the rate at zero")
	assert.Zero(t, hit)
	assert.Zero(t, miss)

	cs.Hit()
	assert.Equal(t, int64(1), cs.Miss())

	changed, hit, miss = cs.Stats()
	assert.True(t, changed)
	assert.Equal(t, int64(1), hit)
	assert.Equal(t, int64(1), miss)

	// same 50% rate
	cs.Hit()
	cs.Miss()
	changed, _, _ = cs.Stats()
	assert.False(t, changed)

	assert.Equal(t, int64(3), cs.Hit())
	changed, hit, miss = cs.Stats()
	assert.True(t, changed)
	assert.Equal(t, int64(3), hit)
	assert.Equal(t, int64(2), miss)
}

func TestHitRate(t *testing.T) {
	for _, c := range []struct {
		hit, miss int64
		want      string
	}{
		{0, 0, "n/a"},
		{1, 0, "1.000"},
		{0, 5, "0.000"},
		{2, 1, "0.667"},
	} {
		assert.Equal(t, c.want, HitRate(c.hit, c.miss))
	}
}
