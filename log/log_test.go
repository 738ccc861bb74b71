// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stringer struct{}

func (stringer) String() string { return "0xabc" }

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestWithContextFollowsDefault(t *testing.T) {
	logger := WithContext("pkg", "test")

	var buf bytes.Buffer
	SetDefault(JSONHandler(&buf, LevelDebug))
	t.Cleanup(func() { SetDefault(JSONHandler(&bytes.Buffer{}, LevelInfo)) })

	logger.Debug("applied", "height", 1, "balance", uint256.NewInt(42), "root", stringer{})
	logger.Trace("dropped")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "applied", lines[0]["msg"])
	assert.Equal(t, "test", lines[0]["pkg"])
	assert.Equal(t, "42", lines[0]["balance"])
	assert.Equal(t, "0xabc", lines[0]["root"])

	assert.True(t, logger.Enabled(LevelDebug))
	assert.False(t, logger.Enabled(LevelTrace))
}

func TestNewLoggerCarriesContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(JSONHandler(&buf, LevelInfo)).New("module", "chain")

	logger.Info("head", "height", 7)
	logger.Debug("hidden")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "chain", lines[0]["module"])
	assert.Equal(t, float64(7), lines[0]["height"])
}

func TestLogfmtHandler(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(LogfmtHandler(&buf, LevelInfo)).Warn("slow", "ms", 12)

	assert.Contains(t, buf.String(), "msg=slow")
	assert.Contains(t, buf.String(), "ms=12")
}

func TestFromLegacyLevel(t *testing.T) {
	assert.Equal(t, LevelInfo, FromLegacyLevel(LegacyLevelInfo))
	assert.Equal(t, LevelCrit, FromLegacyLevel(LegacyLevelCrit))
	assert.Equal(t, LevelTrace, FromLegacyLevel(LegacyLevelTrace))
}
