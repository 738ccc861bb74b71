// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import (
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// KeyNibbles is a trie key expanded into nibbles, one nibble per byte.
type KeyNibbles []byte

// KeyNibblesFromBytes expands key bytes into nibbles.
func KeyNibblesFromBytes(key []byte) KeyNibbles {
	hex := keybytesToHex(key)
	return KeyNibbles(hex[:len(hex)-1])
}

// ParseKeyNibbles parses the hex digit form produced by String.
func ParseKeyNibbles(s string) (KeyNibbles, error) {
	k := make(KeyNibbles, 0, len(s))
	for _, c := range strings.ToLower(s) {
		switch {
		case c >= '0' && c <= '9':
			k = append(k, byte(c-'0'))
		case c >= 'a' && c <= 'f':
			k = append(k, byte(c-'a'+10))
		default:
			return nil, errors.Errorf("invalid nibble %q", c)
		}
	}
	if len(k)%2 != 0 {
		return nil, errors.New("odd number of nibbles")
	}
	return k, nil
}

// Bytes packs the nibbles back into key bytes.
// Keys built from bytes always have an even number of nibbles.
func (k KeyNibbles) Bytes() []byte {
	return hexToKeybytes(k)
}

// Len returns the number of nibbles.
func (k KeyNibbles) Len() int { return len(k) }

// Compare orders keys nibble-wise.
func (k KeyNibbles) Compare(other KeyNibbles) int {
	return bytes.Compare(k, other)
}

// String returns one hex digit per nibble.
func (k KeyNibbles) String() string {
	if len(k)%2 == 0 {
		return hex.EncodeToString(k.Bytes())
	}
	var sb strings.Builder
	for _, n := range k {
		sb.WriteByte("0123456789abcdef"[n&0xf])
	}
	return sb.String()
}
