// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import (
	"github.com/qianbin/drlp"
	"github.com/vechain/thorstate/thor"
)

// see "github.com/ethereum/go-ethereum/types/derive_sha.go"

// DerivableList is an ordered list whose items can be committed to by DeriveRoot.
type DerivableList interface {
	Len() int
	GetRlp(i int) []byte
}

// DeriveRoot computes the root of a trie keyed by the RLP encoded item index.
func DeriveRoot(list DerivableList) thor.Bytes32 {
	var (
		trie Trie
		key  []byte
	)

	for i := 0; i < list.Len(); i++ {
		key = drlp.AppendUint(key[:0], uint64(i))
		// the in-memory trie never resolves nodes, so Update can't fail
		_ = trie.Update(key, list.GetRlp(i))
	}

	return trie.Hash()
}
