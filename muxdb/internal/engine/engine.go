// Copyright (c) 2022 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine

import (
	"io"

	"github.com/vechain/thorstate/kv"
)

// Engine defines the interface of K-V engine.
type Engine interface {
	kv.Store
	io.Closer

	// Transaction opens the single read-write transaction. It blocks while
	// another transaction is in flight.
	Transaction() (Transaction, error)
}

// Transaction is an atomic unit of writes with read-your-writes semantics.
// Writes are invisible to other readers until Commit.
type Transaction interface {
	kv.GetPutter

	Commit() error
	// Discard drops all writes. It's a no-op after Commit or Discard.
	Discard()
}
