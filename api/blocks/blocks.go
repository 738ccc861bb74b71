// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blocks

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/vechain/thorstate/api/utils"
	"github.com/vechain/thorstate/chain"
	"github.com/vechain/thorstate/thor"
)

type Blocks struct {
	applier *chain.Applier
}

func New(applier *chain.Applier) *Blocks {
	return &Blocks{applier}
}

func (b *Blocks) handleGetHead(w http.ResponseWriter, _ *http.Request) error {
	head, err := b.applier.Head()
	if err != nil {
		if errors.Is(err, chain.ErrNotInitialized) {
			return utils.HTTPError(err, http.StatusServiceUnavailable)
		}
		return err
	}
	return utils.WriteJSON(w, ConvertHead(head))
}

func (b *Blocks) parseID(req *http.Request) (thor.Bytes32, error) {
	id, err := thor.ParseBytes32(mux.Vars(req)["id"])
	if err != nil {
		return thor.Bytes32{}, utils.BadRequest(errors.WithMessage(err, "id"))
	}
	return id, nil
}

func (b *Blocks) handleGetBlock(w http.ResponseWriter, req *http.Request) error {
	id, err := b.parseID(req)
	if err != nil {
		return err
	}
	blk, err := b.applier.GetBlock(id)
	if err != nil {
		if b.applier.IsNotFound(err) {
			return utils.NotFound(errors.New("block not found"))
		}
		return err
	}
	return utils.WriteJSON(w, blk)
}

func (b *Blocks) handleGetReceipts(w http.ResponseWriter, req *http.Request) error {
	id, err := b.parseID(req)
	if err != nil {
		return err
	}
	receipts, err := b.applier.GetReceipts(id)
	if err != nil {
		if b.applier.IsNotFound(err) {
			return utils.NotFound(errors.New("block not found"))
		}
		return err
	}
	return utils.WriteJSON(w, ConvertReceipts(id, receipts))
}

func (b *Blocks) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/head").
		Methods(http.MethodGet).
		Name("blocks_get_head").
		HandlerFunc(utils.WrapHandlerFunc(b.handleGetHead))
	sub.Path("/{id}").
		Methods(http.MethodGet).
		Name("blocks_get_block").
		HandlerFunc(utils.WrapHandlerFunc(b.handleGetBlock))
	sub.Path("/{id}/receipts").
		Methods(http.MethodGet).
		Name("blocks_get_receipts").
		HandlerFunc(utils.WrapHandlerFunc(b.handleGetReceipts))
}
