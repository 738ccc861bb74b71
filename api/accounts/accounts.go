// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/vechain/thorstate/accounts"
	"github.com/vechain/thorstate/api/utils"
	"github.com/vechain/thorstate/chain"
	"github.com/vechain/thorstate/muxdb"
	"github.com/vechain/thorstate/thor"
)

type Accounts struct {
	applier  *chain.Applier
	accounts *accounts.Accounts
}

func New(applier *chain.Applier, accs *accounts.Accounts) *Accounts {
	return &Accounts{
		applier,
		accs,
	}
}

// view runs fn against the head and the accounts state of one snapshot.
func (a *Accounts) view(fn func(head *Head, txn muxdb.Txn) error) error {
	err := a.applier.View(func(h *chain.Head, txn muxdb.Txn) error {
		return fn(ConvertHead(h), txn)
	})
	if errors.Is(err, chain.ErrNotInitialized) {
		return utils.HTTPError(err, http.StatusServiceUnavailable)
	}
	return err
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := thor.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	var view *Account
	if err := a.view(func(head *Head, txn muxdb.Txn) error {
		acc, err := a.accounts.Get(accounts.KeyOf(addr), txn)
		if err != nil {
			return err
		}
		view = ConvertAccount(addr, acc, head)
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, view)
}

func (a *Accounts) handleGetRoot(w http.ResponseWriter, _ *http.Request) error {
	var view *Root
	if err := a.view(func(head *Head, txn muxdb.Txn) error {
		root, err := a.accounts.GetRoot(txn)
		if err != nil {
			return err
		}
		view = &Root{root, head}
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, view)
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/root").
		Methods(http.MethodGet).
		Name("accounts_get_root").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetRoot))
	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("accounts_get_account").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
}
