// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"github.com/pkg/errors"
	"github.com/vechain/thorstate/account"
	"github.com/vechain/thorstate/muxdb"
	"github.com/vechain/thorstate/tx"
)

// operation is what a phase applies to each account it visits.
type operation struct {
	revert    bool
	height    uint32
	timestamp uint64
}

func (op operation) String() string {
	if op.revert {
		return "revert"
	}
	return "commit"
}

func (op operation) onTransaction(acc account.Account, t *tx.Transaction, sender bool, receipt []byte) (account.Account, []byte, error) {
	switch {
	case sender && op.revert:
		next, err := acc.RevertOutgoingTransaction(t, op.height, op.timestamp, receipt)
		return next, nil, err
	case sender:
		return acc.CommitOutgoingTransaction(t, op.height, op.timestamp)
	case op.revert:
		next, err := acc.RevertIncomingTransaction(t, op.height, op.timestamp, receipt)
		return next, nil, err
	default:
		return acc.CommitIncomingTransaction(t, op.height, op.timestamp)
	}
}

func (op operation) onInherent(acc account.Account, in *tx.Inherent, receipt []byte) (account.Account, []byte, error) {
	if op.revert {
		next, err := acc.RevertInherent(in, op.height, op.timestamp, receipt)
		return next, nil, err
	}
	return acc.CommitInherent(in, op.height, op.timestamp)
}

// indices visits 0..n-1, backwards when reverting so that an account touched
// several times is restored through the exact reverse sequence.
func (op operation) indices(n int, fn func(i int) error) error {
	if op.revert {
		for i := n - 1; i >= 0; i-- {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}
	for i := 0; i < n; i++ {
		if err := fn(i); err != nil {
			return err
		}
	}
	return nil
}

func side(sender bool) string {
	if sender {
		return "sender"
	}
	return "recipient"
}

// processTransactions applies op to one side of every transaction.
// Receipts are consumed when reverting and produced when committing.
func (a *Accounts) processTransactions(
	txn *muxdb.WriteTxn,
	txs []*tx.Transaction,
	sender bool,
	op operation,
	receipts map[uint16][]byte,
) (account.Receipts, error) {
	var produced account.Receipts
	err := op.indices(len(txs), func(i int) error {
		t := txs[i]
		addr, claimed := t.Recipient, t.RecipientType
		if sender {
			addr, claimed = t.Sender, t.SenderType
		}
		key := KeyOf(addr)

		acc, err := a.tree.Get(txn, key)
		if err != nil {
			return errors.WithMessagef(err, "tx #%v: load %v %v", i, side(sender), addr)
		}
		// the recipient of a contract creation only becomes the claimed type afterwards
		if sender || !t.IsContractCreation() {
			if acc.Type() != claimed {
				return errors.WithMessagef(
					&account.TypeMismatchError{Expected: acc.Type(), Got: claimed},
					"tx #%v: %v %v", i, side(sender), addr)
			}
		}

		next, data, err := op.onTransaction(acc, t, sender, receipts[uint16(i)])
		if err != nil {
			return errors.WithMessagef(err, "tx #%v: %v %v %v", i, op, side(sender), addr)
		}
		if err := a.tree.PutBatch(txn, key, next); err != nil {
			return errors.WithMessagef(err, "tx #%v: save %v %v", i, side(sender), addr)
		}
		if data != nil {
			produced = append(produced, account.TransactionReceipt(uint16(i), sender, data))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return produced, nil
}

func (a *Accounts) processSenders(txn *muxdb.WriteTxn, txs []*tx.Transaction, op operation, receipts map[uint16][]byte) (account.Receipts, error) {
	return a.processTransactions(txn, txs, true, op, receipts)
}

func (a *Accounts) processRecipients(txn *muxdb.WriteTxn, txs []*tx.Transaction, op operation, receipts map[uint16][]byte) (account.Receipts, error) {
	return a.processTransactions(txn, txs, false, op, receipts)
}

// processInherents applies op to the inherents of one phase.
// Indices are positions within the phase.
func (a *Accounts) processInherents(
	txn *muxdb.WriteTxn,
	inherents []*tx.Inherent,
	pre bool,
	op operation,
	receipts map[uint16][]byte,
) (account.Receipts, error) {
	phase := "post-tx"
	if pre {
		phase = "pre-tx"
	}

	var produced account.Receipts
	err := op.indices(len(inherents), func(i int) error {
		in := inherents[i]
		key := KeyOf(in.Target)

		acc, err := a.tree.Get(txn, key)
		if err != nil {
			return errors.WithMessagef(err, "%v inherent #%v: load %v", phase, i, in.Target)
		}
		next, data, err := op.onInherent(acc, in, receipts[uint16(i)])
		if err != nil {
			return errors.WithMessagef(err, "%v inherent #%v: %v %v on %v", phase, i, op, in.Type, in.Target)
		}
		if err := a.tree.PutBatch(txn, key, next); err != nil {
			return errors.WithMessagef(err, "%v inherent #%v: save %v", phase, i, in.Target)
		}
		if data != nil {
			produced = append(produced, account.InherentReceipt(uint16(i), pre, data))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return produced, nil
}

// createContracts turns the recipient of every contract creation into the claimed contract.
func (a *Accounts) createContracts(txn *muxdb.WriteTxn, txs []*tx.Transaction, op operation) error {
	for i, t := range txs {
		if !t.IsContractCreation() {
			continue
		}
		key := KeyOf(t.Recipient)
		prior, err := a.tree.Get(txn, key)
		if err != nil {
			return errors.WithMessagef(err, "tx #%v: load contract %v", i, t.Recipient)
		}
		if prior.Type() != account.TypeBasic {
			return errors.WithMessagef(
				&account.TypeMismatchError{Expected: prior.Type(), Got: account.TypeBasic},
				"tx #%v: create contract %v", i, t.Recipient)
		}
		contract, err := account.NewContract(t.RecipientType, prior.Balance(), t, op.height, op.timestamp)
		if err != nil {
			return errors.WithMessagef(err, "tx #%v: create contract %v", i, t.Recipient)
		}
		if err := a.tree.PutBatch(txn, key, contract); err != nil {
			return errors.WithMessagef(err, "tx #%v: save contract %v", i, t.Recipient)
		}
	}
	return nil
}

// revertContracts turns created contracts back into Basic accounts keeping their balance.
func (a *Accounts) revertContracts(txn *muxdb.WriteTxn, txs []*tx.Transaction) error {
	for i := len(txs) - 1; i >= 0; i-- {
		t := txs[i]
		if !t.IsContractCreation() {
			continue
		}
		key := KeyOf(t.Recipient)
		contract, err := a.tree.Get(txn, key)
		if err != nil {
			return errors.WithMessagef(err, "tx #%v: load contract %v", i, t.Recipient)
		}
		if contract.Type() != t.RecipientType {
			return errors.WithMessagef(
				&account.TypeMismatchError{Expected: contract.Type(), Got: t.RecipientType},
				"tx #%v: revert contract %v", i, t.Recipient)
		}
		if err := a.tree.PutBatch(txn, key, account.NewBasic(contract.Balance())); err != nil {
			return errors.WithMessagef(err, "tx #%v: save %v", i, t.Recipient)
		}
	}
	return nil
}
