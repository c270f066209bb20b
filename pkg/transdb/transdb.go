package transdb

import (
	"github.com/bft-labs/transdb/internal/domain"
	"github.com/bft-labs/transdb/internal/ledger"
)

// Account is a ledger entity with an id and an integer balance.
type Account struct {
	ID      int64
	Balance int64
}

// Transfer moves Amount from one account to another. The amount may be zero
// or negative; only account existence is validated.
type Transfer struct {
	From   int64
	To     int64
	Amount int64
}

// Transaction is an ordered batch of transfers applied atomically.
type Transaction []Transfer

// DB is an in-memory transfer ledger. Transactions pushed into it are
// applied optimistically; Settle rolls back a greedily chosen subset until
// no balance is negative. A DB is not safe for concurrent use.
//
// Use New to create an instance.
type DB struct {
	ledger *ledger.Ledger
}

// New creates a DB over the given initial balances. It never fails; a
// duplicate account id in the input overwrites the earlier occurrence. The
// account set is fixed: transactions can only move value between these
// accounts.
func New(initial []Account, opts ...Option) *DB {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	accounts := make([]domain.Account, len(initial))
	for i, acc := range initial {
		accounts[i] = domain.Account{ID: acc.ID, Balance: acc.Balance}
	}
	return &DB{ledger: ledger.New(accounts, o.logger)}
}

// PushTransaction validates tx against the account set and, on success,
// applies its net effect immediately, possibly driving balances negative
// until the next Settle. A transaction referencing an unknown account is
// dropped as a whole: the rejection is reported on the configured logger,
// no state changes, and no transaction id is consumed. PushTransaction
// never fails from the caller's point of view.
func (db *DB) PushTransaction(tx Transaction) {
	transfers := make(domain.Transaction, len(tx))
	for i, tr := range tx {
		transfers[i] = domain.Transfer{From: tr.From, To: tr.To, Amount: tr.Amount}
	}
	db.ledger.PushTransaction(transfers)
}

// Settle restores the invariant that every balance is non-negative by
// rolling back pending transactions, locally-cheapest first, then commits
// the survivors. It always terminates; with nothing pending it is a no-op.
func (db *DB) Settle() {
	db.ledger.Settle()
}

// Balances returns a snapshot of every account, ascending by account id.
func (db *DB) Balances() []Account {
	snapshot := db.ledger.Balances()
	out := make([]Account, len(snapshot))
	for i, acc := range snapshot {
		out[i] = Account{ID: acc.ID, Balance: acc.Balance}
	}
	return out
}

// AppliedTransactionIDs returns the ids of pushed transactions that
// survived settlement, ascending. It is empty before the first Settle.
func (db *DB) AppliedTransactionIDs() []int64 {
	return db.ledger.AppliedTransactionIDs()
}
