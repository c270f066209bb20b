package domain

import "fmt"

// TransactionLog is the condensed form of one transaction: a single net
// delta per account touched, keyed by account id. It is the unit the ledger
// applies, rolls back and scores during settlement, so larger transactions
// cost no more than the number of distinct accounts they touch.
//
// A TransactionLog is built once by [NewTransactionLog] and never mutated
// afterwards.
type TransactionLog struct {
	id      int64
	entries map[int64]int64
}

// NewTransactionLog condenses tx into a per-account delta log with the given
// id. Every transfer is checked with exists before it is folded in; the
// first transfer referencing an unknown account fails the whole construction
// with ErrUnknownAccount and no log is returned.
func NewTransactionLog(id int64, tx Transaction, exists func(accountID int64) bool) (*TransactionLog, error) {
	entries := make(map[int64]int64)
	for _, tr := range tx {
		if !exists(tr.From) {
			return nil, fmt.Errorf("transfer from %d: %w", tr.From, ErrUnknownAccount)
		}
		if !exists(tr.To) {
			return nil, fmt.Errorf("transfer to %d: %w", tr.To, ErrUnknownAccount)
		}
		entries[tr.From] -= tr.Amount
		entries[tr.To] += tr.Amount
	}
	return &TransactionLog{id: id, entries: entries}, nil
}

// ID returns the transaction id this log condenses.
func (l *TransactionLog) ID() int64 {
	return l.id
}

// NetChange returns the condensed delta for the given account, or 0 if the
// transaction did not touch it.
func (l *TransactionLog) NetChange(accountID int64) int64 {
	return l.entries[accountID]
}

// Len returns the number of distinct accounts the transaction touched.
func (l *TransactionLog) Len() int {
	return len(l.entries)
}

// Entries calls visit for each (account id, delta) pair in the log, stopping
// early if visit returns false. Iteration order is unspecified; the view is
// restartable because the underlying map is fixed after construction.
func (l *TransactionLog) Entries(visit func(accountID, delta int64) bool) {
	for id, delta := range l.entries {
		if !visit(id, delta) {
			return
		}
	}
}
