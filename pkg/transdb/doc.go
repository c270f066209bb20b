// Package transdb is the embeddable public API of the transdb ledger.
//
// A [DB] owns a fixed set of accounts. Callers push transactions, each an
// atomic batch of transfers, which the DB applies optimistically; a later
// [DB.Settle] call rolls back a greedily chosen subset of the pushed
// transactions until every balance is non-negative again, and commits the
// rest.
//
// The rollback selection is a heuristic: on each pass the pending
// transaction whose removal leaves the fewest of its own accounts negative
// is discarded, ties going to the oldest. It is deliberately not a
// minimum-rollback solver.
//
// The DB is synchronous and single-owner; serialize access externally if
// multiple goroutines share one instance.
package transdb
