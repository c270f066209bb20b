// Package ledger implements the in-memory transfer ledger: optimistic
// application of pushed transactions and greedy settlement back to a state
// where no account balance is negative.
package ledger

import (
	"sort"

	"github.com/bft-labs/transdb/internal/domain"
	"github.com/bft-labs/transdb/pkg/log"
)

// Ledger owns a fixed set of accounts, an ordered buffer of optimistically
// applied transaction logs and the set of transaction ids that survived
// settlement. It is not safe for concurrent use; callers serialize access.
type Ledger struct {
	balances map[int64]int64
	pending  []*domain.TransactionLog
	applied  []int64
	nextID   int64
	logger   log.Logger
}

// New builds a ledger from the initial balances. It never fails: a duplicate
// account id in the input overwrites the earlier occurrence, with a
// warn-level diagnostic. The account set is fixed for the ledger's lifetime.
func New(initial []domain.Account, logger log.Logger) *Ledger {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	balances := make(map[int64]int64, len(initial))
	for _, acc := range initial {
		if _, dup := balances[acc.ID]; dup {
			logger.Warn("duplicate initial account id, last occurrence wins",
				log.Int64("account", acc.ID))
		}
		balances[acc.ID] = acc.Balance
	}
	return &Ledger{balances: balances, logger: logger}
}

// PushTransaction condenses tx into a transaction log, validates every
// transfer against the ledger's account set and, on success, applies the
// log's deltas immediately and buffers the log for the next Settle call.
// The optimistic apply may drive balances negative.
//
// A transaction referencing an unknown account is rejected as a whole: the
// rejection is reported on the ledger's log channel, no balance changes, and
// the transaction id counter is not advanced.
func (l *Ledger) PushTransaction(tx domain.Transaction) {
	txlog, err := domain.NewTransactionLog(l.nextID, tx, l.accountExists)
	if err != nil {
		l.logger.Warn("transaction rejected",
			log.Int64("id", l.nextID),
			log.Int("transfers", len(tx)),
			log.Err(err))
		return
	}
	l.apply(txlog)
	l.pending = append(l.pending, txlog)
	l.nextID++
	l.logger.Debug("transaction pushed",
		log.Int64("id", txlog.ID()),
		log.Int("accounts", txlog.Len()))
}

// accountExists reports whether id is in the ledger's fixed account set.
func (l *Ledger) accountExists(id int64) bool {
	_, ok := l.balances[id]
	return ok
}

// apply adds every delta in txlog to the live balances.
func (l *Ledger) apply(txlog *domain.TransactionLog) {
	txlog.Entries(func(id, delta int64) bool {
		l.balances[id] += delta
		return true
	})
}

// rollback subtracts every delta in txlog from the live balances, exactly
// reversing apply. Every account in the log still exists because accounts
// are never removed.
func (l *Ledger) rollback(txlog *domain.TransactionLog) {
	txlog.Entries(func(id, delta int64) bool {
		l.balances[id] -= delta
		return true
	})
}

// negativeCount counts accounts with a negative balance across the whole
// account map.
func (l *Ledger) negativeCount() int {
	n := 0
	for _, bal := range l.balances {
		if bal < 0 {
			n++
		}
	}
	return n
}

// rollbackScore simulates rolling back txlog without touching real state and
// counts, among only the accounts the log touches, how many would be left
// with a negative balance. Lower means the rollback is locally cheaper.
func (l *Ledger) rollbackScore(txlog *domain.TransactionLog) int {
	score := 0
	txlog.Entries(func(id, delta int64) bool {
		if l.balances[id]-delta < 0 {
			score++
		}
		return true
	})
	return score
}

// Settle drives the ledger to a state where every balance is non-negative
// by rolling back pending transactions one at a time: on each pass the
// pending log with the lowest rollback score is discarded, ties going to the
// smaller transaction id. The heuristic is greedy and makes no claim of
// rolling back a globally minimal set.
//
// When the terminal state is reached the surviving pending ids are committed
// to the applied set and the pending buffer is cleared. Settle on an empty
// pending buffer is a no-op. Termination is guaranteed: each pass shrinks
// pending, and rolling back everything restores the initial balances.
func (l *Ledger) Settle() {
	rolledBack := 0
	for l.negativeCount() > 0 && len(l.pending) > 0 {
		best := 0
		bestScore := l.rollbackScore(l.pending[0])
		for i := 1; i < len(l.pending); i++ {
			// Pending is ordered by id, so a strict < keeps ties on the
			// earliest transaction.
			if score := l.rollbackScore(l.pending[i]); score < bestScore {
				best, bestScore = i, score
			}
		}
		victim := l.pending[best]
		l.rollback(victim)
		l.pending = append(l.pending[:best], l.pending[best+1:]...)
		rolledBack++
		l.logger.Info("transaction rolled back",
			log.Int64("id", victim.ID()),
			log.Int("score", bestScore))
	}
	for _, txlog := range l.pending {
		l.applied = append(l.applied, txlog.ID())
	}
	committed := len(l.pending)
	l.pending = nil
	if committed > 0 || rolledBack > 0 {
		l.logger.Info("settled",
			log.Int("committed", committed),
			log.Int("rolled_back", rolledBack))
	}
}

// Balances returns a snapshot of every account, sorted by account id for
// deterministic output. The slice is owned by the caller.
func (l *Ledger) Balances() []domain.Account {
	out := make([]domain.Account, 0, len(l.balances))
	for id, bal := range l.balances {
		out = append(out, domain.Account{ID: id, Balance: bal})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AppliedTransactionIDs returns a sorted snapshot of the transaction ids
// committed by settlement so far. It is empty before the first Settle call.
func (l *Ledger) AppliedTransactionIDs() []int64 {
	out := make([]int64, len(l.applied))
	copy(out, l.applied)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
