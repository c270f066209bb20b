// Package textio reads settlement jobs from the count-prefixed text format
// and writes the settlement report. It is the harness boundary: nothing in
// here knows how the ledger settles, and nothing outside knows the framing.
package textio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bft-labs/transdb/internal/domain"
)

// preallocLimit caps slice pre-allocation for counts read from the input.
// Counts are caller-supplied and only promise what the following lines must
// deliver; a huge count with too few lines fails at the first missing line
// instead of sizing a slice it can never fill.
const preallocLimit = 1 << 10

// Batch is one complete settlement job: the initial account balances and
// the ordered transactions to push before settling.
type Batch struct {
	Accounts     []domain.Account
	Transactions []domain.Transaction
}

// ReadBatch parses a job from r. The format is count-prefixed:
//
//	N                     number of accounts
//	<id> <balance>        N lines
//	T                     number of transactions
//	<K>                   transfers in the next transaction
//	<from> <to> <amount>  K lines, repeated per transaction
//
// Blank lines are skipped and trailing tokens on a line are rejected.
// Errors carry the 1-based line number of the offending line.
func ReadBatch(r io.Reader) (*Batch, error) {
	sc := &lineScanner{scanner: bufio.NewScanner(r)}

	numAccounts, err := sc.count("account count")
	if err != nil {
		return nil, err
	}
	batch := &Batch{Accounts: make([]domain.Account, 0, min(numAccounts, preallocLimit))}
	for i := int64(0); i < numAccounts; i++ {
		fields, err := sc.ints(2, "account balance")
		if err != nil {
			return nil, err
		}
		batch.Accounts = append(batch.Accounts, domain.Account{ID: fields[0], Balance: fields[1]})
	}

	numTransactions, err := sc.count("transaction count")
	if err != nil {
		return nil, err
	}
	batch.Transactions = make([]domain.Transaction, 0, min(numTransactions, preallocLimit))
	for i := int64(0); i < numTransactions; i++ {
		numTransfers, err := sc.count("transfer count")
		if err != nil {
			return nil, err
		}
		tx := make(domain.Transaction, 0, min(numTransfers, preallocLimit))
		for j := int64(0); j < numTransfers; j++ {
			fields, err := sc.ints(3, "transfer")
			if err != nil {
				return nil, err
			}
			tx = append(tx, domain.Transfer{From: fields[0], To: fields[1], Amount: fields[2]})
		}
		batch.Transactions = append(batch.Transactions, tx)
	}
	return batch, nil
}

// lineScanner hands out the integer fields of successive non-blank lines,
// tracking line numbers for error reporting.
type lineScanner struct {
	scanner *bufio.Scanner
	line    int
}

// count returns a single non-negative integer from the next non-blank line.
func (s *lineScanner) count(what string) (int64, error) {
	fields, err := s.ints(1, what)
	if err != nil {
		return 0, err
	}
	if fields[0] < 0 {
		return 0, fmt.Errorf("line %d: %s: must not be negative", s.line, what)
	}
	return fields[0], nil
}

// ints returns exactly want integers from the next non-blank line.
func (s *lineScanner) ints(want int, what string) ([]int64, error) {
	for s.scanner.Scan() {
		s.line++
		fields := strings.Fields(s.scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != want {
			return nil, fmt.Errorf("line %d: %s: expected %d fields, got %d", s.line, what, want, len(fields))
		}
		out := make([]int64, want)
		for i, f := range fields {
			v, err := strconv.ParseInt(f, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %s: %q is not an integer", s.line, what, f)
			}
			out[i] = v
		}
		return out, nil
	}
	if err := s.scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", s.line, err)
	}
	return nil, fmt.Errorf("line %d: %s: unexpected end of input", s.line, what)
}
