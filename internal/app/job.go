// Package app wires the harness boundary to the ledger core: one settlement
// job in, one report out.
package app

import (
	"fmt"
	"io"

	"github.com/bft-labs/transdb/internal/ledger"
	"github.com/bft-labs/transdb/internal/textio"
	"github.com/bft-labs/transdb/pkg/log"
)

// RunJob reads one settlement job from r, pushes every transaction, settles,
// and writes the report to w. Rejected transactions surface only on the log
// channel; a returned error means the job itself was unreadable or the
// report could not be written.
func RunJob(r io.Reader, w io.Writer, logger log.Logger) error {
	batch, err := textio.ReadBatch(r)
	if err != nil {
		return fmt.Errorf("read job: %w", err)
	}

	led := ledger.New(batch.Accounts, logger)
	for _, tx := range batch.Transactions {
		led.PushTransaction(tx)
	}
	led.Settle()

	if err := textio.WriteReport(w, led.AppliedTransactionIDs(), led.Balances()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
