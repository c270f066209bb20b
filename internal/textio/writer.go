package textio

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/bft-labs/transdb/internal/domain"
)

// WriteReport emits the settlement report: the applied transaction ids in
// ascending order, then the balances in ascending account-id order, each
// list preceded by its length. Inputs are sorted here so callers may pass
// snapshots in any order.
func WriteReport(w io.Writer, applied []int64, balances []domain.Account) error {
	ids := make([]int64, len(applied))
	copy(ids, applied)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	accounts := make([]domain.Account, len(balances))
	copy(accounts, balances)
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, len(ids))
	for _, id := range ids {
		fmt.Fprintln(bw, id)
	}
	fmt.Fprintln(bw, len(accounts))
	for _, acc := range accounts {
		fmt.Fprintf(bw, "%d %d\n", acc.ID, acc.Balance)
	}
	return bw.Flush()
}
