package transdb_test

import (
	"fmt"

	"github.com/bft-labs/transdb/pkg/transdb"
)

// ExampleNew demonstrates pushing transactions and settling.
func ExampleNew() {
	db := transdb.New([]transdb.Account{
		{ID: 1, Balance: 10},
		{ID: 2, Balance: 5},
	})

	db.PushTransaction(transdb.Transaction{{From: 1, To: 2, Amount: 3}})
	db.Settle()

	fmt.Println(db.AppliedTransactionIDs())
	for _, acc := range db.Balances() {
		fmt.Printf("%d %d\n", acc.ID, acc.Balance)
	}

	// Output:
	// [0]
	// 1 7
	// 2 8
}

// Example_rollback demonstrates settlement undoing an overdraft.
func Example_rollback() {
	db := transdb.New([]transdb.Account{
		{ID: 1, Balance: 5},
		{ID: 2, Balance: 5},
	})

	// Account 1 cannot cover this; settlement rolls it back.
	db.PushTransaction(transdb.Transaction{{From: 1, To: 2, Amount: 10}})
	db.Settle()

	fmt.Println(db.AppliedTransactionIDs())
	for _, acc := range db.Balances() {
		fmt.Printf("%d %d\n", acc.ID, acc.Balance)
	}

	// Output:
	// []
	// 1 5
	// 2 5
}

// Example_withLogger demonstrates injecting a custom logger to observe
// rejected transactions and rollbacks.
func Example_withLogger() {
	logger := &printLogger{}

	db := transdb.New([]transdb.Account{{ID: 1, Balance: 10}}, transdb.WithLogger(logger))

	// Account 2 does not exist; the push is dropped as a whole.
	db.PushTransaction(transdb.Transaction{{From: 1, To: 2, Amount: 5}})
	db.Settle()

	fmt.Println(db.AppliedTransactionIDs())

	// Output:
	// [WARN] transaction rejected
	// []
}

// printLogger implements transdb.Logger.
type printLogger struct{}

func (l *printLogger) Debug(msg string, fields ...transdb.Field) {}

func (l *printLogger) Info(msg string, fields ...transdb.Field) {}

func (l *printLogger) Warn(msg string, fields ...transdb.Field) {
	fmt.Printf("[WARN] %s\n", msg)
}

func (l *printLogger) Error(msg string, fields ...transdb.Field) {
	fmt.Printf("[ERROR] %s\n", msg)
}
