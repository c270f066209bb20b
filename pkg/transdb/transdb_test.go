package transdb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bft-labs/transdb/pkg/transdb"
)

func TestDBRoundTrip(t *testing.T) {
	db := transdb.New([]transdb.Account{
		{ID: 1, Balance: 10},
		{ID: 2, Balance: 0},
		{ID: 3, Balance: 0},
	})

	db.PushTransaction(transdb.Transaction{{From: 1, To: 2, Amount: 5}})
	db.PushTransaction(transdb.Transaction{{From: 1, To: 3, Amount: 20}})
	db.Settle()

	assert.Equal(t, []int64{0}, db.AppliedTransactionIDs())
	assert.Equal(t, []transdb.Account{
		{ID: 1, Balance: 5},
		{ID: 2, Balance: 5},
		{ID: 3, Balance: 0},
	}, db.Balances())
}

func TestDBSnapshotsAreCopies(t *testing.T) {
	db := transdb.New([]transdb.Account{{ID: 1, Balance: 4}})
	db.PushTransaction(transdb.Transaction{{From: 1, To: 1, Amount: 0}})
	db.Settle()

	balances := db.Balances()
	balances[0].Balance = 999
	assert.Equal(t, int64(4), db.Balances()[0].Balance, "mutating a snapshot must not affect the ledger")

	applied := db.AppliedTransactionIDs()
	applied[0] = 999
	assert.Equal(t, int64(0), db.AppliedTransactionIDs()[0])
}
