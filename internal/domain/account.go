package domain

// Account is a ledger entity. Identity is the id; the balance is an exact
// integer and may be negative only transiently, between an optimistic push
// and the next settlement.
type Account struct {
	// ID uniquely identifies the account within one ledger.
	ID int64

	// Balance is the current balance in indivisible units.
	Balance int64
}

// Transfer is a single directed movement of an amount from one account to
// another. The amount may be zero or negative; only account existence is
// validated.
type Transfer struct {
	// From is the account the amount is taken from.
	From int64

	// To is the account the amount is credited to.
	To int64

	// Amount is the quantity moved, in indivisible units.
	Amount int64
}

// Transaction is an ordered sequence of transfers submitted as one atomic
// unit: either every transfer takes effect or none do.
type Transaction []Transfer
