package domain

import "errors"

// Domain errors represent error conditions in the transdb domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrUnknownAccount is returned when a transfer references an account id
	// that does not exist in the ledger's account set.
	ErrUnknownAccount = errors.New("transdb: unknown account")
)
