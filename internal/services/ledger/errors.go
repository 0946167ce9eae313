package ledger

import "errors"

// These are faults, not business outcomes: they indicate misuse or a
// misconfigured environment and are returned as errors rather than carried
// in an operation result.
var (
	ErrStoreUnavailable       = errors.New("transactions table not found in the database")
	ErrWalletGone             = errors.New("wallet specified does not exist")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrMissingIdentifier      = errors.New("could not get unique identifier for the entity to be attached to transaction")
)
