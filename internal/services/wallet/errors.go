package wallet

import "errors"

var (
	// ErrStoreUnavailable means the wallets table has not been provisioned.
	ErrStoreUnavailable = errors.New("wallets table does not exist in the database")

	// Internal sentinels carried out of the store transaction and mapped to
	// failure results.
	errInsufficientBalance = errors.New("insufficient balance")
	errAlreadyReversed     = errors.New("transaction already reversed")
)
