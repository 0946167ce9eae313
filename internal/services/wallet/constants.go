package wallet

import "time"

// Result messages. The texts are part of the package's contract; callers
// branch on Success, not on these, but they are stable anyway.
const (
	MsgCreditSuccessful    = "Credit Transaction was successful"
	MsgDebitSuccessful     = "Debit Transaction was successful"
	MsgReversalSuccessful  = "Transaction was successfully reversed"
	MsgWalletDeleted       = "Wallet was successfully deleted!"
	MsgInvalidAmount       = "Invalid amount supplied for transaction"
	MsgTransactionExists   = "This transaction exists"
	MsgInsufficientBalance = "Insufficient wallet balance!"
	MsgTransactionNotFound = "Specified Transaction could not be found"
	MsgAlreadyReversed     = "Specified Transaction has already been reversed"
)

// DefaultCacheTTL bounds how long a wallet read may be served from Redis.
const DefaultCacheTTL = 5 * time.Minute
