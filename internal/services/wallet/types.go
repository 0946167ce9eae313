package wallet

import "purse/internal/models"

// OperationResult is the uniform outcome of every wallet operation.
// Expected business failures (invalid amount, insufficient balance,
// duplicate entity, unknown or already-reversed transaction, non-zero
// balance on delete) are reported here; Go errors are reserved for
// programming and infrastructure faults.
type OperationResult struct {
	Success     bool
	Message     string
	Transaction *models.Transaction
}

func success(message string, txn *models.Transaction) *OperationResult {
	return &OperationResult{Success: true, Message: message, Transaction: txn}
}

func failure(message string) *OperationResult {
	return &OperationResult{Success: false, Message: message}
}
