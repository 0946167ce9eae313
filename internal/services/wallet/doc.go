/*
Package wallet owns the wallet account and its balance-mutation protocol.

Every balance change goes through Credit, Debit or ReverseTransaction.
Each of these re-fetches and row-locks the wallet, posts a transaction
through the ledger, and writes the new balance — all inside one store
transaction, so the transaction row and the wallet balance can never
disagree after a crash.

Usage:

	store := repositories.NewGormStore(repositories.DB)
	cache := repositories.NewWalletCache(repositories.RedisClient, wallet.DefaultCacheTTL)
	svc := wallet.NewService(store, cache, metricsCollector)

	w, err := svc.Create(ctx, userID, "Main Wallet")

	res, err := svc.Credit(ctx, w.ID, decimal.NewFromInt(10), "Signup bonus", nil)
	if err != nil {
		// fault: misconfiguration or store failure
	}
	if !res.Success {
		// business failure, res.Message says why
	}

Business failures never come back as errors. Invalid amounts, duplicate
entity postings, insufficient balance, unknown or already-reversed
transactions and refused deletes are all OperationResult failures; errors
are reserved for faults like missing tables or a broken store.

An optional entity reference makes a posting idempotent: at most one
transaction may reference a given (entity type, entity id) pair, enforced
both by an in-transaction check and by the store's uniqueness constraint.
*/
package wallet
