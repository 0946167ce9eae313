// Package ledger creates credit and debit transaction records against a
// wallet, guards against duplicate postings for an external entity, and
// reverses a transaction by posting a compensating counter-transaction.
// It computes the resulting balance but never writes it back to the wallet;
// owning the balance is the wallet service's job.
package ledger

import (
	"errors"
	"fmt"

	"purse/internal/models"
	"purse/internal/repositories"

	"github.com/shopspring/decimal"
)

// EntityRef identifies the external object that caused a transaction, used
// to prevent double posting for the same event.
type EntityRef struct {
	Type string
	ID   string
}

// Ledger posts transactions through whatever Store it is handed, so callers
// can pass the transaction-scoped store from ExecuteInTransaction and keep
// the idempotency check and the insert in one atomic unit.
type Ledger struct{}

func New() *Ledger {
	return &Ledger{}
}

// Post records one credit or debit against the wallet and returns the
// persisted transaction carrying the resulting balance snapshot. The wallet
// row is re-fetched through the store; the caller's copy is never trusted.
func (l *Ledger) Post(store repositories.Store, walletID string, amount decimal.Decimal, description, txType string, entity *EntityRef) (*models.Transaction, error) {
	if !store.HasTable(repositories.TransactionsTable) {
		return nil, ErrStoreUnavailable
	}
	if !store.HasTable(repositories.WalletsTable) {
		return nil, fmt.Errorf("%w: wallets table missing", ErrStoreUnavailable)
	}

	wallet, err := store.GetWallet(walletID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, ErrWalletGone
		}
		return nil, err
	}

	var balance decimal.Decimal
	switch txType {
	case models.TransactionTypeCredit:
		balance = wallet.Balance.Add(amount)
	case models.TransactionTypeDebit:
		balance = wallet.Balance.Sub(amount)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidTransactionType, txType)
	}

	txn := &models.Transaction{
		WalletID:    wallet.ID,
		Type:        txType,
		Amount:      amount,
		Balance:     balance,
		Description: description,
		Reference:   NewReference(),
	}
	if entity != nil {
		if entity.ID == "" {
			return nil, ErrMissingIdentifier
		}
		entityType, entityID := entity.Type, entity.ID
		txn.Entity = &entityType
		txn.EntityID = &entityID
	}

	if err := store.CreateTransaction(txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// Exists reports whether a non-deleted transaction already references the
// entity. A nil entity never exists; an entity without an identifier is a
// caller error.
func (l *Ledger) Exists(store repositories.Store, entity *EntityRef) (bool, error) {
	if entity == nil {
		return false, nil
	}
	if entity.ID == "" {
		return false, ErrMissingIdentifier
	}
	return store.EntityTransactionExists(entity.Type, entity.ID)
}

// Reverse posts a counter-transaction of the opposite type for the same
// amount against the same wallet, then marks the original reversed. Both
// writes must run inside one ExecuteInTransaction unit.
func (l *Ledger) Reverse(store repositories.Store, original *models.Transaction, entity *EntityRef) (*models.Transaction, error) {
	var counterType string
	switch original.Type {
	case models.TransactionTypeCredit:
		counterType = models.TransactionTypeDebit
	case models.TransactionTypeDebit:
		counterType = models.TransactionTypeCredit
	default:
		// A transaction row with any other type is data corruption.
		return nil, fmt.Errorf("%w: %s", ErrInvalidTransactionType, original.Type)
	}

	description := "Transaction reversal of " + original.Description

	counter, err := l.Post(store, original.WalletID, original.Amount, description, counterType, entity)
	if err != nil {
		return nil, err
	}

	if err := store.MarkTransactionReversed(original.ID); err != nil {
		return nil, err
	}
	return counter, nil
}
