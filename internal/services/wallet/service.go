package wallet

import (
	"context"
	"errors"
	"fmt"

	"purse/internal/models"
	"purse/internal/repositories"
	"purse/internal/services/ledger"

	"github.com/shopspring/decimal"
)

type service struct {
	store   repositories.Store
	ledger  *ledger.Ledger
	cache   CacheOperator
	metrics MetricsCollector
}

// NewService creates a new wallet service. Cache and metrics are optional;
// nil gets a no-op implementation.
func NewService(store repositories.Store, cache CacheOperator, metrics MetricsCollector) Service {
	if store == nil {
		panic("store is required")
	}
	if cache == nil {
		cache = NoopCache{}
	}
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}
	return &service{
		store:   store,
		ledger:  ledger.New(),
		cache:   cache,
		metrics: metrics,
	}
}

// Create returns the wallet for (userID, name), creating it with a zero
// balance when none exists. Repeated calls with the same pair are
// idempotent.
func (s *service) Create(ctx context.Context, userID, name string) (*models.Wallet, error) {
	if !s.store.HasTable(repositories.WalletsTable) {
		return nil, ErrStoreUnavailable
	}

	wallet, err := s.store.FindWallet(userID, name)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, repositories.ErrWalletNotFound) {
		return nil, err
	}

	wallet = &models.Wallet{UserID: userID, Name: name}
	if err := s.store.CreateWallet(wallet); err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}
	s.cache.Set(ctx, wallet)
	return wallet, nil
}

func (s *service) GetWallet(ctx context.Context, walletID string) (*models.Wallet, error) {
	if wallet, err := s.cache.Get(ctx, walletID); err == nil {
		return wallet, nil
	}

	wallet, err := s.store.GetWallet(walletID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, wallet)
	return wallet, nil
}

// Credit posts a credit transaction and moves the wallet balance to the
// transaction's balance snapshot, both inside one store transaction.
func (s *service) Credit(ctx context.Context, walletID string, amount decimal.Decimal, description string, entity *ledger.EntityRef) (*OperationResult, error) {
	if !amount.IsPositive() {
		s.metrics.RecordError("credit", "invalid_amount")
		return failure(MsgInvalidAmount), nil
	}
	return s.post(ctx, walletID, amount, description, models.TransactionTypeCredit, entity)
}

// Debit posts a debit transaction. It applies the same positive-amount
// guard as Credit and refuses to take the balance below zero.
func (s *service) Debit(ctx context.Context, walletID string, amount decimal.Decimal, description string, entity *ledger.EntityRef) (*OperationResult, error) {
	if !amount.IsPositive() {
		s.metrics.RecordError("debit", "invalid_amount")
		return failure(MsgInvalidAmount), nil
	}
	return s.post(ctx, walletID, amount, description, models.TransactionTypeDebit, entity)
}

func (s *service) post(ctx context.Context, walletID string, amount decimal.Decimal, description, txType string, entity *ledger.EntityRef) (*OperationResult, error) {
	var posted *models.Transaction

	err := s.store.ExecuteInTransaction(func(tx repositories.Store) error {
		// The duplicate check runs inside the atomic unit; the unique index
		// on (entity, entity_id) backstops the race two concurrent posts
		// would otherwise win together.
		exists, err := s.ledger.Exists(tx, entity)
		if err != nil {
			return err
		}
		if exists {
			return repositories.ErrDuplicateTransaction
		}

		wallet, err := tx.GetWalletForUpdate(walletID)
		if err != nil {
			return err
		}
		if txType == models.TransactionTypeDebit && wallet.Balance.LessThan(amount) {
			return errInsufficientBalance
		}

		txn, err := s.ledger.Post(tx, wallet.ID, amount, description, txType, entity)
		if err != nil {
			return err
		}

		oldBalance := wallet.Balance
		wallet.Balance = txn.Balance
		if err := tx.UpdateWallet(wallet); err != nil {
			return err
		}

		s.metrics.RecordBalanceChange(wallet.ID, oldBalance.InexactFloat64(), wallet.Balance.InexactFloat64())
		posted = txn
		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, repositories.ErrDuplicateTransaction):
		s.metrics.RecordError(txType, "duplicate_entity")
		return failure(MsgTransactionExists), nil
	case errors.Is(err, errInsufficientBalance):
		s.metrics.RecordError(txType, "insufficient_balance")
		return failure(MsgInsufficientBalance), nil
	default:
		s.metrics.RecordError(txType, "store_error")
		return nil, err
	}

	s.cache.Invalidate(ctx, walletID)
	s.metrics.RecordTransaction(txType, amount.InexactFloat64())

	if txType == models.TransactionTypeCredit {
		return success(MsgCreditSuccessful, posted), nil
	}
	return success(MsgDebitSuccessful, posted), nil
}

// ReverseTransaction undoes a transaction exactly once by posting a
// counter-transaction of the opposite type. The transaction is re-fetched
// against this wallet's id; a caller-supplied record pointing at another
// wallet is reported as not found.
func (s *service) ReverseTransaction(ctx context.Context, walletID, transactionID string, entity *ledger.EntityRef) (*OperationResult, error) {
	var counter *models.Transaction

	err := s.store.ExecuteInTransaction(func(tx repositories.Store) error {
		wallet, err := tx.GetWalletForUpdate(walletID)
		if err != nil {
			return err
		}

		original, err := tx.GetWalletTransaction(transactionID, walletID)
		if err != nil {
			return err
		}
		if original.Reversed {
			return errAlreadyReversed
		}

		txn, err := s.ledger.Reverse(tx, original, entity)
		if err != nil {
			return err
		}

		oldBalance := wallet.Balance
		wallet.Balance = txn.Balance
		if err := tx.UpdateWallet(wallet); err != nil {
			return err
		}

		s.metrics.RecordBalanceChange(wallet.ID, oldBalance.InexactFloat64(), wallet.Balance.InexactFloat64())
		counter = txn
		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, repositories.ErrTransactionNotFound):
		s.metrics.RecordError("reversal", "transaction_not_found")
		return failure(MsgTransactionNotFound), nil
	case errors.Is(err, errAlreadyReversed):
		s.metrics.RecordError("reversal", "already_reversed")
		return failure(MsgAlreadyReversed), nil
	default:
		s.metrics.RecordError("reversal", "store_error")
		return nil, err
	}

	s.cache.Invalidate(ctx, walletID)
	s.metrics.RecordTransaction(counter.Type, counter.Amount.InexactFloat64())

	return success(MsgReversalSuccessful, counter), nil
}

// Delete soft-deletes the wallet. Without force it refuses while any
// balance remains.
func (s *service) Delete(ctx context.Context, walletID string, force bool) (*OperationResult, error) {
	wallet, err := s.store.GetWallet(walletID)
	if err != nil {
		return nil, err
	}

	if !force && !wallet.Balance.IsZero() {
		return failure(fmt.Sprintf(
			"Wallet cannot be deleted because it is still has a balance of %s",
			wallet.Balance.String(),
		)), nil
	}

	if err := s.store.DeleteWallet(walletID); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, walletID)
	return success(MsgWalletDeleted, nil), nil
}

// Exists reports whether a non-deleted wallet with this id can be
// re-fetched from the store. Stale in-memory copies of deleted wallets
// report false.
func (s *service) Exists(ctx context.Context, walletID string) (bool, error) {
	if walletID == "" {
		return false, nil
	}
	_, err := s.store.GetWallet(walletID)
	if errors.Is(err, repositories.ErrWalletNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *service) Transactions(ctx context.Context, walletID string, opts repositories.ListOptions) ([]models.Transaction, error) {
	if opts.Limit < 0 {
		opts.Limit = repositories.DefaultPageSize
	}
	return s.store.ListTransactions(walletID, opts)
}

func (s *service) TransactionCount(ctx context.Context, walletID string) (int64, error) {
	return s.store.CountTransactions(walletID)
}
