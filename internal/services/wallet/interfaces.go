package wallet

import (
	"context"

	"purse/internal/models"
	"purse/internal/repositories"
	"purse/internal/services/ledger"

	"github.com/shopspring/decimal"
)

// Service defines the wallet account operations. Credit, Debit,
// ReverseTransaction and Delete report business failures through the
// OperationResult; a non-nil error always means a fault.
type Service interface {
	Create(ctx context.Context, userID, name string) (*models.Wallet, error)
	GetWallet(ctx context.Context, walletID string) (*models.Wallet, error)

	Credit(ctx context.Context, walletID string, amount decimal.Decimal, description string, entity *ledger.EntityRef) (*OperationResult, error)
	Debit(ctx context.Context, walletID string, amount decimal.Decimal, description string, entity *ledger.EntityRef) (*OperationResult, error)
	ReverseTransaction(ctx context.Context, walletID, transactionID string, entity *ledger.EntityRef) (*OperationResult, error)

	Delete(ctx context.Context, walletID string, force bool) (*OperationResult, error)
	Exists(ctx context.Context, walletID string) (bool, error)

	Transactions(ctx context.Context, walletID string, opts repositories.ListOptions) ([]models.Transaction, error)
	TransactionCount(ctx context.Context, walletID string) (int64, error)
}

// CacheOperator caches wallet reads between mutations.
type CacheOperator interface {
	Get(ctx context.Context, walletID string) (*models.Wallet, error)
	Set(ctx context.Context, wallet *models.Wallet) error
	Invalidate(ctx context.Context, walletID string) error
}

// NoopCache satisfies CacheOperator without caching anything.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (*models.Wallet, error) {
	return nil, repositories.ErrWalletNotFound
}
func (NoopCache) Set(context.Context, *models.Wallet) error { return nil }
func (NoopCache) Invalidate(context.Context, string) error  { return nil }
