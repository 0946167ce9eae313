// Package repositories provides the durable store contract for the wallet
// ledger and its implementations. The ledger core only ever talks to the
// Store interface; Postgres (via gorm) and an in-memory store satisfy it.
package repositories

import (
	"errors"
	"time"

	"purse/internal/models"
)

var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrDuplicateTransaction reports that a non-deleted transaction already
	// references the same (entity, entity_id) pair.
	ErrDuplicateTransaction = errors.New("transaction already exists for entity")
	// ErrTransactionsImmutable is returned by every attempt to delete a
	// transaction. Ledger entries are append-only; wanting to remove one is
	// a programming error, not a business outcome.
	ErrTransactionsImmutable = errors.New("transactions cannot be deleted")
)

// Table names, used for provisioning checks.
const (
	WalletsTable      = "wallets"
	TransactionsTable = "wallet_transactions"
)

// ListOptions narrows a transaction history listing. Zero values mean no
// paging and no date filter; a negative Limit asks the service layer for
// the default page size. When Start is set and End is not, only
// transactions created on Start's calendar day are returned.
type ListOptions struct {
	Limit  int
	Offset int
	Start  *time.Time
	End    *time.Time
}

// DefaultPageSize is applied when a listing asks for paging without an
// explicit limit.
const DefaultPageSize = 50

// Store is the durable collaborator the ledger runs against. Lookups never
// return soft-deleted rows.
type Store interface {
	// Wallet operations
	CreateWallet(wallet *models.Wallet) error
	GetWallet(id string) (*models.Wallet, error)
	// GetWalletForUpdate row-locks the wallet when called inside
	// ExecuteInTransaction, making the read-post-update sequence a
	// per-wallet critical section.
	GetWalletForUpdate(id string) (*models.Wallet, error)
	FindWallet(userID, name string) (*models.Wallet, error)
	UpdateWallet(wallet *models.Wallet) error
	DeleteWallet(id string) error

	// Transaction operations
	CreateTransaction(txn *models.Transaction) error
	GetWalletTransaction(id, walletID string) (*models.Transaction, error)
	EntityTransactionExists(entity, entityID string) (bool, error)
	MarkTransactionReversed(id string) error
	DeleteTransaction(id string) error
	CountTransactions(walletID string) (int64, error)
	ListTransactions(walletID string, opts ListOptions) ([]models.Transaction, error)

	// ExecuteInTransaction runs fn atomically: every read and write made
	// through the Store passed to fn commits or rolls back as one unit.
	ExecuteInTransaction(fn func(Store) error) error

	// HasTable reports whether the named table has been provisioned.
	HasTable(name string) bool
}
