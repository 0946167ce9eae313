package repositories

import (
	"sync"
	"time"

	"purse/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MemoryStore is an in-memory Store used by tests and local wiring. It
// enforces the same semantics as the gorm store: soft deletes hidden from
// lookups, entity uniqueness on insert, and atomic ExecuteInTransaction
// with rollback on error.
type MemoryStore struct {
	mu           sync.Mutex
	wallets      map[string]*models.Wallet
	transactions map[string]*models.Transaction
	txOrder      []string
	tables       map[string]bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		wallets:      make(map[string]*models.Wallet),
		transactions: make(map[string]*models.Transaction),
		tables: map[string]bool{
			WalletsTable:      true,
			TransactionsTable: true,
		},
	}
}

// NewUnprovisionedMemoryStore returns a store whose tables are missing,
// for exercising the fail-fast provisioning checks.
func NewUnprovisionedMemoryStore() *MemoryStore {
	s := NewMemoryStore()
	s.tables = map[string]bool{}
	return s
}

func cloneWallet(w *models.Wallet) *models.Wallet {
	cp := *w
	return &cp
}

func cloneTransaction(t *models.Transaction) *models.Transaction {
	cp := *t
	if t.Entity != nil {
		e := *t.Entity
		cp.Entity = &e
	}
	if t.EntityID != nil {
		id := *t.EntityID
		cp.EntityID = &id
	}
	return &cp
}

func (m *MemoryStore) CreateWallet(wallet *models.Wallet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createWalletLocked(wallet)
}

func (m *MemoryStore) createWalletLocked(wallet *models.Wallet) error {
	if wallet.ID == "" {
		wallet.ID = uuid.NewString()
	}
	wallet.Balance = decimal.Zero
	now := time.Now()
	wallet.CreatedAt = now
	wallet.UpdatedAt = now
	m.wallets[wallet.ID] = cloneWallet(wallet)
	return nil
}

func (m *MemoryStore) GetWallet(id string) (*models.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getWalletLocked(id)
}

func (m *MemoryStore) getWalletLocked(id string) (*models.Wallet, error) {
	w, ok := m.wallets[id]
	if !ok || w.DeletedAt.Valid {
		return nil, ErrWalletNotFound
	}
	return cloneWallet(w), nil
}

func (m *MemoryStore) GetWalletForUpdate(id string) (*models.Wallet, error) {
	// The store mutex already serializes transactions, so a plain read is
	// as strong as a row lock here.
	return m.GetWallet(id)
}

func (m *MemoryStore) FindWallet(userID, name string) (*models.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findWalletLocked(userID, name)
}

func (m *MemoryStore) findWalletLocked(userID, name string) (*models.Wallet, error) {
	for _, w := range m.wallets {
		if w.DeletedAt.Valid {
			continue
		}
		if w.UserID == userID && w.Name == name {
			return cloneWallet(w), nil
		}
	}
	return nil, ErrWalletNotFound
}

func (m *MemoryStore) UpdateWallet(wallet *models.Wallet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateWalletLocked(wallet)
}

func (m *MemoryStore) updateWalletLocked(wallet *models.Wallet) error {
	if _, ok := m.wallets[wallet.ID]; !ok {
		return ErrWalletNotFound
	}
	wallet.UpdatedAt = time.Now()
	m.wallets[wallet.ID] = cloneWallet(wallet)
	return nil
}

func (m *MemoryStore) DeleteWallet(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleteWalletLocked(id)
}

func (m *MemoryStore) deleteWalletLocked(id string) error {
	w, ok := m.wallets[id]
	if !ok || w.DeletedAt.Valid {
		return ErrWalletNotFound
	}
	w.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	return nil
}

func (m *MemoryStore) CreateTransaction(txn *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createTransactionLocked(txn)
}

func (m *MemoryStore) createTransactionLocked(txn *models.Transaction) error {
	if txn.Entity != nil && txn.EntityID != nil {
		exists, err := m.entityTransactionExistsLocked(*txn.Entity, *txn.EntityID)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateTransaction
		}
	}
	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	now := time.Now()
	txn.CreatedAt = now
	txn.UpdatedAt = now
	m.transactions[txn.ID] = cloneTransaction(txn)
	m.txOrder = append(m.txOrder, txn.ID)
	return nil
}

func (m *MemoryStore) GetWalletTransaction(id, walletID string) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getWalletTransactionLocked(id, walletID)
}

func (m *MemoryStore) getWalletTransactionLocked(id, walletID string) (*models.Transaction, error) {
	t, ok := m.transactions[id]
	if !ok || t.DeletedAt.Valid || t.WalletID != walletID {
		return nil, ErrTransactionNotFound
	}
	return cloneTransaction(t), nil
}

func (m *MemoryStore) EntityTransactionExists(entity, entityID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entityTransactionExistsLocked(entity, entityID)
}

func (m *MemoryStore) entityTransactionExistsLocked(entity, entityID string) (bool, error) {
	for _, t := range m.transactions {
		if t.DeletedAt.Valid {
			continue
		}
		if t.Entity != nil && t.EntityID != nil && *t.Entity == entity && *t.EntityID == entityID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) MarkTransactionReversed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.markTransactionReversedLocked(id)
}

func (m *MemoryStore) markTransactionReversedLocked(id string) error {
	t, ok := m.transactions[id]
	if !ok || t.DeletedAt.Valid {
		return ErrTransactionNotFound
	}
	t.Reversed = true
	t.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryStore) DeleteTransaction(string) error {
	return ErrTransactionsImmutable
}

func (m *MemoryStore) CountTransactions(walletID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.countTransactionsLocked(walletID)
}

func (m *MemoryStore) countTransactionsLocked(walletID string) (int64, error) {
	var count int64
	for _, t := range m.transactions {
		if !t.DeletedAt.Valid && t.WalletID == walletID {
			count++
		}
	}
	return count, nil
}

func (m *MemoryStore) ListTransactions(walletID string, opts ListOptions) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listTransactionsLocked(walletID, opts)
}

func (m *MemoryStore) listTransactionsLocked(walletID string, opts ListOptions) ([]models.Transaction, error) {
	var matched []models.Transaction

	// Newest first: walk the insertion order backwards.
	for i := len(m.txOrder) - 1; i >= 0; i-- {
		t := m.transactions[m.txOrder[i]]
		if t.DeletedAt.Valid || t.WalletID != walletID {
			continue
		}
		if opts.Start != nil {
			day := opts.Start.Truncate(24 * time.Hour)
			end := day.Add(24 * time.Hour)
			if opts.End != nil {
				end = opts.End.Truncate(24 * time.Hour).Add(24 * time.Hour)
			}
			if t.CreatedAt.Before(day) || !t.CreatedAt.Before(end) {
				continue
			}
		}
		matched = append(matched, *cloneTransaction(t))
	}

	if opts.Limit > 0 {
		if opts.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[opts.Offset:]
		if len(matched) > opts.Limit {
			matched = matched[:opts.Limit]
		}
	}
	return matched, nil
}

// ExecuteInTransaction holds the store lock for the whole unit and restores
// a snapshot if fn fails, so partial writes never become visible.
func (m *MemoryStore) ExecuteInTransaction(fn func(Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapWallets := make(map[string]*models.Wallet, len(m.wallets))
	for id, w := range m.wallets {
		snapWallets[id] = cloneWallet(w)
	}
	snapTransactions := make(map[string]*models.Transaction, len(m.transactions))
	for id, t := range m.transactions {
		snapTransactions[id] = cloneTransaction(t)
	}
	snapOrder := append([]string(nil), m.txOrder...)

	if err := fn(&memoryTx{store: m}); err != nil {
		m.wallets = snapWallets
		m.transactions = snapTransactions
		m.txOrder = snapOrder
		return err
	}
	return nil
}

func (m *MemoryStore) HasTable(name string) bool {
	return m.tables[name]
}

// memoryTx is the view of a MemoryStore inside ExecuteInTransaction. The
// outer call already holds the lock, so it dispatches straight to the
// locked implementations.
type memoryTx struct {
	store *MemoryStore
}

func (t *memoryTx) CreateWallet(w *models.Wallet) error  { return t.store.createWalletLocked(w) }
func (t *memoryTx) GetWallet(id string) (*models.Wallet, error) {
	return t.store.getWalletLocked(id)
}
func (t *memoryTx) GetWalletForUpdate(id string) (*models.Wallet, error) {
	return t.store.getWalletLocked(id)
}
func (t *memoryTx) FindWallet(userID, name string) (*models.Wallet, error) {
	return t.store.findWalletLocked(userID, name)
}
func (t *memoryTx) UpdateWallet(w *models.Wallet) error { return t.store.updateWalletLocked(w) }
func (t *memoryTx) DeleteWallet(id string) error        { return t.store.deleteWalletLocked(id) }
func (t *memoryTx) CreateTransaction(txn *models.Transaction) error {
	return t.store.createTransactionLocked(txn)
}
func (t *memoryTx) GetWalletTransaction(id, walletID string) (*models.Transaction, error) {
	return t.store.getWalletTransactionLocked(id, walletID)
}
func (t *memoryTx) EntityTransactionExists(entity, entityID string) (bool, error) {
	return t.store.entityTransactionExistsLocked(entity, entityID)
}
func (t *memoryTx) MarkTransactionReversed(id string) error {
	return t.store.markTransactionReversedLocked(id)
}
func (t *memoryTx) DeleteTransaction(string) error { return ErrTransactionsImmutable }
func (t *memoryTx) CountTransactions(walletID string) (int64, error) {
	return t.store.countTransactionsLocked(walletID)
}
func (t *memoryTx) ListTransactions(walletID string, opts ListOptions) ([]models.Transaction, error) {
	return t.store.listTransactionsLocked(walletID, opts)
}
func (t *memoryTx) ExecuteInTransaction(fn func(Store) error) error {
	// Already inside the atomic unit.
	return fn(t)
}
func (t *memoryTx) HasTable(name string) bool { return t.store.tables[name] }
