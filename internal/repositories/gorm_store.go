package repositories

import (
	"errors"
	"fmt"
	"time"

	"purse/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormStore struct {
	db *gorm.DB
}

// NewGormStore wraps a gorm connection in the Store contract. The
// connection must be opened with TranslateError so unique index violations
// surface as gorm.ErrDuplicatedKey (InitDB does this).
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) CreateWallet(wallet *models.Wallet) error {
	if err := s.db.Create(wallet).Error; err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

func (s *gormStore) GetWallet(id string) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := s.db.First(&wallet, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (s *gormStore) GetWalletForUpdate(id string) (*models.Wallet, error) {
	var wallet models.Wallet
	err := s.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&wallet, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	return &wallet, nil
}

func (s *gormStore) FindWallet(userID, name string) (*models.Wallet, error) {
	var wallet models.Wallet
	err := s.db.Where("user_id = ? AND name = ?", userID, name).First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to find wallet: %w", err)
	}
	return &wallet, nil
}

func (s *gormStore) UpdateWallet(wallet *models.Wallet) error {
	if err := s.db.Save(wallet).Error; err != nil {
		return fmt.Errorf("failed to update wallet: %w", err)
	}
	return nil
}

func (s *gormStore) DeleteWallet(id string) error {
	result := s.db.Delete(&models.Wallet{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete wallet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrWalletNotFound
	}
	return nil
}

func (s *gormStore) CreateTransaction(txn *models.Transaction) error {
	if err := s.db.Create(txn).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateTransaction
		}
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (s *gormStore) GetWalletTransaction(id, walletID string) (*models.Transaction, error) {
	var txn models.Transaction
	err := s.db.Where("id = ? AND wallet_id = ?", id, walletID).First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &txn, nil
}

func (s *gormStore) EntityTransactionExists(entity, entityID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Transaction{}).
		Where("entity = ? AND entity_id = ?", entity, entityID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check entity transaction: %w", err)
	}
	return count > 0, nil
}

func (s *gormStore) MarkTransactionReversed(id string) error {
	result := s.db.Model(&models.Transaction{}).
		Where("id = ?", id).
		Update("reversed", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark transaction reversed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (s *gormStore) DeleteTransaction(string) error {
	return ErrTransactionsImmutable
}

func (s *gormStore) CountTransactions(walletID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.Transaction{}).
		Where("wallet_id = ?", walletID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func (s *gormStore) ListTransactions(walletID string, opts ListOptions) ([]models.Transaction, error) {
	q := s.db.Where("wallet_id = ?", walletID).Order("created_at DESC")

	if opts.Start != nil {
		day := opts.Start.Truncate(24 * time.Hour)
		end := day.Add(24 * time.Hour)
		if opts.End != nil {
			end = opts.End.Truncate(24 * time.Hour).Add(24 * time.Hour)
		}
		q = q.Where("created_at >= ? AND created_at < ?", day, end)
	}

	if opts.Limit > 0 {
		q = q.Limit(opts.Limit).Offset(opts.Offset)
	}

	var txns []models.Transaction
	if err := q.Find(&txns).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

func (s *gormStore) ExecuteInTransaction(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func (s *gormStore) HasTable(name string) bool {
	return s.db.Migrator().HasTable(name)
}
