package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Wallet holds a single running balance for one owner. The balance is only
// ever written through the ledger's credit/debit/reverse protocol; it always
// equals the balance snapshot of the wallet's most recent transaction.
type Wallet struct {
	ID        string          `gorm:"type:uuid;primaryKey"`
	UserID    string          `gorm:"size:36;not null;index"`
	Name      string          `gorm:"size:255"`
	Balance   decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	// Wallets always open with a zero balance.
	w.Balance = decimal.Zero
	return nil
}
