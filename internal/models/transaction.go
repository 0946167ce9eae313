package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction types
const (
	TransactionTypeCredit = "credit"
	TransactionTypeDebit  = "debit"
)

// Transaction is an immutable ledger entry recording one balance change.
// Balance is the wallet balance at the moment of posting; it is never
// recomputed. The only field that may change after creation is Reversed,
// which flips false to true at most once.
type Transaction struct {
	ID          string          `gorm:"type:uuid;primaryKey"`
	WalletID    string          `gorm:"type:uuid;not null;index"`
	Type        string          `gorm:"size:6;not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Balance     decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Description string          `gorm:"type:text"`
	Reference   string          `gorm:"size:15;not null"`
	Reversed    bool            `gorm:"not null;default:false"`
	Entity      *string         `gorm:"size:255;uniqueIndex:idx_transactions_entity"`
	EntityID    *string         `gorm:"size:36;uniqueIndex:idx_transactions_entity"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName keeps the historical table name.
func (Transaction) TableName() string {
	return "wallet_transactions"
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
