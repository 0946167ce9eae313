package ledger

import (
	"testing"

	"purse/internal/models"
	"purse/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWallet(t *testing.T, store repositories.Store, balance int64) *models.Wallet {
	t.Helper()

	wallet := &models.Wallet{UserID: "user-1", Name: "Test Wallet"}
	require.NoError(t, store.CreateWallet(wallet))

	if balance != 0 {
		wallet.Balance = decimal.NewFromInt(balance)
		require.NoError(t, store.UpdateWallet(wallet))
	}
	return wallet
}

func TestPost_Credit(t *testing.T) {
	store := repositories.NewMemoryStore()
	wallet := newTestWallet(t, store, 40)

	txn, err := New().Post(store, wallet.ID, decimal.NewFromInt(25), "Top up", models.TransactionTypeCredit, nil)
	require.NoError(t, err)

	assert.Equal(t, wallet.ID, txn.WalletID)
	assert.Equal(t, models.TransactionTypeCredit, txn.Type)
	assert.True(t, txn.Balance.Equal(decimal.NewFromInt(65)), "got balance %s", txn.Balance)
	assert.Len(t, txn.Reference, 15)
	assert.False(t, txn.Reversed)
	assert.Nil(t, txn.Entity)
}

func TestPost_Debit(t *testing.T) {
	store := repositories.NewMemoryStore()
	wallet := newTestWallet(t, store, 40)

	txn, err := New().Post(store, wallet.ID, decimal.NewFromInt(15), "Purchase", models.TransactionTypeDebit, nil)
	require.NoError(t, err)

	assert.Equal(t, models.TransactionTypeDebit, txn.Type)
	assert.True(t, txn.Balance.Equal(decimal.NewFromInt(25)), "got balance %s", txn.Balance)
}

func TestPost_UnknownTypeIsAFault(t *testing.T) {
	store := repositories.NewMemoryStore()
	wallet := newTestWallet(t, store, 0)

	_, err := New().Post(store, wallet.ID, decimal.NewFromInt(5), "Bad", "transfer", nil)
	assert.ErrorIs(t, err, ErrInvalidTransactionType)
}

func TestPost_MissingWallet(t *testing.T) {
	store := repositories.NewMemoryStore()

	_, err := New().Post(store, "no-such-wallet", decimal.NewFromInt(5), "Ghost", models.TransactionTypeCredit, nil)
	assert.ErrorIs(t, err, ErrWalletGone)
}

func TestPost_UnprovisionedStore(t *testing.T) {
	store := repositories.NewUnprovisionedMemoryStore()

	_, err := New().Post(store, "any", decimal.NewFromInt(5), "Early", models.TransactionTypeCredit, nil)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestPost_RecordsEntity(t *testing.T) {
	store := repositories.NewMemoryStore()
	wallet := newTestWallet(t, store, 0)
	entity := &EntityRef{Type: "payment", ID: "pay-42"}

	txn, err := New().Post(store, wallet.ID, decimal.NewFromInt(5), "Payment", models.TransactionTypeCredit, entity)
	require.NoError(t, err)
	require.NotNil(t, txn.Entity)
	assert.Equal(t, "payment", *txn.Entity)
	assert.Equal(t, "pay-42", *txn.EntityID)

	// A second posting against the same entity hits the store uniqueness.
	_, err = New().Post(store, wallet.ID, decimal.NewFromInt(9), "Payment again", models.TransactionTypeDebit, entity)
	assert.ErrorIs(t, err, repositories.ErrDuplicateTransaction)
}

func TestExists(t *testing.T) {
	store := repositories.NewMemoryStore()
	wallet := newTestWallet(t, store, 0)
	l := New()

	exists, err := l.Exists(store, nil)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = l.Exists(store, &EntityRef{Type: "payment"})
	assert.ErrorIs(t, err, ErrMissingIdentifier)

	entity := &EntityRef{Type: "payment", ID: "pay-7"}
	exists, err = l.Exists(store, entity)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = l.Post(store, wallet.ID, decimal.NewFromInt(5), "Payment", models.TransactionTypeCredit, entity)
	require.NoError(t, err)

	exists, err = l.Exists(store, entity)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestReverse(t *testing.T) {
	store := repositories.NewMemoryStore()
	wallet := newTestWallet(t, store, 0)
	l := New()

	original, err := l.Post(store, wallet.ID, decimal.NewFromInt(30), "Deposit", models.TransactionTypeCredit, nil)
	require.NoError(t, err)

	// The wallet balance moves to 30 before the reversal, as the wallet
	// service would do.
	wallet.Balance = original.Balance
	require.NoError(t, store.UpdateWallet(wallet))

	counter, err := l.Reverse(store, original, nil)
	require.NoError(t, err)

	assert.Equal(t, models.TransactionTypeDebit, counter.Type)
	assert.True(t, counter.Amount.Equal(original.Amount))
	assert.Equal(t, wallet.ID, counter.WalletID)
	assert.Equal(t, "Transaction reversal of Deposit", counter.Description)
	assert.True(t, counter.Balance.Equal(decimal.Zero), "got balance %s", counter.Balance)

	stored, err := store.GetWalletTransaction(original.ID, wallet.ID)
	require.NoError(t, err)
	assert.True(t, stored.Reversed)
}

func TestReverse_CorruptTypeIsAFault(t *testing.T) {
	store := repositories.NewMemoryStore()
	wallet := newTestWallet(t, store, 0)

	corrupt := &models.Transaction{
		WalletID: wallet.ID,
		Type:     "refund",
		Amount:   decimal.NewFromInt(5),
	}
	require.NoError(t, store.CreateTransaction(corrupt))

	_, err := New().Reverse(store, corrupt, nil)
	assert.ErrorIs(t, err, ErrInvalidTransactionType)
}
