package lottery

import (
	"context"
	"testing"

	"github.com/cashcashapp/cashcash-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepositAndWithdraw(t *testing.T) {
	svc, db, _ := newTestService(t)
	user := createUser(t, db, "saver@example.com")

	balance, err := svc.Deposit(context.Background(), user.ID, 10)
	require.NoError(t, err)
	assert.InDelta(t, 10, balance, 1e-9)

	balance, err = svc.Withdraw(context.Background(), user.ID, 2.5)
	require.NoError(t, err)
	assert.InDelta(t, 7.5, balance, 1e-9)

	got, err := svc.Balance(context.Background(), user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 7.5, got, 1e-9)

	assertBalanceConservation(t, db, user.ID)
}

func TestAmountFloor(t *testing.T) {
	svc, db, _ := newTestService(t)
	user := createUser(t, db, "tiny@example.com")

	_, err := svc.Deposit(context.Background(), user.ID, 0.001)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = svc.Withdraw(context.Background(), user.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	var count int64
	require.NoError(t, db.Model(&domain.Transaction{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	svc, db, _ := newTestService(t)
	user := createUser(t, db, "short@example.com")
	fund(t, svc, user.ID, 3)

	_, err := svc.Withdraw(context.Background(), user.ID, 3.01)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	// The rejected withdrawal left no ledger entry behind
	assert.InDelta(t, 3, reloadUser(t, db, user.ID).WalletBalance, 1e-9)
	assertBalanceConservation(t, db, user.ID)
}

func TestDepositUnknownUser(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Deposit(context.Background(), 9999, 5)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestTransactionsNewestFirst(t *testing.T) {
	svc, db, _ := newTestService(t)
	user := createUser(t, db, "history@example.com")
	city := createCity(t, db, "Dijon", "secret-dijon")

	fund(t, svc, user.ID, 5)
	_, err := svc.Join(context.Background(), user.ID, city.ID)
	require.NoError(t, err)
	_, err = svc.Withdraw(context.Background(), user.ID, 1)
	require.NoError(t, err)

	entries, err := svc.Transactions(context.Background(), user.ID, 50)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, domain.TxWithdrawal, entries[0].Type)
	assert.Equal(t, domain.TxParticipation, entries[1].Type)
	assert.Equal(t, domain.TxDeposit, entries[2].Type)

	// Limit caps the page
	entries, err = svc.Transactions(context.Background(), user.ID, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
