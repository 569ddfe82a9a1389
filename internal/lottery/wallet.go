package lottery

import (
	"context"
	"errors"

	"github.com/cashcashapp/cashcash-backend/internal/domain"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Deposit credits the user's wallet. The ledger entry and the balance update
// share one transaction so the materialized balance never drifts from the
// sum of entries.
func (s *Service) Deposit(ctx context.Context, userID uint, amount float64) (float64, error) {
	if amount < MinAmount {
		return 0, ErrInvalidAmount
	}
	var newBalance float64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user domain.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		entry := domain.Transaction{
			UserID:      userID,
			Type:        domain.TxDeposit,
			Amount:      amount,
			Description: "Wallet deposit",
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.User{}).Where("id = ?", userID).
			Update("wallet_balance", gorm.Expr("wallet_balance + ?", amount)).Error; err != nil {
			return err
		}
		newBalance = user.WalletBalance + amount
		return nil
	})
	if err != nil {
		return 0, err
	}
	logrus.WithFields(logrus.Fields{"user_id": userID, "amount": amount, "type": domain.TxDeposit}).Info("Deposit")
	return newBalance, nil
}

// Withdraw debits the user's wallet. Fails ErrInsufficientFunds rather than
// clamping; the guarded decrement keeps the balance non-negative under
// concurrent withdrawals.
func (s *Service) Withdraw(ctx context.Context, userID uint, amount float64) (float64, error) {
	if amount < MinAmount {
		return 0, ErrInvalidAmount
	}
	var newBalance float64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user domain.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if user.WalletBalance < amount {
			return ErrInsufficientFunds
		}
		entry := domain.Transaction{
			UserID:      userID,
			Type:        domain.TxWithdrawal,
			Amount:      -amount,
			Description: "Wallet withdrawal",
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		res := tx.Model(&domain.User{}).
			Where("id = ? AND wallet_balance >= ?", userID, amount).
			Update("wallet_balance", gorm.Expr("wallet_balance - ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientFunds
		}
		newBalance = user.WalletBalance - amount
		return nil
	})
	if err != nil {
		return 0, err
	}
	logrus.WithFields(logrus.Fields{"user_id": userID, "amount": amount, "type": domain.TxWithdrawal}).Info("Withdrawal")
	return newBalance, nil
}

// Transactions returns the user's ledger entries, newest first.
func (s *Service) Transactions(ctx context.Context, userID uint, limit int) ([]domain.Transaction, error) {
	var entries []domain.Transaction
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Balance reads the materialized wallet balance.
func (s *Service) Balance(ctx context.Context, userID uint) (float64, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return user.WalletBalance, nil
}
