package lottery

import (
	"context"
	"errors"

	"github.com/cashcashapp/cashcash-backend/internal/domain"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Join debits the stake from the user's wallet and enters them into the
// city's current cycle. The participation row, the ledger entry, the balance
// decrement and the pot increment are one atomic unit: a failure anywhere
// rolls back everything.
func (s *Service) Join(ctx context.Context, userID uint, cityID string) (float64, error) {
	cur := s.CurrentCycle()
	var newBalance float64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var city domain.City
		if err := tx.Where("id = ? AND is_active = ?", cityID, true).First(&city).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCityNotFound
			}
			return err
		}

		var user domain.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if user.WalletBalance < StakeAmount {
			return ErrInsufficientFunds
		}

		var existing int64
		if err := tx.Model(&domain.Participation{}).
			Where("user_id = ? AND city_id = ? AND week_number = ? AND year = ?",
				userID, city.ID, cur.Week, cur.Year).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyParticipating
		}

		participation := domain.Participation{
			UserID:     userID,
			CityID:     city.ID,
			WeekNumber: cur.Week,
			Year:       cur.Year,
			AmountPaid: StakeAmount,
			Status:     domain.ParticipationActive,
		}
		// The unique index on (user, city, week, year) closes the race the
		// count above cannot see.
		if err := tx.Create(&participation).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyParticipating
			}
			return err
		}

		entry := domain.Transaction{
			UserID:      userID,
			Type:        domain.TxParticipation,
			Amount:      -StakeAmount,
			Description: "Participation " + city.Name,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		// Guarded decrement: the balance check above is advisory, this is
		// what actually prevents a negative balance under concurrency.
		res := tx.Model(&domain.User{}).
			Where("id = ? AND wallet_balance >= ?", userID, StakeAmount).
			Update("wallet_balance", gorm.Expr("wallet_balance - ?", StakeAmount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientFunds
		}

		if err := tx.Model(&domain.City{}).Where("id = ?", city.ID).
			Updates(map[string]interface{}{
				"pot_amount":         gorm.Expr("pot_amount + ?", StakeAmount),
				"participants_count": gorm.Expr("participants_count + ?", 1),
			}).Error; err != nil {
			return err
		}

		newBalance = user.WalletBalance - StakeAmount
		return nil
	})
	if err != nil {
		return 0, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"city_id": cityID,
		"week":    cur.Week,
		"year":    cur.Year,
		"stake":   StakeAmount,
	}).Info("Participation registered")
	return newBalance, nil
}
