package lottery

import (
	"context"
	"errors"

	"github.com/cashcashapp/cashcash-backend/internal/domain"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Redeem awards the city's pot to the first participant presenting the
// current QR secret. Exactly one redemption can succeed per cycle: the city
// reset is a compare-and-swap on (secret, pot), so a concurrent winner that
// read the same state loses the swap and gets ErrConflict, and any attempt
// after the reset fails ErrInvalidCode against the rotated secret.
func (s *Service) Redeem(ctx context.Context, userID uint, cityID, code string) (float64, float64, error) {
	cur := s.CurrentCycle()
	var amountWon, newBalance float64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var city domain.City
		if err := tx.Where("id = ?", cityID).First(&city).Error; err != nil {
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

		var participation domain.Participation
		if err := tx.Where(
			"user_id = ? AND city_id = ? AND week_number = ? AND year = ? AND status = ?",
			userID, city.ID, cur.Week, cur.Year, domain.ParticipationActive,
		).First(&participation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotParticipating
			}
			return err
		}

		// Exact, case-sensitive match against the current secret.
		if city.QRCodeSecret == "" || code != city.QRCodeSecret {
			return ErrInvalidCode
		}

		newSecret, err := NewSecret()
		if err != nil {
			return err
		}

		// Reset the city only if nobody touched the secret or the pot since
		// we read them. The amount credited is the pot value this swap
		// matched on, never an earlier read.
		amount := city.PotAmount
		res := tx.Model(&domain.City{}).
			Where("id = ? AND qr_code_secret = ? AND pot_amount = ?", city.ID, city.QRCodeSecret, city.PotAmount).
			Updates(map[string]interface{}{
				"pot_amount":         0,
				"participants_count": 0,
				"hint_published":     false,
				"hint_image":         nil,
				"qr_code_secret":     newSecret,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		if err := tx.Model(&domain.User{}).Where("id = ?", userID).
			Update("wallet_balance", gorm.Expr("wallet_balance + ?", amount)).Error; err != nil {
			return err
		}

		entry := domain.Transaction{
			UserID:      userID,
			Type:        domain.TxWin,
			Amount:      amount,
			Description: "Pot won in " + city.Name,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		upd := tx.Model(&domain.Participation{}).
			Where("id = ? AND status = ?", participation.ID, domain.ParticipationActive).
			Update("status", domain.ParticipationWon)
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			return ErrConflict
		}

		winner := domain.Winner{
			UserID:     userID,
			CityID:     city.ID,
			Username:   user.Username,
			CityName:   city.Name,
			AmountWon:  amount,
			WeekNumber: cur.Week,
			Year:       cur.Year,
		}
		if err := tx.Create(&winner).Error; err != nil {
			return err
		}

		amountWon = amount
		newBalance = user.WalletBalance + amount
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"city_id":    cityID,
		"amount_won": amountWon,
		"week":       cur.Week,
		"year":       cur.Year,
	}).Info("Pot redeemed")
	return amountWon, newBalance, nil
}
