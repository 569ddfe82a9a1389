package lottery

import (
	"context"

	"github.com/cashcashapp/cashcash-backend/internal/domain"
)

// GlobalStats is the public, unauthenticated summary of the whole game.
type GlobalStats struct {
	TotalPot         float64 `json:"total_pot"`
	TotalWinners     int64   `json:"total_winners"`
	TotalDistributed float64 `json:"total_distributed"`
	ActiveCities     int64   `json:"active_cities"`
}

// Stats aggregates pots, winners and distributed amounts across all cities.
func (s *Service) Stats(ctx context.Context) (*GlobalStats, error) {
	db := s.db.WithContext(ctx)
	var stats GlobalStats

	if err := db.Model(&domain.City{}).
		Select("COALESCE(SUM(pot_amount), 0)").
		Scan(&stats.TotalPot).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Winner{}).Count(&stats.TotalWinners).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Winner{}).
		Select("COALESCE(SUM(amount_won), 0)").
		Scan(&stats.TotalDistributed).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.City{}).
		Where("is_active = ?", true).
		Count(&stats.ActiveCities).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
