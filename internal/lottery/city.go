package lottery

import (
	"context"

	"github.com/cashcashapp/cashcash-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// CityView is a city as seen by a player: the city row annotated with that
// player's participation state for the current cycle.
type CityView struct {
	domain.City
	UserHasParticipated bool `json:"user_has_participated"`
	HintAvailable       bool `json:"hint_available"`
}

// ListCities returns all active cities annotated for the given user.
func (s *Service) ListCities(ctx context.Context, userID uint) ([]CityView, error) {
	cur := s.CurrentCycle()

	var cities []domain.City
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("name").Find(&cities).Error; err != nil {
		return nil, err
	}

	var participations []domain.Participation
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND week_number = ? AND year = ? AND status = ?",
			userID, cur.Week, cur.Year, domain.ParticipationActive).
		Find(&participations).Error; err != nil {
		return nil, err
	}
	joined := make(map[string]bool, len(participations))
	for _, p := range participations {
		joined[p.CityID] = true
	}

	views := make([]CityView, len(cities))
	for i, c := range cities {
		views[i] = CityView{
			City:                c,
			UserHasParticipated: joined[c.ID],
			HintAvailable:       c.HintPublished && c.HintImage != nil,
		}
	}
	return views, nil
}

// AllCities returns every city including inactive ones, for administrators.
func (s *Service) AllCities(ctx context.Context) ([]domain.City, error) {
	var cities []domain.City
	if err := s.db.WithContext(ctx).Order("created_at").Find(&cities).Error; err != nil {
		return nil, err
	}
	return cities, nil
}

// CreateCity registers a new city with a fresh redemption secret and a zero
// pot. When slugStr is empty it is derived from the name.
func (s *Service) CreateCity(ctx context.Context, name, slugStr string, imageURL *string) (*domain.City, error) {
	if slugStr == "" {
		slugStr = slug.Make(name)
	}
	secret, err := NewSecret()
	if err != nil {
		return nil, err
	}
	city := domain.City{
		ID:           uuid.NewString(),
		Name:         name,
		Slug:         slugStr,
		ImageURL:     imageURL,
		IsActive:     true,
		QRCodeSecret: secret,
	}
	if err := s.db.WithContext(ctx).Create(&city).Error; err != nil {
		return nil, err
	}
	return &city, nil
}

// DeactivateCity hides a city from player-facing listings. History is kept;
// rows are never hard-deleted.
func (s *Service) DeactivateCity(ctx context.Context, cityID string) error {
	res := s.db.WithContext(ctx).Model(&domain.City{}).
		Where("id = ?", cityID).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCityNotFound
	}
	return nil
}

// PublishHint attaches a clue image to a city and makes it visible.
func (s *Service) PublishHint(ctx context.Context, cityID, imageURL string) error {
	res := s.db.WithContext(ctx).Model(&domain.City{}).
		Where("id = ?", cityID).
		Updates(map[string]interface{}{
			"hint_image":     imageURL,
			"hint_published": true,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCityNotFound
	}
	return nil
}

// UnpublishHint hides a city's clue without clearing the pot or the secret.
func (s *Service) UnpublishHint(ctx context.Context, cityID string) error {
	res := s.db.WithContext(ctx).Model(&domain.City{}).
		Where("id = ?", cityID).
		Update("hint_published", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCityNotFound
	}
	return nil
}
