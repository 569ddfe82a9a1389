package domain

import "time"

// Winner Model — append-only audit snapshot, never mutated
type Winner struct {
	ID         uint      `gorm:"primaryKey" json:"id"`             // Primary key
	UserID     uint      `gorm:"not null;index" json:"user_id"`    // Winning user
	CityID     string    `gorm:"not null;type:varchar(36);index" json:"city_id"` // Redeemed city
	Username   string    `gorm:"not null" json:"username"`         // Denormalized display name
	CityName   string    `gorm:"not null" json:"city_name"`        // Denormalized city name
	AmountWon  float64   `gorm:"not null" json:"amount_won"`       // Full pot at redemption time
	WeekNumber int       `gorm:"not null" json:"week_number"`      // ISO week of the won cycle
	Year       int       `gorm:"not null" json:"year"`             // ISO year of the won cycle
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"` // Timestamp of the win
}
