package domain

import "time"

// Participation statuses
const (
	ParticipationActive = "active" // Joined, eligible to redeem
	ParticipationWon    = "won"    // Redeemed the pot; terminal state
)

// Participation Model — one row per (user, city, cycle)
type Participation struct {
	ID         uint      `gorm:"primaryKey" json:"id"`                                        // Primary key
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_city_cycle" json:"user_id"`     // Joining user
	CityID     string    `gorm:"not null;type:varchar(36);uniqueIndex:idx_user_city_cycle" json:"city_id"` // Target city
	WeekNumber int       `gorm:"not null;uniqueIndex:idx_user_city_cycle" json:"week_number"` // ISO week of the cycle
	Year       int       `gorm:"not null;uniqueIndex:idx_user_city_cycle" json:"year"`        // ISO year of the cycle
	AmountPaid float64   `gorm:"not null" json:"amount_paid"`                                 // Stake debited on join
	Status     string    `gorm:"not null;default:active" json:"status"`                       // active or won
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`                            // Timestamp of join
}
