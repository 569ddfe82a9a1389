package domain

import "time"

// City Model
type City struct {
	ID                string    `gorm:"primaryKey;type:varchar(36)" json:"id"`       // UUID primary key
	Name              string    `gorm:"not null" json:"name"`                        // Display name
	Slug              string    `gorm:"unique;not null" json:"slug"`                 // URL-friendly identifier
	ImageURL          *string   `json:"image_url,omitempty"`                         // Optional city image
	PotAmount         float64   `gorm:"not null;default:0" json:"pot_amount"`        // Accumulated stakes for the current cycle
	ParticipantsCount int       `gorm:"not null;default:0" json:"participants_count"` // Joined users this cycle
	IsActive          bool      `gorm:"default:true" json:"is_active"`               // Inactive cities are hidden from listings
	QRCodeSecret      string    `gorm:"not null" json:"-"`                           // Redemption secret, rotated on every win
	HintImage         *string   `json:"hint_image,omitempty"`                        // Clue image reference
	HintPublished     bool      `gorm:"default:false" json:"hint_published"`         // Whether the clue is visible to players
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`            // Timestamp of creation
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`            // Timestamp of last update
}
