package domain

import "time"

// User Model
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`                     // Primary key
	Email         string    `gorm:"unique;not null" json:"email"`             // Unique email used for login
	Username      string    `gorm:"not null" json:"username"`                 // Display name
	Password      string    `gorm:"not null" json:"-"`                        // Hashed password
	WalletBalance float64   `gorm:"not null;default:0" json:"wallet_balance"` // Materialized sum of ledger entries
	IsAdmin       bool      `gorm:"default:false" json:"is_admin"`            // Administrator flag
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`         // Timestamp of registration
}
