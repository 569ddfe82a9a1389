package domain

import "time"

// Transaction kinds
const (
	TxDeposit       = "deposit"       // Credit from outside the lottery
	TxWithdrawal    = "withdrawal"    // Debit to outside the lottery
	TxParticipation = "participation" // Stake debited on join
	TxWin           = "win"           // Pot credited on redemption
)

// Transaction Model — append-only wallet ledger entry
type Transaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`             // Primary key
	UserID      uint      `gorm:"not null;index" json:"user_id"`    // Owning user
	Type        string    `gorm:"not null" json:"type"`             // deposit, withdrawal, participation, win
	Amount      float64   `gorm:"not null" json:"amount"`           // Signed amount; balance == sum of these
	Description string    `json:"description"`                      // Human-readable context
	Status      string    `gorm:"default:completed" json:"status"`  // Entry status
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"` // Timestamp of the entry
}
