package lottery

import (
	"time"

	"github.com/cashcashapp/cashcash-backend/internal/cycle"
	"gorm.io/gorm"
)

const (
	// StakeAmount is the fixed price of joining a city's weekly cycle.
	// The full stake is credited to the pot.
	StakeAmount = 1.00
	// MinAmount is the floor for deposits and withdrawals.
	MinAmount = 0.01
)

// Service is the participation and redemption engine. It owns every mutation
// of wallet balances, city pots and participation state; handlers never
// touch those columns directly.
type Service struct {
	db  *gorm.DB
	now cycle.Clock
}

// NewService builds an engine on top of the shared database handle.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// NewServiceWithClock is NewService with an injected clock, used by tests to
// cross cycle boundaries.
func NewServiceWithClock(db *gorm.DB, clock cycle.Clock) *Service {
	return &Service{db: db, now: clock}
}

// CurrentCycle resolves "which cycle are we in" for the engine's clock.
func (s *Service) CurrentCycle() cycle.Cycle {
	return cycle.At(s.now())
}
