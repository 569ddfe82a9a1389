package lottery

import "errors"

// Business errors returned by the engine. All of them are recoverable by the
// caller and map to 4xx at the HTTP layer; anything else coming out of the
// engine is a storage failure and maps to 5xx.
var (
	ErrCityNotFound         = errors.New("city not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrAlreadyParticipating = errors.New("already participating this cycle")
	ErrNotParticipating     = errors.New("no active participation for this cycle")
	ErrInvalidCode          = errors.New("invalid redemption code")
	ErrConflict             = errors.New("concurrent update, retry the operation")
	ErrInvalidAmount        = errors.New("amount below minimum")
)
