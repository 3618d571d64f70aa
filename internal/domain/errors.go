package domain

import "errors"

var (
	// Precondition violations
	ErrInvalidAmount       = errors.New("amount must be a non-negative decimal")
	ErrInvalidFundingGoal  = errors.New("funding goal must be positive")
	ErrInvalidPledgerCount = errors.New("number of pledgers must be positive")
	ErrInvalidFeeSchedule  = errors.New("invalid fee schedule")

	// Draft validation errors
	ErrFundingGoalOutOfRange = errors.New("funding goal out of range")
	ErrPledgersOutOfRange    = errors.New("number of pledgers out of range")
	ErrInvalidReason         = errors.New("invalid campaign reason")
	ErrInvalidDeadline       = errors.New("invalid campaign deadline")
)
