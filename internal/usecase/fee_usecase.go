package usecase

import (
	"context"
	"fmt"

	"github.com/iho/gopledge/internal/domain"
)

// FeeUseCase exposes the single-amount fee functions.
type FeeUseCase struct {
	schedule domain.FeeSchedule
}

// NewFeeUseCase creates a new FeeUseCase.
func NewFeeUseCase(schedule domain.FeeSchedule) *FeeUseCase {
	return &FeeUseCase{schedule: schedule}
}

// FeeTable lists every fee figure for one amount.
type FeeTable struct {
	Amount                   domain.Money
	PlatformFee              domain.Money
	AmountPlusPlatformFee    domain.Money
	ProcessingFee            domain.Money
	AmountPlusProcessingFee  domain.Money
	AmountMinusProcessingFee domain.Money
}

// Fees computes the fee table for amount. AmountMinusProcessingFee treats
// amount as fee-inclusive; the other figures treat it as fee-exclusive.
func (uc *FeeUseCase) Fees(ctx context.Context, amount domain.Money) (*FeeTable, error) {
	s := uc.schedule
	if amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	if amount.GreaterThan(s.MaximumFundingGoal) {
		return nil, fmt.Errorf("%w: %s above %s", domain.ErrInvalidAmount, amount, s.MaximumFundingGoal)
	}

	return &FeeTable{
		Amount:                   amount,
		PlatformFee:              s.PlatformFee(amount),
		AmountPlusPlatformFee:    s.AmountPlusPlatformFee(amount),
		ProcessingFee:            s.ProcessingFee(amount),
		AmountPlusProcessingFee:  s.AmountPlusProcessingFee(amount),
		AmountMinusProcessingFee: s.AmountMinusProcessingFee(amount),
	}, nil
}
