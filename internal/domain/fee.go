package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FeeSchedule holds the pricing constants of the pledge engine. All of its
// methods are pure and safe for concurrent use.
type FeeSchedule struct {
	// PlatformFeeRate is charged on each pledger's gross share.
	PlatformFeeRate decimal.Decimal
	// ProcessingFeeRate and ProcessingFeeFixed model the payment
	// processor's percentage-plus-fixed pricing.
	ProcessingFeeRate  decimal.Decimal
	ProcessingFeeFixed decimal.Decimal

	MinimumPledge Money
	MaximumPledge Money

	MinimumFundingGoal Money
	MaximumFundingGoal Money

	MaxReasonLength int
	MaxDeadline     time.Duration

	// RoundUp selects ceil instead of floor truncation for every derived amount.
	RoundUp bool
}

// DefaultFeeSchedule returns the production pricing.
func DefaultFeeSchedule() FeeSchedule {
	return FeeSchedule{
		PlatformFeeRate:    decimal.RequireFromString("0.01"),
		ProcessingFeeRate:  decimal.RequireFromString("0.029"),
		ProcessingFeeFixed: decimal.RequireFromString("0.30"),
		MinimumPledge:      Cents(50),
		MaximumPledge:      Cents(99_999_999),
		MinimumFundingGoal: Cents(100),
		MaximumFundingGoal: Cents(100_000_000_000),
		MaxReasonLength:    26,
		MaxDeadline:        365 * 24 * time.Hour,
	}
}

// Validate checks that the schedule can produce finite, non-negative amounts.
func (s FeeSchedule) Validate() error {
	one := decimal.NewFromInt(1)

	switch {
	case s.PlatformFeeRate.IsNegative() || s.PlatformFeeRate.GreaterThanOrEqual(one):
		return fmt.Errorf("%w: platform fee rate %s not in [0, 1)", ErrInvalidFeeSchedule, s.PlatformFeeRate)
	case s.ProcessingFeeRate.IsNegative() || s.ProcessingFeeRate.GreaterThanOrEqual(one):
		return fmt.Errorf("%w: processing fee rate %s not in [0, 1)", ErrInvalidFeeSchedule, s.ProcessingFeeRate)
	case s.ProcessingFeeFixed.IsNegative():
		return fmt.Errorf("%w: processing fee fixed part %s is negative", ErrInvalidFeeSchedule, s.ProcessingFeeFixed)
	case !s.MinimumPledge.IsPositive():
		return fmt.Errorf("%w: minimum pledge must be positive", ErrInvalidFeeSchedule)
	case s.MaximumPledge.LessThan(s.MinimumPledge):
		return fmt.Errorf("%w: maximum pledge %s below minimum pledge %s", ErrInvalidFeeSchedule, s.MaximumPledge, s.MinimumPledge)
	case !s.MinimumFundingGoal.IsPositive():
		return fmt.Errorf("%w: minimum funding goal must be positive", ErrInvalidFeeSchedule)
	case s.MaximumFundingGoal.LessThan(s.MinimumFundingGoal):
		return fmt.Errorf("%w: maximum funding goal %s below minimum funding goal %s", ErrInvalidFeeSchedule, s.MaximumFundingGoal, s.MinimumFundingGoal)
	}

	return nil
}

func (s FeeSchedule) truncate(d decimal.Decimal) Money {
	return Truncate(d, s.RoundUp)
}

// divide returns num/den truncated to cents. QuoRem keeps the quotient exact
// to the cent, so the rounding decision never depends on a float.
func (s FeeSchedule) divide(num, den decimal.Decimal) Money {
	q, r := num.QuoRem(den, 2)
	m := Money{cents: q.Shift(2).IntPart()}
	if s.RoundUp && r.IsPositive() {
		m.cents++
	}
	return m
}

// PlatformFee is truncate(amount * platformFeeRate).
func (s FeeSchedule) PlatformFee(amount Money) Money {
	return s.truncate(amount.Decimal().Mul(s.PlatformFeeRate))
}

// AmountPlusPlatformFee is truncate(amount + platformFee(amount)).
func (s FeeSchedule) AmountPlusPlatformFee(amount Money) Money {
	return s.truncate(amount.Decimal().Add(s.PlatformFee(amount).Decimal()))
}

// ProcessingFee is truncate(amount * processingFeeRate + processingFeeFixed).
func (s FeeSchedule) ProcessingFee(amount Money) Money {
	return s.truncate(amount.Decimal().Mul(s.ProcessingFeeRate).Add(s.ProcessingFeeFixed))
}

// AmountMinusProcessingFee backs the processing fee out of a fee-inclusive
// amount by charging the fee on that amount itself.
func (s FeeSchedule) AmountMinusProcessingFee(amount Money) Money {
	return s.truncate(amount.Decimal().Sub(s.ProcessingFee(amount).Decimal()))
}

// AmountPlusProcessingFee returns the fee-inclusive amount whose processing
// fee leaves amount behind: truncate((amount + fixed) / (1 - rate)).
func (s FeeSchedule) AmountPlusProcessingFee(amount Money) Money {
	num := amount.Decimal().Add(s.ProcessingFeeFixed)
	den := decimal.NewFromInt(1).Sub(s.ProcessingFeeRate)
	return s.divide(num, den)
}

// MinimumPossiblePledgers is ceil(fundingGoal / maximumPledge).
func (s FeeSchedule) MinimumPossiblePledgers(fundingGoal Money) (int64, error) {
	if !fundingGoal.IsPositive() {
		return 0, fmt.Errorf("%w: got %s", ErrInvalidFundingGoal, fundingGoal)
	}
	return (fundingGoal.cents-1)/s.MaximumPledge.cents + 1, nil
}

// MaximumPossiblePledgers is floor(fundingGoal / minimumPledge).
func (s FeeSchedule) MaximumPossiblePledgers(fundingGoal Money) (int64, error) {
	if !fundingGoal.IsPositive() {
		return 0, fmt.Errorf("%w: got %s", ErrInvalidFundingGoal, fundingGoal)
	}
	return fundingGoal.cents / s.MinimumPledge.cents, nil
}

// PledgerBounds returns both pledger-count bounds for a funding goal.
func (s FeeSchedule) PledgerBounds(fundingGoal Money) (minimum, maximum int64, err error) {
	if minimum, err = s.MinimumPossiblePledgers(fundingGoal); err != nil {
		return 0, 0, err
	}
	if maximum, err = s.MaximumPossiblePledgers(fundingGoal); err != nil {
		return 0, 0, err
	}
	return minimum, maximum, nil
}

// GrossPledge is each pledger's share of the funding goal before fees.
// The count is not clamped; callers keep it within PledgerBounds.
func (s FeeSchedule) GrossPledge(fundingGoal Money, pledgers int64) (Money, error) {
	if err := checkPledge(fundingGoal, pledgers); err != nil {
		return Money{}, err
	}
	return s.divide(fundingGoal.Decimal(), decimal.NewFromInt(pledgers)), nil
}

// PledgeChargePlusFees is what each pledger pays: the platform fee is added
// to the gross share first and the processing fee on top of that.
func (s FeeSchedule) PledgeChargePlusFees(fundingGoal Money, pledgers int64) (Money, error) {
	gross, err := s.GrossPledge(fundingGoal, pledgers)
	if err != nil {
		return Money{}, err
	}
	return s.AmountPlusProcessingFee(s.AmountPlusPlatformFee(gross)), nil
}

// NetProceeds is (grossPledge - platformFee(grossPledge)) * pledgers.
func (s FeeSchedule) NetProceeds(fundingGoal Money, pledgers int64) (Money, error) {
	gross, err := s.GrossPledge(fundingGoal, pledgers)
	if err != nil {
		return Money{}, err
	}
	return gross.Sub(s.PlatformFee(gross)).Mul(pledgers), nil
}

// Breakdown computes every per-pledger figure for one pledger count.
func (s FeeSchedule) Breakdown(fundingGoal Money, pledgers int64) (FeeBreakdown, error) {
	gross, err := s.GrossPledge(fundingGoal, pledgers)
	if err != nil {
		return FeeBreakdown{}, err
	}

	platformFee := s.PlatformFee(gross)
	platformInclusive := s.AmountPlusPlatformFee(gross)
	charge := s.AmountPlusProcessingFee(platformInclusive)

	return FeeBreakdown{
		GrossPledge:       gross,
		PlatformFee:       platformFee,
		PlatformInclusive: platformInclusive,
		ProcessingFee:     s.ProcessingFee(charge),
		Charge:            charge,
		NetPledge:         gross.Sub(platformFee),
	}, nil
}

// IsSuccessful reports whether enough pledgers joined for charges to happen.
func IsSuccessful(currentPledgers, minimumPledgers int64) bool {
	return currentPledgers >= minimumPledgers
}

func checkPledge(fundingGoal Money, pledgers int64) error {
	if !fundingGoal.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrInvalidFundingGoal, fundingGoal)
	}
	if pledgers <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPledgerCount, pledgers)
	}
	return nil
}
