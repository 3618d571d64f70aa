package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// CampaignParameters are the two inputs every pledge amount derives from.
type CampaignParameters struct {
	FundingGoal      Money
	NumberOfPledgers int64
}

// FeeBreakdown is the per-pledger split of a charge.
type FeeBreakdown struct {
	GrossPledge       Money
	PlatformFee       Money
	PlatformInclusive Money
	ProcessingFee     Money
	Charge            Money
	NetPledge         Money
}

// FormState is what a campaign form holds between edits.
type FormState struct {
	FundingGoal     Money
	MinimumPledgers int64
	CurrentPledgers int64
}

// Quote is every derived field of a FormState.
type Quote struct {
	FundingGoal             Money
	MinimumPossiblePledgers int64
	MaximumPossiblePledgers int64
	MinimumPledgers         int64
	CurrentPledgers         int64
	Successful              bool
	Breakdown               FeeBreakdown
	NetProceeds             Money
}

// ClampPledgers moves n into [minimum, maximum].
func ClampPledgers(n, minimum, maximum int64) int64 {
	if n > maximum {
		return maximum
	}
	if n < minimum {
		return minimum
	}
	return n
}

// Recompute derives a Quote from scratch. Pledger counts are clamped into the
// bounds of the funding goal; an unsuccessful campaign charges nothing.
func (s FeeSchedule) Recompute(state FormState) (Quote, error) {
	minPossible, maxPossible, err := s.PledgerBounds(state.FundingGoal)
	if err != nil {
		return Quote{}, err
	}

	q := Quote{
		FundingGoal:             state.FundingGoal,
		MinimumPossiblePledgers: minPossible,
		MaximumPossiblePledgers: maxPossible,
		MinimumPledgers:         ClampPledgers(state.MinimumPledgers, minPossible, maxPossible),
		CurrentPledgers:         ClampPledgers(state.CurrentPledgers, minPossible, maxPossible),
	}
	q.Successful = IsSuccessful(q.CurrentPledgers, q.MinimumPledgers)
	if !q.Successful {
		return q, nil
	}

	if q.Breakdown, err = s.Breakdown(q.FundingGoal, q.CurrentPledgers); err != nil {
		return Quote{}, err
	}
	q.NetProceeds = q.Breakdown.NetPledge.Mul(q.CurrentPledgers)

	return q, nil
}

// PledgeAmounts pairs a pledger's share with what they actually pay.
type PledgeAmounts struct {
	Pledge         Money
	PledgePlusFees Money
}

func (s FeeSchedule) pledgeAmounts(fundingGoal Money, pledgers int64) (PledgeAmounts, error) {
	b, err := s.Breakdown(fundingGoal, pledgers)
	if err != nil {
		return PledgeAmounts{}, err
	}
	return PledgeAmounts{Pledge: b.GrossPledge, PledgePlusFees: b.Charge}, nil
}

// CampaignSnapshot is a stored campaign as far as pricing is concerned.
type CampaignSnapshot struct {
	FundingGoal      Money
	MinimumPledgers  int64
	NumberOfPledgers int64
	Succeeded        bool
}

// HypotheticalOutcome prices a pledger count the viewer picked.
type HypotheticalOutcome struct {
	Pledgers   int64
	Successful bool
	Amounts    PledgeAmounts
}

// CampaignOutcome is what a campaign page shows.
type CampaignOutcome struct {
	MaximumPossiblePledgers int64
	Successful              bool
	// AtMinimumPledgers is the most a pledger can be charged.
	AtMinimumPledgers PledgeAmounts
	// AtMaximumPledgers is the least a pledger can be charged.
	AtMaximumPledgers PledgeAmounts
	// Current is zero until the campaign has enough pledgers.
	Current      PledgeAmounts
	Hypothetical HypotheticalOutcome
}

// Outcome prices a stored campaign and a hypothetical final pledger count.
// A zero hypothetical count means the campaign's minimum.
func (s FeeSchedule) Outcome(c CampaignSnapshot, hypotheticalPledgers int64) (CampaignOutcome, error) {
	minPossible, maxPossible, err := s.PledgerBounds(c.FundingGoal)
	if err != nil {
		return CampaignOutcome{}, err
	}
	if c.FundingGoal.GreaterThan(s.MaximumFundingGoal) {
		return CampaignOutcome{}, fmt.Errorf("%w: %s above %s", ErrFundingGoalOutOfRange, c.FundingGoal, s.MaximumFundingGoal)
	}
	if c.MinimumPledgers <= 0 {
		return CampaignOutcome{}, fmt.Errorf("%w: minimum pledgers %d", ErrInvalidPledgerCount, c.MinimumPledgers)
	}
	if c.NumberOfPledgers < 0 {
		return CampaignOutcome{}, fmt.Errorf("%w: number of pledgers %d", ErrInvalidPledgerCount, c.NumberOfPledgers)
	}

	out := CampaignOutcome{
		MaximumPossiblePledgers: maxPossible,
		Successful:              IsSuccessful(c.NumberOfPledgers, c.MinimumPledgers),
	}

	if out.AtMinimumPledgers, err = s.pledgeAmounts(c.FundingGoal, c.MinimumPledgers); err != nil {
		return CampaignOutcome{}, err
	}
	if out.AtMaximumPledgers, err = s.pledgeAmounts(c.FundingGoal, maxPossible); err != nil {
		return CampaignOutcome{}, err
	}

	if (c.Succeeded || out.Successful) && c.NumberOfPledgers > 0 {
		if out.Current, err = s.pledgeAmounts(c.FundingGoal, c.NumberOfPledgers); err != nil {
			return CampaignOutcome{}, err
		}
	}

	if hypotheticalPledgers == 0 {
		hypotheticalPledgers = c.MinimumPledgers
	}
	h := HypotheticalOutcome{Pledgers: ClampPledgers(hypotheticalPledgers, minPossible, maxPossible)}
	h.Successful = IsSuccessful(h.Pledgers, c.MinimumPledgers)
	if h.Successful {
		if h.Amounts, err = s.pledgeAmounts(c.FundingGoal, h.Pledgers); err != nil {
			return CampaignOutcome{}, err
		}
	}
	out.Hypothetical = h

	return out, nil
}

// CampaignDraft is a campaign as entered on the create form.
type CampaignDraft struct {
	FundingGoal     Money
	Reason          string
	Deadline        time.Time
	MinimumPledgers int64
}

// Validate returns the first rule the draft breaks.
func (d CampaignDraft) Validate(s FeeSchedule, now time.Time) error {
	if d.FundingGoal.LessThan(s.MinimumFundingGoal) || d.FundingGoal.GreaterThan(s.MaximumFundingGoal) {
		return fmt.Errorf("%w: %s not in [%s, %s]", ErrFundingGoalOutOfRange,
			d.FundingGoal, s.MinimumFundingGoal, s.MaximumFundingGoal)
	}

	reason := strings.TrimSpace(d.Reason)
	if reason == "" {
		return fmt.Errorf("%w: reason cannot be empty", ErrInvalidReason)
	}
	if utf8.RuneCountInString(reason) > s.MaxReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidReason, s.MaxReasonLength)
	}

	if !d.Deadline.After(now) {
		return fmt.Errorf("%w: deadline must be in the future", ErrInvalidDeadline)
	}
	if d.Deadline.After(now.Add(s.MaxDeadline)) {
		return fmt.Errorf("%w: deadline is more than %s away", ErrInvalidDeadline, s.MaxDeadline)
	}

	minPossible, maxPossible, err := s.PledgerBounds(d.FundingGoal)
	if err != nil {
		return err
	}
	if d.MinimumPledgers < minPossible || d.MinimumPledgers > maxPossible {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrPledgersOutOfRange,
			d.MinimumPledgers, minPossible, maxPossible)
	}

	return nil
}
