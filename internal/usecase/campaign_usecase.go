package usecase

import (
	"context"
	"time"

	"github.com/iho/gopledge/internal/domain"
)

// CampaignUseCase prices campaigns for the create form and the campaign page.
type CampaignUseCase struct {
	schedule domain.FeeSchedule
	quotes   *QuoteUseCase
	now      func() time.Time
}

// NewCampaignUseCase creates a new CampaignUseCase.
func NewCampaignUseCase(schedule domain.FeeSchedule, quotes *QuoteUseCase) *CampaignUseCase {
	return &CampaignUseCase{
		schedule: schedule,
		quotes:   quotes,
		now:      time.Now,
	}
}

// PreviewInput represents a campaign draft.
type PreviewInput struct {
	FundingGoal     domain.Money
	Reason          string
	Deadline        time.Time
	MinimumPledgers int64
}

// Preview validates a draft and prices it as if exactly the minimum number
// of pledgers joined.
func (uc *CampaignUseCase) Preview(ctx context.Context, input PreviewInput) (*QuoteResult, error) {
	draft := domain.CampaignDraft{
		FundingGoal:     input.FundingGoal,
		Reason:          input.Reason,
		Deadline:        input.Deadline,
		MinimumPledgers: input.MinimumPledgers,
	}
	if err := draft.Validate(uc.schedule, uc.now()); err != nil {
		return nil, err
	}

	return uc.quotes.Quote(ctx, QuoteInput{
		FundingGoal:     input.FundingGoal,
		MinimumPledgers: input.MinimumPledgers,
		CurrentPledgers: input.MinimumPledgers,
	})
}

// OutcomeInput represents a stored campaign plus a hypothetical pledger count.
type OutcomeInput struct {
	Campaign             domain.CampaignSnapshot
	HypotheticalPledgers int64
}

// Outcome prices a stored campaign.
func (uc *CampaignUseCase) Outcome(ctx context.Context, input OutcomeInput) (*domain.CampaignOutcome, error) {
	out, err := uc.schedule.Outcome(input.Campaign, input.HypotheticalPledgers)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
