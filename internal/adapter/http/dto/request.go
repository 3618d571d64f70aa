package dto

import (
	"time"

	"github.com/iho/gopledge/internal/domain"
	"github.com/iho/gopledge/internal/usecase"
)

// QuoteRequest represents a campaign form state to price.
type QuoteRequest struct {
	FundingGoal     domain.Money `json:"funding_goal"`
	MinimumPledgers int64        `json:"minimum_pledgers"`
	CurrentPledgers int64        `json:"current_pledgers"`
}

// ToUseCaseInput converts to use case input.
func (r *QuoteRequest) ToUseCaseInput() usecase.QuoteInput {
	return usecase.QuoteInput{
		FundingGoal:     r.FundingGoal,
		MinimumPledgers: r.MinimumPledgers,
		CurrentPledgers: r.CurrentPledgers,
	}
}

// PreviewCampaignRequest represents a campaign draft.
type PreviewCampaignRequest struct {
	FundingGoal     domain.Money `json:"funding_goal"`
	Reason          string       `json:"reason"`
	Deadline        time.Time    `json:"deadline"`
	MinimumPledgers int64        `json:"minimum_pledgers"`
}

// ToUseCaseInput converts to use case input.
func (r *PreviewCampaignRequest) ToUseCaseInput() usecase.PreviewInput {
	return usecase.PreviewInput{
		FundingGoal:     r.FundingGoal,
		Reason:          r.Reason,
		Deadline:        r.Deadline,
		MinimumPledgers: r.MinimumPledgers,
	}
}

// CampaignOutcomeRequest represents a stored campaign and an optional
// hypothetical final pledger count.
type CampaignOutcomeRequest struct {
	FundingGoal          domain.Money `json:"funding_goal"`
	MinimumPledgers      int64        `json:"minimum_pledgers"`
	NumberOfPledgers     int64        `json:"number_of_pledgers"`
	Succeeded            bool         `json:"succeeded"`
	HypotheticalPledgers int64        `json:"hypothetical_pledgers,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CampaignOutcomeRequest) ToUseCaseInput() usecase.OutcomeInput {
	return usecase.OutcomeInput{
		Campaign: domain.CampaignSnapshot{
			FundingGoal:      r.FundingGoal,
			MinimumPledgers:  r.MinimumPledgers,
			NumberOfPledgers: r.NumberOfPledgers,
			Succeeded:        r.Succeeded,
		},
		HypotheticalPledgers: r.HypotheticalPledgers,
	}
}
