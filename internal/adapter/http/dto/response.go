package dto

import (
	"github.com/iho/gopledge/internal/domain"
	"github.com/iho/gopledge/internal/usecase"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// BreakdownResponse is the per-pledger fee split.
type BreakdownResponse struct {
	GrossPledge       domain.Money `json:"gross_pledge"`
	PlatformFee       domain.Money `json:"platform_fee"`
	PlatformInclusive domain.Money `json:"pledge_plus_platform_fee"`
	ProcessingFee     domain.Money `json:"processing_fee"`
	Charge            domain.Money `json:"charge"`
	NetPledge         domain.Money `json:"net_pledge"`
}

// BreakdownFromDomain converts a domain fee breakdown to response.
func BreakdownFromDomain(b domain.FeeBreakdown) BreakdownResponse {
	return BreakdownResponse{
		GrossPledge:       b.GrossPledge,
		PlatformFee:       b.PlatformFee,
		PlatformInclusive: b.PlatformInclusive,
		ProcessingFee:     b.ProcessingFee,
		Charge:            b.Charge,
		NetPledge:         b.NetPledge,
	}
}

// QuoteResponse represents a priced form state in API responses.
type QuoteResponse struct {
	ID                      string            `json:"id"`
	Cached                  bool              `json:"cached"`
	FundingGoal             domain.Money      `json:"funding_goal"`
	FundingGoalDisplay      string            `json:"funding_goal_display"`
	MinimumPossiblePledgers int64             `json:"minimum_possible_pledgers"`
	MaximumPossiblePledgers int64             `json:"maximum_possible_pledgers"`
	MinimumPledgers         int64             `json:"minimum_pledgers"`
	CurrentPledgers         int64             `json:"current_pledgers"`
	Successful              bool              `json:"successful"`
	Breakdown               BreakdownResponse `json:"breakdown"`
	NetProceeds             domain.Money      `json:"net_proceeds"`
}

// QuoteFromUseCase converts a quote result to response.
func QuoteFromUseCase(r *usecase.QuoteResult) *QuoteResponse {
	q := r.Quote
	return &QuoteResponse{
		ID:                      r.ID,
		Cached:                  r.Cached,
		FundingGoal:             q.FundingGoal,
		FundingGoalDisplay:      q.FundingGoal.Format(false),
		MinimumPossiblePledgers: q.MinimumPossiblePledgers,
		MaximumPossiblePledgers: q.MaximumPossiblePledgers,
		MinimumPledgers:         q.MinimumPledgers,
		CurrentPledgers:         q.CurrentPledgers,
		Successful:              q.Successful,
		Breakdown:               BreakdownFromDomain(q.Breakdown),
		NetProceeds:             q.NetProceeds,
	}
}

// BoundsResponse represents pledger-count bounds.
type BoundsResponse struct {
	FundingGoal             domain.Money `json:"funding_goal"`
	MinimumPossiblePledgers int64        `json:"minimum_possible_pledgers"`
	MaximumPossiblePledgers int64        `json:"maximum_possible_pledgers"`
}

// BoundsFromUseCase converts a bounds result to response.
func BoundsFromUseCase(b *usecase.BoundsResult) *BoundsResponse {
	return &BoundsResponse{
		FundingGoal:             b.FundingGoal,
		MinimumPossiblePledgers: b.MinimumPossiblePledgers,
		MaximumPossiblePledgers: b.MaximumPossiblePledgers,
	}
}

// FeeTableResponse lists every fee figure for one amount.
type FeeTableResponse struct {
	Amount                   domain.Money `json:"amount"`
	PlatformFee              domain.Money `json:"platform_fee"`
	AmountPlusPlatformFee    domain.Money `json:"amount_plus_platform_fee"`
	ProcessingFee            domain.Money `json:"processing_fee"`
	AmountPlusProcessingFee  domain.Money `json:"amount_plus_processing_fee"`
	AmountMinusProcessingFee domain.Money `json:"amount_minus_processing_fee"`
}

// FeeTableFromUseCase converts a fee table to response.
func FeeTableFromUseCase(f *usecase.FeeTable) *FeeTableResponse {
	return &FeeTableResponse{
		Amount:                   f.Amount,
		PlatformFee:              f.PlatformFee,
		AmountPlusPlatformFee:    f.AmountPlusPlatformFee,
		ProcessingFee:            f.ProcessingFee,
		AmountPlusProcessingFee:  f.AmountPlusProcessingFee,
		AmountMinusProcessingFee: f.AmountMinusProcessingFee,
	}
}

// PledgeAmountsResponse pairs a share with what the pledger pays.
type PledgeAmountsResponse struct {
	Pledge         domain.Money `json:"pledge"`
	PledgePlusFees domain.Money `json:"pledge_plus_fees"`
}

func pledgeAmounts(p domain.PledgeAmounts) PledgeAmountsResponse {
	return PledgeAmountsResponse{Pledge: p.Pledge, PledgePlusFees: p.PledgePlusFees}
}

// HypotheticalResponse prices a viewer-chosen pledger count.
type HypotheticalResponse struct {
	Pledgers   int64                 `json:"pledgers"`
	Successful bool                  `json:"successful"`
	Amounts    PledgeAmountsResponse `json:"amounts"`
}

// CampaignOutcomeResponse is what a campaign page shows.
type CampaignOutcomeResponse struct {
	MaximumPossiblePledgers int64                 `json:"maximum_possible_pledgers"`
	Successful              bool                  `json:"successful"`
	AtMinimumPledgers       PledgeAmountsResponse `json:"at_minimum_pledgers"`
	AtMaximumPledgers       PledgeAmountsResponse `json:"at_maximum_pledgers"`
	Current                 PledgeAmountsResponse `json:"current"`
	Hypothetical            HypotheticalResponse  `json:"hypothetical"`
}

// CampaignOutcomeFromDomain converts a domain outcome to response.
func CampaignOutcomeFromDomain(o *domain.CampaignOutcome) *CampaignOutcomeResponse {
	return &CampaignOutcomeResponse{
		MaximumPossiblePledgers: o.MaximumPossiblePledgers,
		Successful:              o.Successful,
		AtMinimumPledgers:       pledgeAmounts(o.AtMinimumPledgers),
		AtMaximumPledgers:       pledgeAmounts(o.AtMaximumPledgers),
		Current:                 pledgeAmounts(o.Current),
		Hypothetical: HypotheticalResponse{
			Pledgers:   o.Hypothetical.Pledgers,
			Successful: o.Hypothetical.Successful,
			Amounts:    pledgeAmounts(o.Hypothetical.Amounts),
		},
	}
}
