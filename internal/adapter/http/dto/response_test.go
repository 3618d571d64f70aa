package dto

import (
	"encoding/json"
	"testing"

	"github.com/iho/gopledge/internal/domain"
	"github.com/iho/gopledge/internal/usecase"
)

func TestQuoteFromUseCase(t *testing.T) {
	s := domain.DefaultFeeSchedule()
	q, err := s.Recompute(domain.FormState{FundingGoal: domain.Cents(100_000), MinimumPledgers: 1000, CurrentPledgers: 1000})
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}

	resp := QuoteFromUseCase(&usecase.QuoteResult{ID: "q-1", Quote: q})
	if resp.ID != "q-1" || resp.FundingGoalDisplay != "$1,000" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	breakdown := decoded["breakdown"].(map[string]any)
	if breakdown["charge"] != "1.34" {
		t.Fatalf("expected charge rendered as \"1.34\", got %v", breakdown["charge"])
	}
	if decoded["net_proceeds"] != "990.00" {
		t.Fatalf("expected net proceeds \"990.00\", got %v", decoded["net_proceeds"])
	}
}

func TestCampaignOutcomeFromDomain(t *testing.T) {
	out := &domain.CampaignOutcome{
		MaximumPossiblePledgers: 2000,
		AtMinimumPledgers:       domain.PledgeAmounts{Pledge: domain.Cents(1000), PledgePlusFees: domain.Cents(1071)},
		Hypothetical: domain.HypotheticalOutcome{
			Pledgers:   100,
			Successful: true,
			Amounts:    domain.PledgeAmounts{Pledge: domain.Cents(1000), PledgePlusFees: domain.Cents(1071)},
		},
	}

	resp := CampaignOutcomeFromDomain(out)
	if resp.AtMinimumPledgers.PledgePlusFees.String() != "10.71" {
		t.Fatalf("unexpected minimum amounts: %+v", resp.AtMinimumPledgers)
	}
	if !resp.Hypothetical.Successful || resp.Hypothetical.Pledgers != 100 {
		t.Fatalf("unexpected hypothetical: %+v", resp.Hypothetical)
	}
}
