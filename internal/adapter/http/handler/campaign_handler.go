package handler

import (
	"context"
	"net/http"

	"github.com/iho/gopledge/internal/adapter/http/dto"
	"github.com/iho/gopledge/internal/domain"
	"github.com/iho/gopledge/internal/usecase"
)

// CampaignService previews drafts and prices stored campaigns.
type CampaignService interface {
	Preview(ctx context.Context, input usecase.PreviewInput) (*usecase.QuoteResult, error)
	Outcome(ctx context.Context, input usecase.OutcomeInput) (*domain.CampaignOutcome, error)
}

// CampaignHandler handles campaign-related HTTP requests.
type CampaignHandler struct {
	campaigns CampaignService
}

// NewCampaignHandler creates a new CampaignHandler.
func NewCampaignHandler(campaigns CampaignService) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns}
}

// Preview validates a campaign draft and prices it at its minimum.
func (h *CampaignHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req dto.PreviewCampaignRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.campaigns.Preview(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "invalid campaign", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.QuoteFromUseCase(result))
}

// Outcome prices a stored campaign.
func (h *CampaignHandler) Outcome(w http.ResponseWriter, r *http.Request) {
	var req dto.CampaignOutcomeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	out, err := h.campaigns.Outcome(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute outcome", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CampaignOutcomeFromDomain(out))
}
