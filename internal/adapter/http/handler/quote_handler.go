package handler

import (
	"context"
	"net/http"

	"github.com/iho/gopledge/internal/adapter/http/dto"
	"github.com/iho/gopledge/internal/domain"
	"github.com/iho/gopledge/internal/usecase"
)

// QuoteService prices form states.
type QuoteService interface {
	Quote(ctx context.Context, input usecase.QuoteInput) (*usecase.QuoteResult, error)
	Bounds(ctx context.Context, fundingGoal domain.Money) (*usecase.BoundsResult, error)
}

// QuoteHandler handles quote-related HTTP requests.
type QuoteHandler struct {
	quotes QuoteService
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(quotes QuoteService) *QuoteHandler {
	return &QuoteHandler{quotes: quotes}
}

// Create prices a campaign form state.
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.QuoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.quotes.Quote(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute quote", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.QuoteFromUseCase(result))
}

// Bounds returns the pledger-count bounds of the funding_goal query parameter.
func (h *QuoteHandler) Bounds(w http.ResponseWriter, r *http.Request) {
	goal, err := parseMoneyQuery(r, "funding_goal")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid funding goal", err.Error())
		return
	}

	result, err := h.quotes.Bounds(r.Context(), goal)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute bounds", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BoundsFromUseCase(result))
}
