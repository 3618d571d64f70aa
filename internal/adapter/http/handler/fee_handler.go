package handler

import (
	"context"
	"net/http"

	"github.com/iho/gopledge/internal/adapter/http/dto"
	"github.com/iho/gopledge/internal/domain"
	"github.com/iho/gopledge/internal/usecase"
)

// FeeService computes fee tables.
type FeeService interface {
	Fees(ctx context.Context, amount domain.Money) (*usecase.FeeTable, error)
}

// FeeHandler handles fee lookups.
type FeeHandler struct {
	fees FeeService
}

// NewFeeHandler creates a new FeeHandler.
func NewFeeHandler(fees FeeService) *FeeHandler {
	return &FeeHandler{fees: fees}
}

// Get returns the fee table of the amount query parameter.
func (h *FeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	amount, err := parseMoneyQuery(r, "amount")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
		return
	}

	table, err := h.fees.Fees(r.Context(), amount)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute fees", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.FeeTableFromUseCase(table))
}
