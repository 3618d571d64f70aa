package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/iho/gopledge/internal/adapter/http/dto"
	"github.com/iho/gopledge/internal/domain"
)

const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// decodeJSON decodes a bounded request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrFundingGoalOutOfRange),
		errors.Is(err, domain.ErrPledgersOutOfRange),
		errors.Is(err, domain.ErrInvalidReason),
		errors.Is(err, domain.ErrInvalidDeadline):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidFundingGoal),
		errors.Is(err, domain.ErrInvalidPledgerCount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseMoneyQuery parses a required money query parameter.
func parseMoneyQuery(r *http.Request, key string) (domain.Money, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return domain.Money{}, fmt.Errorf("missing query parameter %q", key)
	}
	return domain.ParseMoney(val)
}
