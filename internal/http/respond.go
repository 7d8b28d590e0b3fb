package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Festongithub/onesoko-storefront/internal/api"
	"github.com/Festongithub/onesoko-storefront/internal/cart"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// respondDomainError maps store and backend failures onto HTTP statuses.
// The worst outcome is a failed individual action, never a crash.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity):
		respondError(w, http.StatusBadRequest, "invalid_quantity", err.Error())
	case errors.Is(err, cart.ErrInsufficientStock):
		respondError(w, http.StatusConflict, "insufficient_stock", err.Error())
	case errors.Is(err, cart.ErrItemNotFound), errors.Is(err, cart.ErrCartNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case api.IsNotFound(err):
		respondError(w, http.StatusNotFound, "not_found", "product not found")
	case errors.Is(err, api.ErrUnavailable):
		respondError(w, http.StatusBadGateway, "backend_unavailable", "backend is unavailable")
	default:
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			respondError(w, http.StatusBadGateway, "backend_error", apiErr.Message)
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
