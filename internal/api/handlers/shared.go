package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/AHMerrill/Basic-Dividend-Discount/internal/api/response"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/apperrors"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/ddm"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/validation"
)

// maxBodyBytes caps request bodies; a valuation request is a few hundred bytes.
const maxBodyBytes = 64 << 10

// parseJSON decodes the request body into T, rejecting unknown fields and
// trailing data.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, err
	}
	if dec.More() {
		return req, fmt.Errorf("unexpected data after JSON body")
	}
	return req, nil
}

// statusFor maps a service error to its HTTP status.
//
//   - 400: request validation
//   - 404: unknown ticker
//   - 422: the model cannot value this equity with these inputs
//   - 502: the market data provider failed
//   - 500: anything else
func statusFor(err error) int {
	var vErr *validation.Error
	switch {
	case errors.As(err, &vErr), errors.Is(err, apperrors.ErrInvalidSymbol):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrSymbolNotFound):
		return http.StatusNotFound
	case errors.Is(err, ddm.ErrInvalidPolicyInput),
		errors.Is(err, ddm.ErrDivisionByZero),
		errors.Is(err, ddm.ErrTerminalValueUndefined),
		errors.Is(err, ddm.ErrInsufficientFundamentals),
		errors.Is(err, ddm.ErrNonDividendPayingEquity):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrFailedToRetrieveFundamentals),
		errors.Is(err, apperrors.ErrFailedToRetrieveMarketRates):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError writes err with the status from statusFor. Validation
// errors carry their per-field messages as details.
func respondServiceError(w http.ResponseWriter, message string, err error) {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		response.RespondError(w, http.StatusBadRequest, "validation failed", vErr.Fields)
		return
	}
	response.RespondError(w, statusFor(err), message, err.Error())
}
