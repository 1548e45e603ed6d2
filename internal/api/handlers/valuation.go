package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AHMerrill/Basic-Dividend-Discount/internal/api/request"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/api/response"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/apperrors"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/model"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/service"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/validation"
)

// ValuationHandler handles valuation HTTP requests
type ValuationHandler struct {
	valuationService *service.ValuationService
}

// NewValuationHandler creates a new ValuationHandler
func NewValuationHandler(valuationService *service.ValuationService) *ValuationHandler {
	return &ValuationHandler{
		valuationService: valuationService,
	}
}

// ValuationResponse is a completed run plus its rounded summary table.
type ValuationResponse struct {
	model.ValuationReport
	Summary model.Summary `json:"summary"`
}

// Value handles POST requests to value one equity.
//
// Endpoint: POST /api/valuation
// Request Body: ValuationRequest (ticker, and optionally policy, cashFlows,
// shortTermGrowth, longTermGrowth, costOfEquity, valuationDate, proceedWithoutDividend)
// Response: 200 OK with ValuationResponse
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the ticker is unknown to the market data provider
// Error: 422 Unprocessable Entity if the model cannot value the equity
// Error: 502 Bad Gateway if market data could not be retrieved
func (h *ValuationHandler) Value(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.ValuationRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	h.value(w, r, req)
}

// ValueTicker handles GET requests to value one equity, taking the options
// from the query string.
//
// Endpoint: GET /api/valuation/{ticker}
// Response and errors: as Value
func (h *ValuationHandler) ValueTicker(w http.ResponseWriter, r *http.Request) {
	req, err := request.ValuationRequestFromQuery(chi.URLParam(r, "ticker"), r.URL.Query())
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid query parameters", err.Error())
		return
	}
	h.value(w, r, req)
}

func (h *ValuationHandler) value(w http.ResponseWriter, r *http.Request, req request.ValuationRequest) {
	opts, err := validation.ValidateValuation(req)
	if err != nil {
		respondServiceError(w, "validation failed", err)
		return
	}

	report, err := h.valuationService.Value(r.Context(), opts)
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToValue.Error(), err)
		return
	}

	response.RespondJSON(w, http.StatusOK, ValuationResponse{
		ValuationReport: report,
		Summary:         service.Summarize(report.Result),
	})
}
