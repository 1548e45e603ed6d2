package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AHMerrill/Basic-Dividend-Discount/internal/api/response"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/apperrors"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/service"
)

// MarketHandler exposes the market data inputs the model runs on.
type MarketHandler struct {
	marketService *service.MarketService
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(marketService *service.MarketService) *MarketHandler {
	return &MarketHandler{
		marketService: marketService,
	}
}

// Rates handles GET requests for the current market rate snapshot.
// refresh=true bypasses the cache.
//
// Endpoint: GET /api/market/rates
// Response: 200 OK with model.MarketSnapshot
// Error: 502 Bad Gateway if the snapshot could not be produced
func (h *MarketHandler) Rates(w http.ResponseWriter, r *http.Request) {
	get := h.marketService.GetMarketRates
	if r.URL.Query().Get("refresh") == "true" {
		get = h.marketService.RefreshMarketRates
	}

	rates, err := get(r.Context())
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToRetrieveMarketRates.Error(), err)
		return
	}

	response.RespondJSON(w, http.StatusOK, rates)
}

// Fundamentals handles GET requests for one ticker's fundamentals.
//
// Endpoint: GET /api/market/fundamentals/{ticker}
// Response: 200 OK with ddm.Fundamentals
// Error: 400 Bad Request if the ticker is invalid (validated by middleware)
// Error: 404 Not Found if the ticker is unknown
// Error: 502 Bad Gateway if the provider failed
func (h *MarketHandler) Fundamentals(w http.ResponseWriter, r *http.Request) {
	fundamentals, err := h.marketService.GetFundamentals(r.Context(), chi.URLParam(r, "ticker"))
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToRetrieveFundamentals.Error(), err)
		return
	}

	response.RespondJSON(w, http.StatusOK, fundamentals)
}
