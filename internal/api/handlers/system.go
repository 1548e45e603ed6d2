package handlers

import (
	"net/http"

	"github.com/AHMerrill/Basic-Dividend-Discount/internal/api/response"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/model"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status      string `json:"status"`
	MarketRates string `json:"marketRates"`
	Error       string `json:"error,omitempty"`
}

// Health checks that a market rate snapshot can be produced.
// "degraded" means at least one rate is a fallback constant.
//
// Endpoint: GET /api/system/health
// Response: 200 OK with HealthResponse
// Error: 503 Service Unavailable if no snapshot could be produced
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.systemService.CheckHealth(r.Context())
	if err != nil {
		response.RespondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:      "unhealthy",
			MarketRates: "unavailable",
			Error:       err.Error(),
		})
		return
	}

	health := HealthResponse{
		Status:      "healthy",
		MarketRates: model.SourceProvider,
	}
	if snapshot.UsedFallback() {
		health.Status = "degraded"
		health.MarketRates = model.SourceFallback
	}
	response.RespondJSON(w, http.StatusOK, health)
}

// VersionInfoResponse represents the version check response containing application
// version, Go runtime version and feature availability.
type VersionInfoResponse struct {
	AppVersion string          `json:"app_version"`
	GoVersion  string          `json:"go_version"`
	Features   map[string]bool `json:"features"`
}

// Version handles GET requests to retrieve version information and feature availability.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with VersionInfoResponse
// Error: 500 Internal Server Error if version check fails
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	version, err := h.systemService.CheckVersion()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to get version information", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, VersionInfoResponse{
		AppVersion: version.AppVersion,
		GoVersion:  version.GoVersion,
		Features:   version.Features,
	})
}
