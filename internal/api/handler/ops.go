// Package handler provides HTTP handlers for the Petagram Push API.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/petagrampush/petagrampush/internal/api/models"
	"github.com/petagrampush/petagrampush/internal/api/response"
	"github.com/petagrampush/petagrampush/internal/provider/resilience"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	ping      func(ctx context.Context) error
	registry  *resilience.Registry
}

// NewOpsHandler creates a new OpsHandler. ping checks storage reachability
// and may be nil when no check is available.
func NewOpsHandler(version, buildTime string, ping func(ctx context.Context) error, registry *resilience.Registry) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		ping:      ping,
		registry:  registry,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
// Pings storage and reports external provider circuit state.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	readiness := models.Readiness{
		Status:  models.HealthStatusOK,
		Time:    models.Timestamp(time.Now()),
		Storage: models.HealthStatusOK,
	}

	if h.ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			readiness.Status = models.HealthStatusFail
			readiness.Storage = models.HealthStatusFail
		}
	}

	if h.registry != nil {
		for _, ph := range h.registry.GetAllHealth() {
			status := models.HealthStatusOK
			switch {
			case ph.IsUnhealthy():
				status = models.HealthStatusFail
			case ph.IsDegraded():
				status = models.HealthStatusDegraded
			}

			provider := models.ProviderStatus{
				Provider: ph.Name,
				Status:   status,
			}
			if ph.LastSuccessAt != nil {
				ts := models.Timestamp(*ph.LastSuccessAt)
				provider.LastSuccessAt = &ts
			}
			if ph.LastFailureAt != nil {
				ts := models.Timestamp(*ph.LastFailureAt)
				provider.LastFailureAt = &ts
			}
			if ph.LastError != "" {
				msg := ph.LastError
				provider.Message = &msg
			}

			// A broken provider degrades readiness but does not fail it;
			// the service still serves local traffic.
			if status != models.HealthStatusOK && readiness.Status == models.HealthStatusOK {
				readiness.Status = models.HealthStatusDegraded
			}

			readiness.Providers = append(readiness.Providers, provider)
		}
	}

	code := http.StatusOK
	if readiness.Status == models.HealthStatusFail {
		code = http.StatusServiceUnavailable
	}
	response.JSON(w, r, code, readiness)
}
