package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/petagrampush/petagrampush/internal/api/middleware"
	"github.com/petagrampush/petagrampush/internal/api/models"
	"github.com/petagrampush/petagrampush/internal/api/response"
	"github.com/petagrampush/petagrampush/internal/device"
)

// DeviceHandler handles device registration endpoints.
type DeviceHandler struct {
	svc    *device.Service
	logger zerolog.Logger
}

// NewDeviceHandler creates a new DeviceHandler.
func NewDeviceHandler(svc *device.Service, logger zerolog.Logger) *DeviceHandler {
	return &DeviceHandler{
		svc:    svc,
		logger: logger,
	}
}

// RegisterDevice handles POST /v1/devices - register or replace the
// device token for a user.
func (h *DeviceHandler) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	var input models.DeviceRegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	result, err := h.svc.Register(r.Context(), &input)
	if err != nil {
		var validationErr *device.ValidationError
		if errors.As(err, &validationErr) {
			response.BadRequest(w, r, "invalid device registration", validationErr.Errors)
			return
		}

		h.logger.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Str("user_id", input.UserID).
			Msg("device registration failed")
		response.InternalError(w, r, "failed to register device")
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// ListDevices handles GET /v1/devices - list active registrations with
// tokens redacted.
func (h *DeviceHandler) ListDevices(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Msg("device listing failed")
		response.InternalError(w, r, "failed to list devices")
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}
