package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/petagrampush/petagrampush/internal/api/middleware"
	"github.com/petagrampush/petagrampush/internal/api/models"
	"github.com/petagrampush/petagrampush/internal/api/response"
	"github.com/petagrampush/petagrampush/internal/instagram"
	"github.com/petagrampush/petagrampush/internal/like"
)

// LikeHandler handles like submission and forwarding endpoints.
type LikeHandler struct {
	svc    *like.Service
	logger zerolog.Logger
}

// NewLikeHandler creates a new LikeHandler.
func NewLikeHandler(svc *like.Service, logger zerolog.Logger) *LikeHandler {
	return &LikeHandler{
		svc:    svc,
		logger: logger,
	}
}

// SubmitLike handles POST /v1/likes - record a like and notify the photo
// owner's device.
func (h *LikeHandler) SubmitLike(w http.ResponseWriter, r *http.Request) {
	var input models.LikeRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	result, err := h.svc.Submit(r.Context(), &input)
	if err != nil {
		h.writeError(w, r, &input, err, "like submission failed", "failed to record like")
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// ForwardLike handles POST /v1/instagram/likes - forward a like upstream,
// then record and notify locally.
func (h *LikeHandler) ForwardLike(w http.ResponseWriter, r *http.Request) {
	var input models.LikeRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	result, err := h.svc.ForwardExternal(r.Context(), &input)
	if err != nil {
		h.writeError(w, r, &input, err, "like forwarding failed", "failed to forward like")
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// writeError maps service errors onto problem responses: validation to 400,
// upstream rejection to 502, anything else to a generic 500.
func (h *LikeHandler) writeError(w http.ResponseWriter, r *http.Request, input *models.LikeRequest, err error, logMsg, detail string) {
	var validationErr *like.ValidationError
	if errors.As(err, &validationErr) {
		response.BadRequest(w, r, "invalid like request", validationErr.Errors)
		return
	}

	var upstreamErr *instagram.UpstreamError
	if errors.As(err, &upstreamErr) {
		h.logger.Warn().
			Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Str("photo_id", input.PhotoID).
			Int("upstream_status", upstreamErr.StatusCode).
			Msg("upstream rejected like")
		response.BadGateway(w, r, "external service rejected the like")
		return
	}

	h.logger.Error().
		Err(err).
		Str("request_id", middleware.GetRequestID(r.Context())).
		Str("photo_id", input.PhotoID).
		Msg(logMsg)
	response.InternalError(w, r, detail)
}
