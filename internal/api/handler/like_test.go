package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petagrampush/petagrampush/internal/api/handler"
	"github.com/petagrampush/petagrampush/internal/api/models"
	"github.com/petagrampush/petagrampush/internal/device"
	"github.com/petagrampush/petagrampush/internal/dispatch"
	"github.com/petagrampush/petagrampush/internal/instagram"
	"github.com/petagrampush/petagrampush/internal/like"
)

// rejectingForwarder is a configured forwarder whose upstream always says no.
type rejectingForwarder struct {
	status int
}

func (f *rejectingForwarder) Configured() bool { return true }

func (f *rejectingForwarder) Like(_ context.Context, _ string) error {
	return &instagram.UpstreamError{StatusCode: f.status}
}

func newLikeHandler(forwarder like.Forwarder) *handler.LikeHandler {
	logger := zerolog.New(io.Discard)

	svc := like.NewService(like.ServiceConfig{
		Repository: like.NewInMemoryRepository(),
		Devices:    device.NewInMemoryRepository(),
		Dispatcher: dispatch.NewDispatcher(dispatch.DispatcherConfig{Logger: logger}),
		Forwarder:  forwarder,
		Logger:     logger,
	})

	return handler.NewLikeHandler(svc, logger)
}

func TestLikeHandler_ForwardLike_UpstreamRejectionIsBadGateway(t *testing.T) {
	h := newLikeHandler(&rejectingForwarder{status: http.StatusBadRequest})

	payload, err := json.Marshal(models.LikeRequest{
		PhotoID:      "photo42",
		LikerUserID:  "liker",
		TargetUserID: "owner",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/instagram/likes", bytes.NewReader(payload))
	w := httptest.NewRecorder()

	h.ForwardLike(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

	var problem models.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	assert.Equal(t, models.ProblemTypeUpstream, problem.Type)
}

func TestLikeHandler_SubmitLike_EmptyBody(t *testing.T) {
	h := newLikeHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/likes", http.NoBody)
	w := httptest.NewRecorder()

	h.SubmitLike(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
