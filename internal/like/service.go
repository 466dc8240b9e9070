package like

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/petagrampush/petagrampush/internal/api/models"
	"github.com/petagrampush/petagrampush/internal/device"
	"github.com/petagrampush/petagrampush/internal/dispatch"
)

// Forwarder forwards a like to an external social-media service.
type Forwarder interface {
	// Configured reports whether a credential is present. Unconfigured
	// forwarders put the service in simulated mode.
	Configured() bool

	// Like forwards the like for the given media id.
	Like(ctx context.Context, mediaID string) error
}

// ServiceConfig holds dependencies for the like service.
type ServiceConfig struct {
	Repository Repository
	Devices    device.Repository
	Dispatcher *dispatch.Dispatcher
	Forwarder  Forwarder
	Logger     zerolog.Logger
}

// Service records like events and triggers their notifications.
type Service struct {
	repo       Repository
	devices    device.Repository
	dispatcher *dispatch.Dispatcher
	forwarder  Forwarder
	logger     zerolog.Logger
}

// NewService creates a new like service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		repo:       cfg.Repository,
		devices:    cfg.Devices,
		dispatcher: cfg.Dispatcher,
		forwarder:  cfg.Forwarder,
		logger:     cfg.Logger,
	}
}

// Submit records a like event and best-effort dispatches a notification to
// the target user's device.
//
// The event is persisted whether or not a token was resolved; a missing
// registration is not an error. Dispatch failure never fails the request,
// the like is already durable by then.
func (s *Service) Submit(ctx context.Context, input *models.LikeRequest) (*models.LikeResult, error) {
	if fieldErrors := s.validateInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	token, err := s.resolveToken(ctx, input)
	if err != nil {
		// A failing store must not half-commit: no event is written
		// when the lookup itself errored (vs merely finding nothing).
		return nil, err
	}

	event := &Event{
		ID:          "like_" + uuid.New().String()[:22],
		PhotoID:     input.PhotoID,
		LikerUserID: input.LikerUserID,
		CreatedAt:   time.Now(),
	}
	if token != "" {
		event.Token = &token
	}

	if err := s.repo.Record(ctx, event); err != nil {
		return nil, err
	}

	status, _ := s.dispatcher.Dispatch(ctx, dispatch.BestEffort, token,
		dispatch.LikeNotification(input.PhotoID, input.TargetUserID))

	return &models.LikeResult{
		EventID:       event.ID,
		TokenResolved: token != "",
		Dispatch:      string(status),
	}, nil
}

// ForwardExternal forwards the like to the external service, then records and
// dispatches locally.
//
// Without a credential the external call is simulated: the local flow runs
// exactly as Submit and the result reports simulated = true. With a
// credential the upstream answer is authoritative: on upstream failure
// nothing is persisted; on success the local record and dispatch are a
// best-effort follow-up whose failures are logged, not surfaced as errors.
// A lost local record is still visible to the caller as recorded = false.
func (s *Service) ForwardExternal(ctx context.Context, input *models.LikeRequest) (*models.ExternalLikeResult, error) {
	if fieldErrors := s.validateInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	if s.forwarder == nil || !s.forwarder.Configured() {
		result, err := s.Submit(ctx, input)
		if err != nil {
			return nil, err
		}
		return &models.ExternalLikeResult{
			Simulated:     true,
			Recorded:      true,
			EventID:       result.EventID,
			TokenResolved: result.TokenResolved,
			Dispatch:      result.Dispatch,
		}, nil
	}

	if err := s.forwarder.Like(ctx, input.PhotoID); err != nil {
		return nil, err
	}

	result, err := s.Submit(ctx, input)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("photo_id", input.PhotoID).
			Msg("like forwarded upstream but local record failed")
		return &models.ExternalLikeResult{Simulated: false, Recorded: false}, nil
	}

	return &models.ExternalLikeResult{
		Simulated:     false,
		Recorded:      true,
		EventID:       result.EventID,
		TokenResolved: result.TokenResolved,
		Dispatch:      result.Dispatch,
	}, nil
}

// resolveToken picks the explicit token when the caller supplied one,
// otherwise the target user's current registration. "" means no destination.
func (s *Service) resolveToken(ctx context.Context, input *models.LikeRequest) (string, error) {
	if input.ExplicitToken != "" {
		return input.ExplicitToken, nil
	}

	reg, err := s.devices.FindByUser(ctx, input.TargetUserID)
	if err != nil {
		if errors.Is(err, device.ErrRegistrationNotFound) {
			return "", nil
		}
		return "", err
	}
	if !reg.Active {
		return "", nil
	}
	return reg.Token, nil
}

// validateInput checks the like request before any storage call.
func (s *Service) validateInput(input *models.LikeRequest) []models.FieldError {
	var errs []models.FieldError

	if input.PhotoID == "" {
		errs = append(errs, models.FieldError{Field: "photoId", Message: "is required"})
	} else if len(input.PhotoID) > MaxPhotoIDLength {
		errs = append(errs, models.FieldError{Field: "photoId", Message: "must be at most 128 characters"})
	}

	if input.LikerUserID == "" {
		errs = append(errs, models.FieldError{Field: "likerUserId", Message: "is required"})
	} else if len(input.LikerUserID) > MaxUserIDLength {
		errs = append(errs, models.FieldError{Field: "likerUserId", Message: "must be at most 128 characters"})
	}

	if input.TargetUserID == "" {
		errs = append(errs, models.FieldError{Field: "targetUserId", Message: "is required"})
	} else if len(input.TargetUserID) > MaxUserIDLength {
		errs = append(errs, models.FieldError{Field: "targetUserId", Message: "must be at most 128 characters"})
	}

	if input.ExplicitToken != "" {
		if len(input.ExplicitToken) < device.MinTokenLength {
			errs = append(errs, models.FieldError{Field: "explicitToken", Message: "must be at least 16 characters"})
		} else if len(input.ExplicitToken) > device.MaxTokenLength {
			errs = append(errs, models.FieldError{Field: "explicitToken", Message: "must be at most 4096 characters"})
		}
	}

	return errs
}

// ValidationError represents validation errors.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
