package device

import (
	"context"
	"time"

	"github.com/petagrampush/petagrampush/internal/api/models"
)

// Service provides device registration operations.
type Service struct {
	repo Repository
}

// NewService creates a new device service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register validates the request and upserts the registration for the user.
// The returned confirmation carries only a redacted token prefix so full
// tokens never land in responses or logs. Registration itself sends no
// notification.
func (s *Service) Register(ctx context.Context, input *models.DeviceRegisterRequest) (*models.Device, error) {
	if fieldErrors := s.validateRegisterInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	reg := &Registration{
		UserID:       input.UserID,
		Token:        input.DeviceToken,
		Active:       true,
		RegisteredAt: time.Now(),
	}

	if err := s.repo.Upsert(ctx, reg); err != nil {
		return nil, err
	}

	result := s.toAPIDevice(reg)
	return &result, nil
}

// List retrieves all active registrations with tokens redacted.
func (s *Service) List(ctx context.Context) (*models.DeviceList, error) {
	regs, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]models.Device, 0, len(regs))
	for _, reg := range regs {
		items = append(items, s.toAPIDevice(reg))
	}

	return &models.DeviceList{
		Items: items,
		Count: len(items),
	}, nil
}

// validateRegisterInput checks the register request before any storage call.
func (s *Service) validateRegisterInput(input *models.DeviceRegisterRequest) []models.FieldError {
	var errs []models.FieldError

	if input.UserID == "" {
		errs = append(errs, models.FieldError{Field: "userId", Message: "is required"})
	} else if len(input.UserID) > MaxUserIDLength {
		errs = append(errs, models.FieldError{Field: "userId", Message: "must be at most 128 characters"})
	}

	switch {
	case input.DeviceToken == "":
		errs = append(errs, models.FieldError{Field: "deviceToken", Message: "is required"})
	case len(input.DeviceToken) < MinTokenLength:
		errs = append(errs, models.FieldError{Field: "deviceToken", Message: "must be at least 16 characters"})
	case len(input.DeviceToken) > MaxTokenLength:
		errs = append(errs, models.FieldError{Field: "deviceToken", Message: "must be at most 4096 characters"})
	}

	return errs
}

// toAPIDevice converts a domain Registration to an API Device.
func (s *Service) toAPIDevice(reg *Registration) models.Device {
	return models.Device{
		UserID:       reg.UserID,
		TokenPrefix:  reg.TokenPrefix(),
		Active:       reg.Active,
		RegisteredAt: models.Timestamp(reg.RegisteredAt),
	}
}

// ValidationError represents validation errors.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
