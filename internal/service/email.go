package service

import (
	"context"
	"fmt"

	"github.com/division-gg/division-api/internal/domain/model"
	apperrors "github.com/division-gg/division-api/internal/errors"
)

// EmailRepo abstracts the captured-email persistence used by EmailService.
type EmailRepo interface {
	Capture(ctx context.Context, req *model.CaptureEmailRequest) (*model.CapturedEmail, bool, error)
	List(ctx context.Context, limit, offset int) ([]*model.CapturedEmail, error)
	Count(ctx context.Context) (int64, error)
}

// EmailServiceOptions groups dependencies for EmailService.
type EmailServiceOptions struct {
	Repo EmailRepo
}

// EmailService records marketing signup emails.
type EmailService struct {
	repo EmailRepo
}

// NewEmailService constructs a new EmailService.
func NewEmailService(opts EmailServiceOptions) *EmailService {
	return &EmailService{repo: opts.Repo}
}

// Capture validates and stores a signup email. Submitting an address that
// already exists is treated as success.
func (s *EmailService) Capture(ctx context.Context, req model.CaptureEmailRequest) error {
	if err := req.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}
	if _, _, err := s.repo.Capture(ctx, &req); err != nil {
		if apperrors.IsValidation(err) {
			return err
		}
		return fmt.Errorf("capture email: %w", err)
	}
	return nil
}

// List returns captured emails newest first. Exposed only through the
// dev-mode debug route.
func (s *EmailService) List(ctx context.Context, limit, offset int) ([]*model.CapturedEmail, int64, error) {
	emails, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list emails: %w", err)
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count emails: %w", err)
	}
	return emails, total, nil
}
