package welcome

import (
	"context"
	"log/slog"

	"github.com/go-otp-mailer/internal/application/mailtemplate"
	"github.com/go-otp-mailer/internal/domain"
	"github.com/go-otp-mailer/internal/pkg/validate"
)

type Request struct {
	Email       string `json:"email" validate:"required"`
	DisplayName string `json:"displayName" validate:"required"`
}

type Mailer interface {
	SendEmail(ctx context.Context, to, subject, html string) error
}

type Service interface {
	SendWelcomeEmail(ctx context.Context, req Request) error
}

type service struct {
	mailer    Mailer
	templates *mailtemplate.Renderer
}

func NewService(mailer Mailer, templates *mailtemplate.Renderer) Service {
	return &service{mailer: mailer, templates: templates}
}

// SendWelcomeEmail sends the post-signup greeting. It keeps no state.
func (s *service) SendWelcomeEmail(ctx context.Context, req Request) error {
	if err := validate.Struct(&req); err != nil {
		return domain.NewValidationError("Email and display name are required")
	}

	email, err := s.templates.Welcome(req.DisplayName)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render welcome email", "email", req.Email, "err", err)
		return err
	}
	if err := s.mailer.SendEmail(ctx, req.Email, email.Subject, email.HTML); err != nil {
		slog.ErrorContext(ctx, "failed to send welcome email", "email", req.Email, "err", err)
		return domain.MailError(err)
	}

	slog.InfoContext(ctx, "welcome email sent", "email", req.Email)
	return nil
}
