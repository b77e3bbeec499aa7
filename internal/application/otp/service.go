package otp

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-otp-mailer/internal/application/mailtemplate"
	"github.com/go-otp-mailer/internal/domain"
	"github.com/go-otp-mailer/internal/pkg/clock"
	"github.com/go-otp-mailer/internal/pkg/code"
	"github.com/go-otp-mailer/internal/pkg/validate"
)

type IssueRequest struct {
	Email string `json:"email" validate:"required"`
}

type VerifyRequest struct {
	Email string `json:"email" validate:"required"`
	Code  string `json:"code" validate:"required"`
	// CodeNotString marks a code the caller sent as a non-string JSON value.
	// Such a code is present but never matches.
	CodeNotString bool `json:"-"`
}

// Store is the OTP document store, keyed by email.
type Store interface {
	Put(ctx context.Context, rec *domain.OTPRecord) error
	Get(ctx context.Context, email string) (*domain.OTPRecord, error)
	MarkConsumed(ctx context.Context, email, code string) error
	DeleteIssue(ctx context.Context, email, issueID string) error
}

type Mailer interface {
	SendEmail(ctx context.Context, to, subject, html string) error
}

type Service interface {
	IssueOTP(ctx context.Context, req IssueRequest) error
	VerifyOTP(ctx context.Context, req VerifyRequest) error
}

// ServiceDeps groups the collaborators of the OTP service.
type ServiceDeps struct {
	Store     Store
	Mailer    Mailer
	Templates *mailtemplate.Renderer
	Codes     code.Generator
	Clock     clock.Clocker
	NewID     func() string
	TTL       time.Duration
	// Retention is how long the store keeps a record after issuance.
	// Values shorter than TTL are raised to TTL.
	Retention time.Duration
}

type service struct {
	store     Store
	mailer    Mailer
	templates *mailtemplate.Renderer
	codes     code.Generator
	clock     clock.Clocker
	newID     func() string
	ttl       time.Duration
	retention time.Duration
}

func NewService(d ServiceDeps) Service {
	retention := d.Retention
	if retention < d.TTL {
		retention = d.TTL
	}
	return &service{
		store:     d.Store,
		mailer:    d.Mailer,
		templates: d.Templates,
		codes:     d.Codes,
		clock:     d.Clock,
		newID:     d.NewID,
		ttl:       d.TTL,
		retention: retention,
	}
}

// IssueOTP stores a fresh code for the address, replacing any previous one,
// and emails it. The record is persisted before sending; if the email cannot
// be rendered or sent, the record is deleted again so no undelivered code
// stays valid.
func (s *service) IssueOTP(ctx context.Context, req IssueRequest) error {
	if err := validate.Struct(&req); err != nil {
		return domain.NewValidationError("Email is required")
	}

	now := s.clock.Now()
	rec := &domain.OTPRecord{
		Email:     req.Email,
		IssueID:   s.newID(),
		Code:      s.codes.Generate(),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
		PurgeAt:   now.Add(s.retention),
		Consumed:  false,
	}
	if err := s.store.Put(ctx, rec); err != nil {
		slog.ErrorContext(ctx, "failed to store otp", "email", req.Email, "err", err)
		return domain.StoreError("put otp", err)
	}

	email, err := s.templates.OTP(rec.Code, s.ttl)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render otp email", "email", req.Email, "err", err)
		s.revoke(ctx, rec)
		return err
	}

	if err := s.mailer.SendEmail(ctx, req.Email, email.Subject, email.HTML); err != nil {
		slog.ErrorContext(ctx, "failed to send otp email", "email", req.Email, "issue_id", rec.IssueID, "err", err)
		s.revoke(ctx, rec)
		return domain.MailError(err)
	}

	slog.InfoContext(ctx, "otp issued", "email", req.Email, "issue_id", rec.IssueID)
	return nil
}

// revoke deletes an issuance whose email never went out. A newer issuance for
// the same address is left alone.
func (s *service) revoke(ctx context.Context, rec *domain.OTPRecord) {
	err := s.store.DeleteIssue(context.WithoutCancel(ctx), rec.Email, rec.IssueID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrConflict):
		slog.InfoContext(ctx, "otp superseded before revoke", "email", rec.Email, "issue_id", rec.IssueID)
	default:
		slog.ErrorContext(ctx, "failed to revoke undelivered otp", "email", rec.Email, "issue_id", rec.IssueID, "err", err)
	}
}

// VerifyOTP checks the submitted code against the stored record and consumes
// it on a match. Expiry is measured from the stored issued_at. Mismatches
// leave the record usable until it expires; attempts are not capped.
func (s *service) VerifyOTP(ctx context.Context, req VerifyRequest) error {
	if err := validate.Struct(&req); err != nil {
		return domain.NewValidationError("Email and OTP are required")
	}

	rec, err := s.store.Get(ctx, req.Email)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to load otp", "email", req.Email, "err", err)
		return domain.StoreError("get otp", err)
	}

	if rec.Consumed {
		return domain.ErrAlreadyUsed
	}
	if rec.Expired(s.clock.Now(), s.ttl) {
		return domain.ErrExpired
	}
	if req.CodeNotString || rec.Code != req.Code {
		return domain.ErrInvalidCode
	}

	// Conditional write: a concurrent verification that consumed the code
	// first, or a reissue in between, makes this one lose.
	if err := s.store.MarkConsumed(ctx, req.Email, req.Code); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			slog.WarnContext(ctx, "otp consumed concurrently", "email", req.Email, "issue_id", rec.IssueID)
			return domain.ErrAlreadyUsed
		}
		slog.ErrorContext(ctx, "failed to mark otp consumed", "email", req.Email, "err", err)
		return domain.StoreError("mark otp consumed", err)
	}

	slog.InfoContext(ctx, "otp verified", "email", req.Email, "issue_id", rec.IssueID)
	return nil
}
