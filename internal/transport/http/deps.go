package http

import (
	"time"

	"github.com/go-otp-mailer/internal/application/otp"
	jwtinfra "github.com/go-otp-mailer/internal/infrastructure/jwt"
	"github.com/go-otp-mailer/internal/infrastructure/smtp"
	"github.com/go-otp-mailer/internal/pkg/clock"
	"github.com/go-otp-mailer/internal/pkg/code"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	OTPStore otp.Store
	Mailer   smtp.Mailer
	// Verifier is optional; without it calls are served anonymously.
	Verifier *jwtinfra.Verifier

	// Overridable in tests; defaults are used when nil.
	Clock clock.Clocker
	Codes code.Generator
	NewID func() string
	TTL   time.Duration
}
