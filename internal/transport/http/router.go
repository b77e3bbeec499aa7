package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-otp-mailer/internal/application/mailtemplate"
	"github.com/go-otp-mailer/internal/application/otp"
	"github.com/go-otp-mailer/internal/application/welcome"
	"github.com/go-otp-mailer/internal/config"
	"github.com/go-otp-mailer/internal/pkg/clock"
	"github.com/go-otp-mailer/internal/pkg/code"
	"github.com/go-otp-mailer/internal/pkg/id"
	"github.com/go-otp-mailer/internal/transport/http/handler"
	appmiddleware "github.com/go-otp-mailer/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := func(next http.Handler) http.Handler { return next }
	if deps.Verifier != nil {
		authMw = appmiddleware.OptionalAuth(deps.Verifier)
	}

	clk := deps.Clock
	if clk == nil {
		clk = clock.New()
	}
	codes := deps.Codes
	if codes == nil {
		codes = code.New()
	}
	newID := deps.NewID
	if newID == nil {
		newID = id.New
	}
	ttl := deps.TTL
	if ttl <= 0 {
		ttl = cfg.OTPTTL
	}

	templates := mailtemplate.New(cfg.ProductName, cfg.ExamName)
	otpSvc := otp.NewService(otp.ServiceDeps{
		Store:     deps.OTPStore,
		Mailer:    deps.Mailer,
		Templates: templates,
		Codes:     codes,
		Clock:     clk,
		NewID:     newID,
		TTL:       ttl,
		Retention: cfg.OTPRetention,
	})
	welcomeSvc := welcome.NewService(deps.Mailer, templates)

	healthH := handler.NewHealthHandler()
	otpH := handler.NewOTPHandler(otpSvc)
	welcomeH := handler.NewWelcomeHandler(welcomeSvc)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", healthH.Check)

		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Post("/issueOtp", otpH.Issue)
			r.Post("/verifyOtp", otpH.Verify)
			r.Post("/sendWelcomeEmail", welcomeH.Send)
		})
	})

	return r
}
