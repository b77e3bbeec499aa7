package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-otp-mailer/internal/application/otp"
	"github.com/go-otp-mailer/internal/config"
	"github.com/go-otp-mailer/internal/infrastructure/dynamo"
	jwtinfra "github.com/go-otp-mailer/internal/infrastructure/jwt"
	"github.com/go-otp-mailer/internal/infrastructure/mongodb"
	"github.com/go-otp-mailer/internal/infrastructure/smtp"
	transporthttp "github.com/go-otp-mailer/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()

	store, closeStore, err := newOTPStore(ctx, cfg)
	if err != nil {
		log.Fatalf("otp store: %v", err)
	}
	defer closeStore()

	// Caller auth context is optional.
	var verifier *jwtinfra.Verifier
	if cfg.JWTPublicKeyPath != "" {
		v, err := jwtinfra.NewVerifier(cfg.JWTPublicKeyPath)
		if err != nil {
			log.Fatalf("jwt verifier: %v", err)
		}
		verifier = v
	} else {
		slog.Warn("JWT_PUBLIC_KEY_PATH not set, serving calls anonymously")
	}

	router := transporthttp.NewRouter(cfg, &transporthttp.Deps{
		OTPStore: store,
		Mailer:   smtp.NewMailer(cfg),
		Verifier: verifier,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.AppPort, "env", cfg.AppEnv, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "err", err)
		return
	}
	slog.Info("server stopped")
}

// newOTPStore builds the store selected by STORE_DRIVER and prepares its
// table or indexes. The returned func releases the connection.
func newOTPStore(ctx context.Context, cfg *config.Config) (otp.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, err := mongodb.NewClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		repo := mongodb.NewOTPRepo(client.Database(cfg.MongoDatabase), cfg.MongoCollection)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, err
		}
		return repo, func() { _ = client.Disconnect(context.Background()) }, nil
	default:
		client, err := dynamo.NewClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		dynamo.Bootstrap(ctx, client, cfg.DynamoTables)
		return dynamo.NewOTPRepo(client, cfg.DynamoTables.OTPCodes), func() {}, nil
	}
}
