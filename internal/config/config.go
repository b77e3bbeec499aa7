package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers accepted in STORE_DRIVER.
const (
	StoreDynamo = "dynamo"
	StoreMongo  = "mongo"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	// Mail relay. MailUser doubles as the From address.
	MailUser string
	MailPass string
	SMTPHost string
	SMTPPort int

	StoreDriver    string
	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	OTPTTL time.Duration
	// OTPRetention is how long a record is kept after issuance before the
	// store reaps it. Must cover OTPTTL.
	OTPRetention time.Duration
	ProductName  string
	ExamName     string

	JWTPublicKeyPath string   // optional; enables caller auth context
	AllowedOrigins   []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	OTPCodes string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:          getEnv("APP_PORT", "3000"),
		AppEnv:           getEnv("APP_ENV", "development"),
		MailUser:         getEnv("EMAIL_USER", ""),
		MailPass:         getEnv("EMAIL_PASS", ""),
		SMTPHost:         getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:         getEnvInt("SMTP_PORT", 587),
		StoreDriver:      strings.ToLower(getEnv("STORE_DRIVER", StoreDynamo)),
		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL:   getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID:   getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:     getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			OTPCodes: getEnv("DYNAMO_TABLE_OTP_CODES", "otp_codes"),
		},
		MongoURI:         getEnv("MONGO_URI", ""),
		MongoDatabase:    getEnv("MONGO_DATABASE", "otp"),
		MongoCollection:  getEnv("MONGO_COLLECTION_OTP_CODES", "otp_codes"),
		OTPTTL:           time.Duration(getEnvInt("OTP_TTL_SECONDS", 300)) * time.Second,
		OTPRetention:     time.Duration(getEnvInt("OTP_RETENTION_SECONDS", 86400)) * time.Second,
		ProductName:      getEnv("PRODUCT_NAME", "UTME PrepMaster"),
		ExamName:         getEnv("EXAM_NAME", "UTME"),
		JWTPublicKeyPath: getEnv("JWT_PUBLIC_KEY_PATH", ""),
		AllowedOrigins:   strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

// Validate reports every missing or invalid setting at once so the process
// can refuse to start instead of failing on the first send.
func (c *Config) Validate() error {
	var errs []error
	if c.MailUser == "" {
		errs = append(errs, errors.New("EMAIL_USER is required"))
	}
	if c.MailPass == "" {
		errs = append(errs, errors.New("EMAIL_PASS is required"))
	}
	if c.SMTPHost == "" || c.SMTPPort <= 0 {
		errs = append(errs, errors.New("SMTP_HOST and SMTP_PORT must be set"))
	}
	switch c.StoreDriver {
	case StoreDynamo:
		if c.DynamoTables.OTPCodes == "" {
			errs = append(errs, errors.New("DYNAMO_TABLE_OTP_CODES must not be empty"))
		}
	case StoreMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("MONGO_URI is required when STORE_DRIVER=mongo"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}
	if c.OTPTTL <= 0 {
		errs = append(errs, errors.New("OTP_TTL_SECONDS must be positive"))
	}
	if c.OTPRetention < c.OTPTTL {
		errs = append(errs, errors.New("OTP_RETENTION_SECONDS must not be shorter than OTP_TTL_SECONDS"))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
