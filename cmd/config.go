package cmd

import (
	"fmt"
	"net/url"
	"time"
)

// Config is the runtime configuration, read from the environment by cmd/app.
type Config struct {
	HTTPPort   string
	LogLevel   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaBrokers            []string
	KafkaNotificationsTopic string

	// RedisAddr left empty disables idempotency keys.
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	IdempotencyTTL time.Duration

	StripeSecretKey      string
	StripePublishableKey string

	// PaymentDefaultCurrency applies to payment requests without a currency; empty means inr.
	PaymentDefaultCurrency string

	PricingPolicy string

	ReconciliationSchedule    string
	ReconciliationBatchSize   int
	ReconciliationMaxAttempts int
}

// DSN is the PostgreSQL connection string in URL form.
func (c Config) DSN() string {
	sslMode := c.DBSslMode
	if sslMode == "" {
		sslMode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     fmt.Sprintf("%s:%s", c.DBHost, c.DBPort),
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": []string{sslMode}}.Encode(),
	}
	return u.String()
}
