package infra

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is resolved once at startup and passed explicitly from the
// composition root; nothing below main reads the environment.
type Config struct {
	Port string `envconfig:"PORT" default:"8080"`

	Database DatabaseConfig `envconfig:"DB"`
	Gateway  GatewayConfig  `envconfig:"GATEWAY"`
	Billing  BillingConfig  `envconfig:"BILLING"`
	Auth     AuthConfig     `envconfig:"AUTH"`
}

type DatabaseConfig struct {
	URL string `envconfig:"POSTGRES_URL" required:"true"`
}

type GatewayConfig struct {
	BaseURL string        `envconfig:"BASE_URL" required:"true"`
	APIKey  string        `envconfig:"API_KEY" required:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"30s"`
}

type BillingConfig struct {
	// Attempts per billing cycle before a payment fails terminally.
	MaxRetryAttempts int `envconfig:"MAX_RETRY_ATTEMPTS" default:"3"`
	// Consecutive failed payments before a subscription escalates to past-due.
	PastDueThreshold int `envconfig:"PAST_DUE_THRESHOLD" default:"3"`
	// Page size for sweep queries.
	SweepBatchSize int `envconfig:"SWEEP_BATCH_SIZE" default:"100"`
}

type AuthConfig struct {
	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`
	// Shared token for the internal scheduler trigger endpoints.
	InternalToken string `envconfig:"INTERNAL_TOKEN" required:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
