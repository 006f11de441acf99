package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Rate limiting, e.g. "100-M" for 100 requests per minute per IP.
	RateLimit string

	// Kafka audit event stream. Empty brokers disable publishing.
	KafkaBrokers    []string
	KafkaAuditTopic string

	// Invoicing
	DefaultTaxRate decimal.Decimal // e.g. 0.0825 for 8.25%

	// Ledger append retries on serialization conflicts.
	LedgerAppendMaxRetries int

	// Secret used to encrypt bank account details at rest.
	AccountEncryptionKey string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "trust-ledger")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_AUDIT_TOPIC", "trustd.audit")
	viper.SetDefault("DEFAULT_TAX_RATE", "0")
	viper.SetDefault("LEDGER_APPEND_MAX_RETRIES", 3)
	viper.SetDefault("ACCOUNT_ENCRYPTION_KEY", "insecure-dev-encryption-key-change-me")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	if brokers := viper.GetString("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	cfg.KafkaAuditTopic = viper.GetString("KAFKA_AUDIT_TOPIC")

	taxRateStr := viper.GetString("DEFAULT_TAX_RATE")
	taxRate, err := decimal.NewFromString(taxRateStr)
	if err != nil {
		taxRate = decimal.Zero
		log.Printf("Warning: Invalid value for DEFAULT_TAX_RATE ('%s'). Defaulting to 0.\n", taxRateStr)
	}
	cfg.DefaultTaxRate = taxRate

	cfg.LedgerAppendMaxRetries = viper.GetInt("LEDGER_APPEND_MAX_RETRIES")
	if cfg.LedgerAppendMaxRetries < 1 {
		cfg.LedgerAppendMaxRetries = 3
	}

	cfg.AccountEncryptionKey = viper.GetString("ACCOUNT_ENCRYPTION_KEY")
	if cfg.AccountEncryptionKey == "insecure-dev-encryption-key-change-me" {
		log.Println("Warning: ACCOUNT_ENCRYPTION_KEY not set. Using default insecure key.")
	}

	return cfg, nil
}
