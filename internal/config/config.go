// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// GRPCAddr is the address the portal gRPC server listens on (e.g. :8080).
	GRPCAddr string `mapstructure:"GRPC_ADDR"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
	// LogLevel is the logrus level name (debug, info, warn, error).
	LogLevel string `mapstructure:"LOG_LEVEL"`
	// LogFormat is "json" or "text".
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// ReportAPIURL is the base URL of the report API the portal syncs from.
	ReportAPIURL string `mapstructure:"REPORT_API_URL"`
	// ReportAPITimeout bounds one fetch.
	ReportAPITimeout time.Duration `mapstructure:"REPORT_API_TIMEOUT"`
	// ReportAPIAddr is the address cmd/reportapi listens on.
	ReportAPIAddr string `mapstructure:"REPORT_API_ADDR"`
	// DatabaseURL is the Postgres DSN of the report API; empty serves the in-memory demo records.
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// PortalAllowedUsers is the comma-separated login allow-list (matched case-insensitively).
	PortalAllowedUsers string `mapstructure:"PORTAL_ALLOWED_USERS"`
	// PortalPassword is the shared portal secret. It is bcrypt-hashed at startup.
	PortalPassword string `mapstructure:"PORTAL_PASSWORD"`
	// AccessPolicyFile optionally replaces the built-in Rego access policy.
	AccessPolicyFile string `mapstructure:"ACCESS_POLICY_FILE"`
	// BcryptCost is the bcrypt cost factor (4–31); default 12.
	BcryptCost int `mapstructure:"BCRYPT_COST"`

	// JWTPrivateKey is the PEM-encoded private key (RSA or ECDSA) or path to file. Empty generates an ephemeral key.
	JWTPrivateKey string `mapstructure:"JWT_PRIVATE_KEY"`
	// JWTPublicKey is the PEM-encoded public key or path to file; used with JWT_PRIVATE_KEY.
	JWTPublicKey string `mapstructure:"JWT_PUBLIC_KEY"`
	// JWTIssuer is the iss claim.
	JWTIssuer string `mapstructure:"JWT_ISSUER"`
	// JWTAudience is the aud claim.
	JWTAudience string `mapstructure:"JWT_AUDIENCE"`
	// JWTAccessTTL is the access token lifetime (e.g. "15m").
	JWTAccessTTL string `mapstructure:"JWT_ACCESS_TTL"`

	TicketQuota        int           `mapstructure:"TICKET_QUOTA"`
	TicketDisplayLimit int           `mapstructure:"TICKET_DISPLAY_LIMIT"`
	TicketHighlightTTL time.Duration `mapstructure:"TICKET_HIGHLIGHT_TTL"`
	TicketSeedDemo     bool          `mapstructure:"TICKET_SEED_DEMO"`
	LogoutDelay        time.Duration `mapstructure:"LOGOUT_DELAY"`
	StepUpTTL          time.Duration `mapstructure:"STEP_UP_TTL"`
	// WorkspaceIdleTTL evicts workspaces nobody has used for this long. Raised to the access token TTL when shorter.
	WorkspaceIdleTTL time.Duration `mapstructure:"WORKSPACE_IDLE_TTL"`
	// OTPReturnToClient echoes the step-up code in the SendCode response. Must not be true when Env is production.
	OTPReturnToClient bool `mapstructure:"OTP_RETURN_TO_CLIENT"`
	// SyncOnLogin starts a background sync when step-up completes.
	SyncOnLogin bool `mapstructure:"SYNC_ON_LOGIN"`

	// OTLPEndpoint is the OTLP gRPC collector (e.g. localhost:4317). Empty disables OTel export.
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	// OTLPInsecure disables TLS to the collector.
	OTLPInsecure bool `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`

	// Telemetry (optional). When Kafka brokers are set, the gRPC server emits request telemetry to Kafka.
	// TelemetryKafkaBrokers is a comma-separated list of Kafka broker addresses (e.g. "localhost:9092").
	TelemetryKafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	// TelemetryKafkaTopic is the Kafka topic for telemetry events.
	TelemetryKafkaTopic string `mapstructure:"TELEMETRY_KAFKA_TOPIC"`

	// Worker-only: Loki URL for the telemetry worker to push logs (e.g. http://localhost:3100).
	LokiURL string `mapstructure:"LOKI_URL"`
	// KafkaGroupID is the consumer group ID for the telemetry worker.
	KafkaGroupID string `mapstructure:"KAFKA_GROUP_ID"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("GRPC_ADDR", ":8080")
	v.SetDefault("APP_ENV", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("REPORT_API_URL", "http://localhost:5000")
	v.SetDefault("REPORT_API_TIMEOUT", "10s")
	v.SetDefault("REPORT_API_ADDR", ":5000")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("PORTAL_ALLOWED_USERS", "aomchavez,guest")
	v.SetDefault("PORTAL_PASSWORD", "admin")
	v.SetDefault("ACCESS_POLICY_FILE", "")
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("JWT_PRIVATE_KEY", "")
	v.SetDefault("JWT_PUBLIC_KEY", "")
	v.SetDefault("JWT_ISSUER", "report-portal")
	v.SetDefault("JWT_AUDIENCE", "report-portal-api")
	v.SetDefault("JWT_ACCESS_TTL", "15m")
	v.SetDefault("TICKET_QUOTA", 3)
	v.SetDefault("TICKET_DISPLAY_LIMIT", 4)
	v.SetDefault("TICKET_HIGHLIGHT_TTL", "5s")
	v.SetDefault("TICKET_SEED_DEMO", true)
	v.SetDefault("LOGOUT_DELAY", "2s")
	v.SetDefault("STEP_UP_TTL", "5m")
	v.SetDefault("WORKSPACE_IDLE_TTL", "30m")
	v.SetDefault("OTP_RETURN_TO_CLIENT", false)
	v.SetDefault("SYNC_ON_LOGIN", true)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
	v.SetDefault("TELEMETRY_KAFKA_TOPIC", "portal-telemetry")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("LOKI_URL", "")
	v.SetDefault("KAFKA_GROUP_ID", "portal-telemetry-worker")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.GRPCAddr == "" {
		return nil, errors.New("config: GRPC_ADDR must be set")
	}

	if cfg.OTPReturnToClient && cfg.Env == "production" {
		return nil, errors.New("config: OTP_RETURN_TO_CLIENT must not be true when APP_ENV=production")
	}

	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 12
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.New("config: BCRYPT_COST must be between 4 and 31")
	}

	if len(cfg.AllowedUsers()) == 0 {
		return nil, errors.New("config: PORTAL_ALLOWED_USERS must list at least one user")
	}
	if cfg.PortalPassword == "" {
		return nil, errors.New("config: PORTAL_PASSWORD must be set")
	}
	if cfg.TicketQuota < 0 || cfg.TicketDisplayLimit < 0 {
		return nil, errors.New("config: TICKET_QUOTA and TICKET_DISPLAY_LIMIT must not be negative")
	}

	return &cfg, nil
}

// IdleTTL returns WorkspaceIdleTTL, never shorter than the access token lifetime
// so a live token always resolves to its workspace.
func (c *Config) IdleTTL() time.Duration {
	if access := c.AccessTTL(); c.WorkspaceIdleTTL < access {
		return access
	}
	return c.WorkspaceIdleTTL
}

// AccessTTL parses JWTAccessTTL as a time.Duration. Returns 15m if unset or invalid.
func (c *Config) AccessTTL() time.Duration {
	d, err := time.ParseDuration(c.JWTAccessTTL)
	if err != nil || d <= 0 {
		return 15 * time.Minute
	}
	return d
}

// AllowedUsers returns the login allow-list.
func (c *Config) AllowedUsers() []string {
	if c == nil {
		return nil
	}
	return splitList(c.PortalAllowedUsers)
}

// TelemetryKafkaBrokersList returns Kafka broker addresses from the comma-separated config.
// Used to decide if telemetry is enabled (non-empty list) and to create the producer.
func (c *Config) TelemetryKafkaBrokersList() []string {
	if c == nil {
		return nil
	}
	return splitList(c.TelemetryKafkaBrokers)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
