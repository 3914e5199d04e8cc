package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Storage      StorageConfig      `mapstructure:"storage"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Redis        RedisConfig        `mapstructure:"redis"`
	NATS         NATSConfig         `mapstructure:"nats"`
	JWT          JWTConfig          `mapstructure:"jwt"`
	AES          AESConfig          `mapstructure:"aes"`
	Log          LogConfig          `mapstructure:"log"`
	Webhook      WebhookConfig      `mapstructure:"webhook"`
	OTP          OTPConfig          `mapstructure:"otp"`
	RateLimit    RateLimitConfig    `mapstructure:"ratelimit"`
	Risk         RiskConfig         `mapstructure:"risk"`
	Provider     ProviderConfig     `mapstructure:"provider"`
	Notification NotificationConfig `mapstructure:"notification"`
	Wallet       WalletConfig       `mapstructure:"wallet"`
	Withdrawal   WithdrawalConfig   `mapstructure:"withdrawal"`
	Metrics      MetricsConfig      `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"` // postgres, memory
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// MigrateURL returns the connection string in the form golang-migrate's pgx/v5 driver expects.
func (d DatabaseConfig) MigrateURL() string {
	return "pgx5" + strings.TrimPrefix(d.DSN(), "postgres")
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type NATSConfig struct {
	URL           string        `mapstructure:"url"` // empty = in-process queue
	Stream        string        `mapstructure:"stream"`
	Consumer      string        `mapstructure:"consumer"`
	MaxDeliver    int           `mapstructure:"max_deliver"`
	AckWait       time.Duration `mapstructure:"ack_wait"`
	MaxAge        time.Duration `mapstructure:"max_age"`
	MaxReconnects int           `mapstructure:"max_reconnects"`
	ReconnectWait time.Duration `mapstructure:"reconnect_wait"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type AESConfig struct {
	Key string `mapstructure:"key"` // 32-byte hex-encoded key for AES-256
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

type WebhookConfig struct {
	Secret          string        `mapstructure:"secret"`
	SignatureHeader string        `mapstructure:"signature_header"`
	DedupTTL        time.Duration `mapstructure:"dedup_ttl"`
}

type OTPConfig struct {
	Length         int           `mapstructure:"length"`
	TTL            time.Duration `mapstructure:"ttl"`
	MaxAttempts    int           `mapstructure:"max_attempts"`
	LockoutWindow  time.Duration `mapstructure:"lockout_window"`
	HashMemoryKiB  uint32        `mapstructure:"hash_memory_kib"`
	HashIterations uint32        `mapstructure:"hash_iterations"`
}

// RateLimitRule is a fixed-window limit for one sensitive action.
type RateLimitRule struct {
	Limit  int64         `mapstructure:"limit"`
	Window time.Duration `mapstructure:"window"`
}

type RateLimitConfig struct {
	Enabled bool                     `mapstructure:"enabled"`
	Rules   map[string]RateLimitRule `mapstructure:"rules"`
}

// RiskConfig tunes the device/IP signal collector. Threshold is the level at
// which a route's risk policy applies.
type RiskConfig struct {
	Threshold        string        `mapstructure:"threshold"`
	ObservationTTL   time.Duration `mapstructure:"observation_ttl"`
	ConcurrentWindow time.Duration `mapstructure:"concurrent_window"`
}

type ProviderConfig struct {
	Kind           string        `mapstructure:"kind"` // http, sandbox
	BaseURL        string        `mapstructure:"base_url"`
	SecretKey      string        `mapstructure:"secret_key"`
	Timeout        time.Duration `mapstructure:"timeout"`
	MaxAttempts    int           `mapstructure:"max_attempts"`
	InitialBackoff time.Duration `mapstructure:"initial_backoff"`
	MaxBackoff     time.Duration `mapstructure:"max_backoff"`
	CallbackURL    string        `mapstructure:"callback_url"`
}

type NotificationConfig struct {
	GatewayURL string        `mapstructure:"gateway_url"` // empty = log only
	Timeout    time.Duration `mapstructure:"timeout"`
	Workers    int           `mapstructure:"workers"`
}

type WalletConfig struct {
	Currency  string `mapstructure:"currency"`
	MinTopup  int64  `mapstructure:"min_topup"`
	MaxTopup  int64  `mapstructure:"max_topup"`
	MinPayout int64  `mapstructure:"min_payout"`
}

type WithdrawalConfig struct {
	MaxStatusChecks int           `mapstructure:"max_status_checks"`
	StaleAfter      time.Duration `mapstructure:"stale_after"`
	SweepInterval   time.Duration `mapstructure:"sweep_interval"`
	SweepBatch      int           `mapstructure:"sweep_batch"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: MWL_ (Marketplace Wallet Ledger).
// Nested keys use underscore: MWL_DATABASE_HOST, MWL_WEBHOOK_SECRET, etc.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("MWL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Configured rules override defaults per action; unlisted actions keep theirs.
	rules := DefaultRateLimitRules()
	for action, rule := range cfg.RateLimit.Rules {
		rules[action] = rule
	}
	cfg.RateLimit.Rules = rules

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("storage.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "marketplace_wallet")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 20)
	v.SetDefault("redis.dial_timeout", "2s")
	v.SetDefault("redis.read_timeout", "500ms")
	v.SetDefault("redis.write_timeout", "500ms")
	v.SetDefault("nats.url", "")
	v.SetDefault("nats.stream", "MARKETPLACE_TASKS")
	v.SetDefault("nats.consumer", "notification-worker")
	v.SetDefault("nats.max_deliver", 5)
	v.SetDefault("nats.ack_wait", "30s")
	v.SetDefault("nats.max_age", "1h")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "marketplace-wallet")
	v.SetDefault("aes.key", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("webhook.secret", "")
	v.SetDefault("webhook.signature_header", "X-Processor-Signature")
	v.SetDefault("webhook.dedup_ttl", "72h")
	v.SetDefault("otp.length", 6)
	v.SetDefault("otp.ttl", "10m")
	v.SetDefault("otp.max_attempts", 5)
	v.SetDefault("otp.lockout_window", "15m")
	v.SetDefault("otp.hash_memory_kib", 19*1024)
	v.SetDefault("otp.hash_iterations", 2)
	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("risk.threshold", "critical")
	v.SetDefault("risk.observation_ttl", "720h")
	v.SetDefault("risk.concurrent_window", "10m")
	v.SetDefault("provider.kind", "sandbox")
	v.SetDefault("provider.base_url", "")
	v.SetDefault("provider.secret_key", "")
	v.SetDefault("provider.timeout", "15s")
	v.SetDefault("provider.max_attempts", 3)
	v.SetDefault("provider.initial_backoff", "500ms")
	v.SetDefault("provider.max_backoff", "5s")
	v.SetDefault("provider.callback_url", "")
	v.SetDefault("notification.gateway_url", "")
	v.SetDefault("notification.timeout", "10s")
	v.SetDefault("notification.workers", 4)
	v.SetDefault("wallet.currency", "NGN")
	v.SetDefault("wallet.min_topup", 100)
	v.SetDefault("wallet.max_topup", 100_000_000)
	v.SetDefault("wallet.min_payout", 100)
	v.SetDefault("withdrawal.max_status_checks", 10)
	v.SetDefault("withdrawal.stale_after", "30m")
	v.SetDefault("withdrawal.sweep_interval", "5m")
	v.SetDefault("withdrawal.sweep_batch", 50)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// DefaultRateLimitRules returns the per-action limits applied when none are configured.
func DefaultRateLimitRules() map[string]RateLimitRule {
	return map[string]RateLimitRule{
		"otp_issue":      {Limit: 3, Window: 15 * time.Minute},
		"otp_submit":     {Limit: 10, Window: 15 * time.Minute},
		"payout_create":  {Limit: 5, Window: 24 * time.Hour},
		"topup_initiate": {Limit: 10, Window: time.Hour},
		"topup_verify":   {Limit: 30, Window: time.Hour},
		"reversal":       {Limit: 5, Window: 24 * time.Hour},
		"read":           {Limit: 120, Window: time.Minute},
		"admin":          {Limit: 300, Window: time.Minute},
	}
}

// Validate checks that secrets and thresholds required at startup are present.
// A missing webhook secret is fatal so the webhook path never runs unauthenticated.
func (c *Config) Validate() error {
	var errs []error

	if c.Webhook.Secret == "" {
		errs = append(errs, errors.New("webhook.secret is required"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("jwt.secret is required"))
	}
	if key, err := hex.DecodeString(c.AES.Key); err != nil || len(key) != 32 {
		errs = append(errs, errors.New("aes.key must be 64 hex characters"))
	}
	switch c.Storage.Driver {
	case "postgres", "memory":
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q is not supported", c.Storage.Driver))
	}
	if c.OTP.Length <= 0 || c.OTP.MaxAttempts <= 0 || c.OTP.TTL <= 0 || c.OTP.LockoutWindow <= 0 {
		errs = append(errs, errors.New("otp length, ttl, max_attempts and lockout_window must be positive"))
	}
	for action, rule := range c.RateLimit.Rules {
		if rule.Limit <= 0 || rule.Window <= 0 {
			errs = append(errs, fmt.Errorf("ratelimit rule %q must have a positive limit and window", action))
		}
	}
	switch c.Risk.Threshold {
	case "low", "medium", "high", "critical":
	default:
		errs = append(errs, fmt.Errorf("risk.threshold %q is not a risk level", c.Risk.Threshold))
	}
	switch c.Provider.Kind {
	case "sandbox":
	case "http":
		if c.Provider.BaseURL == "" || c.Provider.SecretKey == "" {
			errs = append(errs, errors.New("provider.base_url and provider.secret_key are required for the http provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("provider.kind %q is not supported", c.Provider.Kind))
	}
	if c.Provider.MaxAttempts <= 0 {
		errs = append(errs, errors.New("provider.max_attempts must be positive"))
	}
	if c.Wallet.MinTopup <= 0 || c.Wallet.MaxTopup < c.Wallet.MinTopup {
		errs = append(errs, errors.New("wallet topup bounds are invalid"))
	}

	return errors.Join(errs...)
}
