package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/hsbu/gopay-api-demo/internal/domain/entity"
)

// Config is read from environment variables and an optional .env file.
type Config struct {
	HTTPAddr      string `mapstructure:"HTTP_ADDR"`
	GRPCAddr      string `mapstructure:"GRPC_ADDR"`
	GRPCEnabled   bool   `mapstructure:"GRPC_ENABLED"`
	DefaultUserID string `mapstructure:"DEFAULT_USER_ID"`

	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	RabbitMQURL   string `mapstructure:"RABBITMQ_URL"`
	EventExchange string `mapstructure:"EVENT_EXCHANGE"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	DelayLimitCheck time.Duration `mapstructure:"DELAY_LIMIT_CHECK"`
	DelayPayment    time.Duration `mapstructure:"DELAY_PAYMENT"`
	DelayTopUp      time.Duration `mapstructure:"DELAY_TOPUP"`
	DelayKYC        time.Duration `mapstructure:"DELAY_KYC"`

	BasicLimit    int64 `mapstructure:"BASIC_LIMIT"`
	VerifiedLimit int64 `mapstructure:"VERIFIED_LIMIT"`

	QRCodeSize         int      `mapstructure:"QR_CODE_SIZE"`
	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

var defaults = map[string]any{
	"HTTP_ADDR":            ":5000",
	"GRPC_ADDR":            ":50051",
	"GRPC_ENABLED":         true,
	"DEFAULT_USER_ID":      "user_123",
	"DATABASE_URL":         "",
	"RABBITMQ_URL":         "",
	"EVENT_EXCHANGE":       "wallet_events",
	"LOG_LEVEL":            "info",
	"LOG_FORMAT":           "json",
	"DELAY_LIMIT_CHECK":    500 * time.Millisecond,
	"DELAY_PAYMENT":        time.Second,
	"DELAY_TOPUP":          time.Second,
	"DELAY_KYC":            1500 * time.Millisecond,
	"BASIC_LIMIT":          entity.DefaultBasicLimit,
	"VERIFIED_LIMIT":       entity.DefaultVerifiedLimit,
	"QR_CODE_SIZE":         256,
	"CORS_ALLOWED_ORIGINS": []string{"*"},
}

// Load reads configuration with values from the environment taking precedence
// over an optional .env file in path.
func Load(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for key, value := range defaults {
		v.SetDefault(key, value)
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg.DefaultUserID = strings.TrimSpace(cfg.DefaultUserID)
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	cfg.RabbitMQURL = strings.TrimSpace(cfg.RabbitMQURL)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.DefaultUserID == "" {
		errs = append(errs, errors.New("DEFAULT_USER_ID must not be empty"))
	}
	if c.BasicLimit <= 0 {
		errs = append(errs, fmt.Errorf("BASIC_LIMIT must be positive, got %d", c.BasicLimit))
	}
	if c.VerifiedLimit <= 0 {
		errs = append(errs, fmt.Errorf("VERIFIED_LIMIT must be positive, got %d", c.VerifiedLimit))
	}
	for name, d := range map[string]time.Duration{
		"DELAY_LIMIT_CHECK": c.DelayLimitCheck,
		"DELAY_PAYMENT":     c.DelayPayment,
		"DELAY_TOPUP":       c.DelayTopUp,
		"DELAY_KYC":         c.DelayKYC,
	} {
		if d < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %s", name, d))
		}
	}
	if c.QRCodeSize <= 0 {
		errs = append(errs, fmt.Errorf("QR_CODE_SIZE must be positive, got %d", c.QRCodeSize))
	}
	return errors.Join(errs...)
}
