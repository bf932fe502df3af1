package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/platform/logger"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultSessionSecret = "thisshouldbeabettersecret"

// Config holds all configuration for the service.
type Config struct {
	ServiceName string `mapstructure:"SERVICE_NAME"`
	HTTPPort    string `mapstructure:"HTTP_PORT"`

	ReadTimeout     time.Duration `mapstructure:"HTTP_READ_TIMEOUT"`
	WriteTimeout    time.Duration `mapstructure:"HTTP_WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `mapstructure:"HTTP_IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `mapstructure:"HTTP_SHUTDOWN_TIMEOUT"`

	StoreDriver       string `mapstructure:"STORE_DRIVER"` // mongo | memory
	MongoURI          string `mapstructure:"MONGO_URI"`
	AtlasDBURL        string `mapstructure:"ATLASDB_URL"`
	MongoDatabase     string `mapstructure:"MONGO_DATABASE"`
	MongoTransactions bool   `mapstructure:"MONGO_TRANSACTIONS"`

	SessionSecret     string        `mapstructure:"SECRET_KEY"`
	SessionTTL        time.Duration `mapstructure:"SESSION_TTL"`
	SessionTouchAfter time.Duration `mapstructure:"SESSION_TOUCH_AFTER"`
	CookieSecure      bool          `mapstructure:"COOKIE_SECURE"`

	MinioEndpoint  string `mapstructure:"MINIO_ENDPOINT"`
	MinioAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinioBucket    string `mapstructure:"MINIO_BUCKET"`
	MinioUseSSL    bool   `mapstructure:"MINIO_USE_SSL"`
	ImageFolder    string `mapstructure:"IMAGE_FOLDER"`
	MaxUploadMB    int64  `mapstructure:"MAX_UPLOAD_MB"`

	RedisAddress string        `mapstructure:"REDIS_ADDRESS"`
	CacheTTL     time.Duration `mapstructure:"CACHE_TTL"`

	NATSURL string `mapstructure:"NATS_URL"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPEmail    string `mapstructure:"SMTP_EMAIL"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`

	LoginRatePerMinute int `mapstructure:"LOGIN_RATE_PER_MINUTE"`
	LoginBurst         int `mapstructure:"LOGIN_BURST"`

	// TrustProxy honours X-Forwarded-For / X-Real-IP. Enable only behind a
	// reverse proxy that overwrites them.
	TrustProxy bool `mapstructure:"TRUST_PROXY"`

	PrometheusMetricsPort  string  `mapstructure:"PROMETHEUS_METRICS_PORT"`
	OTExporterOTLPEndpoint string  `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTelSampleRatio        float64 `mapstructure:"OTEL_SAMPLE_RATIO"`
	LogLevel               string  `mapstructure:"LOG_LEVEL"`
	LogFormat              string  `mapstructure:"LOG_FORMAT"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVICE_NAME", "wanderlust")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("HTTP_READ_TIMEOUT", "15s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "30s")
	v.SetDefault("HTTP_IDLE_TIMEOUT", "60s")
	v.SetDefault("HTTP_SHUTDOWN_TIMEOUT", "10s")

	v.SetDefault("STORE_DRIVER", "mongo")
	v.SetDefault("MONGO_URI", "")
	v.SetDefault("ATLASDB_URL", "")
	v.SetDefault("MONGO_DATABASE", "wanderlust")
	v.SetDefault("MONGO_TRANSACTIONS", false)

	v.SetDefault("SECRET_KEY", defaultSessionSecret)
	v.SetDefault("SESSION_TTL", "168h")
	v.SetDefault("SESSION_TOUCH_AFTER", "24h")
	v.SetDefault("COOKIE_SECURE", false)

	v.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	v.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
	v.SetDefault("MINIO_SECRET_KEY", "minioadmin")
	v.SetDefault("MINIO_BUCKET", "wanderlust")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("IMAGE_FOLDER", "wanderlust_DEV")
	v.SetDefault("MAX_UPLOAD_MB", 10)

	v.SetDefault("REDIS_ADDRESS", "")
	v.SetDefault("CACHE_TTL", "1h")

	v.SetDefault("NATS_URL", "")

	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_EMAIL", "")
	v.SetDefault("SMTP_PASSWORD", "")

	v.SetDefault("LOGIN_RATE_PER_MINUTE", 10)
	v.SetDefault("LOGIN_BURST", 5)
	v.SetDefault("TRUST_PROXY", false)

	v.SetDefault("PROMETHEUS_METRICS_PORT", "9090")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_SAMPLE_RATIO", 1.0)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// LoadConfig reads configuration from the environment and an optional
// config.env file in the working directory.
func LoadConfig(appLogger *logger.Logger) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			appLogger.Debug("No config.env file found, relying on environment variables.")
		} else {
			appLogger.Warn("Error reading config.env", zap.Error(err))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		appLogger.Error("Failed to unmarshal configuration", zap.Error(err))
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.MongoURI == "" {
		cfg.MongoURI = cfg.AtlasDBURL
	}
	if cfg.MongoURI == "" {
		cfg.MongoURI = "mongodb://127.0.0.1:27017/wanderlust"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.SessionSecret == defaultSessionSecret {
		appLogger.Warn("SECRET_KEY is set to its default insecure value. Please set a strong secret in your environment.")
	}

	appLogger.Debug("Configuration loaded",
		zap.String("service_name", cfg.ServiceName),
		zap.String("http_port", cfg.HTTPPort),
		zap.String("store_driver", cfg.StoreDriver),
		zap.String("mongo_database", cfg.MongoDatabase),
		zap.Bool("mongo_transactions", cfg.MongoTransactions),
		zap.String("minio_endpoint", cfg.MinioEndpoint),
		zap.String("redis_address", cfg.RedisAddress),
		zap.String("nats_url", cfg.NATSURL),
		zap.Bool("smtp_enabled", cfg.SMTPEnabled()),
		zap.String("prometheus_port", cfg.PrometheusMetricsPort),
		zap.String("otel_endpoint", cfg.OTExporterOTLPEndpoint),
	)

	return &cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return errors.New("HTTP_PORT is required")
	}
	switch c.StoreDriver {
	case "mongo":
		if c.MongoDatabase == "" {
			return errors.New("MONGO_DATABASE is required")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.SessionSecret == "" {
		return errors.New("SECRET_KEY is required")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.MaxUploadMB <= 0 {
		return errors.New("MAX_UPLOAD_MB must be positive")
	}
	return nil
}

// SMTPEnabled reports whether listing notices can be mailed.
func (c *Config) SMTPEnabled() bool {
	return c.SMTPEmail != "" && c.SMTPPassword != ""
}

// MaxUploadBytes is the multipart body limit for listing forms.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}
