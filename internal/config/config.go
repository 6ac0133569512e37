package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	envPort                  = "PORT"
	envServerReadTimeout     = "SERVER_READ_TIMEOUT"
	envServerWriteTimeout    = "SERVER_WRITE_TIMEOUT"
	envServerShutdownTimeout = "SERVER_SHUTDOWN_TIMEOUT"
	envAllowedOrigins        = "ALLOWED_ORIGINS"
	envServerHSTS            = "SERVER_HSTS"
	envEnableProfiling       = "ENABLE_PROFILING"
	envDBHost                = "DB_HOST"
	envDBPort                = "DB_PORT"
	envDBName                = "DB_NAME"
	envDBUser                = "DB_USER"
	envDBPassword            = "DB_PASSWORD"
	envDBSSLMode             = "DB_SSL_MODE"
	envDBMaxConns            = "DB_MAX_CONNS"
	envDBMinConns            = "DB_MIN_CONNS"
	envAWSRegion             = "REGION"
	envAWSAccessKeyID        = "AWS_ACCESS_KEY_ID"
	envAWSSecretAccessKey    = "AWS_SECRET_ACCESS_KEY"
	envAWSBucket             = "S3_BUCKET"
	envAWSPublicBaseURL      = "S3_PUBLIC_BASE_URL"
	envAWSEndpoint           = "S3_ENDPOINT"
	envJWTSecret             = "JWT_SECRET"
	envJWTExpiry             = "JWT_EXPIRY_MINUTES"
	envMailFrom              = "MAIL_FROM"
	envMailStrategy          = "MAIL_STRATEGY"
	envResendAPIKey          = "RESEND_API_KEY"
	envSendGridAPIKey        = "SENDGRID_API_KEY"
	envSMTPHost              = "SMTP_HOST"
	envSMTPPort              = "SMTP_PORT"
	envSMTPUsername          = "SMTP_USERNAME"
	envSMTPPassword          = "SMTP_PASSWORD"
	envRedisAddr             = "REDIS_ADDR"
	envRedisPassword         = "REDIS_PASSWORD"
	envRedisDB               = "REDIS_DB"
	envKafkaBrokers          = "KAFKA_BROKERS"
	envKafkaTopic            = "KAFKA_TOPIC"
	envPaginationPageSize    = "PAGINATION_PAGE_SIZE"
	envMaxUploadSize         = "MAX_UPLOAD_SIZE"
	envLogLevel              = "LOG_LEVEL"
)

const (
	defaultServerPort          = "8080"
	defaultServerReadTimeout   = 10 * time.Second
	defaultServerWriteTimeout  = 30 * time.Second
	defaultServerShutdown      = 10 * time.Second
	defaultDBHost              = "localhost"
	defaultDBPort              = 5432
	defaultDBName              = "librarycms"
	defaultDBUser              = "librarycms_app"
	defaultDBSSLMode           = "disable"
	defaultDBMaxConns          = 25
	defaultDBMinConns          = 5
	defaultJWTExpiry           = 60 * time.Minute
	defaultMailStrategy        = "failover"
	defaultKafkaTopic          = "librarycms.content"
	defaultPageSize            = 100
	defaultMaxUploadSize       = int64(50 * 1024 * 1024)
	defaultLogLevel            = "info"
	minJWTSecretLength         = 32
	minUniqueCharsInSecret     = 16
	minRepeatedCharThreshold   = 4
	maxRepeatedChars           = 2
	errPortRequiredFmt         = "PORT must be set"
	errDBPasswordRequiredFmt   = "DB_PASSWORD must be set"
	errRegionRequiredFmt       = "REGION must be set"
	errAWSAccessKeyRequiredFmt = "AWS_ACCESS_KEY_ID must be set"
	errAWSSecretKeyRequiredFmt = "AWS_SECRET_ACCESS_KEY must be set"
	errBucketRequiredFmt       = "S3_BUCKET must be set"
	errJWTSecretRequiredFmt    = "JWT_SECRET must be set"
	errJWTSecretMinLengthFmt   = "JWT_SECRET must be at least %d characters"
	errJWTSecretLowEntropyFmt  = "JWT_SECRET has insufficient entropy (appears non-random). Use a cryptographically secure random string."
	errMailFromRequiredFmt     = "MAIL_FROM must be set"
	errPageSizeFmt             = "PAGINATION_PAGE_SIZE must be positive"
	errInvalidConfigurationFmt = "invalid configuration: %w"
	errRequiredEnvNotSetFmt    = "required environment variables not set: %s"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	AWS      AWSConfig
	JWT      JWTConfig
	Mail     MailConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	App      AppConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
	// HSTS enables Strict-Transport-Security when the service sits behind TLS.
	HSTS            bool
	// Profiling mounts pprof and runtime stats under the super_admin routes.
	Profiling       bool
}

type DatabaseConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
	MaxConns int
	MinConns int
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	// PublicBaseURL prefixes object keys in returned asset URLs.
	// Empty means the virtual-hosted S3 URL of the bucket.
	PublicBaseURL string
	// Endpoint overrides the S3 endpoint for S3-compatible stores.
	Endpoint string
}

type JWTConfig struct {
	Secret         string
	ExpiryDuration time.Duration
}

type MailConfig struct {
	From           string
	Strategy       string
	ResendAPIKey   string
	SendGridAPIKey string
	SMTPHost       string
	SMTPPort       int
	SMTPUsername   string
	SMTPPassword   string
}

// RedisConfig is optional. An empty Addr keeps maintenance state in memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// KafkaConfig is optional. No brokers disables content events.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type AppConfig struct {
	PageSize      int
	MaxUploadSize int64
	LogLevel      string
}

func Load() (*Config, error) {
	var req required
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv(envPort, defaultServerPort),
			ReadTimeout:     getDurationEnv(envServerReadTimeout, defaultServerReadTimeout),
			WriteTimeout:    getDurationEnv(envServerWriteTimeout, defaultServerWriteTimeout),
			ShutdownTimeout: getDurationEnv(envServerShutdownTimeout, defaultServerShutdown),
			AllowedOrigins:  getListEnv(envAllowedOrigins),
			HSTS:            getBoolEnv(envServerHSTS, false),
			Profiling:       getBoolEnv(envEnableProfiling, false),
		},
		Database: DatabaseConfig{
			Host:     getEnv(envDBHost, defaultDBHost),
			Port:     getIntEnv(envDBPort, defaultDBPort),
			Database: getEnv(envDBName, defaultDBName),
			User:     getEnv(envDBUser, defaultDBUser),
			Password: req.get(envDBPassword),
			SSLMode:  getEnv(envDBSSLMode, defaultDBSSLMode),
			MaxConns: getIntEnv(envDBMaxConns, defaultDBMaxConns),
			MinConns: getIntEnv(envDBMinConns, defaultDBMinConns),
		},
		AWS: AWSConfig{
			Region:          req.get(envAWSRegion),
			AccessKeyID:     req.get(envAWSAccessKeyID),
			SecretAccessKey: req.get(envAWSSecretAccessKey),
			Bucket:          req.get(envAWSBucket),
			PublicBaseURL:   strings.TrimRight(getEnv(envAWSPublicBaseURL, ""), "/"),
			Endpoint:        getEnv(envAWSEndpoint, ""),
		},
		JWT: JWTConfig{
			Secret:         req.get(envJWTSecret),
			ExpiryDuration: getDurationEnv(envJWTExpiry, defaultJWTExpiry),
		},
		Mail: MailConfig{
			From:           req.get(envMailFrom),
			Strategy:       getEnv(envMailStrategy, defaultMailStrategy),
			ResendAPIKey:   getEnv(envResendAPIKey, ""),
			SendGridAPIKey: getEnv(envSendGridAPIKey, ""),
			SMTPHost:       getEnv(envSMTPHost, ""),
			SMTPPort:       getIntEnv(envSMTPPort, 0),
			SMTPUsername:   getEnv(envSMTPUsername, ""),
			SMTPPassword:   getEnv(envSMTPPassword, ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv(envRedisAddr, ""),
			Password: getEnv(envRedisPassword, ""),
			DB:       getIntEnv(envRedisDB, 0),
		},
		Kafka: KafkaConfig{
			Brokers: getListEnv(envKafkaBrokers),
			Topic:   getEnv(envKafkaTopic, defaultKafkaTopic),
		},
		App: AppConfig{
			PageSize:      getIntEnv(envPaginationPageSize, defaultPageSize),
			MaxUploadSize: getInt64Env(envMaxUploadSize, defaultMaxUploadSize),
			LogLevel:      getEnv(envLogLevel, defaultLogLevel),
		},
	}

	if err := req.err(); err != nil {
		return nil, fmt.Errorf(errInvalidConfigurationFmt, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf(errInvalidConfigurationFmt, err)
	}

	return cfg, nil
}

// LoadDatabase reads only the database section. It is used by commands
// that never touch storage, mail or sessions.
func LoadDatabase() (*DatabaseConfig, error) {
	db := &DatabaseConfig{
		Host:     getEnv(envDBHost, defaultDBHost),
		Port:     getIntEnv(envDBPort, defaultDBPort),
		Database: getEnv(envDBName, defaultDBName),
		User:     getEnv(envDBUser, defaultDBUser),
		Password: getEnv(envDBPassword, ""),
		SSLMode:  getEnv(envDBSSLMode, defaultDBSSLMode),
		MaxConns: getIntEnv(envDBMaxConns, defaultDBMaxConns),
		MinConns: getIntEnv(envDBMinConns, defaultDBMinConns),
	}
	if db.Password == "" {
		return nil, fmt.Errorf(errInvalidConfigurationFmt, fmt.Errorf(errDBPasswordRequiredFmt))
	}
	return db, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf(errPortRequiredFmt)
	}

	if c.Database.Password == "" {
		return fmt.Errorf(errDBPasswordRequiredFmt)
	}

	if c.AWS.Region == "" {
		return fmt.Errorf(errRegionRequiredFmt)
	}

	if c.AWS.AccessKeyID == "" {
		return fmt.Errorf(errAWSAccessKeyRequiredFmt)
	}

	if c.AWS.SecretAccessKey == "" {
		return fmt.Errorf(errAWSSecretKeyRequiredFmt)
	}

	if c.AWS.Bucket == "" {
		return fmt.Errorf(errBucketRequiredFmt)
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf(errJWTSecretRequiredFmt)
	}

	if len(c.JWT.Secret) < minJWTSecretLength {
		return fmt.Errorf(errJWTSecretMinLengthFmt, minJWTSecretLength)
	}

	if !hasMinimumEntropy(c.JWT.Secret) {
		return fmt.Errorf(errJWTSecretLowEntropyFmt)
	}

	if c.Mail.From == "" {
		return fmt.Errorf(errMailFromRequiredFmt)
	}

	if c.App.PageSize <= 0 {
		return fmt.Errorf(errPageSizeFmt)
	}

	return nil
}

func hasMinimumEntropy(secret string) bool {
	if len(secret) < minJWTSecretLength {
		return false
	}

	charCounts := make(map[rune]int)
	for _, char := range secret {
		charCounts[char]++
	}

	uniqueChars := len(charCounts)
	if uniqueChars < minUniqueCharsInSecret {
		return false
	}

	repeatedChars := 0
	for _, count := range charCounts {
		if count > len(secret)/minRepeatedCharThreshold {
			repeatedChars++
		}
	}

	return repeatedChars <= maxRepeatedChars
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// URL returns the connection string in URL form for database/sql drivers.
func (c *DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Database,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// required collects the names of mandatory variables that are unset so
// Load can report all of them at once.
type required struct {
	missing []string
}

func (r *required) get(key string) string {
	value := os.Getenv(key)
	if value == "" {
		r.missing = append(r.missing, key)
	}
	return value
}

func (r *required) err() error {
	if len(r.missing) == 0 {
		return nil
	}
	return fmt.Errorf(errRequiredEnvNotSetFmt, strings.Join(r.missing, ", "))
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}

// getListEnv splits a comma-separated variable, dropping empty entries.
func getListEnv(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
