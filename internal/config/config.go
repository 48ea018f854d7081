package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Campaign CampaignConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
//
// StaffTokenTTLHours and ClientTokenTTLHours size the final tokens for the
// two account variants; PreAuthTTLMinutes sizes the short-lived token that
// bridges the password check and the TOTP verification step.
type AuthConfig struct {
	JWTSecret           string
	StaffTokenTTLHours  int
	ClientTokenTTLHours int
	PreAuthTTLMinutes   int
	BcryptCost          int
	TOTPIssuer          string
}

// StorageConfig selects and configures the object store backing assets.
type StorageConfig struct {
	Driver    string // "local" or "s3"
	LocalDir  string
	S3Bucket  string
	S3Region  string
	PublicURL string
}

// CampaignConfig bounds outbound campaign message dispatch.
type CampaignConfig struct {
	RateLimitPerMinute int
	WorkerBuffer       int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	jwtSecret := os.Getenv("AUTH_JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("AUTH_JWT_SECRET is required")
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "lacapital-crm"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:           jwtSecret,
			StaffTokenTTLHours:  getEnvAsInt("AUTH_STAFF_TOKEN_TTL_HOURS", 13),
			ClientTokenTTLHours: getEnvAsInt("AUTH_CLIENT_TOKEN_TTL_HOURS", 168),
			PreAuthTTLMinutes:   getEnvAsInt("AUTH_PREAUTH_TTL_MINUTES", 5),
			BcryptCost:          getEnvAsInt("AUTH_BCRYPT_COST", 12),
			TOTPIssuer:          getEnv("AUTH_TOTP_ISSUER", "La Capital"),
		},
		Storage: StorageConfig{
			Driver:    getEnv("STORAGE_DRIVER", "local"),
			LocalDir:  getEnv("STORAGE_LOCAL_DIR", "data/assets"),
			S3Bucket:  os.Getenv("STORAGE_S3_BUCKET"),
			S3Region:  os.Getenv("STORAGE_S3_REGION"),
			PublicURL: getEnv("STORAGE_PUBLIC_URL", ""),
		},
		Campaign: CampaignConfig{
			RateLimitPerMinute: getEnvAsInt("CAMPAIGN_RATE_LIMIT_PER_MINUTE", 30),
			WorkerBuffer:       getEnvAsInt("CAMPAIGN_WORKER_BUFFER", 256),
		},
	}

	if cfg.Storage.Driver == "s3" && cfg.Storage.S3Bucket == "" {
		return nil, fmt.Errorf("STORAGE_S3_BUCKET is required when STORAGE_DRIVER=s3")
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// StaffTokenTTL returns the staff final-token lifetime.
func (a AuthConfig) StaffTokenTTL() time.Duration {
	return time.Duration(a.StaffTokenTTLHours) * time.Hour
}

// ClientTokenTTL returns the client final-token lifetime.
func (a AuthConfig) ClientTokenTTL() time.Duration {
	return time.Duration(a.ClientTokenTTLHours) * time.Hour
}

// PreAuthTTL returns the pre-auth token lifetime.
func (a AuthConfig) PreAuthTTL() time.Duration {
	return time.Duration(a.PreAuthTTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
