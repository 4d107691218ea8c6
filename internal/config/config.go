package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers
const (
	DriverMongo    = "mongodb"
	DriverOracle   = "oracle"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Mongo    MongoConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Server   ServerConfig
	Metrics  MetricsConfig
}

type AppConfig struct {
	Name    string
	Env     string
	Port    int
	Version string
}

// StoreConfig selects the primary member store and the fallback policy.
type StoreConfig struct {
	Driver         string        // mongodb | oracle | postgres | sqlite
	Fallback       bool          // true: use the in-memory store when the primary is unreachable at startup
	ConnectTimeout time.Duration // bound on the one-time connection/selection attempt
}

type MongoConfig struct {
	URI         string
	Database    string
	Collection  string
	MaxPoolSize uint64
	MinPoolSize uint64
	SlowCommand time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	Service         string // oracle service name / postgres database name
	User            string
	Password        string
	SSLMode         string // postgres only
	Path            string // sqlite only
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	ResetSchema     bool // true: 테이블 재생성, false: 누락된 테이블/인덱스만 생성
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type ServerConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	GracefulTimeout time.Duration
	RequestTimeout  time.Duration
}

type MetricsConfig struct {
	Enabled bool
}

func Load(env string) (*Config, error) {
	if err := loadEnvFile(env); err != nil {
		return nil, fmt.Errorf("환경 변수 로드 실패: %w", err)
	}

	driver := strings.ToLower(getEnv("STORE_DRIVER", DriverMongo))

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "gym-member-api"),
			Env:     env,
			Port:    getEnvAsInt("APP_PORT", getEnvAsInt("PORT", 5000)),
			Version: getEnv("SERVICE_VERSION", "dev"),
		},
		Store: StoreConfig{
			Driver:         driver,
			Fallback:       getEnvAsBool("STORE_FALLBACK", true),
			ConnectTimeout: getEnvAsDuration("STORE_CONNECT_TIMEOUT", "5s"),
		},
		Mongo: MongoConfig{
			URI:         getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:    getEnv("MONGODB_DATABASE", getEnv("DB_NAME", "gym")),
			Collection:  getEnv("MONGODB_COLLECTION", getEnv("COLLECTION_NAME", "members")),
			MaxPoolSize: uint64(getEnvAsInt("MONGODB_MAX_POOL_SIZE", 50)),
			MinPoolSize: uint64(getEnvAsInt("MONGODB_MIN_POOL_SIZE", 10)),
			SlowCommand: getEnvAsDuration("MONGODB_SLOW_COMMAND", "200ms"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", defaultDBPort(driver)),
			Service:         getEnv("DB_SERVICE", "gym"),
			User:            getEnv("DB_USER", ""),
			Password:        getEnv("DB_PASSWORD", ""),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			Path:            getEnv("DB_PATH", "./data/members.db"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", "1h"),
			ConnMaxIdleTime: getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", "10m"),
			ResetSchema:     getEnvAsBool("DB_RESET_SCHEMA", false), // 기본값: false (안전)
		},
		CORS: CORSConfig{
			AllowedOrigins:   getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods:   getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders:   getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 86400),
		},
		Server: ServerConfig{
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", "15s"),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", "15s"),
			IdleTimeout:     getEnvAsDuration("SERVER_IDLE_TIMEOUT", "60s"),
			GracefulTimeout: getEnvAsDuration("GRACEFUL_TIMEOUT", "30s"),
			RequestTimeout:  getEnvAsDuration("REQUEST_TIMEOUT", "30s"),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvAsBool("METRICS_ENABLED", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("환경 변수 검증 실패 : %w", err)
	}

	return cfg, nil
}

func loadEnvFile(env string) error {
	envFile := fmt.Sprintf(".env.%s", env)

	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		slog.Warn("환경 변수 파일을 찾을 수 없습니다. 시스템 환경 변수를 사용합니다.",
			"file", envFile)
		return nil
	}

	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("환경 변수 파일 로드 오류: %s: %w", envFile, err)
	}

	absPath, _ := filepath.Abs(envFile)
	slog.Info("환경 변수 파일 로드", "file", absPath)
	return nil
}

// Validate only rejects settings that can never work. An unreachable store is not a
// configuration error; it is handled by the startup fallback.
func (c *Config) Validate() error {
	var errors []string

	if c.App.Port < 1 || c.App.Port > 65535 {
		errors = append(errors, "유효하지 않은 포트 번호")
	}

	switch c.Store.Driver {
	case DriverMongo:
		if c.Mongo.URI == "" {
			errors = append(errors, "MONGODB_URI가 필요합니다")
		}
		if c.Mongo.Database == "" || c.Mongo.Collection == "" {
			errors = append(errors, "MongoDB database/collection 이름이 필요합니다")
		}
		if c.Mongo.MinPoolSize > c.Mongo.MaxPoolSize {
			errors = append(errors, "MONGODB_MIN_POOL_SIZE는 MONGODB_MAX_POOL_SIZE보다 클 수 없습니다")
		}
	case DriverOracle, DriverPostgres:
		if c.Database.Host == "" {
			errors = append(errors, "데이터베이스 Host가 필요합니다")
		}
		if c.Database.Service == "" {
			errors = append(errors, "데이터베이스 Service가 필요합니다")
		}
		if c.Database.User == "" {
			errors = append(errors, "데이터베이스 User가 필요합니다")
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			errors = append(errors, "DB_PATH가 필요합니다")
		}
	default:
		errors = append(errors, fmt.Sprintf("지원하지 않는 STORE_DRIVER: %q", c.Store.Driver))
	}

	if c.Store.ConnectTimeout <= 0 {
		errors = append(errors, "STORE_CONNECT_TIMEOUT은 0보다 커야 합니다")
	}

	if len(errors) > 0 {
		return fmt.Errorf("유효성 검사 오류: %s", strings.Join(errors, ", "))
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "local" || c.App.Env == "dev"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "prod" || c.App.Env == "production"
}

func defaultDBPort(driver string) int {
	switch driver {
	case DriverOracle:
		return 1521
	case DriverPostgres:
		return 5432
	default:
		return 0
	}
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	if defaultDuration, err := time.ParseDuration(defaultValue); err == nil {
		return defaultDuration
	}
	return 0
}
