package testutil

import (
	"time"

	"github.com/changhyeonkim/gym-member-api/internal/config"
)

// NewTestConfig returns a configuration for tests that needs no environment variables.
// The store defaults to an in-memory sqlite database.
func NewTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:    "gym-member-api-test",
			Env:     "test",
			Port:    8080,
			Version: "test",
		},
		Store: config.StoreConfig{
			Driver:         config.DriverSQLite,
			Fallback:       true,
			ConnectTimeout: 2 * time.Second,
		},
		Mongo: config.MongoConfig{
			URI:         "mongodb://127.0.0.1:1",
			Database:    "gym_test",
			Collection:  "members",
			MaxPoolSize: 5,
			MinPoolSize: 0,
			SlowCommand: 200 * time.Millisecond,
		},
		Database: config.DatabaseConfig{
			Path:            ":memory:",
			MaxIdleConns:    1,
			MaxOpenConns:    1,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 10 * time.Minute,
		},
		CORS: config.CORSConfig{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: false,
			MaxAge:           86400,
		},
		Server: config.ServerConfig{
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			GracefulTimeout: 30 * time.Second,
			RequestTimeout:  5 * time.Second,
		},
		Metrics: config.MetricsConfig{
			Enabled: true,
		},
	}
}
