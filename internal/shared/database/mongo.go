package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/changhyeonkim/gym-member-api/internal/config"
	"github.com/changhyeonkim/gym-member-api/internal/shared/logger"

	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// OpenMongo connects to MongoDB and pings the primary. ctx bounds both server selection
// and the ping, so an unreachable server fails within the configured connect timeout.
func OpenMongo(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetMaxPoolSize(cfg.Mongo.MaxPoolSize).
		SetMinPoolSize(cfg.Mongo.MinPoolSize).
		SetServerSelectionTimeout(cfg.Store.ConnectTimeout).
		SetConnectTimeout(cfg.Store.ConnectTimeout).
		SetAppName(cfg.App.Name).
		SetMonitor(newCommandMonitor(cfg.Mongo.SlowCommand))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("MongoDB 연결 실패: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("MongoDB 핑 실패: %w", err)
	}

	slog.Info("MongoDB 연결 성공",
		"database", cfg.Mongo.Database,
		"collection", cfg.Mongo.Collection,
		"max_pool_size", cfg.Mongo.MaxPoolSize,
		"min_pool_size", cfg.Mongo.MinPoolSize,
	)
	return client, nil
}

// newCommandMonitor logs failed commands, and successful ones slower than slow.
func newCommandMonitor(slow time.Duration) *event.CommandMonitor {
	return &event.CommandMonitor{
		Succeeded: func(ctx context.Context, e *event.CommandSucceededEvent) {
			if slow > 0 && e.Duration > slow {
				logger.FromContext(ctx).WarnContext(ctx, "Slow MongoDB command detected",
					"component", "mongo",
					"command", e.CommandName,
					"elapsed", e.Duration.String(),
					"threshold", slow.String(),
				)
			}
		},
		Failed: func(ctx context.Context, e *event.CommandFailedEvent) {
			logger.FromContext(ctx).ErrorContext(ctx, "MongoDB command error",
				"component", "mongo",
				"command", e.CommandName,
				"elapsed", e.Duration.String(),
				"error", e.Failure,
			)
		},
	}
}
