package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/changhyeonkim/gym-member-api/internal/config"
	"github.com/changhyeonkim/gym-member-api/internal/member"
	"github.com/changhyeonkim/gym-member-api/internal/shared/database"
)

// MemberStore is the store chosen at startup. Degraded is true when the primary was
// unreachable and the in-memory fallback is serving instead.
type MemberStore struct {
	member.Store
	Degraded bool
}

// OpenMemberStore connects to the configured primary store once, bounded by
// cfg.Store.ConnectTimeout. When that fails and fallback is enabled it returns the
// in-memory store for the rest of the process lifetime; the choice is never revisited.
func OpenMemberStore(ctx context.Context, cfg *config.Config) (*MemberStore, error) {
	primary, err := openPrimary(ctx, cfg)
	if err == nil {
		return &MemberStore{Store: primary}, nil
	}

	if !cfg.Store.Fallback {
		return nil, fmt.Errorf("회원 저장소 연결 실패 driver=%s: %w: %w", cfg.Store.Driver, member.ErrBackendUnavailable, err)
	}

	slog.Warn("⚠️  기본 저장소에 연결할 수 없습니다. 메모리 저장소로 대체합니다 - 재시작 시 데이터가 유지되지 않습니다",
		"driver", cfg.Store.Driver,
		"error", err,
	)
	return &MemberStore{Store: member.NewMemoryRepository(), Degraded: true}, nil
}

func openPrimary(ctx context.Context, cfg *config.Config) (member.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Store.ConnectTimeout)
	defer cancel()

	switch cfg.Store.Driver {
	case config.DriverMongo:
		client, err := database.OpenMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}

		repo := member.NewMongoRepository(client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection))
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("인덱스 생성 실패: %w", err)
		}
		return repo, nil

	case config.DriverOracle, config.DriverPostgres, config.DriverSQLite:
		db, err := database.Open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return member.NewGormRepository(db, cfg.Store.Driver), nil

	default:
		return nil, fmt.Errorf("지원하지 않는 STORE_DRIVER: %q", cfg.Store.Driver)
	}
}
