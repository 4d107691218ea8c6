package database

import (
	"fmt"
	"log/slog"

	"github.com/changhyeonkim/gym-member-api/internal/config"
	"github.com/changhyeonkim/gym-member-api/internal/model"

	"gorm.io/gorm"
)

// Migrate creates missing tables and indexes. With DB_RESET_SCHEMA=true the member table is
// dropped first, which is refused in production.
func Migrate(db *gorm.DB, cfg *config.Config) error {
	if cfg.Database.ResetSchema {
		if cfg.IsProduction() {
			return fmt.Errorf("🚨 PRODUCTION 환경에서는 DB_RESET_SCHEMA=true를 사용할 수 없습니다! 데이터 손실 방지를 위해 차단됨")
		}

		slog.Warn("🔧 스키마 초기화 - 회원 테이블이 삭제되고 재생성됩니다!", "env", cfg.App.Env)
		if err := db.Migrator().DropTable(&model.Member{}); err != nil {
			return fmt.Errorf("테이블 삭제 실패: %w", err)
		}
	}

	if err := db.AutoMigrate(&model.Member{}); err != nil {
		return fmt.Errorf("%T 마이그레이션 실패: %w", &model.Member{}, err)
	}

	slog.Info("✅ 마이그레이션 완료", "driver", cfg.Store.Driver)
	return nil
}
