package member

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/changhyeonkim/gym-member-api/internal/model"
	"github.com/changhyeonkim/gym-member-api/internal/shared/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRepository stores members in the "member" table through any gorm dialector.
// Ids are version 7 UUIDs, so ordering by id is insertion order.
type GormRepository struct {
	db      *gorm.DB
	backend string
}

func NewGormRepository(db *gorm.DB, backend string) *GormRepository {
	return &GormRepository{db: db, backend: backend}
}

func (r *GormRepository) Backend() string {
	return r.backend
}

func (r *GormRepository) HealthCheck(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("데이터베이스 인스턴스 가져오기 실패: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("데이터베이스 상태 확인 실패: %w: %w", ErrBackendUnavailable, err)
	}
	return nil
}

func (r *GormRepository) Close(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("데이터베이스 인스턴스 가져오기 실패: %w", err)
	}
	return sqlDB.Close()
}

func (r *GormRepository) ValidateID(id string) error {
	_, err := canonicalID(id)
	return err
}

// canonicalID returns the lowercase hyphenated form the ids are stored in.
func canonicalID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("member id %q: %w", id, ErrInvalidMemberID)
	}
	return parsed.String(), nil
}

func (r *GormRepository) List(ctx context.Context, page, perPage int) ([]model.Member, error) {
	skip, limit := skipLimit(page, perPage)

	members := make([]model.Member, 0)
	err := r.db.WithContext(ctx).
		Order("id").
		Offset(skip).
		Limit(limit).
		Find(&members).Error
	if err != nil {
		return nil, gormError("find members", err)
	}
	return members, nil
}

func (r *GormRepository) FindByID(ctx context.Context, id string) (*model.Member, error) {
	id, err := canonicalID(id)
	if err != nil {
		return nil, err
	}

	var member model.Member
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("member id=%s: %w", id, ErrMemberNotFound)
		}
		return nil, gormError("find member", err)
	}
	return &member, nil
}

func (r *GormRepository) Insert(ctx context.Context, member *model.Member) (*model.Member, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate member id: %w", err)
	}

	stored := *member
	stored.ID = id.String()

	if err := r.db.WithContext(ctx).Create(&stored).Error; err != nil {
		return nil, withDuplicateValue(gormError("insert member", err), member)
	}
	return &stored, nil
}

// Replace overwrites every column except id and re-reads the row in the same transaction.
func (r *GormRepository) Replace(ctx context.Context, id string, member *model.Member) (*model.Member, error) {
	id, err := canonicalID(id)
	if err != nil {
		return nil, err
	}

	values := *member
	values.ID = ""

	var updated model.Member
	err = database.WithTransaction(ctx, r.db, func(tx *gorm.DB) error {
		result := tx.Model(&model.Member{}).
			Where("id = ?", id).
			Select("*").
			Omit("id").
			Updates(&values)
		if result.Error != nil {
			return withDuplicateValue(gormError("replace member", result.Error), member)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("member id=%s: %w", id, ErrMemberNotFound)
		}

		if err := tx.Where("id = ?", id).First(&updated).Error; err != nil {
			return gormError("reload member", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *GormRepository) Delete(ctx context.Context, id string) (bool, error) {
	id, err := canonicalID(id)
	if err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Member{})
	if result.Error != nil {
		return false, gormError("delete member", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func gormError(op string, err error) error {
	if dup := TranslateDuplicateKey(err); dup != nil {
		return dup
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %w", op, ErrBackendUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
