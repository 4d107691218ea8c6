package member

import (
	"context"
	"fmt"

	"github.com/changhyeonkim/gym-member-api/internal/model"
)

const statsPageSize = 500

// Stats walks every stored record page by page. totalIncome is the sum of amountPaid.
func (s *MemberService) Stats(ctx context.Context) (*StatsResponse, error) {
	now := s.now()
	stats := &StatsResponse{}

	for page := 1; ; page++ {
		members, err := s.store.List(ctx, page, statsPageSize)
		if err != nil {
			return nil, fmt.Errorf("회원 통계 조회 실패: %w", err)
		}

		for i := range members {
			stats.TotalMembers++
			stats.TotalIncome += members[i].AmountPaid

			switch members[i].StatusAt(now) {
			case model.StatusActive:
				stats.ActiveMembers++
			case model.StatusExpiring:
				stats.ExpiringMembers++
			case model.StatusExpired:
				stats.ExpiredMembers++
			}
		}

		if len(members) < statsPageSize {
			return stats, nil
		}
	}
}
