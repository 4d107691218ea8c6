package model_test

import (
	"testing"
	"time"

	"github.com/changhyeonkim/gym-member-api/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestMember_StatusAt(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	testCases := []struct {
		name       string
		expiryDate string
		expected   model.MemberStatus
	}{
		{name: "expired yesterday", expiryDate: "2024-02-29", expected: model.StatusExpired},
		{name: "expires later today", expiryDate: "2024-03-01", expected: model.StatusExpiring},
		{name: "expires in ten days", expiryDate: "2024-03-11", expected: model.StatusExpiring},
		{name: "expires in eleven days", expiryDate: "2024-03-12", expected: model.StatusActive},
		{name: "far future", expiryDate: "2025-01-01", expected: model.StatusActive},
		{name: "unparseable", expiryDate: "2024/03/20", expected: model.StatusExpired},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			member := &model.Member{ExpiryDate: tc.expiryDate}
			assert.Equal(t, tc.expected, member.StatusAt(now))
		})
	}
}
