package member

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/changhyeonkim/gym-member-api/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEvent struct {
	action  string
	outcome string
}

type eventRecorderStub struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (s *eventRecorderStub) RecordMemberEvent(_ context.Context, action, outcome string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, recordedEvent{action: action, outcome: outcome})
}

func TestMemberService_Stats(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRepository()
	service := NewMemberService(store, nil)
	service.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

	// more records than one stats page
	for i := 0; i < statsPageSize+3; i++ {
		m := sampleMember(fmt.Sprintf("A%04d", i))
		m.ExpiryDate = "2025-01-01"
		m.AmountPaid = 10
		_, err := store.Insert(ctx, m)
		require.NoError(t, err)
	}

	expiring := sampleMember("B0001")
	expiring.ExpiryDate = "2024-03-05"
	expiring.AmountPaid = 250.5
	_, err := store.Insert(ctx, expiring)
	require.NoError(t, err)

	expired := sampleMember("B0002")
	expired.ExpiryDate = "2024-02-01"
	expired.AmountPaid = 0
	_, err = store.Insert(ctx, expired)
	require.NoError(t, err)

	stats, err := service.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, statsPageSize+5, stats.TotalMembers)
	assert.Equal(t, statsPageSize+3, stats.ActiveMembers)
	assert.Equal(t, 1, stats.ExpiringMembers)
	assert.Equal(t, 1, stats.ExpiredMembers)
	assert.InDelta(t, float64(statsPageSize+3)*10+250.5, stats.TotalIncome, 1e-9)
}

func TestMemberService_StatsEmptyStore(t *testing.T) {
	service := NewMemberService(NewMemoryRepository(), nil)

	stats, err := service.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &StatsResponse{}, stats)
}

func TestMemberService_RecordsEvents(t *testing.T) {
	ctx := context.Background()
	events := &eventRecorderStub{}
	service := NewMemberService(NewMemoryRepository(), events)

	created, err := service.Create(ctx, toPayload(t, testutil.MemberPayload("001")))
	require.NoError(t, err)

	_, err = service.Create(ctx, toPayload(t, testutil.MemberPayload("001")))
	require.Error(t, err)

	_, err = service.Create(ctx, Payload{})
	require.Error(t, err)

	_, err = service.Update(ctx, "bad", Payload{})
	require.Error(t, err)

	_, err = service.Update(ctx, created.ID, toPayload(t, testutil.MemberPayload("001")))
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, created.ID))
	require.Error(t, service.Delete(ctx, created.ID))

	assert.Equal(t, []recordedEvent{
		{action: ActionCreate, outcome: OutcomeSuccess},
		{action: ActionCreate, outcome: OutcomeDuplicate},
		{action: ActionCreate, outcome: OutcomeRejected},
		{action: ActionUpdate, outcome: OutcomeRejected},
		{action: ActionUpdate, outcome: OutcomeSuccess},
		{action: ActionDelete, outcome: OutcomeSuccess},
		{action: ActionDelete, outcome: OutcomeNotFound},
	}, events.events)
}

func TestMemberService_StatusOnResponses(t *testing.T) {
	ctx := context.Background()
	service := NewMemberService(NewMemoryRepository(), nil)
	service.now = func() time.Time { return time.Date(2023, 1, 25, 8, 0, 0, 0, time.UTC) }

	created, err := service.Create(ctx, toPayload(t, testutil.MemberPayload("001")))
	require.NoError(t, err)
	assert.Equal(t, "expiring", string(created.Status))

	service.now = func() time.Time { return time.Date(2023, 1, 1, 8, 0, 0, 0, time.UTC) }
	got, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", string(got.Status))
}
