package member

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/changhyeonkim/gym-member-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMember(mID string) *model.Member {
	return &model.Member{
		MID:            mID,
		Name:           "Asha Verma",
		Mobile:         "9876543210",
		TrainingType:   "Strength",
		Address:        "12 Park Street",
		IDProof:        "Aadhaar",
		Batch:          "Morning",
		PlanType:       "Monthly",
		PurchaseDate:   "2023-01-01",
		ExpiryDate:     "2023-02-01",
		TotalAmount:    1000,
		AmountPaid:     600,
		DueAmount:      400,
		PaymentDetails: "UPI",
	}
}

// storeFactory returns a fresh empty store and an id that is well formed but unused.
type storeFactory func(t *testing.T) (Store, string)

func runStoreContract(t *testing.T, newStore storeFactory) {
	ctx := context.Background()

	t.Run("insert assigns id and find returns the record", func(t *testing.T) {
		store, _ := newStore(t)

		created, err := store.Insert(ctx, sampleMember("001"))
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)
		assert.NoError(t, store.ValidateID(created.ID))
		assert.Equal(t, 1000.0, created.TotalAmount)

		found, err := store.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, found)
	})

	t.Run("duplicate mId is rejected and the first record is unchanged", func(t *testing.T) {
		store, _ := newStore(t)

		first, err := store.Insert(ctx, sampleMember("001"))
		require.NoError(t, err)

		second := sampleMember("001")
		second.Name = "Someone Else"
		_, err = store.Insert(ctx, second)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDuplicateKey))

		var dup *DuplicateKeyError
		require.True(t, errors.As(err, &dup))
		assert.Equal(t, "mId", dup.Field)
		assert.Equal(t, "001", dup.Value)
		assert.Equal(t, "Member ID '001' already exists. Please use a different member ID.", dup.ClientMessage())

		members, err := store.List(ctx, 1, 50)
		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.Equal(t, first.ID, members[0].ID)
		assert.Equal(t, "Asha Verma", members[0].Name)
	})

	t.Run("list pages in insertion order", func(t *testing.T) {
		store, _ := newStore(t)

		var ids []string
		for i := 1; i <= 5; i++ {
			created, err := store.Insert(ctx, sampleMember(fmt.Sprintf("%03d", i)))
			require.NoError(t, err)
			ids = append(ids, created.ID)
		}

		page1, err := store.List(ctx, 1, 2)
		require.NoError(t, err)
		page2, err := store.List(ctx, 2, 2)
		require.NoError(t, err)
		page3, err := store.List(ctx, 3, 2)
		require.NoError(t, err)
		beyond, err := store.List(ctx, 4, 2)
		require.NoError(t, err)

		var got []string
		for _, page := range [][]model.Member{page1, page2, page3} {
			for _, m := range page {
				got = append(got, m.ID)
			}
		}
		assert.Equal(t, ids, got)
		assert.Len(t, page3, 1)
		assert.NotNil(t, beyond)
		assert.Empty(t, beyond)
	})

	t.Run("list with offsets past the int range returns an empty page", func(t *testing.T) {
		store, _ := newStore(t)

		for i := 1; i <= 2; i++ {
			_, err := store.Insert(ctx, sampleMember(fmt.Sprintf("%03d", i)))
			require.NoError(t, err)
		}

		all, err := store.List(ctx, 1, 1<<62)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		for _, tc := range []struct{ page, perPage int }{
			{page: 3, perPage: 1 << 62},
			{page: math.MaxInt, perPage: math.MaxInt},
			{page: math.MaxInt, perPage: 2},
		} {
			var members []model.Member
			require.NotPanics(t, func() {
				members, err = store.List(ctx, tc.page, tc.perPage)
			})
			require.NoError(t, err)
			assert.Empty(t, members, "page=%d per_page=%d", tc.page, tc.perPage)
		}
	})

	t.Run("uppercase id addresses the same record", func(t *testing.T) {
		store, _ := newStore(t)

		created, err := store.Insert(ctx, sampleMember("001"))
		require.NoError(t, err)
		upper := strings.ToUpper(created.ID)

		found, err := store.FindByID(ctx, upper)
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)

		// replacing with its own mId must not collide with itself
		replacement := sampleMember("001")
		replacement.Name = "Asha V."
		replaced, err := store.Replace(ctx, upper, replacement)
		require.NoError(t, err)
		assert.Equal(t, created.ID, replaced.ID)
		assert.Equal(t, "Asha V.", replaced.Name)

		deleted, err := store.Delete(ctx, upper)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = store.FindByID(ctx, created.ID)
		assert.True(t, errors.Is(err, ErrMemberNotFound))
	})

	t.Run("replace overwrites every field and keeps the id", func(t *testing.T) {
		store, _ := newStore(t)

		created, err := store.Insert(ctx, sampleMember("001"))
		require.NoError(t, err)

		replacement := &model.Member{
			MID:            "001-B",
			Name:           "Ravi Kumar",
			Mobile:         "9000000000",
			TrainingType:   "Cardio",
			Address:        "",
			IDProof:        "PAN",
			Batch:          "Evening",
			PlanType:       "Yearly",
			PurchaseDate:   "2024-01-01",
			ExpiryDate:     "2025-01-01",
			TotalAmount:    12000,
			AmountPaid:     12000,
			DueAmount:      0,
			PaymentDetails: "Cash",
		}

		updated, err := store.Replace(ctx, created.ID, replacement)
		require.NoError(t, err)

		expected := *replacement
		expected.ID = created.ID
		assert.Equal(t, &expected, updated)

		found, err := store.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, &expected, found)
	})

	t.Run("replace with own mId succeeds", func(t *testing.T) {
		store, _ := newStore(t)

		created, err := store.Insert(ctx, sampleMember("001"))
		require.NoError(t, err)

		same := sampleMember("001")
		same.Batch = "Evening"
		updated, err := store.Replace(ctx, created.ID, same)
		require.NoError(t, err)
		assert.Equal(t, "Evening", updated.Batch)
	})

	t.Run("replace with another record's mId is rejected", func(t *testing.T) {
		store, _ := newStore(t)

		_, err := store.Insert(ctx, sampleMember("001"))
		require.NoError(t, err)
		second, err := store.Insert(ctx, sampleMember("002"))
		require.NoError(t, err)

		_, err = store.Replace(ctx, second.ID, sampleMember("001"))
		var dup *DuplicateKeyError
		require.True(t, errors.As(err, &dup), "got %v", err)
		assert.Equal(t, "mId", dup.Field)
		assert.Equal(t, "001", dup.Value)

		found, err := store.FindByID(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, "002", found.MID)
	})

	t.Run("missing id", func(t *testing.T) {
		store, absentID := newStore(t)

		_, err := store.FindByID(ctx, absentID)
		assert.True(t, errors.Is(err, ErrMemberNotFound))

		_, err = store.Replace(ctx, absentID, sampleMember("001"))
		assert.True(t, errors.Is(err, ErrMemberNotFound))

		deleted, err := store.Delete(ctx, absentID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("malformed id", func(t *testing.T) {
		store, _ := newStore(t)

		for _, id := range []string{"not-an-id", "", "123"} {
			assert.True(t, errors.Is(store.ValidateID(id), ErrInvalidMemberID), id)

			_, err := store.FindByID(ctx, id)
			assert.True(t, errors.Is(err, ErrInvalidMemberID), id)

			_, err = store.Replace(ctx, id, sampleMember("001"))
			assert.True(t, errors.Is(err, ErrInvalidMemberID), id)

			_, err = store.Delete(ctx, id)
			assert.True(t, errors.Is(err, ErrInvalidMemberID), id)
		}
	})

	t.Run("delete removes only the target", func(t *testing.T) {
		store, _ := newStore(t)

		first, err := store.Insert(ctx, sampleMember("001"))
		require.NoError(t, err)
		second, err := store.Insert(ctx, sampleMember("002"))
		require.NoError(t, err)

		deleted, err := store.Delete(ctx, first.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = store.Delete(ctx, first.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		_, err = store.FindByID(ctx, first.ID)
		assert.True(t, errors.Is(err, ErrMemberNotFound))

		members, err := store.List(ctx, 1, 50)
		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.Equal(t, second.ID, members[0].ID)

		// the freed mId can be reused
		_, err = store.Insert(ctx, sampleMember("001"))
		assert.NoError(t, err)
	})

	t.Run("health check", func(t *testing.T) {
		store, _ := newStore(t)
		assert.NoError(t, store.HealthCheck(ctx))
		assert.NotEmpty(t, store.Backend())
	})
}
