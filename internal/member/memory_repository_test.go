package member

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMemoryRepository_Contract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) (Store, string) {
		return NewMemoryRepository(), primitive.NewObjectID().Hex()
	})
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	input := sampleMember("001")
	created, err := repo.Insert(ctx, input)
	require.NoError(t, err)

	input.Name = "changed after insert"
	created.Name = "changed on the result"

	members, err := repo.List(ctx, 1, 10)
	require.NoError(t, err)
	members[0].Name = "changed in the page"

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", found.Name)
}

func TestMemoryRepository_ConcurrentInsertsKeepMIDUnique(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	const workers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// every other worker races for the same mId
			mID := "shared"
			if i%2 == 0 {
				mID = fmt.Sprintf("own-%d", i)
			}
			if _, err := repo.Insert(ctx, sampleMember(mID)); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, workers/2+1, successes)

	members, err := repo.List(ctx, 1, 100)
	require.NoError(t, err)
	assert.Len(t, members, workers/2+1)
}

func TestMemoryRepository_CloseDropsRecords(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.Insert(ctx, sampleMember("001"))
	require.NoError(t, err)
	require.NoError(t, repo.Close(ctx))

	members, err := repo.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, members)
}
