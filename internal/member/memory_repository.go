package member

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/changhyeonkim/gym-member-api/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository is the process-lifetime fallback store. Records do not survive a restart.
// Ids are ObjectID hex strings so clients see the same id format as the document store.
// Writers are serialized by mu; readers share it.
type MemoryRepository struct {
	mu      sync.RWMutex
	members []model.Member
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Backend() string {
	return BackendMemory
}

func (r *MemoryRepository) HealthCheck(ctx context.Context) error {
	return ctx.Err()
}

// Close drops every record.
func (r *MemoryRepository) Close(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members = nil
	return nil
}

func (r *MemoryRepository) ValidateID(id string) error {
	if !primitive.IsValidObjectID(id) {
		return fmt.Errorf("member id %q: %w", id, ErrInvalidMemberID)
	}
	return nil
}

func (r *MemoryRepository) List(ctx context.Context, page, perPage int) ([]model.Member, error) {
	skip, limit := skipLimit(page, perPage)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if skip >= len(r.members) {
		return []model.Member{}, nil
	}

	end := skip + limit
	if end > len(r.members) || end < skip {
		end = len(r.members)
	}

	members := make([]model.Member, end-skip)
	copy(members, r.members[skip:end])
	return members, nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id string) (*model.Member, error) {
	if err := r.ValidateID(id); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("member id=%s: %w", id, ErrMemberNotFound)
	}

	member := r.members[idx]
	return &member, nil
}

func (r *MemoryRepository) Insert(ctx context.Context, member *model.Member) (*model.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.mIDTaken(member.MID, "") {
		return nil, &DuplicateKeyError{Field: fieldMID, Value: member.MID}
	}

	stored := *member
	stored.ID = primitive.NewObjectID().Hex()
	r.members = append(r.members, stored)

	return &stored, nil
}

func (r *MemoryRepository) Replace(ctx context.Context, id string, member *model.Member) (*model.Member, error) {
	if err := r.ValidateID(id); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("member id=%s: %w", id, ErrMemberNotFound)
	}

	if r.mIDTaken(member.MID, id) {
		return nil, &DuplicateKeyError{Field: fieldMID, Value: member.MID}
	}

	stored := *member
	stored.ID = r.members[idx].ID
	r.members[idx] = stored

	return &stored, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	if err := r.ValidateID(id); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	r.members = append(r.members[:idx], r.members[idx+1:]...)
	return true, nil
}

// indexOf must be called with mu held. Hex ids match case-insensitively.
func (r *MemoryRepository) indexOf(id string) int {
	for i := range r.members {
		if strings.EqualFold(r.members[i].ID, id) {
			return i
		}
	}
	return -1
}

// mIDTaken must be called with mu held. exceptID skips the record being replaced.
func (r *MemoryRepository) mIDTaken(mID, exceptID string) bool {
	for i := range r.members {
		if r.members[i].MID == mID && !strings.EqualFold(r.members[i].ID, exceptID) {
			return true
		}
	}
	return false
}
