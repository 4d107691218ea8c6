package member

import (
	"context"
	"math"

	"github.com/changhyeonkim/gym-member-api/internal/model"
)

// Store backend names
const (
	BackendMongo    = "mongodb"
	BackendOracle   = "oracle"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

// Store is the persistence contract shared by the document, relational and in-memory
// backends. Ids are opaque strings whose format depends on the backend.
type Store interface {
	// List returns one page of records in storage order. page and perPage are 1-based and positive.
	List(ctx context.Context, page, perPage int) ([]model.Member, error)
	// FindByID fails with ErrMemberNotFound or ErrInvalidMemberID.
	FindByID(ctx context.Context, id string) (*model.Member, error)
	// Insert assigns the id. A colliding mId fails with *DuplicateKeyError.
	Insert(ctx context.Context, member *model.Member) (*model.Member, error)
	// Replace overwrites every field but the id and returns the stored record.
	Replace(ctx context.Context, id string, member *model.Member) (*model.Member, error)
	// Delete reports whether a record was removed. A missing id is not an error.
	Delete(ctx context.Context, id string) (bool, error)
	// ValidateID fails with ErrInvalidMemberID when id is malformed for this backend.
	ValidateID(id string) error

	Backend() string
	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

// skipLimit turns a 1-based page into offset/limit. An offset that would overflow
// saturates at math.MaxInt, which every backend answers with an empty page.
func skipLimit(page, perPage int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if page-1 > math.MaxInt/perPage {
		return math.MaxInt, perPage
	}
	return (page - 1) * perPage, perPage
}
