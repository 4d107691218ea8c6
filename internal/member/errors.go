package member

import (
	"fmt"
	"net/http"
	"strings"

	sharedError "github.com/changhyeonkim/gym-member-api/internal/shared/error"
)

const (
	memberNotFound       = "MEMBER_NOT_FOUND"       // errInfo
	memberDuplicateKey   = "MEMBER_DUPLICATE_KEY"   // errInfo
	memberMissingFields  = "MEMBER_MISSING_FIELDS"  // errInfo
	memberInvalidNumeric = "MEMBER_INVALID_NUMERIC" // errInfo
	memberInvalidDate    = "MEMBER_INVALID_DATE"    // errInfo
	memberInvalidID      = "MEMBER_INVALID_ID"      // errInfo
	memberInvalidPayload = "MEMBER_INVALID_PAYLOAD" // errInfo
	storeUnavailable     = "STORE_UNAVAILABLE"      // errInfo
)

var (
	ErrMemberNotFound     = sharedError.NewDomainError(memberNotFound)
	ErrDuplicateKey       = sharedError.NewDomainError(memberDuplicateKey)
	ErrMissingFields      = sharedError.NewDomainError(memberMissingFields)
	ErrInvalidNumeric     = sharedError.NewDomainError(memberInvalidNumeric)
	ErrInvalidDate        = sharedError.NewDomainError(memberInvalidDate)
	ErrInvalidMemberID    = sharedError.NewDomainError(memberInvalidID)
	ErrInvalidPayload     = sharedError.NewDomainError(memberInvalidPayload)
	ErrBackendUnavailable = sharedError.NewDomainError(storeUnavailable)
)

func init() {
	sharedError.RegisterDomainErrorResponse(memberNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "MEMBER-001",
		Message: "Member not found",
	})

	sharedError.RegisterDomainErrorResponse(memberDuplicateKey, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "MEMBER-002",
		Message: duplicateEntryMessage,
	})

	sharedError.RegisterDomainErrorResponse(memberMissingFields, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "MEMBER-003",
		Message: "Missing required fields",
	})

	sharedError.RegisterDomainErrorResponse(memberInvalidNumeric, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "MEMBER-004",
		Message: "Invalid numeric values",
	})

	sharedError.RegisterDomainErrorResponse(memberInvalidDate, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "MEMBER-005",
		Message: "Invalid date format. Use YYYY-MM-DD",
	})

	sharedError.RegisterDomainErrorResponse(memberInvalidID, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "MEMBER-006",
		Message: "Invalid member ID format",
	})

	sharedError.RegisterDomainErrorResponse(memberInvalidPayload, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "MEMBER-007",
		Message: "Invalid member payload",
	})

	sharedError.RegisterDomainErrorResponse(storeUnavailable, sharedError.ErrorResponse{
		Status:  http.StatusServiceUnavailable,
		Code:    "STORE-001",
		Message: "Database connection not available",
	})
}

// ValidationError is a typed validation failure. Kind is one of ErrMissingFields,
// ErrInvalidNumeric, ErrInvalidDate or ErrInvalidPayload.
type ValidationError struct {
	Kind   error
	Fields []string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Detail)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func (e *ValidationError) ClientMessage() string {
	return e.Detail
}

func (e *ValidationError) ClientFields() []string {
	return e.Fields
}

func missingFieldsError(fields []string) *ValidationError {
	return &ValidationError{
		Kind:   ErrMissingFields,
		Fields: fields,
		Detail: fmt.Sprintf("Missing required fields: [%s]", strings.Join(fields, ", ")),
	}
}
